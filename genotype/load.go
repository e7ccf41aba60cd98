package genotype

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/ezrec/genx/catalog"
)

// Loader reads genotype listings in the Dump format.
type Loader struct {
	Verbose bool
	Catalog *catalog.Catalog
}

// isHexByte reports whether word is a two digit hex byte.
func isHexByte(word string) bool {
	if len(word) != 2 {
		return false
	}
	_, err := hex.DecodeString(word)
	return err == nil
}

// decode identifies the record encoded by code. When several templates
// share an encoding, the one whose disassembly matches text wins.
func (ld *Loader) decode(code []byte, text string) (op Op, err error) {
	cat := ld.Catalog
	found := -1
	for index, t := range cat.Templates {
		if len(code) != t.Len() || !bytes.HasPrefix(code, t.Op) {
			continue
		}
		rest := code[len(t.Op):]
		var modrm byte
		if t.Selector != catalog.SEL_NONE {
			modrm = rest[0]
			rest = rest[1:]
			if !t.Selects(modrm) {
				continue
			}
		}
		var imm uint32
		switch len(rest) {
		case 1:
			imm = uint32(rest[0])
		case 4:
			imm = binary.LittleEndian.Uint32(rest)
		}

		candidate := Op{Index: uint16(index), ModRM: modrm}
		candidate.SetImm(imm)
		if found < 0 {
			found = index
			op = candidate
		}
		if strings.Join(strings.Fields(t.Disasm(modrm, imm)), " ") == text {
			op = candidate
			return
		}
	}

	if found < 0 {
		err = ErrNoTemplate
	}

	return
}

func (ld *Loader) matches(op Op, frame catalog.Frame) bool {
	return int(op.Index) == frame.Index && op.ModRM == frame.ModRM
}

// Load parses a listing into a genotype of at most chromoMax interior
// records. The prologue and suffix lines are optional.
func (ld *Loader) Load(input io.Reader, chromoMax int) (g *Genotype, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var ops []Op

	defer func() {
		if err != nil && line != "" {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if ld.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(strings.Split(text, ";")[0])
		if len(line) == 0 || strings.HasPrefix(line, "->") {
			continue
		}

		words := strings.Fields(line)
		if _, err = strconv.Atoi(words[0]); err != nil {
			err = ErrLineIndex
			return
		}
		words = words[1:]

		var code []byte
		for len(words) > 0 && isHexByte(words[0]) {
			b, _ := strconv.ParseUint(words[0], 16, 8)
			code = append(code, byte(b))
			words = words[1:]
		}
		if len(code) == 0 {
			err = ErrHex
			return
		}

		var op Op
		op, err = ld.decode(code, strings.Join(words, " "))
		if err != nil {
			return
		}
		ops = append(ops, op)
	}
	line = ""

	err = scanner.Err()
	if err != nil {
		return
	}

	cat := ld.Catalog
	if len(ops) >= catalog.PREFIX_LEN && ld.matches(ops[0], cat.Prologue[0]) && ld.matches(ops[1], cat.Prologue[1]) {
		ops = ops[catalog.PREFIX_LEN:]
	}
	if n := len(ops); n >= catalog.SUFFIX_LEN && ld.matches(ops[n-2], cat.Suffix[0]) && ld.matches(ops[n-1], cat.Suffix[1]) {
		ops = ops[:n-catalog.SUFFIX_LEN]
	}

	if len(ops) > chromoMax {
		err = ErrLength
		return
	}

	g = New(chromoMax)
	g.Len = catalog.PREFIX_LEN + copy(g.Ops[catalog.PREFIX_LEN:], ops)
	g.setFrame(cat)

	err = g.Check(cat, chromoMax)
	if err != nil {
		g = nil
	}

	return
}

// Load parses a listing with a default Loader.
func Load(input io.Reader, cat *catalog.Catalog, chromoMax int) (*Genotype, error) {
	ld := &Loader{Catalog: cat}
	return ld.Load(input, chromoMax)
}
