package genotype

import (
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/genx/catalog"
)

// HEX_WIDTH is the width of the hex byte column of a listing.
const HEX_WIDTH = MAX_RECORD_BYTES*3 - 1

func hexBytes(code []byte) string {
	var sb strings.Builder
	for n, b := range code {
		if n > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", b)
	}
	return sb.String()
}

// Dump writes a listing of g, one record per line: the record index, the
// encoded bytes with raw branch data, and the disassembly.
func Dump(w io.Writer, cat *catalog.Catalog, g *Genotype) (err error) {
	for pos, op := range g.Records() {
		t := cat.Template(int(op.Index))
		if t == nil {
			_, err = fmt.Fprintf(w, "%3d %-*s (bad 0x%04x)\n", pos, HEX_WIDTH, "", op.Index)
		} else {
			code := t.Encode(nil, op.ModRM, op.Imm())
			_, err = fmt.Fprintf(w, "%3d %-*s %s\n", pos, HEX_WIDTH, hexBytes(code), t.Disasm(op.ModRM, op.Imm()))
		}
		if err != nil {
			return
		}
	}

	return
}

// String renders g as a single line of hex bytes, with branch data unresolved.
func (g *Genotype) String(cat *catalog.Catalog) string {
	var code []byte
	for _, op := range g.Records() {
		if t := cat.Template(int(op.Index)); t != nil {
			code = t.Encode(code, op.ModRM, op.Imm())
		}
	}
	return hexBytes(code)
}
