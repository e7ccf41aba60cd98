package harness

import (
	"encoding/gob"
	"errors"
	"io"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/ezrec/genx/catalog"
	"github.com/ezrec/genx/fitness"
	"github.com/ezrec/genx/genotype"
	"github.com/ezrec/genx/native"
	"github.com/ezrec/genx/problem"
)

// Setup is the first message to a worker.
type Setup struct {
	Kind    problem.Kind
	Mode    fitness.Mode
	Vectors []problem.Vector
	BufSize int
}

// Request asks a worker to score one compiled candidate.
type Request struct {
	Code  []byte
	Trace bool // Reply with the result of every call.
}

// Reply is the answer of a worker to a Request.
type Reply struct {
	Score   fitness.Score
	Results []native.Result
}

// Serve is the worker side of Isolated. It reads a Setup and then scores
// requests until r is closed.
func Serve(r io.Reader, w io.Writer) (err error) {
	dec := gob.NewDecoder(r)
	enc := gob.NewEncoder(w)

	var setup Setup
	err = dec.Decode(&setup)
	if err != nil {
		return
	}

	buf, err := native.New(setup.BufSize)
	if err != nil {
		return
	}
	defer buf.Close()

	for {
		var req Request
		err = dec.Decode(&req)
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			return
		}

		var rep Reply
		rep.Score = fitness.Max(setup.Mode)
		if buf.Load(req.Code) == nil {
			run := buf.Call
			if req.Trace {
				run = func(args native.Args) (res native.Result, err error) {
					res, err = buf.Call(args)
					if err == nil {
						rep.Results = append(rep.Results, res)
					}
					return
				}
			}
			rep.Score = Evaluate(setup.Kind, setup.Mode, setup.Vectors, run)
		}

		err = enc.Encode(&rep)
		if err != nil {
			return
		}
	}
}

type reply struct {
	Reply
	err error
}

type worker struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	enc     *gob.Encoder
	replies chan reply
}

func (wk *worker) read(r io.Reader) {
	defer close(wk.replies)

	dec := gob.NewDecoder(r)
	for {
		var rep reply
		rep.err = dec.Decode(&rep.Reply)
		wk.replies <- rep
		if rep.err != nil {
			return
		}
	}
}

func (wk *worker) kill() {
	_ = wk.cmd.Process.Kill()
	_ = wk.stdin.Close()
	for range wk.replies {
	}
	_ = wk.cmd.Wait()
}

// Isolated scores candidates in a worker process. Timeout bounds one
// candidate over all of its vectors; a candidate that runs longer, or
// that kills the worker, gets the worst score and the worker is replaced.
type Isolated struct {
	Verbose  bool
	Catalog  *catalog.Catalog
	Timeout  time.Duration
	Command  func() *exec.Cmd // Starts a process that runs Serve on its stdin and stdout.
	Restarts int              // Workers lost so far.

	setup Setup
	proc  *worker
	code  []byte
}

var _ Scorer = (*Isolated)(nil)

// NewIsolated starts the first worker for p.
func NewIsolated(p problem.Problem, cat *catalog.Catalog, command func() *exec.Cmd) (iso *Isolated, err error) {
	opts := p.Options()

	vecs, err := p.Vectors()
	if err != nil {
		return
	}

	size := genotype.CodeCapacity(opts.ChromoMax)
	iso = &Isolated{
		Catalog: cat,
		Timeout: opts.Timeout,
		Command: command,
		setup: Setup{
			Kind:    opts.Kind,
			Mode:    opts.Score,
			Vectors: vecs,
			BufSize: size,
		},
		code: make([]byte, 0, size),
	}

	err = iso.start()
	if err != nil {
		iso = nil
	}

	return
}

func (iso *Isolated) start() (err error) {
	if iso.Command == nil {
		err = ErrNoWorker
		return
	}

	cmd := iso.Command()
	if iso.Verbose && cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return
	}

	err = cmd.Start()
	if err != nil {
		return
	}

	wk := &worker{
		cmd:     cmd,
		stdin:   stdin,
		enc:     gob.NewEncoder(stdin),
		replies: make(chan reply),
	}
	go wk.read(stdout)

	err = wk.enc.Encode(&iso.setup)
	if err != nil {
		wk.kill()
		return
	}

	if iso.Verbose {
		log.Printf("harness: worker %d started", cmd.Process.Pid)
	}
	iso.proc = wk

	return
}

func (iso *Isolated) call(code []byte, trace bool) (rep Reply, err error) {
	if iso.proc == nil {
		err = iso.start()
		if err != nil {
			return
		}
	}

	wk := iso.proc
	err = wk.enc.Encode(&Request{Code: code, Trace: trace})
	if err == nil {
		timer := time.NewTimer(iso.Timeout)
		defer timer.Stop()

		select {
		case r, ok := <-wk.replies:
			switch {
			case !ok, errors.Is(r.err, io.EOF), errors.Is(r.err, io.ErrUnexpectedEOF):
				err = ErrWorkerDied
			default:
				rep, err = r.Reply, r.err
			}
		case <-timer.C:
			err = ErrTimeout
		}
	}

	if err != nil {
		err = ErrWorker{Pid: wk.cmd.Process.Pid, Err: err}
		wk.kill()
		iso.proc = nil
		iso.Restarts++
		if iso.Verbose {
			log.Printf("harness: %v", err)
		}
	}

	return
}

func (iso *Isolated) scoreCode(code []byte) fitness.Score {
	rep, err := iso.call(code, false)
	if err != nil {
		return fitness.Max(iso.setup.Mode)
	}
	return rep.Score
}

// Score sends g to the worker and waits at most Timeout for its score.
func (iso *Isolated) Score(g *genotype.Genotype) fitness.Score {
	iso.code = genotype.Compile(iso.Catalog, g, iso.code)
	return iso.scoreCode(iso.code)
}

// Report replays the results traced by the worker into a report table.
func (iso *Isolated) Report(w io.Writer, g *genotype.Genotype) (score fitness.Score, err error) {
	iso.code = genotype.Compile(iso.Catalog, g, iso.code)
	rep, cerr := iso.call(iso.code, true)

	next := 0
	run := func(native.Args) (res native.Result, err error) {
		switch {
		case cerr != nil:
			err = cerr
		case next >= len(rep.Results):
			err = native.ErrNotLoaded
		default:
			res = rep.Results[next]
			next++
		}
		return
	}

	return Report(w, iso.setup.Kind, iso.setup.Mode, iso.setup.Vectors, run)
}

// Close stops the worker.
func (iso *Isolated) Close() (err error) {
	if iso.proc == nil {
		return
	}
	_ = iso.proc.stdin.Close()
	iso.proc.kill()
	iso.proc = nil
	return
}
