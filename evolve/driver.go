package evolve

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/ezrec/genx/catalog"
	"github.com/ezrec/genx/fitness"
	"github.com/ezrec/genx/genotype"
	"github.com/ezrec/genx/harness"
	"github.com/ezrec/genx/problem"
	"github.com/ezrec/genx/store"
)

// PROGRESS_EVERY is the generation interval of progress lines without
// an improvement.
const PROGRESS_EVERY = 100

// State is the progress of a run.
type State struct {
	RunID      string
	Generation int
	Genotypes  uint64 // Candidates scored.
	SinceBest  int    // Generations since the best last improved.
	Restarts   int
	Best       fitness.Genoscore // Best so far; owned by the driver.
	Start      time.Time
}

// Driver runs the generations of one problem.
type Driver struct {
	Verbose        bool
	Dump           int       // 1 writes every candidate as hex, 2 adds its listing and score table.
	Output         io.Writer // Progress output.
	MaxGenerations int       // Zero runs until the problem is done.
	Seed           uint64

	Problem problem.Problem
	Options problem.Options
	Catalog *catalog.Catalog
	Scorer  harness.Scorer
	Mutator *genotype.Mutator
	Metrics *Metrics    // Optional.
	Store   store.Store // Optional; receives the run and every improvement.

	State

	pop *Population
	now func() time.Time
	err error // First write error of the progress output.
}

// NewDriver validates the options of p and allocates its population.
func NewDriver(p problem.Problem, cat *catalog.Catalog, scorer harness.Scorer, seed uint64) (d *Driver, err error) {
	opts := p.Options()
	err = opts.Validate()
	if err != nil {
		return
	}

	d = &Driver{
		Output:  os.Stdout,
		Seed:    seed,
		Problem: p,
		Options: opts,
		Catalog: cat,
		Scorer:  scorer,
		Mutator: &genotype.Mutator{
			Catalog:       cat,
			ChromoMax:     opts.ChromoMax,
			MutateRate:    opts.MutateRate,
			MaxIntConst:   opts.MaxIntConst,
			MinFloatConst: opts.MinFloatConst,
			MaxFloatConst: opts.MaxFloatConst,
		},
		pop: NewPopulation(opts.PopSize, opts.ChromoMax, opts.Score),
		now: time.Now,
	}
	d.Best.Geno = genotype.New(opts.ChromoMax)

	return
}

// Population is the current generation.
func (d *Driver) Population() *Population {
	return d.pop
}

func (d *Driver) printf(format string, args ...any) {
	if d.err == nil && d.Output != nil {
		_, d.err = fmt.Fprintf(d.Output, format, args...)
	}
}

// Reset starts a new run: the random source is reseeded, the best is
// cleared and the population is seminal.
func (d *Driver) Reset(ctx context.Context) (err error) {
	d.Mutator.Verbose = d.Verbose
	d.Mutator.Rand = rand.New(rand.NewPCG(d.Seed, d.Seed))

	best := d.Best.Geno
	best.Len = 0
	d.State = State{
		RunID: uuid.NewString(),
		Best:  fitness.Genoscore{Geno: best, Score: fitness.Max(d.Options.Score)},
		Start: d.now(),
	}
	d.err = nil

	d.pop.Gen(d.Mutator, 0)

	if d.Verbose {
		log.Printf("evolve: run %v: %v seed %v", d.RunID, d.Problem.Name(), d.Seed)
	}

	if d.Store != nil {
		err = d.Store.SaveRun(ctx, store.Run{
			ID:      d.RunID,
			Problem: d.Problem.Name(),
			Seed:    d.Seed,
			Options: d.Options,
			Start:   d.Start,
		})
		if err != nil {
			err = ErrStore{RunID: d.RunID, Err: err}
		}
	}

	return
}

// score scores every candidate that did not survive from the last generation.
func (d *Driver) score() (scored int) {
	pop := d.pop
	for n := pop.Kept; n < pop.Len(); n++ {
		gs := &pop.Scores[n]
		if d.Dump > 0 {
			d.printf("%s\n", gs.Geno.String(d.Catalog))
		}
		if d.Dump > 1 && d.Output != nil {
			_ = genotype.Dump(d.Output, d.Catalog, gs.Geno)
			gs.Score, _ = d.Scorer.Report(d.Output, gs.Geno)
		} else {
			gs.Score = d.Scorer.Score(gs.Geno)
		}
		scored++
	}

	d.Genotypes += uint64(scored)
	return
}

// report writes the listing and score table of the best so far.
func (d *Driver) report(listing bool) {
	if d.Output == nil {
		return
	}
	if listing {
		if err := genotype.Dump(d.Output, d.Catalog, d.Best.Geno); err != nil && d.err == nil {
			d.err = err
		}
		d.printf("->score=%v\n", d.Best.Score)
	}
	if _, err := d.Scorer.Report(d.Output, d.Best.Geno); err != nil && d.err == nil {
		d.err = err
	}
}

func (d *Driver) progress(improved bool) {
	now := d.now()

	rate := 0.0
	if elapsed := now.Sub(d.Start).Seconds(); elapsed > 0 {
		rate = float64(d.Genotypes) / elapsed
	}

	d.printf("GENERATION %5d %10s genotypes (%s/sec) @%s\n",
		d.Generation, humanize.Comma(int64(d.Genotypes)),
		humanize.CommafWithDigits(rate, 1), now.Format(time.ANSIC))

	if improved {
		d.report(true)
	}
}

func (d *Driver) save(ctx context.Context) (err error) {
	if d.Store == nil {
		return
	}

	var listing strings.Builder
	_ = genotype.Dump(&listing, d.Catalog, d.Best.Geno)

	err = d.Store.SaveImprovement(ctx, store.Improvement{
		RunID:      d.RunID,
		Generation: d.Generation,
		Genotypes:  d.Genotypes,
		Score:      d.Best.Score,
		Length:     d.Best.Geno.Len,
		Listing:    listing.String(),
		Code:       d.Best.Geno.String(d.Catalog),
		Time:       d.now(),
	})
	if err != nil {
		err = ErrStore{RunID: d.RunID, Err: err}
	}

	return
}

func (d *Driver) restart() {
	d.report(true)
	d.printf("No progress for %d generations, trying something new...\n", d.Options.Deadend)
	if d.Verbose {
		log.Printf("evolve: generation %d: restart %d", d.Generation, d.Restarts+1)
	}

	d.pop.Gen(d.Mutator, 0)
	d.SinceBest = 0
	d.Restarts++
	if d.Metrics != nil {
		d.Metrics.Restarts.Inc()
	}
}

func (d *Driver) observe(scored int) {
	if d.Metrics == nil {
		return
	}
	d.Metrics.Generations.Inc()
	d.Metrics.Genotypes.Add(float64(scored))
	d.Metrics.BestScore.Set(d.Best.Score.Value())
	d.Metrics.BestLength.Set(float64(d.Best.Geno.Len))
}

// Tick scores one generation and breeds the next. It reports done once
// the problem accepts the best so far.
func (d *Driver) Tick(ctx context.Context) (done bool, err error) {
	if d.Start.IsZero() {
		err = ErrNotReset
		return
	}

	err = ctx.Err()
	if err != nil {
		return
	}

	scored := d.score()
	fitness.Rank(d.pop.Scores, d.Options.PopKeep)

	front := d.pop.Best()
	improved := front.Less(d.Best)
	if improved {
		d.Best.Geno.CopyFrom(front.Geno)
		d.Best.Score = front.Score
		d.SinceBest = 0
		if d.Verbose {
			log.Printf("evolve: generation %d: best %v length %d", d.Generation, d.Best.Score, d.Best.Geno.Len)
		}
	}

	if improved || d.Generation%PROGRESS_EVERY == 0 {
		d.progress(improved)
	}
	d.observe(scored)

	if improved {
		err = d.save(ctx)
		if err != nil {
			return
		}
	}

	done = d.Problem.Done(d.Options, d.Best)
	if done {
		d.printf("done.\n")
		d.report(false)
		err = d.err
		return
	}

	if d.Options.Deadend > 0 && d.SinceBest >= d.Options.Deadend {
		d.restart()
	} else {
		d.pop.Gen(d.Mutator, d.Options.PopKeep)
	}

	d.Generation++
	d.SinceBest++

	err = d.err
	return
}

// Run resets the driver and ticks until the problem is done, the context
// ends or MaxGenerations have run.
func (d *Driver) Run(ctx context.Context) (best fitness.Genoscore, err error) {
	err = d.Reset(ctx)
	for err == nil {
		var done bool
		done, err = d.Tick(ctx)
		if done || err != nil {
			break
		}
		if d.MaxGenerations > 0 && d.Generation >= d.MaxGenerations {
			err = ErrGenerationLimit
		}
	}

	best = d.Best
	return
}
