// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"iter"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ezrec/genx/catalog"
	"github.com/ezrec/genx/evolve"
	"github.com/ezrec/genx/genotype"
	"github.com/ezrec/genx/harness"
	"github.com/ezrec/genx/internal"
	"github.com/ezrec/genx/problem"
	"github.com/ezrec/genx/store"
)

// worker scores candidates for an Isolated harness over stdin and stdout.
func worker() {
	_ = nice()
	err := harness.Serve(os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("worker: %v", err)
	}
}

func workerCommand() *exec.Cmd {
	self, err := os.Executable()
	if err != nil {
		self = os.Args[0]
	}
	return exec.Command(self, "worker")
}

// findProblem looks up name in the registry, then in the scripts of dir.
func findProblem(name string, dir string) (p problem.Problem, err error) {
	p, err = problem.Lookup(name)
	if err == nil || dir == "" {
		return
	}

	for s := range problem.ScanScripts(dir) {
		if s.Name() == name {
			p, err = s, nil
			return
		}
	}

	return
}

func listProblems(dir string) {
	var extra []iter.Seq[problem.Problem]
	if dir != "" {
		extra = append(extra, problem.ScanScripts(dir))
	}

	for p := range problem.All(extra...) {
		opts := p.Options()
		fmt.Printf("%-20s %-5v %-5v params=%d chromo=%d..%d pop=%d/%d\n",
			p.Name(), opts.Kind, opts.Score, opts.ParamCount,
			opts.ChromoMin, opts.ChromoMax, opts.PopKeep, opts.PopSize)
	}
}

func listCatalog(cat *catalog.Catalog) {
	for index, t := range internal.IterSliceIndex(cat.Templates) {
		mark := ' '
		if cat.IsInterior(index) {
			mark = '*'
		}
		fmt.Printf("%3d %c %-6v %v\n", index, mark, t.Tier, t)
	}
}

func listRuns(ctx context.Context, db store.Store) (err error) {
	runs, err := db.Runs(ctx)
	if err != nil {
		return
	}
	for _, run := range runs {
		fmt.Printf("%v %v %-20s seed=%v\n", run.ID, run.Start.Format(time.ANSIC), run.Problem, run.Seed)
	}
	return
}

func showHistory(ctx context.Context, db store.Store, runID string) (err error) {
	run, ok, err := db.GetRun(ctx, runID)
	if err != nil {
		return
	}
	if !ok {
		err = store.ErrRunMissing(runID)
		return
	}

	fmt.Printf("%v %v seed=%v\n", run.Problem, run.Start.Format(time.ANSIC), run.Seed)

	imps, err := db.Improvements(ctx, runID)
	if err != nil {
		return
	}
	for _, imp := range imps {
		fmt.Printf("GENERATION %5d %10d genotypes @%s\n", imp.Generation, imp.Genotypes, imp.Time.Format(time.ANSIC))
		fmt.Print(imp.Listing)
		fmt.Printf("->score=%v\n", imp.Score)
	}

	return
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "worker" {
		worker()
		return
	}

	var config string
	var name string
	var script string
	var scripts string
	var seed uint64
	var dump int
	var verbose bool
	var timeout time.Duration
	var storeKind string
	var dbPath string
	var metricsAddr string
	var maxGenerations int
	var list bool
	var showCatalog bool
	var load string
	var history string
	var runs bool

	flag.StringVar(&config, "c", "", "TOML run configuration")
	flag.StringVar(&name, "p", "identity", "Problem to search")
	flag.StringVar(&script, "f", "", "Starlark problem script")
	flag.StringVar(&scripts, "S", "", "Directory of problem scripts")
	flag.Uint64Var(&seed, "s", 0, "Random seed (0 uses the clock)")
	flag.IntVar(&dump, "d", 0, "Dump level: 1 candidate hex, 2 listings and scores")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.DurationVar(&timeout, "t", 0, "Per candidate timeout; runs candidates in a worker process")
	flag.StringVar(&storeKind, "store", "memory", "Run history store: memory or sqlite")
	flag.StringVar(&dbPath, "db", "genx.db", "SQLite database path")
	flag.StringVar(&metricsAddr, "m", "", "Serve Prometheus metrics on this address")
	flag.IntVar(&maxGenerations, "g", 0, "Maximum generations (0 runs until done)")
	flag.BoolVar(&list, "l", false, "List problems")
	flag.BoolVar(&showCatalog, "a", false, "List the instruction catalog of the problem")
	flag.StringVar(&load, "load", "", "Score a genotype listing")
	flag.StringVar(&history, "history", "", "Show the improvements of a stored run")
	flag.BoolVar(&runs, "runs", false, "List stored runs")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	var cfg RunConfig
	if len(config) != 0 {
		var err error
		cfg, err = LoadConfig(config)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
	}

	// Flags given on the command line win over the configuration file.
	set := map[string]bool{}
	flag.Visit(func(fl *flag.Flag) {
		set[fl.Name] = true
	})
	pick := func(flagName string, fromFlag string, fromConfig string) string {
		if set[flagName] || fromConfig == "" {
			return fromFlag
		}
		return fromConfig
	}
	name = pick("p", name, cfg.Problem)
	script = pick("f", script, cfg.Script)
	scripts = pick("S", scripts, cfg.Scripts)
	storeKind = pick("store", storeKind, cfg.Store)
	dbPath = pick("db", dbPath, cfg.DBPath)
	metricsAddr = pick("m", metricsAddr, cfg.Metrics)
	if !set["s"] && cfg.Seed != 0 {
		seed = cfg.Seed
	}
	if !set["d"] && cfg.Dump != 0 {
		dump = cfg.Dump
	}
	if !set["g"] && cfg.MaxGenerations != 0 {
		maxGenerations = cfg.MaxGenerations
	}
	verbose = verbose || cfg.Verbose

	if list {
		listProblems(scripts)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if runs || len(history) != 0 {
		db, err := store.New(storeKind, dbPath)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer store.CloseIfSupported(db)

		err = db.Init(ctx)
		if err == nil && runs {
			err = listRuns(ctx, db)
		}
		if err == nil && len(history) != 0 {
			err = showHistory(ctx, db, history)
		}
		if err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	var p problem.Problem
	var err error
	if len(script) != 0 {
		var s *problem.Script
		s, err = problem.LoadScript(script)
		if s != nil {
			s.Verbose = verbose
			p = s
		}
	} else {
		p, err = findProblem(name, scripts)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}

	opts := cfg.Options.Apply(p.Options())
	if set["t"] {
		opts.Timeout = timeout
	}
	err = opts.Validate()
	if err != nil {
		log.Fatalf("%v: %v", p.Name(), err)
	}
	p = problem.WithOptions(p, opts)

	cat, err := catalog.Build(opts.Catalog())
	if err != nil {
		log.Fatalf("%v: %v", p.Name(), err)
	}
	cat.Verbose = verbose

	if showCatalog {
		listCatalog(cat)
		return
	}

	scorer, err := harness.New(p, cat, workerCommand)
	if err != nil {
		log.Fatalf("%v: %v", p.Name(), err)
	}
	defer scorer.Close()
	if iso, ok := scorer.(*harness.Isolated); ok {
		iso.Verbose = verbose
	}

	if len(load) != 0 {
		inf, err := os.Open(load)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
		defer inf.Close()

		ld := &genotype.Loader{Verbose: verbose, Catalog: cat}
		g, err := ld.Load(inf, opts.ChromoMax)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}

		err = genotype.Dump(os.Stdout, cat, g)
		if err == nil {
			_, err = scorer.Report(os.Stdout, g)
		}
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
		return
	}

	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	d, err := evolve.NewDriver(p, cat, scorer, seed)
	if err != nil {
		log.Fatalf("%v: %v", p.Name(), err)
	}
	d.Verbose = verbose
	d.Dump = dump
	d.MaxGenerations = maxGenerations

	db, err := store.New(storeKind, dbPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer store.CloseIfSupported(db)
	err = db.Init(ctx)
	if err != nil {
		log.Fatalf("%v: %v", dbPath, err)
	}
	d.Store = db

	if len(metricsAddr) != 0 {
		d.Metrics, err = evolve.NewMetrics(prometheus.DefaultRegisterer, p.Name())
		if err != nil {
			log.Fatalf("%v", err)
		}
		http.Handle("/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{}))
		go func() {
			err := http.ListenAndServe(metricsAddr, nil)
			if err != nil {
				log.Printf("%v: %v", metricsAddr, err)
			}
		}()
	}

	_ = nice()

	if verbose {
		log.Printf("%v: seed %v epsilon %g catalog %d templates", p.Name(), seed, opts.Epsilon, len(cat.Templates))
	}
	_, err = d.Run(ctx)
	if err != nil {
		log.Fatalf("%v: %v", p.Name(), err)
	}
}
