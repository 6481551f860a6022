// Command cads searches for the checksum algorithm behind a labeled
// packet corpus: an exhaustive parallel search over field subsets,
// permutations, operator sequences, and constants.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/twilightcoders/cads/internal/cads"
	"github.com/twilightcoders/cads/internal/cadsui"
	"github.com/twilightcoders/cads/internal/input"
	"github.com/twilightcoders/cads/internal/monitor"
	"github.com/twilightcoders/cads/internal/warehouse"
)

func usage(w *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "cads - checksum algorithm discovery search")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  cads -i packets.jsonl [flags]")
	fmt.Fprintln(os.Stderr, "  cads -C run.ini [flags]")
	fmt.Fprintln(os.Stderr, "")
	w.PrintDefaults()
}

func main() {
	fs := flag.NewFlagSet("cads", flag.ContinueOnError)

	inputPath := fs.String("input", "", "JSONL packet file")
	fs.StringVar(inputPath, "i", "", "JSONL packet file (shorthand)")
	configPath := fs.String("config", "", "INI configuration file")
	fs.StringVar(configPath, "C", "", "INI configuration file (shorthand)")
	complexityFlag := fs.String("complexity", "", "basic/intermediate/advanced")
	fs.StringVar(complexityFlag, "c", "", "basic/intermediate/advanced (shorthand)")
	maxFields := fs.Int("max-fields", 0, "maximum field-subset size")
	fs.IntVar(maxFields, "f", 0, "maximum field-subset size (shorthand)")
	maxConstants := fs.Int("max-constants", 0, "maximum constant value range")
	fs.IntVar(maxConstants, "k", 0, "maximum constant range (shorthand)")
	earlyExit := fs.Bool("early-exit", false, "stop at the first solution")
	fs.BoolVar(earlyExit, "e", false, "stop at the first solution (shorthand)")
	maxSolutions := fs.Int("max-solutions", 0, "stop after N solutions (0 = unlimited)")
	fs.IntVar(maxSolutions, "m", 0, "stop after N solutions (shorthand)")
	progressMs := fs.Int("progress-ms", 0, "progress display interval in milliseconds")
	fs.IntVar(progressMs, "p", 0, "progress display interval (shorthand)")
	verbose := fs.Bool("verbose", false, "verbose output")
	fs.BoolVar(verbose, "v", false, "verbose output (shorthand)")
	threads := fs.Int("threads", -1, "worker thread count")
	fs.IntVar(threads, "t", -1, "worker thread count (shorthand)")
	autoThreads := fs.Bool("threading", false, "set threads=0 (auto)")
	fs.BoolVar(autoThreads, "T", false, "set threads=0 (auto) (shorthand)")
	help := fs.Bool("help", false, "print usage")
	fs.BoolVar(help, "h", false, "print usage (shorthand)")

	warehouseDSN := fs.String("warehouse-dsn", "", "sqlite:<path>, postgres://..., or clickhouse://... to persist the finished run")
	monitorAddr := fs.String("monitor-addr", "", "host:port to serve a live JSON progress snapshot")
	natsURL := fs.String("nats-url", "", "NATS server URL for solution events (progress events are published only with -v)")
	natsSubject := fs.String("nats-subject", "cads", "NATS subject prefix for progress/solution events")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if *help {
		usage(fs)
		return
	}

	cfg, dataset, err := resolveConfigAndDataset(*configPath, *inputPath, *complexityFlag, *maxFields, *maxConstants, *earlyExit, *maxSolutions, *progressMs, *verbose, *threads, *autoThreads)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cads: %v\n", err)
		os.Exit(1)
	}

	started := time.Now()
	tracker := cads.NewProgressTracker(cads.TotalEstimate(dataset.MinPacketLen(), cfg.MaxFields, cfg.MaxConstants, uint64(activeOpCount(cfg))), cfg.ProgressIntervalMs)

	var mon *monitor.Server
	if *monitorAddr != "" {
		mon = monitor.NewServer(tracker, *monitorAddr)
		mon.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mon.Shutdown(ctx)
		}()
	}

	var pub *monitor.Publisher
	if *natsURL != "" {
		p, err := monitor.NewPublisher(*natsURL, *natsSubject)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cads: nats connect failed, continuing without live publishing: %v\n", err)
		} else {
			pub = p
			defer pub.Close()
		}
	}

	stopTicking := make(chan struct{})
	if *verbose {
		go tickProgress(tracker, pub, stopTicking)
	}

	set, err := cads.RunSearch(cfg, dataset, tracker)
	close(stopTicking)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cads: search failed: %v\n", err)
		os.Exit(1)
	}

	cadsui.RenderSolutions(os.Stdout, set.Solutions)

	if pub != nil {
		for _, sol := range set.Solutions {
			pub.PublishSolution(sol)
		}
	}

	if *warehouseDSN != "" {
		if err := persistRun(cfg, dataset, set, *warehouseDSN, started, time.Now()); err != nil {
			fmt.Fprintf(os.Stderr, "cads: warehouse persist failed (continuing): %v\n", err)
		}
	}

	if len(set.Solutions) == 0 {
		os.Exit(1)
	}
}

func activeOpCount(cfg cads.Config) int {
	ops, err := cads.ActiveOperators(cfg.Complexity, cfg.CustomOperations)
	if err != nil {
		return 1
	}
	return len(ops)
}

func tickProgress(tracker *cads.ProgressTracker, pub *monitor.Publisher, stop <-chan struct{}) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			tracker.Tick()
			if tracker.ShouldDisplay() {
				cadsui.RenderProgress(os.Stderr, tracker.Snapshot())
			}
			if pub != nil {
				pub.PublishProgress(tracker.Snapshot())
			}
		}
	}
}

func persistRun(cfg cads.Config, dataset *cads.Dataset, set *cads.SolutionSet, dsn string, started, finished time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := warehouse.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := warehouse.BuildRecord(fmt.Sprintf("run-%d", finished.UnixNano()), started, finished, cfg, dataset, set)
	if err != nil {
		return err
	}
	return store.Put(ctx, rec)
}

func resolveConfigAndDataset(configPath, inputPath, complexityFlag string, maxFields, maxConstants int, earlyExit bool, maxSolutions, progressMs int, verbose bool, threads int, autoThreads bool) (cads.Config, *cads.Dataset, error) {
	cfg := cads.DefaultConfig()
	var packets []cads.Packet

	if configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			return cfg, nil, fmt.Errorf("opening config file: %w", err)
		}
		defer f.Close()
		lc, err := input.LoadINI(f)
		if err != nil {
			return cfg, nil, fmt.Errorf("parsing config file: %w", err)
		}
		cfg = lc.Config
		packets = lc.Packets
	}

	if complexityFlag != "" {
		c, err := cads.ParseComplexity(complexityFlag)
		if err != nil {
			return cfg, nil, err
		}
		cfg.Complexity = c
	}
	if maxFields > 0 {
		cfg.MaxFields = maxFields
	}
	if maxConstants > 0 {
		cfg.MaxConstants = maxConstants
	}
	if earlyExit {
		cfg.EarlyExit = true
		cfg.MaxSolutions = 1
	}
	if maxSolutions > 0 {
		cfg.MaxSolutions = uint32(maxSolutions)
	}
	if progressMs > 0 {
		cfg.ProgressIntervalMs = progressMs
	}
	if verbose {
		cfg.Verbose = true
	}
	if autoThreads {
		cfg.Threads = 0
	}
	if threads >= 0 {
		cfg.Threads = threads
	}

	if packets == nil {
		if inputPath == "" {
			return cfg, nil, fmt.Errorf("no packet input: supply -i/--input or a [packets] section in -C/--config")
		}
		f, err := os.Open(inputPath)
		if err != nil {
			return cfg, nil, fmt.Errorf("opening input file: %w", err)
		}
		defer f.Close()
		packets, err = input.LoadJSONL(f, cfg.ChecksumSize)
		if err != nil {
			return cfg, nil, fmt.Errorf("parsing input file: %w", err)
		}
	}

	dataset, err := cads.NewDataset(packets)
	if err != nil {
		return cfg, nil, fmt.Errorf("building dataset: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	cfg.ClampToDataset(dataset)

	return cfg, dataset, nil
}
