package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/atotto/clipboard"

	"contagion/internal/config"
	"contagion/internal/logging"
	"contagion/internal/report"
)

func main() {
	configFile := flag.String("config", "", "arena config file (toml, yaml or json)")
	runs := flag.Int("runs", 8, "rounds to play")
	ticks := flag.Int("ticks", 3600, "tick limit per round")
	tps := flag.Int("tps", 60, "ticks per simulated second")
	seed := flag.Int64("seed", 1, "seed of the first round")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	fireRate := flag.Float64("fire", 0.25, "seconds between bot weapon hits")
	copyOut := flag.Bool("copy", false, "copy the report to the clipboard")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	log := logging.New(os.Stderr, *logLevel, logging.FormatConsole)

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	fmt.Printf("Playing %d rounds (%d workers, %d ticks at %d tps, %dx%d tiles)\n\n",
		*runs, *workers, *ticks, *tps, cfg.Width, cfg.Height)

	start := time.Now()
	results := report.Run(cfg, report.Options{
		Runs:     *runs,
		Ticks:    *ticks,
		TPS:      *tps,
		Seed:     *seed,
		Workers:  *workers,
		FireRate: *fireRate,
	}, log)
	out := report.String(results, time.Since(start))
	fmt.Print(out)

	if *copyOut {
		if err := clipboard.WriteAll(out); err != nil {
			log.Warn().Err(err).Msg("clipboard unavailable")
		} else {
			fmt.Println("Report copied to clipboard.")
		}
	}
	if report.Summarize(results).Failed > 0 {
		os.Exit(1)
	}
}
