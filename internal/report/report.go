// Package report plays headless arena rounds with the bot across a set of
// seeds and summarizes the outcomes.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"contagion/internal/arena"
	"contagion/internal/core"
)

// Options controls a report run.
type Options struct {
	Runs     int
	Ticks    int
	TPS      int
	Seed     int64
	Workers  int
	FireRate float64
}

// Result is the summary of one round.
type Result struct {
	Seed  int64
	Stats arena.Stats
	Err   error
}

// Run plays opts.Runs rounds on consecutive seeds starting at opts.Seed. Each
// worker builds its own session, so rounds never share state. Results are
// sorted by seed.
func Run(cfg arena.Config, opts Options, log zerolog.Logger) []Result {
	if opts.Runs <= 0 {
		return nil
	}
	workers := min(max(opts.Workers, 1), opts.Runs)
	tps := max(opts.TPS, 1)
	dt := core.Delta{Scaled: 1 / float64(tps), Unscaled: 1 / float64(tps)}

	jobs := make(chan int64)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				results <- runRound(cfg, seed, opts, dt, log)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for i := 0; i < opts.Runs; i++ {
			jobs <- opts.Seed + int64(i)
		}
		close(jobs)
	}()

	all := make([]Result, 0, opts.Runs)
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Seed < all[j].Seed })
	return all
}

func runRound(cfg arena.Config, seed int64, opts Options, dt core.Delta, log zerolog.Logger) Result {
	cfg.Seed = seed
	s, err := arena.New(cfg, arena.WithLogger(log))
	if err != nil {
		return Result{Seed: seed, Err: err}
	}
	defer s.Close()
	bot := arena.NewBot(s, seed, opts.FireRate)
	for i := 0; i < opts.Ticks && s.Outcome() == arena.Ongoing; i++ {
		bot.Step(dt)
		s.Step(dt)
	}
	return Result{Seed: seed, Stats: s.Stats()}
}

// Summary aggregates a set of results.
type Summary struct {
	Runs, Won, Lost, Ongoing, Failed int
	MeanPlayer, MeanEnemy            float64
	MeanElapsed                      float64
}

// Summarize aggregates results.
func Summarize(results []Result) Summary {
	var s Summary
	s.Runs = len(results)
	ok := 0
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
			continue
		}
		ok++
		switch r.Stats.Outcome {
		case arena.Won:
			s.Won++
		case arena.Lost:
			s.Lost++
		default:
			s.Ongoing++
		}
		s.MeanPlayer += r.Stats.Sample.CurrentPlayer
		s.MeanEnemy += r.Stats.Sample.CurrentEnemy
		s.MeanElapsed += r.Stats.Elapsed
	}
	if ok > 0 {
		s.MeanPlayer /= float64(ok)
		s.MeanEnemy /= float64(ok)
		s.MeanElapsed /= float64(ok)
	}
	return s
}

// Write renders results and their summary as an aligned table.
func Write(w io.Writer, results []Result, elapsed time.Duration) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "seed\toutcome\ttime\twave\tplayer\tenemy\tcontaminated\tbursts\tspread\tcleared\thits")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%d\terror: %v\n", r.Seed, r.Err)
			continue
		}
		st := r.Stats
		fmt.Fprintf(tw, "%d\t%s\t%.1fs\t%d\t%.1f%%\t%.1f%%\t%.1f%%\t%d\t%d\t%d\t%d\n",
			r.Seed, st.Outcome, st.Elapsed, st.Wave,
			st.Sample.CurrentPlayer*100, st.Sample.CurrentEnemy*100, st.Fraction*100,
			st.Bursts, st.Grown, st.Cleared, st.Hits)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	sum := Summarize(results)
	_, err := fmt.Fprintf(w, "\n%d runs in %s: won %d, lost %d, ongoing %d, failed %d; mean player %.1f%%, enemy %.1f%%, round %.1fs\n",
		sum.Runs, elapsed.Round(time.Millisecond), sum.Won, sum.Lost, sum.Ongoing, sum.Failed,
		sum.MeanPlayer*100, sum.MeanEnemy*100, sum.MeanElapsed)
	return err
}

// String renders Write into a string.
func String(results []Result, elapsed time.Duration) string {
	var b strings.Builder
	_ = Write(&b, results, elapsed)
	return b.String()
}
