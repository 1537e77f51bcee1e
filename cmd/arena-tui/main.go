package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"contagion/internal/arena"
	"contagion/internal/audio"
	"contagion/internal/config"
	"contagion/internal/logging"
	"contagion/internal/tui"
)

func main() {
	configFile := flag.String("config", "", "arena config file (toml, yaml or json)")
	seed := flag.Int64("seed", 42, "seed for arena reset")
	tps := flag.Int("tps", 30, "frames per second")
	sound := flag.Bool("sound", true, "play the contamination alarm")
	logFile := flag.String("log", "", "write logs to this file (terminal output is taken by the viewer)")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logOut := os.Stderr
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logging.New(os.Stderr, "error", logging.FormatConsole).Fatal().Err(err).Msg("open log file")
		}
		defer f.Close()
		logOut = f
	} else {
		*logLevel = "disabled"
	}
	log := logging.New(logOut, *logLevel, logging.FormatJSON)

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	cfg.Seed = *seed

	session, err := arena.New(cfg, arena.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("create arena")
	}
	defer session.Close()

	if *sound {
		sp, err := audio.OpenSpeaker()
		if err != nil {
			log.Warn().Err(err).Msg("audio unavailable, alarm disabled")
		} else {
			defer sp.Close()
			session.OnContamination(audio.NewAlarm(sp, log))
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal().Err(err).Msg("create screen")
	}
	if err := screen.Init(); err != nil {
		log.Fatal().Err(err).Msg("init screen")
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := tui.New(session, screen, *seed, log).Run(ctx, *tps); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("viewer stopped")
	}
}
