//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"contagion/internal/app"
	"contagion/internal/arena"
	"contagion/internal/config"
	"contagion/internal/logging"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	log := logging.New(os.Stderr, cfg.LogLevel, logging.Format(cfg.LogFormat))

	arenaCfg, err := config.Load(cfg.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	arenaCfg.Seed = cfg.Seed

	session, err := arena.New(arenaCfg, arena.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("create arena")
	}
	defer session.Close()

	game := app.New(session, cfg, log)
	size := session.Size()

	ebiten.SetWindowTitle("contagion — " + session.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal().Err(err).Msg("run game")
	}
}
