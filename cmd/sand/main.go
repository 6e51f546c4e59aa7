//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"falling-sand/internal/app"
	"falling-sand/internal/config"
	"falling-sand/internal/logging"
	"falling-sand/internal/sims/sand"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var flags config.Flags
	flags.Bind(flag.CommandLine)
	flag.Parse()

	settings, err := flags.Resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logging.New(settings.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync()

	sb, err := sand.New(settings.Sim, sand.WithLogger(log))
	if err != nil {
		log.Fatal("creating sandbox", zap.Error(err))
	}

	game := app.New(sb, app.Options{
		Scale:      settings.App.Scale,
		TPS:        settings.App.TPS,
		PanelWidth: settings.App.PanelWidth,
		Seed:       settings.Sim.Seed,
		Paused:     settings.App.Paused,
		Logger:     log,
	})
	size := sb.Size()

	ebiten.SetWindowTitle("falling sand")
	// The window refreshes at 60 FPS; the fixed-step timer paces the simulation.
	ebiten.SetTPS(60)
	ebiten.SetWindowSize(size.W*settings.App.Scale+settings.App.PanelWidth, size.H*settings.App.Scale)

	log.Info("starting",
		zap.Int("width", size.W),
		zap.Int("height", size.H),
		zap.Int("tps", settings.App.TPS),
		zap.Int64("seed", settings.Sim.Seed),
	)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal("run", zap.Error(err))
	}
}
