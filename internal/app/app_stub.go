//go:build !ebiten

package app

import (
	"fmt"

	"go.uber.org/zap"

	"falling-sand/internal/core"
	"falling-sand/internal/sims/sand"
)

// Sandbox mirrors the GUI build's host surface.
type Sandbox interface {
	core.Sim
	core.DirtyReporter
	core.MaterialPicker
	Paint(x, y int) int
	Erase(x, y int) int
	Spray(x, y int, density float64) int
	Walls() int
	ClearBarriers() int
	BrushRadius() int
	SetBrushRadius(r int)
	Stats() sand.WorldStats
}

// Options configures the host window.
type Options struct {
	Scale      int
	TPS        int
	PanelWidth int
	Seed       int64
	Paused     bool
	Logger     *zap.Logger
}

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New panics to indicate that the ebiten build tag is required for GUI support.
func New(Sandbox, Options) *Game {
	panic("app.New requires building with the 'ebiten' tag")
}

// Reset is a no-op placeholder.
func (g *Game) Reset(int64) {}

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error {
	return fmt.Errorf("app.Game.Update requires building with the 'ebiten' tag")
}

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
