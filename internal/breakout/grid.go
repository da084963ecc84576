package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// BrickGrid is a fixed rows×cols matrix of destructible bricks.
// Cells are stored flat in row-major order; a cell's rectangle is derived
// from its row, column and the layout constants.
type BrickGrid struct {
	Rows, Cols int

	layout config.BricksConfig
	alive  []bool
	count  int
}

// NewBrickGrid creates a grid with every cell alive.
func NewBrickGrid(layout config.BricksConfig) *BrickGrid {
	g := &BrickGrid{
		Rows:   layout.Rows,
		Cols:   layout.Cols,
		layout: layout,
		alive:  make([]bool, layout.Rows*layout.Cols),
	}
	g.Reset()
	return g
}

// Reset makes every cell alive again.
func (g *BrickGrid) Reset() {
	for i := range g.alive {
		g.alive[i] = true
	}
	g.count = len(g.alive)
}

func (g *BrickGrid) index(row, col int) (int, bool) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return 0, false
	}
	return row*g.Cols + col, true
}

// Alive reports whether the cell holds a brick. Out-of-range cells are dead.
func (g *BrickGrid) Alive(row, col int) bool {
	i, ok := g.index(row, col)
	return ok && g.alive[i]
}

// Kill clears a cell. Killing a dead or out-of-range cell does nothing.
func (g *BrickGrid) Kill(row, col int) {
	i, ok := g.index(row, col)
	if !ok || !g.alive[i] {
		return
	}
	g.alive[i] = false
	g.count--
}

// AliveCount returns the number of bricks left.
func (g *BrickGrid) AliveCount() int {
	return g.count
}

// IsCleared reports whether every brick is gone.
func (g *BrickGrid) IsCleared() bool {
	return g.count == 0
}

// Rect returns the bounds of a cell, alive or not.
func (g *BrickGrid) Rect(row, col int) core.Rect {
	l := g.layout
	return core.NewRect(
		float64(col)*(l.Width+l.Padding)+l.OffsetX,
		float64(row)*(l.Height+l.Padding)+l.OffsetY,
		l.Width,
		l.Height,
	)
}

// ForEachAlive visits alive cells row by row, left to right.
// Returning false from visit stops the walk.
func (g *BrickGrid) ForEachAlive(visit func(row, col int, r core.Rect) bool) {
	for row := range g.Rows {
		for col := range g.Cols {
			if !g.alive[row*g.Cols+col] {
				continue
			}
			if !visit(row, col, g.Rect(row, col)) {
				return
			}
		}
	}
}

// cells returns a copy of the alive flags in row-major order.
func (g *BrickGrid) cells() []bool {
	out := make([]bool, len(g.alive))
	copy(out, g.alive)
	return out
}

// restore overwrites the alive flags. Lengths must match.
func (g *BrickGrid) restore(flags []bool) bool {
	if len(flags) != len(g.alive) {
		return false
	}
	copy(g.alive, flags)
	g.count = 0
	for _, a := range g.alive {
		if a {
			g.count++
		}
	}
	return true
}
