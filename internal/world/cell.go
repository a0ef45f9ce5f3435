// Package world provides the building model: expanses, rooms, items and
// doors, indexed by the grid cells they occupy.
package world

import "fmt"

// Cell is a grid position. Layer is a discrete floor index, not a height.
type Cell struct {
	X, Y  int
	Layer int
}

// C is shorthand for constructing a Cell.
func C(x, y, layer int) Cell {
	return Cell{X: x, Y: y, Layer: layer}
}

// Add returns the cell offset by (dx, dy) on the same layer.
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy, Layer: c.Layer}
}

// Negative reports whether the cell lies off the low edge of the world.
func (c Cell) Negative() bool {
	return c.X < 0 || c.Y < 0
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Layer)
}

// Rect returns the cells of [x, x2) x [y, y2) on a layer, x-major.
func Rect(x, y, x2, y2, layer int) []Cell {
	if x2 <= x || y2 <= y {
		return nil
	}
	cells := make([]Cell, 0, (x2-x)*(y2-y))
	for ax := x; ax < x2; ax++ {
		for ay := y; ay < y2; ay++ {
			cells = append(cells, Cell{X: ax, Y: ay, Layer: layer})
		}
	}
	return cells
}

func mustNonNegative(c Cell) {
	if c.Negative() {
		panic(fmt.Sprintf("world: negative cell %v", c))
	}
}
