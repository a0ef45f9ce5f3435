// Package spatial provides a sparse, growable grid addressed by (x, y, layer).
package spatial

import (
	"errors"
	"fmt"
	"sort"
)

// MaxExtent bounds the width and height a single layer may grow to.
const MaxExtent = 1 << 16

// ErrGridTooLarge is returned when a layer would have to grow past MaxExtent.
var ErrGridTooLarge = errors.New("grid extent exceeds limit")

// Grid maps cells to values of type T. The zero T is the empty sentinel.
//
// Each layer is an independent x-major plane that only ever grows. Reads
// past the grown bound (or on a layer never written) return the zero T;
// negative x or y is a caller bug and panics.
type Grid[T any] struct {
	planes map[int]*plane[T]
}

type plane[T any] struct {
	cols          [][]T
	width, height int
}

// New creates an empty grid.
func New[T any]() *Grid[T] {
	return &Grid[T]{planes: make(map[int]*plane[T])}
}

func checkIndex(x, y int) {
	if x < 0 || y < 0 {
		panic(fmt.Sprintf("spatial: negative index (%d,%d)", x, y))
	}
}

// EnsureSize grows the given layer so that [0,width) x [0,height) is
// addressable. Existing entries are never moved or dropped.
func (g *Grid[T]) EnsureSize(width, height, layer int) error {
	checkIndex(width, height)
	if width > MaxExtent || height > MaxExtent {
		return fmt.Errorf("%w: %dx%d on layer %d", ErrGridTooLarge, width, height, layer)
	}

	p := g.planes[layer]
	if p == nil {
		p = &plane[T]{}
		g.planes[layer] = p
	}

	// Extend in the y direction first so new columns get the final height.
	if height > p.height {
		for i, col := range p.cols {
			p.cols[i] = append(col, make([]T, height-len(col))...)
		}
		p.height = height
	}
	// Then the x direction
	for len(p.cols) < width {
		p.cols = append(p.cols, make([]T, p.height))
	}
	if width > p.width {
		p.width = width
	}
	return nil
}

// Set stores v at (x, y, layer), growing the layer as needed.
func (g *Grid[T]) Set(x, y, layer int, v T) error {
	checkIndex(x, y)
	if err := g.EnsureSize(x+1, y+1, layer); err != nil {
		return err
	}
	g.planes[layer].cols[x][y] = v
	return nil
}

// Clear empties the cell. It is a no-op for cells that were never grown.
func (g *Grid[T]) Clear(x, y, layer int) {
	checkIndex(x, y)
	p := g.planes[layer]
	if p == nil || x >= p.width || y >= p.height {
		return
	}
	var zero T
	p.cols[x][y] = zero
}

// Get returns the value at (x, y, layer), or the zero T when the cell lies
// outside the grown area.
func (g *Grid[T]) Get(x, y, layer int) T {
	checkIndex(x, y)
	var zero T
	p := g.planes[layer]
	if p == nil || x >= p.width || y >= p.height {
		return zero
	}
	return p.cols[x][y]
}

// Size returns the grown width and height of a layer.
func (g *Grid[T]) Size(layer int) (width, height int) {
	p := g.planes[layer]
	if p == nil {
		return 0, 0
	}
	return p.width, p.height
}

// Layers returns every layer that has been grown, in ascending order.
func (g *Grid[T]) Layers() []int {
	layers := make([]int, 0, len(g.planes))
	for layer := range g.planes {
		layers = append(layers, layer)
	}
	sort.Ints(layers)
	return layers
}
