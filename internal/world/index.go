package world

import (
	"fmt"
	"iter"
	"slices"

	"github.com/samdwyer/blueprint/internal/spatial"
)

// Index tracks single-owner occupancy: each cell holds at most one entity,
// and each entity knows every cell it holds.
//
// The grid and the per-entity footprints are only mutated through Add,
// AddCells and Remove, which keep both directions in step.
type Index[E comparable] struct {
	grid       *spatial.Grid[E]
	footprints map[E][]Cell
	order      []E
}

// NewIndex creates an empty index.
func NewIndex[E comparable]() *Index[E] {
	return &Index[E]{
		grid:       spatial.New[E](),
		footprints: make(map[E][]Cell),
	}
}

// Add records that e occupies cell. Whatever previously owned the cell
// loses it.
func (i *Index[E]) Add(cell Cell, e E) error {
	return i.AddCells([]Cell{cell}, e)
}

// AddCells records that e occupies every given cell. Either all cells are
// installed or, on error, none are.
func (i *Index[E]) AddCells(cells []Cell, e E) error {
	var zero E
	if e == zero {
		return ErrNilEntity
	}
	for _, c := range cells {
		mustNonNegative(c)
	}
	if err := i.grow(cells); err != nil {
		return err
	}

	for _, c := range cells {
		owner := i.grid.Get(c.X, c.Y, c.Layer)
		if owner == e {
			continue
		}
		if owner != zero {
			i.dropCell(owner, c)
		}
		// Cannot fail: grow covered every cell.
		_ = i.grid.Set(c.X, c.Y, c.Layer, e)
		if _, ok := i.footprints[e]; !ok {
			i.order = append(i.order, e)
		}
		i.footprints[e] = append(i.footprints[e], c)
	}
	return nil
}

// Replace moves e onto exactly the given cells, clearing its previous
// footprint in the same step. e moves to the end of Entities.
func (i *Index[E]) Replace(cells []Cell, e E) error {
	var zero E
	if e == zero {
		return ErrNilEntity
	}
	for _, c := range cells {
		mustNonNegative(c)
	}
	if err := i.grow(cells); err != nil {
		return err
	}
	if old, ok := i.footprints[e]; ok {
		for _, c := range slices.Clone(old) {
			i.Remove(c)
		}
	}
	return i.AddCells(cells, e)
}

// grow sizes every touched layer up front so no write can fail midway.
func (i *Index[E]) grow(cells []Cell) error {
	type extent struct{ w, h int }
	need := make(map[int]extent)
	for _, c := range cells {
		ext := need[c.Layer]
		ext.w = max(ext.w, c.X+1)
		ext.h = max(ext.h, c.Y+1)
		need[c.Layer] = ext
	}
	for layer, ext := range need {
		if err := i.grid.EnsureSize(ext.w, ext.h, layer); err != nil {
			return fmt.Errorf("index grow: %w", err)
		}
	}
	return nil
}

// Remove clears the cell and trims it from its owner's footprint. It is a
// no-op for empty cells.
func (i *Index[E]) Remove(cell Cell) {
	mustNonNegative(cell)
	var zero E
	owner := i.grid.Get(cell.X, cell.Y, cell.Layer)
	if owner == zero {
		return
	}
	i.grid.Clear(cell.X, cell.Y, cell.Layer)
	i.dropCell(owner, cell)
}

// RemoveEntity clears every cell owned by e.
func (i *Index[E]) RemoveEntity(e E) error {
	cells, ok := i.footprints[e]
	if !ok {
		return ErrUnknownEntity
	}
	for _, c := range slices.Clone(cells) {
		i.Remove(c)
	}
	return nil
}

func (i *Index[E]) dropCell(owner E, cell Cell) {
	cells := i.footprints[owner]
	if idx := slices.Index(cells, cell); idx >= 0 {
		cells = slices.Delete(cells, idx, idx+1)
	}
	if len(cells) == 0 {
		delete(i.footprints, owner)
		if idx := slices.Index(i.order, owner); idx >= 0 {
			i.order = slices.Delete(i.order, idx, idx+1)
		}
		return
	}
	i.footprints[owner] = cells
}

// At returns the owner of a cell. Cells off the grid, including negative
// neighbour lookups, are reported empty.
func (i *Index[E]) At(cell Cell) (E, bool) {
	var zero E
	if cell.Negative() {
		return zero, false
	}
	owner := i.grid.Get(cell.X, cell.Y, cell.Layer)
	return owner, owner != zero
}

// Occupied reports whether any entity owns the cell.
func (i *Index[E]) Occupied(cell Cell) bool {
	_, ok := i.At(cell)
	return ok
}

// Footprint returns the cells owned by e, in insertion order.
func (i *Index[E]) Footprint(e E) ([]Cell, error) {
	cells, ok := i.footprints[e]
	if !ok {
		return nil, ErrUnknownEntity
	}
	return slices.Clone(cells), nil
}

// Entities returns every indexed entity in first-insertion order.
func (i *Index[E]) Entities() []E {
	return slices.Clone(i.order)
}

// Len returns the number of indexed entities.
func (i *Index[E]) Len() int {
	return len(i.order)
}

// AllCells yields every occupied cell, entity by entity. The index must not
// be mutated while iterating.
func (i *Index[E]) AllCells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, e := range i.order {
			for _, c := range i.footprints[e] {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Layers returns every layer the index has grown, ascending.
func (i *Index[E]) Layers() []int {
	return i.grid.Layers()
}
