package world

import (
	"fmt"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/blueprint/internal/spatial"
)

// ItemIndex tracks multi-owner occupancy: a cell holds a set of items.
type ItemIndex struct {
	grid       *spatial.Grid[mapset.Set[*Item]]
	footprints map[*Item][]Cell
	seq        map[*Item]int
	order      []*Item
	nextSeq    int
}

// NewItemIndex creates an empty item index.
func NewItemIndex() *ItemIndex {
	return &ItemIndex{
		grid:       spatial.New[mapset.Set[*Item]](),
		footprints: make(map[*Item][]Cell),
		seq:        make(map[*Item]int),
	}
}

// Place puts the item at origin with rotation rot. An item already placed
// here is moved: its old footprint is removed in the same step. An item
// placed in another index must be removed there first. On error the index
// and the item are left unchanged.
func (idx *ItemIndex) Place(origin Cell, rot Rotation, item *Item) error {
	if item == nil {
		return ErrNilEntity
	}
	mustNonNegative(origin)
	if item.index != nil && item.index != idx {
		return fmt.Errorf("place %s: %w", item.Kind, ErrForeignItem)
	}
	if err := ValidateShape(item.Shape); err != nil {
		return fmt.Errorf("place %s: %w", item.Kind, err)
	}

	rot = rot.Normalize()
	cells := item.FootprintAt(origin, rot)

	for _, c := range cells {
		var clash *Item
		set := idx.grid.Get(c.X, c.Y, c.Layer)
		set.Each(func(other *Item) {
			if other != item && other.Uses.Overlaps(item.Uses) && clash == nil {
				clash = other
			}
		})
		if clash != nil {
			return fmt.Errorf("place %s at %v: %w by %s", item.Kind, c, ErrOccupied, clash.Kind)
		}
	}

	w, h := item.RotatedSize(rot)
	if err := idx.grid.EnsureSize(origin.X+w, origin.Y+h, origin.Layer); err != nil {
		return fmt.Errorf("place %s: %w", item.Kind, err)
	}

	if _, moving := idx.footprints[item]; moving {
		idx.unlink(item)
	} else {
		idx.order = append(idx.order, item)
		idx.nextSeq++
		idx.seq[item] = idx.nextSeq
	}

	for _, c := range cells {
		set := idx.grid.Get(c.X, c.Y, c.Layer)
		if set.Size() == 0 {
			set = mapset.New[*Item]()
			// Cannot fail: the layer was grown above.
			_ = idx.grid.Set(c.X, c.Y, c.Layer, set)
		}
		set.Put(item)
	}

	idx.footprints[item] = cells
	item.Origin = origin
	item.Rotation = rot
	item.index = idx
	return nil
}

// Remove takes the item off every tile it covers.
func (idx *ItemIndex) Remove(item *Item) error {
	if _, ok := idx.footprints[item]; !ok {
		return ErrNotPlaced
	}
	idx.unlink(item)
	delete(idx.footprints, item)
	delete(idx.seq, item)
	if i := slices.Index(idx.order, item); i >= 0 {
		idx.order = slices.Delete(idx.order, i, i+1)
	}
	item.index = nil
	return nil
}

// unlink drops the item from the cell sets of its current footprint.
func (idx *ItemIndex) unlink(item *Item) {
	for _, c := range idx.footprints[item] {
		set := idx.grid.Get(c.X, c.Y, c.Layer)
		set.Remove(item)
		if set.Size() == 0 {
			idx.grid.Clear(c.X, c.Y, c.Layer)
		}
	}
}

// ItemsAt returns the items covering a cell in placement order. Cells off
// the grid hold nothing.
func (idx *ItemIndex) ItemsAt(cell Cell) []*Item {
	if cell.Negative() {
		return nil
	}
	var items []*Item
	set := idx.grid.Get(cell.X, cell.Y, cell.Layer)
	set.Each(func(it *Item) {
		items = append(items, it)
	})
	slices.SortFunc(items, func(a, b *Item) int { return idx.seq[a] - idx.seq[b] })
	return items
}

// UsesAt returns the combined space mask of every item on the cell.
func (idx *ItemIndex) UsesAt(cell Cell) Uses {
	var u Uses
	for _, it := range idx.ItemsAt(cell) {
		u |= it.Uses
	}
	return u
}

// Footprint returns the cells the item covers.
func (idx *ItemIndex) Footprint(item *Item) ([]Cell, error) {
	cells, ok := idx.footprints[item]
	if !ok {
		return nil, ErrNotPlaced
	}
	return slices.Clone(cells), nil
}

// Items returns every placed item in first-placement order.
func (idx *ItemIndex) Items() []*Item {
	return slices.Clone(idx.order)
}

// Len returns the number of placed items.
func (idx *ItemIndex) Len() int {
	return len(idx.order)
}
