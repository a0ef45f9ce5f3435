package world

import (
	"fmt"
	"strings"
)

// Uses is a bit mask of the vertical bands of a tile an item takes up.
// A rug uses only the floor, a bench the lower band, a control tower all
// three.
type Uses uint8

const (
	UsesFloor Uses = 1 << iota
	UsesLower
	UsesUpper

	UsesNonFloor = UsesLower | UsesUpper
	UsesAll      = UsesFloor | UsesNonFloor
)

// Overlaps reports whether two masks share a band.
func (u Uses) Overlaps(other Uses) bool {
	return u&other != 0
}

// String returns the bands as a "floor|lower|upper" list.
func (u Uses) String() string {
	if u == 0 {
		return "none"
	}
	var parts []string
	if u&UsesFloor != 0 {
		parts = append(parts, "floor")
	}
	if u&UsesLower != 0 {
		parts = append(parts, "lower")
	}
	if u&UsesUpper != 0 {
		parts = append(parts, "upper")
	}
	return strings.Join(parts, "|")
}

// ParseUses converts band names into a mask.
func ParseUses(names []string) (Uses, error) {
	var u Uses
	for _, name := range names {
		switch name {
		case "floor":
			u |= UsesFloor
		case "lower":
			u |= UsesLower
		case "upper":
			u |= UsesUpper
		case "nonfloor":
			u |= UsesNonFloor
		case "all":
			u |= UsesAll
		default:
			return 0, fmt.Errorf("unknown space band %q", name)
		}
	}
	return u, nil
}

// Rotation is a number of quarter turns anticlockwise, 0 to 3.
type Rotation int

const (
	Rot0 Rotation = iota
	Rot90
	Rot180
	Rot270
)

// Normalize folds any turn count into 0..3.
func (r Rotation) Normalize() Rotation {
	return ((r % 4) + 4) % 4
}

// Degrees returns the rotation angle.
func (r Rotation) Degrees() float32 {
	return 90 * float32(r.Normalize())
}

// Offset is a tile position relative to an item's origin.
type Offset struct {
	DX, DY int
}

// Item is something that sits on the map and can be rotated. Several items
// may share a tile as long as their Uses masks do not overlap.
type Item struct {
	Kind  string // Catalog identifier (e.g., "bench")
	Name  string
	Model string

	// Shape lists the covered tiles relative to the origin before rotation.
	// Offsets are non-negative and at least one lies on each zero axis.
	Shape []Offset
	Uses  Uses

	// Set by ItemIndex.Place
	Origin   Cell
	Rotation Rotation

	index *ItemIndex // Index holding the item, nil when unplaced
}

// NewItem creates an item of a single tile that uses every band.
func NewItem(kind string) *Item {
	return &Item{
		Kind:  kind,
		Name:  kind,
		Shape: []Offset{{0, 0}},
		Uses:  UsesAll,
	}
}

// Placed reports whether the item is currently on a grid.
func (it *Item) Placed() bool {
	return it.index != nil
}

// Size returns the bounding box of the unrotated shape.
func (it *Item) Size() (width, height int) {
	for _, o := range it.Shape {
		width = max(width, o.DX+1)
		height = max(height, o.DY+1)
	}
	return width, height
}

// RotatedSize returns the bounding box after rotation.
func (it *Item) RotatedSize(rot Rotation) (width, height int) {
	width, height = it.Size()
	if rot.Normalize()%2 == 1 {
		width, height = height, width
	}
	return width, height
}

// ValidateShape checks the offset rules.
func ValidateShape(shape []Offset) error {
	if len(shape) == 0 {
		return fmt.Errorf("%w: empty", ErrBadShape)
	}
	seen := make(map[Offset]bool, len(shape))
	zeroX, zeroY := false, false
	for _, o := range shape {
		if o.DX < 0 || o.DY < 0 {
			return fmt.Errorf("%w: negative offset (%d,%d)", ErrBadShape, o.DX, o.DY)
		}
		if seen[o] {
			return fmt.Errorf("%w: duplicate offset (%d,%d)", ErrBadShape, o.DX, o.DY)
		}
		seen[o] = true
		zeroX = zeroX || o.DX == 0
		zeroY = zeroY || o.DY == 0
	}
	if !zeroX || !zeroY {
		return fmt.Errorf("%w: no tile on a zero axis", ErrBadShape)
	}
	return nil
}

// RotateShape turns each offset (dx,dy) -> (-dy,dx) once per quarter turn,
// then shifts the result back so its smallest x and y are zero.
func RotateShape(shape []Offset, rot Rotation) []Offset {
	out := make([]Offset, len(shape))
	copy(out, shape)
	for range rot.Normalize() {
		for i, o := range out {
			out[i] = Offset{DX: -o.DY, DY: o.DX}
		}
	}

	if len(out) == 0 {
		return out
	}
	minX, minY := out[0].DX, out[0].DY
	for _, o := range out[1:] {
		minX = min(minX, o.DX)
		minY = min(minY, o.DY)
	}
	for i := range out {
		out[i].DX -= minX
		out[i].DY -= minY
	}
	return out
}

// FootprintAt returns the absolute cells the item would cover if placed at
// origin with the given rotation.
func (it *Item) FootprintAt(origin Cell, rot Rotation) []Cell {
	shape := RotateShape(it.Shape, rot)
	cells := make([]Cell, len(shape))
	for i, o := range shape {
		cells[i] = origin.Add(o.DX, o.DY)
	}
	return cells
}
