package world

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// Door marks a unit wall segment between grid points (X,Y) and (X2,Y2) on
// a layer. Doors are always stored normalized.
type Door struct {
	X, Y   int
	X2, Y2 int
	Layer  int
}

// NormalizeDoor orders the endpoints so the smaller point comes first;
// a segment and its reverse normalize to the same Door.
func NormalizeDoor(x, y, x2, y2, layer int) Door {
	if x > x2 || (x == x2 && y > y2) {
		x, y, x2, y2 = x2, y2, x, y
	}
	return Door{X: x, Y: y, X2: x2, Y2: y2, Layer: layer}
}

// NewDoor validates and normalizes a door segment.
func NewDoor(x, y, x2, y2, layer int) (Door, error) {
	if x < 0 || y < 0 || x2 < 0 || y2 < 0 {
		return Door{}, fmt.Errorf("%w: negative point in (%d,%d)-(%d,%d)", ErrBadDoor, x, y, x2, y2)
	}
	dx, dy := abs(x2-x), abs(y2-y)
	if dx+dy != 1 {
		return Door{}, fmt.Errorf("%w: (%d,%d)-(%d,%d) is not a unit axis-aligned segment", ErrBadDoor, x, y, x2, y2)
	}
	return NormalizeDoor(x, y, x2, y2, layer), nil
}

// AlongY reports whether the segment runs in the y direction, i.e. the
// door sits between two cells that differ in x.
func (d Door) AlongY() bool {
	return d.X == d.X2
}

func (d Door) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)@%d", d.X, d.Y, d.X2, d.Y2, d.Layer)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// DoorSet is a set of door segments. Every read and write normalizes, so
// lookups do not depend on segment orientation.
type DoorSet struct {
	doors mapset.Set[Door]
}

// NewDoorSet creates an empty door set.
func NewDoorSet() *DoorSet {
	return &DoorSet{doors: mapset.New[Door]()}
}

// Add registers a door, rejecting malformed segments.
func (s *DoorSet) Add(x, y, x2, y2, layer int) (Door, error) {
	d, err := NewDoor(x, y, x2, y2, layer)
	if err != nil {
		return Door{}, err
	}
	s.doors.Put(d)
	return d, nil
}

// Remove deletes a door and reports whether it was present.
func (s *DoorSet) Remove(x, y, x2, y2, layer int) bool {
	d := NormalizeDoor(x, y, x2, y2, layer)
	if !s.doors.Has(d) {
		return false
	}
	s.doors.Remove(d)
	return true
}

// Contains reports whether the segment, in either orientation, is a door.
func (s *DoorSet) Contains(x, y, x2, y2, layer int) bool {
	return s.doors.Has(NormalizeDoor(x, y, x2, y2, layer))
}

// Len returns the number of doors.
func (s *DoorSet) Len() int {
	return s.doors.Size()
}

// All returns every door sorted by layer, then position.
func (s *DoorSet) All() []Door {
	doors := make([]Door, 0, s.doors.Size())
	s.doors.Each(func(d Door) {
		doors = append(doors, d)
	})
	slices.SortFunc(doors, func(a, b Door) int {
		return cmp.Or(
			cmp.Compare(a.Layer, b.Layer),
			cmp.Compare(a.X, b.X),
			cmp.Compare(a.Y, b.Y),
			cmp.Compare(a.X2, b.X2),
			cmp.Compare(a.Y2, b.Y2),
		)
	})
	return doors
}
