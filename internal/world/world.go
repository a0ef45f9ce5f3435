package world

import (
	"fmt"
	"slices"
)

// World owns every index for one building. Nothing here is shared between
// worlds.
type World struct {
	Width  int
	Height int

	Expanses *Index[*Expanse]
	Rooms    *Index[*Room]
	Items    *ItemIndex
	Doors    *DoorSet
}

// New creates an empty world of the given ground size.
func New(width, height int) *World {
	return &World{
		Width:    width,
		Height:   height,
		Expanses: NewIndex[*Expanse](),
		Rooms:    NewIndex[*Room](),
		Items:    NewItemIndex(),
		Doors:    NewDoorSet(),
	}
}

// AddExpanse claims cells for an expanse. All cells must lie on its floor.
func (w *World) AddExpanse(e *Expanse, cells []Cell) error {
	if err := checkFloor(e.Floor, cells); err != nil {
		return fmt.Errorf("expanse %s: %w", e.Name, err)
	}
	return w.Expanses.AddCells(cells, e)
}

// AddRoom claims cells for a room. All cells must lie on its floor and
// inside an expanse.
func (w *World) AddRoom(r *Room, cells []Cell) error {
	if err := checkFloor(r.Floor, cells); err != nil {
		return fmt.Errorf("room %s: %w", r.Name, err)
	}
	for _, c := range cells {
		if !w.Expanses.Occupied(c) {
			return fmt.Errorf("room %s: %w: %v", r.Name, ErrOutsideExpanse, c)
		}
	}
	return w.Rooms.AddCells(cells, r)
}

// AddDoor registers a door along the wall segment (x,y)-(x2,y2).
func (w *World) AddDoor(x, y, x2, y2, layer int) (Door, error) {
	return w.Doors.Add(x, y, x2, y2, layer)
}

// PlaceItem puts an item at origin with rotation rot.
func (w *World) PlaceItem(item *Item, origin Cell, rot Rotation) error {
	return w.Items.Place(origin, rot, item)
}

// RoomAt returns the room owning a cell, or nil.
func (w *World) RoomAt(c Cell) *Room {
	r, _ := w.Rooms.At(c)
	return r
}

// Floors returns every layer holding an expanse or a room, ascending.
func (w *World) Floors() []int {
	seen := make(map[int]bool)
	for _, e := range w.Expanses.Entities() {
		seen[e.Floor] = true
	}
	for _, r := range w.Rooms.Entities() {
		seen[r.Floor] = true
	}
	floors := make([]int, 0, len(seen))
	for f := range seen {
		floors = append(floors, f)
	}
	slices.Sort(floors)
	return floors
}

func checkFloor(floor int, cells []Cell) error {
	for _, c := range cells {
		if c.Layer != floor {
			return fmt.Errorf("%w: %v not on floor %d", ErrFloorMismatch, c, floor)
		}
	}
	return nil
}
