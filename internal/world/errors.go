package world

import "errors"

var (
	// ErrUnknownEntity is returned when an entity has no footprint in an index.
	ErrUnknownEntity = errors.New("entity not indexed")
	// ErrNilEntity is returned when the empty value is passed as an occupant.
	ErrNilEntity = errors.New("nil entity")
	// ErrNotPlaced is returned when removing an item that is not on the grid.
	ErrNotPlaced = errors.New("item not placed")
	// ErrForeignItem is returned when placing an item that another index
	// still holds.
	ErrForeignItem = errors.New("item placed in another index")
	// ErrOccupied is returned when an item's space usage collides with an
	// item already on one of its tiles.
	ErrOccupied = errors.New("tile space already used")
	// ErrBadShape is returned for item shapes that break the offset rules.
	ErrBadShape = errors.New("invalid item shape")
	// ErrBadDoor is returned for door segments that are not unit length and
	// axis-aligned.
	ErrBadDoor = errors.New("invalid door segment")
	// ErrFloorMismatch is returned when cells are added on a layer other
	// than the entity's floor.
	ErrFloorMismatch = errors.New("cell not on entity floor")
	// ErrOutsideExpanse is returned when a room claims a cell no expanse
	// covers.
	ErrOutsideExpanse = errors.New("cell outside every expanse")
)
