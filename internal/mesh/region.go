package mesh

import (
	"fmt"
	"iter"
	"slices"

	"github.com/samdwyer/blueprint/internal/world"
)

// Region is a set of cells to wall in. A wall is raised on every cell edge
// whose neighbour fails Contains.
type Region struct {
	Name     string
	Face     Face
	Cells    iter.Seq[world.Cell]
	Contains func(world.Cell) bool
}

// RoomRegion walls a room from the inside: every neighbour that is not this
// same room is exposed.
func RoomRegion(w *world.World, room *world.Room) (Region, error) {
	cells, err := w.Rooms.Footprint(room)
	if err != nil {
		return Region{}, fmt.Errorf("room %s: %w", room.Name, err)
	}
	return Region{
		Name:  room.Name,
		Face:  Inside,
		Cells: slices.Values(cells),
		Contains: func(c world.Cell) bool {
			owner, _ := w.Rooms.At(c)
			return owner == room
		},
	}, nil
}

// OuterRegion walls the building silhouette from the outside: every
// neighbour that no room occupies is exposed.
func OuterRegion(w *world.World) Region {
	return Region{
		Name:     "outer",
		Face:     Outside,
		Cells:    w.Rooms.AllCells(),
		Contains: w.Rooms.Occupied,
	}
}
