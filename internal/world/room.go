package world

// Expanse is a building floor: a contiguous set of tiles on one layer.
type Expanse struct {
	Name  string
	Floor int
}

// Room is a typed area inside an expanse (e.g., "corridor", "lounge").
// The room type selects its textures and plan colour.
type Room struct {
	Name  string
	Type  string
	Floor int
}

// NewRoom creates a room of the given type on a floor.
func NewRoom(name, roomType string, floor int) *Room {
	return &Room{Name: name, Type: roomType, Floor: floor}
}
