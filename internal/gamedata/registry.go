package gamedata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/blueprint/internal/world"
)

// ErrUnknownKind is returned for catalog lookups that miss.
var ErrUnknownKind = errors.New("unknown catalog entry")

// ItemRegistry holds the item catalog keyed by ID.
type ItemRegistry struct {
	items map[string]*ItemDef
	all   []ItemDef
}

// NewItemRegistry creates a registry from loaded item definitions.
func NewItemRegistry(items []ItemDef) *ItemRegistry {
	registry := &ItemRegistry{
		items: make(map[string]*ItemDef),
		all:   items,
	}
	for i := range items {
		registry.items[items[i].ID] = &items[i]
	}
	return registry
}

// LoadItemRegistry builds a registry from the embedded items.json.
func LoadItemRegistry() (*ItemRegistry, error) {
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("no items loaded from items.json")
	}
	return NewItemRegistry(items), nil
}

// MustLoadItemRegistry loads a registry, panicking on error.
func MustLoadItemRegistry() *ItemRegistry {
	registry, err := LoadItemRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the definition with the given ID, or nil if not found.
func (r *ItemRegistry) GetByID(id string) *ItemDef {
	return r.items[id]
}

// NewItem creates an unplaced item of the given kind.
func (r *ItemRegistry) NewItem(id string) (*world.Item, error) {
	def := r.items[id]
	if def == nil {
		return nil, fmt.Errorf("item %q: %w", id, ErrUnknownKind)
	}
	return def.NewItem()
}

// All returns every item definition in catalog order.
func (r *ItemRegistry) All() []ItemDef {
	return r.all
}

// Count returns the number of item kinds.
func (r *ItemRegistry) Count() int {
	return len(r.all)
}

// RoomTypeRegistry holds the room-type catalog keyed by ID.
type RoomTypeRegistry struct {
	types map[string]*RoomTypeDef
	all   []RoomTypeDef
}

// NewRoomTypeRegistry creates a registry from loaded room types.
func NewRoomTypeRegistry(types []RoomTypeDef) *RoomTypeRegistry {
	registry := &RoomTypeRegistry{
		types: make(map[string]*RoomTypeDef),
		all:   types,
	}
	for i := range types {
		registry.types[types[i].ID] = &types[i]
	}
	return registry
}

// LoadRoomTypeRegistry builds a registry from the embedded roomtypes.json.
func LoadRoomTypeRegistry() (*RoomTypeRegistry, error) {
	types, err := LoadRoomTypes()
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, errors.New("no room types loaded from roomtypes.json")
	}
	return NewRoomTypeRegistry(types), nil
}

// MustLoadRoomTypeRegistry loads a registry, panicking on error.
func MustLoadRoomTypeRegistry() *RoomTypeRegistry {
	registry, err := LoadRoomTypeRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the room type with the given ID, or nil if not found.
func (r *RoomTypeRegistry) GetByID(id string) *RoomTypeDef {
	return r.types[id]
}

// RoomTextures returns the wall and floor textures for a room type.
func (r *RoomTypeRegistry) RoomTextures(roomType string) (wall, floor string, ok bool) {
	def := r.types[roomType]
	if def == nil {
		return "", "", false
	}
	return def.WallTexture, def.FloorTexture, true
}

// All returns every room type in catalog order.
func (r *RoomTypeRegistry) All() []RoomTypeDef {
	return r.all
}

// Count returns the number of room types.
func (r *RoomTypeRegistry) Count() int {
	return len(r.all)
}
