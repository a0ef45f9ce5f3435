package mesh

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/blueprint/internal/telemetry"
	"github.com/samdwyer/blueprint/internal/world"
)

const (
	BaseTexture      = "grass.png"
	OuterWallTexture = "wall_1.png"
)

// ErrNoTextures is returned when a room's type has no texture entry.
var ErrNoTextures = errors.New("no textures for room type")

// Surface is a set of strips sharing one texture.
type Surface struct {
	Name    string
	Texture string
	Strips  []Strip
}

// WorldMesh is everything a renderer needs to draw a world.
type WorldMesh struct {
	Surfaces []Surface
	Doors    []Placement
	Items    []Placement
}

// Textures maps a room type to its wall and floor textures.
type Textures interface {
	RoomTextures(roomType string) (wall, floor string, ok bool)
}

// BuildWorld derives the full mesh description: ground, outer walls, each
// room's walls and floor, and model placements for doors and items.
func BuildWorld(ctx context.Context, w *world.World, params Params, textures Textures) (WorldMesh, error) {
	tracer := telemetry.Tracer("mesh")
	ctx, span := tracer.Start(ctx, "mesh.world")
	defer span.End()

	if err := params.Validate(); err != nil {
		return WorldMesh{}, err
	}

	b := NewBuilder(params, w.Doors)
	out := WorldMesh{
		Surfaces: []Surface{
			{Name: "base", Texture: BaseTexture, Strips: []Strip{BaseStrip(w.Width, w.Height)}},
			{Name: "outer/walls", Texture: OuterWallTexture, Strips: b.Walls(ctx, OuterRegion(w))},
		},
	}

	for _, room := range w.Rooms.Entities() {
		wallTex, floorTex, ok := textures.RoomTextures(room.Type)
		if !ok {
			return WorldMesh{}, fmt.Errorf("room %s: %w %q", room.Name, ErrNoTextures, room.Type)
		}
		region, err := RoomRegion(w, room)
		if err != nil {
			return WorldMesh{}, err
		}
		cells, _ := w.Rooms.Footprint(room)

		out.Surfaces = append(out.Surfaces,
			Surface{Name: room.Name + "/walls", Texture: wallTex, Strips: b.Walls(ctx, region)},
			Surface{
				Name:    room.Name + "/floor",
				Texture: floorTex,
				Strips:  FloorStrips(slices.Values(cells), params.LayerHeight, params.FloorLift),
			},
		)
	}

	out.Doors = DoorPlacements(w.Doors.All(), params.LayerHeight)
	out.Items = ItemPlacements(w.Items.Items(), params.LayerHeight)

	span.SetAttributes(
		attribute.Int("world.rooms", w.Rooms.Len()),
		attribute.Int("world.doors", len(out.Doors)),
		attribute.Int("world.items", len(out.Items)),
		attribute.Int("mesh.surfaces", len(out.Surfaces)),
		attribute.Int("mesh.strips", out.StripCount()),
	)
	return out, nil
}

// StripCount returns the number of strips across all surfaces.
func (m WorldMesh) StripCount() int {
	n := 0
	for _, s := range m.Surfaces {
		n += len(s.Strips)
	}
	return n
}
