package mesh

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/goki/mat32"

	"github.com/samdwyer/blueprint/internal/world"
)

type textureMap map[string][2]string

func (m textureMap) RoomTextures(roomType string) (string, string, bool) {
	t, ok := m[roomType]
	return t[0], t[1], ok
}

var testTextures = textureMap{
	"lounge":   {"wall_2.png", "carpet.png"},
	"corridor": {"wall_3.png", "tiles.png"},
}

// twoRoomWorld is a lounge at (1,1) and a corridor at (2,1) with a door
// between them.
func twoRoomWorld(t *testing.T) *world.World {
	t.Helper()
	w := world.New(8, 8)
	if err := w.AddExpanse(&world.Expanse{Name: "ground"}, world.Rect(1, 1, 3, 2, 0)); err != nil {
		t.Fatalf("AddExpanse: %v", err)
	}
	if err := w.AddRoom(world.NewRoom("a", "lounge", 0), world.Rect(1, 1, 2, 2, 0)); err != nil {
		t.Fatalf("AddRoom a: %v", err)
	}
	if err := w.AddRoom(world.NewRoom("b", "corridor", 0), world.Rect(2, 1, 3, 2, 0)); err != nil {
		t.Fatalf("AddRoom b: %v", err)
	}
	if _, err := w.AddDoor(2, 1, 2, 2, 0); err != nil {
		t.Fatalf("AddDoor: %v", err)
	}
	return w
}

func TestRegions(t *testing.T) {
	w := twoRoomWorld(t)

	if got := len(WallRuns(OuterRegion(w), thick)); got != 6 {
		t.Errorf("outer runs = %d, want 6", got)
	}

	a := w.Rooms.Entities()[0]
	region, err := RoomRegion(w, a)
	if err != nil {
		t.Fatalf("RoomRegion: %v", err)
	}
	// The shared edge is walled from both rooms.
	if got := len(WallRuns(region, thick)); got != 4 {
		t.Errorf("room runs = %d, want 4", got)
	}

	if _, err := RoomRegion(w, world.NewRoom("ghost", "lounge", 0)); !errors.Is(err, world.ErrUnknownEntity) {
		t.Errorf("RoomRegion(ghost) err = %v, want ErrUnknownEntity", err)
	}
}

func TestBuildWorld(t *testing.T) {
	w := twoRoomWorld(t)
	bench := &world.Item{
		Kind:  "bench",
		Model: "bench",
		Shape: []world.Offset{{DX: 0, DY: 0}, {DX: 1, DY: 0}},
		Uses:  world.UsesFloor,
	}
	if err := w.PlaceItem(bench, world.C(1, 1, 0), world.Rot90); err != nil {
		t.Fatalf("PlaceItem: %v", err)
	}

	m, err := BuildWorld(context.Background(), w, DefaultParams(), testTextures)
	if err != nil {
		t.Fatalf("BuildWorld: %v", err)
	}

	names := make([]string, 0, len(m.Surfaces))
	for _, s := range m.Surfaces {
		names = append(names, s.Name)
	}
	want := []string{"base", "outer/walls", "a/walls", "a/floor", "b/walls", "b/floor"}
	if !slices.Equal(names, want) {
		t.Fatalf("surfaces = %v, want %v", names, want)
	}
	if m.Surfaces[0].Texture != BaseTexture || m.Surfaces[1].Texture != OuterWallTexture {
		t.Errorf("base/outer textures = %q, %q", m.Surfaces[0].Texture, m.Surfaces[1].Texture)
	}
	if m.Surfaces[3].Texture != "carpet.png" {
		t.Errorf("lounge floor texture = %q, want carpet.png", m.Surfaces[3].Texture)
	}

	// Three plain walls plus a door cut into three pieces per room.
	for i, want := range map[int]int{1: 6, 2: 6, 4: 6, 5: 1} {
		if got := len(m.Surfaces[i].Strips); got != want {
			t.Errorf("%s strips = %d, want %d", m.Surfaces[i].Name, got, want)
		}
	}
	if got := m.StripCount(); got != 21 {
		t.Errorf("StripCount = %d, want 21", got)
	}

	if len(m.Doors) != 1 {
		t.Fatalf("doors = %d, want 1", len(m.Doors))
	}
	if want := (Placement{Model: DoorModel, Pos: mat32.Vec3{X: 2, Y: 1}, Heading: 90}); m.Doors[0] != want {
		t.Errorf("door = %+v, want %+v", m.Doors[0], want)
	}

	if len(m.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(m.Items))
	}
	if it := m.Items[0]; it.Model != "items/bench" || it.Heading != 90 {
		t.Errorf("item = %+v, want items/bench turned 90", it)
	}
}

func TestBuildWorldMissingTextures(t *testing.T) {
	w := twoRoomWorld(t)
	_, err := BuildWorld(context.Background(), w, DefaultParams(), textureMap{"lounge": {"a", "b"}})
	if !errors.Is(err, ErrNoTextures) {
		t.Errorf("err = %v, want ErrNoTextures", err)
	}
}

func TestBuildWorldBadParams(t *testing.T) {
	p := DefaultParams()
	p.DoorWidth = 1.5
	_, err := BuildWorld(context.Background(), twoRoomWorld(t), p, testTextures)
	if !errors.Is(err, errBadParams) {
		t.Errorf("err = %v, want errBadParams", err)
	}
}

func TestFloorStrips(t *testing.T) {
	cells := []world.Cell{world.C(2, 3, 1), world.C(0, 0, 0)}
	strips := FloorStrips(slices.Values(cells), 2, 0.5)
	if len(strips) != 2 {
		t.Fatalf("got %d strips, want 2", len(strips))
	}

	v := strips[0].Vertices
	if len(v) != 4 {
		t.Fatalf("got %d vertices, want 4", len(v))
	}
	if v[0].Pos != (mat32.Vec3{X: 2, Y: 4, Z: 2.5}) || v[0].UV != (mat32.Vec2{X: 0, Y: 1}) {
		t.Errorf("first vertex = %+v", v[0])
	}
	if v[3].Pos != (mat32.Vec3{X: 3, Y: 3, Z: 2.5}) || v[3].UV != (mat32.Vec2{X: 1, Y: 0}) {
		t.Errorf("last vertex = %+v", v[3])
	}
}

func TestBaseStrip(t *testing.T) {
	s := BaseStrip(10, 4)
	if len(s.Vertices) != 4 {
		t.Fatalf("got %d vertices, want 4", len(s.Vertices))
	}
	last := s.Vertices[3]
	if last.Pos != (mat32.Vec3{X: 10, Y: 4}) || last.UV != (mat32.Vec2{X: 5, Y: 2}) {
		t.Errorf("far corner = %+v, want (10,4) uv (5,2)", last)
	}
}
