// Package layout reads building layouts from YAML and turns them into
// worlds.
package layout

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/blueprint/internal/mesh"
	"github.com/samdwyer/blueprint/internal/world"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid wraps every layout validation failure.
var ErrInvalid = errors.New("invalid layout")

type Layout struct {
	Width    int        `yaml:"width"`
	Height   int        `yaml:"height"`
	Render   RenderSpec `yaml:"render"`
	Expanses []AreaSpec `yaml:"expanses"`
	Rooms    []RoomSpec `yaml:"rooms"`
	Doors    []DoorSpec `yaml:"doors,omitempty"`
	Items    []ItemSpec `yaml:"items,omitempty"`
}

// RenderSpec carries the mesh proportions. Zero fields take the defaults.
type RenderSpec struct {
	WallThickness float32 `yaml:"wall_thickness"`
	WallHeight    float32 `yaml:"wall_height"`
	LayerHeight   float32 `yaml:"layer_height"`
	DoorWidth     float32 `yaml:"door_width"`
	DoorHeight    float32 `yaml:"door_height"`
	FloorLift     float32 `yaml:"floor_lift"`
}

// Rect is [x, y, x2, y2): the cells from (x,y) up to but excluding
// (x2,y2).
type Rect [4]int

type AreaSpec struct {
	Name  string `yaml:"name"`
	Floor int    `yaml:"floor"`
	Rects []Rect `yaml:"rects"`
}

type RoomSpec struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Floor int    `yaml:"floor"`
	Rects []Rect `yaml:"rects"`
}

// DoorSpec is a unit wall segment between two grid points.
type DoorSpec struct {
	From  [2]int `yaml:"from"`
	To    [2]int `yaml:"to"`
	Floor int    `yaml:"floor"`
}

type ItemSpec struct {
	Kind     string `yaml:"kind"`
	At       [2]int `yaml:"at"`
	Floor    int    `yaml:"floor"`
	Rotation int    `yaml:"rotation,omitempty"` // Quarter turns anticlockwise
}

// Load reads a layout file. An empty path yields the built-in layout.
func Load(path string) (Layout, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, err
	}
	l, err := Parse(b)
	if err != nil {
		return l, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Default returns the built-in two-room layout.
func Default() (Layout, error) {
	l, err := Parse(defaultYAML)
	if err != nil {
		return l, fmt.Errorf("default.yaml: %w", err)
	}
	return l, nil
}

// Parse decodes, normalizes and validates a layout document.
func Parse(b []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(b, &l); err != nil {
		return l, err
	}
	l.Normalize()
	if err := l.Validate(); err != nil {
		return l, err
	}
	return l, nil
}

// Normalize fills defaults: unset render fields, room names, and rect
// corners given in the wrong order.
func (l *Layout) Normalize() {
	def := mesh.DefaultParams()
	r := &l.Render
	r.WallThickness = orDefault(r.WallThickness, def.Thickness)
	r.WallHeight = orDefault(r.WallHeight, def.WallHeight)
	r.LayerHeight = orDefault(r.LayerHeight, def.LayerHeight)
	r.DoorWidth = orDefault(r.DoorWidth, def.DoorWidth)
	r.DoorHeight = orDefault(r.DoorHeight, def.DoorHeight)
	r.FloorLift = orDefault(r.FloorLift, def.FloorLift)

	for i := range l.Expanses {
		e := &l.Expanses[i]
		if e.Name == "" {
			e.Name = fmt.Sprintf("floor%d", e.Floor)
		}
		normalizeRects(e.Rects)
	}
	for i := range l.Rooms {
		rm := &l.Rooms[i]
		rm.Type = strings.ToLower(strings.TrimSpace(rm.Type))
		if rm.Name == "" {
			rm.Name = fmt.Sprintf("%s%d", rm.Type, i+1)
		}
		normalizeRects(rm.Rects)
	}
}

func orDefault(v, def float32) float32 {
	if v == 0 {
		return def
	}
	return v
}

func normalizeRects(rects []Rect) {
	for i, r := range rects {
		x, y, x2, y2 := r[0], r[1], r[2], r[3]
		rects[i] = Rect{min(x, x2), min(y, y2), max(x, x2), max(y, y2)}
	}
}

// Validate checks that the layout describes a buildable world.
func (l *Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, l.Width, l.Height)
	}
	if err := l.Params().Validate(); err != nil {
		return fmt.Errorf("%w: render: %w", ErrInvalid, err)
	}

	for _, e := range l.Expanses {
		if err := l.checkRects("expanse "+e.Name, e.Rects); err != nil {
			return err
		}
	}

	names := make(map[string]bool, len(l.Rooms))
	for _, rm := range l.Rooms {
		if names[rm.Name] {
			return fmt.Errorf("%w: duplicate room %q", ErrInvalid, rm.Name)
		}
		names[rm.Name] = true
		if rm.Type == "" {
			return fmt.Errorf("%w: room %s has no type", ErrInvalid, rm.Name)
		}
		if err := l.checkRects("room "+rm.Name, rm.Rects); err != nil {
			return err
		}
	}

	for _, d := range l.Doors {
		if _, err := world.NewDoor(d.From[0], d.From[1], d.To[0], d.To[1], d.Floor); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}

	for _, it := range l.Items {
		if it.Kind == "" {
			return fmt.Errorf("%w: item at %v has no kind", ErrInvalid, it.At)
		}
		if !l.inside(it.At[0], it.At[1]) {
			return fmt.Errorf("%w: item %s at %v is outside the world", ErrInvalid, it.Kind, it.At)
		}
	}
	return nil
}

func (l *Layout) checkRects(owner string, rects []Rect) error {
	if len(rects) == 0 {
		return fmt.Errorf("%w: %s has no cells", ErrInvalid, owner)
	}
	for _, r := range rects {
		if r[0] == r[2] || r[1] == r[3] {
			return fmt.Errorf("%w: %s: empty rect %v", ErrInvalid, owner, r)
		}
		if !l.inside(r[0], r[1]) || r[2] > l.Width || r[3] > l.Height {
			return fmt.Errorf("%w: %s: rect %v is outside the world", ErrInvalid, owner, r)
		}
	}
	return nil
}

func (l *Layout) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.Width && y < l.Height
}

// Params returns the mesh proportions for this layout.
func (l *Layout) Params() mesh.Params {
	r := l.Render
	return mesh.Params{
		Thickness:   r.WallThickness,
		WallHeight:  r.WallHeight,
		LayerHeight: r.LayerHeight,
		DoorWidth:   r.DoorWidth,
		DoorHeight:  r.DoorHeight,
		FloorLift:   r.FloorLift,
	}
}

// Cells expands rects into cells on one floor. Cells covered by several
// rects appear once.
func Cells(rects []Rect, floor int) []world.Cell {
	seen := make(map[world.Cell]bool)
	var cells []world.Cell
	for _, r := range rects {
		for _, c := range world.Rect(r[0], r[1], r[2], r[3], floor) {
			if !seen[c] {
				seen[c] = true
				cells = append(cells, c)
			}
		}
	}
	return cells
}
