package mesh

import (
	"iter"

	"github.com/goki/mat32"

	"github.com/samdwyer/blueprint/internal/world"
)

// FloorStrips emits one textured quad per cell, raised lift above the
// cell's layer base.
func FloorStrips(cells iter.Seq[world.Cell], layerHeight, lift float32) []Strip {
	var strips []Strip
	for c := range cells {
		x, y := float32(c.X), float32(c.Y)
		z := float32(c.Layer)*layerHeight + lift
		strips = append(strips, Strip{Vertices: []Vertex{
			{Pos: mat32.Vec3{X: x, Y: y + 1, Z: z}, UV: mat32.Vec2{X: 0, Y: 1}},
			{Pos: mat32.Vec3{X: x, Y: y, Z: z}, UV: mat32.Vec2{X: 0, Y: 0}},
			{Pos: mat32.Vec3{X: x + 1, Y: y + 1, Z: z}, UV: mat32.Vec2{X: 1, Y: 1}},
			{Pos: mat32.Vec3{X: x + 1, Y: y, Z: z}, UV: mat32.Vec2{X: 1, Y: 0}},
		}})
	}
	return strips
}

// BaseStrip is the ground plane under the whole world. The texture repeats
// every two units.
func BaseStrip(width, height int) Strip {
	w, h := float32(width), float32(height)
	corner := func(x, y float32) Vertex {
		return Vertex{
			Pos: mat32.Vec3{X: x, Y: y, Z: 0},
			UV:  mat32.Vec2{X: x / 2, Y: y / 2},
		}
	}
	return Strip{Vertices: []Vertex{
		corner(0, 0),
		corner(w, 0),
		corner(0, h),
		corner(w, h),
	}}
}

// Placement positions a premade model.
type Placement struct {
	Model   string
	Pos     mat32.Vec3
	Heading float32 // Degrees about the vertical axis
}

// DoorModel is the model dropped into every door opening.
const DoorModel = "doors/door_1"

// DoorPlacements positions a door model at the start of each door segment,
// turned to lie along it.
func DoorPlacements(doors []world.Door, layerHeight float32) []Placement {
	out := make([]Placement, 0, len(doors))
	for _, d := range doors {
		var heading float32
		if d.AlongY() {
			heading = 90
		}
		out = append(out, Placement{
			Model:   DoorModel,
			Pos:     mat32.Vec3{X: float32(d.X), Y: float32(d.Y), Z: float32(d.Layer) * layerHeight},
			Heading: heading,
		})
	}
	return out
}

// ItemPlacements positions each placed item's model at its origin.
func ItemPlacements(items []*world.Item, layerHeight float32) []Placement {
	out := make([]Placement, 0, len(items))
	for _, it := range items {
		if !it.Placed() {
			continue
		}
		out = append(out, Placement{
			Model: "items/" + it.Model,
			Pos: mat32.Vec3{
				X: float32(it.Origin.X),
				Y: float32(it.Origin.Y),
				Z: float32(it.Origin.Layer) * layerHeight,
			},
			Heading: it.Rotation.Degrees(),
		})
	}
	return out
}
