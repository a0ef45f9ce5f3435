package mesh

import (
	"context"

	"github.com/goki/mat32"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/blueprint/internal/telemetry"
)

// capV is the texture v at the top of a wall face; the cap running from
// the face back to the grid line takes the rest of the texture.
const capV = 0.9

// minFaceLength is the shortest face worth emitting.
const minFaceLength = 1e-6

// Vertex is a position with a texture coordinate.
type Vertex struct {
	Pos mat32.Vec3
	UV  mat32.Vec2
}

// Strip is a triangle strip.
type Strip struct {
	Vertices []Vertex
}

// DoorLookup reports whether a wall segment carries a door.
type DoorLookup interface {
	Contains(x, y, x2, y2, layer int) bool
}

// Builder turns wall runs into textured strips.
type Builder struct {
	params Params
	doors  DoorLookup
}

// NewBuilder creates a builder. doors may be nil for a world without doors.
func NewBuilder(params Params, doors DoorLookup) *Builder {
	return &Builder{params: params, doors: doors}
}

// Params returns the builder's geometry parameters.
func (b *Builder) Params() Params {
	return b.params
}

// IsDoor reports whether the run's segment is a registered door.
func (b *Builder) IsDoor(run WallRun) bool {
	if b.doors == nil {
		return false
	}
	return b.doors.Contains(run.From.X, run.From.Y, run.To.X, run.To.Y, run.Layer)
}

// Walls builds every wall strip for a region.
func (b *Builder) Walls(ctx context.Context, region Region) []Strip {
	tracer := telemetry.Tracer("mesh")
	_, span := tracer.Start(ctx, "mesh.walls")
	defer span.End()

	runs := WallRuns(region, b.params.Thickness)

	var strips []Strip
	doors, skipped := 0, 0
	for _, run := range runs {
		if run.FaceLength() <= minFaceLength {
			skipped++
			continue
		}
		if b.IsDoor(run) {
			doors++
		}
		strips = append(strips, b.Strips(run)...)
	}

	span.SetAttributes(
		attribute.String("region.name", region.Name),
		attribute.String("region.face", region.Face.String()),
		attribute.Int("walls.runs", len(runs)),
		attribute.Int("walls.doors", doors),
		attribute.Int("walls.skipped", skipped),
		attribute.Int("walls.strips", len(strips)),
	)
	return strips
}

// Strips emits one run: a single face-and-cap strip, or, for a door, a
// right jamb, a lintel and a left jamb.
func (b *Builder) Strips(run WallRun) []Strip {
	p := b.params
	base := float32(run.Layer) * p.LayerHeight
	top := base + p.WallHeight

	from, to := vec(run.From), vec(run.To)
	along := to.Sub(from)
	length := along.Length()

	// Signed chamfer fractions along the run keep the texture from
	// stretching or mirroring at corners.
	du1 := run.Chamfer[0].Dot(along) / (length * length)
	du2 := run.Chamfer[1].Dot(along) / (length * length)

	face1 := from.Add(run.Offset).Add(run.Chamfer[0])
	face2 := to.Add(run.Offset).Add(run.Chamfer[1])

	if !b.IsDoor(run) {
		return []Strip{{Vertices: []Vertex{
			vtx(face2, base, -du2, 0),
			vtx(face1, base, 1-du1, 0),
			vtx(face2, top, -du2, capV),
			vtx(face1, top, 1-du1, capV),
			vtx(to, top, 0, 1),
			vtx(from, top, 1, 1),
		}}}
	}

	ww := (1 - p.DoorWidth) / 2 // Width of each jamb as a fraction of the run
	bit := along.MulScalar(ww)
	lintel := base + p.DoorHeight*p.WallHeight
	lintelV := p.DoorHeight * capV

	jamb1 := from.Add(bit)
	jamb2 := to.Sub(bit)
	jamb1Face := jamb1.Add(run.Offset)
	jamb2Face := jamb2.Add(run.Offset)

	return []Strip{
		{Vertices: []Vertex{ // Right jamb
			vtx(jamb1Face, base, 1-ww, 0),
			vtx(face1, base, 1-du1, 0),
			vtx(jamb1Face, top, 1-ww, capV),
			vtx(face1, top, 1-du1, capV),
			vtx(jamb1, top, 1-ww, 1),
			vtx(from, top, 1, 1),
		}},
		{Vertices: []Vertex{ // Lintel
			vtx(jamb2Face, lintel, ww, lintelV),
			vtx(jamb1Face, lintel, 1-ww, lintelV),
			vtx(jamb2Face, top, ww, capV),
			vtx(jamb1Face, top, 1-ww, capV),
			vtx(jamb2, top, ww, 1),
			vtx(jamb1, top, 1-ww, 1),
		}},
		{Vertices: []Vertex{ // Left jamb
			vtx(face2, base, -du2, 0),
			vtx(jamb2Face, base, ww, 0),
			vtx(face2, top, -du2, capV),
			vtx(jamb2Face, top, ww, capV),
			vtx(to, top, 0, 1),
			vtx(jamb2, top, ww, 1),
		}},
	}
}

func vtx(p mat32.Vec2, z, u, v float32) Vertex {
	return Vertex{
		Pos: mat32.Vec3{X: p.X, Y: p.Y, Z: z},
		UV:  mat32.Vec2{X: u, Y: v},
	}
}
