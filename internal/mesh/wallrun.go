package mesh

import (
	"image"

	"github.com/goki/mat32"

	"github.com/samdwyer/blueprint/internal/world"
)

// WallRun is one exposed cell edge. The wall face lies to the left of the
// From->To direction, Offset away from the grid line.
type WallRun struct {
	From, To image.Point
	Layer    int
	Offset   mat32.Vec2

	// Per end (From, To): how the face endpoint moves to mitre with the
	// neighbouring wall, and why.
	Chamfer [2]mat32.Vec2
	Corners [2]CornerKind
}

// Length returns the grid length of the run (always 1 for cell edges).
func (r WallRun) Length() float32 {
	return vec(r.To).Sub(vec(r.From)).Length()
}

// FaceLength returns the length of the face after chamfering.
func (r WallRun) FaceLength() float32 {
	a := vec(r.From).Add(r.Chamfer[0])
	b := vec(r.To).Add(r.Chamfer[1])
	return b.Sub(a).Length()
}

// Door returns the normalized door segment this run would carry.
func (r WallRun) Door() world.Door {
	return world.NormalizeDoor(r.From.X, r.From.Y, r.To.X, r.To.Y, r.Layer)
}

func vec(p image.Point) mat32.Vec2 {
	return mat32.Vec2{X: float32(p.X), Y: float32(p.Y)}
}

// sides are the outward normals checked for every cell: -x, +x, -y, +y.
var sides = [4]image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// WallRuns finds every exposed edge of the region and classifies both ends
// of each. The geometry of a run depends only on the region, never on the
// order cells are visited.
func WallRuns(region Region, thickness float32) []WallRun {
	var runs []WallRun
	for cell := range region.Cells {
		for _, n := range sides {
			if region.Contains(cell.Add(n.X, n.Y)) {
				continue
			}
			runs = append(runs, edgeRun(region, cell, n, thickness))
		}
	}
	return runs
}

// edgeRun builds the run on the side n of cell.
func edgeRun(region Region, cell world.Cell, n image.Point, thickness float32) WallRun {
	// Direction of travel keeps the face on the left: outside faces sit
	// on n, inside faces on -n.
	d := image.Pt(n.Y, -n.X)
	offset := vec(n).MulScalar(thickness)
	if region.Face == Inside {
		d = image.Pt(-n.Y, n.X)
		offset = offset.MulScalar(-1)
	}

	run := WallRun{
		From:   image.Pt(cell.X+(1+n.X-d.X)/2, cell.Y+(1+n.Y-d.Y)/2),
		To:     image.Pt(cell.X+(1+n.X+d.X)/2, cell.Y+(1+n.Y+d.Y)/2),
		Layer:  cell.Layer,
		Offset: offset,
	}

	// End 0 looks back along -d, end 1 ahead along d.
	for i, a := range [2]image.Point{image.Pt(-d.X, -d.Y), d} {
		convex := !region.Contains(cell.Add(a.X, a.Y))
		concave := region.Contains(cell.Add(n.X+a.X, n.Y+a.Y))
		kind := Classify(convex, concave)
		run.Corners[i] = kind
		run.Chamfer[i] = vec(a).MulScalar(ChamferOffset(kind, region.Face, thickness))
	}
	return run
}
