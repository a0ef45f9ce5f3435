package mesh

// Face says which side of the grid line a wall is drawn on.
type Face int

const (
	// Inside walls face into the region being walled (room walls).
	Inside Face = iota
	// Outside walls face away from the region (the building silhouette).
	Outside
)

func (f Face) String() string {
	if f == Inside {
		return "inside"
	}
	return "outside"
}

// CornerKind classifies one end of a wall run.
type CornerKind int

const (
	// Straight: the wall continues past this end.
	Straight CornerKind = iota
	// Convex: the region turns away; the neighbouring wall returns on the
	// same side of this cell.
	Convex
	// Concave: the region wraps around; the neighbouring wall returns on
	// the far side of this run.
	Concave
)

func (k CornerKind) String() string {
	switch k {
	case Straight:
		return "straight"
	case Convex:
		return "convex"
	case Concave:
		return "concave"
	default:
		return "unknown"
	}
}

// Classify turns the two neighbour checks at a run end into a corner kind.
// convex: the cell beside this one along the run is outside the region.
// concave: the diagonal cell across the run is inside the region.
func Classify(convex, concave bool) CornerKind {
	switch {
	case convex:
		return Convex
	case concave:
		return Concave
	default:
		return Straight
	}
}

// ChamferOffset returns how far a run end moves outward along the run so
// that its face meets the neighbouring wall's face. Negative shortens.
func ChamferOffset(kind CornerKind, face Face, thickness float32) float32 {
	switch kind {
	case Convex:
		if face == Outside {
			return thickness
		}
		return -thickness
	case Concave:
		if face == Outside {
			return -thickness
		}
		return thickness
	default:
		return 0
	}
}
