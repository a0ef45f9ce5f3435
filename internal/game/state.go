// Package game runs the interactive floor-plan viewer.
package game

// State is what the viewer is showing.
type State int

const (
	// StatePlan shows the plan of the current floor.
	StatePlan State = iota
	// StateLegend lists the glyphs used on the plan.
	StateLegend
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlan:
		return "plan"
	case StateLegend:
		return "legend"
	default:
		return "unknown"
	}
}
