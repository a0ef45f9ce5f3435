// Package mesh derives renderable surfaces from the world model: chamfered
// wall strips with door cutouts, floor tiles, and model placements.
package mesh

import (
	"errors"
	"fmt"
)

// Params sizes the generated geometry. Heights are in world units; the door
// fields are fractions of the run length and the wall height.
type Params struct {
	Thickness   float32 // Distance from the grid line to the wall face
	WallHeight  float32
	LayerHeight float32 // Vertical distance between floors
	DoorWidth   float32 // Clear opening as a fraction of the run
	DoorHeight  float32 // Lintel height as a fraction of WallHeight
	FloorLift   float32 // Floors sit this far above the layer base
}

// DefaultParams returns the proportions used by the stock textures.
func DefaultParams() Params {
	return Params{
		Thickness:   0.025,
		WallHeight:  1,
		LayerHeight: 1,
		DoorWidth:   0.8,
		DoorHeight:  0.65,
		FloorLift:   0.05,
	}
}

var errBadParams = errors.New("invalid mesh params")

// Validate checks that the parameters produce sensible geometry.
func (p Params) Validate() error {
	switch {
	case p.Thickness < 0 || p.Thickness >= 0.5:
		return fmt.Errorf("%w: thickness %v outside [0, 0.5)", errBadParams, p.Thickness)
	case p.WallHeight <= 0:
		return fmt.Errorf("%w: wall height %v", errBadParams, p.WallHeight)
	case p.LayerHeight < p.WallHeight:
		return fmt.Errorf("%w: layer height %v below wall height %v", errBadParams, p.LayerHeight, p.WallHeight)
	case p.DoorWidth <= 0 || p.DoorWidth >= 1:
		return fmt.Errorf("%w: door width %v outside (0, 1)", errBadParams, p.DoorWidth)
	case p.DoorHeight <= 0 || p.DoorHeight >= 1:
		return fmt.Errorf("%w: door height %v outside (0, 1)", errBadParams, p.DoorHeight)
	case (1-p.DoorWidth)/2 <= p.Thickness:
		// A convex corner pulls the face end in by Thickness; the jamb
		// must still have width left after that.
		return fmt.Errorf("%w: door width %v leaves jambs no wider than thickness %v",
			errBadParams, p.DoorWidth, p.Thickness)
	}
	return nil
}
