package game

import (
	"github.com/samdwyer/blueprint/internal/ui"
	"github.com/samdwyer/blueprint/internal/world"
)

// Config holds viewer options.
type Config struct {
	World    *world.World
	Catalogs ui.Catalogs

	// Floor shown first. A floor with nothing on it falls back to the
	// lowest occupied floor.
	Floor int
}
