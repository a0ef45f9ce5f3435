package gamedata

import (
	"fmt"
	"unicode/utf8"

	"github.com/samdwyer/blueprint/internal/world"
)

// ItemDef describes a kind of furniture loaded from items.json.
type ItemDef struct {
	ID       string   `json:"id"`       // Catalog key (e.g., "bench")
	Name     string   `json:"name"`     // Display name
	Model    string   `json:"model"`    // Model path under items/
	Glyph    string   `json:"glyph"`    // Plan symbol
	Color    string   `json:"color"`    // Plan colour (hex)
	Shape    [][2]int `json:"shape"`    // Covered tiles relative to the origin
	Occupies []string `json:"occupies"` // Space bands: floor, lower, upper, nonfloor, all
}

// GlyphRune returns the glyph as a rune for rendering.
func (d *ItemDef) GlyphRune() rune {
	r, _ := utf8.DecodeRuneInString(d.Glyph)
	if r == utf8.RuneError {
		return '?'
	}
	return r
}

// Uses returns the combined space mask of the definition.
func (d *ItemDef) Uses() (world.Uses, error) {
	return world.ParseUses(d.Occupies)
}

// NewItem creates an unplaced item of this kind.
func (d *ItemDef) NewItem() (*world.Item, error) {
	uses, err := d.Uses()
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", d.ID, err)
	}
	shape := make([]world.Offset, len(d.Shape))
	for i, o := range d.Shape {
		shape[i] = world.Offset{DX: o[0], DY: o[1]}
	}
	if err := world.ValidateShape(shape); err != nil {
		return nil, fmt.Errorf("item %s: %w", d.ID, err)
	}
	return &world.Item{
		Kind:  d.ID,
		Name:  d.Name,
		Model: d.Model,
		Shape: shape,
		Uses:  uses,
	}, nil
}

// ItemsFile is the layout of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads the embedded item catalog.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
