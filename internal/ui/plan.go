package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/blueprint/internal/gamedata"
	"github.com/samdwyer/blueprint/internal/world"
)

// Glyph is one terminal cell of a plan.
type Glyph struct {
	Rune  rune
	Style tcell.Style
}

var (
	blank        = Glyph{Rune: ' ', Style: tcell.StyleDefault}
	expanseGlyph = Glyph{Rune: '·', Style: tcell.StyleDefault.Foreground(tcell.ColorDarkGray)}
	doorStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// Plan is a top-down view of one floor, one glyph per grid cell.
type Plan struct {
	Width, Height int
	Floor         int
	glyphs        []Glyph
}

// At returns the glyph for a cell; cells outside the plan are blank.
func (p Plan) At(x, y int) Glyph {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return blank
	}
	return p.glyphs[y*p.Width+x]
}

func (p Plan) set(x, y int, g Glyph) {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return
	}
	p.glyphs[y*p.Width+x] = g
}

// Catalogs supplies plan glyphs and colours for room types and items.
type Catalogs struct {
	Rooms *gamedata.RoomTypeRegistry
	Items *gamedata.ItemRegistry
}

// BuildPlan lays out the width x height corner of a floor. Layers are
// drawn bottom up: expanse, rooms, items, then doors.
func BuildPlan(w *world.World, floor, width, height int, cat Catalogs) Plan {
	p := Plan{
		Width:  width,
		Height: height,
		Floor:  floor,
		glyphs: make([]Glyph, width*height),
	}
	for i := range p.glyphs {
		p.glyphs[i] = blank
	}

	for y := range height {
		for x := range width {
			c := world.C(x, y, floor)
			if w.Expanses.Occupied(c) {
				p.set(x, y, expanseGlyph)
			}
			if room := w.RoomAt(c); room != nil {
				p.set(x, y, roomGlyph(room, cat.Rooms))
			}
			if items := w.Items.ItemsAt(c); len(items) > 0 {
				p.set(x, y, itemGlyph(items[len(items)-1], cat.Items))
			}
		}
	}

	// A door lies on a cell edge; it is drawn on the cell whose low edge
	// it is.
	for _, d := range w.Doors.All() {
		if d.Layer != floor {
			continue
		}
		r := '-'
		if d.AlongY() {
			r = '|'
		}
		p.set(d.X, d.Y, Glyph{Rune: r, Style: doorStyle})
	}
	return p
}

func roomGlyph(room *world.Room, rooms *gamedata.RoomTypeRegistry) Glyph {
	if rooms != nil {
		if def := rooms.GetByID(room.Type); def != nil {
			return Glyph{Rune: def.GlyphRune(), Style: tcell.StyleDefault.Foreground(def.TCellColor())}
		}
	}
	return Glyph{Rune: '.', Style: tcell.StyleDefault.Foreground(tcell.ColorGray)}
}

func itemGlyph(item *world.Item, items *gamedata.ItemRegistry) Glyph {
	if items != nil {
		if def := items.GetByID(item.Kind); def != nil {
			style := tcell.StyleDefault
			if c, err := gamedata.ParseHexColor(def.Color); err == nil {
				style = style.Foreground(c)
			}
			return Glyph{Rune: def.GlyphRune(), Style: style}
		}
	}
	return Glyph{Rune: '?', Style: tcell.StyleDefault.Foreground(tcell.ColorWhite)}
}
