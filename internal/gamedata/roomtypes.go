package gamedata

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// RoomTypeDef describes how a kind of room looks, loaded from
// roomtypes.json.
type RoomTypeDef struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	WallTexture  string `json:"wallTexture"`
	FloorTexture string `json:"floorTexture"`
	Color        string `json:"color"` // Plan colour (hex)
	Glyph        string `json:"glyph"`
}

// GlyphRune returns the plan glyph, '.' when none is set.
func (d *RoomTypeDef) GlyphRune() rune {
	r, _ := utf8.DecodeRuneInString(d.Glyph)
	if r == utf8.RuneError {
		return '.'
	}
	return r
}

// TCellColor returns the plan colour, falling back to the terminal default.
func (d *RoomTypeDef) TCellColor() tcell.Color {
	c, err := ParseHexColor(d.Color)
	if err != nil {
		return tcell.ColorDefault
	}
	return c
}

// RoomTypesFile is the layout of roomtypes.json.
type RoomTypesFile struct {
	RoomTypes []RoomTypeDef `json:"roomTypes"`
}

// LoadRoomTypes loads the embedded room-type catalog.
func LoadRoomTypes() ([]RoomTypeDef, error) {
	file, err := Load[RoomTypesFile]("roomtypes.json")
	if err != nil {
		return nil, err
	}
	return file.RoomTypes, nil
}
