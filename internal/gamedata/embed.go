// Package gamedata holds the embedded item and room-type catalogs and the
// registries built from them.
package gamedata

import "embed"

// dataFS embeds the catalogs and the schemas they are checked against.
//
//go:embed *.json schemas/*.json
var dataFS embed.FS
