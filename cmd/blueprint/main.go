// Package main is the entry point for blueprint: it builds a building
// layout into a world, derives its meshes, and exports or shows them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/blueprint/internal/game"
	"github.com/samdwyer/blueprint/internal/gamedata"
	"github.com/samdwyer/blueprint/internal/layout"
	"github.com/samdwyer/blueprint/internal/mesh"
	"github.com/samdwyer/blueprint/internal/meshfile"
	"github.com/samdwyer/blueprint/internal/telemetry"
	"github.com/samdwyer/blueprint/internal/ui"
)

func main() {
	layoutPath := flag.String("layout", "", "layout YAML file (empty: built-in layout)")
	exportPath := flag.String("export", "", "write the world mesh to this file")
	view := flag.Bool("view", false, "show the floor plan in the terminal")
	floor := flag.Int("floor", 0, "floor shown first in the viewer")
	flag.Parse()

	// .env carries HONEYCOMB_BLUEPRINT_API_KEY for local runs.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	if err := run(ctx, *layoutPath, *exportPath, *view, *floor); err != nil {
		log.Printf("blueprint: %v", err)
		if shutdown != nil {
			_ = shutdown(ctx)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, layoutPath, exportPath string, view bool, floor int) error {
	items, err := gamedata.LoadItemRegistry()
	if err != nil {
		return err
	}
	roomTypes, err := gamedata.LoadRoomTypeRegistry()
	if err != nil {
		return err
	}

	l, err := layout.Load(layoutPath)
	if err != nil {
		return err
	}
	w, err := layout.Build(ctx, l, items)
	if err != nil {
		return err
	}

	m, err := mesh.BuildWorld(ctx, w, l.Params(), roomTypes)
	if err != nil {
		return err
	}
	log.Printf("Built %dx%d world: %d rooms, %d items, %d doors, %d strips",
		w.Width, w.Height, w.Rooms.Len(), w.Items.Len(), w.Doors.Len(), m.StripCount())

	if exportPath != "" {
		if err := meshfile.Write(ctx, exportPath, m); err != nil {
			return err
		}
		log.Printf("Wrote %s", exportPath)
	}

	if !view {
		return nil
	}
	g, err := game.New(game.Config{
		World:    w,
		Catalogs: ui.Catalogs{Rooms: roomTypes, Items: items},
		Floor:    floor,
	})
	if err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return g.Run(ctx)
}

// setupOTelEnv points the OTLP exporter at Honeycomb using our own
// variables.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Built here rather than in .env, where variable references are not
	// always expanded.
	apiKey := os.Getenv("HONEYCOMB_BLUEPRINT_API_KEY")
	dataset := os.Getenv("HONEYCOMB_BLUEPRINT_DATASET")
	if dataset == "" {
		dataset = "blueprint"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
