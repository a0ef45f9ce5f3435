package layout

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/blueprint/internal/telemetry"
	"github.com/samdwyer/blueprint/internal/world"
)

// ItemSource creates unplaced items by catalog kind.
type ItemSource interface {
	NewItem(kind string) (*world.Item, error)
}

// Build constructs a world from the layout. Rooms are added in file order,
// so a later room takes any cells it shares with an earlier one.
func Build(ctx context.Context, l Layout, items ItemSource) (*world.World, error) {
	tracer := telemetry.Tracer("layout")
	_, span := tracer.Start(ctx, "layout.build")
	defer span.End()

	span.SetAttributes(
		attribute.Int("layout.width", l.Width),
		attribute.Int("layout.height", l.Height),
		attribute.Int("layout.expanses", len(l.Expanses)),
		attribute.Int("layout.rooms", len(l.Rooms)),
		attribute.Int("layout.doors", len(l.Doors)),
		attribute.Int("layout.items", len(l.Items)),
	)

	w := world.New(l.Width, l.Height)

	for _, e := range l.Expanses {
		expanse := &world.Expanse{Name: e.Name, Floor: e.Floor}
		if err := w.AddExpanse(expanse, Cells(e.Rects, e.Floor)); err != nil {
			return nil, telemetry.Fail(span, err)
		}
	}

	for _, rm := range l.Rooms {
		room := world.NewRoom(rm.Name, rm.Type, rm.Floor)
		if err := w.AddRoom(room, Cells(rm.Rects, rm.Floor)); err != nil {
			return nil, telemetry.Fail(span, err)
		}
	}

	for _, d := range l.Doors {
		if _, err := w.AddDoor(d.From[0], d.From[1], d.To[0], d.To[1], d.Floor); err != nil {
			return nil, telemetry.Fail(span, err)
		}
	}

	for _, spec := range l.Items {
		item, err := items.NewItem(spec.Kind)
		if err != nil {
			return nil, telemetry.Fail(span, err)
		}
		origin := world.C(spec.At[0], spec.At[1], spec.Floor)
		if err := w.PlaceItem(item, origin, world.Rotation(spec.Rotation)); err != nil {
			return nil, telemetry.Fail(span, fmt.Errorf("item %s: %w", spec.Kind, err))
		}
	}

	span.SetAttributes(attribute.Int("world.cells", countCells(w)))
	return w, nil
}

func countCells(w *world.World) int {
	n := 0
	for range w.Rooms.AllCells() {
		n++
	}
	return n
}
