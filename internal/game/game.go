package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/blueprint/internal/telemetry"
	"github.com/samdwyer/blueprint/internal/ui"
)

// Game is the viewer: a world, the floor on show, and the terminal.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	cfg      Config
	floors   []int
	floorIdx int
	state    State
	running  bool
}

// New opens the terminal and prepares a viewer for cfg.World.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g := newGame(cfg)
	g.screen = screen
	g.renderer = ui.NewRenderer(screen)
	return g, nil
}

func newGame(cfg Config) *Game {
	floors := cfg.World.Floors()
	if len(floors) == 0 {
		floors = []int{0}
	}
	idx := slices.Index(floors, cfg.Floor)
	if idx < 0 {
		idx = 0
	}
	return &Game{
		cfg:      cfg,
		floors:   floors,
		floorIdx: idx,
		state:    StatePlan,
		running:  true,
	}
}

// Floor returns the floor on show.
func (g *Game) Floor() int {
	return g.floors[g.floorIdx]
}

// Run draws and handles input until the user quits.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.init")
	span.SetAttributes(
		attribute.Int("world.floors", len(g.floors)),
		attribute.Int("world.rooms", g.cfg.World.Rooms.Len()),
		attribute.Int("world.items", g.cfg.World.Items.Len()),
		attribute.Int("view.floor", g.Floor()),
	)
	span.End()

	for g.running {
		g.render()
		g.handleInput()
	}

	g.screen.Close()
	return nil
}

func (g *Game) render() {
	w, h := g.screen.Size()
	if g.state == StateLegend {
		g.screen.Clear()
		for i, line := range g.legend() {
			g.renderer.RenderMessage(line, i)
		}
		g.screen.Show()
		return
	}
	plan := ui.BuildPlan(g.cfg.World, g.Floor(), w, max(h-1, 0), g.cfg.Catalogs)
	g.renderer.Render(plan, g.status())
}

func (g *Game) status() string {
	return fmt.Sprintf("floor %d (%d/%d)  rooms %d  items %d  doors %d   PgUp/PgDn floor  ? legend  q quit",
		g.Floor(), g.floorIdx+1, len(g.floors),
		g.cfg.World.Rooms.Len(), g.cfg.World.Items.Len(), g.cfg.World.Doors.Len())
}

func (g *Game) legend() []string {
	lines := []string{"Legend (any key to return)", "", "  · expanse", "  | - door"}
	if rooms := g.cfg.Catalogs.Rooms; rooms != nil {
		for _, def := range rooms.All() {
			lines = append(lines, fmt.Sprintf("  %c %s", def.GlyphRune(), def.Name))
		}
	}
	if items := g.cfg.Catalogs.Items; items != nil {
		for _, def := range items.All() {
			lines = append(lines, fmt.Sprintf("  %c %s", def.GlyphRune(), def.Name))
		}
	}
	return lines
}

func (g *Game) handleInput() {
	switch ev := g.screen.PollEvent().(type) {
	case *tcell.EventKey:
		g.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKey applies one key press.
func (g *Game) handleKey(key tcell.Key, r rune) {
	if g.state == StateLegend {
		g.state = StatePlan
		return
	}

	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
	case tcell.KeyPgUp:
		g.floorIdx = min(g.floorIdx+1, len(g.floors)-1)
	case tcell.KeyPgDn:
		g.floorIdx = max(g.floorIdx-1, 0)
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			g.running = false
		case '?':
			g.state = StateLegend
		}
	}
}

// Close releases the terminal if Run did not.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
