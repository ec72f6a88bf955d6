// Package display drives a world with Ebitengine: it samples input, ticks
// the world at a fixed rate and draws its render buffer from an atlas page.
package display

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	nature "github.com/oidoid/nature-elsewhere-sub000"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrQuit is returned from Update when the menu button is pressed and no
// menu handler is set; ebiten.RunGame stops on it.
var ErrQuit = errors.New("display: quit")

// Game implements ebiten.Game for a world.
type Game struct {
	world *nature.World
	cfg   RunConfig
	page  *ebiten.Image

	palette map[string]color.Color
	buf     nature.RenderBuffer

	script  *nature.InputScript
	watcher *nature.DefinitionWatcher
	debug   bool

	// OnMenu, when set, is called instead of quitting when the menu button
	// is pressed.
	OnMenu func()
}

// NewGame returns a game drawing world with sprites cut from page, the
// atlas image. A nil page draws nothing but the debug overlay.
func NewGame(world *nature.World, page *ebiten.Image, cfg RunConfig) (*Game, error) {
	cfg = cfg.withDefaults()
	g := &Game{
		world:   world,
		cfg:     cfg,
		page:    page,
		palette: make(map[string]color.Color),
		debug:   cfg.Debug,
	}
	if len(cfg.WatchDirs) > 0 {
		w, err := nature.NewDefinitionWatcher(cfg.WatchDirs...)
		if err != nil {
			return nil, err
		}
		g.watcher = w
	}
	nature.SetDebug(cfg.Debug)
	return g, nil
}

// SetPalette tints images whose image ID is id with c.
func (g *Game) SetPalette(id string, c color.Color) { g.palette[id] = c }

// SetInputScript replays script instead of reading devices until it is done.
func (g *Game) SetInputScript(script *nature.InputScript) { g.script = script }

// Close stops the definition watcher, if any.
func (g *Game) Close() error {
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

// Update advances the world by one tick.
func (g *Game) Update() error {
	if g.watcher != nil {
		if n, err := g.watcher.Reload(g.world.Registry); err != nil {
			log.Printf("display: %v", err)
		} else if n > 0 && g.debug {
			log.Printf("display: reloaded %d definition files", n)
		}
	}

	var in nature.InputSnapshot
	if g.script != nil && !g.script.Done() {
		in = g.script.Next()
	} else {
		in = sampleInput(g.world.Camera, nature.WH{W: g.cfg.Width, H: g.cfg.Height})
	}

	if in.Pressed.Has(nature.ButtonDebug) {
		g.debug = !g.debug
		nature.SetDebug(g.debug)
	}
	if in.Pressed.Has(nature.ButtonMenu) {
		if g.OnMenu == nil {
			return ErrQuit
		}
		g.OnMenu()
	}

	g.world.Update(g.cfg.tickMillis(), in)
	return nil
}

// Draw renders the world's visible images, then the overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Render(&g.buf)
	viewport := g.world.Camera.Viewport
	g.submitCommands(screen, g.buf.Commands, viewport)
	if g.debug {
		drawOverlay(screen, g.world.Root(), viewport)
	}
	if g.cfg.ShowFPS {
		drawFPS(screen)
	}
}

// Layout returns the logical screen size, which is the viewport size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and runs world until the window closes or the menu
// button quits.
func Run(world *nature.World, page *ebiten.Image, cfg RunConfig) error {
	g, err := NewGame(world, page, cfg)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width*g.cfg.Scale, g.cfg.Height*g.cfg.Scale)
	ebiten.SetTPS(g.cfg.TPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ErrQuit) {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}
