// Package host presents an artstamps Session with Ebitengine: it maps the
// keyboard and mouse into an InputState, drives Session.Update at the game's
// tick rate and draws the level, entities and cursor through the session
// camera.
package host

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/phanxgames/artstamps"
	"github.com/phanxgames/artstamps/internal/config"
)

// RunConfig configures Run and NewGame.
type RunConfig struct {
	// Config supplies window size, asset paths and overlay flags.
	Config *config.Config
	// Logger receives host logs. Nil disables logging.
	Logger *zap.Logger
	// OnClick is called for cursor clicks from the keyboard or the mouse.
	OnClick func(x, y int)
}

// Game implements ebiten.Game for one session.
type Game struct {
	session *artstamps.Session
	input   artstamps.InputState
	keys    keyPoller
	cfg     *config.Config
	log     *zap.Logger
	onClick func(x, y int)

	hero      *ebiten.Image
	cursorImg *ebiten.Image
	inventory *Inventory

	fps             *fpsOverlay
	screenshotQueue []string

	lastMouseX, lastMouseY int
}

// NewGame loads the configured assets and wraps the session. Missing sprite
// files are not fatal: entities and the cursor fall back to flat fills.
func NewGame(session *artstamps.Session, rc RunConfig) (*Game, error) {
	cfg := rc.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(); err != nil {
			return nil, fmt.Errorf("host: config: %w", err)
		}
	}
	log := rc.Logger
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		session: session,
		cfg:     cfg,
		log:     log.With(zap.String("session", session.ID())),
		onClick: rc.OnClick,
	}
	if cfg.ShowFPS {
		g.fps = &fpsOverlay{}
	}

	if imgs, err := LoadImages(cfg.Asset(cfg.HeroImage)); err == nil {
		g.hero = imgs[0]
	} else {
		g.log.Warn("hero image unavailable", zap.Error(err))
	}
	if imgs, err := LoadImages(cfg.Asset(cfg.CursorImage)); err == nil {
		g.cursorImg = imgs[0]
	} else {
		g.log.Warn("cursor image unavailable", zap.Error(err))
	}
	inv, err := LoadInventory(cfg.Asset(cfg.StampDir))
	if err != nil {
		return nil, fmt.Errorf("host: stamps: %w", err)
	}
	g.inventory = inv
	g.log.Info("assets loaded", zap.Int("stamps", inv.Len()))

	session.SetScreenshotFunc(g.Screenshot)
	session.SetClickFunc(g.click)
	return g, nil
}

// Input returns the input state fed to the session each tick.
func (g *Game) Input() *artstamps.InputState { return &g.input }

func (g *Game) click(x, y int) {
	g.log.Debug("click", zap.Int("x", x), zap.Int("y", y))
	if g.onClick != nil {
		g.onClick(x, y)
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.keys.poll(&g.input)
	if ebiten.IsWindowBeingClosed() {
		g.input.RequestQuit()
	}
	if c := g.session.Cursor(); c != nil {
		mx, my := ebiten.CursorPosition()
		if mx != g.lastMouseX || my != g.lastMouseY {
			c.MoveTo(mx, my)
			g.lastMouseX, g.lastMouseY = mx, my
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.click(c.Position())
		}
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	quit, err := g.session.Update(&g.input, dt)
	if err != nil {
		g.log.Error("session update", zap.Error(err))
		return err
	}
	if quit {
		return ebiten.Termination
	}
	if g.fps != nil {
		g.fps.update(dt.Seconds(), g)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)
	cam := g.session.Camera()

	for i := range g.session.Level().Shapes {
		s := &g.session.Level().Shapes[i]
		placed := cam.Place(s.Transform)
		if img, ok := g.inventory.Lookup(s.Key); ok {
			w, h := outlineSize(s.Outline)
			drawImage(screen, img, w, h, placed, nil)
			continue
		}
		fillPolygon(screen, s.Outline, placed, s.Fill)
	}

	for _, e := range g.session.Entities() {
		placed := cam.Place(e.Transform)
		if g.hero != nil {
			drawImage(screen, g.hero, e.Width, e.Height, placed, nil)
			continue
		}
		fillPolygon(screen, artstamps.RectOutline(e.Width, e.Height), placed, artstamps.Color{R: 0x40, G: 0x80, B: 0xff})
	}

	if c := g.session.Cursor(); c != nil {
		x, y := c.Position()
		t := artstamps.Transform{Scale: 1, TX: float64(x), TY: float64(y)}
		if g.cursorImg != nil {
			b := g.cursorImg.Bounds()
			drawImage(screen, g.cursorImg, float64(b.Dx()), float64(b.Dy()), t, &c.Color)
		} else {
			fillPolygon(screen, artstamps.RectOutline(cursorFallbackSize, cursorFallbackSize), t, c.Color)
		}
	}

	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.flushScreenshots(screen)
}

const cursorFallbackSize = 6

// Layout implements ebiten.Game. The camera viewport follows the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cam := g.session.Camera()
	w, h := float64(outsideWidth), float64(outsideHeight)
	if cam.Viewport.Width != w || cam.Viewport.Height != h {
		cam.Viewport = artstamps.Rect{Width: w, Height: h}
	}
	return outsideWidth, outsideHeight
}

// outlineSize returns the extent of a local-space outline measured from the
// origin, which is the size its artwork is stretched to.
func outlineSize(outline []artstamps.Vec2) (float64, float64) {
	var w, h float64
	for _, p := range outline {
		w = max(w, p.X)
		h = max(h, p.Y)
	}
	return w, h
}

// Run opens a window and drives the session until it quits or the window is
// closed. A normal quit returns nil.
func Run(session *artstamps.Session, rc RunConfig) error {
	g, err := NewGame(session, rc)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowClosingHandled(true)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config { return g.cfg }
