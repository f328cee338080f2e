package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.design/x/clipboard"

	"github.com/milk9111/ketchup/prefabs"
	"github.com/milk9111/ketchup/round"
)

const tick = time.Second / 60

type GameOptions struct {
	Variant string
	Seed    uint64
	Debug   bool
	Watch   bool
	Mute    bool
}

type Game struct {
	opts    GameOptions
	session *round.Session

	hud     *hud
	sprites *spriteLayer
	sounds  *soundBank
	shake   *shaker
	pad     *touchPad

	watcher *prefabs.Watcher
	clip    *seedClipboard
	ui      *ebitenui.UI
}

func NewGame(cfg round.Config, opts GameOptions) (*Game, error) {
	g := &Game{
		opts:    opts,
		hud:     &hud{},
		sprites: newSpriteLayer(cfg),
		sounds:  newSoundBank(opts.Mute),
		shake:   &shaker{width: cfg.FieldWidth},
		pad:     newTouchPad(cfg.FieldWidth, cfg.FieldHeight),
		clip:    newSeedClipboard(),
	}

	session, err := round.New(cfg, round.Ports{
		Controls: controls{pad: g.pad},
		Display:  g.hud,
		Sprites:  g.sprites,
		Sounds:   g.sounds,
		Feedback: g.shake,
	}, round.WithDebug(opts.Debug))
	if err != nil {
		return nil, err
	}
	g.session = session

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.DefaultWatchDirs()...)
		if err != nil {
			log.Printf("watch: %v (hot reload disabled)", err)
		} else {
			g.watcher = w
		}
	}

	if err := session.Start(); err != nil {
		_ = g.Close()
		return nil, err
	}
	return g, nil
}

func (g *Game) Update() error {
	g.pollWatcher()
	g.pad.Update()
	g.shake.Update(tick)

	if g.session.Phase().Terminal() {
		if g.ui == nil {
			g.ui = newResultUI(g, g.session.Phase(), g.session.Score())
		}
		g.ui.Update()
		if restartPressed() {
			g.restart()
		} else if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			g.copySeed()
		}
		return nil
	}

	g.session.Tick(tick)
	return nil
}

func (g *Game) restart() {
	g.hud.reset()
	g.sprites.reset(g.session.Config())
	g.ui = nil
	if err := g.session.Restart(); err != nil {
		log.Printf("restart: %v", err)
	}
}

func (g *Game) copySeed() {
	if g.clip == nil {
		return
	}
	g.clip.Write(strconv.FormatUint(g.session.Seed(), 10))
}

// pollWatcher drains pending file events without blocking. Edits to the
// running variant or to any script reload the variant for the next round.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if name := prefabs.VariantName(path); name != "" && name != g.opts.Variant {
				continue
			}
			g.reload(filepath.Base(path))
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(changed string) {
	cfg, err := round.LoadConfig(g.opts.Variant)
	if err != nil {
		log.Printf("reload %s: %v", changed, err)
		return
	}
	if g.opts.Seed != 0 {
		cfg.Seed = g.opts.Seed
	}
	if err := g.session.Apply(cfg); err != nil {
		log.Printf("reload %s: %v", changed, err)
		return
	}
	log.Printf("reloaded variant %s after %s change; applies next round", g.opts.Variant, changed)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	dx, dy := g.shake.Offset()
	g.sprites.Draw(screen, dx, dy)
	if g.opts.Debug {
		if p := g.session.Physics(); p != nil {
			drawPhysics(screen, p.Space(), dx, dy)
		}
	}

	cfg := g.session.Config()
	full := cfg.FieldWidth - 20
	vector.FillRect(screen, 10, 10, float32(full), 30, colorHealthBack, false)
	vector.FillRect(screen, 10, 10, float32(g.session.HealthBarWidth(full)), 30, colorHealth, false)

	drawText(screen, fmt.Sprintf("Score: %d", g.hud.score), 10, 48, color.White)
	drawText(screen, fmt.Sprintf("%d/%d", g.hud.health, g.hud.maxHealth), cfg.FieldWidth-80, 18, color.White)
	if g.opts.Debug {
		drawText(screen, fmt.Sprintf("FPS %.1f  bodies %d  timers %d", ebiten.ActualFPS(), g.bodyCount(), g.session.PendingTimers()), 10, 66, color.White)
	}

	g.pad.Draw(screen)

	if g.ui != nil {
		g.ui.Draw(screen)
	}
}

func (g *Game) bodyCount() int {
	if p := g.session.Physics(); p != nil {
		return p.BodyCount()
	}
	return 0
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	cfg := g.session.Config()
	return cfg.FieldWidth, cfg.FieldHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops the file watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, s, textFace, op)
}

// seedClipboard copies round seeds so a round can be replayed with -seed.
type seedClipboard struct{}

func newSeedClipboard() *seedClipboard {
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard: %v (copy seed disabled)", err)
		return nil
	}
	return &seedClipboard{}
}

func (c *seedClipboard) Write(s string) {
	clipboard.Write(clipboard.FmtText, []byte(s))
	log.Printf("copied seed %s", s)
}
