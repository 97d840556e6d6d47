package main

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/milk9111/traverse/config"
	"github.com/milk9111/traverse/ecs/entity"
	"github.com/milk9111/traverse/prefabs"
)

var background = color.RGBA{R: 0x12, G: 0x14, B: 0x1c, A: 0xff}

type Game struct {
	settings config.Settings
	scene    *entity.Scene
	keyboard *Keyboard
	audio    *speakers
	watcher  *prefabs.Watcher
	pauseUI  *ebitenui.UI
	log      zerolog.Logger

	activated bool
	paused    bool
	quit      bool
}

func NewGame(settings config.Settings, log zerolog.Logger) (*Game, error) {
	g := &Game{
		settings: settings,
		keyboard: NewKeyboard(),
		audio:    newSpeakers(log.With().Str("sink", "speakers").Logger()),
		log:      log,
	}

	scene, err := entity.NewScene(settings, g.audio, log)
	if err != nil {
		return nil, err
	}
	g.scene = scene
	g.pauseUI = NewPauseUI(g)

	if settings.WatchPrefabs {
		if info, err := os.Stat(prefabs.Dir); err == nil && info.IsDir() {
			w, err := prefabs.NewWatcher(prefabs.Dir)
			if err != nil {
				log.Warn().Err(err).Str("dir", prefabs.Dir).Msg("prefab hot reload disabled")
			} else {
				g.watcher = w
				log.Info().Str("dir", prefabs.Dir).Msg("watching prefabs")
			}
		}
	}
	return g, nil
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if !g.activated {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		g.activated = true
	}

	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.keyboard.Poll(g.scene.Input(), g.scene.Rig(), g.scene.Controller())
	g.scene.Step(g.settings.TickSeconds())
	return nil
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if paused {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		g.audio.Stop("glide")
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}

func (g *Game) reloadPlayer() {
	if err := g.scene.ReloadPlayer(); err != nil {
		g.log.Error().Err(err).Msg("reload failed")
	}
}

// pollWatcher applies pending prefab edits without blocking the frame.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if change.Kind == prefabs.ChangeSpec && change.Name() == filepath.Base(g.settings.Player) {
				g.reloadPlayer()
				continue
			}
			g.log.Info().Str("file", change.Path).Msg("prefab changed, restart to apply")
		case err, ok := <-g.watcher.Errors:
			if ok && !errors.Is(err, os.ErrClosed) {
				g.log.Warn().Err(err).Msg("prefab watcher")
			}
			return
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	drawScene(screen, g.scene)
	drawHUD(screen, g.scene, g.paused)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.settings.Window.Width, g.settings.Window.Height
}
