package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/parallax/ecs"
	"github.com/milk9111/parallax/ecs/component"
	"github.com/milk9111/parallax/ecs/entity"
	"github.com/milk9111/parallax/ecs/system"
	"github.com/milk9111/parallax/parallax"
	"github.com/milk9111/parallax/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

var background = color.NRGBA{R: 0x0b, G: 0x0c, B: 0x1e, A: 0xff}

type gameConfig struct {
	Scene   string
	Debug   bool
	Metrics *parallax.Metrics
	Logger  *log.Logger
}

type Game struct {
	frames int
	debug  bool
	logger *log.Logger

	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	parallax  *system.ParallaxSystem

	sceneName string
	scene     *entity.Scene
	watcher   *prefabs.Watcher
}

func NewGame(cfg gameConfig) (*Game, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	w := ecs.NewWorld()
	scene, err := entity.BuildScene(w, cfg.Scene)
	if err != nil {
		return nil, err
	}

	ps := system.NewParallaxSystem(true, cfg.Metrics, logger)
	scheduler := ecs.NewScheduler()
	scheduler.Add(system.NewScriptedMotionSystem(1/float64(ebiten.TPS()), logger))
	scheduler.Add(system.NewCameraSystem())
	scheduler.AddLate(ps)
	scheduler.AddLate(system.NewTilingSystem(cfg.Metrics, logger))

	return &Game{
		debug:     cfg.Debug,
		logger:    logger,
		world:     w,
		scheduler: scheduler,
		render:    system.NewRenderSystem(),
		parallax:  ps,
		sceneName: cfg.Scene,
		scene:     scene,
	}, nil
}

func (g *Game) Update() error {
	g.frames++
	g.applyChanges()
	g.scheduler.Update(g.world)
	return nil
}

// applyChanges drains pending file changes without blocking the frame.
func (g *Game) applyChanges() {
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
			g.apply(change)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) apply(change prefabs.Change) {
	switch change.Kind {
	case prefabs.ChangeScript:
		entity.ReloadScripts(g.world)
		g.logger.Printf("reloaded scripts after %s changed", filepath.Base(change.Path))
	case prefabs.ChangeSpec:
		if filepath.Base(change.Path) != filepath.Base(g.sceneName) {
			return
		}
		spec, err := prefabs.LoadSceneSpec(g.sceneName)
		if err != nil {
			g.logger.Printf("reload %s: %v", g.sceneName, err)
			return
		}
		if err := entity.ReconfigureScene(g.world, g.scene, spec); err != nil {
			g.logger.Printf("reload %s: %v", g.sceneName, err)
			return
		}
		g.parallax.Locator().Reset()
		g.logger.Printf("reloaded %s", g.sceneName)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.render.Draw(g.world, screen)

	if g.debug {
		ebitenutil.DebugPrint(screen, g.debugText())
	}
}

func (g *Game) debugText() string {
	active, total := 0, 0
	ecs.ForEach(g.world, component.ParallaxLayerComponent.Kind(), func(_ ecs.Entity, pl *component.ParallaxLayer) {
		total++
		if pl.Layer != nil && pl.Layer.Phase() == parallax.PhaseActive {
			active++
		}
	})
	tiles := g.world.Count(component.ParallaxTileComponent.Kind())
	return fmt.Sprintf("Frames: %d    FPS: %.2f\nLayers: %d/%d active    Tiles: %d",
		g.frames, ebiten.ActualFPS(), active, total, tiles)
}

// Layout keeps the camera view matched to the window so tiling covers it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	ecs.ForEach(g.world, component.CameraComponent.Kind(), func(_ ecs.Entity, cam *component.Camera) {
		cam.ViewWidth = float64(outsideWidth)
		cam.ViewHeight = float64(outsideHeight)
	})
	return outsideWidth, outsideHeight
}

func (g *Game) Close() error {
	var errs []error
	if g.watcher != nil {
		errs = append(errs, g.watcher.Close())
	}
	g.scene.Destroy(g.world)
	return errors.Join(errs...)
}
