package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/parallax/parallax"
	"github.com/milk9111/parallax/prefabs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	sceneName := flag.String("scene", "scene.yaml", "scene file in prefabs/ (embedded copy used when absent on disk)")
	watch := flag.Bool("watch", false, "reload the scene and scripts when files under prefabs/ change")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address, e.g. :9100")
	debug := flag.Bool("debug", false, "draw layer diagnostics")
	flag.Parse()

	logger := log.New(os.Stderr, "parallaxdemo: ", log.LstdFlags)

	reg := prometheus.NewRegistry()
	metrics := parallax.NewMetrics(reg)
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Printf("metrics server: %v", err)
			}
		}()
	}

	game, err := NewGame(gameConfig{
		Scene:   *sceneName,
		Debug:   *debug,
		Metrics: metrics,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal(err)
	}
	defer game.Close()

	if *watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			logger.Printf("hot reload disabled: %v", err)
		} else {
			game.watcher = w
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("parallax")

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal(err)
	}
}
