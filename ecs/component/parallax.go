package component

import "github.com/milk9111/parallax/parallax"

// ParallaxCoordinator holds the scene's coordinator. TargetName names the
// entity the coordinator follows; empty keeps the fixed origin.
type ParallaxCoordinator struct {
	Coordinator *parallax.Coordinator
	TargetName  string
	// DepthSourceName names an entity whose Z overrides the reference Z.
	DepthSourceName string
}

var ParallaxCoordinatorComponent = NewComponent[ParallaxCoordinator]()

type ParallaxLayer struct {
	Layer *parallax.Layer
	// Disabled layers are deactivated and dropped from the registry.
	Disabled bool
	// Group is the layer group the layer was generated from, if any.
	Group string
}

var ParallaxLayerComponent = NewComponent[ParallaxLayer]()

// ParallaxTiling repeats the layer's sprite. Tiler is created by the tiling
// system from Config on first use.
type ParallaxTiling struct {
	Config parallax.TilingConfig
	Tiler  *parallax.Tiler
}

var ParallaxTilingComponent = NewComponent[ParallaxTiling]()

// ParallaxTile marks an entity that draws one tile of a tiled layer.
type ParallaxTile struct {
	Owner uint64
	Tile  *parallax.Tile
}

var ParallaxTileComponent = NewComponent[ParallaxTile]()
