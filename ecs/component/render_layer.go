package component

// RenderLayer breaks draw order ties between sprites at the same depth.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
