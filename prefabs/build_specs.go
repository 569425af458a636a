package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Z        float64 `yaml:"z"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
	Hidden bool       `yaml:"hidden"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type CameraComponentSpec struct {
	ViewWidth  float64 `yaml:"view_width"`
	ViewHeight float64 `yaml:"view_height"`
	Zoom       float64 `yaml:"zoom"`
	Target     string  `yaml:"target"`
	Smoothing  float64 `yaml:"smoothing"`
}

// ParallaxCoordinatorComponentSpec leaves unset fields at the coordinator
// defaults.
type ParallaxCoordinatorComponentSpec struct {
	Target         string   `yaml:"target"`
	DepthSource    string   `yaml:"depth_source"`
	ReferenceSpeed *float64 `yaml:"reference_speed"`
	ReferenceZ     *float64 `yaml:"reference_z"`
	MaxDepth       *float64 `yaml:"max_depth"`
	UseDepth       *bool    `yaml:"use_depth"`
	OriginX        float64  `yaml:"origin_x"`
	OriginY        float64  `yaml:"origin_y"`
}

// ParallaxLayerComponentSpec leaves Mode and Wrap at the kind's defaults when
// they are unset.
type ParallaxLayerComponentSpec struct {
	Kind       string  `yaml:"kind"`
	DepthOrder int     `yaml:"depth_order"`
	Speed      float64 `yaml:"speed"`
	Angle      float64 `yaml:"angle"`
	Mode       string  `yaml:"mode"`
	Wrap       *bool   `yaml:"wrap"`
	Disabled   bool    `yaml:"disabled"`
}

type TilingComponentSpec struct {
	Mode              string  `yaml:"mode"`
	HorizontalSpacing float64 `yaml:"horizontal_spacing"`
	VerticalSpacing   float64 `yaml:"vertical_spacing"`
}

type ScriptedMotionComponentSpec struct {
	Script string  `yaml:"script"`
	Speed  float64 `yaml:"speed"`
}
