package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec lists the entities of a scene. Groups expand into several
// generated layer entities each.
type SceneSpec struct {
	Name     string            `yaml:"name"`
	Entities []EntityBuildSpec `yaml:"entities"`
	Groups   []LayerGroupSpec  `yaml:"groups"`
}

func LoadSceneSpec(filename string) (SceneSpec, error) {
	return LoadSpec[SceneSpec](filename)
}

// LayerGroupSpec generates Count layers with depth orders DepthStart,
// DepthStart+1, ... Layer i gets speed (i+1)/Count*Speed, scale
// (i+1)/Count and a colour between MinColor and MaxColor.
type LayerGroupSpec struct {
	Name        string                 `yaml:"name"`
	Count       int                    `yaml:"count"`
	DepthStart  int                    `yaml:"depth_start"`
	Speed       float64                `yaml:"speed"`
	Kind        string                 `yaml:"kind"`
	Mode        string                 `yaml:"mode"`
	Angle       float64                `yaml:"angle"`
	Width       float64                `yaml:"width"`
	Height      float64                `yaml:"height"`
	MinColor    *YAMLColor             `yaml:"min_color"`
	MaxColor    *YAMLColor             `yaml:"max_color"`
	Transform   TransformComponentSpec `yaml:"transform"`
	RenderLayer int                    `yaml:"render_layer"`
	Tiling      *TilingComponentSpec   `yaml:"tiling"`
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or a CSS colour name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

func ParseColor(v string) (color.Color, error) {
	v = strings.TrimSpace(v)
	if named, ok := colornames.Map[strings.ToLower(v)]; ok {
		return named, nil
	}

	s := strings.TrimPrefix(v, "#")
	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	var rgba [4]uint8
	rgba[3] = 0xff
	for i := 0; i < len(s)/2; i++ {
		b, err := parse(i * 2)
		if err != nil {
			return nil, fmt.Errorf("invalid color format: %s", v)
		}
		rgba[i] = b
	}
	return color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}, nil
}
