package levels

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/traverse/prefabs"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Dir is the on-disk level directory, preferred over the embedded copies.
var Dir = "levels"

// Level is static geometry plus the entities placed in it.
type Level struct {
	Name     string     `yaml:"name"`
	Spawn    mgl64.Vec3 `yaml:"spawn"`
	SpawnYaw float64    `yaml:"spawn_yaw"`
	Boxes    []Box      `yaml:"boxes"`
	Walls    []Wall     `yaml:"climbing_walls"`
	Entities []Entity   `yaml:"entities"`
}

// Box is an axis-aligned block on one or more layers.
type Box struct {
	Name  string     `yaml:"name"`
	Min   mgl64.Vec3 `yaml:"min"`
	Max   mgl64.Vec3 `yaml:"max"`
	Layer string     `yaml:"layer"`
}

// Wall is a solid block whose grip colliders on the climbable layer are
// switched by climb input.
type Wall struct {
	Name    string     `yaml:"name"`
	Min     mgl64.Vec3 `yaml:"min"`
	Max     mgl64.Vec3 `yaml:"max"`
	Enabled bool       `yaml:"enabled"`
}

// Entity places a prefab.
type Entity struct {
	Type     string         `yaml:"type"`
	Name     string         `yaml:"name"`
	Prefab   string         `yaml:"prefab"`
	Position mgl64.Vec3     `yaml:"position"`
	Props    map[string]any `yaml:"props,omitempty"`
}

// Load reads a level by name, preferring the copy in Dir.
func Load(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join(Dir, clean))
	if err != nil {
		data, err = LevelsFS.ReadFile(clean)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", clean, err)
	}
	return Parse(clean, data)
}

// Parse decodes and validates level YAML.
func Parse(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	var errs []error
	for i, b := range l.Boxes {
		if err := validBounds(b.Min, b.Max); err != nil {
			errs = append(errs, fmt.Errorf("box %d %q: %w", i, b.Name, err))
		}
		if _, err := prefabs.ParseLayer(b.Layer); err != nil {
			errs = append(errs, fmt.Errorf("box %d %q: %w", i, b.Name, err))
		}
	}
	for i, w := range l.Walls {
		if err := validBounds(w.Min, w.Max); err != nil {
			errs = append(errs, fmt.Errorf("wall %d %q: %w", i, w.Name, err))
		}
	}
	for i, e := range l.Entities {
		if e.Prefab == "" {
			errs = append(errs, fmt.Errorf("entity %d %q: %w: missing prefab", i, e.Name, prefabs.ErrInvalidSpec))
		}
	}
	return errors.Join(errs...)
}

func validBounds(min, max mgl64.Vec3) error {
	for i := 0; i < 3; i++ {
		if min[i] > max[i] {
			return fmt.Errorf("%w: min %v above max %v", prefabs.ErrInvalidSpec, min, max)
		}
	}
	return nil
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}
