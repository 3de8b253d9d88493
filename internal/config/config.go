// Package config loads the yaml settings file and holds the named parameter
// presets.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS        = 60
	DefaultTheme      = "infrared"
	DefaultSeedPolicy = "reseed"
	DefaultSeed       = 42
	DefaultScene      = "orbiting-spheres"
	DefaultDataDir    = "captures"
	DefaultAddr       = ":8080"
	DefaultWidth      = 1280
	DefaultHeight     = 720
)

var ErrUnknownPreset = errors.New("unknown preset")

type Config struct {
	Scene      string       `yaml:"scene"`
	FPS        int          `yaml:"fps"`
	Theme      string       `yaml:"theme"`
	SeedPolicy string       `yaml:"seed_policy"`
	Seed       int32        `yaml:"seed"`
	Catalog    string       `yaml:"catalog,omitempty"`
	DataDir    string       `yaml:"data_dir"`
	Web        WebConfig    `yaml:"web"`
	Window     WindowConfig `yaml:"window"`
	// Params holds per-scene parameter overrides applied on open.
	Params map[string]map[string]any `yaml:"params,omitempty"`
	// Presets adds or replaces named presets per scene.
	Presets map[string]map[string]Preset `yaml:"presets,omitempty"`
}

type WebConfig struct {
	Addr string `yaml:"addr"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:      DefaultScene,
		FPS:        DefaultFPS,
		Theme:      DefaultTheme,
		SeedPolicy: DefaultSeedPolicy,
		Seed:       DefaultSeed,
		DataDir:    DefaultDataDir,
		Web:        WebConfig{Addr: DefaultAddr},
		Window:     WindowConfig{Width: DefaultWidth, Height: DefaultHeight},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SceneParams returns the configured overrides for a scene as text values.
func (c *Config) SceneParams(scene string) map[string]string {
	return Preset(c.Params[scene]).Strings()
}

// Preset resolves a named preset, preferring entries from the config file
// over the built-in ones.
func (c *Config) Preset(scene, name string) (Preset, error) {
	if p, ok := c.Presets[scene][name]; ok {
		return p, nil
	}
	if p := GetPreset(scene, name); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrUnknownPreset, scene, name)
}

// PresetNames lists every preset available for scene, sorted.
func (c *Config) PresetNames(scene string) []string {
	seen := map[string]bool{}
	for _, n := range ListPresets(scene) {
		seen[n] = true
	}
	for n := range c.Presets[scene] {
		seen[n] = true
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
