package config

import (
	"fmt"
	"sort"
	"strconv"
)

// Preset is a named set of parameter values for one scene.
type Preset map[string]any

// Strings formats every value the way a --set flag would spell it.
func (p Preset) Strings() map[string]string {
	if len(p) == 0 {
		return nil
	}
	out := make(map[string]string, len(p))
	for k, v := range p {
		switch v := v.(type) {
		case float64:
			out[k] = strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			out[k] = strconv.Itoa(v)
		case bool:
			out[k] = strconv.FormatBool(v)
		default:
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}

var Presets = map[string]map[string]Preset{
	"orbiting-spheres": {
		"crowded": {"sphereCount": 180, "orbitRadius": 14, "rotationSpeed": 0.6},
		"tight":   {"sphereCount": 12, "orbitRadius": 3, "rotationSpeed": 3.5},
		"wire":    {"wireframe": true},
	},
	"perlin-noise-map": {
		"hills":  {"scale": 0.1, "amplitude": 2.5, "speed": 0.2},
		"choppy": {"scale": 1.2, "amplitude": 0.8, "speed": 1.5},
		"frozen": {"speed": 0},
	},
	"galaxy-network": {
		"sparse": {"nodeCount": 20, "linkRange": 1.5},
		"dense":  {"nodeCount": 240, "linkRange": 6, "pointSize": 0.15},
	},
	"terrain-heightmap": {
		"mesh":    {"wireframe": true, "amplitude": 4},
		"plateau": {"amplitude": 0.8, "frequency": 0.5},
	},
	"particle-fountain": {
		"drizzle": {"count": 80, "spread": 0.4, "speed": 0.6},
		"geyser":  {"count": 800, "spread": 0.6, "speed": 2.6, "gravity": 14},
		"moon":    {"gravity": 1.6},
	},
	"fractal-cubes": {
		"deep": {"depth": 3, "scale": 1.2},
		"wire": {"depth": 2, "wireframe": true},
	},
	"superformula-bloom": {
		"star":   {"m": 5, "n1": 0.3, "n2": 0.3, "n3": 0.3},
		"circle": {"m": 0},
		"flower": {"m": 12, "n1": 1, "n2": 4, "n3": 8, "petals": 10},
	},
	"noise-tunnel": {
		"calm":  {"wobble": 0.1, "speed": 0.4},
		"storm": {"wobble": 1.8, "speed": 2.5, "ringCount": 120},
	},
}

func GetPreset(scene, preset string) Preset {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	p, ok := scenePresets[preset]
	if !ok {
		return nil
	}
	return p
}

// ListPresets returns the built-in preset names for scene, sorted.
func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
