package gen

import (
	"fmt"
	"strings"
)

type Kind uint8

const (
	OrbitingSpheres Kind = iota + 1
	PerlinNoiseMap
	GalaxyNetwork
	TerrainHeightmap
	VoronoiWaves
	VolumeField
	RibbonFlow
	LissajousRibbon
	ParticleFountain
	FractalCubes
	SuperformulaBloom
	NoiseTunnel
)

var kindNames = map[Kind][2]string{
	OrbitingSpheres:   {"orbiting-spheres", "OrbitingSpheresViz"},
	PerlinNoiseMap:    {"perlin-noise-map", "PerlinNoiseMapViz"},
	GalaxyNetwork:     {"galaxy-network", "GalaxyNetworkViz"},
	TerrainHeightmap:  {"terrain-heightmap", "TerrainHeightmapViz"},
	VoronoiWaves:      {"voronoi-waves", "VoronoiWavesViz"},
	VolumeField:       {"volume-field", "VolumeFieldViz"},
	RibbonFlow:        {"ribbon-flow", "RibbonFlowViz"},
	LissajousRibbon:   {"lissajous-ribbon", "LissajousRibbonViz"},
	ParticleFountain:  {"particle-fountain", "ParticleFountainViz"},
	FractalCubes:      {"fractal-cubes", "FractalCubesViz"},
	SuperformulaBloom: {"superformula-bloom", "SuperformulaBloomViz"},
	NoiseTunnel:       {"noise-tunnel", "NoiseTunnelViz"},
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames))
	for k := OrbitingSpheres; k <= NoiseTunnel; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n[0]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Alias is the component-style name ("FractalCubesViz").
func (k Kind) Alias() string { return kindNames[k][1] }

func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Static reports whether output depends on parameters alone, so the frame
// only needs rebuilding when parameters change.
func (k Kind) Static() bool { return k == TerrainHeightmap }

// New returns a fresh generator with the default seed policy.
func (k Kind) New() Generator { return k.NewWith(Options{}) }

func (k Kind) NewWith(opts Options) Generator {
	switch k {
	case OrbitingSpheres:
		return orbitingSpheres{}
	case PerlinNoiseMap:
		return perlinMap{}
	case GalaxyNetwork:
		return &galaxy{}
	case TerrainHeightmap:
		return terrain{}
	case VoronoiWaves:
		return voronoi{}
	case VolumeField:
		return &volume{}
	case RibbonFlow:
		return &ribbonFlow{}
	case LissajousRibbon:
		return &lissajous{}
	case ParticleFountain:
		return NewFountain(opts)
	case FractalCubes:
		return &fractal{}
	case SuperformulaBloom:
		return &bloom{}
	case NoiseTunnel:
		return tunnel{}
	}
	return nil
}

// Lookup resolves a kind token or component alias, ignoring case and
// separators.
func Lookup(name string) (Kind, error) {
	key := normalize(name)
	if key != "" {
		for k, n := range kindNames {
			if normalize(n[0]) == key {
				return k, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnregistered, name)
}

func normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
	return strings.TrimSuffix(s, "viz")
}
