package scene

import "github.com/san-kum/vizvault/internal/palette"

func num(name, label string, min, max, step, def float64) ParamSpec {
	return ParamSpec{Name: name, Label: label, Kind: KindNumber, Min: min, Max: max, Step: step, Default: def}
}

func toggle(name, label string, def bool) ParamSpec {
	return ParamSpec{Name: name, Label: label, Kind: KindBoolean, Default: def}
}

func paletteParam(def string) ParamSpec {
	return ParamSpec{Name: "palette", Label: "Palette", Kind: KindSelect, Options: palette.Names(), Default: def}
}

// BuiltinDescriptors returns the shipped catalog in display order.
func BuiltinDescriptors() []Descriptor {
	return []Descriptor{
		{
			Slug:        "orbiting-spheres",
			Title:       "Orbiting Spheres Playground",
			Description: "A simple 3D orbit visualization with tweakable counts and colors.",
			Generator:   "orbiting-spheres",
			Params: []ParamSpec{
				num("sphereCount", "Sphere Count", 1, 200, 1, 25),
				num("orbitRadius", "Orbit Radius", 1, 20, 0.5, 8),
				num("rotationSpeed", "Rotation Speed", 0, 5, 0.1, 1.5),
				toggle("wireframe", "Wireframe Mode", false),
			},
		},
		{
			Slug:        "perlin-noise-map",
			Title:       "Perlin Noise Grid",
			Description: "3D grid of cubes animated by Perlin noise heights.",
			Generator:   "perlin-noise-map",
			Params: []ParamSpec{
				num("gridSize", "Grid Size", 6, 40, 2, 20),
				num("scale", "Noise Scale", 0.05, 1.5, 0.05, 0.35),
				num("amplitude", "Height Amplitude", 0.1, 4, 0.1, 1.2),
				num("speed", "Animation Speed", 0, 2, 0.05, 0.6),
				{Name: "color", Label: "Base Color", Kind: KindColor, Default: "#ffffff"},
				toggle("wireframe", "Wireframe", false),
			},
			Tips: []string{"Lower the noise scale for broad rolling hills.", "Set speed to 0 to freeze the field."},
		},
		{
			Slug:        "galaxy-network",
			Title:       "Galaxy Network",
			Description: "A seeded spherical cloud of nodes joined by ring, jump and proximity links.",
			Generator:   "galaxy-network",
			Params: []ParamSpec{
				num("nodeCount", "Node Count", 2, 300, 1, 60),
				num("linkRange", "Link Range", 0.5, 8, 0.1, 3.2),
				num("pointSize", "Point Size", 0.05, 1, 0.05, 0.35),
				num("rotationSpeed", "Rotation Speed", 0, 3, 0.05, 0.4),
				paletteParam("infrared"),
			},
			Tips: []string{"Raising the link range quickly densifies the graph."},
		},
		{
			Slug:        "terrain-heightmap",
			Title:       "Terrain Heightmap",
			Description: "A fixed heightmap with a wave overlay, coloured by elevation.",
			Generator:   "terrain-heightmap",
			Params: []ParamSpec{
				num("amplitude", "Amplitude", 0.5, 6, 0.1, 2.5),
				num("frequency", "Wave Frequency", 0.5, 8, 0.5, 2),
				toggle("wireframe", "Wireframe", false),
				paletteParam("aurora"),
			},
		},
		{
			Slug:        "voronoi-waves",
			Title:       "Voronoi Waves",
			Description: "Grid cells raised by their nearest seed with an exponential falloff.",
			Generator:   "voronoi-waves",
			Params: []ParamSpec{
				num("cellCount", "Cells Per Side", 4, 48, 1, 24),
				num("height", "Height", 0.5, 6, 0.1, 3),
				num("smoothing", "Smoothing", 0, 1, 0.05, 0.5),
				paletteParam("nocturne"),
			},
		},
		{
			Slug:        "volume-field",
			Title:       "Volume Field",
			Description: "A precomputed scalar field shown as a swaying point cloud above a threshold.",
			Generator:   "volume-field",
			Params: []ParamSpec{
				num("threshold", "Threshold", 0, 1.2, 0.02, 0.45),
				num("pointSize", "Point Size", 0.05, 1, 0.05, 0.25),
				num("speed", "Sway Speed", 0, 3, 0.1, 1),
				paletteParam("sunken"),
			},
			Tips: []string{"Lower the threshold to reveal the outer shell."},
		},
		{
			Slug:        "ribbon-flow",
			Title:       "Ribbon Flow",
			Description: "Seeded ribbon paths swept into closed tubes around a torus knot.",
			Generator:   "ribbon-flow",
			Params: []ParamSpec{
				num("ribbonCount", "Ribbons", 2, 12, 1, 5),
				num("twist", "Twist", 0.5, 4, 0.1, 1.6),
				num("thickness", "Thickness", 0.05, 0.6, 0.01, 0.18),
				num("speed", "Speed", 0, 3, 0.1, 1),
				paletteParam("infrared"),
			},
		},
		{
			Slug:        "lissajous-ribbon",
			Title:       "Lissajous Ribbons",
			Description: "Phase-shifted Lissajous loops swept into tubes.",
			Generator:   "lissajous-ribbon",
			Params: []ParamSpec{
				num("ribbonCount", "Ribbons", 1, 12, 1, 4),
				num("thickness", "Thickness", 0.03, 0.4, 0.01, 0.12),
				num("speed", "Speed", 0, 3, 0.1, 1),
				num("twist", "Twist", 0.5, 5, 0.1, 2),
				paletteParam("aurora"),
			},
		},
		{
			Slug:        "particle-fountain",
			Title:       "Particle Fountain",
			Description: "A recycled pool of particles thrown upward against gravity.",
			Generator:   "particle-fountain",
			Params: []ParamSpec{
				num("count", "Particles", 20, 800, 10, 400),
				num("spread", "Spread", 0.2, 4, 0.1, 1.5),
				num("speed", "Launch Speed", 0.2, 3, 0.1, 1),
				num("gravity", "Gravity", 0, 20, 0.1, 9.8),
				paletteParam("nocturne"),
			},
			Tips: []string{"Turn gravity down to let the plume drift."},
		},
		{
			Slug:        "fractal-cubes",
			Title:       "Fractal Cubes",
			Description: "A Menger-like recursive subdivision of a cube.",
			Generator:   "fractal-cubes",
			Params: []ParamSpec{
				num("depth", "Depth", 1, 3, 1, 2),
				num("scale", "Scale", 0.5, 3, 0.1, 1.5),
				num("rotationSpeed", "Rotation Speed", 0, 3, 0.1, 0.6),
				toggle("wireframe", "Wireframe", false),
				paletteParam("sunken"),
			},
		},
		{
			Slug:        "superformula-bloom",
			Title:       "Superformula Bloom",
			Description: "Closed-form superformula samples spun into a petalled bloom.",
			Generator:   "superformula-bloom",
			Params: []ParamSpec{
				num("m", "Symmetry (m)", 0, 20, 1, 7),
				num("n1", "n1", 0.1, 10, 0.1, 0.3),
				num("n2", "n2", 0.1, 10, 0.1, 1.7),
				num("n3", "n3", 0.1, 10, 0.1, 1.7),
				num("petals", "Petals", 1, 16, 1, 6),
				num("pointSize", "Point Size", 0.02, 0.5, 0.01, 0.08),
				num("rotationSpeed", "Rotation Speed", 0, 3, 0.1, 0.5),
				paletteParam("infrared"),
			},
		},
		{
			Slug:        "noise-tunnel",
			Title:       "Noise Tunnel",
			Description: "Wobbling rings receding into a tunnel.",
			Generator:   "noise-tunnel",
			Params: []ParamSpec{
				num("ringCount", "Rings", 10, 120, 2, 60),
				num("radius", "Radius", 1, 8, 0.1, 4),
				num("speed", "Speed", 0, 3, 0.1, 1),
				num("wobble", "Wobble", 0, 2, 0.05, 0.6),
				paletteParam("aurora"),
			},
		},
	}
}

// Builtin returns a registry over BuiltinDescriptors.
func Builtin() *Registry {
	r, err := NewRegistry(BuiltinDescriptors()...)
	if err != nil {
		panic(err)
	}
	return r
}
