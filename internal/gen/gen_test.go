package gen

import (
	"fmt"
	"math"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
	"github.com/san-kum/vizvault/internal/scene"
)

func defaultsFor(k Kind) params.Set {
	d, err := scene.Builtin().Lookup(k.String())
	Expect(err).NotTo(HaveOccurred())
	return params.Defaults(d.Params)
}

func with(set params.Set, name string, v params.Value) params.Set {
	out := set.Clone()
	out[name] = v
	return out
}

func run(g Generator, set params.Set, c Clock) *geom.Frame {
	var f geom.Frame
	g.Generate(set, c, &f)
	return &f
}

// bruteForceFractal walks every cell of the 3^depth lattice and keeps the
// ones whose digit triple at every level has fewer than two zero offsets.
func bruteForceFractal(depth int) []string {
	side := int(math.Pow(3, float64(depth)))
	var keys []string
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			for k := 0; k < side; k++ {
				var pos geom.Vec3
				ok := true
				a, b, c := i, j, k
				step := math.Pow(3, float64(1-depth))
				for l := 0; l < depth; l++ {
					dx, dy, dz := a%3-1, b%3-1, c%3-1
					if zeros(dx, dy, dz) >= 2 {
						ok = false
						break
					}
					pos = pos.Add(geom.V(float64(dx), float64(dy), float64(dz)).Scale(step))
					a, b, c = a/3, b/3, c/3
					step *= 3
				}
				if ok {
					keys = append(keys, key(pos))
				}
			}
		}
	}
	sort.Strings(keys)
	return keys
}

func key(v geom.Vec3) string { return fmt.Sprintf("%.4f,%.4f,%.4f", v.X, v.Y, v.Z) }

var _ = Describe("FractalPositions", func() {
	It("yields one centre at depth 0", func() {
		Expect(FractalPositions(0)).To(Equal([]geom.Vec3{{}}))
	})

	DescribeTable("matches a brute-force enumeration",
		func(depth, want int) {
			got := FractalPositions(depth)
			Expect(got).To(HaveLen(want))

			keys := make([]string, len(got))
			for i, p := range got {
				keys[i] = key(p)
			}
			sort.Strings(keys)
			Expect(keys).To(Equal(bruteForceFractal(depth)))
		},
		Entry("depth 1", 1, 20),
		Entry("depth 2", 2, 400),
	)

	It("caps the generator depth at 3", func() {
		set := with(defaultsFor(FractalCubes), "depth", params.Number(9))
		f := run(FractalCubes.New(), set, Clock{})
		Expect(f.Instances).To(HaveLen(8000))

		set = with(set, "depth", params.Number(0))
		f = run(FractalCubes.New(), set, Clock{})
		Expect(f.Instances).To(HaveLen(20))
	})
})

var _ = Describe("Superformula", func() {
	It("is the unit circle when m is zero", func() {
		for _, theta := range []float64{0, 0.3, 1.7, math.Pi} {
			for _, n1 := range []float64{0.3, 1, 4} {
				Expect(Superformula(theta, 0, n1, 1.7, 1.7)).To(BeNumerically("~", 1, 1e-12))
			}
		}
	})

	It("samples 2400 finite points", func() {
		set := with(defaultsFor(SuperformulaBloom), "n1", params.Number(0))
		f := run(SuperformulaBloom.New(), set, Clock{Elapsed: 1})
		Expect(f.Points).To(HaveLen(2400))
		for _, p := range f.Points {
			Expect(math.IsInf(p.Position.X, 0) || math.IsNaN(p.Position.X)).To(BeFalse())
		}
	})
})

var _ = Describe("Fountain", func() {
	It("never exceeds the particle cap", func() {
		set := with(defaultsFor(ParticleFountain), "count", params.Number(5000))
		f := NewFountain(Options{})
		var frame geom.Frame
		for i := 0; i < 300; i++ {
			frame.Reset()
			f.Generate(set, Clock{Elapsed: float64(i) / 60, Delta: 1.0 / 60, Frame: uint64(i)}, &frame)
			Expect(f.Live()).To(BeNumerically("<=", MaxParticles))
			Expect(len(frame.Instances)).To(BeNumerically("<=", MaxParticles))
		}
		Expect(f.Live()).To(Equal(MaxParticles))
	})

	It("raises tiny counts to the minimum pool", func() {
		set := with(defaultsFor(ParticleFountain), "count", params.Number(1))
		f := NewFountain(Options{})
		run(f, set, Clock{Delta: 0.016})
		Expect(f.Live()).To(Equal(20))
	})

	It("rebuilds the pool when count changes", func() {
		set := defaultsFor(ParticleFountain)
		f := NewFountain(Options{})
		run(f, set, Clock{Delta: 0.016})
		Expect(f.Live()).To(Equal(400))

		run(f, with(set, "count", params.Number(100)), Clock{Delta: 0.016})
		Expect(f.Live()).To(Equal(100))
	})

	DescribeTable("is reproducible for a seed policy",
		func(opts Options) {
			set := defaultsFor(ParticleFountain)
			a, b := NewFountain(opts), NewFountain(opts)
			var fa, fb *geom.Frame
			for i := 0; i < 120; i++ {
				c := Clock{Elapsed: float64(i) / 60, Delta: 1.0 / 60}
				fa, fb = run(a, set, c), run(b, set, c)
			}
			Expect(fa.Instances).To(Equal(fb.Instances))
		},
		Entry("reseed", Options{SeedPolicy: SeedReseed}),
		Entry("session", Options{SeedPolicy: SeedSession, Seed: 1234}),
	)
})

var _ = Describe("Kinds", func() {
	It("builds a generator for every kind", func() {
		for _, k := range Kinds() {
			Expect(k.New()).NotTo(BeNil(), k.String())
			f := run(k.New(), defaultsFor(k), Clock{Elapsed: 0.5, Delta: 0.016})
			Expect(f.Len()).To(BeNumerically(">", 0), k.String())
		}
	})

	It("is deterministic in params and clock", func() {
		for _, k := range Kinds() {
			c := Clock{Elapsed: 2.25, Delta: 1.0 / 60, Frame: 135}
			a := run(k.New(), defaultsFor(k), c)
			b := run(k.New(), defaultsFor(k), c)
			Expect(a).To(Equal(b), k.String())
		}
	})

	DescribeTable("resolves names",
		func(name string, want Kind) {
			k, err := Lookup(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(k).To(Equal(want))
		},
		Entry("token", "perlin-noise-map", PerlinNoiseMap),
		Entry("component alias", "PerlinNoiseMapViz", PerlinNoiseMap),
		Entry("loose case", " Noise_Tunnel ", NoiseTunnel),
	)

	It("reports unknown names as unregistered", func() {
		_, err := Lookup("HologramViz")
		Expect(err).To(MatchError(ErrUnregistered))
		_, err = Lookup("")
		Expect(err).To(MatchError(ErrUnregistered))
	})

	It("only marks the terrain as static", func() {
		for _, k := range Kinds() {
			Expect(k.Static()).To(Equal(k == TerrainHeightmap), k.String())
		}
	})
})

var _ = Describe("Loader", func() {
	It("resolves each name once", func() {
		l := NewLoader(Options{})
		for i := 0; i < 3; i++ {
			g, k, err := l.Load("GalaxyNetworkViz")
			Expect(err).NotTo(HaveOccurred())
			Expect(k).To(Equal(GalaxyNetwork))
			Expect(g).NotTo(BeNil())
		}
		Expect(l.Cached()).To(Equal(1))

		_, _, err := l.Load("missing")
		Expect(err).To(MatchError(ErrUnregistered))
		_, _, err = l.Load("missing")
		Expect(err).To(MatchError(ErrUnregistered))
		Expect(l.Cached()).To(Equal(1))
	})
})

var _ = Describe("clamps", func() {
	DescribeTable("bound count-like parameters",
		func(k Kind, name string, v float64, count func(*geom.Frame) int, want int) {
			set := with(defaultsFor(k), name, params.Number(v))
			Expect(count(run(k.New(), set, Clock{Delta: 0.016}))).To(Equal(want))
		},
		Entry("spheres high", OrbitingSpheres, "sphereCount", 1000.0, instances, 201),
		Entry("spheres low", OrbitingSpheres, "sphereCount", 0.0, instances, 2),
		Entry("noise grid high", PerlinNoiseMap, "gridSize", 100.0, instances, 1600),
		Entry("noise grid low", PerlinNoiseMap, "gridSize", 2.0, instances, 36),
		Entry("galaxy nodes", GalaxyNetwork, "nodeCount", 1000.0, points, 300),
		Entry("voronoi cells", VoronoiWaves, "cellCount", 100.0, instances, 48*48),
		Entry("ribbons high", RibbonFlow, "ribbonCount", 50.0, polylines, 13),
		Entry("ribbons low", RibbonFlow, "ribbonCount", 0.0, polylines, 3),
		Entry("lissajous low", LissajousRibbon, "ribbonCount", 0.0, polylines, 1),
		Entry("lissajous high", LissajousRibbon, "ribbonCount", 40.0, polylines, 12),
		Entry("petals", SuperformulaBloom, "petals", 99.0, points, 2400),
		Entry("tunnel rings", NoiseTunnel, "ringCount", 500.0, points, 120*64),
		Entry("tunnel rings low", NoiseTunnel, "ringCount", 1.0, points, 10*64),
	)
})

var _ = Describe("orbiting spheres", func() {
	It("draws only the planets as wireframes", func() {
		f := run(OrbitingSpheres.New(), with(defaultsFor(OrbitingSpheres), "wireframe", params.Bool(true)), Clock{})
		Expect(f.Wireframe).To(BeFalse())
		Expect(f.Instances[0].Wireframe).To(BeFalse(), "sun")
		for _, in := range f.Instances[1:] {
			Expect(in.Wireframe).To(BeTrue())
		}

		solid := run(OrbitingSpheres.New(), defaultsFor(OrbitingSpheres), Clock{})
		for _, in := range solid.Instances {
			Expect(in.Wireframe).To(BeFalse())
		}
	})
})

var _ = Describe("noise map", func() {
	It("paints the slate background", func() {
		f := run(PerlinNoiseMap.New(), defaultsFor(PerlinNoiseMap), Clock{})
		Expect(f.Background.Hex()).To(Equal("#0c1116"))
	})
})

var _ = Describe("galaxy layout", func() {
	It("keeps only graph edges whose endpoints survive", func() {
		set := with(defaultsFor(GalaxyNetwork), "nodeCount", params.Number(10))
		set = with(set, "linkRange", params.Number(0))
		f := run(GalaxyNetwork.New(), set, Clock{})
		Expect(f.Points).To(HaveLen(10))
		// ring edges 0-1 .. 8-9 plus jumps 0-7, 1-8, 2-9
		Expect(f.Segments).To(HaveLen(12))
	})
})

var _ = Describe("volume field", func() {
	It("filters cells by threshold", func() {
		all := run(VolumeField.New(), with(defaultsFor(VolumeField), "threshold", params.Number(-10)), Clock{})
		Expect(all.Points).To(HaveLen(volumeSteps * volumeSteps * volumeSteps))

		none := run(VolumeField.New(), with(defaultsFor(VolumeField), "threshold", params.Number(10)), Clock{})
		Expect(none.Points).To(BeEmpty())
	})
})

func instances(f *geom.Frame) int { return len(f.Instances) }
func points(f *geom.Frame) int    { return len(f.Points) }
func polylines(f *geom.Frame) int { return len(f.Polylines) }
