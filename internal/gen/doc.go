// Package gen implements the procedural generators behind each scene.
//
// Every scene type is a [Kind]. A kind builds a fresh [Generator], which
// fills a caller-owned [geom.Frame] from a parameter set and a [Clock]:
//
//	k, _ := gen.Lookup("fractal-cubes")
//	g := k.New()
//	g.Generate(set, gen.Clock{Elapsed: 1.5}, &frame)
//
// Names coming from data-driven catalogs resolve through [Lookup] or a
// [Loader], which caches resolutions for the life of the process. Unknown
// names yield [ErrUnregistered].
//
// Count-like parameters are clamped per generator so a large request can
// never allocate unbounded geometry. Group rotations are derived from
// elapsed time; the particle fountain is the one generator that integrates
// state across ticks.
package gen
