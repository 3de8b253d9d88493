package gen

import (
	"math"
	"sync"

	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/noise"
	"github.com/san-kum/vizvault/internal/prng"
)

type graphNode struct {
	Position geom.Vec3
	Group    int
}

type graphEdge struct {
	Source, Target int
	Weight         float64
}

type graph struct {
	Nodes []graphNode
	Edges []graphEdge
}

const (
	galaxyBaseNodes = 42
	galaxyRadius    = 10
	galaxyJump      = 7
)

// galaxyGraph is the fixed base layout: seeded spherical sampling plus ring
// and jump edges.
var galaxyGraph = sync.OnceValue(func() graph {
	pts := prng.RadialPoints(galaxyBaseNodes, galaxyRadius, 11)
	g := graph{Nodes: make([]graphNode, len(pts))}
	for i, p := range pts {
		g.Nodes[i] = graphNode{Position: vec(p), Group: i % 4}
	}
	rand := prng.Seeded(17)
	n := len(g.Nodes)
	for i := 0; i < n; i++ {
		g.Edges = append(g.Edges, graphEdge{Source: i, Target: (i + 1) % n, Weight: 0.6 + rand()*0.4})
		g.Edges = append(g.Edges, graphEdge{Source: i, Target: (i + galaxyJump) % n, Weight: 0.4 + rand()*0.6})
	}
	return g
})

type voronoiSeed struct {
	X, Y   float64
	Height float64
}

var voronoiSeeds = []voronoiSeed{
	{0.1, 0.2, 0.9},
	{0.28, 0.18, 0.65},
	{0.46, 0.32, 0.72},
	{0.62, 0.16, 0.8},
	{0.16, 0.56, 0.55},
	{0.36, 0.68, 0.95},
	{0.64, 0.64, 0.6},
	{0.78, 0.44, 0.82},
	{0.86, 0.74, 0.7},
}

const (
	volumeSteps    = 9
	volumeGridSize = 10
)

type volumeCell struct {
	X, Y, Z int
	Value   float64
}

var volumeCells = sync.OnceValue(func() []volumeCell {
	cells := make([]volumeCell, 0, volumeSteps*volumeSteps*volumeSteps)
	for z := 0; z < volumeSteps; z++ {
		for y := 0; y < volumeSteps; y++ {
			for x := 0; x < volumeSteps; x++ {
				nx := volumeCoord(x)
				ny := volumeCoord(y)
				nz := volumeCoord(z)
				r := math.Sqrt(nx*nx + ny*ny + nz*nz)
				wave := math.Sin((nx+nz)*math.Pi*3)*0.4 + math.Cos((ny-nz)*math.Pi*2)*0.3
				cells = append(cells, volumeCell{X: x, Y: y, Z: z, Value: math.Exp(-r*3) + wave*0.4})
			}
		}
	}
	return cells
})

func volumeCoord(i int) float64 { return float64(i)/(volumeSteps-1) - 0.5 }

const ribbonBasePaths = 5

var ribbonPaths = sync.OnceValue(func() [][]geom.Vec3 {
	paths := make([][]geom.Vec3, ribbonBasePaths)
	for i := range paths {
		paths[i] = vecs(prng.RibbonPath(36, 6, 1.2+float64(i)*0.4, int32(21+i)))
	}
	return paths
})

const terrainSize = 32

// terrainHeightmap is a fixed grid of heights in [0,1].
var terrainHeightmap = sync.OnceValue(func() [][]float64 {
	n := noise.New(noise.DefaultSeed)
	rows := make([][]float64, terrainSize)
	for y := range rows {
		rows[y] = make([]float64, terrainSize)
		for x := range rows[y] {
			fx, fy := float64(x), float64(y)
			h := n.At(fx*0.12, fy*0.12)*0.7 + n.At(fx*0.31+17, fy*0.31+5)*0.3
			rows[y][x] = geom.Clamp(h, 0, 1)
		}
	}
	return rows
})

func vec(p [3]float64) geom.Vec3 { return geom.Vec3{X: p[0], Y: p[1], Z: p[2]} }

func vecs(ps [][3]float64) []geom.Vec3 {
	out := make([]geom.Vec3, len(ps))
	for i, p := range ps {
		out[i] = vec(p)
	}
	return out
}
