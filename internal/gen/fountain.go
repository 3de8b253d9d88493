package gen

import (
	"math"

	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
	"github.com/san-kum/vizvault/internal/prng"
)

const (
	// MaxParticles bounds the fountain pool.
	MaxParticles = 800
	minParticles = 20
	floorY       = -2
	poolSeed     = 42
	respawnSeed  = 99
)

type particle struct {
	pos, vel geom.Vec3
	life     float64
}

type fountainKey struct {
	count         int
	spread, speed float64
}

// Fountain is a fixed pool of particles thrown upward and recycled when
// they expire or fall below the floor.
type Fountain struct {
	opts      Options
	key       fountainKey
	particles []particle
	stream    prng.Source
}

func NewFountain(opts Options) *Fountain {
	f := &Fountain{opts: opts}
	if opts.SeedPolicy == SeedSession {
		seed := opts.Seed
		if seed == 0 {
			seed = poolSeed
		}
		f.stream = prng.Seeded(seed)
	}
	return f
}

// Live is the current pool size.
func (f *Fountain) Live() int { return len(f.particles) }

func (f *Fountain) Generate(p params.Set, c Clock, dst *geom.Frame) {
	key := fountainKey{
		count:  geom.ClampInt(p.Int("count", 400), minParticles, MaxParticles),
		spread: p.Number("spread", 1.5),
		speed:  p.Number("speed", 1),
	}
	if f.particles == nil || key != f.key {
		f.rebuild(key)
	}
	gravity := p.Number("gravity", 9.8)
	pal := paletteOf(p)
	color := pal.At(0.5)
	dt := c.Delta

	dst.Background = pal.BackgroundColor()

	for i := range f.particles {
		pt := &f.particles[i]
		pt.life -= dt
		if pt.life <= 0 || pt.pos.Y < floorY {
			rand := f.respawnSource(i)
			f.launch(pt, rand)
			pt.life = 1.2 + rand()*1.2
		}
		pt.vel.Y -= gravity * dt
		pt.pos = pt.pos.Add(pt.vel.Scale(dt))

		s := 0.1 + math.Max(0.05, pt.life*0.1)
		dst.Instances = append(dst.Instances, geom.Instance{
			Shape:    geom.ShapeSphere,
			Position: pt.pos,
			Scale:    geom.V(s, s, s),
			Color:    color,
		})
	}
}

func (f *Fountain) rebuild(key fountainKey) {
	f.key = key
	rand := f.stream
	if rand == nil {
		rand = prng.Seeded(poolSeed)
	}
	if cap(f.particles) >= key.count {
		f.particles = f.particles[:key.count]
	} else {
		f.particles = make([]particle, key.count)
	}
	for i := range f.particles {
		f.launch(&f.particles[i], rand)
		f.particles[i].life = rand() * 1.5
	}
}

func (f *Fountain) respawnSource(i int) prng.Source {
	if f.stream != nil {
		return f.stream
	}
	return prng.Seeded(int32(respawnSeed + i))
}

func (f *Fountain) launch(pt *particle, rand prng.Source) {
	angle := rand() * math.Pi * 2
	r := rand() * f.key.spread
	speedY := 3 + rand()*2
	pt.pos = geom.V(math.Cos(angle)*r/2, 0, math.Sin(angle)*r/2)
	pt.vel = geom.V(
		math.Cos(angle)*f.key.speed*0.4,
		speedY*f.key.speed*0.6,
		math.Sin(angle)*f.key.speed*0.4,
	)
}
