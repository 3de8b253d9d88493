package gen

import (
	"fmt"
	"strings"

	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
)

// Clock is the render loop's view of time, in seconds.
type Clock struct {
	Elapsed float64
	Delta   float64
	Frame   uint64
}

// Generator fills dst from the current parameters. dst has already been
// reset by the caller.
type Generator interface {
	Generate(p params.Set, c Clock, dst *geom.Frame)
}

// SeedPolicy decides how random streams are seeded for generators that draw
// fresh randomness while running.
type SeedPolicy string

const (
	// SeedReseed seeds a new stream on every regeneration pass.
	SeedReseed SeedPolicy = "reseed"
	// SeedSession seeds one stream when the scene is activated.
	SeedSession SeedPolicy = "session"
)

func ParseSeedPolicy(s string) (SeedPolicy, error) {
	switch SeedPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", SeedReseed:
		return SeedReseed, nil
	case SeedSession:
		return SeedSession, nil
	}
	return "", fmt.Errorf("unknown seed policy: %s", s)
}

type Options struct {
	SeedPolicy SeedPolicy
	// Seed seeds the session stream; zero selects the pool seed.
	Seed int32
}
