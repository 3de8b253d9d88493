package gen

import "sync"

// Loader resolves generator names once and caches the result. It is safe
// for concurrent use.
type Loader struct {
	opts Options

	mu       sync.Mutex
	resolved map[string]Kind
	misses   map[string]error
}

func NewLoader(opts Options) *Loader {
	return &Loader{
		opts:     opts,
		resolved: make(map[string]Kind),
		misses:   make(map[string]error),
	}
}

func (l *Loader) Options() Options { return l.opts }

func (l *Loader) Resolve(name string) (Kind, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if k, ok := l.resolved[name]; ok {
		return k, nil
	}
	if err, ok := l.misses[name]; ok {
		return 0, err
	}
	k, err := Lookup(name)
	if err != nil {
		l.misses[name] = err
		return 0, err
	}
	warmTables(k)
	l.resolved[name] = k
	return k, nil
}

// Load resolves name and builds a fresh generator for it.
func (l *Loader) Load(name string) (Generator, Kind, error) {
	k, err := l.Resolve(name)
	if err != nil {
		return nil, 0, err
	}
	return k.NewWith(l.opts), k, nil
}

// Cached is the number of names resolved so far.
func (l *Loader) Cached() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.resolved)
}

// warmTables builds the precomputed data a kind draws from.
func warmTables(k Kind) {
	switch k {
	case GalaxyNetwork:
		galaxyGraph()
	case TerrainHeightmap:
		terrainHeightmap()
	case VolumeField:
		volumeCells()
	case RibbonFlow:
		ribbonPaths()
	}
}
