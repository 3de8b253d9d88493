package params

import (
	"math"

	"github.com/san-kum/vizvault/internal/scene"
)

// Set maps parameter names to values.
type Set map[string]Value

// Defaults builds a set from each spec's default.
func Defaults(specs []scene.ParamSpec) Set {
	s := make(Set, len(specs))
	for _, p := range specs {
		v, err := FromAny(p.Default)
		if err != nil {
			continue
		}
		s[p.Name] = v
	}
	return s
}

func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Number returns the named number, or fallback when absent or not a number.
func (s Set) Number(name string, fallback float64) float64 {
	if f, ok := s[name].Float(); ok && !math.IsNaN(f) {
		return f
	}
	return fallback
}

// Int floors the named number.
func (s Set) Int(name string, fallback int) int {
	f, ok := s[name].Float()
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return int(math.Floor(f))
}

func (s Set) Bool(name string, fallback bool) bool {
	if b, ok := s[name].Boolean(); ok {
		return b
	}
	return fallback
}

func (s Set) String(name, fallback string) string {
	if str, ok := s[name].Str(); ok {
		return str
	}
	return fallback
}

// Map flattens the set for encoding.
func (s Set) Map() map[string]any {
	m := make(map[string]any, len(s))
	for k, v := range s {
		m[k] = v.Any()
	}
	return m
}
