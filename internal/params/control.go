package params

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/san-kum/vizvault/internal/palette"
	"github.com/san-kum/vizvault/internal/scene"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Parse reads a textual value (flag or query string) according to spec.
func Parse(spec scene.ParamSpec, raw string) (Value, error) {
	raw = strings.TrimSpace(raw)
	switch spec.Kind.Canonical() {
	case scene.KindNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %s=%q is not a number", ErrKindMismatch, spec.Name, raw)
		}
		return Number(f), nil
	case scene.KindBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %s=%q is not a boolean", ErrKindMismatch, spec.Name, raw)
		}
		return Bool(b), nil
	}
	return Text(raw), nil
}

// Validate reports whether v satisfies spec's kind and bounds.
func Validate(spec scene.ParamSpec, v Value) error {
	switch spec.Kind.Canonical() {
	case scene.KindNumber:
		f, ok := v.Float()
		if !ok {
			return fmt.Errorf("%w: %s wants a number, got %s", ErrKindMismatch, spec.Name, v.Type())
		}
		if math.IsNaN(f) || f < spec.Min || f > spec.Max {
			return fmt.Errorf("%w: %s=%g outside [%g, %g]", ErrOutOfRange, spec.Name, f, spec.Min, spec.Max)
		}
	case scene.KindBoolean:
		if _, ok := v.Boolean(); !ok {
			return fmt.Errorf("%w: %s wants a boolean, got %s", ErrKindMismatch, spec.Name, v.Type())
		}
	case scene.KindColor:
		s, ok := v.Str()
		if !ok {
			return fmt.Errorf("%w: %s wants a colour, got %s", ErrKindMismatch, spec.Name, v.Type())
		}
		if !hexColor.MatchString(s) {
			return fmt.Errorf("%w: %s=%q is not #rrggbb", ErrOutOfRange, spec.Name, s)
		}
	case scene.KindSelect:
		s, ok := v.Str()
		if !ok {
			return fmt.Errorf("%w: %s wants an option, got %s", ErrKindMismatch, spec.Name, v.Type())
		}
		if !slices.Contains(spec.Options, s) {
			return fmt.Errorf("%w: %s=%q not in %v", ErrOutOfRange, spec.Name, s, spec.Options)
		}
	}
	return nil
}

// Clamp coerces v into spec, snapping numbers to the step grid. Values of the
// wrong type fall back to the declared default.
func Clamp(spec scene.ParamSpec, v Value) Value {
	def, _ := FromAny(spec.Default)
	switch spec.Kind.Canonical() {
	case scene.KindNumber:
		f, ok := v.Float()
		if !ok || math.IsNaN(f) {
			return def
		}
		if spec.Step > 0 {
			f = spec.Min + math.Round((f-spec.Min)/spec.Step)*spec.Step
			f = math.Round(f*1e9) / 1e9
		}
		return Number(math.Min(spec.Max, math.Max(spec.Min, f)))
	case scene.KindBoolean, scene.KindColor, scene.KindSelect:
		if Validate(spec, v) != nil {
			return def
		}
	}
	return v
}

// Step nudges a number by n steps within its bounds, flips a boolean, or
// cycles a select. Colours cycle through the default followed by the palette
// swatches. It backs keyboard-driven controls.
func Step(spec scene.ParamSpec, v Value, n int) Value {
	switch spec.Kind.Canonical() {
	case scene.KindNumber:
		f, _ := Clamp(spec, v).Float()
		step := spec.Step
		if step <= 0 {
			step = (spec.Max - spec.Min) / 100
		}
		return Clamp(spec, Number(f+float64(n)*step))
	case scene.KindBoolean:
		b, _ := v.Boolean()
		if n%2 != 0 {
			b = !b
		}
		return Bool(b)
	case scene.KindSelect:
		if len(spec.Options) == 0 {
			return v
		}
		s, _ := v.Str()
		i := slices.Index(spec.Options, s)
		if i < 0 {
			i = 0
		}
		i = ((i+n)%len(spec.Options) + len(spec.Options)) % len(spec.Options)
		return Text(spec.Options[i])
	case scene.KindColor:
		cycle := swatchCycle(spec)
		s, _ := v.Str()
		i := slices.IndexFunc(cycle, func(c string) bool { return strings.EqualFold(c, s) })
		if i < 0 {
			i = 0
		}
		i = ((i+n)%len(cycle) + len(cycle)) % len(cycle)
		return Text(cycle[i])
	}
	return v
}

func swatchCycle(spec scene.ParamSpec) []string {
	var cycle []string
	if def, ok := spec.Default.(string); ok && hexColor.MatchString(def) {
		cycle = append(cycle, strings.ToLower(def))
	}
	for _, s := range palette.Swatches() {
		if !slices.Contains(cycle, s) {
			cycle = append(cycle, s)
		}
	}
	return cycle
}
