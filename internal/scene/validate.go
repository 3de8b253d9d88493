package scene

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks every default against its own spec. Unknown kinds are
// accepted; the control surface renders them as unsupported.
func Validate(d Descriptor) error {
	var errs []error
	seen := make(map[string]bool, len(d.Params))
	for _, p := range d.Params {
		if seen[p.Name] {
			errs = append(errs, &SpecError{Slug: d.Slug, Param: p.Name, Reason: "duplicate parameter name", Wrapped: ErrInvalidDescriptor})
			continue
		}
		seen[p.Name] = true
		if reason := checkDefault(p); reason != "" {
			errs = append(errs, &SpecError{Slug: d.Slug, Param: p.Name, Reason: reason})
		}
	}
	return errors.Join(errs...)
}

// ValidateAll validates every descriptor in the registry.
func (r *Registry) ValidateAll() error {
	var errs []error
	for _, d := range r.order {
		if err := Validate(d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func checkDefault(p ParamSpec) string {
	switch p.Kind.Canonical() {
	case KindNumber:
		v, ok := NumberDefault(p.Default)
		if !ok {
			return fmt.Sprintf("default %v is not a number", p.Default)
		}
		if p.Min > p.Max {
			return fmt.Sprintf("min %g exceeds max %g", p.Min, p.Max)
		}
		if v < p.Min || v > p.Max {
			return fmt.Sprintf("default %g outside [%g, %g]", v, p.Min, p.Max)
		}
	case KindBoolean:
		if _, ok := p.Default.(bool); !ok {
			return fmt.Sprintf("default %v is not a boolean", p.Default)
		}
	case KindColor:
		s, ok := p.Default.(string)
		if !ok || !hexColor.MatchString(s) {
			return fmt.Sprintf("default %v is not a #rrggbb colour", p.Default)
		}
	case KindSelect:
		s, ok := p.Default.(string)
		if !ok || !slices.Contains(p.Options, s) {
			return fmt.Sprintf("default %v not in options %v", p.Default, p.Options)
		}
	}
	return ""
}
