package scene

import "strings"

type Kind string

const (
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindColor   Kind = "color"
	KindSelect  Kind = "select"
)

// Canonical folds aliases ("enum", "bool") onto the four known kinds.
// Unknown kinds are returned unchanged.
func (k Kind) Canonical() Kind {
	switch strings.ToLower(string(k)) {
	case "number", "float", "int":
		return KindNumber
	case "boolean", "bool":
		return KindBoolean
	case "color", "colour":
		return KindColor
	case "select", "enum":
		return KindSelect
	}
	return k
}

func (k Kind) Known() bool {
	switch k.Canonical() {
	case KindNumber, KindBoolean, KindColor, KindSelect:
		return true
	}
	return false
}

type ParamSpec struct {
	Name    string   `yaml:"name" json:"name"`
	Label   string   `yaml:"label" json:"label"`
	Kind    Kind     `yaml:"kind" json:"kind"`
	Min     float64  `yaml:"min,omitempty" json:"min,omitempty"`
	Max     float64  `yaml:"max,omitempty" json:"max,omitempty"`
	Step    float64  `yaml:"step,omitempty" json:"step,omitempty"`
	Options []string `yaml:"options,omitempty" json:"options,omitempty"`
	Default any      `yaml:"default" json:"default"`
}

type Descriptor struct {
	Slug        string      `yaml:"slug" json:"slug"`
	Title       string      `yaml:"title" json:"title"`
	Description string      `yaml:"description" json:"description"`
	Generator   string      `yaml:"generator" json:"generator"`
	Params      []ParamSpec `yaml:"params" json:"params"`
	Tips        []string    `yaml:"tips,omitempty" json:"tips,omitempty"`
}

// Spec returns the named parameter spec.
func (d Descriptor) Spec(name string) (ParamSpec, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}

// clone deep-copies the slices so registry callers cannot alias them.
func (d Descriptor) clone() Descriptor {
	out := d
	out.Params = make([]ParamSpec, len(d.Params))
	for i, p := range d.Params {
		if p.Options != nil {
			p.Options = append([]string(nil), p.Options...)
		}
		out.Params[i] = p
	}
	if d.Tips != nil {
		out.Tips = append([]string(nil), d.Tips...)
	}
	return out
}

// NumberDefault converts yaml/json decoded numbers to float64.
func NumberDefault(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
