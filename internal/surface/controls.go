package surface

import (
	"fmt"
	"strconv"

	"github.com/san-kum/vizvault/internal/params"
	"github.com/san-kum/vizvault/internal/scene"
)

type ControlType string

const (
	Slider      ControlType = "slider"
	Toggle      ControlType = "toggle"
	ColorPicker ControlType = "color"
	Select      ControlType = "select"
	Unsupported ControlType = "unsupported"
)

// Control is one input widget bound to a parameter.
type Control struct {
	Type  ControlType     `json:"type"`
	Spec  scene.ParamSpec `json:"spec"`
	Value params.Value    `json:"value"`
	Note  string          `json:"note,omitempty"`
}

// ControlFor picks the widget for spec's kind.
func ControlFor(spec scene.ParamSpec, v params.Value) Control {
	c := Control{Spec: spec, Value: v}
	switch spec.Kind.Canonical() {
	case scene.KindNumber:
		c.Type = Slider
	case scene.KindBoolean:
		c.Type = Toggle
	case scene.KindColor:
		c.Type = ColorPicker
	case scene.KindSelect:
		c.Type = Select
	default:
		c.Type = Unsupported
		c.Note = UnsupportedText(spec.Kind)
	}
	return c
}

func UnsupportedText(k scene.Kind) string {
	return fmt.Sprintf("unsupported param type: %s", k)
}

// Controls lists one control per parameter, in spec order.
func (s *Session) Controls() []Control {
	out := make([]Control, 0, len(s.desc.Params))
	for _, p := range s.desc.Params {
		v, ok := s.store.Value(p.Name)
		if !ok {
			v, _ = params.FromAny(p.Default)
		}
		out = append(out, ControlFor(p, v))
	}
	return out
}

// Label renders the control's current value for text surfaces.
func (c Control) Label() string {
	switch c.Type {
	case Slider:
		f, _ := c.Value.Float()
		return strconv.FormatFloat(f, 'f', decimals(c.Spec.Step), 64)
	case Toggle:
		if b, _ := c.Value.Boolean(); b {
			return "on"
		}
		return "off"
	case Unsupported:
		return c.Note
	}
	return c.Value.String()
}

func decimals(step float64) int {
	switch {
	case step <= 0:
		return 2
	case step >= 1:
		return 0
	case step >= 0.1:
		return 1
	case step >= 0.01:
		return 2
	}
	return 3
}
