// Package params holds the live parameter values of the active scene.
package params

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type Type uint8

const (
	TypeNumber Type = iota + 1
	TypeBool
	TypeString
)

func (t Type) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeBool:
		return "boolean"
	case TypeString:
		return "string"
	}
	return "invalid"
}

// Value is a number, boolean or string parameter value.
type Value struct {
	typ Type
	num float64
	b   bool
	s   string
}

func Number(f float64) Value { return Value{typ: TypeNumber, num: f} }
func Bool(b bool) Value      { return Value{typ: TypeBool, b: b} }
func Text(s string) Value    { return Value{typ: TypeString, s: s} }

// FromAny converts a decoded yaml/json value. Integers become numbers.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case int:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case bool:
		return Bool(x), nil
	case string:
		return Text(x), nil
	}
	return Value{}, fmt.Errorf("%w: unsupported value %T", ErrKindMismatch, v)
}

func (v Value) Type() Type    { return v.typ }
func (v Value) IsValid() bool { return v.typ != 0 }

func (v Value) Float() (float64, bool) { return v.num, v.typ == TypeNumber }
func (v Value) Boolean() (bool, bool)  { return v.b, v.typ == TypeBool }
func (v Value) Str() (string, bool)    { return v.s, v.typ == TypeString }

// Any returns the underlying float64, bool or string.
func (v Value) Any() any {
	switch v.typ {
	case TypeNumber:
		return v.num
	case TypeBool:
		return v.b
	case TypeString:
		return v.s
	}
	return nil
}

func (v Value) Equal(o Value) bool { return v == o }

func (v Value) String() string {
	switch v.typ {
	case TypeNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case TypeBool:
		return strconv.FormatBool(v.b)
	case TypeString:
		return v.s
	}
	return "<invalid>"
}

func (v Value) MarshalJSON() ([]byte, error) { return json.Marshal(v.Any()) }

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = out
	return nil
}
