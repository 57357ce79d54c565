package settings

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Kind enumerates the shapes a setting value can take.
type Kind int

const (
	KindUint32 Kind = iota
	KindInt32
	KindBool
	KindString
	KindColor
	KindRaw
)

func (k Kind) String() string {
	return [...]string{"uint32", "int32", "bool", "string", "color", "raw"}[k]
}

// Color is an RGB triplet with channel values in 0.0-1.0.
type Color struct {
	R float64
	G float64
	B float64
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{c.R, c.G, c.B})
}

func (c *Color) UnmarshalJSON(bs []byte) error {
	var channels [3]float64
	if err := json.Unmarshal(bs, &channels); err != nil {
		return err
	}
	c.R, c.G, c.B = channels[0], channels[1], channels[2]
	return nil
}

// Value is a tagged union over the setting value shapes. The zero value
// is the uint32 0. Known-schema settings use the typed kinds; values for
// settings outside the schema are carried as KindRaw.
type Value struct {
	kind  Kind
	u32   uint32
	i32   int32
	b     bool
	s     string
	color Color
	raw   interface{}
}

func Uint32(v uint32) Value   { return Value{kind: KindUint32, u32: v} }
func Int32(v int32) Value     { return Value{kind: KindInt32, i32: v} }
func Bool(v bool) Value       { return Value{kind: KindBool, b: v} }
func String(v string) Value   { return Value{kind: KindString, s: v} }
func ColorOf(v Color) Value   { return Value{kind: KindColor, color: v} }
func Raw(v interface{}) Value { return Value{kind: KindRaw, raw: copyAny(v)} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) Uint32() (uint32, bool) { return v.u32, v.kind == KindUint32 }
func (v Value) Int32() (int32, bool)   { return v.i32, v.kind == KindInt32 }
func (v Value) Bool() (bool, bool)     { return v.b, v.kind == KindBool }
func (v Value) String() (string, bool) { return v.s, v.kind == KindString }
func (v Value) Color() (Color, bool)   { return v.color, v.kind == KindColor }

// RawValue returns the untyped payload of a KindRaw value. The result
// shares no mutable storage with the stored value.
func (v Value) RawValue() (interface{}, bool) {
	if v.kind != KindRaw {
		return nil, false
	}
	return copyAny(v.raw), true
}

// Clone returns a deep copy. Mutating the copy never shows through to
// the original.
func (v Value) Clone() Value {
	if v.kind == KindRaw {
		return Value{kind: KindRaw, raw: copyAny(v.raw)}
	}
	return v
}

// Equal reports structural equality.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindUint32:
		return v.u32 == other.u32
	case KindInt32:
		return v.i32 == other.i32
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.s == other.s
	case KindColor:
		return v.color == other.color
	default:
		return reflect.DeepEqual(v.raw, other.raw)
	}
}

// valueJSON is the wire model for Value, e.g. {"type":"uint32","value":1}.
type valueJSON struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	var payload interface{}
	switch v.kind {
	case KindUint32:
		payload = v.u32
	case KindInt32:
		payload = v.i32
	case KindBool:
		payload = v.b
	case KindString:
		payload = v.s
	case KindColor:
		payload = v.color
	default:
		payload = v.raw
	}
	bs, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(valueJSON{Type: v.kind.String(), Value: bs})
}

func (v *Value) UnmarshalJSON(bs []byte) error {
	var j valueJSON
	if err := json.Unmarshal(bs, &j); err != nil {
		return err
	}
	switch j.Type {
	case "uint32":
		var u uint32
		if err := json.Unmarshal(j.Value, &u); err != nil {
			return err
		}
		*v = Uint32(u)
	case "int32":
		var i int32
		if err := json.Unmarshal(j.Value, &i); err != nil {
			return err
		}
		*v = Int32(i)
	case "bool":
		var b bool
		if err := json.Unmarshal(j.Value, &b); err != nil {
			return err
		}
		*v = Bool(b)
	case "string":
		var s string
		if err := json.Unmarshal(j.Value, &s); err != nil {
			return err
		}
		*v = String(s)
	case "color":
		var c Color
		if err := json.Unmarshal(j.Value, &c); err != nil {
			return err
		}
		*v = ColorOf(c)
	case "raw":
		var raw interface{}
		if err := json.Unmarshal(j.Value, &raw); err != nil {
			return err
		}
		*v = Raw(raw)
	default:
		return fmt.Errorf("unknown value type %q", j.Type)
	}
	return nil
}

// copyAny deep-copies slices and maps so raw payloads never share
// backing storage across store boundaries. Scalars pass through.
func copyAny(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			setCopied(out.Index(i), rv.Index(i))
		}
		return out.Interface()
	case reflect.Map:
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			c := copyAny(iter.Value().Interface())
			if c == nil {
				out.SetMapIndex(iter.Key(), reflect.Zero(rv.Type().Elem()))
			} else {
				out.SetMapIndex(iter.Key(), reflect.ValueOf(c))
			}
		}
		return out.Interface()
	default:
		return v
	}
}

func setCopied(dst, src reflect.Value) {
	c := copyAny(src.Interface())
	if c == nil {
		dst.Set(reflect.Zero(src.Type()))
		return
	}
	dst.Set(reflect.ValueOf(c))
}
