package portal

import (
	"github.com/fdo-backends/portal-settings/settings"
	"github.com/godbus/dbus/v5"
)

// accentColor marshals with signature (ddd), the wire shape desktop
// portal frontends expect for accent-color.
type accentColor struct {
	R float64
	G float64
	B float64
}

// ToVariant converts a store value to its D-Bus representation.
func ToVariant(v settings.Value) dbus.Variant {
	switch v.Kind() {
	case settings.KindUint32:
		u, _ := v.Uint32()
		return dbus.MakeVariant(u)
	case settings.KindInt32:
		i, _ := v.Int32()
		return dbus.MakeVariant(i)
	case settings.KindBool:
		b, _ := v.Bool()
		return dbus.MakeVariant(b)
	case settings.KindString:
		s, _ := v.String()
		return dbus.MakeVariant(s)
	case settings.KindColor:
		c, _ := v.Color()
		return dbus.MakeVariant(accentColor{R: c.R, G: c.G, B: c.B})
	default:
		raw, _ := v.RawValue()
		return dbus.MakeVariant(raw)
	}
}

// FromVariant converts an inbound variant to a store value. Typed
// variants map onto the schema kinds; anything else is carried as raw
// so unknown-schema settings pass through unmodified.
func FromVariant(variant dbus.Variant) settings.Value {
	switch payload := variant.Value().(type) {
	case uint32:
		return settings.Uint32(payload)
	case int32:
		return settings.Int32(payload)
	case bool:
		return settings.Bool(payload)
	case string:
		return settings.String(payload)
	case []interface{}:
		if variant.Signature().String() == "(ddd)" && len(payload) == 3 {
			r, rok := payload[0].(float64)
			g, gok := payload[1].(float64)
			b, bok := payload[2].(float64)
			if rok && gok && bok {
				return settings.ColorOf(settings.Color{R: r, G: g, B: b})
			}
		}
		return settings.Raw(payload)
	default:
		return settings.Raw(payload)
	}
}
