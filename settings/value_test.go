package settings

import (
	"encoding/json"
	"testing"
)

func TestValueEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same uint32", Uint32(1), Uint32(1), true},
		{"different uint32", Uint32(1), Uint32(2), false},
		{"kind mismatch", Uint32(1), Int32(1), false},
		{"same color", ColorOf(Color{R: 0.5}), ColorOf(Color{R: 0.5}), true},
		{"different color", ColorOf(Color{R: 0.5}), ColorOf(Color{B: 0.5}), false},
		{"same raw", Raw([]interface{}{"a", "b"}), Raw([]interface{}{"a", "b"}), true},
		{"different raw", Raw([]interface{}{"a"}), Raw([]interface{}{"b"}), false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("expected Equal to return %t", tt.want)
			}
		})
	}
}

func TestRawCloneDoesNotShareStorage(t *testing.T) {
	backing := []interface{}{"original"}
	v := Raw(backing)

	// Mutating the caller's slice after construction must not show
	// through.
	backing[0] = "mutated"

	raw, _ := v.RawValue()
	if raw.([]interface{})[0] != "original" {
		t.Error("expected constructed value to hold its own copy")
	}

	clone := v.Clone()
	cloneRaw, _ := clone.RawValue()
	cloneRaw.([]interface{})[0] = "mutated"

	raw, _ = v.RawValue()
	if raw.([]interface{})[0] != "original" {
		t.Error("expected clone mutation not to affect the original")
	}
}

func TestValueJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, v := range []Value{Uint32(2), Int32(-5), Bool(true), String("Adwaita"), ColorOf(Color{R: 0.1, G: 0.2, B: 0.3})} {
			bs, err := json.Marshal(v)
			if err != nil {
				t.Fatal(err)
			}
			var got Value
			if err := json.Unmarshal(bs, &got); err != nil {
				t.Fatal(err)
			}
			if !got.Equal(v) {
				t.Errorf("expected %s to round trip, got %s", bs, got.Kind())
			}
		}
	})

	t.Run("unknown type tag", func(t *testing.T) {
		var got Value
		if err := json.Unmarshal([]byte(`{"type":"float128","value":1}`), &got); err == nil {
			t.Error("expected an error for an unknown type tag")
		}
	})

	t.Run("wire shape", func(t *testing.T) {
		bs, err := json.Marshal(Uint32(1))
		if err != nil {
			t.Fatal(err)
		}
		if string(bs) != `{"type":"uint32","value":1}` {
			t.Errorf("unexpected wire shape: %s", bs)
		}
	})
}
