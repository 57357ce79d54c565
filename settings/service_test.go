package settings

import (
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/ratelimit"
)

type captureHandler struct {
	events chan SettingChangedPayload
}

func (h *captureHandler) Handle(payload SettingChangedPayload) {
	h.events <- payload
}

func TestWriteTriggersSettingChanged(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := NewService(NewMemoryStore())

	handler := &captureHandler{events: make(chan SettingChangedPayload, 16)}
	SettingChanged.Register(handler)

	if err := svc.Write(NamespaceAppearance, "color-scheme", Uint32(1)); err != nil {
		t.Fatal(err)
	}

	select {
	case payload := <-handler.events:
		if payload.Namespace != NamespaceAppearance || payload.Key != "color-scheme" {
			t.Errorf("unexpected payload: %+v", payload)
		}
		if u, _ := payload.Value.Uint32(); u != 1 {
			t.Errorf("expected payload value 1, got %d", u)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a SettingChanged event")
	}

	t.Run("rejected write triggers nothing", func(t *testing.T) {
		if err := svc.Write(NamespaceAppearance, "color-scheme", Uint32(9)); err == nil {
			t.Fatal("expected a validation error")
		}

		select {
		case payload := <-handler.events:
			t.Errorf("unexpected event after rejected write: %+v", payload)
		case <-time.After(50 * time.Millisecond):
		}
	})
}

func TestServiceWriteRatelimiter(t *testing.T) {
	svc := NewService(NewMemoryStore(), WithWriteRatelimiter(ratelimit.New(100)))

	// 10 writes at 100/s should take roughly 100ms; mainly this checks
	// the limiter is actually consulted.
	start := time.Now()
	for i := 0; i < 10; i++ {
		if err := svc.Write("com.example.custom", "counter", Int32(int32(i))); err != nil {
			t.Fatal(err)
		}
	}
	if time.Since(start) < 50*time.Millisecond {
		t.Error("expected writes to be paced by the rate limiter")
	}
}

func TestServiceStatus(t *testing.T) {
	svc := NewService(NewMemoryStore())

	status, err := svc.Status()
	if err != nil {
		t.Fatal(err)
	}

	if status.Entries != 11 {
		t.Errorf("expected 11 entries, got %d", status.Entries)
	}
	if status.Namespaces != 3 {
		t.Errorf("expected 3 namespaces, got %d", status.Namespaces)
	}
}
