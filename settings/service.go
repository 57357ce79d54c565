package settings

import (
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

// Service wraps a Store with logging, optional write rate limiting and
// change event fanout. Transport adapters talk to the store through a
// Service, never directly.
type Service struct {
	store            Store
	writeRateLimiter ratelimit.Limiter
}

func NewService(store Store, opts ...ServiceOption) *Service {
	svc := &Service{store: store}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

func (svc *Service) Read(namespace, key string) (Value, bool) {
	return svc.store.Read(namespace, key)
}

func (svc *Service) ReadAll(namespaces []string) map[string]map[string]Value {
	return svc.store.ReadAll(namespaces)
}

// Write stores a validated value and triggers the SettingChanged event.
// A rejected write returns a *ValidationError and triggers nothing.
func (svc *Service) Write(namespace, key string, value Value) error {
	if svc.writeRateLimiter != nil {
		svc.writeRateLimiter.Take()
	}

	if err := svc.store.Write(namespace, key, value); err != nil {
		log.
			WithFields(log.Fields{"namespace": namespace, "key": key, "error": err}).
			Warn("Rejected settings write")
		return err
	}

	log.
		WithFields(log.Fields{"namespace": namespace, "key": key}).
		Debug("Setting written")

	SettingChanged.Trigger(SettingChangedPayload{
		Namespace: namespace,
		Key:       key,
		Value:     value.Clone(),
	})

	return nil
}

// Status describes the table for liveness reporting.
type Status struct {
	Entries    int `json:"entries"`
	Namespaces int `json:"namespaces"`
}

func (svc *Service) Status() (*Status, error) {
	all := svc.store.ReadAll(nil)

	entries := 0
	for _, group := range all {
		entries += len(group)
	}

	return &Status{Entries: entries, Namespaces: len(all)}, nil
}
