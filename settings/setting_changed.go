package settings

import (
	log "github.com/sirupsen/logrus"
)

type SettingChangedPayload struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     Value  `json:"value"`
}

type settingChangedHandler interface {
	Handle(SettingChangedPayload)
}

type settingChanged struct {
	handlers []settingChangedHandler
}

var SettingChanged settingChanged // singleton of type settingChanged

// Register adds an event handler for this event
func (e *settingChanged) Register(handler settingChangedHandler) {
	log.Debug("Registering SettingChanged event handler")
	e.handlers = append(e.handlers, handler)
}

// Trigger sends out an event with the payload. Delivery is best effort;
// handlers run on their own goroutines and a slow consumer never blocks
// the write path.
func (e *settingChanged) Trigger(payload SettingChangedPayload) {
	log.
		WithFields(log.Fields{"namespace": payload.Namespace, "key": payload.Key}).
		Trace("Handling SettingChanged event")

	for _, handler := range e.handlers {
		go handler.Handle(payload)
	}
}
