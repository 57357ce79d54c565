package handlers

import (
	"net/http"

	"github.com/fdo-backends/portal-settings/settings"
)

// Settings is a HTTP server for settings management.
// It provides list, details and write APIs.
// It uses a settings service to interface with data.
type Settings struct {
	service *settings.Service
}

// NewSettings initiates a new settings server.
func NewSettings(service *settings.Service) *Settings {
	return &Settings{service}
}

func (s *Settings) List() http.Handler {
	return http.HandlerFunc(s.ListFunc)
}

func (s *Settings) Details() http.Handler {
	return http.HandlerFunc(s.DetailsFunc)
}

func (s *Settings) Set() http.Handler {
	return http.HandlerFunc(s.SetFunc)
}
