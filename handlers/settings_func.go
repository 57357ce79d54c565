package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fdo-backends/portal-settings/errors"
	"github.com/fdo-backends/portal-settings/settings"
	"github.com/gorilla/mux"
)

// ListFunc returns all settings grouped by namespace.
// Repeated "namespace" query parameters narrow the result.
func (s *Settings) ListFunc(rw http.ResponseWriter, r *http.Request) {
	namespaces := r.URL.Query()["namespace"]

	res := s.service.ReadAll(namespaces)

	handleJsonResponse(rw, http.StatusOK, res)
}

// DetailsFunc returns the value for one (namespace, key) pair.
// A pair without an entry is a plain 404, not a server error.
func (s *Settings) DetailsFunc(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	res, ok := s.service.Read(vars["namespace"], vars["key"])
	if !ok {
		handleError(rw, r, &errors.RequestError{
			StatusCode: http.StatusNotFound,
			Err:        fmt.Errorf("setting %s/%s not found", vars["namespace"], vars["key"]),
		})
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

// SetFunc writes one setting. The body carries a typed value, e.g.
// {"type":"uint32","value":1}. Validation failures map to 400 with the
// rejection reason.
func (s *Settings) SetFunc(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := checkNonEmptyBody(r); err != nil {
		handleError(rw, r, err)
		return
	}

	var value settings.Value
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		handleError(rw, r, InvalidBodyError)
		return
	}

	if err := s.service.Write(vars["namespace"], vars["key"], value); err != nil {
		handleError(rw, r, err)
		return
	}

	// Return the stored version
	res, _ := s.service.Read(vars["namespace"], vars["key"])
	handleJsonResponse(rw, http.StatusOK, res)
}
