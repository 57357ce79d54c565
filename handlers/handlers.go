// Package handlers provides the HTTP admin gateway in front of the
// settings service.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fdo-backends/portal-settings/errors"
	"github.com/fdo-backends/portal-settings/settings"
	log "github.com/sirupsen/logrus"
)

var InvalidBodyError = &errors.RequestError{
	StatusCode: http.StatusBadRequest,
	Err:        fmt.Errorf("invalid body"),
}

// handleError is a helper function for unified HTTP error handling.
func handleError(rw http.ResponseWriter, r *http.Request, err error) {
	log.
		WithFields(log.Fields{"error": err, "path": r.URL.Path}).
		Warn("Request error")

	// Check if the error was an errors.RequestError
	if reqErr, isReqErr := err.(*errors.RequestError); isReqErr {
		http.Error(rw, reqErr.Error(), reqErr.StatusCode)
		return
	}

	// Rejected writes carry the reason to the client
	if valErr, isValErr := err.(*settings.ValidationError); isValErr {
		http.Error(rw, valErr.Error(), http.StatusBadRequest)
		return
	}

	// Otherwise do not send data regarding the error
	http.Error(rw, "Error", http.StatusInternalServerError)
}

// handleJsonResponse is a helper function for unified JSON response handling.
func handleJsonResponse(rw http.ResponseWriter, status int, res interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(res); err != nil {
		log.Warn(err)
	}
}

func checkNonEmptyBody(r *http.Request) error {
	if r.Body == nil || r.ContentLength == 0 {
		return &errors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf("empty body"),
		}
	}
	return nil
}

func servePlainText(rw http.ResponseWriter, s string) {
	rw.Header().Set("Content-Type", "text/plain")
	rw.Header().Set("Content-Length", strconv.Itoa(len(s)))
	rw.WriteHeader(http.StatusOK)
	rw.Write([]byte(s)) // nolint
}
