package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fdo-backends/portal-settings/handlers"
	"github.com/fdo-backends/portal-settings/settings"
	"github.com/fdo-backends/portal-settings/tests/test"
	"github.com/gorilla/mux"
)

func settingsRouter(t *testing.T) *mux.Router {
	t.Helper()

	cfg := test.LoadConfig(t)
	svc := test.GetService(t, cfg)

	settingsHandler := handlers.NewSettings(svc)

	router := mux.NewRouter()
	router.Handle("/settings", settingsHandler.List()).Methods(http.MethodGet)
	router.Handle("/settings/{namespace}/{key}", settingsHandler.Details()).Methods(http.MethodGet)
	router.Handle("/settings/{namespace}/{key}", settingsHandler.Set()).Methods(http.MethodPost)

	return router
}

func TestSettingsE2E(t *testing.T) {
	router := settingsRouter(t)

	var steps = []struct {
		name           string
		body           io.Reader
		path           string
		method         string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "read seeded default",
			path:           "/settings/org.freedesktop.appearance/color-scheme",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"type":"uint32","value":0}`,
		},
		{
			name:           "write a valid value",
			body:           bytes.NewBufferString(`{"type":"uint32","value":2}`),
			path:           "/settings/org.freedesktop.appearance/color-scheme",
			method:         http.MethodPost,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"type":"uint32","value":2}`,
		},
		{
			name:           "read it back",
			path:           "/settings/org.freedesktop.appearance/color-scheme",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"type":"uint32","value":2}`,
		},
		{
			name:           "out of range write is a 400",
			body:           bytes.NewBufferString(`{"type":"uint32","value":5}`),
			path:           "/settings/org.freedesktop.appearance/color-scheme",
			method:         http.MethodPost,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid value for org.freedesktop.appearance/color-scheme: color-scheme must be uint32 (0-2)`,
		},
		{
			name:           "rejected write left the value alone",
			path:           "/settings/org.freedesktop.appearance/color-scheme",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"type":"uint32","value":2}`,
		},
		{
			name:           "empty body is a 400",
			path:           "/settings/org.freedesktop.appearance/color-scheme",
			method:         http.MethodPost,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `empty body`,
		},
		{
			name:           "unknown pair is a 404",
			path:           "/settings/com.example.custom/nothing",
			method:         http.MethodGet,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `setting com.example.custom/nothing not found`,
		},
		{
			name:           "unknown pair accepts any write",
			body:           bytes.NewBufferString(`{"type":"string","value":"whatever"}`),
			path:           "/settings/com.example.custom/nothing",
			method:         http.MethodPost,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"type":"string","value":"whatever"}`,
		},
	}

	for _, tt := range steps {
		t.Run(tt.name, func(t *testing.T) {
			res := send(router, tt.method, tt.path, tt.body)
			assertStatusCode(t, res, tt.expectedStatus)
			bs, err := io.ReadAll(res.Body)
			if err != nil {
				t.Fatal(err)
			}
			if strings.TrimSpace(string(bs)) != tt.expectedBody {
				t.Errorf("expected response body to equal '%v', got '%v'", tt.expectedBody, strings.TrimSpace(string(bs)))
			}
		})
	}
}

func TestSettingsListFilter(t *testing.T) {
	router := settingsRouter(t)

	t.Run("no filter returns all namespaces", func(t *testing.T) {
		res := send(router, http.MethodGet, "/settings", nil)
		assertStatusCode(t, res, http.StatusOK)

		var all map[string]map[string]settings.Value
		fromJsonBody(res, &all)

		if len(all) != 3 {
			t.Fatalf("expected 3 namespaces, got %d", len(all))
		}

		entries := 0
		for _, group := range all {
			entries += len(group)
		}
		if entries != 11 {
			t.Errorf("expected 11 entries, got %d", entries)
		}
	})

	t.Run("namespace filter", func(t *testing.T) {
		res := send(router, http.MethodGet, "/settings?namespace=org.freedesktop.appearance", nil)
		assertStatusCode(t, res, http.StatusOK)

		var all map[string]map[string]settings.Value
		fromJsonBody(res, &all)

		if len(all) != 1 {
			t.Fatalf("expected exactly 1 namespace, got %d", len(all))
		}
		if len(all["org.freedesktop.appearance"]) != 3 {
			t.Errorf("expected 3 appearance entries, got %d", len(all["org.freedesktop.appearance"]))
		}
	})

	t.Run("filter without matches", func(t *testing.T) {
		res := send(router, http.MethodGet, "/settings?namespace=com.example.absent", nil)
		assertStatusCode(t, res, http.StatusOK)

		var all map[string]map[string]settings.Value
		fromJsonBody(res, &all)

		if len(all) != 0 {
			t.Errorf("expected an empty result, got %v", all)
		}
	})
}

func assertStatusCode(t *testing.T, res *http.Response, expected int) {
	t.Helper()
	if res.StatusCode != expected {
		bs, err := io.ReadAll(res.Body)
		if err != nil {
			panic(err)
		}
		t.Fatalf("expected HTTP response status code %d, got %d: %s", expected, res.StatusCode, string(bs))
	}
}

func fromJsonBody(res *http.Response, v interface{}) {
	bs, err := io.ReadAll(res.Body)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(bs, v)
	if err != nil {
		panic(err)
	}
}

func send(router *mux.Router, method, path string, body io.Reader) *http.Response {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("content-type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr.Result()
}
