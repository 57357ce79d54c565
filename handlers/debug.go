package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"
)

// Debug serves a plain text dump of the request and build information.
func Debug(repoURL, sha1ver, buildtime string) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		v := mux.Vars(r)

		a := []string{fmt.Sprintf("url: %s %s", r.Method, r.RequestURI), "Headers:"}

		keys := make([]string, 0, len(r.Header))
		for k := range r.Header {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			for _, hv := range r.Header[k] {
				a = append(a, fmt.Sprintf("  %s: %v", k, hv))
			}
		}

		a = append(a, "")
		a = append(a, fmt.Sprintf("ver: %s/commit/%s", repoURL, sha1ver))
		a = append(a, fmt.Sprintf("built on: %s", buildtime))
		a = append(a, fmt.Sprintf("api version called: %s", v["apiVersion"]))

		servePlainText(rw, strings.Join(a, "\n"))
	})
}
