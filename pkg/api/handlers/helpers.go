package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/marmos91/indexfs/pkg/disk"
	"github.com/marmos91/indexfs/pkg/registry"
)

// maxBodyBytes bounds request bodies; file content is the largest payload.
const maxBodyBytes = 8 << 20

// decodeJSONBody decodes a JSON request body into v.
// Returns false after writing a 400 if decoding fails.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		BadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}

// diskOrError resolves the {disk} URL parameter.
// Returns false after writing the error response if the disk is unknown.
func diskOrError(w http.ResponseWriter, r *http.Request, reg *registry.Registry) (*disk.Service, bool) {
	svc, err := reg.Get(pathParam(r, "disk"))
	if err != nil {
		writeStoreError(w, r, err)
		return nil, false
	}
	return svc, true
}

// pathParam returns the decoded URL parameter key. chi matches on
// r.URL.RawPath when it is set, leaving parameters escaped; otherwise they
// come from the already decoded r.URL.Path and must not be unescaped again.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw
	}
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// fileName returns the decoded {name} URL parameter.
func fileName(r *http.Request) string {
	return pathParam(r, "name")
}
