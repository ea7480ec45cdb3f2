package app

import (
	"net/http"
)

var healthResponseJSON = []byte(`{"status":"healthy"}`)

// healthHandler handles health check requests
func (a *Application) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(ContentTypeHeader, ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(healthResponseJSON)
}
