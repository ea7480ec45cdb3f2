package app

import (
	"net/http"

	"github.com/sachinth/koda/web"
)

// uiHandler serves the embedded chat widget. "/" matches everything
// the mux doesn't know, so unknown paths 404 here rather than
// silently serving the page.
func (a *Application) uiHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set(ContentTypeHeader, ContentTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(web.IndexHTML)
}
