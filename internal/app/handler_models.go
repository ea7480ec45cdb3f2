package app

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/sachinth/koda/internal/inventory"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ModelsResponse struct {
	Models []inventory.ModelRecord `json:"models"`
}

// modelsHandler returns the installed model inventory. The widget's
// refresh button simply re-requests this endpoint; the inventory
// command runs fresh on every call.
func (a *Application) modelsHandler(w http.ResponseWriter, r *http.Request) {
	records := a.getInventory().List(r.Context())

	w.Header().Set(ContentTypeHeader, ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(ModelsResponse{Models: records})
}
