package app

import (
	"net/http"

	"github.com/sachinth/koda/internal/relay"
)

// ChatRequest is the payload the browser widget posts for each message.
// History is owned by the widget and travels with every request; the
// server keeps no session state.
type ChatRequest struct {
	Message     string       `json:"message"`
	History     []relay.Turn `json:"history"`
	Model       string       `json:"model"`
	Temperature *float64     `json:"temperature"`
}

type ChatResponse struct {
	Model string `json:"model"`
	Reply string `json:"reply"`
}

type GenerateRequest struct {
	Model       string   `json:"model"`
	Prompt      string   `json:"prompt"`
	Temperature *float64 `json:"temperature"`
}

// chatHandler relays one message plus its conversation history to the
// selected model. Relay failures arrive back as "Error: ..." reply
// text with a 200 status, which the widget renders in the chat log.
func (a *Application) chatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	cfg := a.getConfig()
	model := req.Model
	if model == "" {
		model = cfg.Chat.DefaultModel
	}
	temperature := cfg.Chat.DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	reply := a.getRelay().Relay(r.Context(), req.Message, req.History, model, temperature)

	w.Header().Set(ContentTypeHeader, ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(ChatResponse{Model: model, Reply: reply})
}

// generateHandler performs a one-shot completion without system prompt
// or history.
func (a *Application) generateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Prompt == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}

	cfg := a.getConfig()
	model := req.Model
	if model == "" {
		model = cfg.Chat.DefaultModel
	}
	temperature := cfg.Chat.DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	reply := a.getRelay().Generate(r.Context(), model, req.Prompt, temperature)

	w.Header().Set(ContentTypeHeader, ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(ChatResponse{Model: model, Reply: reply})
}
