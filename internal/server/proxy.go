package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"chronolink/internal/gemini"
)

// proxyRequest is the raw gateway request body: the task name plus the
// prompt and optional generation config built by the caller.
type proxyRequest struct {
	Task    gemini.Task    `json:"task"`
	Payload gemini.Payload `json:"payload"`
}

// handleProxy is the direct port of the original serverless function: it
// forwards one task to the gateway and returns {text} or {imageData}, hiding
// the API key from the caller entirely.
func (h *Handlers) handleProxy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed", nil)
		return
	}

	var req proxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format. Could not parse JSON body.", nil)
		return
	}
	if req.Task == "" || req.Payload.Prompt == "" {
		writeError(w, http.StatusBadRequest, `Invalid request body: "task" and "payload" are required.`, nil)
		return
	}
	if !req.Task.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid request body: unknown task.", map[string]any{"task": req.Task})
		return
	}

	res, err := h.inv.Invoke(r.Context(), req.Task, req.Payload)
	if err != nil {
		h.writeGatewayError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// writeGatewayError maps the gateway taxonomy onto the proxy's status codes
// and structured error body.
func (h *Handlers) writeGatewayError(w http.ResponseWriter, err error) {
	status := gemini.HTTPStatus(err)
	message := err.Error()
	var details any

	var blocked *gemini.BlockedError
	switch {
	case errors.Is(err, gemini.ErrMissingAPIKey):
		message = "Server configuration error: API_KEY is not set."
	case errors.As(err, &blocked):
		details = map[string]any{
			"blockReason":   blocked.Reason,
			"safetyRatings": blocked.Ratings,
		}
	case errors.Is(err, gemini.ErrNoContent):
		message = "The AI service returned no content. Please try again."
	}

	h.log.Error().Int("status", status).Str("message", message).Msg("gateway error")
	writeError(w, status, message, details)
}
