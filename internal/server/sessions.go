package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"chronolink/internal/controller"
	"chronolink/internal/history"
	"chronolink/internal/session"
)

func (h *Handlers) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	writeJSON(w, http.StatusCreated, s.Snapshot())
}

// lookup resolves the session from the route, writing a 404 when it is gone
// (expired sessions fall out of the LRU).
func (h *Handlers) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := mux.Vars(r)["id"]
	s, ok := h.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Session not found or expired.", nil)
		return nil, false
	}
	return s, true
}

func (h *Handlers) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// handleAccountAction serves the four account transitions, all of which are
// no-ops outside their legal source state.
func (h *Handlers) handleAccountAction(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var snap session.Snapshot
	switch mux.Vars(r)["action"] {
	case "login":
		snap = s.Login()
	case "logout":
		snap = s.Logout()
	case "approve":
		snap = s.Approve()
	case "credits":
		snap = s.AddCredits()
	default:
		writeError(w, http.StatusNotFound, "Unknown account action.", nil)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// queryRequest is the tier-1 request body for either mode.
type queryRequest struct {
	Mode       string `json:"mode"`
	Year       int    `json:"year"`
	City       string `json:"city"`
	Country    string `json:"country"`
	Topic      string `json:"topic"`
	SearchTerm string `json:"searchTerm"`
}

func (h *Handlers) handleQuery(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format. Could not parse JSON body.", nil)
		return
	}

	switch req.Mode {
	case "time":
		if req.City == "" || req.Country == "" || req.Topic == "" {
			writeError(w, http.StatusBadRequest, "A time query needs year, city, country and topic.", nil)
			return
		}
		q := history.TimeQuery{Year: req.Year, City: req.City, Country: req.Country, Topic: req.Topic}
		if _, err := s.ResolveTime(r.Context(), q); err != nil {
			h.writeControllerError(w, err)
			return
		}
	case "search":
		if strings.TrimSpace(req.SearchTerm) == "" {
			writeError(w, http.StatusBadRequest, "A search query needs a searchTerm.", nil)
			return
		}
		if _, err := s.ResolveSearch(r.Context(), req.SearchTerm); err != nil {
			h.writeControllerError(w, err)
			return
		}
	default:
		writeError(w, http.StatusBadRequest, `Query "mode" must be "time" or "search".`, nil)
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

func (h *Handlers) handleTier(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	n, err := strconv.Atoi(mux.Vars(r)["tier"])
	if err != nil || n < 2 || n > int(history.Tier4) {
		writeError(w, http.StatusBadRequest, "Tier must be a number between 2 and 4.", nil)
		return
	}
	if _, err := s.RequestTier(r.Context(), history.Tier(n)); err != nil {
		h.writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

func (h *Handlers) handleImage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if _, err := s.GenerateImage(r.Context()); err != nil {
		h.writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// writeControllerError maps controller-level failures; everything else is a
// gateway error and keeps the proxy's status mapping.
func (h *Handlers) writeControllerError(w http.ResponseWriter, err error) {
	var gate *controller.GateError
	switch {
	case errors.As(err, &gate):
		details := map[string]any{"reason": gate.Reason}
		if gate.Reason == controller.GateInsufficientCredits {
			details["required"] = gate.Required
			details["available"] = gate.Available
		}
		writeError(w, http.StatusForbidden, gate.Message, details)
	case errors.Is(err, controller.ErrBusy), errors.Is(err, controller.ErrImageBusy):
		writeError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, controller.ErrNoQuery), errors.Is(err, controller.ErrNotReady):
		writeError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, controller.ErrNoSuchTier):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		h.writeGatewayError(w, err)
	}
}
