package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"chronolink/internal/gemini"
	"chronolink/internal/geo"
	"chronolink/internal/server/middleware"
	"chronolink/internal/session"
)

// Handlers bundles the dependencies every endpoint needs.
type Handlers struct {
	inv      gemini.Invoker
	sessions *session.Registry
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewHandlers(inv gemini.Invoker, sessions *session.Registry, log zerolog.Logger) *Handlers {
	return &Handlers{
		inv:      inv,
		sessions: sessions,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// CORS already vets origins; the watch endpoint carries no
			// privileged state beyond the session snapshot.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Router assembles the full route table behind CORS and the access log.
func (h *Handlers) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/gemini", h.handleProxy)

	r.HandleFunc("/api/reference", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, geo.ReferenceData())
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/sessions", h.handleCreateSession).Methods(http.MethodPost)
	r.HandleFunc("/api/sessions/{id}", h.handleGetSession).Methods(http.MethodGet)
	r.HandleFunc("/api/sessions/{id}/{action:login|logout|approve|credits}", h.handleAccountAction).Methods(http.MethodPost)
	r.HandleFunc("/api/sessions/{id}/query", h.handleQuery).Methods(http.MethodPost)
	r.HandleFunc("/api/sessions/{id}/tiers/{tier}", h.handleTier).Methods(http.MethodPost)
	r.HandleFunc("/api/sessions/{id}/image", h.handleImage).Methods(http.MethodPost)
	r.HandleFunc("/api/sessions/{id}/watch", h.handleWatch).Methods(http.MethodGet)

	return middleware.CORS(middleware.AccessLog(h.log)(r))
}
