package server

import (
	"net/http"
)

// handleWatch upgrades to a websocket and streams one session snapshot per
// state change, starting with the current state. The connection closes when
// the client goes away or the write fails.
func (h *Handlers) handleWatch(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ch, cancel := s.Watch()
	defer cancel()

	if err := conn.WriteJSON(s.Snapshot()); err != nil {
		return
	}

	// Drain client frames so close/ping handling works; the reader exits
	// when the peer disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case snap, open := <-ch:
			if !open {
				return
			}
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
