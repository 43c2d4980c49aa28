package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Malekse21/Senior-Voice/internal/events"
)

// EventsHandler streams bus events to the device over SSE. The device
// consumes speech, launch and alert events from this stream.
type EventsHandler struct {
	bus *events.Bus
	log zerolog.Logger
}

func NewEventsHandler(bus *events.Bus, log zerolog.Logger) *EventsHandler {
	return &EventsHandler{bus: bus, log: log}
}

// Stream handles GET /api/events.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch, cancel := h.bus.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case evt, open := <-ch:
			if !open {
				return
			}
			payload, err := json.Marshal(evt)
			if err != nil {
				h.log.Error().Err(err).Msg("encoding event")
				continue
			}
			if _, err := w.Write([]byte("event: " + string(evt.Kind) + "\ndata: " + string(payload) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
