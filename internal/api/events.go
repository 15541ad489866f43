package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/erazemk/garderoba/internal/wardrobe"
)

// EventsHandler streams wardrobe notifications over server-sent events.
type EventsHandler struct {
	Notifier *wardrobe.Notifier
}

// Stream handles GET /api/events. Each notification is one SSE message;
// the connection stays open until the client goes away.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		jsonError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	// Subscribe before the headers go out, so a client that has seen the
	// response is guaranteed not to miss notifications.
	ch := h.Notifier.Subscribe()
	defer h.Notifier.Unsubscribe(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case note, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(note)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", note.Type, data)
			flusher.Flush()
		}
	}
}
