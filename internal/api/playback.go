package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kdimtricp/swingcore/internal/session"
)

const maxPlaybackRate = 120

// PlaybackStreamHandler replays a session as server-sent events. A ticker
// plays the role of the display loop: each tick requests the current time
// from a Tracker, and the newest computed Update is pushed to the client.
func (app *App) PlaybackStreamHandler(w http.ResponseWriter, r *http.Request) {
	hz := 30.0
	if r.URL.Query().Get("hz") != "" {
		v, err := queryFloat(r, "hz")
		if err != nil || v <= 0 || v > maxPlaybackRate {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("hz must be in (0, %d]", maxPlaybackRate))
			return
		}
		hz = v
	}

	s, err := app.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		app.writeRepoError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	seq := s.Sequence()
	if seq.Len() == 0 {
		writeEvent(w, "done", session.TrackerStats{})
		flusher.Flush()
		return
	}

	ctx := r.Context()
	tracker := session.NewTracker(s)
	tracker.Start(ctx)
	defer tracker.Stop()

	step := 1 / hz
	t := seq.At(0).Timestamp
	end := t + seq.Duration()

	ticker := time.NewTicker(time.Duration(float64(time.Second) * step))
	defer ticker.Stop()

	tracker.Request(t)
	for {
		select {
		case u, ok := <-tracker.Results():
			if !ok {
				return
			}
			writeEvent(w, "update", u)
			flusher.Flush()

			if u.Time >= end {
				writeEvent(w, "done", tracker.Stats())
				flusher.Flush()
				return
			}

		case <-ticker.C:
			t += step
			if t > end {
				t = end
			}
			tracker.Request(t)

		case <-ctx.Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", event, err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
