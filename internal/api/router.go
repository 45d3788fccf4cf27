package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", PingHandler)
	r.Get("/bands", app.BandsHandler)
	r.Get("/topologies", TopologiesHandler)

	r.Route("/videos", func(r chi.Router) {
		r.Get("/", app.ListVideosHandler)
		r.Post("/", app.UploadHandler)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", app.GetVideoHandler)
			r.Delete("/", app.DeleteVideoHandler)
			r.Put("/size", app.SetVideoSizeHandler)
			r.Put("/recording", app.AttachRecordingHandler)
			r.Get("/stream", app.StreamVideoHandler)
			r.Get("/playback", app.PlaybackStreamHandler)
			r.Get("/snapshot", app.SnapshotHandler)
			r.Get("/overlay", app.OverlayHandler)
			r.Post("/analyze", app.AnalyzeHandler)
			r.Get("/samples", app.ListSamplesHandler)
		})
	})

	return r
}
