package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kdimtricp/swingcore/internal/banding"
	"github.com/kdimtricp/swingcore/internal/database"
	"github.com/kdimtricp/swingcore/internal/media"
	"github.com/kdimtricp/swingcore/internal/models"
	"github.com/kdimtricp/swingcore/internal/overlay"
	"github.com/kdimtricp/swingcore/internal/pose"
	"github.com/kdimtricp/swingcore/internal/posefile"
	"github.com/kdimtricp/swingcore/internal/session"
	"github.com/kdimtricp/swingcore/internal/storage"
)

type App struct {
	Storage       storage.Storage
	DB            *database.DB
	VideoRepo     *database.VideoRepository
	PoseRepo      *database.PoseRepository
	SampleRepo    *database.SampleRepository
	Sessions      *SessionCache
	Registry      *banding.Registry
	Prober        *media.Prober
	MaxUploadSize int64
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func TopologiesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"topologies": pose.TopologyNames()})
}

func (app *App) BandsHandler(w http.ResponseWriter, r *http.Request) {
	tables := make(map[string]banding.Bands)
	for _, name := range app.Registry.Names() {
		tables[name], _ = app.Registry.Get(name)
	}
	writeJSON(w, http.StatusOK, tables)
}

func (app *App) UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, app.MaxUploadSize)

	if err := r.ParseMultipartForm(app.MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "File too large")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	poseFile, poseHeader, err := r.FormFile("pose")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Pose document is required")
		return
	}
	defer poseFile.Close()

	raw, err := io.ReadAll(poseFile)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read pose document")
		return
	}

	doc, err := posefile.Decode(bytes.NewReader(raw))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	poseFilename, err := app.Storage.SaveFile(bytes.NewReader(raw), storage.FileInfo{
		Filename:    poseHeader.Filename,
		ContentType: "application/json",
		Size:        int64(len(raw)),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save pose document")
		return
	}

	video := models.NewVideo(title, poseFilename, doc.Sequence.Topology().Name, doc.Sequence.Len())
	if size := doc.VideoSize; size != nil {
		video.Width, video.Height = size.Width, size.Height
	}

	if file, header, err := r.FormFile("video"); err == nil {
		defer file.Close()
		if err := app.attachVideo(video, file, header); err != nil {
			app.Storage.DeleteFile(poseFilename)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	ctx := r.Context()
	if err := app.VideoRepo.InsertVideo(ctx, video); err != nil {
		app.cleanupFiles(video)
		writeError(w, http.StatusInternalServerError, "Failed to save video information")
		return
	}

	if err := app.PoseRepo.SaveSequence(ctx, video.ID, doc.Sequence); err != nil {
		app.VideoRepo.DeleteVideo(ctx, video.ID)
		app.cleanupFiles(video)
		writeError(w, http.StatusInternalServerError, "Failed to save pose sequence")
		return
	}

	log.Printf("Stored video %s (%d frames, topology %s)", video.ID, video.FrameCount, video.Topology)
	writeJSON(w, http.StatusCreated, video)
}

func (app *App) attachVideo(video *models.Video, file multipart.File, header *multipart.FileHeader) error {
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if ext != ".mp4" && ext != ".mov" {
			return errors.New("only MP4 or MOV video files are allowed")
		}
		contentType = "video/mp4"
	}

	filename, err := app.Storage.SaveFile(file, storage.FileInfo{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
	})
	if err != nil {
		return errors.New("failed to save video file")
	}
	video.VideoFilename = filename

	if video.IntrinsicSize() != nil || app.Prober == nil {
		return nil
	}

	path, err := app.Storage.LocalPath(filename)
	if err != nil {
		return nil
	}
	size, err := app.Prober.VideoSize(path)
	if err != nil {
		log.Printf("Warning: could not probe %s: %v", filename, err)
		return nil
	}
	video.Width, video.Height = size.Width, size.Height
	return nil
}

// AttachRecordingHandler stores a recording for a video uploaded with only a
// pose document.
func (app *App) AttachRecordingHandler(w http.ResponseWriter, r *http.Request) {
	video, ok := app.loadVideo(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, app.MaxUploadSize)
	if err := r.ParseMultipartForm(app.MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "File too large")
		return
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Video file is required")
		return
	}
	defer file.Close()

	previous := video.VideoFilename
	if err := app.attachVideo(video, file, header); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if err := app.VideoRepo.SetVideoFile(ctx, video.ID, video.VideoFilename); err != nil {
		app.Storage.DeleteFile(video.VideoFilename)
		app.writeRepoError(w, err)
		return
	}
	if previous != "" {
		app.Storage.DeleteFile(previous)
	}

	if size := video.IntrinsicSize(); size != nil {
		if err := app.VideoRepo.UpdateVideoSize(ctx, video.ID, *size); err != nil {
			app.writeRepoError(w, err)
			return
		}
		app.Sessions.Evict(video.ID)
	}

	writeJSON(w, http.StatusOK, video)
}

func (app *App) cleanupFiles(video *models.Video) {
	app.Storage.DeleteFile(video.PoseFilename)
	if video.VideoFilename != "" {
		app.Storage.DeleteFile(video.VideoFilename)
	}
}

func (app *App) ListVideosHandler(w http.ResponseWriter, r *http.Request) {
	videos, err := app.VideoRepo.ListVideos(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error loading videos")
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

func (app *App) GetVideoHandler(w http.ResponseWriter, r *http.Request) {
	video, ok := app.loadVideo(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, video)
}

func (app *App) DeleteVideoHandler(w http.ResponseWriter, r *http.Request) {
	video, ok := app.loadVideo(w, r)
	if !ok {
		return
	}

	if err := app.VideoRepo.DeleteVideo(r.Context(), video.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete video")
		return
	}
	app.Sessions.Evict(video.ID)
	app.cleanupFiles(video)

	w.WriteHeader(http.StatusNoContent)
}

func (app *App) SetVideoSizeHandler(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")

	var size overlay.Size
	if err := json.NewDecoder(r.Body).Decode(&size); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid size")
		return
	}
	if size.Width <= 0 || size.Height <= 0 {
		writeError(w, http.StatusBadRequest, "Width and height must be positive")
		return
	}

	if err := app.VideoRepo.UpdateVideoSize(r.Context(), videoID, size); err != nil {
		app.writeRepoError(w, err)
		return
	}

	s, err := app.Sessions.Get(r.Context(), videoID)
	if err != nil {
		app.writeRepoError(w, err)
		return
	}
	s.SetVideoSize(&size)

	writeJSON(w, http.StatusOK, size)
}

func (app *App) StreamVideoHandler(w http.ResponseWriter, r *http.Request) {
	video, ok := app.loadVideo(w, r)
	if !ok {
		return
	}
	if video.VideoFilename == "" {
		writeError(w, http.StatusNotFound, "Video has no recording attached")
		return
	}

	file, err := app.Storage.OpenFile(video.VideoFilename)
	if err != nil {
		writeError(w, http.StatusNotFound, "Video file not found")
		return
	}
	defer file.Close()

	var modTime time.Time
	if f, ok := file.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Error accessing video file")
			return
		}
		modTime = stat.ModTime()
	}

	// ServeContent handles Range requests for scrubbing
	http.ServeContent(w, r, video.VideoFilename, modTime, file)
}

func (app *App) SnapshotHandler(w http.ResponseWriter, r *http.Request) {
	t, err := queryFloat(r, "t")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := app.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		app.writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.Update(t))
}

func (app *App) OverlayHandler(w http.ResponseWriter, r *http.Request) {
	var values [3]float64
	for i, key := range []string{"t", "vw", "vh"} {
		v, err := queryFloat(r, key)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		values[i] = v
	}

	s, err := app.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		app.writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.Overlay(values[0], overlay.Size{Width: values[1], Height: values[2]}))
}

func (app *App) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	hz := 10.0
	if r.URL.Query().Get("hz") != "" {
		v, err := queryFloat(r, "hz")
		if err != nil || v <= 0 || v > 240 {
			writeError(w, http.StatusBadRequest, "hz must be in (0, 240]")
			return
		}
		hz = v
	}

	videoID := chi.URLParam(r, "id")
	s, err := app.Sessions.Get(r.Context(), videoID)
	if err != nil {
		app.writeRepoError(w, err)
		return
	}

	updates, err := s.Sample(hz)
	if errors.Is(err, session.ErrTooManySamples) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var samples []models.MetricSample
	for _, u := range updates {
		samples = append(samples, u.Samples(videoID)...)
	}

	if err := app.SampleRepo.ReplaceSamples(r.Context(), videoID, samples); err != nil {
		log.Printf("Failed to store samples for %s: %v", videoID, err)
		writeError(w, http.StatusInternalServerError, "Failed to store samples")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"ticks": len(updates), "samples": len(samples)})
}

func (app *App) ListSamplesHandler(w http.ResponseWriter, r *http.Request) {
	video, ok := app.loadVideo(w, r)
	if !ok {
		return
	}

	samples, err := app.SampleRepo.ListSamples(r.Context(), video.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error loading samples")
		return
	}
	writeJSON(w, http.StatusOK, samples)
}

func (app *App) loadVideo(w http.ResponseWriter, r *http.Request) (*models.Video, bool) {
	video, err := app.VideoRepo.GetVideoByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		app.writeRepoError(w, err)
		return nil, false
	}
	return video, true
}

func (app *App) writeRepoError(w http.ResponseWriter, err error) {
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Video not found")
		return
	}
	log.Printf("Repository error: %v", err)
	writeError(w, http.StatusInternalServerError, "Internal error")
}

func queryFloat(r *http.Request, key string) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, fmt.Errorf("missing query parameter %q", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid query parameter %q", key)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
