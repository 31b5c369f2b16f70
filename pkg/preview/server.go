// Package preview serves a finished build over HTTP so frames can be checked
// in a browser while keyframes are being drawn.
//
// # Routes
//
//	GET  /                   flipbook page cycling through every frame
//	GET  /frames             JSON list of frame slots and their tallies
//	GET  /frames/{index}.svg one frame
//	GET  /lottie.json        the Lottie envelope
//	POST /rebuild            run the build again and swap in the result
//
// The server holds one build result at a time; a rebuild replaces it
// atomically, so readers never see a half-built timeline.
package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/svgtween/pkg/errors"
	"github.com/matzehuels/svgtween/pkg/pipeline"
	"github.com/matzehuels/svgtween/pkg/timeline"
	"github.com/matzehuels/svgtween/pkg/tween"
)

// BuildFunc produces a build result. It is called once by [Server.Rebuild]
// and again for every POST /rebuild.
type BuildFunc func(ctx context.Context) (*pipeline.Result, error)

// Server serves the most recent build result.
type Server struct {
	build  BuildFunc
	logger *log.Logger

	mu     sync.RWMutex
	result *pipeline.Result
	frames [][]byte
}

// New creates a server. Call Rebuild before serving.
func New(build BuildFunc, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{build: build, logger: logger}
}

// Rebuild runs the build and swaps in its result. On error the previous
// result stays in place.
func (s *Server) Rebuild(ctx context.Context) (*pipeline.Result, error) {
	result, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	frames := make([][]byte, len(result.Frames))
	for i, f := range result.Frames {
		data, err := f.Doc.Bytes()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize frame %d", i)
		}
		frames[i] = data
	}

	s.mu.Lock()
	s.result, s.frames = result, frames
	s.mu.Unlock()
	return result, nil
}

// snapshot returns the current result and serialized frames.
func (s *Server) snapshot() (*pipeline.Result, [][]byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result, s.frames
}

// Handler returns the router with every route and middleware registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.index)
	r.Get("/frames", s.listFrames)
	r.Get("/frames/{index}.svg", s.frame)
	r.Get("/lottie.json", s.lottie)
	r.Post("/rebuild", s.rebuild)
	return r
}

// logRequests logs every request at debug level with its request ID.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}

// =============================================================================
// Handlers
// =============================================================================

// frameEntry is the JSON form of one frame in GET /frames.
type frameEntry struct {
	timeline.Slot
	Report tween.Report `json:"report"`
	URL    string       `json:"url"`
}

// framesResponse is the body of GET /frames.
type framesResponse struct {
	Frames   []frameEntry `json:"frames"`
	Report   tween.Report `json:"report"`
	FPS      float64      `json:"fps"`
	CacheHit bool         `json:"cache_hit"`
}

func (s *Server) listFrames(w http.ResponseWriter, r *http.Request) {
	result, _ := s.snapshot()
	if result == nil {
		writeError(w, http.StatusServiceUnavailable, "no build yet")
		return
	}
	resp := framesResponse{
		Frames:   make([]frameEntry, len(result.Frames)),
		Report:   result.Report,
		FPS:      result.Stats.FPS,
		CacheHit: result.CacheHit,
	}
	for i, f := range result.Frames {
		resp.Frames[i] = frameEntry{Slot: f.Slot, Report: f.Report, URL: frameURL(f.Index)}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) frame(w http.ResponseWriter, r *http.Request) {
	_, frames := s.snapshot()
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || i < 0 || i >= len(frames) {
		writeError(w, http.StatusNotFound, "no such frame")
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(frames[i])
}

func (s *Server) lottie(w http.ResponseWriter, r *http.Request) {
	result, _ := s.snapshot()
	if result == nil {
		writeError(w, http.StatusServiceUnavailable, "no build yet")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(result.Lottie)
}

func (s *Server) rebuild(w http.ResponseWriter, r *http.Request) {
	result, err := s.Rebuild(r.Context())
	if err != nil {
		s.logger.Warn("rebuild failed", "err", err)
		writeError(w, http.StatusUnprocessableEntity, errors.UserMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"frames":    len(result.Frames),
		"cache_hit": result.CacheHit,
		"report":    result.Report,
	})
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<title>{{.Name}}</title>
<img id="frame" src="/frames/0.svg" width="{{.Width}}" height="{{.Height}}" alt="frame">
<p id="label">frame 0 / {{.Count}}</p>
<script>
let i = 0;
const img = document.getElementById("frame"), label = document.getElementById("label");
setInterval(() => {
  i = (i + 1) % {{.Count}};
  img.src = "/frames/" + i + ".svg";
  label.textContent = "frame " + i + " / {{.Count}}";
}, {{.Interval}});
</script>
`))

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	result, _ := s.snapshot()
	if result == nil || len(result.Frames) == 0 {
		writeError(w, http.StatusServiceUnavailable, "no build yet")
		return
	}
	fps := result.Stats.FPS
	if fps <= 0 {
		fps = 30
	}
	data := struct {
		Name          string
		Width, Height float64
		Count         int
		Interval      int
	}{
		Name:     result.Envelope.Name,
		Width:    result.Stats.Width,
		Height:   result.Stats.Height,
		Count:    len(result.Frames),
		Interval: int(1000 / fps),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Warn("render index", "err", err)
	}
}

// =============================================================================
// Helpers
// =============================================================================

func frameURL(i int) string {
	return fmt.Sprintf("/frames/%d.svg", i)
}

// writeJSON marshals v to JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
