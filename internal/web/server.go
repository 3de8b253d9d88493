// Package web serves the gallery to browsers: a JSON API over the catalog
// and a websocket that streams frames from a scene session owned by each
// connection.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/vizvault/internal/admin"
	"github.com/san-kum/vizvault/internal/export"
	"github.com/san-kum/vizvault/internal/gen"
	"github.com/san-kum/vizvault/internal/params"
	"github.com/san-kum/vizvault/internal/render"
	"github.com/san-kum/vizvault/internal/scene"
	"github.com/san-kum/vizvault/internal/surface"
)

//go:embed static/index.html
var indexHTML []byte

const shutdownTimeout = 5 * time.Second

type Options struct {
	FPS int
	// SVG preview size when the request does not name one.
	Width, Height int
}

type Server struct {
	reg    *scene.Registry
	loader *gen.Loader
	opts   Options

	mu       sync.RWMutex
	clients  map[*client]bool
	upgrader websocket.Upgrader
}

type sceneResponse struct {
	Descriptor scene.Descriptor  `json:"descriptor"`
	Controls   []surface.Control `json:"controls"`
}

type adminRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

func NewServer(reg *scene.Registry, loader *gen.Loader, opts Options) *Server {
	if opts.FPS <= 0 {
		opts.FPS = render.DefaultFPS
	}
	if opts.Width <= 0 {
		opts.Width = 640
	}
	if opts.Height <= 0 {
		opts.Height = 480
	}
	return &Server{
		reg:     reg,
		loader:  loader,
		opts:    opts,
		clients: make(map[*client]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler routes every endpoint of the browser surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/scenes", s.handleScenes)
	mux.HandleFunc("GET /api/scenes/{slug}", s.handleScene)
	mux.HandleFunc("GET /api/scenes/{slug}/frame", s.handleFrame)
	mux.HandleFunc("GET /api/scenes/{slug}/svg", s.handleSVG)
	mux.HandleFunc("/api/admin/{slug}", s.handleAdmin)
	mux.HandleFunc("GET /ws/{slug}", s.handleWebSocket)
	return mux
}

// Run serves on addr until ctx is cancelled, then shuts down. Open
// websocket streams are cancelled along with ctx.
func (s *Server) Run(ctx context.Context, addr string) error {
	g, ctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g.Go(func() error {
		log.Printf("[web] server starting on http://localhost%s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Printf("[web] shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Clients is the number of open websocket streams.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.reg.All())
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	d, err := s.reg.Lookup(r.PathValue("slug"))
	if err != nil {
		writeFallback(w, err)
		return
	}
	defaults := params.Defaults(d.Params)
	controls := make([]surface.Control, 0, len(d.Params))
	for _, spec := range d.Params {
		controls = append(controls, surface.ControlFor(spec, defaults[spec.Name]))
	}
	writeJSON(w, http.StatusOK, sceneResponse{Descriptor: d, Controls: controls})
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	t, overrides, err := frameQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, err := surface.Open(s.reg, s.loader, r.PathValue("slug"))
	if err != nil {
		writeFallback(w, err)
		return
	}
	defer sess.Close()
	if err := sess.Apply(overrides); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d := sess.Descriptor()
	f := sess.Frame(t, t)
	writeJSON(w, http.StatusOK, export.NewExportData(d.Slug, d.Title, t, sess.Params(), f))
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	t, overrides, err := frameQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	width := queryInt(r, "width", s.opts.Width)
	height := queryInt(r, "height", s.opts.Height)
	delete(overrides, "width")
	delete(overrides, "height")

	f, view := surface.PreviewWith(s.reg, s.loader, r.PathValue("slug"), t, overrides)
	if !view.OK() {
		writeFallback(w, view.Err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(export.FrameToSVG(f, nil, width, height)))
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req adminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	editor := admin.NewEditor(s.reg)
	if err := editor.Select(r.PathValue("slug")); err != nil {
		writeFallback(w, err)
		return
	}
	if req.Title != nil {
		editor.SetTitle(*req.Title)
	}
	if req.Description != nil {
		editor.SetDescription(*req.Description)
	}
	preview, err := editor.Preview()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(preview)
}

// frameQuery splits a query into the time parameter and parameter overrides.
func frameQuery(r *http.Request) (float64, map[string]string, error) {
	var t float64
	overrides := make(map[string]string)
	for name, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		if name == "t" {
			v, err := strconv.ParseFloat(values[0], 64)
			if err != nil {
				return 0, nil, errors.New("t must be a number")
			}
			t = v
			continue
		}
		overrides[name] = values[0]
	}
	return t, overrides, nil
}

func queryInt(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeFallback answers with the placeholder text a display surface would
// show for err.
func writeFallback(w http.ResponseWriter, err error) {
	view := surface.Fallback(err)
	status := http.StatusServiceUnavailable
	if view.Kind == surface.ViewNotFound {
		status = http.StatusNotFound
	}
	writeError(w, status, view.Text)
}
