// Package web serves the architecture diagram dashboard: the topology and
// layout as JSON, per-session interactive view state, a rendered SVG, and
// an SSE stream of topology reload events.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/vatne/archmap/pkg/layout"
	"github.com/vatne/archmap/pkg/logging"
	"github.com/vatne/archmap/pkg/model"
	"github.com/vatne/archmap/pkg/pubsub"
	"github.com/vatne/archmap/pkg/render"
	"github.com/vatne/archmap/pkg/view"
)

//go:embed static/*
var staticFiles embed.FS

// TopicTopology is the SSE topic for reload events.
const TopicTopology = "topology"

// Server hosts the dashboard for one topology. The topology and layout are
// replaced atomically on reload; sessions are owned by the view manager.
type Server struct {
	router   *mux.Router
	broker   *pubsub.Broker
	sessions *view.Manager

	mu       sync.RWMutex
	topo     *model.Topology
	layout   *layout.Result
	renderer *render.Renderer
}

// NewServer creates a server for the validated topology and its layout.
func NewServer(t *model.Topology, l *layout.Result) *Server {
	broker := pubsub.NewBroker()
	// Keep only the latest reload event for replay: a newly connected
	// client needs the current state, not the reload history.
	broker.Configure(TopicTopology, pubsub.TopicOptions{Buffer: 5, ReplayAll: false})

	s := &Server{
		router:   mux.NewRouter(),
		broker:   broker,
		sessions: view.NewManager(t, l),
		topo:     t,
		layout:   l,
		renderer: render.NewRenderer(t, l.Config),
	}
	s.routes()
	return s
}

// Swap replaces the topology and layout after a successful reload, resets
// all sessions to the new layout, and publishes a reload event.
func (s *Server) Swap(t *model.Topology, l *layout.Result) {
	s.mu.Lock()
	s.topo = t
	s.layout = l
	s.renderer = render.NewRenderer(t, l.Config)
	s.mu.Unlock()

	s.sessions.Rebind(t, l)

	if err := s.broker.Publish(TopicTopology, "reloaded", pubsub.TopologyEvent{
		Name:  t.Name,
		Nodes: len(t.Nodes),
		Edges: len(t.Edges),
	}); err != nil {
		logging.Warn("publishing reload event", "error", err)
	}
}

// PublishReloadError tells connected clients a reload attempt failed and
// the previous topology is still being served.
func (s *Server) PublishReloadError(reloadErr error) {
	s.mu.RLock()
	t := s.topo
	s.mu.RUnlock()

	if err := s.broker.Publish(TopicTopology, "reload_failed", pubsub.TopologyEvent{
		Name:  t.Name,
		Nodes: len(t.Nodes),
		Edges: len(t.Edges),
		Error: reloadErr.Error(),
	}); err != nil {
		logging.Warn("publishing reload error", "error", err)
	}
}

// snapshot returns the current topology, layout, and renderer together so
// a handler never mixes data from before and after a reload.
func (s *Server) snapshot() (*model.Topology, *layout.Result, *render.Renderer) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.topo, s.layout, s.renderer
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/subscribe/topology", s.handleSubscribeTopology).Methods("GET")

	api.HandleFunc("/topology", s.handleTopology).Methods("GET")
	api.HandleFunc("/layout", s.handleLayout).Methods("GET")
	api.HandleFunc("/legend", s.handleLegend).Methods("GET")
	api.HandleFunc("/nodes/{id}/description", s.handleDescription).Methods("GET")
	api.HandleFunc("/nodes/{id}/neighborhood", s.handleNeighborhood).Methods("GET")

	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/changes", s.handleApplyChanges).Methods("POST")
	api.HandleFunc("/sessions/{id}/reset", s.handleResetSession).Methods("POST")
	api.HandleFunc("/sessions/{id}/diagram.svg", s.handleDiagram).Methods("GET")

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logging.Fatal("embedded static files missing", "error", err)
	}
	s.router.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))
}

// Handler returns the root handler with request logging attached.
func (s *Server) Handler() http.Handler {
	return logging.Middleware(s.router)
}

// Start serves on the given port until the listener fails.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logging.Info("serving dashboard", "addr", fmt.Sprintf("http://localhost%s", addr))
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleSubscribeTopology(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Establish the stream before any event arrives.
	fmt.Fprint(w, ": connected\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	sub, err := s.broker.Subscribe(r.Context(), TopicTopology)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer sub.Close()

	for ev := range sub.Events() {
		if err := pubsub.WriteSSE(w, ev); err != nil {
			logging.DebugContext(r.Context(), "SSE client gone", "error", err)
			return
		}
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
}
