package web

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vatne/archmap/pkg/logging"
	"github.com/vatne/archmap/pkg/model"
	"github.com/vatne/archmap/pkg/view"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleTopology(w http.ResponseWriter, r *http.Request) {
	topo, _, _ := s.snapshot()
	writeJSON(w, http.StatusOK, topo)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	_, l, _ := s.snapshot()
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleLegend(w http.ResponseWriter, r *http.Request) {
	// The legend is fixed: every registered category, whether or not the
	// current topology uses it.
	writeJSON(w, http.StatusOK, model.Legend())
}

// descriptionResponse is the detail-lookup contract. A node without a
// description is found=false with 200, not a 404: the miss is expected
// behavior, not an error.
type descriptionResponse struct {
	NodeID      string             `json:"nodeId"`
	Found       bool               `json:"found"`
	Description *model.Description `json:"description,omitempty"`
}

func (s *Server) handleDescription(w http.ResponseWriter, r *http.Request) {
	topo, _, _ := s.snapshot()
	id := mux.Vars(r)["id"]

	if _, ok := topo.Node(id); !ok {
		http.Error(w, "unknown node", http.StatusNotFound)
		return
	}

	resp := descriptionResponse{NodeID: id}
	if d, ok := topo.Describe(id); ok {
		resp.Found = true
		resp.Description = &d
	}
	writeJSON(w, http.StatusOK, resp)
}

// neighborhoodResponse lists a node's graph neighborhood by hop distance.
type neighborhoodResponse struct {
	NodeID    string         `json:"nodeId"`
	Distances map[string]int `json:"distances"`
}

func (s *Server) handleNeighborhood(w http.ResponseWriter, r *http.Request) {
	topo, _, _ := s.snapshot()
	id := mux.Vars(r)["id"]

	d := topo.Graph()
	if !d.Has(id) {
		http.Error(w, "unknown node", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, neighborhoodResponse{
		NodeID:    id,
		Distances: d.Distances(id),
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	logging.DebugContext(r.Context(), "session created", "session", sess.ID)
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.Delete(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleApplyChanges(w http.ResponseWriter, r *http.Request) {
	var changes []view.Change
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sess, err := s.sessions.Apply(mux.Vars(r)["id"], changes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Reset(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	_, _, renderer := s.snapshot()
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(renderer.Render(sess.State)); err != nil {
		logging.Error("writing diagram", "error", err)
	}
}
