package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/line-follower-sim/line-follower-sim/scene"
	"github.com/line-follower-sim/line-follower-sim/sdf"
)

// indexEntry is one row of the GET /models listing.
type indexEntry struct {
	Name        string `json:"name"`
	Dir         string `json:"dir"`
	URI         string `json:"uri"`
	SDFVersion  string `json:"sdf_version"`
	Description string `json:"description,omitempty"`
}

func handleIndex(w http.ResponseWriter, _ *http.Request) {
	index := make([]indexEntry, 0, len(scene.Names()))
	for _, name := range scene.Names() {
		entry, _ := scene.Lookup(name)
		index = append(index, indexEntry{
			Name:        entry.Name,
			Dir:         entry.Dir,
			URI:         entry.URI(),
			SDFVersion:  entry.SDFVersion,
			Description: entry.Description,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(index); err != nil {
		logrus.Warnf("writing model index: %v", err)
	}
}

func handleModelConfig(w http.ResponseWriter, r *http.Request) {
	entry, ok := scene.Lookup(chi.URLParam(r, "model"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	config := sdf.NewModelConfig(entry.Name, entry.SDFVersion, entry.Description)
	data, err := config.Encode()
	if err != nil {
		internalError(w, "encoding model.config", err)
		return
	}
	w.Header().Set("Content-Type", xmlContentType)
	_, _ = w.Write(data)
}

func handleModelSDF(w http.ResponseWriter, r *http.Request) {
	entry, ok := scene.Lookup(chi.URLParam(r, "model"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	data, err := entry.Root().Encode()
	if err != nil {
		internalError(w, "encoding model.sdf", err)
		return
	}
	w.Header().Set("Content-Type", xmlContentType)
	_, _ = w.Write(data)
}

// handleWorld serves composed worlds. Only the built-in course exists today;
// the .world suffix is accepted so database URLs can be pasted directly.
func handleWorld(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(chi.URLParam(r, "world"), ".world")
	if name != "course" {
		http.NotFound(w, r)
		return
	}
	data, err := scene.Course().Encode()
	if err != nil {
		internalError(w, "encoding world", err)
		return
	}
	w.Header().Set("Content-Type", xmlContentType)
	_, _ = w.Write(data)
}

func internalError(w http.ResponseWriter, what string, err error) {
	logrus.Errorf("%s: %v", what, err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
