package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/aidmqan/mqan-console/internal/catalog"
	"github.com/aidmqan/mqan-console/internal/db"
	"github.com/aidmqan/mqan-console/internal/models"
)

// Query parameters with a fixed meaning. Other parameters are read as facet
// selections when they name one of the page's facets and ignored otherwise.
const (
	paramSearch = "q"
	paramView   = "view"
)

type errorResponse struct {
	Error string `json:"error"`
}

type feedResponse struct {
	Capacity int               `json:"capacity"`
	Count    int               `json:"count"`
	Events   []models.Activity `json:"events"`
}

type viewResponse struct {
	Page      string            `json:"page"`
	Name      string            `json:"name"`
	Filter    models.FilterSpec `json:"filter"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	pages := s.pages.Pages()
	infos := make([]catalog.Info, len(pages))
	for i, p := range pages {
		infos[i] = p.Info()
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Overview())
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Analytics())
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if s.feed == nil {
		writeJSON(w, http.StatusOK, feedResponse{Events: []models.Activity{}})
		return
	}
	events := s.feed.Snapshot()
	writeJSON(w, http.StatusOK, feedResponse{Capacity: s.feed.Cap(), Count: len(events), Events: events})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("page")
	page, ok := s.pages.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown page %q", name))
		return
	}

	spec, err := s.specFromQuery(page.Info(), r.URL.Query())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, db.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}

	start := time.Now()
	view := page.Query(spec)
	s.metrics.observeQuery(name, time.Since(start))

	writeJSON(w, http.StatusOK, view)
}

// specFromQuery builds a FilterSpec from ?view=, ?q= and facet parameters.
// Explicit parameters override the saved view's values. Parameters that are
// not facets of the page, such as cache busters, are ignored.
func (s *Server) specFromQuery(info catalog.Info, q url.Values) (models.FilterSpec, error) {
	spec := models.FilterSpec{Facets: map[string]string{}}
	if name := q.Get(paramView); name != "" {
		if s.views == nil {
			return spec, fmt.Errorf("view %s/%s: %w", info.Name, name, db.ErrNotFound)
		}
		saved, err := s.views.GetView(info.Name, name)
		if err != nil {
			return spec, err
		}
		spec = saved.Spec.Clone()
	}
	if q.Has(paramSearch) {
		spec.Search = q.Get(paramSearch)
	}
	for _, f := range info.Facets {
		if q.Has(f.Name) {
			spec.Facets[f.Name] = q.Get(f.Name)
		}
	}
	return spec, nil
}

func (s *Server) handleHospitalActivity(w http.ResponseWriter, r *http.Request) {
	if s.activity == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("activity history is not available"))
		return
	}
	stats, err := s.activity.ActivityByHospital()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if stats == nil {
		stats = []db.HospitalActivity{}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListViews(w http.ResponseWriter, r *http.Request) {
	if s.views == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("saved views are not available"))
		return
	}
	page := r.PathValue("page")
	if _, ok := s.pages.Get(page); !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown page %q", page))
		return
	}
	views, err := s.views.ListViews(page)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]viewResponse, len(views))
	for i, v := range views {
		out[i] = viewResponse{Page: v.Page, Name: v.Name, Filter: v.Spec, UpdatedAt: v.UpdatedAt}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSaveView(w http.ResponseWriter, r *http.Request) {
	if s.views == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("saved views are not available"))
		return
	}
	page, name := r.PathValue("page"), r.PathValue("name")
	if _, ok := s.pages.Get(page); !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown page %q", page))
		return
	}

	var spec models.FilterSpec
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid filter: %w", err))
		return
	}
	if err := s.views.SaveView(page, name, spec); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	saved, err := s.views.GetView(page, name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, viewResponse{Page: saved.Page, Name: saved.Name, Filter: saved.Spec, UpdatedAt: saved.UpdatedAt})
}

func (s *Server) handleDeleteView(w http.ResponseWriter, r *http.Request) {
	if s.views == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("saved views are not available"))
		return
	}
	err := s.views.DeleteView(r.PathValue("page"), r.PathValue("name"))
	switch {
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
