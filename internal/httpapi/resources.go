package httpapi

import (
	"net/http"

	"github.com/alexanderramin/prodsched/internal/app"
	"github.com/alexanderramin/prodsched/internal/domain"
	"github.com/alexanderramin/prodsched/internal/scheduler"
	"github.com/go-chi/chi/v5"
)

type resourceLoadResponse struct {
	ResourceID string             `json:"resourceId"`
	Load       map[string]float64 `json:"load"`
	Days       []app.DayLoad      `json:"days"`
}

// listResources returns active resources unless ?all=true.
func (s *Server) listResources(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"
	resources, err := s.svc.Resources.List(r.Context(), activeOnly)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, orEmpty(resources))
}

func (s *Server) createResource(w http.ResponseWriter, r *http.Request) {
	var res domain.Resource
	if err := decodeJSON(r, &res); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := s.svc.Resources.Create(r.Context(), &res); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, &res)
}

func (s *Server) getResource(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Resources.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}

// updateResource applies the body on top of the stored resource. A body
// carrying "version" is checked against the store; without it the
// current version is used.
func (s *Server) updateResource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := s.svc.Resources.GetByID(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := decodeJSON(r, res); err != nil {
		s.handleError(w, r, err)
		return
	}
	res.ID = id
	if err := s.svc.Resources.Update(r.Context(), res); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) deleteResource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	outcome, err := s.svc.Resources.Delete(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, app.ResourceDeletion{ResourceID: id, Outcome: outcome})
}

func (s *Server) listResourcesByType(w http.ResponseWriter, r *http.Request) {
	rt, err := domain.ParseResourceType(chi.URLParam(r, "type"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	resources, err := s.svc.Resources.ListByType(r.Context(), rt)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, orEmpty(resources))
}

func (s *Server) listResourcesByDepartment(w http.ResponseWriter, r *http.Request) {
	resources, err := s.svc.Resources.ListByDepartment(r.Context(), chi.URLParam(r, "department"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, orEmpty(resources))
}

func (s *Server) availableResources(w http.ResponseWriter, r *http.Request) {
	start, end, err := queryRange(r, "start", "end")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	resources, err := s.svc.Availability.GetAvailableResources(r.Context(), start, end)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, orEmpty(resources))
}

func (s *Server) resourceAvailability(w http.ResponseWriter, r *http.Request) {
	from, to, err := queryRange(r, "from", "to")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	avail, err := s.svc.Availability.GetResourceAvailability(r.Context(), from, to, r.URL.Query().Get("resourceId"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	for i := range avail {
		avail[i].Slots = orEmpty(avail[i].Slots)
	}
	s.writeJSON(w, r, http.StatusOK, orEmpty(avail))
}

func (s *Server) resourceLoad(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	from, to, err := queryRange(r, "from", "to")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	days, err := s.svc.Availability.GetResourceLoadDetail(r.Context(), id, from, to)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, resourceLoadResponse{
		ResourceID: id,
		Load:       scheduler.LoadMap(days),
		Days:       orEmpty(days),
	})
}
