package httpapi

import (
	"net/http"

	"github.com/alexanderramin/prodsched/internal/app"
	"github.com/alexanderramin/prodsched/internal/importer"
)

type importRequest struct {
	importer.PlanImport
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

func (s *Server) importPlan(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	res, err := s.svc.Import.ImportPlanFromSchema(r.Context(), &req.PlanImport, app.NewActor(req.UserID, req.UserName))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, res)
}
