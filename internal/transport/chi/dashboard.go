package chi

import (
	"encoding/json"
	"net/http"

	"github.com/finmock/researchd/internal/domain"
)

type dashboardRequest struct {
	Tags      []string `json:"tags"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
}

// Dashboard handles POST /api/dashboard: the filtered list combined with its
// aggregations in one response.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	var req dashboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	dash, err := s.queries.Dashboard(r.Context(), domain.ListFilter{
		Tags:      req.Tags,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if dash.Results == nil {
		dash.Results = []domain.Extraction{}
	}
	if dash.TagsFilter == nil {
		dash.TagsFilter = []string{}
	}
	writeJSON(w, http.StatusOK, dash)
}
