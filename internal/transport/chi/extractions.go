package chi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	chirouter "github.com/go-chi/chi/v5"

	"github.com/finmock/researchd/internal/domain"
)

type listResponse struct {
	Total int                 `json:"total"`
	Items []domain.Extraction `json:"items"`
}

type createExtractionResponse struct {
	domain.Extraction
	TagsLinked int      `json:"tags_linked"`
	TagMisses  []string `json:"tag_misses,omitempty"`
}

type softDeleteRequest struct {
	DeletedAt *time.Time `json:"deleted_at"`
}

// ListExtractions handles GET /api/extractions.
func (s *Server) ListExtractions(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	items, err := s.queries.List(r.Context(), f)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if items == nil {
		items = []domain.Extraction{}
	}

	writeJSON(w, http.StatusOK, listResponse{Total: len(items), Items: items})
}

// CreateExtraction handles POST /api/extractions.
func (s *Server) CreateExtraction(w http.ResponseWriter, r *http.Request) {
	var req domain.Extraction
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, report, err := s.extractions.Create(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := createExtractionResponse{Extraction: created, TagsLinked: report.Linked}
	for _, miss := range report.Misses {
		resp.TagMisses = append(resp.TagMisses, miss.String())
	}
	writeJSON(w, http.StatusCreated, resp)
}

// GetExtraction handles GET /api/extractions/{id}.
func (s *Server) GetExtraction(w http.ResponseWriter, r *http.Request) {
	includeDeleted := queryBool(r, "includeDeleted")

	e, err := s.extractions.Get(r.Context(), chirouter.URLParam(r, "id"), includeDeleted)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// PatchExtraction handles PATCH /api/extractions/{id}: a timestamp soft
// deletes, an explicit null restores.
func (s *Server) PatchExtraction(w http.ResponseWriter, r *http.Request) {
	var req softDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	e, err := s.extractions.SoftDelete(r.Context(), chirouter.URLParam(r, "id"), req.DeletedAt)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// PatchTradeIdea handles PATCH /api/extractions/{id}/trade-ideas/{ideaID}.
func (s *Server) PatchTradeIdea(w http.ResponseWriter, r *http.Request) {
	var req softDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	e, err := s.extractions.SoftDeleteTradeIdea(
		r.Context(),
		chirouter.URLParam(r, "id"),
		chirouter.URLParam(r, "ideaID"),
		req.DeletedAt,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// filterFromQuery extracts the list filter from query parameters: tags is a
// comma-separated list, limit a non-negative integer.
func filterFromQuery(r *http.Request) (domain.ListFilter, error) {
	f := domain.ListFilter{
		StartDate:      r.URL.Query().Get("startDate"),
		EndDate:        r.URL.Query().Get("endDate"),
		IncludeDeleted: queryBool(r, "includeDeleted"),
	}

	if raw := r.URL.Query().Get("tags"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				f.Tags = append(f.Tags, name)
			}
		}
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return domain.ListFilter{}, domain.NewValidationError("limit", "must be a non-negative integer")
		}
		f.Limit = &limit
	}

	return f, nil
}

func queryBool(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}
