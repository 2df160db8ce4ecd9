package chi

import (
	"encoding/json"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"

	"github.com/finmock/researchd/internal/domain"
	cataloguc "github.com/finmock/researchd/internal/usecase/catalog"
)

type tagListResponse struct {
	Total int          `json:"total"`
	Items []domain.Tag `json:"items"`
}

// ListTags handles GET /api/tags.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.catalog.ListTags(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	writeJSON(w, http.StatusOK, tagListResponse{Total: len(tags), Items: tags})
}

// ListTagsByCategory handles GET /api/tags/by-category/{category}.
func (s *Server) ListTagsByCategory(w http.ResponseWriter, r *http.Request) {
	tags, err := s.catalog.ListTags(r.Context(), chirouter.URLParam(r, "category"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	writeJSON(w, http.StatusOK, tagListResponse{Total: len(tags), Items: tags})
}

// ListTagCategories handles GET /api/tags/categories.
func (s *Server) ListTagCategories(w http.ResponseWriter, r *http.Request) {
	counts, err := s.catalog.Categories(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if counts == nil {
		counts = []domain.CategoryCount{}
	}
	writeJSON(w, http.StatusOK, counts)
}

// CreateTag handles POST /api/tags. Duplicate (name, category) pairs come
// back 200 with the canonical row instead of 201.
func (s *Server) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req domain.Tag
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	tag, created, err := s.catalog.InsertTag(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, tag)
}

// LoadTaxonomy handles POST /api/tags/load.
func (s *Server) LoadTaxonomy(w http.ResponseWriter, r *http.Request) {
	var req cataloguc.TaxonomyInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	report, err := s.catalog.LoadTaxonomy(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
