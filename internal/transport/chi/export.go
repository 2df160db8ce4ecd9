package chi

import (
	"io"
	"net/http"
)

// DumpData handles GET /api/dumpdata: writes the snapshot file and returns
// the snapshot.
func (s *Server) DumpData(w http.ResponseWriter, r *http.Request) {
	snap, err := s.exports.Dump(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// LoadData handles POST /api/loaddata: re-ingests a snapshot, legacy shapes
// included.
func (s *Server) LoadData(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "read body: "+err.Error())
		return
	}

	report, err := s.exports.Import(r.Context(), raw)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
