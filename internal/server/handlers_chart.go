package server

import (
	"encoding/json"
	"net/http"

	"github.com/waritt/goldbooks/internal/books"
)

func (s *Server) getChart(w http.ResponseWriter, r *http.Request) {
	chart, err := s.store.Chart(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

func (s *Server) patchChart(w http.ResponseWriter, r *http.Request) {
	var patch map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	chart, err := s.store.PatchChart(r.Context(), patch)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

func (s *Server) getCompany(w http.ResponseWriter, r *http.Request) {
	profile, err := s.store.CompanyProfile(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) putCompany(w http.ResponseWriter, r *http.Request) {
	var profile books.CompanyProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if err := s.store.PutCompanyProfile(r.Context(), &profile); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, &profile)
}
