package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/TechBuddyz/Job-Application-Tracker/internal/domain"
	"github.com/TechBuddyz/Job-Application-Tracker/internal/store"
)

// handleAction dispatches the read queries by their action name.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	action := r.URL.Query().Get("action")
	switch action {
	case "getCandidates":
		s.listDistinct(ctx, w, domain.ColCandidate, "candidates")
	case "getCompanies":
		s.listDistinct(ctx, w, domain.ColCompany, "companies")
	case "getJobTitles":
		s.listDistinct(ctx, w, domain.ColJobTitle, "jobTitles")
	case "getApplications":
		s.listApplications(ctx, w, r.URL.Query().Get("candidate"))
	case "getAllApplications":
		s.listApplications(ctx, w, "")
	default:
		writeError(w, http.StatusNotFound, "Unknown action")
	}
}

func (s *Server) listDistinct(ctx context.Context, w http.ResponseWriter, col int, key string) {
	values, err := s.store.Distinct(ctx, col)
	if err != nil {
		log.Printf("[/api] distinct %s failed: %v", key, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{key: values})
}

func (s *Server) listApplications(ctx context.Context, w http.ResponseWriter, candidate string) {
	apps, err := s.store.List(ctx, candidate)
	if err != nil {
		log.Printf("[/api] list applications failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.ApplicationRecord{"applications": apps})
}

// handleSave accepts a partial record from the form; the store fills the
// missing fields with their defaults.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var rec domain.ApplicationRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		log.Printf("[/api] JSON decode error: %v", err)
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := s.store.Save(ctx, rec); err != nil {
		log.Printf("[/api] save failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Mirror is best effort: the row is already saved.
	if s.mirror != nil {
		if _, err := s.mirror.CreateRecordPage(ctx, rec.WithDefaults(time.Now())); err != nil {
			log.Printf("[/api] warning: notion mirror failed: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Application saved",
	})
}

type statusRequest struct {
	Candidate string `json:"candidate"`
	Company   string `json:"company"`
	JobTitle  string `json:"jobTitle"`
	Status    string `json:"status"`
}

// handleUpdateStatus changes the status of the earliest row matching the
// composite (candidate, company, jobTitle) key.
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[/api/status] JSON decode error: %v", err)
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := s.store.UpdateStatus(ctx, req.Candidate, req.Company, req.JobTitle, req.Status)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Application not found")
	case err != nil:
		log.Printf("[/api/status] update failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Status updated",
		})
	}
}
