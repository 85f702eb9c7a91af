package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/TechBuddyz/Job-Application-Tracker/internal/notion"
	"github.com/TechBuddyz/Job-Application-Tracker/internal/store"
)

type Server struct {
	store  *store.Store
	mirror *notion.Client // nil when no mirror is configured
	mux    *http.ServeMux
}

func New(st *store.Store, mirror *notion.Client) *Server {
	s := &Server{
		store:  st,
		mirror: mirror,
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Form front-end entry points: reads dispatch on ?action=, writes POST
	// JSON bodies. OPTIONS is the browser preflight.
	s.mux.HandleFunc("OPTIONS /api", s.handlePreflight)
	s.mux.HandleFunc("GET /api", s.handleAction)
	s.mux.HandleFunc("POST /api", s.handleSave)
	s.mux.HandleFunc("OPTIONS /api/status", s.handlePreflight)
	s.mux.HandleFunc("POST /api/status", s.handleUpdateStatus)

	if s.mirror != nil {
		s.mux.HandleFunc("GET /debug/notion", s.handleDebugNotion)
	}
}

// Helper used by handlers to allow browser form → API calls.
func writeCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// writeJSON serializes every response, success or failure, as JSON.
func writeJSON(w http.ResponseWriter, status int, v any) {
	writeCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] encode response error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	writeCORSHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// ServeHTTP lets the server be driven directly by httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) Listen(addr string) error {
	log.Println("Server starting…")
	return http.ListenAndServe(addr, s.mux)
}
