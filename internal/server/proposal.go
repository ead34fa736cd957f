package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/nsavic/leadflow/internal/proposal"
	"github.com/nsavic/leadflow/internal/types"
	"github.com/nsavic/leadflow/internal/vectorstore"
)

// ProposalServer exposes profile setup and proposal generation over HTTP.
type ProposalServer struct {
	httpServer *http.Server
	service    *proposal.Service
	store      vectorstore.Store
	validate   *validator.Validate
}

// NewProposalServer creates the proposal HTTP service.
func NewProposalServer(port int, service *proposal.Service, store vectorstore.Store) *ProposalServer {
	s := &ProposalServer{
		service:  service,
		store:    store,
		validate: validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/profile/setup", s.handleProfileSetup)
	mux.HandleFunc("POST /api/proposal/generate", s.handleGenerateProposal)
	mux.HandleFunc("GET /api/proposal/history", s.handleProposalHistory)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
	return s
}

// Start runs the server until interrupted.
func (s *ProposalServer) Start() error {
	return serve(s.httpServer)
}

func (s *ProposalServer) handleRoot(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{
		"message": "Job Proposal Generator API",
	})
}

func (s *ProposalServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "proposal-api",
	})
}

func (s *ProposalServer) handleProfileSetup(w http.ResponseWriter, r *http.Request) {
	var profile types.FreelancerProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validate.Struct(profile); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid profile: "+err.Error())
		return
	}

	profileID, err := s.store.StoreProfile(r.Context(), profile)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Profile setup failed: "+err.Error())
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{
		"message":    "Profile setup successfully",
		"profile_id": profileID,
		"status":     "success",
	})
}

func (s *ProposalServer) handleGenerateProposal(w http.ResponseWriter, r *http.Request) {
	var req types.ProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, "job_posting is required")
		return
	}

	resp, err := s.service.GenerateProposal(r.Context(), req.JobPosting, req.Tone)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Proposal generation failed: "+err.Error())
		return
	}

	jsonResponse(w, http.StatusOK, resp)
}

func (s *ProposalServer) handleProposalHistory(w http.ResponseWriter, _ *http.Request) {
	history := s.service.History()
	jsonResponse(w, http.StatusOK, map[string]any{
		"proposals": history,
		"count":     len(history),
	})
}
