package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nsavic/leadflow/internal/campaign"
)

// CampaignServer exposes the sales-campaign pipeline over HTTP.
type CampaignServer struct {
	httpServer *http.Server
	pipeline   *campaign.Pipeline
}

// NewCampaignServer creates the campaign HTTP service.
func NewCampaignServer(port int, pipeline *campaign.Pipeline) *CampaignServer {
	s := &CampaignServer{pipeline: pipeline}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /process-campaign", s.handleProcessCampaign)
	mux.HandleFunc("GET /status", s.handleStatus)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
	return s
}

// Start runs the server until interrupted.
func (s *CampaignServer) Start() error {
	return serve(s.httpServer)
}

func (s *CampaignServer) handleRoot(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"message": "AI Sales Campaign CRM API",
		"endpoints": map[string]string{
			"/process-campaign": "Start processing campaign",
			"/status":           "Check campaign status",
			"/health":           "Health check",
		},
	})
}

func (s *CampaignServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": timestamp(),
	})
}

// handleProcessCampaign starts a background campaign run. The input table
// must exist before any work begins, and only one run may be in flight.
func (s *CampaignServer) handleProcessCampaign(w http.ResponseWriter, r *http.Request) {
	run, err := s.pipeline.Start(r.Context())
	switch {
	case errors.Is(err, campaign.ErrInputMissing):
		errorResponse(w, http.StatusNotFound, "Input lead table not found")
		return
	case errors.Is(err, campaign.ErrAlreadyRunning):
		errorResponse(w, http.StatusConflict, "A campaign run is already in progress")
		return
	case err != nil:
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	jsonResponse(w, http.StatusAccepted, map[string]string{
		"status":    "Campaign processing started",
		"message":   "Check /status endpoint for updates",
		"run_id":    run.Status().RunID,
		"timestamp": timestamp(),
	})
}

func (s *CampaignServer) handleStatus(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, s.pipeline.Status())
}
