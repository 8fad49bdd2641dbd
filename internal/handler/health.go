package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkordes/campground-booking/spec"
)

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// GetOpenAPI handles GET /openapi.yaml.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}

type meResponse struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// GetMe handles GET /api/v1/auth/me.
func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	p := caller(r)
	writeData(w, http.StatusOK, meResponse{ID: p.UserID.String(), Role: p.Role})
}
