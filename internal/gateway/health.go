package gateway

import (
	"encoding/json"
	"net/http"
)

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status        string `json:"status"`
	Conversations int    `json:"conversations"`
}

// handleHealth returns an http.HandlerFunc for GET /health.
func (g *Gateway) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := HealthResponse{Status: "ok"}

		if g.store != nil {
			resp.Conversations = g.store.Count()
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
