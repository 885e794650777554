package gateway

import (
	"encoding/json"
	"net/http"
	"time"
)

// StatusResponse is the JSON response for GET /status.
type StatusResponse struct {
	UptimeSeconds float64  `json:"uptime_seconds"`
	Model         string   `json:"model,omitempty"`
	Channels      []string `json:"channels,omitempty"`
	Conversations int      `json:"conversations"`
}

// handleStatus returns an http.HandlerFunc for GET /status.
func (g *Gateway) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := StatusResponse{
			UptimeSeconds: time.Since(g.startedAt).Truncate(time.Second).Seconds(),
		}

		if g.store != nil {
			resp.Conversations = g.store.Count()
		}
		if g.provider != nil {
			resp.Model = g.provider.ModelName()
		}
		if g.channels != nil {
			resp.Channels = g.channels.Channels()
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
