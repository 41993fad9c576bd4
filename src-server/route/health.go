package route

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

type healthCheckResponse struct {
	Database         string `json:"database"`
	GatewayConnected bool   `json:"gateway_connected"`
	HeartbeatMillis  int64  `json:"heartbeat_ms"`
	Uptime           string `json:"uptime"`
}

const healthCheckTimeout = 2 * time.Second

func gatewayReady(s *discordgo.Session) bool {
	if s == nil {
		return false
	}
	s.RLock()
	defer s.RUnlock()
	return s.DataReady
}

// Health serves GET /healthz: 200 when the database answers and the
// gateway is connected, 503 otherwise.
func Health(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		resp := healthCheckResponse{
			Database:         "ok",
			GatewayConnected: gatewayReady(as.DgSession),
			HeartbeatMillis:  as.Discord.HeartbeatLatency().Milliseconds(),
			Uptime:           as.GetUptime().String(),
		}
		if err := as.RawDB.PingContext(ctx); err != nil {
			slog.Warn("health check: can't ping database", "error", err)
			resp.Database = err.Error()
		}

		status := http.StatusOK
		if resp.Database != "ok" || !resp.GatewayConnected {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("health check: can't write response", "error", err)
		}
	})
}
