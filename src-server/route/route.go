package route

import (
	"net/http"

	"guildkeeper/src-server/utils"
)

// NewHandler serves /metrics and /healthz.
func NewHandler(as *utils.AppState) http.Handler {
	muxer := http.NewServeMux()
	Metrics(muxer)
	Health(muxer, as)
	return LogMiddleware(muxer)
}
