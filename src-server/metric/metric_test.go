package metric

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"guildkeeper/src-server/utils/discordtest"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestInit(t *testing.T) {
	as := discordtest.NewAppState(t, map[string]string{"METRIC_COLLECTION_INTERVAL": "10ms"})
	as.Discord = discordtest.New()
	Init(as)
	t.Cleanup(as.GracefulShutdown)

	as.MetricChans.CountCommand("ping")
	as.MetricChans.CountCommand("ping")
	as.MetricChans.CountCommand("purge")
	as.MetricChans.CountCopypastaSent()

	for _, line := range []string{
		`guildkeeper_commands_handled_total{command="ping"} 2`,
		`guildkeeper_commands_handled_total{command="purge"} 1`,
		`guildkeeper_copypastas_sent_total 1`,
		`guildkeeper_discord_heartbeat_latency_microsec 42000`,
	} {
		assert.Eventually(t, func() bool {
			return strings.Contains(scrape(t), line)
		}, time.Second, 10*time.Millisecond, line)
	}
	assert.Contains(t, scrape(t), "guildkeeper_database_empty_read_microsec")
}

func TestDatabase(t *testing.T) {
	as := discordtest.NewAppState(t, nil)
	latency, err := database(as)
	require.NoError(t, err)
	assert.Positive(t, latency)
}
