package route

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"guildkeeper/src-server/utils/discordtest"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	as := discordtest.NewAppState(t, nil)
	fake := discordtest.New()
	fake.Latency = 42 * time.Millisecond
	as.Discord = fake
	h := NewHandler(as)

	// case: gateway not connected
	rec := get(t, h, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// case: healthy
	as.DgSession = &discordgo.Session{DataReady: true}
	rec = get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp healthCheckResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Database)
	assert.True(t, resp.GatewayConnected)
	assert.EqualValues(t, 42, resp.HeartbeatMillis)

	// case: database gone
	require.NoError(t, as.RawDB.Close())
	rec = get(t, h, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEqual(t, "ok", resp.Database)
}

func TestHealthWhileGatewayReconnects(t *testing.T) {
	as := discordtest.NewAppState(t, nil)
	as.Discord = discordtest.New()
	session := &discordgo.Session{}
	as.DgSession = session
	h := NewHandler(as)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 50 {
			session.Lock()
			session.DataReady = !session.DataReady
			session.Unlock()
		}
	}()
	for range 50 {
		code := get(t, h, "/healthz").Code
		assert.Contains(t, []int{http.StatusOK, http.StatusServiceUnavailable}, code)
	}
	wg.Wait()
}

func TestMetrics(t *testing.T) {
	h := NewHandler(discordtest.NewAppState(t, nil))

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "go_goroutines"))

	// only GET is routed
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/metrics", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
