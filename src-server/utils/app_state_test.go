package utils_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"guildkeeper/src-server/model"
	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestAppState(t *testing.T) *utils.AppState {
	t.Helper()
	config, err := utils.NewConfigFromLookup(lookup(map[string]string{"DISCORD_APP_TOKEN": "token"}))
	require.NoError(t, err)
	rawDB, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	rawDB.SetMaxOpenConns(1)
	t.Cleanup(func() { rawDB.Close() })
	as := utils.NewAppStateWithDB(config, rawDB)
	require.NoError(t, model.CreateSchema(context.Background(), as.BunDB))
	return as
}

func TestCmdRegistry(t *testing.T) {
	as := newTestAppState(t)
	ping := &utils.Cmd{Name: "ping"}
	purge := &utils.Cmd{Name: "purge", Aliases: []string{"Clear", "prune"}}
	as.AddCmd(purge)
	as.AddCmd(ping)

	cmd, ok := as.GetCmd("CLEAR")
	require.True(t, ok)
	assert.Same(t, purge, cmd)

	_, ok = as.GetCmd("nope")
	assert.False(t, ok)

	cmds := as.Cmds()
	require.Len(t, cmds, 2)
	assert.Equal(t, "ping", cmds[0].Name)
	assert.Equal(t, "purge", cmds[1].Name)
}

func TestComponentHandlers(t *testing.T) {
	as := newTestAppState(t)
	handler := func(s utils.DiscordSession, i *discordgo.InteractionCreate) error { return nil }

	fresh, stale := uuid.New(), uuid.New()
	as.AddComponentHandler(fresh, handler, "fresh")
	as.AddComponentHandler(stale, handler, "stale")

	_, ok := as.GetComponentHandler(fresh.String())
	assert.True(t, ok)

	// nothing expires yet
	assert.Zero(t, as.ExpireComponentHandlers(time.Now()))

	as.RemoveComponentHandler(fresh)
	_, ok = as.GetComponentHandler(fresh.String())
	assert.False(t, ok)

	assert.Equal(t, 1, as.ExpireComponentHandlers(time.Now().Add(10*time.Minute)))
	_, ok = as.GetComponentHandler(stale.String())
	assert.False(t, ok)
}

func TestGracefulShutdown(t *testing.T) {
	as := newTestAppState(t)
	ch := as.CreateGracefulShutdownChan()
	as.GracefulShutdown()
	select {
	case <-*ch:
	case <-time.After(time.Second):
		t.Fatal("shutdown channel not closed")
	}
}

func TestGuildSettingsFallback(t *testing.T) {
	as := newTestAppState(t)
	ctx := context.Background()

	settings := as.GuildSettings(ctx, "g1")
	assert.Equal(t, "./", settings.Prefix)
	assert.Equal(t, "g1", settings.GuildID)

	require.NoError(t, (&model.GuildSettings{GuildID: "g1", Prefix: "!", Locale: "en", Timezone: "UTC"}).Upsert(ctx, as.BunDB))
	assert.Equal(t, "!", as.GuildSettings(ctx, "g1").Prefix)

	// a broken database still yields the defaults
	require.NoError(t, as.RawDB.Close())
	settings = as.GuildSettings(ctx, "g1")
	assert.Equal(t, "./", settings.Prefix)
}

func TestMetricQueryHook(t *testing.T) {
	as := newTestAppState(t)
	for len(as.MetricChans.DatabaseWrite) > 0 {
		<-as.MetricChans.DatabaseWrite
	}
	_, _, err := model.GetGuildSettings(context.Background(), as.BunDB, "g1", model.GuildSettings{Prefix: "./"})
	require.NoError(t, err)
	select {
	case <-as.MetricChans.DatabaseRead:
	case <-time.After(time.Second):
		t.Fatal("no read sample")
	}
}
