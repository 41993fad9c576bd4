package model_test

import (
	"context"
	"testing"
	"time"

	"guildkeeper/src-server/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDefaults = model.GuildSettings{
	Prefix:   "./",
	Locale:   "en",
	Timezone: "UTC",
}

func TestGuildSettings(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	// case: no row, defaults are used
	settings, found, err := model.GetGuildSettings(ctx, db, "g1", testDefaults)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "g1", settings.GuildID)
	assert.Equal(t, "./", settings.Prefix)
	assert.Equal(t, "en", settings.Locale)
	assert.Equal(t, time.UTC, settings.Location())

	// case: upsert then read back
	settings.Prefix = "!"
	settings.Timezone = "America/Sao_Paulo"
	settings.Locale = "pt-BR"
	require.NoError(t, settings.Upsert(ctx, db))

	settings.BirthdayChannelID = "c1"
	require.NoError(t, settings.Upsert(ctx, db))

	got, found, err := model.GetGuildSettings(ctx, db, "g1", testDefaults)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "!", got.Prefix)
	assert.Equal(t, "pt-BR", got.Locale)
	assert.Equal(t, "c1", got.BirthdayChannelID)
	assert.Equal(t, "America/Sao_Paulo", got.Location().String())

	// case: other guilds are untouched
	other, found, err := model.GetGuildSettings(ctx, db, "g2", testDefaults)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "./", other.Prefix)

	guilds, err := model.GuildsWithBirthdayChannel(ctx, db)
	require.NoError(t, err)
	require.Len(t, guilds, 1)
	assert.Equal(t, "g1", guilds[0].GuildID)
}

func TestGuildSettingsUpsertValidation(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	for name, settings := range map[string]model.GuildSettings{
		"blank guild":     {Prefix: "!", Locale: "en", Timezone: "UTC"},
		"blank prefix":    {GuildID: "g", Locale: "en", Timezone: "UTC"},
		"long prefix":     {GuildID: "g", Prefix: "123456789", Locale: "en", Timezone: "UTC"},
		"space in prefix": {GuildID: "g", Prefix: "a b", Locale: "en", Timezone: "UTC"},
		"bad timezone":    {GuildID: "g", Prefix: "!", Locale: "en", Timezone: "Mars/Olympus"},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, settings.Upsert(ctx, db))
		})
	}
}
