package handler

import (
	"testing"

	"guildkeeper/src-server/model"
	"guildkeeper/src-server/utils/discordtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp(t *testing.T) {
	env := discordtest.NewEnv(t)
	Ping(env.AS)
	Purge(env.AS)
	Help(env.AS)
	h := helpHandler(env.AS)

	// case: every command
	require.NoError(t, h(env.Context(discordtest.Member, "help", "")))
	sent := env.Session.LastSent()
	require.Len(t, sent.Embeds, 1)
	assert.Contains(t, sent.Embeds[0].Description, "`./purge <amount|all>`")
	assert.Contains(t, sent.Embeds[0].Description, "`./ping`")

	// case: one command, by alias and with the prefix
	for _, arg := range []string{"clear", "./purge", "PURGE"} {
		require.NoError(t, h(env.Context(discordtest.Member, "help", arg)))
		sent = env.Session.LastSent()
		require.Len(t, sent.Embeds, 1, arg)
		assert.Equal(t, "./purge <amount|all>", sent.Embeds[0].Title, arg)
		require.Len(t, sent.Embeds[0].Fields, 1, arg)
		assert.Equal(t, "clear", sent.Embeds[0].Fields[0].Value, arg)
	}

	// case: unknown command
	require.NoError(t, h(env.Context(discordtest.Member, "help", "nope")))
	assert.Equal(t, "Unknown command `nope`. Use `./help` to list the commands.", lastContent(t, env))
}

func TestHelpCustomPrefix(t *testing.T) {
	env := discordtest.NewEnv(t)
	Ping(env.AS)
	env.SetSettings(model.GuildSettings{Prefix: "!"})

	require.NoError(t, helpHandler(env.AS)(env.Context(discordtest.Member, "help", "ping")))
	sent := env.Session.LastSent()
	require.Len(t, sent.Embeds, 1)
	assert.Equal(t, "!ping", sent.Embeds[0].Title)
}
