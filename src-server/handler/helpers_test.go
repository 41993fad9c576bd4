package handler

import (
	"testing"
	"time"

	"guildkeeper/src-server/utils"
	"guildkeeper/src-server/utils/discordtest"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

// addMessages stores n messages from Member, one second apart, the last
// one sent `age` ago.
func addMessages(env *discordtest.Env, n int, age time.Duration) []*discordgo.Message {
	now := time.Now()
	msgs := make([]*discordgo.Message, n)
	for i := range msgs {
		at := now.Add(-age - time.Duration(n-1-i)*time.Second)
		msgs[i] = env.Session.AddMessage(discordtest.ChannelID, discordtest.Member, "hi", at)
	}
	return msgs
}

func channelLen(env *discordtest.Env) int {
	return len(env.Session.Messages[discordtest.ChannelID])
}

func lastContent(t *testing.T, env *discordtest.Env) string {
	t.Helper()
	sent := env.Session.SentTo(discordtest.ChannelID)
	require.NotEmpty(t, sent)
	return sent[len(sent)-1]
}

// plainMessage is the context responders get for a message that isn't a command.
func plainMessage(env *discordtest.Env, author *discordgo.User, content string) *utils.CmdContext {
	c := env.Context(author, "", "")
	c.Message.Content = content
	return c
}
