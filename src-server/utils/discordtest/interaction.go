package discordtest

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

// Click is user pressing the button with customID in the test guild.
func Click(user *discordgo.User, customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:    discordgo.InteractionMessageComponent,
		GuildID: GuildID,
		Member:  &discordgo.Member{User: user},
		Data:    discordgo.MessageComponentInteractionData{CustomID: customID},
	}}
}

// WaitForButtons returns the custom IDs of the last message sent, once it
// has buttons.
func (s *Session) WaitForButtons(t *testing.T) []string {
	t.Helper()
	var ids []string
	require.Eventually(t, func() bool {
		sent := s.LastSent()
		if len(sent.Buttons) == 0 {
			return false
		}
		ids = make([]string, len(sent.Buttons))
		for i, b := range sent.Buttons {
			ids[i] = b.CustomID
		}
		return true
	}, time.Second, 5*time.Millisecond)
	return ids
}
