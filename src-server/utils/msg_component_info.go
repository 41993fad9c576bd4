package utils

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// for the interactive components like buttons, dropdowns, etc
type MsgComponentInfo struct {
	DateAdded time.Time
	Data      interface{}
}

type ComponentHandler func(s DiscordSession, i *discordgo.InteractionCreate) error

// InteractionUserID is the ID of whoever triggered the interaction, in a
// guild or in DMs.
func InteractionUserID(i *discordgo.InteractionCreate) string {
	switch {
	case i == nil || i.Interaction == nil:
		return ""
	case i.Member != nil && i.Member.User != nil:
		return i.Member.User.ID
	case i.User != nil:
		return i.User.ID
	}
	return ""
}
