package router

import (
	"log/slog"

	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// InteractionCreate is the discordgo handler for component interactions.
func InteractionCreate(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		HandleInteraction(as, as.Discord, i)
	}
}

func HandleInteraction(as *utils.AppState, s utils.DiscordSession, i *discordgo.InteractionCreate) {
	if i == nil || i.Interaction == nil {
		return
	}
	if i.Type != discordgo.InteractionMessageComponent {
		slog.Debug("unhandled interaction type", "type", i.Type)
		return
	}

	id := i.MessageComponentData().CustomID
	if handler, ok := as.GetComponentHandler(id); ok {
		if err := handler(s, i); err != nil {
			slog.Error("handler error", "custom_id", id, "error", err)
		}
		return
	}

	if err := utils.InteractRespHiddenReply(s, i, "Expired interaction"); err != nil {
		slog.Warn("can't respond", "error", err)
	}
	slog.Debug("someone used an expired interaction", "user", utils.InteractionUserID(i), "custom_id", id)
}
