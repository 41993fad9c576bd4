package router

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

var ErrConfirmationTimeout = errors.New("no answer in time")

// AskConfirmation posts question with Yes/No buttons only the command's
// author can click, and waits for the answer. The buttons are removed once
// answered or after timeout, which returns ErrConfirmationTimeout.
func AskConfirmation(c *utils.CmdContext, question string, timeout time.Duration) (bool, error) {
	yesID, noID := uuid.New(), uuid.New()
	answerCh := make(chan bool, 1)

	answer := func(yes bool) utils.ComponentHandler {
		return func(s utils.DiscordSession, i *discordgo.InteractionCreate) error {
			if utils.InteractionUserID(i) != c.Author().ID {
				return utils.InteractRespHiddenReply(s, i, c.Sprintf("Only %s can answer this.", c.Author().Mention()))
			}
			content := question
			if !yes {
				content = question + "\n" + c.Sprintf("Cancelled.")
			}
			if err := utils.InteractRespUpdateMessage(s, i, content); err != nil {
				slog.Warn("can't respond", "handler", "confirmation", "error", err)
			}
			select {
			case answerCh <- yes:
			default:
			}
			return nil
		}
	}
	c.AS.AddComponentHandler(yesID, answer(true), question)
	c.AS.AddComponentHandler(noID, answer(false), question)
	defer c.AS.RemoveComponentHandler(yesID)
	defer c.AS.RemoveComponentHandler(noID)

	msg, err := c.Session.ChannelMessageSendComplex(c.ChannelID(), &discordgo.MessageSend{
		Content: question,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    c.Sprintf("Yes"),
						CustomID: yesID.String(),
						Style:    discordgo.DangerButton,
					},
					discordgo.Button{
						Label:    c.Sprintf("No"),
						CustomID: noID.String(),
						Style:    discordgo.SecondaryButton,
					},
				},
			},
		},
	}, discordgo.WithContext(c.Ctx))
	if err != nil {
		return false, fmt.Errorf("AskConfirmation: can't ask: %w", err)
	}

	select {
	case yes := <-answerCh:
		return yes, nil
	case <-c.Ctx.Done():
		return false, c.Ctx.Err()
	case <-time.After(timeout):
	}

	content := question + "\n" + c.Sprintf("No answer in time, nothing was done.")
	if _, err := c.Session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         msg.ID,
		Channel:    msg.ChannelID,
		Content:    &content,
		Components: &[]discordgo.MessageComponent{},
	}, discordgo.WithContext(c.Ctx)); err != nil {
		slog.Warn("can't remove confirmation buttons", "error", err)
	}
	return false, ErrConfirmationTimeout
}
