package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"guildkeeper/src-server/model"
	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// Milestones of the count reply, by minimum message count.
var countMilestones = []struct {
	min     int64
	message string
}{
	{1, "Seems like it's just getting started, welcome everyone!"},
	{500, "Keep it up!"},
	{1000, "Gaining traction!"},
	{5000, "That's a lot!"},
	{10000, "Whoa! That's A LOT!"},
}

func countMilestone(count int64) string {
	message := ""
	for _, m := range countMilestones {
		if count < m.min {
			break
		}
		message = m.message
	}
	return message
}

func Count(as *utils.AppState) {
	as.AddCmd(&utils.Cmd{
		Name:        "count",
		Usage:       "count",
		Description: "Counts the messages sent to the channel.",
		Handler:     countHandler,
	})
}

func countHandler(c *utils.CmdContext) error {
	cached, err := model.GetMessageCount(c.Ctx, c.AS.BunDB, c.GuildID(), c.ChannelID())
	switch {
	case errors.Is(err, sql.ErrNoRows):
		cached = &model.MessageCount{GuildID: c.GuildID(), ChannelID: c.ChannelID()}
	case err != nil:
		return fmt.Errorf("countHandler: %w", err)
	}

	if err := c.Replyf("Please be patient, this might take some time..."); err != nil {
		return err
	}

	count, lastID, err := countMessagesAfter(c.Ctx, c.Session, c.ChannelID(), cached.LastMessageID)
	if err != nil {
		return err
	}
	if lastID != "" {
		cached.LastMessageID = lastID
		cached.Count += count
		if err := cached.Upsert(c.Ctx, c.AS.BunDB); err != nil {
			slog.Warn("can't cache message count", "channel", c.ChannelID(), "error", err)
		}
	}

	// the reply is a message too
	reply := c.Sprintf("I've found %d messages in %s. %s", cached.Count+1, "<#"+c.ChannelID()+">", c.Sprintf(countMilestone(cached.Count)))
	return c.Reply(strings.TrimSpace(reply))
}

// countMessagesAfter counts the messages newer than afterID, the whole
// channel when it's empty, and returns the newest ID seen.
func countMessagesAfter(ctx context.Context, s utils.DiscordSession, channelID, afterID string) (int64, string, error) {
	var count int64
	lastID := ""
	after := afterID
	if after == "" {
		after = "0"
	}
	for {
		page, err := s.ChannelMessages(channelID, pageSize, "", after, "", discordgo.WithContext(ctx))
		if err != nil {
			return 0, "", fmt.Errorf("countMessagesAfter: %w", err)
		}
		for _, m := range page {
			if lastID == "" || utils.SnowflakeLess(lastID, m.ID) {
				lastID = m.ID
			}
		}
		count += int64(len(page))
		if len(page) < pageSize {
			break
		}
		after = lastID
	}
	return count, lastID, nil
}
