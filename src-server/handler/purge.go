package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"guildkeeper/src-server/model"
	"guildkeeper/src-server/router"
	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

const (
	purgeConfirmTimeout = 2 * time.Minute
	// Discord refuses to bulk delete messages older than two weeks
	bulkDeleteMaxAge = 14*24*time.Hour - time.Minute
	pageSize         = 100
)

func Purge(as *utils.AppState) {
	limiter := rate.NewLimiter(as.Config.GetPurgeRateLimit(), 1)
	as.AddCmd(&utils.Cmd{
		Name:        "purge",
		Aliases:     []string{"clear"},
		Usage:       "purge <amount|all>",
		Description: "Deletes the last messages sent to the channel, or every message with `all`.",
		Permissions: discordgo.PermissionManageMessages,
		Handler:     purgeHandler(limiter),
	})
}

func purgeHandler(limiter *rate.Limiter) utils.CmdHandler {
	return func(c *utils.CmdContext) error {
		arg := strings.TrimSpace(c.Args)
		if arg == "" {
			return c.Replyf("Please provide an amount of messages to delete, or use 'all' to purge the channel.")
		}

		var deleted int
		var err error
		if strings.EqualFold(arg, "all") {
			yes, err := router.AskConfirmation(c, c.Sprintf("This will delete every message in %s. Are you sure?", "<#"+c.ChannelID()+">"), purgeConfirmTimeout)
			switch {
			case errors.Is(err, router.ErrConfirmationTimeout):
				return nil
			case err != nil:
				return err
			case !yes:
				return nil
			}
			if err := c.Replyf("Please be patient, this might take some time..."); err != nil {
				return err
			}
			deleted, err = purgeMessages(c.Ctx, c.Session, limiter, c.ChannelID(), 0, time.Now())
			if err != nil {
				return err
			}
		} else {
			amount, convErr := strconv.Atoi(arg)
			if convErr != nil || amount < 1 {
				return c.Replyf("Invalid argument.")
			}
			// the command message goes too
			deleted, err = purgeMessages(c.Ctx, c.Session, limiter, c.ChannelID(), amount+1, time.Now())
			if err != nil {
				return err
			}
			deleted = max(deleted-1, 0)
		}

		if err := model.InvalidateMessageCount(c.Ctx, c.AS.BunDB, c.GuildID(), c.ChannelID()); err != nil {
			slog.Warn("can't invalidate message count", "channel", c.ChannelID(), "error", err)
		}
		return c.Replyf("Deleted %d messages.", deleted)
	}
}

// purgeMessages deletes the newest messages of a channel, every message
// when limit is 0. Messages younger than two weeks are bulk deleted, the
// older ones go one by one under limiter.
func purgeMessages(ctx context.Context, s utils.DiscordSession, limiter *rate.Limiter, channelID string, limit int, now time.Time) (int, error) {
	deleted := 0
	before := ""
	for limit == 0 || deleted < limit {
		size := pageSize
		if limit > 0 && limit-deleted < size {
			size = limit - deleted
		}
		page, err := s.ChannelMessages(channelID, size, before, "", "", discordgo.WithContext(ctx))
		if err != nil {
			return deleted, fmt.Errorf("purgeMessages: can't fetch messages: %w", err)
		}
		if len(page) == 0 {
			break
		}
		before = page[len(page)-1].ID

		recent := make([]string, 0, len(page))
		old := make([]string, 0)
		for _, m := range page {
			ts, err := discordgo.SnowflakeTimestamp(m.ID)
			if err == nil && now.Sub(ts) < bulkDeleteMaxAge {
				recent = append(recent, m.ID)
			} else {
				old = append(old, m.ID)
			}
		}

		if err := s.ChannelMessagesBulkDelete(channelID, recent, discordgo.WithContext(ctx)); err != nil {
			return deleted, fmt.Errorf("purgeMessages: can't bulk delete: %w", err)
		}
		deleted += len(recent)

		for _, id := range old {
			if err := limiter.Wait(ctx); err != nil {
				return deleted, fmt.Errorf("purgeMessages: %w", err)
			}
			if err := s.ChannelMessageDelete(channelID, id, discordgo.WithContext(ctx)); err != nil {
				return deleted, fmt.Errorf("purgeMessages: can't delete %s: %w", id, err)
			}
			deleted++
		}

		if len(page) < size {
			break
		}
	}
	return deleted, nil
}
