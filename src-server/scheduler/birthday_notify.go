package scheduler

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"guildkeeper/src-server/locale"
	"guildkeeper/src-server/model"
	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// BirthdayNotify announces birthdays every BIRTHDAY_CHECK_INTERVAL until the
// app shuts down.
func BirthdayNotify(as *utils.AppState) {
	gracefulShutdownCh := as.CreateGracefulShutdownChan()
	ticker := time.NewTicker(as.Config.GetBirthdayCheckInterval())
	defer ticker.Stop()

	AnnounceBirthdays(context.Background(), as, time.Now())
	for {
		select {
		case <-*gracefulShutdownCh:
			return
		case now := <-ticker.C:
			AnnounceBirthdays(context.Background(), as, now)
		}
	}
}

// AnnounceBirthdays posts today's birthdays of every guild with an
// announcement channel, today being in the guild's timezone. Each birthday
// is announced once a year. Returns how many were announced.
func AnnounceBirthdays(ctx context.Context, as *utils.AppState, now time.Time) int {
	guilds, err := model.GuildsWithBirthdayChannel(ctx, as.BunDB)
	if err != nil {
		slog.Error("BirthdayNotify: can't get guilds", "error", err)
		return 0
	}

	announced := 0
	for _, g := range guilds {
		today := now.In(g.Location())
		birthdays, err := model.DueBirthdays(ctx, as.BunDB, g.GuildID, today)
		if err != nil {
			slog.Error("BirthdayNotify: can't get birthdays", "guild", g.GuildID, "error", err)
			continue
		}
		if len(birthdays) == 0 {
			continue
		}

		printer := locale.PrinterFor(g.Locale)
		mentions := make([]string, len(birthdays))
		lines := make([]string, len(birthdays))
		userIDs := make([]string, len(birthdays))
		for i, b := range birthdays {
			mention := "<@" + b.UserID + ">"
			mentions[i] = mention
			userIDs[i] = b.UserID
			if age := b.Age(today); age > 0 {
				lines[i] = printer.Sprintf("Happy birthday %s, turning %d today!", mention, age)
			} else {
				lines[i] = printer.Sprintf("Happy birthday %s!", mention)
			}
		}

		if _, err := as.Discord.ChannelMessageSendComplex(g.BirthdayChannelID, &discordgo.MessageSend{
			Content: strings.Join(mentions, " "),
			Embeds: []*discordgo.MessageEmbed{{
				Title:       printer.Sprintf("Happy birthday!"),
				Description: strings.Join(lines, "\n"),
			}},
			AllowedMentions: &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers}},
		}, discordgo.WithContext(ctx)); err != nil {
			slog.Error("BirthdayNotify: can't send message", "guild", g.GuildID, "channel", g.BirthdayChannelID, "error", err)
			continue
		}

		if err := model.MarkBirthdaysAnnounced(ctx, as.BunDB, g.GuildID, userIDs, today.Year()); err != nil {
			slog.Error("BirthdayNotify: can't mark birthdays announced", "guild", g.GuildID, "error", err)
			continue
		}
		announced += len(birthdays)
		slog.Info("birthdays announced", "guild", g.GuildID, "count", len(birthdays))
	}
	return announced
}
