package birthday_handler

import (
	"fmt"
	"strings"
	"time"

	"guildkeeper/src-server/model"
	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// keeps the embed description well under its 4096 characters
const listLimit = 25

// daysUntil counts calendar days, ignoring the time of day.
func daysUntil(now, next time.Time) int {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func relativeDays(c *utils.CmdContext, days int) string {
	switch days {
	case 0:
		return c.Sprintf("today")
	case 1:
		return c.Sprintf("tomorrow")
	}
	return c.Sprintf("in %d days", days)
}

func list(c *utils.CmdContext, value string) error {
	if value != "" {
		return c.Replyf("Invalid argument.")
	}

	now := time.Now().In(c.Location())
	upcoming, err := model.UpcomingBirthdays(c.Ctx, c.AS.BunDB, c.GuildID(), now)
	if err != nil {
		return err
	}
	if len(upcoming) == 0 {
		return c.Replyf("No birthdays saved in this server.")
	}

	lines := make([]string, 0, min(len(upcoming), listLimit))
	for _, u := range upcoming[:min(len(upcoming), listLimit)] {
		lines = append(lines, fmt.Sprintf("<@%s> - %s (%s)",
			u.UserID,
			formatDate(c, int(u.Next.Month()), u.Next.Day(), 0),
			relativeDays(c, daysUntil(now, u.Next)),
		))
	}
	return c.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       c.Sprintf("Upcoming birthdays"),
		Description: strings.Join(lines, "\n"),
	})
}
