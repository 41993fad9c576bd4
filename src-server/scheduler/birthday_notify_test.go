package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"guildkeeper/src-server/model"
	"guildkeeper/src-server/utils/discordtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addBirthday(t *testing.T, env *discordtest.Env, guildID, userID string, month, day, year int) {
	t.Helper()
	require.NoError(t, (&model.Birthday{
		GuildID: guildID,
		UserID:  userID,
		Month:   month,
		Day:     day,
		Year:    year,
	}).Upsert(context.Background(), env.AS.BunDB))
}

func TestAnnounceBirthdays(t *testing.T) {
	env := discordtest.NewEnv(t)
	ctx := context.Background()
	env.SetSettings(model.GuildSettings{BirthdayChannelID: discordtest.ChannelID})

	addBirthday(t, env, discordtest.GuildID, discordtest.Member.ID, 3, 5, 1990)
	addBirthday(t, env, discordtest.GuildID, discordtest.Other.ID, 3, 5, 0)
	addBirthday(t, env, discordtest.GuildID, discordtest.Mod.ID, 3, 6, 0)
	// no announcement channel there
	addBirthday(t, env, "900000000000000009", discordtest.Owner.ID, 3, 5, 0)

	now := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, AnnounceBirthdays(ctx, env.AS, now))

	require.Len(t, env.Session.Sent, 1)
	sent := env.Session.Sent[0]
	assert.Equal(t, discordtest.ChannelID, sent.ChannelID)
	assert.Equal(t, discordtest.Member.Mention()+" "+discordtest.Other.Mention(), sent.Content)
	require.Len(t, sent.Embeds, 1)
	assert.Equal(t, "Happy birthday!", sent.Embeds[0].Title)
	assert.Equal(t,
		"Happy birthday "+discordtest.Member.Mention()+", turning 36 today!\n"+
			"Happy birthday "+discordtest.Other.Mention()+"!",
		sent.Embeds[0].Description)

	// once a year
	assert.Zero(t, AnnounceBirthdays(ctx, env.AS, now.Add(time.Hour)))
	assert.Len(t, env.Session.Sent, 1)

	assert.Equal(t, 1, AnnounceBirthdays(ctx, env.AS, now.AddDate(0, 0, 1)))
	assert.Equal(t, 2, AnnounceBirthdays(ctx, env.AS, now.AddDate(1, 0, 0)))
	assert.Contains(t, env.Session.LastSent().Embeds[0].Description, "turning 37 today!")
}

func TestAnnounceBirthdaysTimezone(t *testing.T) {
	env := discordtest.NewEnv(t)
	ctx := context.Background()
	env.SetSettings(model.GuildSettings{
		BirthdayChannelID: discordtest.ChannelID,
		Timezone:          "America/Sao_Paulo",
		Locale:            "pt-BR",
	})
	addBirthday(t, env, discordtest.GuildID, discordtest.Member.ID, 3, 6, 0)

	// still March 5th in São Paulo
	assert.Zero(t, AnnounceBirthdays(ctx, env.AS, time.Date(2026, time.March, 6, 2, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, AnnounceBirthdays(ctx, env.AS, time.Date(2026, time.March, 6, 3, 30, 0, 0, time.UTC)))

	embeds := env.Session.LastSent().Embeds
	require.Len(t, embeds, 1)
	assert.Equal(t, "Feliz aniversário!", embeds[0].Title)
	assert.Equal(t, "Feliz aniversário "+discordtest.Member.Mention()+"!", embeds[0].Description)
}

func TestAnnounceBirthdaysLeapDay(t *testing.T) {
	env := discordtest.NewEnv(t)
	ctx := context.Background()
	env.SetSettings(model.GuildSettings{BirthdayChannelID: discordtest.ChannelID})
	addBirthday(t, env, discordtest.GuildID, discordtest.Member.ID, 2, 29, 2004)

	// common years celebrate on February 28th
	assert.Equal(t, 1, AnnounceBirthdays(ctx, env.AS, time.Date(2027, time.February, 28, 12, 0, 0, 0, time.UTC)))
	assert.Contains(t, env.Session.LastSent().Embeds[0].Description, "turning 23 today!")

	// leap years wait for the 29th
	assert.Zero(t, AnnounceBirthdays(ctx, env.AS, time.Date(2028, time.February, 28, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, AnnounceBirthdays(ctx, env.AS, time.Date(2028, time.February, 29, 12, 0, 0, 0, time.UTC)))
}

func TestAnnounceBirthdaysSendFailure(t *testing.T) {
	env := discordtest.NewEnv(t)
	ctx := context.Background()
	env.SetSettings(model.GuildSettings{BirthdayChannelID: discordtest.ChannelID})
	addBirthday(t, env, discordtest.GuildID, discordtest.Member.ID, 3, 5, 0)
	now := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)

	env.Session.Err = errors.New("discord is down")
	assert.Zero(t, AnnounceBirthdays(ctx, env.AS, now))

	// not marked, so the next check retries
	env.Session.Err = nil
	assert.Equal(t, 1, AnnounceBirthdays(ctx, env.AS, now.Add(time.Minute)))
}
