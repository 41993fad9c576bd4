package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/uptrace/bun"
)

const PrefixMaxLength = 8

// Per-guild configuration. A guild without a row uses the defaults
// passed to GetGuildSettings.
type GuildSettings struct {
	bun.BaseModel `bun:"table:guild_settings"`

	GuildID           string `bun:"guild_id,pk"`         // required
	Prefix            string `bun:"prefix,notnull"`      // required
	Locale            string `bun:"locale,notnull"`      // required
	Timezone          string `bun:"timezone,notnull"`    // required
	BirthdayChannelID string `bun:"birthday_channel_id"` // empty = announcements disabled
}

// GetGuildSettings returns the stored settings of a guild, with blank
// fields filled from defaults. found is false when the guild has no row.
func GetGuildSettings(ctx context.Context, db bun.IDB, guildID string, defaults GuildSettings) (settings *GuildSettings, found bool, err error) {
	settings = new(GuildSettings)
	if err := db.NewSelect().
		Model(settings).
		Where("guild_id = ?", guildID).
		Scan(ctx); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, false, fmt.Errorf("GetGuildSettings: %w", err)
		}
		settings.GuildID = guildID
	} else {
		found = true
	}

	if settings.Prefix == "" {
		settings.Prefix = defaults.Prefix
	}
	if settings.Locale == "" {
		settings.Locale = defaults.Locale
	}
	if settings.Timezone == "" {
		settings.Timezone = defaults.Timezone
	}
	return settings, found, nil
}

// Location parses the stored timezone, falling back to UTC.
func (g *GuildSettings) Location() *time.Location {
	if g.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(g.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func ValidatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("prefix is blank")
	case len([]rune(prefix)) > PrefixMaxLength:
		return fmt.Errorf("prefix is longer than %d characters", PrefixMaxLength)
	case strings.IndexFunc(prefix, unicode.IsSpace) >= 0:
		return fmt.Errorf("prefix can't contain whitespace")
	}
	return nil
}

func (g *GuildSettings) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case g.GuildID == "":
		return fmt.Errorf("(*GuildSettings).Upsert: guild id is blank")
	case g.Locale == "":
		return fmt.Errorf("(*GuildSettings).Upsert: locale is blank")
	case g.Timezone == "":
		return fmt.Errorf("(*GuildSettings).Upsert: timezone is blank")
	}
	if err := ValidatePrefix(g.Prefix); err != nil {
		return fmt.Errorf("(*GuildSettings).Upsert: %w", err)
	}
	if _, err := time.LoadLocation(g.Timezone); err != nil {
		return fmt.Errorf("(*GuildSettings).Upsert: invalid timezone: %w", err)
	}

	if _, err := db.NewInsert().
		Model(g).
		On("CONFLICT (guild_id) DO UPDATE").
		Set("prefix = EXCLUDED.prefix").
		Set("locale = EXCLUDED.locale").
		Set("timezone = EXCLUDED.timezone").
		Set("birthday_channel_id = EXCLUDED.birthday_channel_id").
		Exec(ctx); err != nil {
		return fmt.Errorf("(*GuildSettings).Upsert: %w", err)
	}
	return nil
}

// GuildsWithBirthdayChannel lists every guild that has announcements enabled.
func GuildsWithBirthdayChannel(ctx context.Context, db bun.IDB) ([]GuildSettings, error) {
	guilds := make([]GuildSettings, 0)
	if err := db.NewSelect().
		Model(&guilds).
		Where("birthday_channel_id != ''").
		Where("birthday_channel_id IS NOT NULL").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("GuildsWithBirthdayChannel: %w", err)
	}
	return guilds, nil
}
