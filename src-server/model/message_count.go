package model

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Cached message count of a channel, so counting only needs to fetch
// the messages sent after LastMessageID.
type MessageCount struct {
	bun.BaseModel `bun:"table:message_counts"`

	GuildID       string `bun:"guild_id,pk"`   // required
	ChannelID     string `bun:"channel_id,pk"` // required
	LastMessageID string `bun:"last_message_id,notnull"`
	Count         int64  `bun:"count,notnull"`
}

func GetMessageCount(ctx context.Context, db bun.IDB, guildID, channelID string) (*MessageCount, error) {
	m := new(MessageCount)
	if err := db.NewSelect().
		Model(m).
		Where("guild_id = ?", guildID).
		Where("channel_id = ?", channelID).
		Scan(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MessageCount) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case m.GuildID == "":
		return fmt.Errorf("(*MessageCount).Upsert: guild id is blank")
	case m.ChannelID == "":
		return fmt.Errorf("(*MessageCount).Upsert: channel id is blank")
	case m.LastMessageID == "":
		return fmt.Errorf("(*MessageCount).Upsert: last message id is blank")
	}

	if _, err := db.NewInsert().
		Model(m).
		On("CONFLICT (guild_id, channel_id) DO UPDATE").
		Set("last_message_id = EXCLUDED.last_message_id").
		Set("count = EXCLUDED.count").
		Exec(ctx); err != nil {
		return fmt.Errorf("(*MessageCount).Upsert: %w", err)
	}
	return nil
}

// InvalidateMessageCount drops the cache of a channel, e.g. after a purge.
func InvalidateMessageCount(ctx context.Context, db bun.IDB, guildID, channelID string) error {
	if _, err := db.NewDelete().
		Model((*MessageCount)(nil)).
		Where("guild_id = ?", guildID).
		Where("channel_id = ?", channelID).
		Exec(ctx); err != nil {
		return fmt.Errorf("InvalidateMessageCount: %w", err)
	}
	return nil
}
