package metric

import (
	"context"
	"time"

	"guildkeeper/src-server/model"
	"guildkeeper/src-server/utils"
)

// database times a read that matches nothing.
func database(as *utils.AppState) (time.Duration, error) {
	start := time.Now()
	if _, err := as.BunDB.NewSelect().
		Model((*model.GuildSettings)(nil)).
		Where("guild_id = ?", "").
		Exists(context.Background()); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
