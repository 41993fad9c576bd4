package cmd

import (
	"database/sql"
	"fmt"
	"log/slog"

	"guildkeeper/src-server/model"
	"guildkeeper/src-server/utils"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newMigrateCommand(config **utils.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := (*config).GetDatabasePath()
			rawDB, err := sql.Open(sqliteshim.ShimName, path+"?mode=rwc")
			if err != nil {
				return fmt.Errorf("can't open sqlite database: %w", err)
			}
			defer rawDB.Close()

			as := utils.NewAppStateWithDB(*config, rawDB)
			if err := model.CreateSchema(cmd.Context(), as.BunDB); err != nil {
				return fmt.Errorf("can't create database schema: %w", err)
			}
			slog.Info("database schema created", "path", path)
			return nil
		},
	}
}
