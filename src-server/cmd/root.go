// Package cmd is the guildkeeper CLI.
package cmd

import (
	"log/slog"
	"os"

	"guildkeeper/src-server/utils"

	"github.com/spf13/cobra"
)

// NewCommand returns the root command. Without a subcommand it runs the bot.
// logLevel follows LOG_LEVEL once the config is read.
func NewCommand(logLevel *slog.LevelVar) *cobra.Command {
	var config *utils.Config

	cmd := &cobra.Command{
		Use:          "guildkeeper",
		Short:        "Discord bot for birthdays, copypastas and moderation",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if config, err = utils.NewConfigFromLookup(os.Getenv); err != nil {
				return err
			}
			logLevel.Set(config.GetLogLevel())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), config)
		},
	}

	cmd.AddCommand(
		newRunCommand(&config),
		newMigrateCommand(&config),
		newVersionCommand(),
	)
	return cmd
}
