package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guildkeeper/src-server/handler"
	"guildkeeper/src-server/handler/birthday_handler"
	"guildkeeper/src-server/handler/copypasta_handler"
	"guildkeeper/src-server/handler/moderation_handler"
	"guildkeeper/src-server/metric"
	"guildkeeper/src-server/model"
	"guildkeeper/src-server/route"
	"guildkeeper/src-server/router"
	"guildkeeper/src-server/scheduler"
	"guildkeeper/src-server/utils"

	"github.com/spf13/cobra"
)

const (
	componentJanitorInterval = time.Minute
	httpShutdownTimeout      = 5 * time.Second
)

func newRunCommand(config **utils.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Connect to Discord and serve /metrics and /healthz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), *config)
		},
	}
}

// registerCommands injects every message command and responder into the
// AppState.
func registerCommands(as *utils.AppState) {
	handler.Ping(as)
	handler.Help(as)
	handler.Purge(as)
	handler.Count(as)
	handler.Marco(as)
	handler.Prefix(as)
	handler.Timezone(as)
	handler.Locale(as)
	copypasta_handler.Init(as)
	moderation_handler.Init(as)
	birthday_handler.Init(as)
}

func run(ctx context.Context, config *utils.Config) error {
	as, err := utils.NewAppState(config)
	if err != nil {
		return err
	}
	defer as.RawDB.Close()

	if err := model.CreateSchema(ctx, as.BunDB); err != nil {
		return fmt.Errorf("can't create database schema: %w", err)
	}

	registerCommands(as)
	as.DgSession.AddHandler(router.MessageCreate(as))
	as.DgSession.AddHandler(router.InteractionCreate(as))

	// open a connection to Discord
	if err := as.DgSession.Open(); err != nil {
		return fmt.Errorf("can't open discord connection: %w", err)
	}
	defer as.DgSession.Close()

	metric.Init(as)
	go as.RunComponentJanitor(componentJanitorInterval)
	go scheduler.BirthdayNotify(as)

	// http server
	server := &http.Server{
		Addr:              ":" + as.Config.GetPort(),
		Handler:           route.NewHandler(as),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("cannot start HTTP server", "error", err)
			as.AppCloseSignalChan <- syscall.SIGTERM
		}
	}()

	if as.DgSession.State != nil {
		slog.Info("number of guilds", "guilds", len(as.DgSession.State.Guilds))
	}
	slog.Info("app is now running, press Ctrl+C to exit")

	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan
	slog.Info("Gracefully shutting down...")
	as.GracefulShutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
