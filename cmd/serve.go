package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"cinema-boxoffice/internal/usecase"
	"cinema-boxoffice/internal/wire"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the box office HTTP API",
	Long:  `Serve the schedule, booking and admin endpoints. When SYNC_ENABLED is set the catalog is kept in sync with the remote cinema API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.close()

		rt.log.Info("Starting application",
			zap.String("app", rt.config.App.Name),
			zap.String("port", rt.config.App.Port),
			zap.String("storage", rt.config.Storage.Driver),
			zap.Bool("sync", rt.config.Sync.Enabled),
			zap.Bool("debug", rt.config.App.Debug),
		)

		var remote usecase.RemoteSync
		if rt.config.Sync.Enabled {
			s := rt.newSyncer()
			// An offline start is not fatal; SyncNow retries the login.
			_ = s.Start(ctx)
			defer s.Stop()
			remote = s
		}

		app := wire.Wiring(rt.repo, rt.store, remote, rt.config, rt.log)
		return APIServer(ctx, app.Router, rt.config.App.Port, rt.log)
	},
}
