package cmd

import (
	"context"
	"fmt"
	"io"

	"cinema-boxoffice/internal/syncer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// oneShotSyncer is the part of the syncer the sync command drives.
type oneShotSyncer interface {
	SyncNow(ctx context.Context) error
	Stop()
	State() syncer.State
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push the local catalog to the remote cinema API once",
	Long:  `Log in to the remote API and run one full sync: halls, then movies, then sessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		return runSync(cmd.Context(), rt.newSyncer(), cmd.OutOrStdout(), rt.log)
	},
}

// runSync runs one full sync and stops the loop SyncNow starts after login.
func runSync(ctx context.Context, s oneShotSyncer, out io.Writer, log *zap.Logger) error {
	defer s.Stop()

	if err := s.SyncNow(ctx); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	log.Info("Sync finished", zap.String("state", s.State().String()))
	fmt.Fprintln(out, "Catalog synchronized")
	return nil
}
