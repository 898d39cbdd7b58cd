package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "boxoffice",
	Short:        "Cinema box office",
	Long:         `Seat layouts, daily schedules and ticket bookings for a small cinema, with optional sync to the remote cinema API.`,
	SilenceUsage: true,
}

func Execute() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".env", "path to the .env config file")
	rootCmd.AddCommand(serveCmd, syncCmd, catalogCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
