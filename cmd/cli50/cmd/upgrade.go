package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cs50/cli50/internal/service/update"
)

// upgradeCmd replaces the running binary with the latest released one.
var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade cli50 to the latest release.",
	Long: `Fetch the release manifest from the configured update URL, and when it
describes a newer version, download the binary for this platform, verify its
checksum, and replace the installed executable in place.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer cancel()

		return update.Run(ctx, &update.Options{ConfigPath: configPath})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(upgradeCmd)
}
