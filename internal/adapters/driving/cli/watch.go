package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/refbase-labs/refbase-cli/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the library and regenerate proposals on change",
	Long: `Watches the Base's library for changes and reruns the category
proposal worker when papers are added or removed.

Runs until interrupted. Regeneration is debounced and rate limited, so
bulk imports trigger a single run.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("path", "", "library path to watch (default: the configured library)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if proposalService == nil {
		return errors.New("proposal service not configured")
	}

	path, _ := cmd.Flags().GetString("path") //nolint:errcheck // flag is defined in init
	if path == "" {
		path = libraryPath
	}
	if path == "" {
		return errors.New("no library path to watch; pass --path")
	}

	cmd.Printf("Watching %s for changes. Ctrl+C to stop.\n", path)

	w := watcher.New(proposalService, settingsService, path)
	return w.Run(cmd.Context())
}
