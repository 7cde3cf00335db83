package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var syncLimit int

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync catalog audio features",
	Long: `Fetch audio features for catalog songs that are missing them.

Recommendations lean on audio features (valence, energy), so a fresh
catalog gives better matches. Use --limit to cap how many songs are
processed in one pass.`,
	RunE: runSyncCmd,
}

func init() {
	syncCmd.Flags().IntVarP(&syncLimit, "limit", "l", 0, "max songs to process (0 = all)")
	rootCmd.AddCommand(syncCmd)
}

func runSyncCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := getBackend()

	status, err := client.SyncNeeded(ctx)
	if err == nil && !status.NeedsSync && syncLimit == 0 {
		if JSONOutput() {
			_ = json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
				"status":     "up-to-date",
				"song_count": status.SongCount,
			})
		} else {
			fmt.Printf("Catalog is up to date (%d songs)\n", status.SongCount)
		}
		return nil
	}

	result, err := client.Sync(ctx, syncLimit)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	fmt.Printf("Synced %d songs, %d with audio features\n",
		result.TotalProcessed, result.WithFeatures)
	return nil
}
