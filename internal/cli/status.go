package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current playback and catalog status",
	Long:  `Shows what is playing, the backend's latest mood, and whether the catalog needs a sync.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusResult struct {
	Playing    bool    `json:"playing"`
	Track      string  `json:"track,omitempty"`
	Artist     string  `json:"artist,omitempty"`
	Album      string  `json:"album,omitempty"`
	Mood       string  `json:"mood,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	NeedsSync  bool    `json:"needs_sync"`
	SongCount  int     `json:"song_count"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := getBackend()

	var result statusResult

	pb, err := client.Current(ctx)
	if err != nil {
		if Verbose() {
			fmt.Fprintf(os.Stderr, "playback error: %v\n", err)
		}
	} else if pb != nil {
		result.Playing = pb.IsPlaying
		result.Track = pb.Track.Title
		result.Artist = pb.Track.Artist
		result.Album = pb.Track.Album
	}

	if history, err := client.MoodHistory(ctx, cfg.Music.UserID, 1); err == nil && len(history) > 0 {
		result.Mood = history[0].Mood
		result.Confidence = history[0].Confidence
	}

	if sync, err := client.SyncNeeded(ctx); err == nil {
		result.NeedsSync = sync.NeedsSync
		result.SongCount = sync.SongCount
	} else if Verbose() {
		fmt.Fprintf(os.Stderr, "sync status error: %v\n", err)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	if result.Track != "" {
		state := "Playing"
		if !result.Playing {
			state = "Paused"
		}
		fmt.Printf("%s %s: %s — %s\n", StatusIcon(result.Playing), state, result.Artist, result.Track)
		if result.Album != "" {
			fmt.Printf("  Album: %s\n", result.Album)
		}
	} else {
		fmt.Printf("%s No active playback\n", StatusIcon(false))
	}

	if result.Mood != "" {
		fmt.Printf("  Mood:  %s (%s)\n", result.Mood, Confidence(result.Confidence))
	}

	t := NewTable("", "")
	t.Row("Catalog songs", fmt.Sprintf("%d", result.SongCount))
	if result.NeedsSync {
		t.Row("Audio features", "stale (run 'aura sync')")
	} else {
		t.Row("Audio features", "synced")
	}
	t.Flush()

	return nil
}
