package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aurafm/aura/internal/core"
	"github.com/aurafm/aura/internal/errors"
)

var playMood string

var playCmd = &cobra.Command{
	Use:   "play [track-id]",
	Short: "Start playback",
	Long: `Start playing a track.

With a track ID, plays that track directly. With --mood, fetches
recommendations for the mood and plays the first one.

Examples:
  aura play 4uLU6hMCjMI75M1A2tKUQC
  aura play --mood happy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&playMood, "mood", "m", "", "Play recommendations for a mood")
	playCmd.Flags().StringVarP(&controlDevice, "device", "d", "", "Target device")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := getBackend()

	var track core.Track

	switch {
	case len(args) > 0:
		track = core.Track{ID: args[0]}

	case playMood != "":
		tracks, err := client.Recommend(ctx, core.Mood(playMood), cfg.Music.Limit)
		if err != nil {
			return err
		}
		if len(tracks) == 0 {
			return fmt.Errorf("%w %q", errors.ErrNoSongsForMood, playMood)
		}
		track = tracks[0]

	default:
		return errors.WithSuggestion(
			fmt.Errorf("nothing to play"),
			"Pass a track ID or --mood, e.g. 'aura play --mood happy'.")
	}

	if err := client.Play(ctx, track.ID, deviceID()); err != nil {
		return fmt.Errorf("failed to play: %w", err)
	}

	if JSONOutput() {
		out := map[string]string{"status": "playing", "track_id": track.ID}
		if track.Title != "" {
			out["track"] = track.Title
			out["artist"] = track.Artist
		}
		_ = json.NewEncoder(os.Stdout).Encode(out)
	} else if track.Title != "" {
		fmt.Printf("▶ Playing %s — %s\n", track.Artist, track.Title)
	} else {
		fmt.Println("▶ Playing")
	}

	return nil
}
