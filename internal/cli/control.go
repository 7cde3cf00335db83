package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aurafm/aura/internal/backend"
	"github.com/aurafm/aura/internal/core"
	"github.com/aurafm/aura/internal/errors"
	"github.com/aurafm/aura/internal/player"
	"github.com/aurafm/aura/internal/store"
)

var controlDevice string

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause playback",
	Long:  `Pause the current playback.`,
	RunE:  runPause,
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume playback",
	Long:  `Resume paused playback.`,
	RunE:  runResume,
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Skip to next track",
	Long:  `Skip to the next track in the mood playlist, wrapping at the end.`,
	RunE:  runNext,
}

var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Go to previous track",
	Long:  `Go back to the previous track in the mood playlist.`,
	RunE:  runPrev,
}

func init() {
	pauseCmd.Flags().StringVarP(&controlDevice, "device", "d", "", "Target device")
	resumeCmd.Flags().StringVarP(&controlDevice, "device", "d", "", "Target device")
	nextCmd.Flags().StringVarP(&controlDevice, "device", "d", "", "Target device")
	prevCmd.Flags().StringVarP(&controlDevice, "device", "d", "", "Target device")

	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
}

func getBackend() *backend.Client {
	timeout := time.Duration(cfg.Backend.Timeout) * time.Second
	client := backend.New(cfg.Backend.URL, backend.WithTimeout(timeout))
	if Verbose() {
		client.SetVerbose(true, func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		})
	}
	return client
}

func deviceID() string {
	if controlDevice != "" {
		return controlDevice
	}
	return cfg.Music.DeviceID
}

func runPause(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := getBackend().Pause(ctx, deviceID()); err != nil {
		return fmt.Errorf("failed to pause: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "paused"})
	} else {
		fmt.Println("⏸ Paused")
	}

	return nil
}

func runResume(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := getBackend().Resume(ctx, deviceID()); err != nil {
		return fmt.Errorf("failed to resume: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "playing"})
	} else {
		fmt.Println("▶ Resumed")
	}

	return nil
}

func runNext(cmd *cobra.Command, args []string) error {
	return runStep(+1, "⏭ Skipped to next track", "skipped")
}

func runPrev(cmd *cobra.Command, args []string) error {
	return runStep(-1, "⏮ Previous track", "previous")
}

// runStep rebuilds the mood playlist from the backend's latest mood and
// steps the cursor relative to whatever is currently playing.
func runStep(delta int, message, status string) error {
	ctx := context.Background()
	client := getBackend()

	st, ctrl, err := seedPlaylist(ctx, client)
	if err != nil {
		return err
	}

	var stepErr error
	if delta > 0 {
		stepErr = ctrl.Next(ctx)
	} else {
		stepErr = ctrl.Previous(ctx)
	}
	if stepErr != nil {
		return stepErr
	}

	pb := st.Playback()
	if JSONOutput() {
		out := map[string]string{"status": status}
		if pb.Track != nil {
			out["track"] = pb.Track.Title
			out["artist"] = pb.Track.Artist
		}
		_ = json.NewEncoder(os.Stdout).Encode(out)
	} else {
		fmt.Println(message)
		if pb.Track != nil {
			fmt.Printf("  %s — %s\n", pb.Track.Artist, pb.Track.Title)
		}
	}

	return nil
}

// seedPlaylist fetches recommendations for the most recent logged mood and
// positions the cursor at the currently playing track when it appears in
// the batch.
func seedPlaylist(ctx context.Context, client *backend.Client) (*store.Store, *player.Controller, error) {
	history, err := client.MoodHistory(ctx, cfg.Music.UserID, 1)
	if err != nil {
		return nil, nil, err
	}
	if len(history) == 0 {
		return nil, nil, errors.WithSuggestion(
			fmt.Errorf("no mood recorded yet"),
			"Run 'aura run' to start detecting before skipping tracks.")
	}

	mood := core.Mood(history[0].Mood)
	tracks, err := client.Recommend(ctx, mood, cfg.Music.Limit)
	if err != nil {
		return nil, nil, err
	}
	if len(tracks) == 0 {
		return nil, nil, fmt.Errorf("%w %q", errors.ErrNoSongsForMood, mood)
	}

	st := store.New()
	st.SetPlaylist(tracks)

	if pb, err := client.Current(ctx); err == nil && pb != nil {
		for i, t := range tracks {
			if t.ID == pb.Track.ID {
				st.SetCursor(i)
				track := pb.Track.CoreTrack()
				st.SetTrack(&track)
				st.SetPlaying(pb.IsPlaying)
				break
			}
		}
	}

	ctrl := player.New(client, st, player.WithDevice(deviceID()))
	return st, ctrl, nil
}
