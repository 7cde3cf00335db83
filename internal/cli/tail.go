package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aurafm/aura/internal/backend"
	"github.com/aurafm/aura/internal/core"
	"github.com/aurafm/aura/internal/store"
	"github.com/aurafm/aura/internal/tail"
)

var (
	tailNoEmoji   bool
	tailTimestamp bool
	tailFormat    string
	tailInterval  time.Duration
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow mood and playback changes in real-time",
	Long: `Watch the backend for state changes and print them as they happen.

Events tracked:
  - Mood changes (new mood detected)
  - Track changes (new song started)
  - Pause/Resume`,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().BoolVar(&tailNoEmoji, "no-emoji", false, "disable emoji output")
	tailCmd.Flags().BoolVarP(&tailTimestamp, "timestamp", "t", false, "show timestamps")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "", "custom format template")
	tailCmd.Flags().DurationVarP(&tailInterval, "interval", "i", time.Second, "poll interval")

	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	client := getBackend()

	formatter := tail.NewFormatter(
		tail.WithEmoji(!tailNoEmoji),
		tail.WithTimestamp(tailTimestamp),
		tail.WithTemplate(tailFormat),
	)

	// Handle Ctrl+C gracefully
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	// Mirror backend state into a local store and watch that.
	st := store.New()
	go pollBackend(ctx, client, st)

	watcher := tail.NewWatcher(st, tailInterval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- watcher.Start(ctx)
	}()

	for {
		select {
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			fmt.Println(formatter.Format(event))

		case err := <-errCh:
			if err == context.Canceled {
				return nil
			}
			return err
		}
	}
}

// pollBackend keeps a local store in sync with the backend's playback and
// mood state.
func pollBackend(ctx context.Context, client *backend.Client, st *store.Store) {
	ticker := time.NewTicker(tailInterval)
	defer ticker.Stop()

	var (
		lastMoodAt string
		moodSeeded bool
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if pb, err := client.Current(ctx); err == nil {
			if pb != nil {
				track := pb.Track.CoreTrack()
				st.SetTrack(&track)
				st.SetPlaying(pb.IsPlaying)
			} else {
				st.SetTrack(nil)
				st.SetPlaying(false)
			}
		}

		history, err := client.MoodHistory(ctx, cfg.Music.UserID, 1)
		if err != nil || len(history) == 0 {
			continue
		}
		entry := history[0]
		if entry.Timestamp == lastMoodAt {
			continue
		}
		lastMoodAt = entry.Timestamp
		// The first entry predates this session; only changes after it
		// are events.
		if !moodSeeded {
			moodSeeded = true
			continue
		}
		st.RecordMood(core.Mood(entry.Mood), entry.Confidence)
	}
}
