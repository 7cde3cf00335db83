package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aurafm/aura/internal/broadcast"
	"github.com/aurafm/aura/internal/camera"
	"github.com/aurafm/aura/internal/classifier"
	"github.com/aurafm/aura/internal/core"
	"github.com/aurafm/aura/internal/detector"
	"github.com/aurafm/aura/internal/errors"
	"github.com/aurafm/aura/internal/player"
	"github.com/aurafm/aura/internal/reaction"
	"github.com/aurafm/aura/internal/session"
	"github.com/aurafm/aura/internal/store"
	"github.com/aurafm/aura/internal/tail"
	"github.com/aurafm/aura/internal/tui"
)

var (
	runHeadless bool
	runNoDetect bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the mood-to-music pipeline",
	Long: `Start the full pipeline: camera frames are classified into moods,
mood changes fetch fresh recommendations, and playback follows along.

By default a dashboard opens with live mood, playback and playlist
panels. With --headless, events are printed to stdout instead.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "print events instead of opening the dashboard")
	runCmd.Flags().BoolVar(&runNoDetect, "no-detect", false, "start with detection off (toggle with 'd' in the dashboard)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	client := getBackend()

	source, err := cameraSource()
	if err != nil {
		return err
	}

	st := store.New()
	stats := session.New()

	var notifier core.Notifier = core.NoopNotifier{}
	if cfg.Broadcast.URL != "" {
		notifier = broadcast.New(cfg.Broadcast.URL)
	}
	defer notifier.Close()

	smoothed := classifier.NewSmoother(classifier.NewRemote(client), cfg.Detector.Window)
	interval := time.Duration(cfg.DetectionIntervalMS()) * time.Millisecond
	loop := detector.New(source, smoothed, st, notifier, interval)

	ctrl := player.New(client, st,
		player.WithDevice(cfg.Music.DeviceID),
		player.WithStats(stats))

	react := reaction.New(client, ctrl, st,
		reaction.WithLimit(cfg.Music.Limit),
		reaction.WithStats(stats))
	go react.Run(ctx)

	if !runNoDetect {
		if err := loop.Start(ctx); err != nil {
			return errors.WithSuggestion(err,
				"Check camera.stream_url or camera.snapshot_url in your config, or start with --no-detect.")
		}
	}
	defer loop.Stop()

	if runHeadless {
		return runHeadlessLoop(ctx, st, react)
	}

	return tui.Run(&tui.App{
		Store:       st,
		Player:      ctrl,
		Detector:    loop,
		Backend:     client,
		Reaction:    react,
		Stats:       stats,
		RefreshRate: time.Duration(cfg.TUI.RefreshInterval) * time.Millisecond,
	})
}

// cameraSource builds the configured frame source. A stream URL wins over
// a snapshot URL when both are set.
func cameraSource() (camera.Source, error) {
	if cfg.Camera.StreamURL != "" {
		return camera.NewMJPEGSource(cfg.Camera.StreamURL), nil
	}
	if cfg.Camera.SnapshotURL != "" {
		return camera.NewSnapshotSource(cfg.Camera.SnapshotURL, camera.DefaultSnapshotInterval), nil
	}
	return nil, errors.WithSuggestion(
		fmt.Errorf("%w: no camera source", errors.ErrNotConfigured),
		"Run 'aura init' to set up a camera stream or snapshot endpoint.")
}

// runHeadlessLoop prints pipeline events until interrupted.
func runHeadlessLoop(ctx context.Context, st *store.Store, react *reaction.Controller) error {
	formatter := tail.NewFormatter(
		tail.WithEmoji(true),
		tail.WithTimestamp(true),
	)

	watcher := tail.NewWatcher(st, time.Second)
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

		case notice := <-react.Notices():
			fmt.Fprintln(os.Stderr, errors.Format(notice.Err))

		case err := <-errCh:
			if err == context.Canceled {
				return nil
			}
			return err
		}
	}
}
