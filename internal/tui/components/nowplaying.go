package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/aurafm/aura/internal/core"
	"github.com/aurafm/aura/internal/tui/styles"
)

// NowPlaying displays the currently playing track
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel
func (n *NowPlaying) Render(state core.PlaybackState, width, height int, focused bool) string {
	title := styles.PanelTitle("Now Playing", focused)

	var content string
	if !state.HasTrack() {
		content = styles.Muted.Render("No track playing")
	} else {
		content = n.renderTrack(state, width-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (n *NowPlaying) renderTrack(state core.PlaybackState, width int) string {
	track := state.Track

	icon := styles.StatusIcon(state.IsPlaying)
	titleStyle := styles.Title.Width(width - 4)
	title := titleStyle.Render(track.Title)

	artist := styles.Subtitle.Render(track.Artist)
	album := styles.Dim.Render(track.Album)

	// Valence bar when the catalog has audio features for the track.
	valence := ""
	if track.Valence != nil {
		barWidth := width - 16
		if barWidth < 10 {
			barWidth = 10
		}
		bar := styles.ConfidenceBar(*track.Valence*100, barWidth)
		valence = fmt.Sprintf("valence %s %3.0f%%", bar, *track.Valence*100)
		valence = styles.Muted.Render(valence)
	}

	position := ""
	if state.PlaylistLen() > 0 {
		position = styles.Dim.Render(fmt.Sprintf("track %d of %d", state.Cursor+1, state.PlaylistLen()))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title,
		"  "+artist,
		"  "+album,
		"",
		valence,
		position,
	)
}
