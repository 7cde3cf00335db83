package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/aurafm/aura/internal/core"
	"github.com/aurafm/aura/internal/tui/styles"
)

// Playlist displays the active recommendation playlist
type Playlist struct {
	offset int
}

// NewPlaylist creates a new Playlist component
func NewPlaylist() *Playlist {
	return &Playlist{offset: 0}
}

// ScrollDown scrolls the playlist down
func (p *Playlist) ScrollDown() {
	p.offset++
}

// ScrollUp scrolls the playlist up
func (p *Playlist) ScrollUp() {
	if p.offset > 0 {
		p.offset--
	}
}

// Render renders the playlist panel
func (p *Playlist) Render(state core.PlaybackState, width, height int, focused bool) string {
	title := styles.PanelTitle("Playlist", focused)

	var content string
	if state.PlaylistLen() == 0 {
		content = styles.Muted.Render("No recommendations yet")
	} else {
		content = p.renderTracks(state, width-4, height-4)
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

func (p *Playlist) renderTracks(state core.PlaybackState, width, maxLines int) string {
	tracks := state.Playlist

	if p.offset >= len(tracks) {
		p.offset = 0
	}

	visibleCount := maxLines - 1 // Leave room for "more" indicator
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := p.offset
	end := start + visibleCount
	if end > len(tracks) {
		end = len(tracks)
	}

	lines := make([]string, 0, end-start+1)

	// Fixed overhead: "XX. " (4) + "▶ " or "  " (2) + " — " (3) = 9 chars
	const overhead = 9

	for i := start; i < end; i++ {
		track := tracks[i]

		num := fmt.Sprintf("%2d.", i+1)

		available := width - overhead
		titleLen := len(track.Title)
		artistLen := len(track.Artist)
		totalNeeded := titleLen + artistLen

		var title, artist string
		if totalNeeded <= available {
			title = track.Title
			artist = track.Artist
		} else {
			// Need to truncate - give artist at least 1/3 of space (min 10 chars)
			minArtist := available / 3
			if minArtist < 10 {
				minArtist = 10
			}
			if minArtist > available-10 {
				minArtist = available - 10
			}

			artistSpace := minArtist
			if artistLen < artistSpace {
				artistSpace = artistLen
			}
			titleSpace := available - artistSpace

			title = truncate(track.Title, titleSpace)
			artist = truncate(track.Artist, artistSpace)
		}

		// Highlight the track under the cursor
		var line string
		if i == state.Cursor {
			line = styles.Playing.Render(fmt.Sprintf("%s ▶ %s — %s", num, title, artist))
		} else {
			line = fmt.Sprintf("%s   %s — %s",
				styles.Dim.Render(num),
				title,
				styles.Muted.Render(artist))
		}

		lines = append(lines, line)
	}

	if end < len(tracks) {
		more := styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(tracks)-end))
		lines = append(lines, more)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
