package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/aurafm/aura/internal/core"
	"github.com/aurafm/aura/internal/tui/styles"
)

// History displays recent mood samples, most recent first
type History struct{}

// NewHistory creates a new History component
func NewHistory() *History {
	return &History{}
}

// Render renders the history panel
func (h *History) Render(samples []core.MoodSample, width, height int, focused bool) string {
	title := styles.PanelTitle("Mood History", focused)

	var content string
	if len(samples) == 0 {
		content = styles.Muted.Render("No moods yet")
	} else {
		content = h.renderHistory(samples, width-4, height-4)
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

func (h *History) renderHistory(samples []core.MoodSample, width, maxLines int) string {
	lines := make([]string, 0, maxLines)

	for i, sample := range samples {
		if i >= maxLines {
			break
		}

		label := string(sample.Mood)
		timeAgo := formatTimeAgo(sample.Timestamp)

		moodStyle := lipgloss.NewStyle().Foreground(styles.MoodColor(label))
		entry := fmt.Sprintf("%s %s %s",
			styles.MoodIcon(label),
			moodStyle.Render(label),
			styles.Dim.Render(fmt.Sprintf("%.0f%%", sample.Confidence*100)))

		// Right-align the relative time
		padding := width - 2 - lipgloss.Width(entry) - len(timeAgo)
		if padding < 1 {
			padding = 1
		}

		line := entry +
			lipgloss.NewStyle().Width(padding).Render("") +
			styles.Dim.Render(timeAgo)

		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatTimeAgo(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		return "now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return t.Format("Jan 2")
}
