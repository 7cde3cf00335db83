package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/aurafm/aura/internal/store"
	"github.com/aurafm/aura/internal/tui/styles"
)

// Mood displays the current detected mood
type Mood struct{}

// NewMood creates a new Mood component
func NewMood() *Mood {
	return &Mood{}
}

// Render renders the mood panel
func (m *Mood) Render(snap store.MoodSnapshot, detecting bool, width, height int, focused bool) string {
	title := styles.PanelTitle("Mood", focused)

	var content string
	if len(snap.History) == 0 {
		if detecting {
			content = styles.Muted.Render("Watching for a face...")
		} else {
			content = styles.Muted.Render("Detection off")
		}
	} else {
		content = m.renderMood(snap, width-4)
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

func (m *Mood) renderMood(snap store.MoodSnapshot, width int) string {
	label := string(snap.Current)

	moodStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.MoodColor(label))
	headline := fmt.Sprintf("%s %s", styles.MoodIcon(label), moodStyle.Render(label))

	barWidth := width - 8
	if barWidth < 10 {
		barWidth = 10
	}
	bar := styles.ConfidenceBar(snap.Confidence*100, barWidth)
	confidence := fmt.Sprintf("%s %3.0f%%", bar, snap.Confidence*100)

	// History[0] is the sample that produced the current label.
	since := styles.Dim.Render("since " + snap.History[0].Timestamp.Format("15:04:05"))

	return lipgloss.JoinVertical(lipgloss.Left,
		headline,
		"",
		confidence,
		"",
		since,
	)
}
