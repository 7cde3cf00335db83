package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aurafm/aura/internal/backend"
	"github.com/aurafm/aura/internal/core"
	"github.com/aurafm/aura/internal/detector"
	"github.com/aurafm/aura/internal/player"
	"github.com/aurafm/aura/internal/reaction"
	"github.com/aurafm/aura/internal/session"
	"github.com/aurafm/aura/internal/store"
	"github.com/aurafm/aura/internal/tui/components"
	"github.com/aurafm/aura/internal/tui/styles"
)

// Panel represents which panel is focused
type Panel int

const (
	PanelNowPlaying Panel = iota
	PanelPlaylist
	PanelMood
	PanelHistory
)

// App holds the wired pipeline the dashboard drives
type App struct {
	Store       *store.Store
	Player      *player.Controller
	Detector    *detector.Loop
	Backend     *backend.Client
	Reaction    *reaction.Controller
	Stats       *session.Stats
	RefreshRate time.Duration
}

// Model is the main TUI model
type Model struct {
	app          *App
	width        int
	height       int
	focusedPanel Panel

	// State
	playback  core.PlaybackState
	mood      store.MoodSnapshot
	detecting bool
	fps       int

	// Components
	moodView     *components.Mood
	nowPlaying   *components.NowPlaying
	playlistView *components.Playlist
	historyView  *components.History

	// Overlays
	showHelp bool

	// Error handling
	lastError   error
	errorExpiry time.Time // When to clear the error

	// Transient status line (sync results etc.)
	statusNote   string
	statusExpiry time.Time
	syncing      bool
	spinner      spinner.Model

	// Quit flag
	quitting bool
}

// NewModel creates a new TUI model
func NewModel(app *App) Model {
	if app.RefreshRate == 0 {
		app.RefreshRate = 250 * time.Millisecond
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)
	return Model{
		spinner:      sp,
		app:          app,
		focusedPanel: PanelNowPlaying,
		moodView:     components.NewMood(),
		nowPlaying:   components.NewNowPlaying(),
		playlistView: components.NewPlaylist(),
		historyView:  components.NewHistory(),
	}
}

// Messages
type tickMsg time.Time
type errMsg error
type noticeMsg reaction.Notice
type statusMsg string
type actionDoneMsg struct{}

// Commands
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.app.RefreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitNotice blocks on the reaction controller's advisory channel.
func (m Model) waitNotice() tea.Cmd {
	if m.app.Reaction == nil {
		return nil
	}
	notices := m.app.Reaction.Notices()
	return func() tea.Msg {
		n, ok := <-notices
		if !ok {
			return nil
		}
		return noticeMsg(n)
	}
}

func (m Model) togglePlayPause() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.app.Player.TogglePlayPause(ctx); err != nil {
			return errMsg(err)
		}
		return actionDoneMsg{}
	}
}

func (m Model) nextTrack() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.app.Player.Next(ctx); err != nil {
			return errMsg(err)
		}
		return actionDoneMsg{}
	}
}

func (m Model) prevTrack() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.app.Player.Previous(ctx); err != nil {
			return errMsg(err)
		}
		return actionDoneMsg{}
	}
}

func (m Model) toggleDetection() tea.Cmd {
	loop := m.app.Detector
	if loop == nil {
		return nil
	}
	return func() tea.Msg {
		if loop.Armed() {
			loop.Stop()
			return statusMsg("Detection stopped")
		}
		if err := loop.Start(context.Background()); err != nil {
			return errMsg(err)
		}
		return statusMsg("Detection started")
	}
}

func (m Model) runSync() tea.Cmd {
	if m.app.Backend == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		result, err := m.app.Backend.Sync(ctx, 0)
		if err != nil {
			return errMsg(err)
		}
		return statusMsg(fmt.Sprintf("Synced %d songs (%d with features)",
			result.TotalProcessed, result.WithFeatures))
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitNotice())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.lastError != nil && time.Now().After(m.errorExpiry) {
			m.lastError = nil
		}
		if m.statusNote != "" && time.Now().After(m.statusExpiry) {
			m.statusNote = ""
		}
		m.playback = m.app.Store.Playback()
		m.mood = m.app.Store.Mood()
		m.detecting = m.app.Store.Detecting()
		if m.app.Detector != nil {
			m.fps = m.app.Detector.FPS()
		}
		return m, m.tick()

	case actionDoneMsg:
		m.playback = m.app.Store.Playback()
		return m, nil

	case errMsg:
		m.syncing = false
		m.lastError = msg
		m.errorExpiry = time.Now().Add(5 * time.Second) // Show error for 5 seconds
		return m, nil

	case noticeMsg:
		m.lastError = msg.Err
		m.errorExpiry = time.Now().Add(5 * time.Second)
		return m, m.waitNotice()

	case statusMsg:
		m.syncing = false
		m.statusNote = string(msg)
		m.statusExpiry = time.Now().Add(5 * time.Second)
		return m, nil

	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (always work)
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	// Help overlay
	if m.showHelp {
		switch msg.String() {
		case "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	// Normal mode
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "tab":
		m.focusedPanel = (m.focusedPanel + 1) % 4
		return m, nil

	case "shift+tab":
		m.focusedPanel = (m.focusedPanel + 3) % 4
		return m, nil
	}

	// Pipeline controls
	switch msg.String() {
	case " ":
		return m, m.togglePlayPause()
	case "n":
		return m, m.nextTrack()
	case "p":
		return m, m.prevTrack()
	case "d":
		return m, m.toggleDetection()
	case "s":
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		return m, tea.Batch(m.spinner.Tick, m.runSync())
	}

	// Panel-specific keys
	if m.focusedPanel == PanelPlaylist {
		switch msg.String() {
		case "j", "down":
			m.playlistView.ScrollDown()
		case "k", "up":
			m.playlistView.ScrollUp()
		}
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	// Main layout: two columns
	// Left: Now Playing (top), Playlist (bottom)
	// Right: Mood (top), Mood History (bottom)

	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 2
	topHeight := m.height * 40 / 100
	bottomHeight := m.height - topHeight - 2

	nowPlaying := m.nowPlaying.Render(m.playback, leftWidth-2, topHeight-2, m.focusedPanel == PanelNowPlaying)
	playlistView := m.playlistView.Render(m.playback, leftWidth-2, bottomHeight-2, m.focusedPanel == PanelPlaylist)
	moodView := m.moodView.Render(m.mood, m.detecting, rightWidth-2, topHeight-2, m.focusedPanel == PanelMood)
	historyView := m.historyView.Render(m.mood.History, rightWidth-2, bottomHeight-2, m.focusedPanel == PanelHistory)

	leftCol := lipgloss.JoinVertical(lipgloss.Left, nowPlaying, playlistView)
	rightCol := lipgloss.JoinVertical(lipgloss.Left, moodView, historyView)

	main := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)

	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, main, statusBar)
}

func (m Model) renderStatusBar() string {
	status := styles.Dim.Render("q:quit  ?:help  space:play/pause  n:next  p:prev  d:detection  s:sync  tab:switch panel")

	if m.syncing {
		status = m.spinner.View() + styles.Muted.Render(" Syncing catalog...")
	} else if m.statusNote != "" {
		status = styles.Muted.Render(m.statusNote)
	}
	if m.lastError != nil {
		status = styles.Paused.Render("Error: " + m.lastError.Error())
	}

	right := m.renderSessionStats()
	gap := m.width - lipgloss.Width(status) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status + styles.Repeat(" ", gap) + right)
}

func (m Model) renderSessionStats() string {
	var parts string

	if m.detecting {
		parts = styles.Playing.Render("● detecting")
		if m.fps > 0 {
			parts += styles.Dim.Render(fmt.Sprintf(" %d fps", m.fps))
		}
	} else {
		parts = styles.Dim.Render("○ idle")
	}

	if m.app.Stats != nil {
		snap := m.app.Stats.Snapshot()
		parts += styles.Dim.Render(fmt.Sprintf("  ♪ %d  moods %d  %s",
			snap.SongsPlayed,
			snap.MoodChanges,
			formatElapsed(snap.Elapsed)))
	}

	return parts
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	mins := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mins, s)
	}
	return fmt.Sprintf("%d:%02d", mins, s)
}

func (m Model) renderHelp() string {
	title := "Aura - Keyboard Shortcuts"
	divider := styles.Repeat("═", len(title))

	help := `
  ` + title + `
  ` + divider + `

  Global
  ──────
  q, Ctrl+C    Quit
  ?            Toggle help
  Tab          Next panel
  Shift+Tab    Previous panel

  Playback
  ────────
  Space        Play/Pause
  n            Next track
  p            Previous track

  Pipeline
  ────────
  d            Start/stop mood detection
  s            Sync catalog audio features

  Playlist Panel
  ──────────────
  j/↓          Scroll down
  k/↑          Scroll up

  Press ? or Esc to close
`

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Render(help))
}

// Run starts the dashboard over an already wired pipeline.
func Run(app *App) error {
	model := NewModel(app)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
