// Package watch provides a live Bubble Tea view of the work-day status.
package watch

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/workfetch/internal/model"
	"github.com/verte-zerg/workfetch/internal/render"
	"github.com/verte-zerg/workfetch/internal/workday"
)

// DefaultInterval is how often the status is refreshed.
const DefaultInterval = 30 * time.Second

const barWidth = 35

var (
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

type tickMsg time.Time

// Model implements the live status view.
type Model struct {
	svc      *workday.Service
	status   workday.Status
	interval time.Duration
	bar      progress.Model
	err      error

	width  int
	height int
}

// NewModel constructs a watch model from an initial status.
func NewModel(svc *workday.Service, initial workday.Status, interval time.Duration) *Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Model{
		svc:      svc,
		status:   initial,
		interval: interval,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth)),
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	case tickMsg:
		m.refresh(time.Time(msg))
		return m, m.tick()
	default:
		return m, nil
	}
}

func (m *Model) refresh(now time.Time) {
	st, err := m.svc.Status(context.Background())
	if err != nil {
		m.err = err
		m.status = m.svc.Recompute(m.status, now)
		return
	}
	m.err = st.PersistErr
	m.status = st
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := render.Lines(m.status)
	lines = append(lines, "", m.bar.ViewAs(DayProgress(m.status.Result, m.status.Now)))
	if m.err != nil {
		lines = append(lines, errorStyle.Render(m.err.Error()))
	}
	lines = append(lines, footerStyle.Render("q to quit"))
	content := strings.Join(lines, "\n")
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// DayProgress returns the elapsed share of the day's target in [0, 1].
func DayProgress(res model.ScheduleResult, now time.Time) float64 {
	total := res.EndOfDay.Sub(res.RoundedStart)
	if total <= 0 {
		return 1
	}
	elapsed := now.Sub(res.RoundedStart)
	switch {
	case elapsed <= 0:
		return 0
	case elapsed >= total:
		return 1
	}
	return float64(elapsed) / float64(total)
}
