// Package dashboard is the interactive stand-in for the original button
// panel: one key per activity, a live status line, and today's timeline.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/benoctopus/quartertime/internal/config"
	"github.com/benoctopus/quartertime/internal/models"
	"github.com/benoctopus/quartertime/internal/report"
	"github.com/benoctopus/quartertime/internal/timeutil"
	"github.com/benoctopus/quartertime/internal/tracker"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2).
			MarginBottom(1)

	idleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second*30, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	tracker *tracker.Tracker
	cfg     *config.Config

	width  int
	height int

	status  *models.CurrentStatus
	records []models.Record
	err     error
}

// New creates a dashboard model and loads the initial state.
func New(trk *tracker.Tracker, cfg *config.Config) Model {
	m := Model{tracker: trk, cfg: cfg}
	m.refresh()
	return m
}

func (m *Model) refresh() {
	status, err := m.tracker.Status()
	if err != nil {
		m.err = err
		return
	}

	records, err := m.tracker.DayRecords(time.Now())
	if err != nil {
		m.err = err
		return
	}

	m.err = nil
	m.status = status
	m.records = report.Valid(records)
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		// Number keys press the corresponding activity button.
		if idx := buttonIndex(key); idx >= 0 && idx < len(m.cfg.Activities) {
			if _, err := m.tracker.Record(m.cfg.Activities[idx].Name); err != nil {
				m.err = err
			} else {
				m.refresh()
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		m.refresh()
		return m, tickCmd()
	}
	return m, nil
}

func buttonIndex(key string) int {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return -1
	}
	return int(key[0] - '1')
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	now := time.Now()

	header := headerStyle.Width(m.width).Render(
		fmt.Sprintf("QuarterTime — %s", now.Format("Jan 2, 2006 15:04:05")),
	)

	colWidth := m.width/2 - 3

	statusBox := boxStyle.Width(colWidth).Render(m.statusView(now))
	buttonBox := boxStyle.Width(colWidth).Render(m.buttonsView())
	summaryBox := boxStyle.Width(colWidth).Render(m.summaryView())
	timelineBox := boxStyle.Width(colWidth).Height(m.height - 8).Render(m.timelineView())

	left := lipgloss.JoinVertical(lipgloss.Left, statusBox, buttonBox, summaryBox)
	content := lipgloss.JoinHorizontal(lipgloss.Top, left, timelineBox)

	footer := footerStyle.Width(m.width).
		Render("1-9 record activity • q quit • refreshes every 30 seconds")

	view := lipgloss.JoinVertical(lipgloss.Left, header, content, footer)

	if m.err != nil {
		view = lipgloss.JoinVertical(lipgloss.Left, view,
			idleStyle.Render(fmt.Sprintf("error: %v", m.err)))
	}

	return view
}

func (m Model) statusView(now time.Time) string {
	if m.status == nil {
		return fmt.Sprintf("CURRENT STATUS\n\n%s", idleStyle.Render("not started"))
	}

	style := m.labelStyle(m.status.Label)
	elapsed := now.Sub(m.status.LastStart)
	return fmt.Sprintf(
		"CURRENT STATUS\n\n%s\nsince %s (%s)",
		style.Render(m.status.Label),
		m.status.LastStart.Format("15:04:05"),
		timeutil.FormatClock(elapsed),
	)
}

func (m Model) buttonsView() string {
	var b strings.Builder
	b.WriteString("ACTIVITIES\n\n")
	for i, a := range m.cfg.Activities {
		if i >= 9 {
			break
		}
		style := m.labelStyle(a.Name)
		fmt.Fprintf(&b, "%d %s\n", i+1, style.Render(a.Name))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) summaryView() string {
	summaries := report.Summaries(m.records)
	if len(summaries) == 0 {
		return "TODAY'S SUMMARY\n\nno data yet"
	}

	var b strings.Builder
	b.WriteString("TODAY'S SUMMARY\n\n")
	var total time.Duration
	for _, s := range summaries {
		style := m.labelStyle(s.Label)
		fmt.Fprintf(&b, "%s %s\n", style.Render("●"), fmt.Sprintf("%-16s %s", s.Label, timeutil.FormatClock(s.Total)))
		total += s.Total
	}
	fmt.Fprintf(&b, "\nTotal: %s", timeutil.FormatClock(total))
	return b.String()
}

func (m Model) timelineView() string {
	dayStart := time.Date(time.Now().Year(), time.Now().Month(), time.Now().Day(), 0, 0, 0, 0, time.Local)
	blocks := report.TimelineBlocks(m.records, dayStart, dayStart.AddDate(0, 0, 1))

	if len(blocks) == 0 {
		return "TODAY'S TIMELINE\n\nno data yet"
	}

	var b strings.Builder
	b.WriteString("TODAY'S TIMELINE\n\n")
	for _, block := range blocks {
		style := m.labelStyle(block.Label)
		fmt.Fprintf(&b, "%s %s-%s %s (%s)\n",
			style.Render("●"),
			block.Start.Format("15:04"),
			block.End.Format("15:04"),
			style.Render(block.Label),
			timeutil.FormatClock(block.Duration),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) labelStyle(label string) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.cfg.Color(label)))
}
