package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
)

const (
	statusRunning   = "running"
	statusCompleted = "completed"
	statusCached    = "cached"
	statusFailed    = "failed"
)

// JobState is the displayed state of one compile job.
type JobState struct {
	ID     string
	Name   string
	Status string
	Err    string
}

type styles struct {
	running   lipgloss.Style
	completed lipgloss.Style
	cached    lipgloss.Style
	failed    lipgloss.Style
}

// Model is the Bubble Tea model listing compile jobs as they are recorded.
type Model struct {
	tape    TapeSource
	jobs    []JobState
	index   map[string]int
	width   int
	height  int
	spinner spinner.Model
	styles  styles
}

// NewModel creates a new TUI model with the given tape source.
func NewModel(tape TapeSource) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))

	return &Model{
		tape:    tape,
		index:   make(map[string]int),
		spinner: s,
		styles: styles{
			running:   lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")),
			completed: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),  // Green
			cached:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")), // Gray
			failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("160")), // Red
		},
	}
}

// Init initializes the model and starts reading from the tape.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForTape(m.tape),
		m.spinner.Tick,
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case MsgTapeUpdate:
		for _, v := range msg.Update.Vertexes {
			m.apply(v)
		}
		return m, WaitForTape(m.tape)
	case MsgTapeEnded:
		return m, tea.Quit
	}
	return m, nil
}

// apply records the latest state of a vertex, adding it on first sight.
func (m *Model) apply(v *progrock.Vertex) {
	i, ok := m.index[v.Id]
	if !ok {
		i = len(m.jobs)
		m.index[v.Id] = i
		m.jobs = append(m.jobs, JobState{ID: v.Id, Name: v.Name, Status: statusRunning})
	}

	job := &m.jobs[i]
	switch {
	case v.Completed == nil:
		job.Status = statusRunning
	case v.Error != nil:
		job.Status = statusFailed
		job.Err = *v.Error
	case v.Cached:
		job.Status = statusCached
	default:
		job.Status = statusCompleted
	}
}

// View renders the current state of the model as a string.
func (m *Model) View() string {
	var s strings.Builder

	// Keep the most recent jobs on screen.
	start := 0
	if len(m.jobs) > m.height && m.height > 0 {
		start = len(m.jobs) - m.height
	}

	for _, job := range m.jobs[start:] {
		var icon string
		var style lipgloss.Style
		switch job.Status {
		case statusRunning:
			icon = m.spinner.View()
			style = m.styles.running
		case statusCompleted:
			icon = "✓"
			style = m.styles.completed
		case statusCached:
			icon = "="
			style = m.styles.cached
		default:
			icon = "✗"
			style = m.styles.failed
		}

		line := fmt.Sprintf("%s %s", style.Render(icon), job.Name)
		if job.Err != "" {
			line += " " + m.styles.failed.Render(job.Err)
		}
		s.WriteString(line + "\n")
	}

	return s.String()
}
