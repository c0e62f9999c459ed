//nolint:testpackage // Test needs access to unexported fields
package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// sliceTape replays a fixed list of updates, then reports io.EOF.
type sliceTape struct {
	updates []*progrock.StatusUpdate
}

func (s *sliceTape) Read() (*progrock.StatusUpdate, error) {
	if len(s.updates) == 0 {
		return nil, io.EOF
	}
	u := s.updates[0]
	s.updates = s.updates[1:]
	return u, nil
}

func update(vertexes ...*progrock.Vertex) MsgTapeUpdate {
	return MsgTapeUpdate{Update: &progrock.StatusUpdate{Vertexes: vertexes}}
}

func TestModel_TapeUpdate_AddsJob(t *testing.T) {
	m := NewModel(&sliceTape{})

	_, cmd := m.Update(update(&progrock.Vertex{Id: "1", Name: "boot.package [linux]"}))

	require.Len(t, m.jobs, 1)
	assert.Equal(t, "boot.package [linux]", m.jobs[0].Name)
	assert.Equal(t, statusRunning, m.jobs[0].Status)
	assert.NotNil(t, cmd)
}

func TestModel_TapeUpdate_Completion(t *testing.T) {
	now := timestamppb.New(time.Now())
	boom := "compile failed"

	tests := []struct {
		name   string
		vertex *progrock.Vertex
		status string
		err    string
	}{
		{"completed", &progrock.Vertex{Id: "1", Name: "a", Completed: now}, statusCompleted, ""},
		{"cached", &progrock.Vertex{Id: "1", Name: "a", Completed: now, Cached: true}, statusCached, ""},
		{"failed", &progrock.Vertex{Id: "1", Name: "a", Completed: now, Error: &boom}, statusFailed, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(&sliceTape{})
			m.Update(update(&progrock.Vertex{Id: "1", Name: "a"}))
			m.Update(update(tt.vertex))

			require.Len(t, m.jobs, 1)
			assert.Equal(t, tt.status, m.jobs[0].Status)
			assert.Equal(t, tt.err, m.jobs[0].Err)
		})
	}
}

func TestModel_TapeEnded_Quits(t *testing.T) {
	m := NewModel(&sliceTape{})

	_, cmd := m.Update(MsgTapeEnded{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_CtrlC_Quits(t *testing.T) {
	m := NewModel(&sliceTape{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWaitForTape(t *testing.T) {
	tape := &sliceTape{updates: []*progrock.StatusUpdate{{}}}

	assert.IsType(t, MsgTapeUpdate{}, WaitForTape(tape)())
	assert.Equal(t, MsgTapeEnded{}, WaitForTape(tape)())
}

func TestModel_View(t *testing.T) {
	now := timestamppb.New(time.Now())
	boom := "exit status 1"

	m := NewModel(nil)
	m.Update(update(
		&progrock.Vertex{Id: "1", Name: "running.mesh [linux]"},
		&progrock.Vertex{Id: "2", Name: "done.mesh [linux]", Completed: now},
		&progrock.Vertex{Id: "3", Name: "broken.mesh [linux]", Completed: now, Error: &boom},
	))

	output := m.View()
	assert.Contains(t, output, "running.mesh [linux]")
	assert.Contains(t, output, "✓")
	assert.Contains(t, output, "done.mesh [linux]")
	assert.Contains(t, output, "✗")
	assert.Contains(t, output, "exit status 1")
}

func TestModel_View_KeepsLatestJobs(t *testing.T) {
	m := NewModel(nil)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 2})
	for _, id := range []string{"1", "2", "3"} {
		m.Update(update(&progrock.Vertex{Id: id, Name: "job-" + id}))
	}

	output := m.View()
	assert.NotContains(t, output, "job-1")
	assert.Contains(t, output, "job-2")
	assert.Contains(t, output, "job-3")
}
