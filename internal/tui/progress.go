package tui

import (
	"github.com/charmbracelet/bubbletea"
	"go.trai.ch/kiln/internal/adapters/telemetry/progrock" //nolint:depguard // The view reads the recorder's stream
)

// Progress shows the jobs recorded by a telemetry recorder while a build runs.
type Progress struct {
	recorder *progrock.Recorder
	opts     []tea.ProgramOption
}

// NewProgress creates a Progress over recorder. opts are passed to the Bubble Tea program.
func NewProgress(recorder *progrock.Recorder, opts ...tea.ProgramOption) *Progress {
	return &Progress{recorder: recorder, opts: opts}
}

// Start renders jobs recorded from now on. The returned function ends the view
// and waits for the program to exit.
func (p *Progress) Start() (stop func()) {
	stream := p.recorder.Subscribe()
	program := tea.NewProgram(NewModel(stream), p.opts...)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = program.Run()
		// The user may quit early; later updates must not block the build.
		_ = stream.Close()
	}()

	return func() {
		_ = stream.Close()
		<-done
	}
}
