// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder records one progrock vertex per compile job.
type Recorder struct {
	w   *broadcast
	rec *progrock.Recorder
}

// New creates a Recorder writing to an in-memory tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	b := &broadcast{}
	b.add(w)
	return &Recorder{
		w:   b,
		rec: progrock.NewRecorder(b),
	}
}

// Subscribe returns a stream receiving every later status update. Closing the
// stream detaches its reader; the recorder closes it on Close.
func (r *Recorder) Subscribe() *Stream {
	s := NewStream()
	r.w.add(s)
	return s
}

// Record starts a vertex named after the job. The vertex digest is derived from the
// name, so a job recompiled in watch mode updates the same vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := &Vertex{vertex: r.rec.Vertex(digest.FromString(name), name)}
	return ports.ContextWithVertex(ctx, v), v
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	return r.w.Close()
}
