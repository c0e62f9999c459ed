package progrock

import (
	"errors"
	"io"
	"slices"
	"sync"

	"github.com/vito/progrock"
)

// Stream is a progrock.Writer handing status updates to a single reader.
// Writes block until the update is read or the stream is closed.
type Stream struct {
	updates chan *progrock.StatusUpdate
	done    chan struct{}
	once    sync.Once
}

// NewStream creates an open Stream.
func NewStream() *Stream {
	return &Stream{
		updates: make(chan *progrock.StatusUpdate),
		done:    make(chan struct{}),
	}
}

// WriteStatus passes u to the reader. Updates written after Close are dropped.
func (s *Stream) WriteStatus(u *progrock.StatusUpdate) error {
	select {
	case s.updates <- u:
	case <-s.done:
	}
	return nil
}

// Read returns the next update, or io.EOF once the stream is closed.
func (s *Stream) Read() (*progrock.StatusUpdate, error) {
	select {
	case u := <-s.updates:
		return u, nil
	case <-s.done:
		return nil, io.EOF
	}
}

// Close ends the stream.
func (s *Stream) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

// broadcast writes every update to the tape and to each subscribed stream.
type broadcast struct {
	mu      sync.Mutex
	writers []progrock.Writer
}

func (b *broadcast) add(w progrock.Writer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writers = append(b.writers, w)
}

func (b *broadcast) WriteStatus(u *progrock.StatusUpdate) error {
	b.mu.Lock()
	writers := slices.Clone(b.writers)
	b.mu.Unlock()

	var errs []error
	for _, w := range writers {
		errs = append(errs, w.WriteStatus(u))
	}
	return errors.Join(errs...)
}

func (b *broadcast) Close() error {
	b.mu.Lock()
	writers := slices.Clone(b.writers)
	b.mu.Unlock()

	var errs []error
	for _, w := range writers {
		errs = append(errs, w.Close())
	}
	return errors.Join(errs...)
}
