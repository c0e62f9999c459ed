// Package shell runs external toolchain executables.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ToolRunner = (*Runner)(nil)

// Runner implements ports.ToolRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes exe with args in dir. Output is streamed to the vertex carried by ctx
// when there is one, and to the logger line by line otherwise.
func (r *Runner) Run(ctx context.Context, dir, exe string, args []string) error {
	if exe == "" {
		return zerr.New("empty executable")
	}

	cmd := exec.CommandContext(ctx, exe, args...) //nolint:gosec // executable comes from the project manifest
	cmd.Dir = dir

	var stdout, stderr io.Writer
	if v, ok := ports.VertexFromContext(ctx); ok {
		stdout, stderr = v.Stdout(), v.Stderr()
	} else {
		out := &logWriter{emit: r.logger.Info}
		errOut := &logWriter{emit: r.logger.Warn}
		defer out.Flush()
		defer errOut.Flush()
		stdout, stderr = out, errOut
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode), "executable", exe)
	}
	return nil
}

// Find returns the first candidate that exists and is executable.
func (r *Runner) Find(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if !strings.ContainsRune(c, filepath.Separator) {
			if p, err := lookPath(c, os.Getenv("PATH")); err == nil {
				return p, true
			}
			continue
		}
		if err := findExecutable(c); err == nil {
			return c, true
		}
	}
	return "", false
}

// logWriter buffers partial writes and emits complete lines.
type logWriter struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	emit func(string)
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// incomplete line: keep it for the next write
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.emit(strings.TrimSuffix(line, "\n"))
	}
	return len(p), nil
}

// Flush emits any trailing partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

// lookPath searches for an executable in the directories of a PATH list.
func lookPath(file, path string) (string, error) {
	if path == "" {
		return "", exec.ErrNotFound
	}
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		p := filepath.Join(dir, file)
		if err := findExecutable(p); err == nil {
			return p, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
