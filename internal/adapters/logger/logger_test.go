package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/adapters/logger"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf)

	log.Debug("hidden")
	log.Info("compiling models/box.mesh")
	log.Warn("slow compile")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, `msg="compiling models/box.mesh"`)
	assert.Contains(t, out, "level=WARN")

	buf.Reset()
	log.SetLevel(domain.LogLevelDebug)
	log.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")

	buf.Reset()
	log.SetLevel(domain.LogLevelError)
	log.Warn("suppressed")
	assert.Empty(t, buf.String())
}

func TestLogger_ErrorMetadata(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf)

	err := zerr.With(zerr.Wrap(domain.ErrSourceReadFailure, "file not found"), "resource", "models/box.mesh")
	log.Error(err)

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "file not found: source read failure")
	assert.Contains(t, out, "resource=models/box.mesh")
}

func TestLogger_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	log := logger.NewWithWriter(&first)

	log.Info("one")
	log.SetOutput(&second)
	log.Info("two")

	assert.Contains(t, first.String(), "msg=one")
	assert.NotContains(t, first.String(), "msg=two")
	assert.Contains(t, second.String(), "msg=two")
}
