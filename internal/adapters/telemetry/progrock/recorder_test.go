package progrock_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/telemetry/progrock"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

func TestRecorder_Lifecycle(t *testing.T) {
	recorder := progrock.New()
	require.NotNil(t, recorder)

	ctx, vertex := recorder.Record(context.Background(), "linux models/box.mesh")
	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	_, err := vertex.Stdout().Write([]byte("tool output\n"))
	require.NoError(t, err)
	vertex.Log(domain.LogLevelInfo, "compiled")
	vertex.Log(domain.LogLevelError, "bad vertex")
	vertex.Complete(nil)

	_, cached := recorder.Record(context.Background(), "linux diffuse.texture")
	cached.Cached()
	cached.Complete(nil)

	_, failed := recorder.Record(context.Background(), "linux broken.texture")
	failed.Complete(errors.New("compile failed"))

	assert.NoError(t, recorder.Close())
}

func TestRecorder_Subscribe(t *testing.T) {
	recorder := progrock.New()
	stream := recorder.Subscribe()

	got := make(chan string, 16)
	go func() {
		defer close(got)
		for {
			update, err := stream.Read()
			if err != nil {
				return
			}
			for _, v := range update.Vertexes {
				got <- v.Name
			}
		}
	}()

	_, vertex := recorder.Record(context.Background(), "boot.package [linux]")
	vertex.Complete(nil)
	require.NoError(t, recorder.Close())

	var names []string
	for name := range got {
		names = append(names, name)
	}
	assert.Contains(t, names, "boot.package [linux]")
}

func TestStream_ReadAfterClose(t *testing.T) {
	stream := progrock.NewStream()
	require.NoError(t, stream.Close())
	require.NoError(t, stream.Close())

	_, err := stream.Read()
	require.ErrorIs(t, err, io.EOF)
	require.NoError(t, stream.WriteStatus(nil))
}
