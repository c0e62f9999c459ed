package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	a := domain.NewInternedString("mesh")
	b := domain.NewInternedString("mesh")

	assert.Equal(t, a, b)
	assert.Equal(t, "mesh", a.String())
	assert.False(t, a.IsZero())

	var zero domain.InternedString
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())
}

func TestInternedStringJSON(t *testing.T) {
	type payload struct {
		Path domain.InternedString `json:"path"`
	}

	data, err := json.Marshal(payload{Path: domain.NewInternedString("models/box.obj")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"models/box.obj"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, domain.NewInternedString("models/box.obj"), decoded.Path)
}
