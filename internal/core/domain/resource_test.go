package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestParseResourceID(t *testing.T) {
	tests := []struct {
		in       string
		typ      string
		name     string
		wantFail bool
	}{
		{in: "models/box.mesh", typ: "mesh", name: "models/box"},
		{in: "diffuse.texture", typ: "texture", name: "diffuse"},
		{in: "levels/v1.2/intro.level", typ: "level", name: "levels/v1.2/intro"},
		{in: "a.b.package", typ: "package", name: "a.b"},
		{in: "", wantFail: true},
		{in: "noext", wantFail: true},
		{in: "models/.mesh", wantFail: true},
		{in: "box.", wantFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseResourceID(tt.in)
			if tt.wantFail {
				require.ErrorIs(t, err, domain.ErrInvalidResourcePath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.typ, got.Type.String())
			assert.Equal(t, tt.name, got.Name.String())
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestResourceID_Stem(t *testing.T) {
	a := domain.NewResourceID("mesh", "box")
	b := domain.NewResourceID("mesh", "box")
	c := domain.NewResourceID("texture", "box")

	assert.Equal(t, a.Stem(), b.Stem())
	assert.NotEqual(t, a.Stem(), c.Stem())
	assert.Len(t, a.Stem(), 33)
}

func TestResourceID_Compare(t *testing.T) {
	mesh := domain.NewResourceID("mesh", "z")
	texA := domain.NewResourceID("texture", "a")
	texB := domain.NewResourceID("texture", "b")

	assert.Negative(t, mesh.Compare(texA))
	assert.Negative(t, texA.Compare(texB))
	assert.Zero(t, texB.Compare(texB))
}

func TestResourceID_JSONMapKey(t *testing.T) {
	in := map[domain.ResourceID]string{domain.NewResourceID("mesh", "models/box"): "ok"}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"models/box.mesh":"ok"}`, string(data))

	var out map[domain.ResourceID]string
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestMount_Match(t *testing.T) {
	tests := []struct {
		prefix  string
		logical string
		rest    string
		ok      bool
	}{
		{"", "models/box.obj", "models/box.obj", true},
		{"core", "core/shaders/lit.glsl", "shaders/lit.glsl", true},
		{"core", "corelib/x.txt", "", false},
		{"core", "core", "", false},
		{"core", "core/", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.prefix+"|"+tt.logical, func(t *testing.T) {
			rest, ok := domain.Mount{Prefix: tt.prefix, Root: "/src"}.Match(tt.logical)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.rest, rest)
		})
	}
}
