package geometry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymmetricIsAnInvolution(t *testing.T) {
	for _, k := range append([]Kind{KindUnknown}, Kinds...) {
		assert.Equal(t, k, k.Symmetric().Symmetric(), k.String())
	}
}

func TestSymmetricPairs(t *testing.T) {
	assert.Equal(t, Square, Rectangle.Symmetric())
	assert.Equal(t, Circle, Ellipse.Symmetric())
	assert.Equal(t, Arrow, Arrow.Symmetric())
	assert.Equal(t, Text, Text.Symmetric())
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, Rectangle, Square.Canonical())
	assert.Equal(t, Ellipse, Circle.Canonical())
	assert.Equal(t, Line, Line.Canonical())
	for _, k := range Kinds {
		assert.Equal(t, k.Canonical(), k.Symmetric().Canonical(), k.String())
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("hexagon")
	assert.ErrorIs(t, err, ErrUnsupportedKind)
	assert.False(t, KindUnknown.Valid())
}

func TestKindJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Kind{"kind": Circle})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"circle"}`, string(data))

	var decoded map[string]Kind
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Circle, decoded["kind"])

	_, err = json.Marshal(KindUnknown)
	assert.Error(t, err)
}
