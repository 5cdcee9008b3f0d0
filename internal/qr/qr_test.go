package qr_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softzcar/ninesys-msg/internal/qr"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestGenerateProducesPNG(t *testing.T) {
	t.Parallel()

	png, err := qr.Generate("pairing-payload", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestGenerateRejectsEmptyContent(t *testing.T) {
	t.Parallel()

	_, err := qr.Generate("   ", 0)
	require.ErrorIs(t, err, qr.ErrEmptyContent)
}

func TestDataURIShape(t *testing.T) {
	t.Parallel()

	uri, err := qr.DataURI("pairing-payload", 128)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}
