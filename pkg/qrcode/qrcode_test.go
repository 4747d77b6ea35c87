package qrcode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcafe/cafehub/pkg/qrcode"
)

func TestPNG(t *testing.T) {
	t.Parallel()

	png, err := qrcode.PNG("https://cafe.example.com/feedback-form", 256)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestPNGEmptyContent(t *testing.T) {
	t.Parallel()

	_, err := qrcode.PNG("", 256)
	assert.ErrorIs(t, err, qrcode.ErrEmptyContent)

	_, err = qrcode.PNG("   ", 256)
	assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
}

func TestPNGDefaultSize(t *testing.T) {
	t.Parallel()

	png, err := qrcode.PNG("hello", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestDataURL(t *testing.T) {
	t.Parallel()

	url, err := qrcode.DataURL("https://cafe.example.com/feedback-form", 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}
