package processing

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativeai/imgdoc/common/rcontext"
)

func makeTestPng(t *testing.T, seed uint8) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x*4) + seed, G: uint8(y * 4), B: seed, A: 255})
		}
	}
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestProcessImage_ValidImage(t *testing.T) {
	ctx := rcontext.Initial()
	data := makeTestPng(t, 0)

	record, err := ProcessImage(ctx, data, "Sunset", "https://example.com/a.jpg", 1234567890)
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "example.com", record.Domain)
	assert.Equal(t, "image/png", record.MimeType)
	assert.Equal(t, int64(1234567890), record.Timestamp)
	assert.Equal(t, len(data), record.Bytes)
	assert.Len(t, record.Checksum, 64)
	assert.Len(t, strings.Split(record.Iscc, "-"), 4)

	// A freshly generated image carries no embedded attribution.
	assert.Equal(t, "", record.Copyright)
}

func TestProcessImage_UndecodableIsFilteredNotFailed(t *testing.T) {
	ctx := rcontext.Initial()

	record, err := ProcessImage(ctx, []byte("certainly not an image"), "", "https://example.com/a.jpg", 0)
	assert.NoError(t, err)
	assert.Nil(t, record)
}

func TestProcessImage_Deterministic(t *testing.T) {
	ctx := rcontext.Initial()
	data := makeTestPng(t, 7)

	first, err := ProcessImage(ctx, data, "Sunset", "https://example.com/a.jpg", 1234567890)
	require.NoError(t, err)
	second, err := ProcessImage(ctx, data, "Sunset", "https://example.com/a.jpg", 1234567890)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestProcessImage_TitleOnlyChangesMetaComponent(t *testing.T) {
	ctx := rcontext.Initial()
	data := makeTestPng(t, 7)

	first, err := ProcessImage(ctx, data, "Sunset", "https://example.com/a.jpg", 1234567890)
	require.NoError(t, err)
	second, err := ProcessImage(ctx, data, "Portrait of a cat", "https://example.com/a.jpg", 1234567890)
	require.NoError(t, err)

	firstParts := strings.Split(first.Iscc, "-")
	secondParts := strings.Split(second.Iscc, "-")
	assert.NotEqual(t, firstParts[0], secondParts[0])
	assert.Equal(t, firstParts[1:], secondParts[1:])
	assert.Equal(t, first.Checksum, second.Checksum)
}

func TestProcessImage_DifferentPixelsDifferentContent(t *testing.T) {
	ctx := rcontext.Initial()

	first, err := ProcessImage(ctx, makeTestPng(t, 0), "", "https://example.com/a.jpg", 1)
	require.NoError(t, err)
	second, err := ProcessImage(ctx, makeTestPng(t, 200), "", "https://example.com/b.jpg", 1)
	require.NoError(t, err)

	assert.NotEqual(t, first.Checksum, second.Checksum)
	assert.NotEqual(t, first.Iscc, second.Iscc)
}

func TestProcessImage_ZeroTimestampDefaultsToNow(t *testing.T) {
	ctx := rcontext.Initial()

	record, err := ProcessImage(ctx, makeTestPng(t, 0), "", "https://example.com/a.jpg", 0)
	require.NoError(t, err)
	assert.Greater(t, record.Timestamp, int64(1600000000))
}
