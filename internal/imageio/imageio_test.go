package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.SetNRGBA(1, 1, color.NRGBA{10, 200, 30, 255})
	return img
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(".WEBP")
	require.NoError(t, err)
	assert.Equal(t, WebP, f)

	f, err = FormatFromPath("out/bolt.tga")
	require.NoError(t, err)
	assert.Equal(t, TGA, f)

	_, err = ParseFormat("gif")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestEncodePNGAndTGA(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample(), PNG))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())

	buf.Reset()
	require.NoError(t, Encode(&buf, sample(), TGA))
	img, err = tga.Decode(&buf)
	require.NoError(t, err)
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, [3]uint32{10, 200, 30}, [3]uint32{r >> 8, g >> 8, b >> 8})
}

func TestEncodeWebP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample(), WebP))
	data := buf.Bytes()
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "bolt.png")
	require.NoError(t, WriteFile(path, sample(), PNG))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	err = WriteFile(path, sample(), Format("bmp"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}
