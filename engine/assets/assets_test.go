package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestDecodePNGWithAlphaIsFlipped(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 128}) // top-left
	src.SetNRGBA(1, 1, color.NRGBA{0, 0, 255, 255}) // bottom-right

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	im, err := LoadImage(writeFile(t, "a.png", buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 2, im.Width)
	assert.Equal(t, 2, im.Height)
	assert.Equal(t, 4, im.Channels)
	require.Len(t, im.Pix, 16)

	// After the flip the original bottom row comes first.
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 255, 255}, im.Pix[0:8])
	assert.Equal(t, []byte{255, 0, 0, 128, 0, 0, 0, 0}, im.Pix[8:16])
}

func TestDecodeOpaqueBMPHasThreeChannels(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.Set(x, y, color.RGBA{uint8(x * 100), uint8(y * 100), 7, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, src))

	im, err := DecodeImage(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, im.Channels)
	assert.Equal(t, 6, im.Stride())
	require.Len(t, im.Pix, 12)
	// bottom row (y=1) first
	assert.Equal(t, []byte{0, 100, 7, 100, 100, 7}, im.Pix[0:6])
}

func TestDecodeJPEGHasThreeChannels(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, nil))

	im, err := DecodeImage(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, im.Channels)
	assert.Len(t, im.Pix, 4*4*3)
}

func TestDecodeGrayHasOneChannel(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 1))
	src.Pix = []byte{1, 2, 3}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	im, err := DecodeImage(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1, im.Channels)
	assert.Equal(t, []byte{1, 2, 3}, im.Pix)
}

func TestLoadImageErrors(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadImage(writeFile(t, "junk.png", []byte("not an image")))
	require.ErrorIs(t, err, image.ErrFormat)
}

func TestFlipVerticalOddHeight(t *testing.T) {
	im := Image{Width: 1, Height: 3, Channels: 1, Pix: []byte{1, 2, 3}}
	im.FlipVertical()
	assert.Equal(t, []byte{3, 2, 1}, im.Pix)
}

func TestLoadShaderPair(t *testing.T) {
	dir := t.TempDir()
	vp := filepath.Join(dir, "v.glsl")
	fp := filepath.Join(dir, "f.glsl")
	require.NoError(t, os.WriteFile(vp, []byte("#version 330 core\nvoid main(){}"), 0o644))
	require.NoError(t, os.WriteFile(fp, []byte("#version 330 core\nout vec4 c; void main(){c=vec4(1);}"), 0o644))

	vs, fs, err := LoadShaderPair(vp, fp)
	require.NoError(t, err)
	assert.Contains(t, vs, "void main")
	assert.Contains(t, fs, "out vec4")

	_, _, err = LoadShaderPair(vp, filepath.Join(dir, "nope.glsl"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.glsl")
	require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xfe}, 0o644))
	_, err = LoadShader(bad)
	require.Error(t, err)
}
