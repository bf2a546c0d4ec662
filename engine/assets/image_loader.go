package assets

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a decoded raster with tightly packed rows (stride == Width*Channels).
// Rows are stored bottom-up to match OpenGL's bottom-left texture origin.
type Image struct {
	Width, Height int
	Channels      int
	Pix           []byte
}

// Stride is the byte length of one row.
func (im Image) Stride() int { return im.Width * im.Channels }

// LoadImage opens and decodes the image at path. See DecodeImage.
func LoadImage(path string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	im, err := DecodeImage(f)
	if err != nil {
		return Image{}, fmt.Errorf("decode %q: %w", path, err)
	}
	return im, nil
}

// DecodeImage decodes any registered format (png, jpeg, gif, bmp, tiff, webp).
// The channel count follows the source: grey images give 1, opaque color
// images give 3, anything with transparency gives 4. The result is flipped
// vertically.
func DecodeImage(r io.Reader) (Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return Image{}, err
	}
	im := FromImage(src)
	im.FlipVertical()
	return im, nil
}

// FromImage packs src into an Image without flipping.
func FromImage(src image.Image) Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	ch := channelsOf(src)

	if ch == 1 {
		gray := image.NewGray(image.Rect(0, 0, w, h))
		draw.Draw(gray, gray.Bounds(), src, b.Min, draw.Src)
		return Image{Width: w, Height: h, Channels: 1, Pix: repack(gray.Pix, gray.Stride, w, h, 1)}
	}

	// Straight (non-premultiplied) alpha is what glTexImage2D expects.
	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	if ch == 4 {
		return Image{Width: w, Height: h, Channels: 4, Pix: repack(nrgba.Pix, nrgba.Stride, w, h, 4)}
	}

	out := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := 0; x < w; x++ {
			copy(out[(y*w+x)*3:(y*w+x)*3+3], row[x*4:x*4+3])
		}
	}
	return Image{Width: w, Height: h, Channels: 3, Pix: out}
}

// FlipVertical reverses row order in place.
func (im *Image) FlipVertical() {
	stride := im.Stride()
	if stride == 0 {
		return
	}
	tmp := make([]byte, stride)
	for top, bot := 0, im.Height-1; top < bot; top, bot = top+1, bot-1 {
		a := im.Pix[top*stride : (top+1)*stride]
		b := im.Pix[bot*stride : (bot+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

func channelsOf(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

func repack(src []byte, srcStride, w, h, ch int) []byte {
	rowLen := w * ch
	if srcStride == rowLen {
		return src[:rowLen*h]
	}
	out := make([]byte, rowLen*h)
	for y := 0; y < h; y++ {
		copy(out[y*rowLen:(y+1)*rowLen], src[y*srcStride:y*srcStride+rowLen])
	}
	return out
}
