package utils

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

var ErrUnsupportedImage = errors.New("unsupported image format (jpeg/png/webp)")

// NormalizeToJPG decodes a jpeg, png or webp image, applies its EXIF
// orientation, scales it down to maxWidth (when > 0) and re-encodes it as JPEG.
func NormalizeToJPG(input []byte, maxWidth int, quality int) ([]byte, error) {
	if len(input) == 0 {
		return nil, errors.New("empty image")
	}
	if quality <= 0 || quality > 100 {
		quality = 85
	}

	img, err := decodeImage(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}

	img = applyOrientation(img, readEXIFOrientation(bytes.NewReader(input)))

	if maxWidth > 0 {
		img = resizeMaxWidth(img, maxWidth)
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func decodeImage(r *bytes.Reader) (image.Image, error) {
	decoders := []func(io.Reader) (image.Image, error){jpeg.Decode, png.Decode, webp.Decode}
	for _, decode := range decoders {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		if img, err := decode(r); err == nil {
			return img, nil
		}
	}
	return nil, ErrUnsupportedImage
}

func readEXIFOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	ori, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return ori
}

// applyOrientation undoes EXIF orientation ori (1..8) so the image displays upright.
func applyOrientation(src image.Image, ori int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	// each entry maps a source pixel (x, y) to its destination
	var dstW, dstH int
	var to func(x, y int) (int, int)
	switch ori {
	case 2: // mirror horizontal
		dstW, dstH = w, h
		to = func(x, y int) (int, int) { return w - 1 - x, y }
	case 3: // rotate 180
		dstW, dstH = w, h
		to = func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }
	case 4: // mirror vertical
		dstW, dstH = w, h
		to = func(x, y int) (int, int) { return x, h - 1 - y }
	case 5: // transpose
		dstW, dstH = h, w
		to = func(x, y int) (int, int) { return y, x }
	case 6: // rotate 90 CW
		dstW, dstH = h, w
		to = func(x, y int) (int, int) { return h - 1 - y, x }
	case 7: // transverse
		dstW, dstH = h, w
		to = func(x, y int) (int, int) { return h - 1 - y, w - 1 - x }
	case 8: // rotate 90 CCW
		dstW, dstH = h, w
		to = func(x, y int) (int, int) { return y, w - 1 - x }
	default:
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := to(x, y)
			dst.Set(dx, dy, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func resizeMaxWidth(src image.Image, maxW int) image.Image {
	b := src.Bounds()
	w := b.Dx()
	h := b.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxW {
		return src
	}

	scale := float64(maxW) / float64(w)
	newW := maxW
	newH := int(math.Round(float64(h) * scale))
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
