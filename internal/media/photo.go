package media

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/facuperezm/barberia-sub000/internal/errs"
)

const (
	// MaxUploadBytes caps the multipart photo before decoding.
	MaxUploadBytes = 5 << 20

	maxSide     = 512
	webpQuality = 80
)

// ProcessPhoto decodes a JPEG, PNG or WebP image, shrinks it to fit a
// maxSide square keeping the aspect ratio, and re-encodes it as WebP.
func ProcessPhoto(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(io.LimitReader(r, MaxUploadBytes))
	if err != nil {
		return nil, errs.Wrap(err, "decode photo")
	}

	dst := resize(src, maxSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, errs.Wrap(err, "encode webp")
	}
	return buf.Bytes(), nil
}

func resize(src image.Image, side int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= side && h <= side {
		return src
	}

	if w >= h {
		h = h * side / w
		w = side
	} else {
		w = w * side / h
		h = side
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
