package capture

import (
	"bytes"
	"image"
	"image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/screenlens/screenlens/internal/fault"
)

// EncodePNG serializes a result at full resolution. Fast mode uses the
// quickest compression level; otherwise the encoder default applies.
func EncodePNG(res Result, fast bool) ([]byte, error) {
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if fast {
		enc.CompressionLevel = png.BestSpeed
	}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, res.Image); err != nil {
		return nil, fault.Wrap(fault.EncodingFailure, err,
			"PNG encoding of screen %d failed", res.Index)
	}
	return buf.Bytes(), nil
}

// downsample scales img so its longest edge is at most maxDim, preserving
// aspect ratio. Images already within bounds are returned untouched.
func downsample(img *image.RGBA, maxDim int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	ratio := float64(maxDim) / float64(w)
	if h > w {
		ratio = float64(maxDim) / float64(h)
	}
	nw, nh := int(float64(w)*ratio), int(float64(h)*ratio)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, xdraw.Over, nil)
	return scaled
}
