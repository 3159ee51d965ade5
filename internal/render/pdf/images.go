package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
)

// MaxImagePixels bounds the longest side of an embedded raster.
const MaxImagePixels = 1024

// ErrEmptyImage is returned for images without data or without area.
var ErrEmptyImage = errors.New("empty image")

// Prepared is an image re-encoded as an 8-bit non-interlaced PNG that the
// PDF writer accepts.
type Prepared struct {
	PNG    []byte
	Width  int
	Height int
}

// PrepareImage decodes data in any registered raster format or SVG, limits its
// size to maxPixels on the longest side and re-encodes it as PNG.
func PrepareImage(data []byte, maxPixels int) (*Prepared, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	var (
		img image.Image
		err error
	)
	if isSVG(data) {
		img, err = rasterizeSVG(data, maxPixels)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return EncodeImage(img, maxPixels)
}

// EncodeImage converts img to NRGBA, downscales it when needed and encodes it.
func EncodeImage(img image.Image, maxPixels int) (*Prepared, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}

	w, h := fitPixels(b.Dx(), b.Dy(), maxPixels)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return &Prepared{PNG: buf.Bytes(), Width: w, Height: h}, nil
}

func isSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg"))
}

func rasterizeSVG(data []byte, maxPixels int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, err
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, ErrEmptyImage
	}
	w, h := fitPixels(int(icon.ViewBox.W), int(icon.ViewBox.H), maxPixels)

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return rgba, nil
}

// fitPixels shrinks w x h so the longest side is at most maxPixels.
func fitPixels(w, h, maxPixels int) (int, int) {
	if maxPixels <= 0 || (w <= maxPixels && h <= maxPixels) {
		return w, h
	}
	if w >= h {
		return maxPixels, max(1, h*maxPixels/w)
	}
	return max(1, w*maxPixels/h), maxPixels
}
