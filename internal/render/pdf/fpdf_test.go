package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/quotepdf/internal/layout"
)

func TestToWinAnsi(t *testing.T) {
	assert.Equal(t, "plain", toWinAnsi("plain"))
	assert.Equal(t, "\x80 \xe0 ?", toWinAnsi("€ à ✓"))
}

func TestFpdfSurfaceProducesPDF(t *testing.T) {
	g := layout.DefaultGeometry()
	s := NewFpdfSurface(g, RenderOptions{Title: "Preventivo", Author: "MITO Srl", Creator: "quotepdf"})
	font := layout.Font{Family: "Helvetica", Size: 9}

	short := s.StringWidth(font, "Q.tà")
	long := s.StringWidth(font, "Quantità ordinata")
	assert.Greater(t, short, 0.0)
	assert.Greater(t, long, short)
	assert.Greater(t, s.StringWidth(layout.Font{Family: "Helvetica", Style: "B", Size: 18}, "Q.tà"), short)

	s.Text(40, 800, font, layout.Black, "Prezzo € 100,00")
	s.Rect(40, 700, 100, 20, RectStyle{Fill: true, FillColor: layout.LightGray, Stroke: true, Color: layout.MidGray})
	s.Line(40, 690, 200, 690, 0.3, layout.MidGray)

	prepared, err := EncodeImage(image.NewNRGBA(image.Rect(0, 0, 4, 4)), 0)
	require.NoError(t, err)
	require.NoError(t, s.Image("logo", prepared.PNG, 40, 600, 40, 40))

	s.NewPage()
	require.NoError(t, s.Image("logo", prepared.PNG, 40, 600, 40, 40), "registered images are reused")
	assert.Equal(t, 2, s.PageCount())

	out, err := s.Finalize()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPrepareImageDownscales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 100))
	src.Set(10, 10, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	p, err := PrepareImage(buf.Bytes(), 200)
	require.NoError(t, err)
	assert.Equal(t, 200, p.Width)
	assert.Equal(t, 50, p.Height)

	cfg, err := png.DecodeConfig(bytes.NewReader(p.PNG))
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Width)
}

func TestPrepareImageSVG(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 40 20" width="40" height="20">
<rect x="0" y="0" width="40" height="20" fill="#c00"/></svg>`

	p, err := PrepareImage([]byte(svg), MaxImagePixels)
	require.NoError(t, err)
	assert.Equal(t, 40, p.Width)
	assert.Equal(t, 20, p.Height)
}

func TestPrepareImageErrors(t *testing.T) {
	_, err := PrepareImage(nil, 0)
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = PrepareImage([]byte("GIF89a but not really"), 0)
	assert.Error(t, err)
}

func TestPrepareQR(t *testing.T) {
	p, err := PrepareQR("https://pay.example.com/q/17")
	require.NoError(t, err)
	assert.Equal(t, qrPixels, p.Width)
	assert.Equal(t, qrPixels, p.Height)
}
