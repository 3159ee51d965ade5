package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/gompdf/quotepdf/internal/layout"
)

// FpdfSurface is a Surface writing a PDF with the fpdf core fonts.
type FpdfSurface struct {
	pdf    *fpdf.Fpdf
	height float64
	images map[string]bool
}

// NewFpdfSurface starts a document of the geometry's page size with one
// empty page.
func NewFpdfSurface(g layout.Geometry, options RenderOptions) *FpdfSurface {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(options.Compress)
	pdf.SetTitle(options.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetKeywords(options.Keywords, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetProducer(options.Producer, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)

	return &FpdfSurface{
		pdf:    pdf,
		height: g.PageHeight,
		images: make(map[string]bool),
	}
}

// StringWidth measures s in f using the core font metrics.
func (s *FpdfSurface) StringWidth(f layout.Font, str string) float64 {
	s.setFont(f)
	return s.pdf.GetStringWidth(toWinAnsi(str))
}

func (s *FpdfSurface) Text(x, y float64, f layout.Font, c layout.Color, str string) {
	if str == "" {
		return
	}
	s.setFont(f)
	s.pdf.SetTextColor(c.R, c.G, c.B)
	s.pdf.Text(x, s.height-y, toWinAnsi(str))
}

func (s *FpdfSurface) Rect(x, y, w, h float64, st RectStyle) {
	style := ""
	if st.Fill {
		s.pdf.SetFillColor(st.FillColor.R, st.FillColor.G, st.FillColor.B)
		style += "F"
	}
	if st.Stroke {
		s.pdf.SetDrawColor(st.Color.R, st.Color.G, st.Color.B)
		s.pdf.SetLineWidth(lineWidth(st.LineWidth))
		style += "D"
	}
	if style == "" {
		return
	}
	s.pdf.Rect(x, s.height-y-h, w, h, style)
}

func (s *FpdfSurface) Line(x1, y1, x2, y2, width float64, c layout.Color) {
	s.pdf.SetDrawColor(c.R, c.G, c.B)
	s.pdf.SetLineWidth(lineWidth(width))
	s.pdf.Line(x1, s.height-y1, x2, s.height-y2)
}

// Image registers png under name on first use and draws it.
func (s *FpdfSurface) Image(name string, png []byte, x, y, w, h float64) error {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	if !s.images[name] {
		s.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
		if s.pdf.Err() {
			return fmt.Errorf("failed to register image %s: %w", name, s.pdf.Error())
		}
		s.images[name] = true
	}
	s.pdf.ImageOptions(name, x, s.height-y-h, w, h, false, opts, 0, "")
	return s.pdf.Error()
}

func (s *FpdfSurface) NewPage() {
	s.pdf.AddPage()
}

func (s *FpdfSurface) PageCount() int {
	return s.pdf.PageCount()
}

// Finalize closes the document and returns its bytes.
func (s *FpdfSurface) Finalize() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *FpdfSurface) setFont(f layout.Font) {
	family := f.Family
	if family == "" {
		family = "Helvetica"
	}
	size := f.Size
	if size <= 0 {
		size = 9
	}
	s.pdf.SetFont(family, f.Style, size)
}

func lineWidth(w float64) float64 {
	if w <= 0 {
		return 0.5
	}
	return w
}

// toWinAnsi converts UTF-8 to the cp1252 bytes the core fonts expect.
// Runes outside the code page become '?'.
func toWinAnsi(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
