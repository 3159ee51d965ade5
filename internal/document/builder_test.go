package document

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/quotepdf/internal/layout"
	"github.com/gompdf/quotepdf/internal/record"
	"github.com/gompdf/quotepdf/internal/render/pdf"
)

type drawn struct {
	page int
	s    string
}

type fakeSurface struct {
	page        int
	texts       []drawn
	finalizeErr error
}

func (f *fakeSurface) StringWidth(font layout.Font, s string) float64 {
	return float64(utf8.RuneCountInString(s)) * font.Size * 0.5
}

func (f *fakeSurface) Text(_, _ float64, _ layout.Font, _ layout.Color, s string) {
	f.texts = append(f.texts, drawn{page: f.page, s: s})
}

func (f *fakeSurface) Rect(_, _, _, _ float64, _ pdf.RectStyle) {}
func (f *fakeSurface) Line(_, _, _, _, _ float64, _ layout.Color) {}
func (f *fakeSurface) Image(string, []byte, float64, float64, float64, float64) error {
	return nil
}
func (f *fakeSurface) NewPage()       { f.page++ }
func (f *fakeSurface) PageCount() int { return f.page }

func (f *fakeSurface) Finalize() ([]byte, error) {
	if f.finalizeErr != nil {
		return nil, f.finalizeErr
	}
	return []byte("%PDF-fake"), nil
}

func newFake() *fakeSurface { return &fakeSurface{page: 1} }

func newBuilder(t *testing.T, name string) *Builder {
	t.Helper()
	tpl, err := layout.Builtin(name, nil)
	require.NoError(t, err)
	b, err := NewBuilder(tpl, nil, nil)
	require.NoError(t, err)
	return b
}

func rows(n int) []record.Record {
	out := make([]record.Record, n)
	for i := range out {
		out[i] = record.Record{
			"cod":   fmt.Sprintf("R%03d", i+1),
			"descr": "Fornitura e posa in opera di materiale vario con descrizione estesa su più righe",
			"qty":   "1",
			"total": "€ 10,00",
		}
	}
	return out
}

var pageLabel = regexp.MustCompile(`^Pagina (\d+) di (\d+)$`)

func TestBuildEmitsEachPageLabelOnceInOrder(t *testing.T) {
	for _, name := range layout.TemplateNames() {
		t.Run(name, func(t *testing.T) {
			b := newBuilder(t, name)
			s := newFake()
			payload := record.Payload{Meta: record.Record{}, Rows: rows(120)}

			planned := len(b.Plan(newFake(), payload))
			require.Greater(t, planned, 1)

			_, err := b.Build(s, payload)
			require.NoError(t, err)
			assert.Equal(t, planned, s.PageCount())

			var seen []int
			for _, d := range s.texts {
				m := pageLabel.FindStringSubmatch(d.s)
				if m == nil {
					continue
				}
				i, _ := strconv.Atoi(m[1])
				n, _ := strconv.Atoi(m[2])
				assert.Equal(t, planned, n)
				assert.Equal(t, i, d.page, "label drawn on its own page")
				seen = append(seen, i)
			}
			want := make([]int, planned)
			for i := range want {
				want[i] = i + 1
			}
			assert.Equal(t, want, seen)
		})
	}
}

func TestBuildKeepsEveryRowInOrder(t *testing.T) {
	b := newBuilder(t, "classic")
	s := newFake()
	input := rows(75)

	_, err := b.Build(s, record.Payload{Rows: input})
	require.NoError(t, err)

	var codes []string
	for _, d := range s.texts {
		if len(d.s) == 4 && d.s[0] == 'R' {
			codes = append(codes, d.s)
		}
	}
	require.Len(t, codes, len(input))
	for i, r := range input {
		assert.Equal(t, record.Code.Resolve(r), codes[i])
	}
}

func TestBuildZeroRecords(t *testing.T) {
	b := newBuilder(t, "classic")
	s := newFake()

	out, err := b.Build(s, record.Payload{})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)
	assert.Equal(t, 1, s.PageCount())

	headers := 0
	for _, d := range s.texts {
		if d.s == "Descrizione" {
			headers++
		}
	}
	assert.Equal(t, 1, headers)
	assert.Contains(t, s.texts, drawn{page: 1, s: "Pagina 1 di 1"})
}

func TestBuildFinalizeFailureIsFatal(t *testing.T) {
	b := newBuilder(t, "classic")
	cause := errors.New("disk full")

	_, err := b.Build(&fakeSurface{page: 1, finalizeErr: cause}, record.Sample())
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "finalize", be.Op)
}

func TestBuildWithoutSurface(t *testing.T) {
	_, err := newBuilder(t, "classic").Build(nil, record.Sample())
	assert.ErrorIs(t, err, ErrNoSurface)
}

func TestNewBuilderRejectsInvalidTemplate(t *testing.T) {
	tpl, err := layout.Builtin("classic", nil)
	require.NoError(t, err)
	tpl.Columns[1].Wrap = false

	_, err = NewBuilder(tpl, nil, nil)
	assert.ErrorIs(t, err, layout.ErrInvalidTemplate)

	_, err = NewBuilder(nil, nil, nil)
	assert.Error(t, err)
}

func TestBuildRealPDF(t *testing.T) {
	b := newBuilder(t, "detailed")
	payload := record.Payload{
		Meta: record.Record{"cliente": "Rossi Srl", "totale": "€ 1.000,00"},
		Rows: rows(60),
	}
	s := pdf.NewFpdfSurface(b.Template().Geometry, pdf.RenderOptions{Title: "Preventivo"})

	out, err := b.Build(s, payload)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	planned := b.Plan(pdf.NewFpdfSurface(b.Template().Geometry, pdf.RenderOptions{}), payload)
	assert.Equal(t, len(planned), s.PageCount())
}
