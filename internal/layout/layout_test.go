package layout

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/quotepdf/internal/record"
)

// runeMeasurer measures one point per rune regardless of font.
type runeMeasurer struct{}

func (runeMeasurer) StringWidth(_ Font, s string) float64 {
	return float64(utf8.RuneCountInString(s))
}

func TestDefaultGeometryRegions(t *testing.T) {
	g := DefaultGeometry()
	require.NoError(t, g.Validate())

	assert.InDelta(t, 841.89-38*MM, g.BodyTop(), 1e-9)
	assert.InDelta(t, 31*MM, g.BodyBottom(), 1e-9)
	assert.InDelta(t, 595.28-24*MM, g.ContentWidth(), 1e-9)
}

func TestGeometryValidateRejectsCrowdedPage(t *testing.T) {
	g := DefaultGeometry()
	g.HeaderHeight = 500
	g.FooterHeight = 300

	err := g.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestLookupPageSize(t *testing.T) {
	ps, ok := LookupPageSize("letter")
	require.True(t, ok)
	assert.Equal(t, 612.0, ps.Width)

	_, ok = LookupPageSize("B7")
	assert.False(t, ok)
}

func TestVisibility(t *testing.T) {
	cases := []struct {
		v                   Visibility
		first, middle, last bool
	}{
		{Always, true, true, true},
		{FirstPage, true, false, false},
		{LastPage, false, false, true},
		{MiddlePages, false, true, false},
	}
	for _, c := range cases {
		t.Run(c.v.String(), func(t *testing.T) {
			assert.Equal(t, c.first, c.v.Visible(NewPageContext(1, 3)))
			assert.Equal(t, c.middle, c.v.Visible(NewPageContext(2, 3)))
			assert.Equal(t, c.last, c.v.Visible(NewPageContext(3, 3)))
		})
	}

	single := NewPageContext(1, 1)
	assert.True(t, single.IsFirst)
	assert.True(t, single.IsLast)
	assert.False(t, MiddlePages.Visible(single))
}

func TestParseVisibility(t *testing.T) {
	v, err := ParseVisibility("last")
	require.NoError(t, err)
	assert.Equal(t, LastPage, v)

	_, err = ParseVisibility("sometimes")
	assert.Error(t, err)
}

func TestBuiltinTemplates(t *testing.T) {
	for _, name := range TemplateNames() {
		t.Run(name, func(t *testing.T) {
			tpl, err := Builtin(name, nil)
			require.NoError(t, err)
			assert.Equal(t, name, tpl.Name)
			assert.GreaterOrEqual(t, tpl.WrapColumn(), 0)
			assert.LessOrEqual(t, tpl.TableWidth(), tpl.Geometry.ContentWidth()+0.01)
			assert.Equal(t, "Pagina 2 di 5", fmt.Sprintf(tpl.PageLabel, 2, 5))
		})
	}

	_, err := Builtin("fancy", nil)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestClassicColumns(t *testing.T) {
	tpl, err := Builtin("", nil)
	require.NoError(t, err)
	require.Len(t, tpl.Columns, 5)

	labels := make([]string, len(tpl.Columns))
	for i, c := range tpl.Columns {
		labels[i] = c.Label
	}
	assert.Equal(t, []string{"Cod.", "Descrizione", "Q.tà", "Prezzo", "Totale"}, labels)
	assert.InDelta(t, 95*MM, tpl.Columns[1].Width, 1e-9)
	assert.Equal(t, AlignRight, tpl.Columns[2].Align)
	assert.Equal(t, AlignLeft, tpl.Columns[0].Align)
	assert.Equal(t, 1, tpl.WrapColumn())
}

func TestDetailedBoxes(t *testing.T) {
	tpl, err := Builtin("detailed", nil)
	require.NoError(t, err)

	rec, ok := tpl.Box(BoxRecipient)
	require.True(t, ok)
	assert.Equal(t, FirstPage, rec.Visibility)

	tot, ok := tpl.Box(BoxTotals)
	require.True(t, ok)
	assert.Equal(t, LastPage, tot.Visibility)
	assert.LessOrEqual(t, tot.Top(), tpl.Geometry.BodyBottom())
}

func TestTemplateValidateRejectsBoxInBody(t *testing.T) {
	tpl, err := Builtin("classic", nil)
	require.NoError(t, err)

	bad := tpl.Clone()
	bad.Boxes = append(bad.Boxes, Box{Kind: BoxNotes, X: 40, Y: 400, W: 100, H: 40})
	assert.ErrorIs(t, bad.Validate(), ErrInvalidTemplate)
	assert.NoError(t, tpl.Validate(), "clone must not share boxes")
}

func narrowTemplate(t *testing.T) *Template {
	t.Helper()
	tpl, err := Builtin("classic", nil)
	require.NoError(t, err)
	tpl.Columns[1].Width = 20 + 2*tpl.Geometry.CellPadding
	return tpl
}

func words(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = fmt.Sprintf("w%02d", i+1)
	}
	return strings.Join(w, " ")
}

func TestRowModelExtent(t *testing.T) {
	tpl := narrowTemplate(t)
	rm := NewRowModel(tpl, runeMeasurer{})
	g := tpl.Geometry

	assert.Equal(t, g.MinRowHeight, rm.Extent(0))
	assert.Equal(t, g.MinRowHeight, rm.Extent(1))
	assert.InDelta(t, 2*g.Leading+g.RowPadding, rm.Extent(2), 1e-9)
	assert.InDelta(t, 4*g.Leading+g.RowPadding, rm.Extent(4), 1e-9)
}

func TestRowModelLayout(t *testing.T) {
	tpl := narrowTemplate(t)
	rm := NewRowModel(tpl, runeMeasurer{})
	assert.Equal(t, 20.0, rm.WrapWidth())

	row := rm.Layout(record.Record{"descrizione": words(10)})
	assert.Equal(t, []string{"w01 w02 w03 w04 w05", "w06 w07 w08 w09 w10"}, row.Lines)
	assert.False(t, row.Truncated)
	assert.Equal(t, rm.Extent(2), row.Extent)

	long := rm.Layout(record.Record{"descr": words(25)})
	require.Len(t, long.Lines, 4)
	assert.True(t, long.Truncated)
	assert.Equal(t, "w16 w17 w18 w19 w20…", long.Lines[3])
	assert.Equal(t, rm.Extent(4), long.Extent)

	empty := rm.Layout(record.Record{"cod": "A1"})
	assert.Empty(t, empty.Lines)
	assert.Equal(t, tpl.Geometry.MinRowHeight, empty.Extent)
}

func TestRowModelSilentTruncation(t *testing.T) {
	tpl := narrowTemplate(t)
	tpl.TruncationMarker = ""
	rm := NewRowModel(tpl, runeMeasurer{})

	row := rm.Layout(record.Record{"descr": words(25)})
	require.Len(t, row.Lines, 4)
	assert.Equal(t, "w16 w17 w18 w19 w20", row.Lines[3])
}

func TestRowModelDeterministic(t *testing.T) {
	tpl := narrowTemplate(t)
	records := []record.Record{
		{"descr": words(3)},
		{"descr": "<b>Posa</b> in opera " + words(12)},
		{"descr": words(40)},
	}
	first := NewRowModel(tpl, runeMeasurer{}).LayoutAll(records)
	second := NewRowModel(tpl, runeMeasurer{}).LayoutAll(records)
	assert.Equal(t, first, second)
}

func TestFitImage(t *testing.T) {
	dw, dh, dx, dy := FitImage(200, 100, 100, 100)
	assert.Equal(t, 100.0, dw)
	assert.Equal(t, 50.0, dh)
	assert.Equal(t, 0.0, dx)
	assert.Equal(t, 25.0, dy)

	dw, dh, _, _ = FitImage(0, 10, 100, 100)
	assert.Zero(t, dw)
	assert.Zero(t, dh)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#1a2B3c")
	require.NoError(t, err)
	assert.Equal(t, Color{0x1a, 0x2b, 0x3c}, c)

	c, err = ParseColor("#fff")
	require.NoError(t, err)
	assert.Equal(t, White, c)

	c, err = ParseColor("rgb(10, 300, -4)")
	require.NoError(t, err)
	assert.Equal(t, Color{10, 255, 0}, c)

	_, err = ParseColor("teal")
	assert.Error(t, err)
}

func TestClassicLogoClearsHeaderDetails(t *testing.T) {
	tpl, err := Builtin("classic", nil)
	require.NoError(t, err)

	logo, ok := tpl.Box(BoxLogo)
	require.True(t, ok)
	detailsTop := tpl.Geometry.Top() - tpl.DetailsOffset + tpl.Fonts.Header.Size
	assert.Greater(t, logo.Y, detailsTop, "logo must sit above the client/number/date line")
	assert.LessOrEqual(t, logo.Top(), tpl.Geometry.Top())
}

func TestDetailedColumnsCarryUnitAndDiscount(t *testing.T) {
	tpl, err := Builtin("detailed", nil)
	require.NoError(t, err)

	byLabel := map[string]Column{}
	for _, c := range tpl.Columns {
		byLabel[c.Label] = c
	}
	assert.Equal(t, "unit", byLabel["U.M."].Field.Name)
	assert.Equal(t, "discount", byLabel["Sconto"].Field.Name)
	assert.Equal(t, AlignRight, byLabel["Sconto"].Align)
	assert.InDelta(t, tpl.Geometry.ContentWidth(), tpl.TableWidth(), 1e-6)
}

func TestSetVisibility(t *testing.T) {
	tpl, err := Builtin("detailed", nil)
	require.NoError(t, err)

	require.NoError(t, tpl.SetVisibility(BoxLogo, FirstPage))
	logo, _ := tpl.Box(BoxLogo)
	assert.Equal(t, FirstPage, logo.Visibility)

	compact, err := Builtin("compact", nil)
	require.NoError(t, err)
	assert.ErrorIs(t, compact.SetVisibility(BoxLogo, Always), ErrInvalidTemplate)
}
