package layout

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gompdf/quotepdf/internal/record"
)

// Align is the horizontal alignment of a cell.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Font selects one of the core PDF fonts.
type Font struct {
	Family string
	Style  string // "", "B", "I" or "BI"
	Size   float64
}

// Measurer reports the rendered width of s in f, in points.
type Measurer interface {
	StringWidth(f Font, s string) float64
}

// Column is one table column. Exactly one column of a template wraps.
type Column struct {
	Field record.Field
	Label string
	Width float64
	Align Align
	Wrap  bool
}

// Fonts used by a template.
type Fonts struct {
	Title       Font
	Header      Font
	TableHeader Font
	Body        Font
	BoxTitle    Font
	Box         Font
	Footer      Font
}

// Template describes everything drawn around the rows: geometry, columns,
// fonts, conditional boxes and label strings.
type Template struct {
	Name     string
	Geometry Geometry
	Columns  []Column
	Fonts    Fonts
	Boxes    []Box

	// HeaderDetails draws the client and date line under the title.
	HeaderDetails bool
	// HeaderPageLabel draws ShortPageLabel at the right of the title.
	HeaderPageLabel bool
	PageLabel       string // "page i of N", printf with index and total
	ShortPageLabel  string // printf with index

	// Baselines relative to Geometry.Top() and Geometry.MarginBottom.
	TitleOffset   float64
	DetailsOffset float64
	FooterOffset  float64

	TableHeaderFill Color
	RuleColor       Color
	RowRules        bool

	// TruncationMarker is appended to cut cells. Empty keeps silent truncation.
	TruncationMarker string

	// Footer texts used when the document sets none.
	FooterLeft  string
	FooterRight string

	Labels map[string]string
}

// Label returns the template label for key, or key itself.
func (t *Template) Label(key string) string {
	if s, ok := t.Labels[key]; ok {
		return s
	}
	return key
}

// WrapColumn returns the index of the long-text column.
func (t *Template) WrapColumn() int {
	for i, c := range t.Columns {
		if c.Wrap {
			return i
		}
	}
	return -1
}

// TableWidth is the sum of the column widths.
func (t *Template) TableWidth() float64 {
	var w float64
	for _, c := range t.Columns {
		w += c.Width
	}
	return w
}

// Validate checks the template against its geometry.
func (t *Template) Validate() error {
	if err := t.Geometry.Validate(); err != nil {
		return err
	}

	var errs []error
	if len(t.Columns) == 0 {
		errs = append(errs, errors.New("no columns"))
	}
	wraps := 0
	for _, c := range t.Columns {
		if c.Width <= 2*t.Geometry.CellPadding {
			errs = append(errs, fmt.Errorf("column %q is narrower than its padding", c.Label))
		}
		if c.Wrap {
			wraps++
		}
	}
	if wraps != 1 {
		errs = append(errs, fmt.Errorf("want exactly one wrapping column, have %d", wraps))
	}
	if w, cw := t.TableWidth(), t.Geometry.ContentWidth(); w > cw+0.01 {
		errs = append(errs, fmt.Errorf("columns are %.2fpt wide, content is %.2fpt", w, cw))
	}

	g := t.Geometry
	headerBand := [2]float64{g.BodyTop() + g.Gap, g.Top()}
	footerBand := [2]float64{g.MarginBottom, g.BodyBottom() - g.Gap}
	for _, b := range t.Boxes {
		if b.W <= 0 || b.H <= 0 {
			errs = append(errs, fmt.Errorf("box %s has no area", b.Kind))
			continue
		}
		if !b.Within(headerBand[0], headerBand[1]) && !b.Within(footerBand[0], footerBand[1]) {
			errs = append(errs, fmt.Errorf("box %s overlaps the body region", b.Kind))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w %q: %w", ErrInvalidTemplate, t.Name, errors.Join(errs...))
	}
	return nil
}

// Clone returns a deep copy safe to modify.
func (t *Template) Clone() *Template {
	c := *t
	c.Columns = append([]Column(nil), t.Columns...)
	c.Boxes = append([]Box(nil), t.Boxes...)
	c.Labels = make(map[string]string, len(t.Labels))
	for k, v := range t.Labels {
		c.Labels[k] = v
	}
	return &c
}

// SetVisibility changes the visibility of every box of the given kind.
func (t *Template) SetVisibility(kind BoxKind, v Visibility) error {
	found := false
	for i := range t.Boxes {
		if t.Boxes[i].Kind == kind {
			t.Boxes[i].Visibility = v
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w %q: no %s box", ErrInvalidTemplate, t.Name, kind)
	}
	return nil
}

// Box returns the first box of the given kind.
func (t *Template) Box(kind BoxKind) (Box, bool) {
	for _, b := range t.Boxes {
		if b.Kind == kind {
			return b, true
		}
	}
	return Box{}, false
}

var builtins = map[string]func(Geometry) *Template{
	"classic":  classic,
	"detailed": detailed,
	"compact":  compact,
}

// DefaultTemplate is the name used when none is configured.
const DefaultTemplate = "classic"

// TemplateNames lists the built-in templates.
func TemplateNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Builtin returns a fresh copy of a built-in template. A nil geometry selects
// the template's own default.
func Builtin(name string, g *Geometry) (*Template, error) {
	if name == "" {
		name = DefaultTemplate
	}
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	var geo Geometry
	if g != nil {
		geo = *g
	} else {
		geo = DefaultGeometryFor(name)
	}
	t := build(geo)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// DefaultGeometryFor returns the geometry a built-in template is designed for.
func DefaultGeometryFor(name string) Geometry {
	g := DefaultGeometry()
	switch name {
	case "detailed":
		g.HeaderHeight = 50 * MM
		g.FooterHeight = 35 * MM
	case "compact":
		g.MarginTop = 8 * MM
		g.MarginBottom = 8 * MM
		g.MarginLeft = 8 * MM
		g.MarginRight = 8 * MM
		g.HeaderHeight = 14 * MM
		g.FooterHeight = 20 * MM
		g.Gap = 3 * MM
		g.TableHeaderHeight = 6 * MM
		g.MinRowHeight = 6 * MM
		g.Leading = 3.5 * MM
		g.RowPadding = 2.5 * MM
	}
	return g
}

func defaultLabels() map[string]string {
	return map[string]string{
		"client":      "Cliente",
		"date":        "Data",
		"number":      "Numero",
		"reference":   "Rif.",
		"vat":         "P.IVA",
		"recipient":   "Destinatario",
		"document":    "Documento",
		"notes":       "Note",
		"subtotal":    "Imponibile",
		"tax":         "IVA",
		"total":       "Totale",
		"payment":     "Pagamento",
		"missing":     "-",
		"logo_error":  "[logo non disponibile]",
		"qr_error":    "[QR non disponibile]",
	}
}

func defaultFonts(size float64) Fonts {
	return Fonts{
		Title:       Font{Family: "Helvetica", Style: "B", Size: size + 3},
		Header:      Font{Family: "Helvetica", Size: size},
		TableHeader: Font{Family: "Helvetica", Style: "B", Size: size},
		Body:        Font{Family: "Helvetica", Size: size},
		BoxTitle:    Font{Family: "Helvetica", Style: "B", Size: size - 1},
		Box:         Font{Family: "Helvetica", Size: size - 1},
		Footer:      Font{Family: "Helvetica", Size: size - 1},
	}
}

// quoteColumns spreads the five quote columns over the content width,
// giving the description whatever the fixed columns leave.
func quoteColumns(g Geometry, code, qty, price, total float64) []Column {
	descr := g.ContentWidth() - code - qty - price - total
	return []Column{
		{Field: record.Code, Label: "Cod.", Width: code},
		{Field: record.Description, Label: "Descrizione", Width: descr, Wrap: true},
		{Field: record.Quantity, Label: "Q.tà", Width: qty, Align: AlignRight},
		{Field: record.Price, Label: "Prezzo", Width: price, Align: AlignRight},
		{Field: record.Total, Label: "Totale", Width: total, Align: AlignRight},
	}
}

// detailedColumns adds unit of measure and discount to the quote columns.
func detailedColumns(g Geometry) []Column {
	code, unit, qty, price, discount, total := 20*MM, 12*MM, 13*MM, 22*MM, 15*MM, 24*MM
	return []Column{
		{Field: record.Code, Label: "Cod.", Width: code},
		{Field: record.Description, Label: "Descrizione", Width: g.ContentWidth() - code - unit - qty - price - discount - total, Wrap: true},
		{Field: record.Unit, Label: "U.M.", Width: unit},
		{Field: record.Quantity, Label: "Q.tà", Width: qty, Align: AlignRight},
		{Field: record.Price, Label: "Prezzo", Width: price, Align: AlignRight},
		{Field: record.Discount, Label: "Sconto", Width: discount, Align: AlignRight},
		{Field: record.Total, Label: "Totale", Width: total, Align: AlignRight},
	}
}

func base(name string, g Geometry, fontSize float64) *Template {
	return &Template{
		Name:             name,
		Geometry:         g,
		Fonts:            defaultFonts(fontSize),
		PageLabel:        "Pagina %d di %d",
		ShortPageLabel:   "Pagina %d",
		TableHeaderFill:  LightGray,
		RuleColor:        MidGray,
		TruncationMarker: "…",
		FooterLeft:       "MITO Srl",
		FooterRight:      "www.mito.it",
		Labels:           defaultLabels(),
	}
}

// classic is the original quote: title, page number, client and date in the
// header, five columns, footer text and page count.
func classic(g Geometry) *Template {
	t := base("classic", g, 9)
	t.Columns = []Column{
		{Field: record.Code, Label: "Cod.", Width: 25 * MM},
		{Field: record.Description, Label: "Descrizione", Width: 95 * MM, Wrap: true},
		{Field: record.Quantity, Label: "Q.tà", Width: 15 * MM, Align: AlignRight},
		{Field: record.Price, Label: "Prezzo", Width: 25 * MM, Align: AlignRight},
		{Field: record.Total, Label: "Totale", Width: 25 * MM, Align: AlignRight},
	}
	if t.TableWidth() > g.ContentWidth() {
		t.Columns = quoteColumns(g, 25*MM, 15*MM, 25*MM, 25*MM)
	}
	t.HeaderDetails = true
	t.HeaderPageLabel = true
	t.TitleOffset = 10 * MM
	t.DetailsOffset = 18 * MM
	t.FooterOffset = 6 * MM
	t.Boxes = []Box{
		// clear of the details line at DetailsOffset
		{Kind: BoxLogo, X: g.PageWidth/2 - 20*MM, Y: g.Top() - 13*MM, W: 40 * MM, H: 12 * MM, Visibility: FirstPage},
	}
	return t
}

// detailed adds recipient and reference boxes on the first page and totals,
// notes and a payment QR code on the last page.
func detailed(g Geometry) *Template {
	t := base("detailed", g, 9)
	t.Columns = detailedColumns(g)
	t.HeaderPageLabel = true
	t.TitleOffset = 10 * MM
	t.FooterOffset = 4 * MM
	t.RowRules = true

	left, cw := g.MarginLeft, g.ContentWidth()
	half := cw/2 - 2*MM
	boxTop := g.BodyTop() + g.Gap
	footY := g.MarginBottom + 9*MM
	footH := g.BodyBottom() - g.Gap - footY
	t.Boxes = []Box{
		{Kind: BoxLogo, X: left + cw/2 - 25*MM, Y: g.Top() - 20*MM, W: 50 * MM, H: 18 * MM, Visibility: Always},
		{Kind: BoxReference, Title: "Documento", X: left, Y: boxTop, W: half, H: 24 * MM, Visibility: FirstPage, Border: true},
		{Kind: BoxRecipient, Title: "Destinatario", X: left + cw - half, Y: boxTop, W: half, H: 24 * MM, Visibility: FirstPage, Border: true},
		{Kind: BoxPaymentQR, X: left, Y: footY, W: footH, H: footH, Visibility: LastPage},
		{Kind: BoxNotes, Title: "Note", X: left + footH + 2*MM, Y: footY, W: cw - footH - 2*MM - 72*MM, H: footH, Visibility: LastPage, Border: true},
		{Kind: BoxTotals, X: left + cw - 70*MM, Y: footY, W: 70 * MM, H: footH, Visibility: LastPage, Border: true},
	}
	return t
}

// compact is a dense layout with smaller type and a totals box on the last page.
func compact(g Geometry) *Template {
	t := base("compact", g, 8)
	t.Columns = quoteColumns(g, 22*MM, 15*MM, 22*MM, 23*MM)
	t.HeaderDetails = true
	t.TitleOffset = 6 * MM
	t.DetailsOffset = 12 * MM
	t.FooterOffset = 3 * MM

	cw := g.ContentWidth()
	footY := g.MarginBottom + 7*MM
	t.Boxes = []Box{
		{Kind: BoxTotals, X: g.MarginLeft + cw - 60*MM, Y: footY, W: 60 * MM, H: g.BodyBottom() - g.Gap - footY, Visibility: LastPage},
	}
	return t
}
