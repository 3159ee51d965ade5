package pdf

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/gompdf/quotepdf/internal/layout"
	"github.com/gompdf/quotepdf/internal/pagination"
	"github.com/gompdf/quotepdf/internal/record"
	"github.com/gompdf/quotepdf/internal/res"
	"github.com/gompdf/quotepdf/internal/text"
)

// Renderer draws one page of a quote from a template descriptor.
type Renderer struct {
	tpl    *layout.Template
	loader *res.Loader
	log    logrus.FieldLogger

	// LogoPath is drawn when the document carries no logo of its own.
	LogoPath string
}

// NewRenderer creates a renderer for template t. A nil loader disables
// file logos; a nil logger discards diagnostics.
func NewRenderer(t *layout.Template, loader *res.Loader, log logrus.FieldLogger) *Renderer {
	if loader == nil {
		loader = res.NewLoader("")
	}
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	return &Renderer{tpl: t, loader: loader, log: log}
}

// asset is an image prepared once per document.
type asset struct {
	name   string
	img    *Prepared
	err    error
	warned bool
}

func (a *asset) present() bool { return a != nil }

// Document is the per-document data shared by all pages.
type Document struct {
	Meta   record.Record
	Title  string
	Party  record.Party
	Totals record.TotalsInfo

	logo *asset
	qr   *asset
}

// Prepare resolves metadata and decodes images once for the whole document.
func (r *Renderer) Prepare(meta record.Record) *Document {
	if meta == nil {
		meta = record.Record{}
	}
	doc := &Document{
		Meta:   meta,
		Title:  text.Normalize(record.Title.Resolve(meta)),
		Party:  record.ResolveParty(record.Client, meta),
		Totals: record.ResolveTotals(meta),
	}
	if _, ok := r.tpl.Box(layout.BoxLogo); ok {
		doc.logo = r.prepareLogo(meta)
	}
	if _, ok := r.tpl.Box(layout.BoxPaymentQR); ok {
		if content := record.PaymentQR.Resolve(meta); content != "" {
			img, err := PrepareQR(content)
			doc.qr = &asset{name: "payment-qr", img: img, err: err}
		}
	}
	for _, a := range []*asset{doc.logo, doc.qr} {
		if a.present() && a.err != nil {
			r.warnImage(a, a.err)
		}
	}
	return doc
}

// warnImage logs the first failure of an asset; later pages reuse the
// placeholder silently.
func (r *Renderer) warnImage(a *asset, err error) {
	if a.warned {
		return
	}
	a.warned = true
	r.log.WithError(err).WithField("image", a.name).Warn("image unavailable, drawing placeholder")
}

func (r *Renderer) prepareLogo(meta record.Record) *asset {
	var (
		resource *res.Resource
		err      error
	)
	if src := record.Logo.Resolve(meta); src != "" {
		resource, err = r.loader.LoadInline(src)
	} else if r.LogoPath != "" {
		resource, err = r.loader.LoadImage(r.LogoPath)
	} else {
		return nil
	}
	a := &asset{name: "logo", err: err}
	if err == nil {
		a.img, a.err = PrepareImage(resource.Data, MaxImagePixels)
	}
	return a
}

// Render draws page in this order: header, visible boxes, table header, rows
// and footer.
func (r *Renderer) Render(s Surface, page *pagination.Page, ctx layout.PageContext, doc *Document) {
	r.log.WithFields(logrus.Fields{
		"page":  ctx.Index,
		"total": ctx.Total,
		"rows":  len(page.Rows),
	}).Debug("rendering page")

	r.renderHeader(s, ctx, doc)
	for _, b := range r.tpl.Boxes {
		if b.Visibility.Visible(ctx) {
			r.renderBox(s, b, doc)
		}
	}
	y := r.renderTableHeader(s)
	for _, row := range page.Rows {
		r.renderRow(s, y, row)
		y -= row.Extent
	}
	r.renderFooter(s, ctx, doc)
}

func (r *Renderer) renderHeader(s Surface, ctx layout.PageContext, doc *Document) {
	g, t := r.tpl.Geometry, r.tpl
	left, right := g.MarginLeft, g.PageWidth-g.MarginRight
	top := g.Top()

	s.Text(left, top-t.TitleOffset, t.Fonts.Title, layout.Black, doc.Title)
	if t.HeaderPageLabel {
		drawRight(s, right, top-t.TitleOffset, t.Fonts.Header, fmt.Sprintf(t.ShortPageLabel, ctx.Index))
	}
	if !t.HeaderDetails {
		return
	}

	missing := t.Label("missing")
	client := doc.Party.String()
	if client == "" {
		client = missing
	}
	date := record.Date.Resolve(doc.Meta)
	if date == "" {
		date = missing
	}
	y := top - t.DetailsOffset
	s.Text(left, y, t.Fonts.Header, layout.Black, t.Label("client")+": "+client)
	if number := record.Number.Resolve(doc.Meta); number != "" {
		drawCenter(s, g.PageWidth/2, y, t.Fonts.Header, t.Label("number")+": "+number)
	}
	drawRight(s, right, y, t.Fonts.Header, t.Label("date")+": "+date)
}

func (r *Renderer) renderTableHeader(s Surface) float64 {
	g, t := r.tpl.Geometry, r.tpl
	top := g.BodyTop()
	h := g.TableHeaderHeight

	s.Rect(g.MarginLeft, top-h, t.TableWidth(), h, RectStyle{Fill: true, FillColor: t.TableHeaderFill})
	baseline := top - h/2 - t.Fonts.TableHeader.Size*0.35
	x := g.MarginLeft
	for _, c := range t.Columns {
		r.drawCell(s, x, baseline, c, t.Fonts.TableHeader, c.Label)
		x += c.Width
	}
	return top - h
}

// lineBaseline is the baseline of wrapped line k of a row starting at top.
func (r *Renderer) lineBaseline(top float64, k int) float64 {
	g := r.tpl.Geometry
	return top - g.RowPadding/2 - 0.8*g.Leading - float64(k)*g.Leading
}

func (r *Renderer) renderRow(s Surface, top float64, row layout.Row) {
	g, t := r.tpl.Geometry, r.tpl
	font := t.Fonts.Body
	x := g.MarginLeft
	for _, c := range t.Columns {
		if c.Wrap {
			for k, line := range row.Lines {
				s.Text(x+g.CellPadding, r.lineBaseline(top, k), font, layout.Black, line)
			}
		} else {
			value := text.Normalize(c.Field.Resolve(row.Record))
			r.drawCell(s, x, r.lineBaseline(top, 0), c, font, value)
		}
		x += c.Width
	}
	if t.RowRules {
		bottom := top - row.Extent
		s.Line(g.MarginLeft, bottom, g.MarginLeft+t.TableWidth(), bottom, 0.3, t.RuleColor)
	}
}

// drawCell draws a single-line value fitted to the column.
func (r *Renderer) drawCell(s Surface, x, y float64, c layout.Column, f layout.Font, value string) {
	pad := r.tpl.Geometry.CellPadding
	width := func(str string) float64 { return s.StringWidth(f, str) }
	value = text.Fit(value, c.Width-2*pad, width, r.tpl.TruncationMarker)
	if c.Align == layout.AlignRight {
		drawRight(s, x+c.Width-pad, y, f, value)
		return
	}
	s.Text(x+pad, y, f, layout.Black, value)
}

func (r *Renderer) renderFooter(s Surface, ctx layout.PageContext, doc *Document) {
	g, t := r.tpl.Geometry, r.tpl
	font := t.Fonts.Footer
	y := g.MarginBottom + t.FooterOffset

	s.Text(g.MarginLeft, y, font, layout.Black, orDefault(record.FooterLeft.Resolve(doc.Meta), t.FooterLeft))
	drawCenter(s, g.PageWidth/2, y, font, fmt.Sprintf(t.PageLabel, ctx.Index, ctx.Total))
	drawRight(s, g.PageWidth-g.MarginRight, y, font, orDefault(record.FooterRight.Resolve(doc.Meta), t.FooterRight))

	if note := text.Normalize(record.FooterText.Resolve(doc.Meta)); note != "" {
		width := func(str string) float64 { return s.StringWidth(font, str) }
		note = text.Fit(note, g.ContentWidth(), width, t.TruncationMarker)
		drawCenter(s, g.PageWidth/2, y+font.Size*1.4, font, note)
	}
}

func (r *Renderer) renderBox(s Surface, b layout.Box, doc *Document) {
	t := r.tpl
	switch b.Kind {
	case layout.BoxLogo:
		r.drawImage(s, b, doc.logo, "logo_error")
		return
	case layout.BoxPaymentQR:
		r.drawImage(s, b, doc.qr, "qr_error")
		return
	}

	if b.Border {
		s.Rect(b.X, b.Y, b.W, b.H, RectStyle{Stroke: true, Color: t.RuleColor, LineWidth: 0.5})
	}

	pad := t.Geometry.CellPadding + 2
	step := t.Fonts.Box.Size * 1.3
	y := b.Top() - pad - t.Fonts.Box.Size
	if b.Title != "" {
		s.Text(b.X+pad, b.Top()-pad-t.Fonts.BoxTitle.Size, t.Fonts.BoxTitle, layout.Black, b.Title)
		y -= t.Fonts.BoxTitle.Size + 2
	}
	inner := b.W - 2*pad
	width := func(str string) float64 { return s.StringWidth(t.Fonts.Box, str) }
	fits := func() bool { return y >= b.Y+pad/2 }

	switch b.Kind {
	case layout.BoxTotals:
		if doc.Totals.Empty() {
			s.Text(b.X+pad, y, t.Fonts.Box, layout.Black, t.Label("missing"))
			break
		}
		rows := [][2]string{
			{t.Label("subtotal"), doc.Totals.Subtotal},
			{t.Label("tax"), doc.Totals.Tax},
			{t.Label("total"), doc.Totals.Total},
		}
		for i, kv := range rows {
			if kv[1] == "" || !fits() {
				continue
			}
			font := t.Fonts.Box
			if i == len(rows)-1 {
				font = t.Fonts.BoxTitle
			}
			s.Text(b.X+pad, y, font, layout.Black, kv[0])
			drawRight(s, b.Right()-pad, y, font, text.Fit(kv[1], inner/2, width, t.TruncationMarker))
			y -= step
		}
	case layout.BoxNotes:
		lines := text.Wrap(text.Clean(record.Notes.Resolve(doc.Meta)), inner, width, 0)
		for _, line := range lines {
			if !fits() {
				break
			}
			s.Text(b.X+pad, y, t.Fonts.Box, layout.Black, line)
			y -= step
		}
	default:
		for _, line := range r.boxLines(b.Kind, doc) {
			if !fits() {
				break
			}
			s.Text(b.X+pad, y, t.Fonts.Box, layout.Black, text.Fit(line, inner, width, t.TruncationMarker))
			y -= step
		}
	}
}

func (r *Renderer) boxLines(kind layout.BoxKind, doc *Document) []string {
	t := r.tpl
	switch kind {
	case layout.BoxRecipient:
		lines := doc.Party.Lines(t.Label("vat"))
		if len(lines) == 0 {
			return []string{t.Label("missing")}
		}
		return lines
	case layout.BoxReference:
		var lines []string
		for _, kv := range []struct {
			label string
			field record.Field
		}{
			{t.Label("number"), record.Number},
			{t.Label("date"), record.Date},
			{t.Label("reference"), record.Reference},
		} {
			if v := kv.field.Resolve(doc.Meta); v != "" {
				lines = append(lines, kv.label+": "+v)
			}
		}
		return lines
	}
	return nil
}

// drawImage fits a prepared image into b. Any failure degrades to a text
// placeholder so the document is still produced.
func (r *Renderer) drawImage(s Surface, b layout.Box, a *asset, placeholder string) {
	if !a.present() {
		return
	}
	err := a.err
	if err == nil {
		dw, dh, dx, dy := layout.FitImage(a.img.Width, a.img.Height, b.W, b.H)
		err = s.Image(a.name, a.img.PNG, b.X+dx, b.Y+dy, dw, dh)
	}
	if err == nil {
		return
	}

	r.warnImage(a, err)
	font := r.tpl.Fonts.Box
	drawCenter(s, b.X+b.W/2, b.Y+b.H/2-font.Size*0.35, font, r.tpl.Label(placeholder))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func drawRight(s Surface, right, y float64, f layout.Font, str string) {
	if str == "" {
		return
	}
	s.Text(right-s.StringWidth(f, str), y, f, layout.Black, str)
}

func drawCenter(s Surface, center, y float64, f layout.Font, str string) {
	if str == "" {
		return
	}
	s.Text(center-s.StringWidth(f, str)/2, y, f, layout.Black, str)
}
