package layout

import (
	"github.com/gompdf/quotepdf/internal/record"
	"github.com/gompdf/quotepdf/internal/text"
)

// Row is a record laid out for the table. Pagination and rendering both read
// Extent and Lines from the same Row value.
type Row struct {
	Record    record.Record
	Lines     []string // wrapped long-text cell
	Truncated bool
	Extent    float64
}

// RowModel derives a row's wrapped cell and vertical extent. It is a pure
// function of the template and the measurer.
type RowModel struct {
	geometry Geometry
	column   Column
	marker   string
	width    text.WidthFunc
}

// NewRowModel binds the template's long-text column and body font to m.
func NewRowModel(t *Template, m Measurer) *RowModel {
	rm := &RowModel{
		geometry: t.Geometry,
		marker:   t.TruncationMarker,
	}
	if i := t.WrapColumn(); i >= 0 {
		rm.column = t.Columns[i]
	}
	font := t.Fonts.Body
	rm.width = func(s string) float64 { return m.StringWidth(font, s) }
	return rm
}

// WrapWidth is the inner width of the long-text column.
func (rm *RowModel) WrapWidth() float64 {
	return rm.column.Width - 2*rm.geometry.CellPadding
}

// Extent maps a wrapped line count to the row height.
func (rm *RowModel) Extent(lines int) float64 {
	h := float64(lines)*rm.geometry.Leading + rm.geometry.RowPadding
	if h < rm.geometry.MinRowHeight {
		return rm.geometry.MinRowHeight
	}
	return h
}

// Layout wraps the long-text field of r and computes its extent.
func (rm *RowModel) Layout(r record.Record) Row {
	s := text.Clean(rm.column.Field.Resolve(r))
	lines, truncated := text.WrapN(s, rm.WrapWidth(), rm.width, rm.geometry.MaxLines)
	if truncated {
		lines = text.Truncate(lines, rm.marker, rm.WrapWidth(), rm.width)
	}
	return Row{
		Record:    r,
		Lines:     lines,
		Truncated: truncated,
		Extent:    rm.Extent(len(lines)),
	}
}

// LayoutAll lays out records in order.
func (rm *RowModel) LayoutAll(records []record.Record) []Row {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = rm.Layout(r)
	}
	return rows
}
