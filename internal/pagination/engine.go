// Package pagination splits laid-out table rows into pages.
package pagination

import (
	"github.com/gompdf/quotepdf/internal/layout"
	"github.com/gompdf/quotepdf/internal/record"
)

// Options represents options for the pagination engine
type Options struct {
	Top         float64
	Bottom      float64
	TableHeader float64
}

// OptionsFromGeometry derives the page capacity of g.
func OptionsFromGeometry(g layout.Geometry) Options {
	return Options{
		Top:         g.BodyTop(),
		Bottom:      g.BodyBottom(),
		TableHeader: g.TableHeaderHeight,
	}
}

// Engine lays out records with a row model and paginates them.
type Engine struct {
	options Options
	rows    *layout.RowModel
}

// NewEngine creates a pagination engine for template t measured by m.
func NewEngine(t *layout.Template, m layout.Measurer) *Engine {
	return &Engine{
		options: OptionsFromGeometry(t.Geometry),
		rows:    layout.NewRowModel(t, m),
	}
}

// SetOptions sets the options for the pagination engine
func (e *Engine) SetOptions(options Options) {
	e.options = options
}

// Options returns the current page capacity.
func (e *Engine) Options() Options {
	return e.options
}

// Paginate lays out every record once and packs the rows into pages.
func (e *Engine) Paginate(records []record.Record) []*Page {
	paginator := NewPaginator(e.options.Top, e.options.Bottom, e.options.TableHeader)
	return paginator.Paginate(e.rows.LayoutAll(records))
}
