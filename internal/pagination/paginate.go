package pagination

import (
	"github.com/gompdf/quotepdf/internal/layout"
)

// Page represents a single page in the document
type Page struct {
	Index int // 1-based
	Rows  []layout.Row
}

// Paginator packs rows into pages between a top and a bottom bound. The y
// axis grows upwards.
type Paginator struct {
	Top         float64
	Bottom      float64
	TableHeader float64
}

// NewPaginator creates a new paginator
func NewPaginator(top, bottom, tableHeader float64) *Paginator {
	return &Paginator{
		Top:         top,
		Bottom:      bottom,
		TableHeader: tableHeader,
	}
}

// Paginate distributes rows over pages in order. A row never spans pages; a
// row too tall for an empty page is placed alone. At least one page is
// always returned.
func (p *Paginator) Paginate(rows []layout.Row) []*Page {
	pages := make([]*Page, 0, 1)
	rest := rows
	for {
		page := &Page{Index: len(pages) + 1}
		y := p.Top - p.TableHeader
		n := 0
		for _, row := range rest {
			if y-row.Extent < p.Bottom && n > 0 {
				break
			}
			y -= row.Extent
			n++
			if y < p.Bottom {
				// forced: an oversize first row closes the page
				break
			}
		}
		page.Rows = rest[:n:n]
		rest = rest[n:]
		pages = append(pages, page)
		if len(rest) == 0 {
			return pages
		}
	}
}
