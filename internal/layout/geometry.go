// Package layout describes the fixed page template of a quote: geometry,
// columns, fonts, conditional boxes, and the row height model shared by the
// pagination and rendering passes.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// MM is one millimetre in points.
const MM = 72.0 / 25.4

// PageSize represents standard page sizes
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// Standard page sizes in points (1/72 inch)
var (
	PageSizeA4     = PageSize{Width: 595.28, Height: 841.89, Name: "A4"}
	PageSizeLetter = PageSize{Width: 612.00, Height: 792.00, Name: "Letter"}
	PageSizeLegal  = PageSize{Width: 612.00, Height: 1008.00, Name: "Legal"}
	PageSizeA3     = PageSize{Width: 841.89, Height: 1190.55, Name: "A3"}
	PageSizeA5     = PageSize{Width: 419.53, Height: 595.28, Name: "A5"}
)

// LookupPageSize finds a standard page size by case-insensitive name.
func LookupPageSize(name string) (PageSize, bool) {
	for _, ps := range []PageSize{PageSizeA4, PageSizeLetter, PageSizeLegal, PageSizeA3, PageSizeA5} {
		if strings.EqualFold(ps.Name, name) {
			return ps, true
		}
	}
	return PageSize{}, false
}

// Geometry is the vertical and horizontal budget of every page, in points.
// The y axis grows upwards from the bottom edge of the page.
type Geometry struct {
	PageWidth  float64
	PageHeight float64

	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64

	// Reserved blocks; template boxes live inside them
	HeaderHeight float64
	FooterHeight float64
	Gap          float64

	TableHeaderHeight float64

	// Row height model
	MinRowHeight float64
	Leading      float64
	RowPadding   float64
	CellPadding  float64
	MaxLines     int
}

// DefaultGeometry returns the A4 layout of the classic quote.
func DefaultGeometry() Geometry {
	return Geometry{
		PageWidth:         PageSizeA4.Width,
		PageHeight:        PageSizeA4.Height,
		MarginTop:         12 * MM,
		MarginRight:       12 * MM,
		MarginBottom:      12 * MM,
		MarginLeft:        12 * MM,
		HeaderHeight:      22 * MM,
		FooterHeight:      15 * MM,
		Gap:               4 * MM,
		TableHeaderHeight: 7 * MM,
		MinRowHeight:      8 * MM,
		Leading:           4 * MM,
		RowPadding:        3 * MM,
		CellPadding:       2,
		MaxLines:          4,
	}
}

// WithPageSize returns g resized to ps.
func (g Geometry) WithPageSize(ps PageSize) Geometry {
	g.PageWidth = ps.Width
	g.PageHeight = ps.Height
	return g
}

// Top is the y of the top margin line.
func (g Geometry) Top() float64 { return g.PageHeight - g.MarginTop }

// BodyTop is where the table header starts.
func (g Geometry) BodyTop() float64 {
	return g.PageHeight - g.MarginTop - g.HeaderHeight - g.Gap
}

// BodyBottom is the lowest y a row may reach.
func (g Geometry) BodyBottom() float64 {
	return g.MarginBottom + g.FooterHeight + g.Gap
}

// ContentWidth is the width between the side margins.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - g.MarginLeft - g.MarginRight
}

// Validate rejects geometries that leave no room for rows.
func (g Geometry) Validate() error {
	var errs []error
	if g.PageWidth <= 0 || g.PageHeight <= 0 {
		errs = append(errs, fmt.Errorf("page size %.2fx%.2f must be positive", g.PageWidth, g.PageHeight))
	}
	if g.ContentWidth() <= 0 {
		errs = append(errs, errors.New("side margins leave no content width"))
	}
	if g.BodyTop()-g.TableHeaderHeight <= g.BodyBottom() {
		errs = append(errs, fmt.Errorf("body region %.2f..%.2f has no room below the table header", g.BodyBottom(), g.BodyTop()))
	}
	if g.Leading <= 0 {
		errs = append(errs, errors.New("leading must be positive"))
	}
	if g.MinRowHeight < 0 || g.RowPadding < 0 || g.CellPadding < 0 {
		errs = append(errs, errors.New("row sizes must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidGeometry, errors.Join(errs...))
	}
	return nil
}
