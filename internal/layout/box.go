package layout

import "fmt"

// BoxKind names the content a template box carries.
type BoxKind string

const (
	BoxRecipient BoxKind = "recipient"
	BoxReference BoxKind = "reference"
	BoxTotals    BoxKind = "totals"
	BoxNotes     BoxKind = "notes"
	BoxLogo      BoxKind = "logo"
	BoxPaymentQR BoxKind = "payment_qr"
)

// Visibility decides on which pages a box is drawn. Its space is reserved in
// the header or footer band on every page regardless.
type Visibility int

const (
	Always Visibility = iota
	FirstPage
	LastPage
	MiddlePages
)

func (v Visibility) String() string {
	switch v {
	case Always:
		return "always"
	case FirstPage:
		return "first"
	case LastPage:
		return "last"
	case MiddlePages:
		return "middle"
	default:
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
}

// ParseVisibility is the inverse of Visibility.String.
func ParseVisibility(s string) (Visibility, error) {
	for _, v := range []Visibility{Always, FirstPage, LastPage, MiddlePages} {
		if v.String() == s {
			return v, nil
		}
	}
	return Always, fmt.Errorf("unknown box visibility %q", s)
}

// Visible reports whether a box with this rule is drawn on the page.
func (v Visibility) Visible(ctx PageContext) bool {
	switch v {
	case FirstPage:
		return ctx.IsFirst
	case LastPage:
		return ctx.IsLast
	case MiddlePages:
		return !ctx.IsFirst && !ctx.IsLast
	default:
		return true
	}
}

// PageContext is threaded into every per-page drawing call.
type PageContext struct {
	Index   int // 1-based
	Total   int
	IsFirst bool
	IsLast  bool
}

// NewPageContext describes page index of total.
func NewPageContext(index, total int) PageContext {
	return PageContext{
		Index:   index,
		Total:   total,
		IsFirst: index == 1,
		IsLast:  index == total,
	}
}

// Box is a fixed rectangle of a template. X and Y are the bottom-left corner
// in page points.
type Box struct {
	Kind       BoxKind
	Title      string
	X, Y       float64
	W, H       float64
	Visibility Visibility
	Border     bool
}

// Top is the y of the upper edge.
func (b Box) Top() float64 { return b.Y + b.H }

// Right is the x of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Within reports whether b lies inside the band [bottom, top].
func (b Box) Within(bottom, top float64) bool {
	const eps = 1e-6
	return b.Y >= bottom-eps && b.Top() <= top+eps
}
