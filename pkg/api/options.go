package api

import (
	"github.com/sirupsen/logrus"
)

// Options represents configuration options for the quote renderer
type Options struct {
	// Template is the name of a built-in template: classic, detailed or compact
	Template string

	// Page dimensions; zero keeps the template default
	PageWidth  float64
	PageHeight float64

	// Page margins; zero keeps the template default
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64

	// Reserved header and footer bands; zero keeps the template default
	HeaderHeight float64
	FooterHeight float64

	// MaxLines caps the wrapped description lines per row
	MaxLines int
	// TruncationMarker is appended to cut descriptions
	TruncationMarker string
	// SilentTruncation drops overflowing lines without a marker
	SilentTruncation bool

	// Debug enables debug logging
	Debug bool
	// Logger receives diagnostics; nil creates one writing to stderr
	Logger *logrus.Logger

	// Footer texts used when a payload sets none; empty keeps the template's
	FooterLeft  string
	FooterRight string

	// Colors as #RRGGBB, #RGB or rgb(r,g,b); empty keeps the template's
	TableHeaderFill string
	RuleColor       string

	// BoxVisibility overrides when boxes are drawn, by box kind
	// ("logo", "totals", ...) to always, first, last or middle
	BoxVisibility map[string]string

	// LogoPath is drawn when a payload carries no logo
	LogoPath string
	// Resource paths searched for LogoPath
	ResourcePaths []string

	// Document metadata
	Title    string
	Author   string
	Subject  string
	Keywords string

	// Compress enables PDF stream compression
	Compress bool
}

// Option is a function that modifies Options
type Option func(*Options)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		Template:         "classic",
		MaxLines:         4,
		TruncationMarker: "…",
		ResourcePaths:    []string{},
		Author:           "MITO Srl",
		Subject:          "Preventivo",
		Compress:         true,
	}
}

// WithTemplate selects a built-in template
func WithTemplate(name string) Option {
	return func(o *Options) {
		o.Template = name
	}
}

// WithPageSize sets the page size
func WithPageSize(width, height float64) Option {
	return func(o *Options) {
		o.PageWidth = width
		o.PageHeight = height
	}
}

// WithMargins sets the page margins
func WithMargins(top, right, bottom, left float64) Option {
	return func(o *Options) {
		o.MarginTop = top
		o.MarginRight = right
		o.MarginBottom = bottom
		o.MarginLeft = left
	}
}

// WithBands sets the header and footer heights
func WithBands(header, footer float64) Option {
	return func(o *Options) {
		o.HeaderHeight = header
		o.FooterHeight = footer
	}
}

// WithMaxLines sets the description line cap
func WithMaxLines(n int) Option {
	return func(o *Options) {
		o.MaxLines = n
	}
}

// WithTruncationMarker sets the marker of cut descriptions; an empty marker
// truncates silently
func WithTruncationMarker(marker string) Option {
	return func(o *Options) {
		o.TruncationMarker = marker
		o.SilentTruncation = marker == ""
	}
}

// WithDebug sets the debug mode
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// WithLogger sets the logger
func WithLogger(logger *logrus.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithFooter sets the footer texts used when a payload sets none
func WithFooter(left, right string) Option {
	return func(o *Options) {
		o.FooterLeft = left
		o.FooterRight = right
	}
}

// WithColors sets the table header fill and rule colors
func WithColors(headerFill, rule string) Option {
	return func(o *Options) {
		o.TableHeaderFill = headerFill
		o.RuleColor = rule
	}
}

// WithBoxVisibility sets when boxes of the given kind are drawn
func WithBoxVisibility(kind, visibility string) Option {
	return func(o *Options) {
		m := make(map[string]string, len(o.BoxVisibility)+1)
		for k, v := range o.BoxVisibility {
			m[k] = v
		}
		m[kind] = visibility
		o.BoxVisibility = m
	}
}

// WithLogo sets the fallback logo file
func WithLogo(path string) Option {
	return func(o *Options) {
		o.LogoPath = path
	}
}

// WithResourcePath adds a path to search for resources
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}

// WithCompression toggles PDF stream compression
func WithCompression(compress bool) Option {
	return func(o *Options) {
		o.Compress = compress
	}
}

// Standard page sizes in points (1/72 inch)
const (
	PageSizeA3Width  = 841.89
	PageSizeA3Height = 1190.55
	PageSizeA4Width  = 595.28
	PageSizeA4Height = 841.89
	PageSizeA5Width  = 419.53
	PageSizeA5Height = 595.28

	// US Letter and Legal
	PageSizeLetterWidth  = 612
	PageSizeLetterHeight = 792
	PageSizeLegalWidth   = 612
	PageSizeLegalHeight  = 1008
)

// WithPageSizeA4 sets the page size to A4
func WithPageSizeA4() Option {
	return WithPageSize(PageSizeA4Width, PageSizeA4Height)
}

// WithPageSizeLetter sets the page size to US Letter
func WithPageSizeLetter() Option {
	return WithPageSize(PageSizeLetterWidth, PageSizeLetterHeight)
}

// WithPageSizeLegal sets the page size to US Legal
func WithPageSizeLegal() Option {
	return WithPageSize(PageSizeLegalWidth, PageSizeLegalHeight)
}
