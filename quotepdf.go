// Package quotepdf renders quotes and invoices described as JSON to paginated PDF.
package quotepdf

import (
	"github.com/gompdf/quotepdf/pkg/api"
)

type Converter = api.Converter
type Options = api.Options
type Option = api.Option
type Payload = api.Payload
type Record = api.Record

func New() *Converter { return api.New() }
func NewWithOptions(options Options) *Converter { return api.NewWithOptions(options) }
func DefaultOptions() Options { return api.DefaultOptions() }
func WriteFile(path string, data []byte) error { return api.WriteFile(path, data) }
func TemplateNames() []string { return api.TemplateNames() }

var (
	WithTemplate         = api.WithTemplate
	WithPageSize         = api.WithPageSize
	WithMargins          = api.WithMargins
	WithBands            = api.WithBands
	WithMaxLines         = api.WithMaxLines
	WithTruncationMarker = api.WithTruncationMarker
	WithDebug            = api.WithDebug
	WithLogger           = api.WithLogger
	WithFooter           = api.WithFooter
	WithColors           = api.WithColors
	WithBoxVisibility    = api.WithBoxVisibility
	WithLogo             = api.WithLogo
	WithResourcePath     = api.WithResourcePath
	WithTitle            = api.WithTitle
	WithAuthor           = api.WithAuthor
	WithSubject          = api.WithSubject
	WithKeywords         = api.WithKeywords
	WithCompression      = api.WithCompression
	WithPageSizeA4       = api.WithPageSizeA4
	WithPageSizeLetter   = api.WithPageSizeLetter
	WithPageSizeLegal    = api.WithPageSizeLegal
)

const (
	PageSizeA3Width  = api.PageSizeA3Width
	PageSizeA3Height = api.PageSizeA3Height
	PageSizeA4Width  = api.PageSizeA4Width
	PageSizeA4Height = api.PageSizeA4Height
	PageSizeA5Width  = api.PageSizeA5Width
	PageSizeA5Height = api.PageSizeA5Height

	PageSizeLetterWidth  = api.PageSizeLetterWidth
	PageSizeLetterHeight = api.PageSizeLetterHeight
	PageSizeLegalWidth   = api.PageSizeLegalWidth
	PageSizeLegalHeight  = api.PageSizeLegalHeight
)
