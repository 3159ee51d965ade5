// Package api is the public entry point for rendering quotes and invoices to PDF.
package api

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/gompdf/quotepdf/internal/document"
	"github.com/gompdf/quotepdf/internal/layout"
	"github.com/gompdf/quotepdf/internal/record"
	"github.com/gompdf/quotepdf/internal/render/pdf"
	"github.com/gompdf/quotepdf/internal/res"
)

// Payload is a decoded quote: metadata plus ordered rows.
type Payload = record.Payload

// Record is one row or the metadata of a payload.
type Record = record.Record

// MaxInputBytes caps the JSON read by Convert.
const MaxInputBytes = 16 << 20

// Converter is the main API for rendering quotes to PDF
type Converter struct {
	options Options
	loader  *res.Loader
	logger  *logrus.Logger
	builder *document.Builder
	err     error
}

// New creates a new converter with default options
func New() *Converter {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a new converter with the specified options. An
// invalid configuration is reported by the first conversion.
func NewWithOptions(options Options) *Converter {
	c := &Converter{
		options: options,
		loader:  res.NewLoader(""),
		logger:  newLogger(options),
	}
	for _, path := range options.ResourcePaths {
		c.loader.AddSearchPath(path)
	}

	tpl, err := c.template()
	if err != nil {
		c.err = fmt.Errorf("failed to configure template: %w", err)
		return c
	}
	c.builder, err = document.NewBuilder(tpl, c.loader, c.logger)
	if err != nil {
		c.err = err
		return c
	}
	c.builder.SetLogoPath(options.LogoPath)
	return c
}

func newLogger(o Options) *logrus.Logger {
	logger := o.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	if o.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// template builds the template descriptor from the options.
func (c *Converter) template() (*layout.Template, error) {
	o := c.options
	g := layout.DefaultGeometryFor(o.Template)
	if o.PageWidth > 0 && o.PageHeight > 0 {
		g.PageWidth, g.PageHeight = o.PageWidth, o.PageHeight
	}
	setIfPositive(&g.MarginTop, o.MarginTop)
	setIfPositive(&g.MarginRight, o.MarginRight)
	setIfPositive(&g.MarginBottom, o.MarginBottom)
	setIfPositive(&g.MarginLeft, o.MarginLeft)
	setIfPositive(&g.HeaderHeight, o.HeaderHeight)
	setIfPositive(&g.FooterHeight, o.FooterHeight)
	if o.MaxLines > 0 {
		g.MaxLines = o.MaxLines
	}

	tpl, err := layout.Builtin(o.Template, &g)
	if err != nil {
		return nil, err
	}
	tpl.TruncationMarker = o.TruncationMarker
	if o.SilentTruncation {
		tpl.TruncationMarker = ""
	}
	if o.FooterLeft != "" {
		tpl.FooterLeft = o.FooterLeft
	}
	if o.FooterRight != "" {
		tpl.FooterRight = o.FooterRight
	}
	if err := setColor(&tpl.TableHeaderFill, o.TableHeaderFill); err != nil {
		return nil, err
	}
	if err := setColor(&tpl.RuleColor, o.RuleColor); err != nil {
		return nil, err
	}

	kinds := make([]string, 0, len(o.BoxVisibility))
	for k := range o.BoxVisibility {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		v, err := layout.ParseVisibility(o.BoxVisibility[kind])
		if err != nil {
			return nil, err
		}
		if err := tpl.SetVisibility(layout.BoxKind(kind), v); err != nil {
			return nil, err
		}
	}
	return tpl, nil
}

func setColor(dst *layout.Color, value string) error {
	if value == "" {
		return nil
	}
	c, err := layout.ParseColor(value)
	if err != nil {
		return err
	}
	*dst = c
	return nil
}

func setIfPositive(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

// TemplateNames lists the built-in templates.
func TemplateNames() []string { return layout.TemplateNames() }

// Template returns the template descriptor in use.
func (c *Converter) Template() (*layout.Template, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.builder.Template(), nil
}

func (c *Converter) renderOptions(p Payload) pdf.RenderOptions {
	title := c.options.Title
	if title == "" {
		title = record.Title.Resolve(p.Meta)
	}
	return pdf.RenderOptions{
		Title:    title,
		Author:   c.options.Author,
		Subject:  c.options.Subject,
		Keywords: c.options.Keywords,
		Creator:  "quotepdf",
		Producer: "quotepdf",
		Compress: c.options.Compress,
	}
}

// Build renders a decoded payload to PDF bytes.
func (c *Converter) Build(p Payload) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	surface := pdf.NewFpdfSurface(c.builder.Template().Geometry, c.renderOptions(p))
	out, err := c.builder.Build(surface, p)
	if err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return out, nil
}

// BuildSample renders the built-in sample quote.
func (c *Converter) BuildSample() ([]byte, error) {
	return c.Build(record.Sample())
}

// PageCount returns the number of pages p would produce.
func (c *Converter) PageCount(p Payload) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	measure := pdf.NewFpdfSurface(c.builder.Template().Geometry, pdf.RenderOptions{})
	return len(c.builder.Plan(measure, p)), nil
}

// ConvertBytes renders a JSON payload. A body that is not a JSON object is
// rendered as an empty quote.
func (c *Converter) ConvertBytes(data []byte) ([]byte, error) {
	p, err := record.DecodeBytes(data)
	if err != nil {
		c.logger.WithError(err).Warn("undecodable payload, rendering an empty document")
		p = Payload{Meta: Record{}}
	}
	return c.Build(p)
}

// Convert reads a JSON payload from input and writes the PDF to output
func (c *Converter) Convert(input io.Reader, output io.Writer) error {
	data, err := io.ReadAll(io.LimitReader(input, MaxInputBytes))
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}
	out, err := c.ConvertBytes(data)
	if err != nil {
		return err
	}
	if _, err := io.Copy(output, bytes.NewReader(out)); err != nil {
		return fmt.Errorf("failed to copy PDF to output: %w", err)
	}
	return nil
}

// ConvertFile converts a JSON file to PDF and writes the result to the specified file
func (c *Converter) ConvertFile(inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read payload file: %w", err)
	}
	out, err := c.ConvertBytes(data)
	if err != nil {
		return err
	}
	return WriteFile(outputPath, out)
}

// WriteFile writes data, creating the parent directory when missing.
func WriteFile(outputPath string, data []byte) error {
	outputDir := filepath.Dir(outputPath)
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// Options returns a copy of the converter options.
func (c *Converter) Options() Options {
	return c.options
}

// WithOptions returns a new converter with the specified options
func (c *Converter) WithOptions(options Options) *Converter {
	return NewWithOptions(options)
}

// WithOption returns a new converter with the specified option set
func (c *Converter) WithOption(option Option) *Converter {
	newOptions := c.options
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// AddResourcePath adds a path to search for resources
func (c *Converter) AddResourcePath(path string) *Converter {
	newOptions := c.options
	newOptions.ResourcePaths = append(append([]string(nil), newOptions.ResourcePaths...), path)
	return NewWithOptions(newOptions)
}

// SetTemplate selects a built-in template
func (c *Converter) SetTemplate(name string) *Converter {
	newOptions := c.options
	newOptions.Template = name
	return NewWithOptions(newOptions)
}

// SetPageSize sets the page size
func (c *Converter) SetPageSize(width, height float64) *Converter {
	newOptions := c.options
	newOptions.PageWidth = width
	newOptions.PageHeight = height
	return NewWithOptions(newOptions)
}

// SetMargins sets the page margins
func (c *Converter) SetMargins(top, right, bottom, left float64) *Converter {
	newOptions := c.options
	newOptions.MarginTop = top
	newOptions.MarginRight = right
	newOptions.MarginBottom = bottom
	newOptions.MarginLeft = left
	return NewWithOptions(newOptions)
}

// SetDebug sets the debug mode
func (c *Converter) SetDebug(debug bool) *Converter {
	newOptions := c.options
	newOptions.Debug = debug
	return NewWithOptions(newOptions)
}

// SetLogo sets the fallback logo file
func (c *Converter) SetLogo(path string) *Converter {
	newOptions := c.options
	newOptions.LogoPath = path
	return NewWithOptions(newOptions)
}

// SetTitle sets the document title
func (c *Converter) SetTitle(title string) *Converter {
	newOptions := c.options
	newOptions.Title = title
	return NewWithOptions(newOptions)
}

// SetAuthor sets the document author
func (c *Converter) SetAuthor(author string) *Converter {
	newOptions := c.options
	newOptions.Author = author
	return NewWithOptions(newOptions)
}
