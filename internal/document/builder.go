// Package document builds a complete quote in two passes: pagination first,
// so the page count is known, then rendering of every page.
package document

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gompdf/quotepdf/internal/layout"
	"github.com/gompdf/quotepdf/internal/pagination"
	"github.com/gompdf/quotepdf/internal/record"
	"github.com/gompdf/quotepdf/internal/render/pdf"
	"github.com/gompdf/quotepdf/internal/res"
)

// ErrNoSurface is returned when Build is called without a drawing target.
var ErrNoSurface = errors.New("document: no surface")

// BuildError reports the build stage that failed.
type BuildError struct {
	Op  string
	Err error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("document %s: %v", e.Op, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Builder turns payloads into documents for one template. A Builder holds no
// per-document state and may be shared; each Build needs its own Surface.
type Builder struct {
	tpl      *layout.Template
	renderer *pdf.Renderer
	log      logrus.FieldLogger
}

// NewBuilder validates t and prepares a renderer for it.
func NewBuilder(t *layout.Template, loader *res.Loader, log logrus.FieldLogger) (*Builder, error) {
	if t == nil {
		return nil, &BuildError{Op: "configure", Err: layout.ErrInvalidTemplate}
	}
	if err := t.Validate(); err != nil {
		return nil, &BuildError{Op: "configure", Err: err}
	}
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	return &Builder{
		tpl:      t,
		renderer: pdf.NewRenderer(t, loader, log),
		log:      log,
	}, nil
}

// Template returns the template the builder draws with.
func (b *Builder) Template() *layout.Template { return b.tpl }

// SetLogoPath sets the logo used when a payload has none.
func (b *Builder) SetLogoPath(path string) { b.renderer.LogoPath = path }

// Plan runs the measure pass alone and returns the pages.
func (b *Builder) Plan(m layout.Measurer, payload record.Payload) []*pagination.Page {
	return pagination.NewEngine(b.tpl, m).Paginate(payload.Rows)
}

// Build measures payload on s, renders every page with the final page count
// and returns the finalized bytes.
func (b *Builder) Build(s pdf.Surface, payload record.Payload) ([]byte, error) {
	if s == nil {
		return nil, &BuildError{Op: "build", Err: ErrNoSurface}
	}
	start := time.Now()

	// Measure
	pages := b.Plan(s, payload)
	total := len(pages)

	// Render
	doc := b.renderer.Prepare(payload.Meta)
	for i, page := range pages {
		if i > 0 {
			s.NewPage()
		}
		b.renderer.Render(s, page, layout.NewPageContext(i+1, total), doc)
	}

	out, err := s.Finalize()
	if err != nil {
		return nil, &BuildError{Op: "finalize", Err: err}
	}
	b.log.WithFields(logrus.Fields{
		"template": b.tpl.Name,
		"rows":     len(payload.Rows),
		"pages":    total,
		"bytes":    len(out),
		"elapsed":  time.Since(start).String(),
	}).Debug("document built")
	return out, nil
}
