// Package httpapi serves quote PDFs over HTTP.
package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gompdf/quotepdf/pkg/api"
)

// QuoteHandler renders the sample quote on GET and the JSON body on POST.
type QuoteHandler struct {
	conv     *api.Converter
	filename string
	maxBody  int64
	log      logrus.FieldLogger
}

// NewQuoteHandler creates a handler; filename is the download name without
// extension and maxBody caps the request body.
func NewQuoteHandler(conv *api.Converter, filename string, maxBody int64, log logrus.FieldLogger) *QuoteHandler {
	if filename == "" {
		filename = "preventivo"
	}
	if maxBody <= 0 {
		maxBody = api.MaxInputBytes
	}
	return &QuoteHandler{conv: conv, filename: filename, maxBody: maxBody, log: log}
}

func (h *QuoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.log.WithField("request_id", RequestID(r.Context()))

	var (
		out []byte
		err error
	)
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		out, err = h.conv.BuildSample()
	case http.MethodPost:
		var body []byte
		body, err = io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
				return
			}
			log.WithError(err).Warn("failed to read request body")
			body = nil
		}
		out, err = h.conv.ConvertBytes(body)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err != nil {
		log.WithError(err).Error("failed to render quote")
		http.Error(w, "failed to render PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", sanitizeFilename(h.filename)+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(out); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

// sanitizeFilename keeps the header value a plain token.
func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, name)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}
