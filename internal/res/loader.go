// Package res loads the binary resources of a document: logos embedded in the
// payload as base64 or data URLs, and logo files named by the configuration.
package res

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ResourceType represents the type of resource
type ResourceType int

const (
	// ResourceTypeUnknown is an unknown resource type
	ResourceTypeUnknown ResourceType = iota
	// ResourceTypeImage is an image resource
	ResourceTypeImage
	// ResourceTypeOther is any other resource
	ResourceTypeOther
)

// MaxResourceBytes caps the size of a single loaded resource.
const MaxResourceBytes = 8 << 20

var (
	ErrNotFound    = errors.New("resource not found")
	ErrNotAnImage  = errors.New("resource is not an image")
	ErrTooLarge    = errors.New("resource too large")
	ErrEmptySource = errors.New("empty resource reference")
)

// Resource represents a loaded resource
type Resource struct {
	URL      string
	Type     ResourceType
	Data     []byte
	MimeType string
}

// Loader handles loading resources
type Loader struct {
	// Base directory for resolving relative file paths
	BaseDir string

	// Resource cache, keyed by file path; inline data is never cached
	cache     map[string]*Resource
	cacheLock sync.RWMutex

	// Resource search paths
	searchPaths []string
}

// NewLoader creates a new resource loader
func NewLoader(baseDir string) *Loader {
	return &Loader{
		BaseDir:     baseDir,
		cache:       make(map[string]*Resource),
		searchPaths: []string{},
	}
}

// AddSearchPath adds a directory to search for local resources
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadInline decodes a resource carried in the document itself: a data URL
// or bare base64. It never touches the filesystem or the network.
func (l *Loader) LoadInline(s string) (*Resource, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptySource
	}
	if strings.HasPrefix(s, "data:") {
		return parseDataURL(s)
	}
	data, err := decodeBase64(s)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 resource: %w", err)
	}
	return newResource("inline", data, ""), nil
}

// LoadFile loads a local file, resolved against BaseDir and the search paths.
func (l *Loader) LoadFile(path string) (*Resource, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptySource
	}

	l.cacheLock.RLock()
	if res, ok := l.cache[path]; ok {
		l.cacheLock.RUnlock()
		return res, nil
	}
	l.cacheLock.RUnlock()

	res, err := l.loadLocal(l.resolvePath(path))
	if err != nil {
		return nil, err
	}

	l.cacheLock.Lock()
	l.cache[path] = res
	l.cacheLock.Unlock()

	return res, nil
}

// LoadImage loads an inline or file image and checks its type.
func (l *Loader) LoadImage(ref string) (*Resource, error) {
	var (
		res *Resource
		err error
	)
	if strings.HasPrefix(strings.TrimSpace(ref), "data:") {
		res, err = l.LoadInline(ref)
	} else {
		res, err = l.LoadFile(ref)
	}
	if err != nil {
		return nil, err
	}
	if res.Type != ResourceTypeImage {
		return nil, fmt.Errorf("%w: %s", ErrNotAnImage, res.MimeType)
	}
	return res, nil
}

// parseDataURL parses a data URL (RFC 2397) and returns a Resource.
// Examples:
//
//	data:image/png;base64,<base64>
//	data:image/svg+xml,%3Csvg...
func parseDataURL(u string) (*Resource, error) {
	if !strings.HasPrefix(u, "data:") {
		return nil, fmt.Errorf("not a data URL")
	}
	s := strings.TrimPrefix(u, "data:")
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid data URL")
	}
	meta := parts[0]
	dataPart := parts[1]

	mime := ""
	isBase64 := false
	if meta != "" {
		// meta can be like: image/png;base64 or image/svg+xml;charset=utf-8
		comps := strings.Split(meta, ";")
		if comps[0] != "" {
			mime = strings.ToLower(comps[0])
		}
		for _, c := range comps[1:] {
			if strings.EqualFold(strings.TrimSpace(c), "base64") {
				isBase64 = true
			}
		}
	}

	var data []byte
	var err error
	if isBase64 {
		data, err = decodeBase64(dataPart)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data URL: %w", err)
		}
	} else {
		// The non-base64 form is URL-escaped
		if d, derr := url.PathUnescape(dataPart); derr == nil {
			data = []byte(d)
		} else {
			data = []byte(dataPart)
		}
	}

	return newResource("data:"+mime, data, mime), nil
}

// decodeBase64 accepts padded, unpadded and URL-safe base64 with embedded
// whitespace.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)
	if len(s)*3/4 > MaxResourceBytes {
		return nil, ErrTooLarge
	}
	var firstErr error
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		data, err := enc.DecodeString(s)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

func newResource(name string, data []byte, mime string) *Resource {
	if mime == "" || mime == "application/octet-stream" {
		mime = sniffMimeType(data)
	}
	return &Resource{
		URL:      name,
		Data:     data,
		MimeType: mime,
		Type:     determineResourceType(mime, name),
	}
}

// sniffMimeType detects the content type; SVG is text to the stdlib sniffer.
func sniffMimeType(data []byte) string {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if bytes.Contains(head, []byte("<svg")) {
		return "image/svg+xml"
	}
	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return mime
}

// resolvePath resolves a path relative to the base directory
func (l *Loader) resolvePath(path string) string {
	if filepath.IsAbs(path) || l.BaseDir == "" {
		return path
	}
	return filepath.Join(l.BaseDir, path)
}

// loadLocal loads a resource from a local file
func (l *Loader) loadLocal(path string) (*Resource, error) {
	res, err := readFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return l.loadFromSearchPaths(path)
	}
	return res, err
}

// loadFromSearchPaths tries to load a resource from the search paths
func (l *Loader) loadFromSearchPaths(filename string) (*Resource, error) {
	baseFilename := filepath.Base(filename)

	for _, searchPath := range l.searchPaths {
		res, err := readFile(filepath.Join(searchPath, baseFilename))
		if err != nil {
			continue
		}
		return res, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
}

func readFile(path string) (*Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxResourceBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) > MaxResourceBytes {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, path)
	}
	return newResource(path, data, determineMimeType(path)), nil
}

// determineMimeType determines the MIME type of a file
func determineMimeType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".tiff", ".tif":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

// determineResourceType determines the type of a resource
func determineResourceType(mimeType, path string) ResourceType {
	if strings.HasPrefix(mimeType, "image/") {
		return ResourceTypeImage
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".tiff", ".tif", ".bmp":
		return ResourceTypeImage
	}

	return ResourceTypeOther
}

// GetReader returns a reader for a resource
func (r *Resource) GetReader() *bytes.Reader {
	return bytes.NewReader(r.Data)
}
