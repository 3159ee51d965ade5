// Package config loads the YAML configuration of the quote service and CLI.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/gompdf/quotepdf/internal/layout"
	"github.com/gompdf/quotepdf/pkg/api"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Document DocumentConfig `yaml:"document"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

// DocumentConfig selects the template and its overrides. Lengths are in
// millimetres; an absent or zero length keeps the template default.
type DocumentConfig struct {
	Template         string   `yaml:"template"`
	Filename         string   `yaml:"filename"`
	PageSize         string   `yaml:"page_size"`
	LogoPath         string   `yaml:"logo_path"`
	ResourcePaths    []string `yaml:"resource_paths,omitempty"`
	MarginTop        *float64 `yaml:"margin_top"`
	MarginRight      *float64 `yaml:"margin_right"`
	MarginBottom     *float64 `yaml:"margin_bottom"`
	MarginLeft       *float64 `yaml:"margin_left"`
	HeaderHeight     *float64 `yaml:"header_height"`
	FooterHeight     *float64 `yaml:"footer_height"`
	MaxLines         int      `yaml:"max_lines"`
	TruncationMarker *string  `yaml:"truncation_marker"`
	Title            string   `yaml:"title"`
	Author           string   `yaml:"author"`
	Subject          string   `yaml:"subject"`
	Compress         bool     `yaml:"compress"`

	FooterLeft      string `yaml:"footer_left"`
	FooterRight     string `yaml:"footer_right"`
	TableHeaderFill string `yaml:"table_header_fill"`
	RuleColor       string `yaml:"rule_color"`
	// BoxVisibility maps a box kind to always, first, last or middle.
	BoxVisibility map[string]string `yaml:"box_visibility,omitempty"`
}

// AuthConfig enables bearer token checks when JWTSecret is set.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	Issuer    string `yaml:"issuer"`
}

// LogConfig configures the logrus logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    api.MaxInputBytes,
		},
		Document: DocumentConfig{
			Template:    "classic",
			Filename:    "preventivo",
			PageSize:    "A4",
			MaxLines:    4,
			Author:      "MITO Srl",
			Subject:     "Preventivo",
			Compress:    true,
			FooterLeft:  "MITO Srl",
			FooterRight: "www.mito.it",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads an explicit path, which must exist. An empty path reads
// DefaultConfigPath when present and otherwise returns the defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	path = DefaultConfigPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("invalid max_body_bytes %d", c.Server.MaxBodyBytes)
	}
	if c.Document.PageSize != "" {
		if _, ok := layout.LookupPageSize(c.Document.PageSize); !ok {
			return fmt.Errorf("unknown page size %q", c.Document.PageSize)
		}
	}
	d := c.Document
	for name, v := range map[string]*float64{
		"margin_top": d.MarginTop, "margin_right": d.MarginRight,
		"margin_bottom": d.MarginBottom, "margin_left": d.MarginLeft,
		"header_height": d.HeaderHeight, "footer_height": d.FooterHeight,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("invalid %s %g", name, *v)
		}
	}
	for _, color := range []string{d.TableHeaderFill, d.RuleColor} {
		if color == "" {
			continue
		}
		if _, err := layout.ParseColor(color); err != nil {
			return err
		}
	}
	for kind, vis := range d.BoxVisibility {
		if _, err := layout.ParseVisibility(vis); err != nil {
			return fmt.Errorf("box %s: %w", kind, err)
		}
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Logger builds the logrus logger described by the log section.
func (c *Config) Logger() *logrus.Logger {
	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(c.Log.Level); err == nil {
		logger.SetLevel(lvl)
	}
	if strings.EqualFold(c.Log.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// Options converts the document section to converter options.
func (c *Config) Options(logger *logrus.Logger) api.Options {
	d := c.Document
	o := api.DefaultOptions()
	o.Template = d.Template
	o.Logger = logger
	o.LogoPath = d.LogoPath
	o.ResourcePaths = append(o.ResourcePaths, d.ResourcePaths...)
	o.Title = d.Title
	o.Author = d.Author
	o.Subject = d.Subject
	o.Compress = d.Compress
	o.FooterLeft = d.FooterLeft
	o.FooterRight = d.FooterRight
	o.TableHeaderFill = d.TableHeaderFill
	o.RuleColor = d.RuleColor
	o.BoxVisibility = d.BoxVisibility
	if d.MaxLines > 0 {
		o.MaxLines = d.MaxLines
	}
	if d.TruncationMarker != nil {
		api.WithTruncationMarker(*d.TruncationMarker)(&o)
	}
	if size, ok := layout.LookupPageSize(d.PageSize); ok {
		o.PageWidth, o.PageHeight = size.Width, size.Height
	}
	o.MarginTop = mm(d.MarginTop)
	o.MarginRight = mm(d.MarginRight)
	o.MarginBottom = mm(d.MarginBottom)
	o.MarginLeft = mm(d.MarginLeft)
	o.HeaderHeight = mm(d.HeaderHeight)
	o.FooterHeight = mm(d.FooterHeight)
	return o
}

func mm(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v * layout.MM
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "quotepdf", "config.yaml")
	}
	return "quotepdf.yaml"
}
