package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/quotepdf/internal/layout"
	"github.com/gompdf/quotepdf/pkg/api"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  write_timeout: 30s
document:
  template: detailed
  page_size: letter
  margin_top: 20
  truncation_marker: ""
auth:
  jwt_secret: s3cret
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "detailed", cfg.Document.Template)
	assert.Equal(t, "preventivo", cfg.Document.Filename)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())

	opts := cfg.Options(nil)
	assert.Equal(t, "detailed", opts.Template)
	assert.Equal(t, layout.PageSizeLetter.Width, opts.PageWidth)
	assert.InDelta(t, 20*layout.MM, opts.MarginTop, 1e-9)
	assert.Zero(t, opts.MarginLeft)
	assert.True(t, opts.SilentTruncation)

	logger := cfg.Logger()
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = Load(writeConfig(t, "document:\n  page_size: B5\n"))
	assert.ErrorContains(t, err, "unknown page size")

	_, err = Load(writeConfig(t, "log:\n  level: loud\n"))
	assert.ErrorContains(t, err, "invalid log level")
}

func TestLoadOrDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	path := DefaultConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9191\n"), 0o644))
	cfg, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
}

func TestDocumentStyleOverrides(t *testing.T) {
	path := writeConfig(t, `
document:
  template: detailed
  footer_left: Bianchi Spa
  footer_right: bianchi.example
  table_header_fill: "#ddeeff"
  rule_color: rgb(10, 20, 30)
  box_visibility:
    logo: first
    totals: always
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	opts := cfg.Options(nil)
	assert.Equal(t, "Bianchi Spa", opts.FooterLeft)
	assert.Equal(t, "bianchi.example", opts.FooterRight)

	tpl, err := api.NewWithOptions(opts).Template()
	require.NoError(t, err)
	assert.Equal(t, "Bianchi Spa", tpl.FooterLeft)
	assert.Equal(t, "bianchi.example", tpl.FooterRight)
	assert.Equal(t, layout.Color{R: 0xdd, G: 0xee, B: 0xff}, tpl.TableHeaderFill)
	assert.Equal(t, layout.Color{R: 10, G: 20, B: 30}, tpl.RuleColor)
	logo, _ := tpl.Box(layout.BoxLogo)
	assert.Equal(t, layout.FirstPage, logo.Visibility)
	totals, _ := tpl.Box(layout.BoxTotals)
	assert.Equal(t, layout.Always, totals.Visibility)
}

func TestDefaultFooterReachesTemplate(t *testing.T) {
	tpl, err := api.NewWithOptions(Default().Options(nil)).Template()
	require.NoError(t, err)
	assert.Equal(t, "MITO Srl", tpl.FooterLeft)
	assert.Equal(t, "www.mito.it", tpl.FooterRight)
}

func TestValidateRejectsBadDocumentValues(t *testing.T) {
	_, err := Load(writeConfig(t, "document:\n  rule_color: teal\n"))
	assert.ErrorContains(t, err, "unsupported color")

	_, err = Load(writeConfig(t, "document:\n  box_visibility:\n    logo: sometimes\n"))
	assert.ErrorContains(t, err, "unknown box visibility")

	_, err = Load(writeConfig(t, "document:\n  margin_left: -3\n"))
	assert.ErrorContains(t, err, "invalid margin_left")
}

func TestZeroLengthKeepsTemplateDefault(t *testing.T) {
	cfg, err := Load(writeConfig(t, "document:\n  margin_top: 0\n"))
	require.NoError(t, err)

	tpl, err := api.NewWithOptions(cfg.Options(nil)).Template()
	require.NoError(t, err)
	assert.InDelta(t, layout.DefaultGeometry().MarginTop, tpl.Geometry.MarginTop, 1e-9)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Document.Template = "compact"
	header := 30.0
	cfg.Document.HeaderHeight = &header

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDefaultOptionsMatchConverterDefaults(t *testing.T) {
	opts := Default().Options(nil)
	assert.Equal(t, "classic", opts.Template)
	assert.Equal(t, 4, opts.MaxLines)
	assert.Equal(t, "…", opts.TruncationMarker)
	assert.Equal(t, layout.PageSizeA4.Height, opts.PageHeight)
	assert.True(t, opts.Compress)
}
