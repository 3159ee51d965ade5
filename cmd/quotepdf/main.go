package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/gompdf/quotepdf/internal/config"
	"github.com/gompdf/quotepdf/internal/httpapi"
	"github.com/gompdf/quotepdf/pkg/api"
)

func main() {
	var (
		inputFile  string
		outputFile string
		template   string
		configFile string
		serve      bool
		verbose    bool
		sample     bool
	)

	flag.StringVar(&inputFile, "input", "", "Input JSON payload path (- for stdin)")
	flag.StringVar(&outputFile, "output", "", "Output PDF file path (- for stdout)")
	flag.StringVar(&template, "template", "", "Template name: "+strings.Join(api.TemplateNames(), ", "))
	flag.StringVar(&configFile, "config", "", "YAML configuration file (defaults to "+config.DefaultConfigPath()+" when present)")
	flag.BoolVar(&serve, "serve", false, "Run the HTTP service")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&sample, "sample", false, "Render the built-in sample quote")
	flag.Parse()

	cfg, err := config.LoadOrDefault(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if template != "" {
		cfg.Document.Template = template
	}
	if verbose {
		cfg.Log.Level = logrus.DebugLevel.String()
	}
	logger := cfg.Logger()
	logger.SetOutput(os.Stderr)

	opts := cfg.Options(logger)
	opts.Debug = verbose
	converter := api.NewWithOptions(opts)
	if _, err := converter.Template(); err != nil {
		logger.WithError(err).Fatal("invalid document configuration")
	}

	if serve {
		server := httpapi.NewServer(cfg, converter, logger)
		if err := httpapi.RunWithGracefulShutdown(server, logger, cfg.Server.ShutdownTimeout); err != nil {
			logger.WithError(err).Fatal("server stopped")
		}
		return
	}

	if inputFile == "" && !sample {
		fmt.Fprintln(os.Stderr, "Error: -input or -sample is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(converter, logger, inputFile, outputFile, sample, cfg.Document.Filename); err != nil {
		logger.WithError(err).Error("conversion failed")
		os.Exit(1)
	}
}

func run(c *api.Converter, log logrus.FieldLogger, inputFile, outputFile string, sample bool, filename string) error {
	var (
		out []byte
		err error
	)
	switch {
	case sample:
		out, err = c.BuildSample()
	case inputFile == "-":
		var data []byte
		data, err = io.ReadAll(io.LimitReader(os.Stdin, api.MaxInputBytes))
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		out, err = c.ConvertBytes(data)
	default:
		var data []byte
		data, err = os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read payload file: %w", err)
		}
		out, err = c.ConvertBytes(data)
	}
	if err != nil {
		return err
	}

	if outputFile == "" {
		outputFile = defaultOutput(inputFile, filename)
	}
	if outputFile == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("refusing to write PDF to a terminal, redirect stdout or use -output")
		}
		_, err := os.Stdout.Write(out)
		return err
	}
	if err := api.WriteFile(outputFile, out); err != nil {
		return err
	}
	log.WithField("output", outputFile).Info("quote written")
	return nil
}

func defaultOutput(inputFile, filename string) string {
	if inputFile == "" || inputFile == "-" {
		return filename + ".pdf"
	}
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".pdf"
}
