package io

import (
	"encoding/json"
	"fmt"
	goio "io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/williampepple1/index-scraper/internal/config"
	"github.com/williampepple1/index-scraper/pkg/models"
)

// ResultWriter writes readings to stdout or a file
type ResultWriter struct {
	Config *config.OutputConfig

	out    goio.Writer
	closer goio.Closer
	yaml   *yaml.Encoder
}

// NewResultWriter creates a writer for the output configuration. An empty
// file name writes to stdout; otherwise the file is opened for appending.
func NewResultWriter(cfg *config.OutputConfig) (*ResultWriter, error) {
	if cfg.File == "" {
		return NewResultWriterTo(cfg, os.Stdout), nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open output file %s: %w", cfg.File, err)
	}
	w := NewResultWriterTo(cfg, f)
	w.closer = f
	return w, nil
}

// NewResultWriterTo creates a writer on top of w
func NewResultWriterTo(cfg *config.OutputConfig, w goio.Writer) *ResultWriter {
	return &ResultWriter{
		Config: cfg,
		out:    w,
	}
}

// Write writes a single reading in the configured format
func (w *ResultWriter) Write(r models.Reading) error {
	switch w.Config.Format {
	case "", "text":
		_, err := fmt.Fprintln(w.out, FormatText(r))
		return err

	case "json":
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w.out, string(data))
		return err

	case "yaml":
		if w.yaml == nil {
			w.yaml = yaml.NewEncoder(w.out)
			w.yaml.SetIndent(2)
		}
		return w.yaml.Encode(r)

	default:
		return fmt.Errorf("unsupported output format: %s", w.Config.Format)
	}
}

// Close flushes pending output and closes the file, if any
func (w *ResultWriter) Close() error {
	var err error
	if w.yaml != nil {
		err = w.yaml.Close()
		w.yaml = nil
	}
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return err
}

// FormatText renders a reading as a single human-readable line
func FormatText(r models.Reading) string {
	name := r.Site
	if name == "" {
		name = r.URL
	}

	line := fmt.Sprintf("%s %s", r.Timestamp.Format(time.RFC3339), name)
	switch {
	case r.HasValue() && r.Label != "":
		line += fmt.Sprintf(" value=%d (%s)", *r.Value, r.Label)
	case r.HasValue():
		line += fmt.Sprintf(" value=%d", *r.Value)
	default:
		line += " value=absent"
	}
	line += " status=" + r.Status
	if r.Cached {
		line += " cached"
	}
	if r.Err != "" {
		line += fmt.Sprintf(" error=%q", r.Err)
	}
	return line
}
