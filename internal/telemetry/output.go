package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"falling-sand/internal/config"
)

// CSVWriter streams records to w, writing the header with the first batch.
type CSVWriter struct {
	w             io.Writer
	headerWritten bool
}

// NewCSVWriter wraps w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

// Write appends records. records must be a slice of structs with csv tags.
func (cw *CSVWriter) Write(records any) error {
	if !cw.headerWritten {
		if err := gocsv.Marshal(records, cw.w); err != nil {
			return err
		}
		cw.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, cw.w)
}

// Output writes a run's telemetry into a directory: ticks.csv with every
// tick, summary.csv with one row per scenario and the effective settings.
// A nil Output discards everything.
type Output struct {
	dir         string
	ticksFile   *os.File
	summaryFile *os.File
	ticks       *CSVWriter
	summary     *CSVWriter
}

// NewOutput creates dir and its CSV files. An empty dir disables output.
func NewOutput(dir string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	ticksFile, err := os.Create(filepath.Join(dir, "ticks.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating ticks.csv: %w", err)
	}
	summaryFile, err := os.Create(filepath.Join(dir, "summary.csv"))
	if err != nil {
		ticksFile.Close()
		return nil, fmt.Errorf("creating summary.csv: %w", err)
	}
	return &Output{
		dir:         dir,
		ticksFile:   ticksFile,
		summaryFile: summaryFile,
		ticks:       NewCSVWriter(ticksFile),
		summary:     NewCSVWriter(summaryFile),
	}, nil
}

// WriteSettings saves the effective settings as YAML.
func (o *Output) WriteSettings(s config.Settings) error {
	if o == nil {
		return nil
	}
	return s.WriteYAML(filepath.Join(o.dir, "config.yaml"))
}

// WriteTicks appends tick records to ticks.csv.
func (o *Output) WriteTicks(records []TickRecord) error {
	if o == nil || len(records) == 0 {
		return nil
	}
	if err := o.ticks.Write(records); err != nil {
		return fmt.Errorf("writing ticks: %w", err)
	}
	return nil
}

// WriteSummary appends one summary row to summary.csv.
func (o *Output) WriteSummary(s Summary) error {
	if o == nil {
		return nil
	}
	if err := o.summary.Write([]Summary{s}); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// Close flushes and closes the files.
func (o *Output) Close() error {
	if o == nil {
		return nil
	}
	err1 := o.ticksFile.Close()
	err2 := o.summaryFile.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
