package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/pthm-cable/escape/config"
)

// csvSink appends records to one CSV file, writing the header with the first batch.
type csvSink struct {
	file          *os.File
	headerWritten bool
}

func (s *csvSink) write(records any) error {
	if !s.headerWritten {
		if err := gocsv.Marshal(records, s.file); err != nil {
			return err
		}
		s.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, s.file)
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir   string
	runID string

	telemetry *csvSink
	perf      *csvSink
	bookmarks *csvSink
	lives     *csvSink
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir, runID: uuid.NewString()}

	for _, f := range []struct {
		name string
		dst  **csvSink
	}{
		{"telemetry.csv", &om.telemetry},
		{"perf.csv", &om.perf},
		{"bookmarks.csv", &om.bookmarks},
		{"lives.csv", &om.lives},
	} {
		file, err := os.Create(filepath.Join(dir, f.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", f.name, err)
		}
		*f.dst = &csvSink{file: file}
	}

	return om, nil
}

// RunID returns the identifier stamped on every record of this run.
func (om *OutputManager) RunID() string {
	if om == nil {
		return ""
	}
	return om.runID
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	stats.RunID = om.runID
	if err := om.telemetry.write([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd float64) error {
	if om == nil {
		return nil
	}
	rec := stats.ToCSV(windowEnd)
	rec.RunID = om.runID
	if err := om.perf.write([]PerfStatsCSV{rec}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteBookmark writes a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	b.RunID = om.runID
	if err := om.bookmarks.write([]Bookmark{b}); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
	}
	return nil
}

// WriteLife writes a finished life to lives.csv.
func (om *OutputManager) WriteLife(life LifeStats) error {
	if om == nil {
		return nil
	}
	life.RunID = om.runID
	if err := om.lives.write([]LifeStats{life}); err != nil {
		return fmt.Errorf("writing life: %w", err)
	}
	return nil
}

// WriteHallOfFame saves the hall of fame as JSON.
func (om *OutputManager) WriteHallOfFame(hof *HallOfFame) error {
	if om == nil || hof == nil {
		return nil
	}
	data, err := hof.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling hall of fame: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "hall_of_fame.json"), data, 0644); err != nil {
		return fmt.Errorf("writing hall_of_fame.json: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, s := range []*csvSink{om.telemetry, om.perf, om.bookmarks, om.lives} {
		if s == nil || s.file == nil {
			continue
		}
		if err := s.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
