package migration

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// StageResult records the outcome of a single migration stage. A failed
// stage keeps whatever Rows count it reached before the error.
type StageResult struct {
	Name     string        `json:"name"`
	Rows     int           `json:"rows"`
	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`

	err error
}

func (r StageResult) Failed() bool {
	return r.err != nil
}

type RunStats struct {
	Started  time.Time     `json:"started"`
	Finished time.Time     `json:"finished"`
	Stages   []StageResult `json:"stages"`
}

func (s *RunStats) record(name string, rows int, start time.Time, err error) {
	result := StageResult{
		Name:     name,
		Rows:     rows,
		Duration: time.Since(start),
		err:      err,
	}
	if err != nil {
		result.Error = err.Error()
	}
	s.Stages = append(s.Stages, result)
}

func (s *RunStats) Failed() bool {
	for _, stage := range s.Stages {
		if stage.Failed() {
			return true
		}
	}
	return false
}

func (s *RunStats) FailedCount() int {
	var failed int
	for _, stage := range s.Stages {
		if stage.Failed() {
			failed++
		}
	}
	return failed
}

func (s *RunStats) TotalRows() int {
	var total int
	for _, stage := range s.Stages {
		total += stage.Rows
	}
	return total
}

// WriteReport dumps the run to a timestamped JSON file in the working
// directory and returns its name.
func (s *RunStats) WriteReport() (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal migration report: %w", err)
	}

	filename := fmt.Sprintf("migration_report_%s.json", s.Started.Format("20060102_150405"))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write migration report: %w", err)
	}
	return filename, nil
}

func (s *RunStats) LogSummary() {
	failed := s.FailedCount()

	slog.Info("migration finished",
		slog.String("type", "mig"),
		slog.Int("stages", len(s.Stages)),
		slog.Int("failed", failed),
		slog.Int("total_rows", s.TotalRows()),
		slog.Duration("duration", s.Finished.Sub(s.Started)),
	)

	for _, stage := range s.Stages {
		if stage.Failed() {
			slog.Error("stage failed",
				slog.String("type", "error"),
				slog.String("stage", stage.Name),
				slog.Any("error", stage.err),
			)
		}
	}
}
