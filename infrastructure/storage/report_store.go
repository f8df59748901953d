package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"login_regression/domain/entities"
	"login_regression/domain/interfaces"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type reportStore struct {
	dir string
}

// NewReportStore - creates a report store writing below dir
func NewReportStore(dir string) (interfaces.ReportStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("report directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	return &reportStore{dir: dir}, nil
}

// SaveReport - writes the run report as <dir>/<run id>/report.json
func (s *reportStore) SaveReport(report entities.RunReport) (string, error) {
	runDir, err := s.runDir(report.RunID)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(runDir, "report.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// SaveScreenshot - writes png as <dir>/<run id>/<scenario>.png
func (s *reportStore) SaveScreenshot(runID, scenario string, png []byte) (string, error) {
	runDir, err := s.runDir(runID)
	if err != nil {
		return "", err
	}

	path := filepath.Join(runDir, sanitize(scenario)+".png")
	if err := os.WriteFile(path, png, 0644); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}
	return path, nil
}

func (s *reportStore) runDir(runID string) (string, error) {
	if runID == "" {
		return "", fmt.Errorf("run id is required")
	}
	dir := filepath.Join(s.dir, sanitize(runID))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}
	return dir, nil
}

// LoadReport - reads a report written by SaveReport
func LoadReport(path string) (entities.RunReport, error) {
	var report entities.RunReport
	data, err := os.ReadFile(path)
	if err != nil {
		return report, err
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return report, fmt.Errorf("failed to decode report %s: %w", path, err)
	}
	return report, nil
}

func sanitize(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}
