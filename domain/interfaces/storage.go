package interfaces

import "login_regression/domain/entities"

// ReportStore persists run artifacts
type ReportStore interface {
	// SaveReport writes the run report and returns where it was stored
	SaveReport(report entities.RunReport) (string, error)

	// SaveScreenshot stores a PNG captured for a scenario and returns its path
	SaveScreenshot(runID, scenario string, png []byte) (string, error)
}
