package entities

import "time"

// ScenarioStatus is the outcome of one scenario
type ScenarioStatus string

const (
	ScenarioPassed  ScenarioStatus = "passed"
	ScenarioFailed  ScenarioStatus = "failed"
	ScenarioSkipped ScenarioStatus = "skipped"
)

// ScenarioResult records how a single scenario ended
type ScenarioResult struct {
	Name          string         `json:"name"`
	Status        ScenarioStatus `json:"status"`
	Message       string         `json:"message,omitempty"`
	TeardownError string         `json:"teardown_error,omitempty"`
	Screenshot    string         `json:"screenshot,omitempty"`
	Duration      time.Duration  `json:"duration"`
}

// RunReport summarizes one suite run against one browser
type RunReport struct {
	RunID      string           `json:"run_id"`
	Browser    BrowserName      `json:"browser"`
	Backend    Backend          `json:"backend"`
	BaseURL    string           `json:"base_url"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Scenarios  []ScenarioResult `json:"scenarios"`
}

// Failed returns the number of scenarios that did not pass
func (r RunReport) Failed() int {
	n := 0
	for _, s := range r.Scenarios {
		if s.Status == ScenarioFailed {
			n++
		}
	}
	return n
}

// Passed reports whether every scenario that ran succeeded
func (r RunReport) Passed() bool {
	return r.Failed() == 0
}
