package suite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"login_regression/domain/entities"
	"login_regression/domain/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Runner executes scenarios one after another around a Suite
type Runner struct {
	suite  *Suite
	cfg    entities.Config
	store  interfaces.ReportStore
	logger *logrus.Logger
	now    func() time.Time
	newID  func() string
}

// NewRunner creates a runner. store may be nil, in which case no report or
// screenshot is written.
func NewRunner(s *Suite, cfg entities.Config, store interfaces.ReportStore, logger *logrus.Logger) *Runner {
	return &Runner{
		suite:  s,
		cfg:    cfg,
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Run opens the browser, runs every scenario with SetUp/TearDown around it and
// quits the browser on every exit path. A scenario failure does not stop the run;
// it shows up in the report. The returned error is about the run itself.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) (report entities.RunReport, err error) {
	report = entities.RunReport{
		RunID:     r.newID(),
		Browser:   r.cfg.Browser(),
		Backend:   r.cfg.Backend,
		BaseURL:   r.suite.URLs().Base,
		StartedAt: r.now(),
	}
	log := r.logger.WithFields(logrus.Fields{
		"run_id":  report.RunID,
		"browser": report.Browser,
	})

	if err := r.suite.Open(ctx); err != nil {
		return report, err
	}
	defer func() {
		if cerr := r.suite.Close(); cerr != nil {
			log.Warnf("Failed to stop browser: %v", cerr)
			err = errors.Join(err, cerr)
		}
		report.FinishedAt = r.now()
		r.save(log, &report)
	}()

	for _, sc := range scenarios {
		if ctx.Err() != nil {
			report.Scenarios = append(report.Scenarios, entities.ScenarioResult{
				Name:    sc.Name,
				Status:  entities.ScenarioSkipped,
				Message: ctx.Err().Error(),
			})
			continue
		}
		result := r.runOne(ctx, log, report.RunID, sc)
		report.Scenarios = append(report.Scenarios, result)
	}

	return report, ctx.Err()
}

func (r *Runner) runOne(ctx context.Context, log *logrus.Entry, runID string, sc Scenario) entities.ScenarioResult {
	log = log.WithField("scenario", sc.Name)
	start := r.now()
	result := entities.ScenarioResult{Name: sc.Name, Status: entities.ScenarioPassed}

	env, err := r.suite.SetUp(ctx)
	if err == nil {
		err = runProtected(ctx, sc, env)
	}
	if err != nil {
		result.Status = entities.ScenarioFailed
		result.Message = err.Error()
		result.Screenshot = r.screenshot(ctx, log, runID, sc.Name)
	}

	if terr := r.suite.TearDown(ctx); terr != nil {
		log.Warnf("Teardown failed: %v", terr)
		result.TeardownError = terr.Error()
	}

	result.Duration = r.now().Sub(start)
	if result.Status == entities.ScenarioPassed {
		log.Infof("ok (%s)", result.Duration)
	} else {
		log.Errorf("FAIL: %s", result.Message)
	}
	return result
}

// runProtected turns a panicking scenario into a failure
func runProtected(ctx context.Context, sc Scenario, env *Env) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("scenario panicked: %v", p)
		}
	}()
	return sc.Run(ctx, env)
}

func (r *Runner) screenshot(ctx context.Context, log *logrus.Entry, runID, scenario string) string {
	if r.store == nil || r.suite.Browser() == nil {
		return ""
	}
	png, err := r.suite.Browser().Screenshot(ctx)
	if err != nil {
		log.Warnf("Failed to take screenshot: %v", err)
		return ""
	}
	path, err := r.store.SaveScreenshot(runID, scenario, png)
	if err != nil {
		log.Warnf("Failed to save screenshot: %v", err)
		return ""
	}
	return path
}

func (r *Runner) save(log *logrus.Entry, report *entities.RunReport) {
	if r.store == nil {
		return
	}
	path, err := r.store.SaveReport(*report)
	if err != nil {
		log.Warnf("Failed to save report: %v", err)
		return
	}
	log.Infof("Report written to %s", path)
}
