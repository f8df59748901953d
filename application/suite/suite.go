// Package suite runs the login regression scenarios against one shared browser.
package suite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"login_regression/application/login"
	"login_regression/domain/entities"
	"login_regression/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const (
	clearLocalStorage   = "window.localStorage.clear()"
	clearSessionStorage = "window.sessionStorage.clear()"
)

// ErrNotOpen is returned when a scenario is prepared before Open
var ErrNotOpen = errors.New("suite browser is not open")

// Timeouts bound the error banner waits of the scenarios
type Timeouts struct {
	ErrorBanner      time.Duration
	ValidLoginBanner time.Duration
}

// DefaultTimeouts are used unless WithTimeouts is given
var DefaultTimeouts = Timeouts{
	ErrorBanner:      login.ErrorMessageTimeout,
	ValidLoginBanner: 5 * time.Second,
}

// Env is handed to every scenario. Login is built fresh for each scenario.
type Env struct {
	Browser  interfaces.BrowserHandle
	Login    *login.Page
	URLs     login.URLs
	Timeouts Timeouts
}

// Suite owns the single browser handle shared by all scenarios of a run
type Suite struct {
	cfg      entities.Config
	urls     login.URLs
	factory  interfaces.DriverFactory
	logger   *logrus.Logger
	pageOpts []login.Option
	timeouts Timeouts
	browser  interfaces.BrowserHandle
}

// Option customizes a Suite
type Option func(*Suite)

// WithPageOptions passes options to every login page the suite builds
func WithPageOptions(opts ...login.Option) Option {
	return func(s *Suite) {
		s.pageOpts = append(s.pageOpts, opts...)
	}
}

// WithTimeouts replaces DefaultTimeouts
func WithTimeouts(t Timeouts) Option {
	return func(s *Suite) {
		s.timeouts = t
	}
}

// New creates a suite for cfg. The browser is started by Open.
func New(cfg entities.Config, factory interfaces.DriverFactory, logger *logrus.Logger, opts ...Option) (*Suite, error) {
	urls, err := login.NewURLs(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	s := &Suite{
		cfg:      cfg,
		urls:     urls,
		factory:  factory,
		logger:   logger,
		timeouts: DefaultTimeouts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// URLs returns the URLs under test
func (s *Suite) URLs() login.URLs {
	return s.urls
}

// Browser returns the open handle, or nil
func (s *Suite) Browser() interfaces.BrowserHandle {
	return s.browser
}

// Open starts the browser. A suite holds at most one browser at a time.
func (s *Suite) Open(ctx context.Context) error {
	if s.browser != nil {
		return fmt.Errorf("suite browser is already open")
	}
	browser, err := s.factory.GetDriver(ctx, s.cfg.Browser(), interfaces.DriverOptions{
		InstallDir: s.cfg.DriverInstallDir,
		Headless:   s.cfg.Headless,
		Backend:    s.cfg.Backend,
	})
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", s.cfg.Browser(), err)
	}
	s.browser = browser
	return nil
}

// Close quits the browser. Calling it again is a no-op.
func (s *Suite) Close() error {
	if s.browser == nil {
		return nil
	}
	browser := s.browser
	s.browser = nil
	if err := browser.Quit(); err != nil {
		return fmt.Errorf("failed to quit browser: %w", err)
	}
	s.logger.Debug("browser stopped")
	return nil
}

// SetUp navigates to the login page and builds a fresh page object with the
// configured credentials as defaults
func (s *Suite) SetUp(ctx context.Context) (*Env, error) {
	if s.browser == nil {
		return nil, ErrNotOpen
	}
	if err := s.browser.Navigate(ctx, s.urls.Login); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.urls.Login, err)
	}
	return &Env{
		Browser:  s.browser,
		Login:    login.NewPage(s.browser, s.cfg.ValidUsername, s.cfg.ValidPassword, s.logger, s.pageOpts...),
		URLs:     s.urls,
		Timeouts: s.timeouts,
	}, nil
}

// TearDown removes cookies and both web storage areas. The current page is kept.
func (s *Suite) TearDown(ctx context.Context) error {
	if s.browser == nil {
		return ErrNotOpen
	}
	var errs []error
	if err := s.browser.DeleteAllCookies(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to delete cookies: %w", err))
	}
	for _, script := range []string{clearLocalStorage, clearSessionStorage} {
		if _, err := s.browser.ExecuteScript(ctx, script); err != nil {
			errs = append(errs, fmt.Errorf("failed to run %q: %w", script, err))
		}
	}
	return errors.Join(errs...)
}
