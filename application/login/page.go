// Package login implements the page object for the shop's login form.
package login

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"login_regression/domain/entities"
	"login_regression/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultTimeout bounds element lookups for form interaction
	DefaultTimeout = 10 * time.Second
	// ErrorMessageTimeout bounds the wait for the error banner
	ErrorMessageTimeout = 3 * time.Second
	// DefaultPollInterval is the pause between two lookups while waiting
	DefaultPollInterval = 250 * time.Millisecond
)

// URLs of the site under test
type URLs struct {
	Base  string
	Login string
}

// NewURLs derives the login URL from the base URL
func NewURLs(base string) (URLs, error) {
	b, err := url.Parse(base)
	if err != nil {
		return URLs{}, fmt.Errorf("invalid base url %q: %w", base, err)
	}
	if b.Scheme == "" || b.Host == "" {
		return URLs{}, fmt.Errorf("invalid base url %q: scheme and host are required", base)
	}
	// browsers report the bare origin with a trailing slash
	if b.Path == "" {
		b.Path = "/"
	}
	login := b.ResolveReference(&url.URL{Path: "login"})
	return URLs{Base: b.String(), Login: login.String()}, nil
}

// Page drives the login form through a borrowed browser handle.
// It must not be used after the handle has been quit.
type Page struct {
	browser      interfaces.BrowserHandle
	username     string
	password     string
	logger       *logrus.Logger
	pollInterval time.Duration
}

// Option customizes a Page
type Option func(*Page)

// WithPollInterval changes how often Locate retries a lookup
func WithPollInterval(d time.Duration) Option {
	return func(p *Page) {
		if d > 0 {
			p.pollInterval = d
		}
	}
}

// NewPage creates a login page object. username and password are the defaults
// typed by InsertUsername and InsertPassword.
func NewPage(browser interfaces.BrowserHandle, username, password string, logger *logrus.Logger, opts ...Option) *Page {
	logger.Debugf("Login.username = %s", username)
	logger.Debugf("Login.password = %s", mask(password))

	p := &Page{
		browser:      browser,
		username:     username,
		password:     password,
		logger:       logger,
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Locate waits until an element matching locator is present. It returns an error
// matching interfaces.ErrTimeout when timeout elapses first; lookup failures other
// than a missing element are returned at once. A non-positive timeout means DefaultTimeout.
func (p *Page) Locate(ctx context.Context, locator entities.Locator, timeout time.Duration) (interfaces.Element, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	p.logger.Debugf("locate XPath: %s", locator)

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		el, err := p.browser.FindElement(ctx, locator)
		if err == nil {
			return el, nil
		}
		if !errors.Is(err, interfaces.ErrElementNotFound) {
			return nil, fmt.Errorf("failed to locate %s: %w", locator, err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("stopped waiting for %s: %w", locator, ctx.Err())
		case <-deadline.C:
			return nil, fmt.Errorf("%w after %s waiting for %s", interfaces.ErrTimeout, timeout, locator)
		case <-ticker.C:
		}
	}
}

// Insert replaces the value of the element at locator with text
func (p *Page) Insert(ctx context.Context, locator entities.Locator, text string, timeout time.Duration) (interfaces.Element, error) {
	el, err := p.Locate(ctx, locator, timeout)
	if err != nil {
		return nil, err
	}
	if err := el.Clear(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear %s: %w", locator, err)
	}
	if err := el.SendKeys(ctx, text); err != nil {
		return nil, fmt.Errorf("failed to type into %s: %w", locator, err)
	}
	return el, nil
}

// InsertUsername types the default username
func (p *Page) InsertUsername(ctx context.Context) error {
	return p.InsertUsernameValue(ctx, p.username)
}

// InsertUsernameValue types username instead of the default
func (p *Page) InsertUsernameValue(ctx context.Context, username string) error {
	if _, err := p.Insert(ctx, entities.UsernameInput, username, DefaultTimeout); err != nil {
		return err
	}
	p.logger.Infof("username is set to: %s", username)
	return nil
}

// InsertPassword types the default password
func (p *Page) InsertPassword(ctx context.Context) error {
	return p.InsertPasswordValue(ctx, p.password)
}

// InsertPasswordValue types password instead of the default
func (p *Page) InsertPasswordValue(ctx context.Context, password string) error {
	if _, err := p.Insert(ctx, entities.PasswordInput, password, DefaultTimeout); err != nil {
		return err
	}
	p.logger.Infof("password is set to: %s", mask(password))
	return nil
}

// Submit clicks the login button
func (p *Page) Submit(ctx context.Context) error {
	el, err := p.Locate(ctx, entities.SubmitButton, DefaultTimeout)
	if err != nil {
		return err
	}
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("failed to click %s: %w", entities.SubmitButton, err)
	}
	p.logger.Info("pressed submit")
	return nil
}

// ErrorMessage returns the error banner text and true, or false when no banner
// appears within timeout. Any failure while looking, not only a timeout, is
// reported as no banner. A non-positive timeout means ErrorMessageTimeout.
func (p *Page) ErrorMessage(ctx context.Context, timeout time.Duration) (string, bool) {
	msg, ok, err := p.LookupErrorMessage(ctx, timeout)
	if err != nil {
		p.logger.Debugf("no error message on screen: %v", err)
		return "", false
	}
	return msg, ok
}

// LookupErrorMessage is ErrorMessage with strict semantics: only a timeout
// means no banner, other failures are returned.
func (p *Page) LookupErrorMessage(ctx context.Context, timeout time.Duration) (string, bool, error) {
	if timeout <= 0 {
		timeout = ErrorMessageTimeout
	}

	el, err := p.Locate(ctx, entities.ErrorBanner, timeout)
	if errors.Is(err, interfaces.ErrTimeout) {
		p.logger.Debug("no error message on screen")
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	msg, err := el.Text(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", entities.ErrorBanner, err)
	}
	p.logger.Debugf("error message on screen: %s", msg)
	return msg, true, nil
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return fmt.Sprintf("<%d characters>", len(secret))
}
