package interfaces

import (
	"context"

	"login_regression/domain/entities"
)

// BrowserHandle is a live session controlling one browser instance.
// A handle is not safe for concurrent use.
type BrowserHandle interface {
	// Navigate loads url in the current tab
	Navigate(ctx context.Context, url string) error

	// CurrentURL returns the URL of the current tab
	CurrentURL(ctx context.Context) (string, error)

	// FindElement looks the locator up once, without waiting.
	// It returns ErrElementNotFound when nothing matches.
	FindElement(ctx context.Context, locator entities.Locator) (Element, error)

	// DeleteAllCookies removes every cookie visible to the session
	DeleteAllCookies(ctx context.Context) error

	// ExecuteScript runs JavaScript in the current page
	ExecuteScript(ctx context.Context, script string) (interface{}, error)

	// Screenshot captures the visible page as PNG
	Screenshot(ctx context.Context) ([]byte, error)

	// Quit ends the session and stops the browser
	Quit() error
}

// Element is a located page element
type Element interface {
	Clear(ctx context.Context) error
	SendKeys(ctx context.Context, text string) error
	Click(ctx context.Context) error
	Text(ctx context.Context) (string, error)
}

// DriverOptions configures how a browser is started
type DriverOptions struct {
	InstallDir string
	Headless   bool
	Backend    entities.Backend
}

// DriverFactory starts browsers by name
type DriverFactory interface {
	GetDriver(ctx context.Context, name entities.BrowserName, opts DriverOptions) (BrowserHandle, error)
}

// DriverResolver locates the WebDriver executable for a browser.
// Implementations may download the binary into installDir.
type DriverResolver interface {
	Resolve(browser entities.BrowserName, installDir string) (string, error)
}
