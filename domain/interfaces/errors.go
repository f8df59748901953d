package interfaces

import "errors"

var (
	// ErrElementNotFound is returned by BrowserHandle.FindElement when no element matches
	ErrElementNotFound = errors.New("element not found")

	// ErrTimeout is returned when a bounded wait expires
	ErrTimeout = errors.New("timed out")

	// ErrUnsupportedBrowser is matched by errors for browser names outside the supported set
	ErrUnsupportedBrowser = errors.New("unsupported browser")

	// ErrBrowserUnavailable means the browser is known but cannot be driven by the selected backend
	ErrBrowserUnavailable = errors.New("browser unavailable for backend")

	// ErrDriverNotFound means no WebDriver executable could be located
	ErrDriverNotFound = errors.New("webdriver executable not found")
)
