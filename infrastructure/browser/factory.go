package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"login_regression/domain/entities"
	"login_regression/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const defaultInstallDir = ".login_regression/drivers"

// UnsupportedBrowserError is returned for browser names outside entities.SupportedBrowsers
type UnsupportedBrowserError struct {
	Name string
}

func (e *UnsupportedBrowserError) Error() string {
	return fmt.Sprintf("unknown browser: %q (supported: %v)", e.Name, entities.SupportedBrowsers)
}

// Is makes errors.Is(err, interfaces.ErrUnsupportedBrowser) hold
func (e *UnsupportedBrowserError) Is(target error) bool {
	return target == interfaces.ErrUnsupportedBrowser
}

// Factory starts browsers. The zero value is not usable, see NewFactory.
type Factory struct {
	logger     *logrus.Logger
	defaultDir string
	resolver   interfaces.DriverResolver
	findBinary func(entities.BrowserName) string

	startSelenium   func(seleniumLaunch, *logrus.Logger) (interfaces.BrowserHandle, error)
	startPlaywright func(playwrightLaunch, *logrus.Logger) (interfaces.BrowserHandle, error)
}

// FactoryOption customizes a Factory
type FactoryOption func(*Factory)

// WithDefaultInstallDir replaces the directory used when no valid install dir is given
func WithDefaultInstallDir(dir string) FactoryOption {
	return func(f *Factory) {
		f.defaultDir = dir
	}
}

// WithDriverResolver replaces how WebDriver executables are acquired
func WithDriverResolver(r interfaces.DriverResolver) FactoryOption {
	return func(f *Factory) {
		f.resolver = r
	}
}

// WithBrowserBinaryLookup replaces how browser executables are located
func WithBrowserBinaryLookup(find func(entities.BrowserName) string) FactoryOption {
	return func(f *Factory) {
		f.findBinary = find
	}
}

// NewFactory creates a driver factory
func NewFactory(logger *logrus.Logger, opts ...FactoryOption) *Factory {
	local := NewLocalDriverResolver()
	f := &Factory{
		logger:          logger,
		defaultDir:      DefaultInstallDir(),
		resolver:        local,
		findBinary:      local.BrowserBinary,
		startSelenium:   startSeleniumSession,
		startPlaywright: startPlaywrightSession,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// DefaultInstallDir is where drivers go when the configured directory is unusable
func DefaultInstallDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, defaultInstallDir)
}

// GetDriver starts the named browser and returns a live handle to it.
// Unknown names yield an *UnsupportedBrowserError.
func (f *Factory) GetDriver(ctx context.Context, name entities.BrowserName, opts interfaces.DriverOptions) (interfaces.BrowserHandle, error) {
	if !name.IsSupported() {
		f.logger.Errorf("unknown browser: %s", name)
		return nil, &UnsupportedBrowserError{Name: string(name)}
	}

	installDir, err := f.installDir(opts.InstallDir)
	if err != nil {
		return nil, err
	}

	backend := opts.Backend
	if backend == "" {
		backend = entities.BackendSelenium
	}

	f.logger.Debugf("get browser: %s", name)
	f.logger.Debugf("backend: %s", backend)
	f.logger.Debugf("headless: %t", opts.Headless)
	f.logger.Debugf("driver download directory: %s", installDir)

	if name == entities.BrowserIE {
		f.logger.Warn("Stop using Internet Explorer")
	}

	switch backend {
	case entities.BackendSelenium:
		launch, err := f.seleniumLaunch(name, installDir, opts.Headless)
		if err != nil {
			return nil, err
		}
		return f.startSelenium(launch, f.logger)
	case entities.BackendPlaywright:
		launch, err := f.playwrightLaunch(name, installDir, opts.Headless)
		if err != nil {
			return nil, err
		}
		return f.startPlaywright(launch, f.logger)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// installDir validates dir and falls back to the default directory
func (f *Factory) installDir(dir string) (string, error) {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
		f.logger.Errorf("given install_dir is faulty: %s", dir)
	}
	f.logger.Debugf("revert to: %s", f.defaultDir)

	if err := os.MkdirAll(f.defaultDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create driver directory: %w", err)
	}
	return f.defaultDir, nil
}

var _ interfaces.DriverFactory = (*Factory)(nil)
