package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"login_regression/domain/entities"
	"login_regression/domain/interfaces"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

type engine string

const (
	engineChromium engine = "chromium"
	engineFirefox  engine = "firefox"
)

// playwrightLaunch is everything needed to start a browser through Playwright
type playwrightLaunch struct {
	Browser entities.BrowserName
	Engine  engine
	Run     *playwright.RunOptions
	Launch  playwright.BrowserTypeLaunchOptions
}

// playwrightLaunch builds install and launch options for name
func (f *Factory) playwrightLaunch(name entities.BrowserName, installDir string, headless bool) (playwrightLaunch, error) {
	launch := playwrightLaunch{
		Browser: name,
		Engine:  engineChromium,
		Run: &playwright.RunOptions{
			DriverDirectory: installDir,
			Verbose:         false,
		},
		Launch: playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(headless),
		},
	}

	switch name {
	case entities.BrowserChrome:
		launch.Launch.Channel = playwright.String("chrome")
		launch.Run.SkipInstallBrowsers = true
	case entities.BrowserChromium:
		launch.Run.Browsers = []string{"chromium"}
	case entities.BrowserBrave, entities.BrowserOpera:
		binary := f.findBinary(name)
		if binary == "" {
			return playwrightLaunch{}, fmt.Errorf("%w: %s executable not found, set %s",
				interfaces.ErrBrowserUnavailable, name, BrowserBinaryEnv(name))
		}
		f.logger.Infof("Using %s binary at: %s", name, binary)
		launch.Launch.ExecutablePath = playwright.String(binary)
		launch.Run.SkipInstallBrowsers = true
	case entities.BrowserFirefox:
		launch.Engine = engineFirefox
		launch.Run.Browsers = []string{"firefox"}
	case entities.BrowserEdge:
		launch.Launch.Channel = playwright.String("msedge")
		launch.Run.SkipInstallBrowsers = true
	case entities.BrowserIE:
		return playwrightLaunch{}, fmt.Errorf("%w: %s cannot be driven by playwright, use the selenium backend",
			interfaces.ErrBrowserUnavailable, name)
	default:
		return playwrightLaunch{}, &UnsupportedBrowserError{Name: string(name)}
	}

	return launch, nil
}

// PlaywrightController drives a browser through Playwright
type PlaywrightController struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	output  io.Closer
	logger  *logrus.Logger
}

// startPlaywrightSession installs the driver, launches the browser and opens one page
func startPlaywrightSession(launch playwrightLaunch, logger *logrus.Logger) (interfaces.BrowserHandle, error) {
	output := logger.WriterLevel(logrus.DebugLevel)
	launch.Run.Stdout = output
	launch.Run.Stderr = output

	if err := playwright.Install(launch.Run); err != nil {
		output.Close()
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(launch.Run)
	if err != nil {
		output.Close()
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browserType := pw.Chromium
	if launch.Engine == engineFirefox {
		browserType = pw.Firefox
	}

	browser, err := browserType.Launch(launch.Launch)
	if err != nil {
		pw.Stop()
		output.Close()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext()
	if err != nil {
		browser.Close()
		pw.Stop()
		output.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		pw.Stop()
		output.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	logger.Infof("Started %s session through playwright (%s)", launch.Browser, launch.Engine)

	return &PlaywrightController{
		pw:      pw,
		browser: browser,
		context: context,
		page:    page,
		output:  output,
		logger:  logger,
	}, nil
}

// Navigate - navigates to the specified URL
func (b *PlaywrightController) Navigate(ctx context.Context, url string) error {
	b.logger.Debugf("Navigating to: %s", url)
	_, err := b.page.Goto(url)
	return err
}

// CurrentURL - returns the URL of the page
func (b *PlaywrightController) CurrentURL(ctx context.Context) (string, error) {
	return b.page.URL(), nil
}

// FindElement - looks up an element by XPath without waiting
func (b *PlaywrightController) FindElement(ctx context.Context, locator entities.Locator) (interfaces.Element, error) {
	loc := b.page.Locator("xpath=" + locator.String())
	count, err := loc.Count()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrElementNotFound, locator)
	}
	return &playwrightElement{loc: loc.First()}, nil
}

// DeleteAllCookies - clears cookies of the browser context
func (b *PlaywrightController) DeleteAllCookies(ctx context.Context) error {
	return b.context.ClearCookies()
}

// ExecuteScript - runs script as a function body, so "return" works as with WebDriver
func (b *PlaywrightController) ExecuteScript(ctx context.Context, script string) (interface{}, error) {
	return b.page.Evaluate(scriptFunction(script))
}

func scriptFunction(script string) string {
	return "() => {\n" + script + "\n}"
}

// Screenshot - takes a screenshot of the current page
func (b *PlaywrightController) Screenshot(ctx context.Context) ([]byte, error) {
	return b.page.Screenshot()
}

// Quit - closes the context, the browser and the playwright driver
func (b *PlaywrightController) Quit() error {
	var errs []error

	if b.context != nil {
		if err := b.context.Close(); err != nil && !isClosedError(err) {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
		b.context = nil
	}

	if b.browser != nil {
		if err := b.browser.Close(); err != nil && !isClosedError(err) {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
		b.browser = nil
	}

	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
		b.pw = nil
	}

	if b.output != nil {
		b.output.Close()
		b.output = nil
	}

	return errors.Join(errs...)
}

// isClosedError - reports errors from closing an already closed target
func isClosedError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "closed") || strings.Contains(errStr, "target closed")
}

type playwrightElement struct {
	loc playwright.Locator
}

func (e *playwrightElement) Clear(ctx context.Context) error {
	return e.loc.Clear()
}

func (e *playwrightElement) SendKeys(ctx context.Context, text string) error {
	return e.loc.PressSequentially(text)
}

func (e *playwrightElement) Click(ctx context.Context) error {
	return e.loc.Click()
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	return e.loc.InnerText()
}

var _ interfaces.BrowserHandle = (*PlaywrightController)(nil)
