package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"login_regression/domain/entities"
	"login_regression/domain/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

// serviceKind selects how the WebDriver executable is started
type serviceKind int

const (
	// chromedriver-compatible flags: --port, --url-base=wd/hub
	serviceChromeDriver serviceKind = iota
	serviceGeckoDriver
	// IEDriverServer: /port only, no url base
	serviceIEDriver
)

// driverService is a running WebDriver executable
type driverService interface {
	Stop() error
}

// seleniumLaunch is everything needed to open a WebDriver session
type seleniumLaunch struct {
	Browser    entities.BrowserName
	DriverPath string
	Service    serviceKind
	Caps       selenium.Capabilities
}

// seleniumLaunch acquires the driver executable and builds capabilities for name
func (f *Factory) seleniumLaunch(name entities.BrowserName, installDir string, headless bool) (seleniumLaunch, error) {
	driverPath, err := f.resolver.Resolve(name, installDir)
	if err != nil {
		return seleniumLaunch{}, fmt.Errorf("failed to acquire driver for %s: %w", name, err)
	}
	f.logger.Infof("Using WebDriver at: %s", driverPath)

	launch := seleniumLaunch{
		Browser:    name,
		DriverPath: driverPath,
		Service:    serviceChromeDriver,
	}

	switch name {
	case entities.BrowserChrome:
		launch.Caps = chromiumCaps("chrome", "", headless)
	case entities.BrowserChromium, entities.BrowserBrave:
		binary := f.findBinary(name)
		if binary == "" {
			f.logger.Warnf("%s executable not found, chromedriver will pick its default browser", name)
		} else {
			f.logger.Infof("Using %s binary at: %s", name, binary)
		}
		launch.Caps = chromiumCaps("chrome", binary, headless)
	case entities.BrowserOpera:
		binary := f.findBinary(name)
		if binary != "" {
			f.logger.Infof("Using %s binary at: %s", name, binary)
		}
		launch.Caps = chromiumCaps("opera", binary, headless)
		launch.Caps["operaOptions"] = launch.Caps[chrome.CapabilitiesKey]
	case entities.BrowserFirefox:
		launch.Service = serviceGeckoDriver
		launch.Caps = selenium.Capabilities{"browserName": "firefox"}
		ffCaps := firefox.Capabilities{}
		if headless {
			ffCaps.Args = append(ffCaps.Args, "-headless")
		}
		launch.Caps.AddFirefox(ffCaps)
	case entities.BrowserEdge:
		args := []string{}
		if headless {
			args = append(args, "--headless=new")
		}
		launch.Caps = selenium.Capabilities{
			"browserName":    "MicrosoftEdge",
			"ms:edgeOptions": map[string]interface{}{"args": args},
		}
	case entities.BrowserIE:
		if headless {
			f.logger.Warn("Internet Explorer has no headless mode, starting it visibly")
		}
		launch.Service = serviceIEDriver
		launch.Caps = selenium.Capabilities{"browserName": "internet explorer"}
	default:
		return seleniumLaunch{}, &UnsupportedBrowserError{Name: string(name)}
	}

	return launch, nil
}

func chromiumCaps(browserName, binary string, headless bool) selenium.Capabilities {
	caps := selenium.Capabilities{"browserName": browserName}
	chromeCaps := chrome.Capabilities{
		Path: binary,
		W3C:  true,
	}
	if headless {
		chromeCaps.Args = append(chromeCaps.Args, "--headless=new")
	}
	caps.AddChrome(chromeCaps)
	return caps
}

// SeleniumController drives a browser through a W3C WebDriver executable
type SeleniumController struct {
	wd      selenium.WebDriver
	service driverService
	output  io.Closer
	logger  *logrus.Logger
}

// startSeleniumSession starts the driver service on a free port and opens a session
func startSeleniumSession(launch seleniumLaunch, logger *logrus.Logger) (interfaces.BrowserHandle, error) {
	port, err := freePort()
	if err != nil {
		return nil, err
	}

	output := logger.WriterLevel(logrus.DebugLevel)
	opts := []selenium.ServiceOption{selenium.Output(output)}

	var (
		service   driverService
		urlPrefix string
	)
	switch launch.Service {
	case serviceGeckoDriver:
		service, err = selenium.NewGeckoDriverService(launch.DriverPath, port, opts...)
		urlPrefix = fmt.Sprintf("http://localhost:%d", port)
	case serviceIEDriver:
		service, err = startIEDriverService(launch.DriverPath, port, output)
		urlPrefix = fmt.Sprintf("http://localhost:%d", port)
	default:
		service, err = selenium.NewChromeDriverService(launch.DriverPath, port, opts...)
		urlPrefix = fmt.Sprintf("http://localhost:%d/wd/hub", port)
	}
	if err != nil {
		output.Close()
		return nil, fmt.Errorf("failed to start %s: %w", launch.DriverPath, err)
	}

	wd, err := selenium.NewRemote(launch.Caps, urlPrefix)
	if err != nil {
		service.Stop()
		output.Close()
		if strings.Contains(err.Error(), "cannot find") && strings.Contains(err.Error(), "binary") {
			return nil, fmt.Errorf("failed to create webdriver: %s browser not found, install it or set %s: %w",
				launch.Browser, BrowserBinaryEnv(launch.Browser), err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	logger.Infof("Started %s session through %s", launch.Browser, launch.DriverPath)

	return &SeleniumController{
		wd:      wd,
		service: service,
		output:  output,
		logger:  logger,
	}, nil
}

// Navigate - navigates browser to specified URL
func (s *SeleniumController) Navigate(ctx context.Context, url string) error {
	s.logger.Debugf("Navigating to: %s", url)
	return s.wd.Get(url)
}

// CurrentURL - returns current page URL
func (s *SeleniumController) CurrentURL(ctx context.Context) (string, error) {
	return s.wd.CurrentURL()
}

// FindElement - looks up an element by XPath without waiting
func (s *SeleniumController) FindElement(ctx context.Context, locator entities.Locator) (interfaces.Element, error) {
	we, err := s.wd.FindElement(selenium.ByXPATH, locator.String())
	if err != nil {
		if isNoSuchElement(err) {
			return nil, fmt.Errorf("%w: %s", interfaces.ErrElementNotFound, locator)
		}
		return nil, err
	}
	return &seleniumElement{we: we}, nil
}

// DeleteAllCookies - removes all cookies of the session
func (s *SeleniumController) DeleteAllCookies(ctx context.Context) error {
	return s.wd.DeleteAllCookies()
}

// ExecuteScript - runs JavaScript in the current page
func (s *SeleniumController) ExecuteScript(ctx context.Context, script string) (interface{}, error) {
	return s.wd.ExecuteScript(script, nil)
}

// Screenshot - takes screenshot of current page
func (s *SeleniumController) Screenshot(ctx context.Context) ([]byte, error) {
	return s.wd.Screenshot()
}

// Quit - ends the session and stops the driver service
func (s *SeleniumController) Quit() error {
	var errs []error
	if s.wd != nil {
		if err := s.wd.Quit(); err != nil {
			errs = append(errs, fmt.Errorf("failed to quit session: %w", err))
		}
		s.wd = nil
	}
	if s.service != nil {
		if err := s.service.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop driver service: %w", err))
		}
		s.service = nil
	}
	if s.output != nil {
		s.output.Close()
		s.output = nil
	}
	return errors.Join(errs...)
}

func isNoSuchElement(err error) bool {
	var serr *selenium.Error
	if errors.As(err, &serr) {
		return serr.Err == "no such element"
	}
	return strings.Contains(err.Error(), "no such element")
}

type seleniumElement struct {
	we selenium.WebElement
}

func (e *seleniumElement) Clear(ctx context.Context) error {
	return e.we.Clear()
}

func (e *seleniumElement) SendKeys(ctx context.Context, text string) error {
	return e.we.SendKeys(text)
}

func (e *seleniumElement) Click(ctx context.Context) error {
	return e.we.Click()
}

func (e *seleniumElement) Text(ctx context.Context) (string, error) {
	return e.we.Text()
}

// Ensure SeleniumController implements BrowserHandle interface
var _ interfaces.BrowserHandle = (*SeleniumController)(nil)
