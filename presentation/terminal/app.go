// Package terminal is the command line entry point of the login regression suite.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"login_regression/application/suite"
	"login_regression/domain/entities"
	"login_regression/domain/interfaces"
	"login_regression/infrastructure/browser"
	"login_regression/infrastructure/config"
	"login_regression/infrastructure/logging"
	"login_regression/infrastructure/storage"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// DefaultConfigPath is read when --config is not given and the file exists
const DefaultConfigPath = "config/test_config.json"

// App builds the CLI and the objects a run needs
type App struct {
	out        io.Writer
	errOut     io.Writer
	getenv     func(string) string
	newFactory func(*logrus.Logger) interfaces.DriverFactory
	suiteOpts  []suite.Option
	exitFunc   func(int)
}

// Option customizes an App
type Option func(*App)

// WithOutput sets where the summary (out) and logs (errOut) are written
func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) {
		a.out = out
		a.errOut = errOut
	}
}

// WithGetenv replaces os.Getenv for configuration overrides
func WithGetenv(getenv func(string) string) Option {
	return func(a *App) {
		a.getenv = getenv
	}
}

// WithDriverFactory replaces the browser factory
func WithDriverFactory(newFactory func(*logrus.Logger) interfaces.DriverFactory) Option {
	return func(a *App) {
		a.newFactory = newFactory
	}
}

// WithSuiteOptions passes options to the suite of every run
func WithSuiteOptions(opts ...suite.Option) Option {
	return func(a *App) {
		a.suiteOpts = append(a.suiteOpts, opts...)
	}
}

// WithExitFunc replaces the exit used by fatal log entries
func WithExitFunc(exit func(int)) Option {
	return func(a *App) {
		a.exitFunc = exit
	}
}

// NewApp returns the login-regression command
func NewApp(version string, opts ...Option) *cli.App {
	a := &App{
		out:    os.Stdout,
		errOut: os.Stderr,
		getenv: os.Getenv,
		newFactory: func(logger *logrus.Logger) interfaces.DriverFactory {
			return browser.NewFactory(logger)
		},
	}
	for _, opt := range opts {
		opt(a)
	}

	return &cli.App{
		Name:      "login-regression",
		Usage:     "Run the login page regression scenarios against a real browser",
		Version:   version,
		Writer:    a.out,
		ErrWriter: a.errOut,
		Commands: []*cli.Command{
			a.runCommand(),
			a.browsersCommand(),
		},
	}
}

func (a *App) runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the scenarios once against the configured browser",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: DefaultConfigPath, Usage: "JSON or YAML configuration file"},
			&cli.StringSliceFlag{Name: "env-file", Usage: "`.env` files to load before reading the configuration"},
			&cli.StringFlag{Name: "browser", Aliases: []string{"b"}, Usage: "overrides browser_name"},
			&cli.StringFlag{Name: "backend", Usage: "overrides backend (selenium or playwright)"},
			&cli.StringFlag{Name: "install-dir", Usage: "overrides driver_install_dir"},
			&cli.BoolFlag{Name: "headless", Usage: "overrides headless"},
			&cli.StringFlag{Name: "base-url", Usage: "overrides base_url"},
			&cli.StringFlag{Name: "report-dir", Usage: "overrides report_dir"},
			&cli.StringFlag{Name: "log-level", Usage: "overrides log_level"},
			&cli.StringSliceFlag{Name: "scenario", Aliases: []string{"s"}, Usage: "run only the named scenario (repeatable)"},
		},
		Action: a.run,
	}
}

func (a *App) browsersCommand() *cli.Command {
	return &cli.Command{
		Name:  "browsers",
		Usage: "List the supported browser names",
		Action: func(c *cli.Context) error {
			for _, name := range entities.SupportedBrowsers {
				fmt.Fprintf(a.out, "%-9s %-16s %s\n", name, browser.DriverExecutable(name), browser.DriverPathEnv(name))
			}
			return nil
		},
	}
}

func (a *App) run(c *cli.Context) error {
	if err := config.LoadDotEnv(c.StringSlice("env-file")...); err != nil {
		return cli.Exit(err, 1)
	}

	path := c.String("config")
	if !c.IsSet("config") {
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	cfg, err := config.Load(path, a.flagOverrides(c))
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid configuration: %v", err), 1)
	}

	logger := logging.New(cfg.LogLevel, a.errOut)
	if a.exitFunc != nil {
		logger.ExitFunc = a.exitFunc
	}

	selected, err := suite.Select(suite.Scenarios(), c.StringSlice("scenario"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	s, err := suite.New(cfg, a.newFactory(logger), logger, a.suiteOpts...)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid configuration: %v", err), 1)
	}

	var store interfaces.ReportStore
	if cfg.ReportDir != "" {
		if store, err = storage.NewReportStore(cfg.ReportDir); err != nil {
			return cli.Exit(err, 1)
		}
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	logger.WithFields(logrus.Fields{
		"browser": cfg.Browser(),
		"backend": cfg.Backend,
		"url":     cfg.BaseURL,
	}).Infof("Running %d scenarios", len(selected))

	report, err := suite.NewRunner(s, cfg, store, logger).Run(ctx, selected)
	if errors.Is(err, interfaces.ErrUnsupportedBrowser) {
		logger.Fatalf("%v", err)
		return cli.Exit(err, 1)
	}

	printReport(a.out, report)
	if err != nil {
		return cli.Exit(fmt.Sprintf("run failed: %v", err), 1)
	}
	if !report.Passed() {
		return cli.Exit(fmt.Sprintf("%d of %d scenarios failed", report.Failed(), len(report.Scenarios)), 1)
	}
	return nil
}

// flagOverrides layers explicitly set flags over the environment
func (a *App) flagOverrides(c *cli.Context) func(string) string {
	overrides := map[string]string{}
	set := func(flag, key string) {
		if c.IsSet(flag) {
			overrides[key] = c.String(flag)
		}
	}
	set("browser", config.EnvBrowserName)
	set("backend", config.EnvBackend)
	set("install-dir", config.EnvDriverInstallDir)
	set("base-url", config.EnvBaseURL)
	set("report-dir", config.EnvReportDir)
	set("log-level", config.EnvLogLevel)
	if c.IsSet("headless") {
		overrides[config.EnvHeadless] = strconv.FormatBool(c.Bool("headless"))
	}

	return func(key string) string {
		if v, ok := overrides[key]; ok {
			return v
		}
		if a.getenv == nil {
			return ""
		}
		return a.getenv(key)
	}
}

func printReport(w io.Writer, report entities.RunReport) {
	fmt.Fprintf(w, "Run %s (%s, %s)\n", report.RunID, report.Browser, report.Backend)
	for _, sc := range report.Scenarios {
		line := fmt.Sprintf("  %-7s %s", sc.Status, sc.Name)
		if sc.Message != "" && sc.Status != entities.ScenarioPassed {
			line += ": " + sc.Message
		}
		if sc.Screenshot != "" {
			line += " [" + sc.Screenshot + "]"
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "%d passed, %d failed\n", len(report.Scenarios)-report.Failed()-skipped(report), report.Failed())
}

func skipped(report entities.RunReport) int {
	n := 0
	for _, sc := range report.Scenarios {
		if sc.Status == entities.ScenarioSkipped {
			n++
		}
	}
	return n
}
