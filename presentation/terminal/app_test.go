package terminal

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"login_regression/application/login"
	"login_regression/application/suite"
	"login_regression/domain/entities"
	"login_regression/domain/interfaces"
	"login_regression/infrastructure/browser/browsertest"
	"login_regression/infrastructure/storage"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

type siteFactory struct {
	site  *browsertest.Site
	names []entities.BrowserName
	opts  []interfaces.DriverOptions
}

func (f *siteFactory) GetDriver(ctx context.Context, name entities.BrowserName, opts interfaces.DriverOptions) (interfaces.BrowserHandle, error) {
	f.names = append(f.names, name)
	f.opts = append(f.opts, opts)
	return f.site, nil
}

type harness struct {
	app     *cli.App
	out     *bytes.Buffer
	logs    *bytes.Buffer
	factory *siteFactory
	exits   []int
}

func newHarness(t *testing.T, sitePassword string) *harness {
	t.Helper()
	h := &harness{
		out:     &bytes.Buffer{},
		logs:    &bytes.Buffer{},
		factory: &siteFactory{site: browsertest.NewSite(entities.DefaultBaseURL, "john", sitePassword)},
	}
	h.app = NewApp("test",
		WithOutput(h.out, h.logs),
		WithGetenv(func(string) string { return "" }),
		WithDriverFactory(func(*logrus.Logger) interfaces.DriverFactory { return h.factory }),
		WithSuiteOptions(
			suite.WithTimeouts(suite.Timeouts{ErrorBanner: 20 * time.Millisecond, ValidLoginBanner: 20 * time.Millisecond}),
			suite.WithPageOptions(login.WithPollInterval(time.Millisecond)),
		),
		WithExitFunc(func(code int) { h.exits = append(h.exits, code) }),
	)
	h.app.ExitErrHandler = func(*cli.Context, error) {}
	return h
}

func (h *harness) run(args ...string) error {
	return h.app.Run(append([]string{"login-regression"}, args...))
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const yamlConfig = `
browser_name: chrome
driver_install_dir: ""
headless: true
valid_username: john
valid_password: pass
`

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var coder cli.ExitCoder
	require.ErrorAs(t, err, &coder)
	return coder.ExitCode()
}

func TestBrowsersCommand(t *testing.T) {
	h := newHarness(t, "pass")

	require.NoError(t, h.run("browsers"))

	lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
	require.Len(t, lines, len(entities.SupportedBrowsers))
	assert.Contains(t, lines[0], "chrome")
	assert.Contains(t, h.out.String(), "GECKODRIVER_PATH")
	assert.Contains(t, h.out.String(), "IEDriverServer")
}

func TestRun_AllScenariosPass(t *testing.T) {
	// GIVEN a YAML configuration and a report directory
	h := newHarness(t, "pass")
	cfgPath := writeConfig(t, "config.yaml", yamlConfig)
	reportDir := t.TempDir()

	// WHEN
	err := h.run("run", "--config", cfgPath, "--report-dir", reportDir)

	// THEN
	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "6 passed, 0 failed")
	assert.Equal(t, 1, h.factory.site.Quits)
	assert.Equal(t, []interfaces.DriverOptions{{Headless: true, Backend: entities.BackendSelenium}}, h.factory.opts)

	reports, err := filepath.Glob(filepath.Join(reportDir, "*", "report.json"))
	require.NoError(t, err)
	require.Len(t, reports, 1)
	report, err := storage.LoadReport(reports[0])
	require.NoError(t, err)
	assert.Len(t, report.Scenarios, 6)
	assert.True(t, report.Passed())
}

func TestRun_FailingScenarioExitsWithOne(t *testing.T) {
	// GIVEN a site that rejects the configured password
	h := newHarness(t, "rotated")
	cfgPath := writeConfig(t, "config.yaml", yamlConfig)
	reportDir := t.TempDir()

	// WHEN
	err := h.run("run", "-c", cfgPath, "--report-dir", reportDir, "-s", "valid_login", "-s", "error_no_password")

	// THEN
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "1 of 2 scenarios failed")
	assert.Contains(t, h.out.String(), "failed  valid_login")
	assert.Contains(t, h.out.String(), "passed  error_no_password")
	assert.Equal(t, 1, h.factory.site.Quits)

	shots, err := filepath.Glob(filepath.Join(reportDir, "*", "valid_login.png"))
	require.NoError(t, err)
	assert.Len(t, shots, 1)
}

func TestRun_FlagsOverrideConfig(t *testing.T) {
	h := newHarness(t, "pass")
	cfgPath := writeConfig(t, "config.json", `{"browser_name": "chrome", "headless": false, "valid_username": "john", "valid_password": "pass", "comment": "ignored"}`)

	err := h.run("run", "--config", cfgPath,
		"--browser", "Firefox", "--backend", "playwright", "--headless", "--install-dir", "/opt/drivers",
		"--scenario", "no_unexpected_redirect")

	require.NoError(t, err)
	assert.Equal(t, []entities.BrowserName{entities.BrowserFirefox}, h.factory.names)
	assert.Equal(t, interfaces.DriverOptions{InstallDir: "/opt/drivers", Headless: true, Backend: entities.BackendPlaywright}, h.factory.opts[0])
}

func TestRun_InvalidConfiguration(t *testing.T) {
	h := newHarness(t, "pass")
	cfgPath := writeConfig(t, "config.yaml", "browser_name: chrome\nvalid_password: pass\n")

	err := h.run("run", "--config", cfgPath)

	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "valid_username")
	assert.Empty(t, h.factory.names, "no browser is started for a bad configuration")
}

func TestRun_MissingConfigFile(t *testing.T) {
	h := newHarness(t, "pass")

	err := h.run("run", "--config", filepath.Join(t.TempDir(), "missing.json"))

	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestRun_MissingEnvFile(t *testing.T) {
	h := newHarness(t, "pass")
	cfgPath := writeConfig(t, "config.yaml", yamlConfig)

	err := h.run("run", "--config", cfgPath, "--env-file", filepath.Join(t.TempDir(), "ci.env"))

	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "ci.env")
	assert.Empty(t, h.factory.names)
}

func TestRun_UnknownScenario(t *testing.T) {
	h := newHarness(t, "pass")
	cfgPath := writeConfig(t, "config.yaml", yamlConfig)

	err := h.run("run", "--config", cfgPath, "--scenario", "forgot_password")

	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "forgot_password")
	assert.Empty(t, h.factory.names)
}

func TestRun_UnsupportedBrowserIsFatal(t *testing.T) {
	// GIVEN the real factory and a browser it does not know
	h := newHarness(t, "pass")
	h.app = NewApp("test",
		WithOutput(h.out, h.logs),
		WithGetenv(func(string) string { return "" }),
		WithExitFunc(func(code int) { h.exits = append(h.exits, code) }),
	)
	h.app.ExitErrHandler = func(*cli.Context, error) {}
	cfgPath := writeConfig(t, "config.yaml", yamlConfig)

	// WHEN
	err := h.run("run", "--config", cfgPath, "--browser", "safari")

	// THEN
	assert.Equal(t, 1, exitCode(t, err))
	assert.Equal(t, []int{1}, h.exits)
	assert.Contains(t, h.logs.String(), "level=fatal")
	assert.Contains(t, h.logs.String(), "safari")
}
