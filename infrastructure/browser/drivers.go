package browser

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"login_regression/domain/entities"
	"login_regression/domain/interfaces"
)

// driverExecutables maps each browser to the WebDriver binary that controls it
var driverExecutables = map[entities.BrowserName]string{
	entities.BrowserChrome:   "chromedriver",
	entities.BrowserChromium: "chromedriver",
	entities.BrowserBrave:    "chromedriver",
	entities.BrowserOpera:    "operadriver",
	entities.BrowserFirefox:  "geckodriver",
	entities.BrowserEdge:     "msedgedriver",
	entities.BrowserIE:       "IEDriverServer",
}

// browserExecutables lists candidate executables for browsers that are not
// found by their driver on their own. Bare names are searched on PATH.
var browserExecutables = map[entities.BrowserName][]string{
	entities.BrowserChromium: {
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"chromium",
		"chromium-browser",
	},
	entities.BrowserBrave: {
		"/Applications/Brave Browser.app/Contents/MacOS/Brave Browser",
		"/usr/bin/brave-browser",
		`C:\Program Files\BraveSoftware\Brave-Browser\Application\brave.exe`,
		"brave-browser",
		"brave",
	},
	entities.BrowserOpera: {
		"/Applications/Opera.app/Contents/MacOS/Opera",
		"/usr/bin/opera",
		`C:\Program Files\Opera\launcher.exe`,
		"opera",
	},
}

// LocalDriverResolver finds WebDriver and browser executables on the local machine:
// an explicit env var first, then the install dir, well-known directories and PATH.
type LocalDriverResolver struct {
	getenv     func(string) string
	lookPath   func(string) (string, error)
	commonDirs []string
	goos       string
}

// NewLocalDriverResolver creates a resolver reading the process environment
func NewLocalDriverResolver() *LocalDriverResolver {
	return &LocalDriverResolver{
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
		commonDirs: []string{
			"/usr/local/bin",
			"/usr/bin",
			"/opt/homebrew/bin",
			filepath.Join(os.Getenv("HOME"), "bin"),
		},
		goos: runtime.GOOS,
	}
}

// Resolve returns the path of the WebDriver executable for browser
func (r *LocalDriverResolver) Resolve(browser entities.BrowserName, installDir string) (string, error) {
	base, ok := driverExecutables[browser]
	if !ok {
		return "", &UnsupportedBrowserError{Name: string(browser)}
	}
	exe := base
	if r.goos == "windows" {
		exe += ".exe"
	}

	envKey := DriverPathEnv(browser)
	if path := r.getenv(envKey); path != "" {
		if isFile(path) {
			return path, nil
		}
	}

	dirs := make([]string, 0, len(r.commonDirs)+1)
	if installDir != "" {
		dirs = append(dirs, installDir)
	}
	dirs = append(dirs, r.commonDirs...)
	for _, dir := range dirs {
		path := filepath.Join(dir, exe)
		if isFile(path) {
			return path, nil
		}
	}

	if path, err := r.lookPath(exe); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%w: %s not found in %q, common locations or PATH; install it or set %s",
		interfaces.ErrDriverNotFound, exe, installDir, envKey)
}

// BrowserBinary returns the browser executable for browser, or "" when the
// driver should locate the browser itself
func (r *LocalDriverResolver) BrowserBinary(browser entities.BrowserName) string {
	if path := r.getenv(BrowserBinaryEnv(browser)); path != "" {
		if isFile(path) {
			return path
		}
	}

	for _, candidate := range browserExecutables[browser] {
		if filepath.IsAbs(candidate) || strings.Contains(candidate, `\`) {
			if isFile(candidate) {
				return candidate
			}
			continue
		}
		if path, err := r.lookPath(candidate); err == nil {
			return path
		}
	}
	return ""
}

// DriverExecutable returns the WebDriver executable name for browser
func DriverExecutable(browser entities.BrowserName) string {
	return driverExecutables[browser]
}

// DriverPathEnv names the env var overriding the WebDriver path, e.g. GECKODRIVER_PATH
func DriverPathEnv(browser entities.BrowserName) string {
	return strings.ToUpper(driverExecutables[browser]) + "_PATH"
}

// BrowserBinaryEnv names the env var overriding the browser executable, e.g. BRAVE_BINARY_PATH
func BrowserBinaryEnv(browser entities.BrowserName) string {
	return strings.ToUpper(string(browser)) + "_BINARY_PATH"
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// freePort asks the kernel for an unused local TCP port
func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("failed to find a free port: %w", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

var _ interfaces.DriverResolver = (*LocalDriverResolver)(nil)
