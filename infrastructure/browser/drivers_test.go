package browser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"login_regression/domain/entities"
	"login_regression/domain/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0755))
	return path
}

func newTestResolver(env map[string]string, onPath map[string]string, commonDirs ...string) *LocalDriverResolver {
	return &LocalDriverResolver{
		getenv: func(key string) string { return env[key] },
		lookPath: func(name string) (string, error) {
			if p, ok := onPath[name]; ok {
				return p, nil
			}
			return "", errors.New("not on PATH")
		},
		commonDirs: commonDirs,
		goos:       "linux",
	}
}

func TestResolve_Order(t *testing.T) {
	dir := t.TempDir()
	installDir := filepath.Join(dir, "install")
	commonDir := filepath.Join(dir, "common")
	envDriver := touch(t, filepath.Join(dir, "env", "geckodriver"))
	installed := touch(t, filepath.Join(installDir, "geckodriver"))
	common := touch(t, filepath.Join(commonDir, "geckodriver"))

	tests := []struct {
		name       string
		env        map[string]string
		installDir string
		commonDirs []string
		onPath     map[string]string
		expected   string
	}{
		{
			name:       "env var wins",
			env:        map[string]string{"GECKODRIVER_PATH": envDriver},
			installDir: installDir,
			commonDirs: []string{commonDir},
			expected:   envDriver,
		},
		{
			name:       "install dir before common dirs",
			env:        map[string]string{"GECKODRIVER_PATH": filepath.Join(dir, "missing")},
			installDir: installDir,
			commonDirs: []string{commonDir},
			expected:   installed,
		},
		{
			name:       "common dirs",
			installDir: filepath.Join(dir, "empty"),
			commonDirs: []string{commonDir},
			expected:   common,
		},
		{
			name:     "PATH last",
			onPath:   map[string]string{"geckodriver": "/usr/somewhere/geckodriver"},
			expected: "/usr/somewhere/geckodriver",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(tt.env, tt.onPath, tt.commonDirs...)

			path, err := r.Resolve(entities.BrowserFirefox, tt.installDir)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, path)
		})
	}
}

func TestResolve_NotFound(t *testing.T) {
	r := newTestResolver(nil, nil)

	_, err := r.Resolve(entities.BrowserEdge, t.TempDir())

	require.Error(t, err)
	assert.True(t, errors.Is(err, interfaces.ErrDriverNotFound))
	assert.Contains(t, err.Error(), "msedgedriver")
	assert.Contains(t, err.Error(), "MSEDGEDRIVER_PATH")
}

func TestResolve_WindowsExtension(t *testing.T) {
	installDir := t.TempDir()
	exe := touch(t, filepath.Join(installDir, "IEDriverServer.exe"))
	r := newTestResolver(nil, nil)
	r.goos = "windows"

	path, err := r.Resolve(entities.BrowserIE, installDir)

	require.NoError(t, err)
	assert.Equal(t, exe, path)
}

func TestResolve_UnknownBrowser(t *testing.T) {
	r := newTestResolver(nil, nil)

	_, err := r.Resolve("mosaic", "")

	assert.True(t, errors.Is(err, interfaces.ErrUnsupportedBrowser))
}

func TestBrowserBinary(t *testing.T) {
	dir := t.TempDir()
	brave := touch(t, filepath.Join(dir, "brave"))

	t.Run("env override", func(t *testing.T) {
		r := newTestResolver(map[string]string{"BRAVE_BINARY_PATH": brave}, nil)
		assert.Equal(t, brave, r.BrowserBinary(entities.BrowserBrave))
	})

	t.Run("PATH candidate", func(t *testing.T) {
		r := newTestResolver(nil, map[string]string{"opera": "/snap/bin/opera"})
		assert.Equal(t, "/snap/bin/opera", r.BrowserBinary(entities.BrowserOpera))
	})

	t.Run("chrome is found by its driver", func(t *testing.T) {
		r := newTestResolver(nil, map[string]string{"google-chrome": "/usr/bin/google-chrome"})
		assert.Empty(t, r.BrowserBinary(entities.BrowserChrome))
	})
}

func TestEnvNames(t *testing.T) {
	assert.Equal(t, "CHROMEDRIVER_PATH", DriverPathEnv(entities.BrowserBrave))
	assert.Equal(t, "IEDRIVERSERVER_PATH", DriverPathEnv(entities.BrowserIE))
	assert.Equal(t, "OPERA_BINARY_PATH", BrowserBinaryEnv(entities.BrowserOpera))
	assert.Equal(t, "geckodriver", DriverExecutable(entities.BrowserFirefox))
	assert.Equal(t, "msedgedriver", DriverExecutable(entities.BrowserEdge))
}

func TestFreePort(t *testing.T) {
	port, err := freePort()

	require.NoError(t, err)
	assert.Greater(t, port, 0)
}
