package e2e

import (
	"context"
	"fmt"
	"os"
	"testing"

	"login_regression/application/suite"
	"login_regression/infrastructure/browser"
	"login_regression/infrastructure/config"
	"login_regression/infrastructure/logging"

	"github.com/sirupsen/logrus"
)

// EnvConfig names the configuration file the browser tests run with.
// Without it every test in this package is skipped.
const EnvConfig = "LOGIN_E2E_CONFIG"

var (
	loginSuite *suite.Suite
	logger     *logrus.Logger
)

// TestMain starts one browser for all tests and quits it when they are done
func TestMain(m *testing.M) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		os.Exit(m.Run())
	}

	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	cfg, err := config.Load(path, os.Getenv)
	if err != nil {
		panic(err)
	}
	logger = logging.New(cfg.LogLevel, os.Stderr)

	loginSuite, err = suite.New(cfg, browser.NewFactory(logger), logger)
	if err != nil {
		panic(err)
	}
	if err := loginSuite.Open(context.Background()); err != nil {
		panic(err)
	}

	code := m.Run()

	if err := loginSuite.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop browser: %v\n", err)
		if code == 0 {
			code = 1
		}
	}
	os.Exit(code)
}

// setUp opens the login page for t and registers the teardown
func setUp(t *testing.T) (context.Context, *suite.Env) {
	t.Helper()
	if loginSuite == nil {
		t.Skipf("%s is not set", EnvConfig)
	}
	ctx := context.Background()
	env, err := loginSuite.SetUp(ctx)
	if err != nil {
		t.Fatalf("Failed to open login page: %v", err)
	}
	t.Cleanup(func() {
		if err := loginSuite.TearDown(ctx); err != nil {
			t.Errorf("Teardown failed: %v", err)
		}
	})
	return ctx, env
}

// runScenario runs the named scenario of the suite
func runScenario(t *testing.T, name string) {
	t.Helper()
	selected, err := suite.Select(suite.Scenarios(), []string{name})
	if err != nil {
		t.Fatal(err)
	}
	ctx, env := setUp(t)
	if err := selected[0].Run(ctx, env); err != nil {
		t.Error(err)
	}
}
