package suite

import (
	"context"
	"fmt"
	"strings"
)

// InvalidCredentials is the banner text expected for rejected logins
const InvalidCredentials = "Invalid credentials"

// Scenario is one check against the login page
type Scenario struct {
	Name string
	Run  func(ctx context.Context, env *Env) error
}

// Scenarios returns the login scenarios in execution order
func Scenarios() []Scenario {
	return []Scenario{
		{Name: "no_unexpected_redirect", Run: noUnexpectedRedirect},
		{Name: "error_no_username", Run: errorNoUsername},
		{Name: "error_no_password", Run: errorNoPassword},
		{Name: "error_invalid_credentials", Run: errorInvalidCredentials},
		{Name: "no_error_when_valid_login", Run: noErrorWhenValidLogin},
		{Name: "valid_login", Run: validLogin},
	}
}

// Select returns the scenarios with the given names, in execution order.
// No names selects everything.
func Select(scenarios []Scenario, names []string) ([]Scenario, error) {
	if len(names) == 0 {
		return scenarios, nil
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[strings.TrimSpace(n)] = true
	}

	var selected []Scenario
	for _, sc := range scenarios {
		if wanted[sc.Name] {
			selected = append(selected, sc)
			delete(wanted, sc.Name)
		}
	}
	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for n := range wanted {
			unknown = append(unknown, n)
		}
		return nil, fmt.Errorf("unknown scenarios: %s", strings.Join(unknown, ", "))
	}
	return selected, nil
}

func noUnexpectedRedirect(ctx context.Context, env *Env) error {
	received, err := env.Browser.CurrentURL(ctx)
	if err != nil {
		return err
	}
	return expectURL(env.URLs.Login, received)
}

func errorNoUsername(ctx context.Context, env *Env) error {
	if err := env.Login.InsertPassword(ctx); err != nil {
		return err
	}
	if err := env.Login.Submit(ctx); err != nil {
		return err
	}
	return expectErrorMessage(ctx, env)
}

func errorNoPassword(ctx context.Context, env *Env) error {
	if err := env.Login.InsertUsername(ctx); err != nil {
		return err
	}
	if err := env.Login.Submit(ctx); err != nil {
		return err
	}
	return expectErrorMessage(ctx, env)
}

func errorInvalidCredentials(ctx context.Context, env *Env) error {
	if err := env.Login.InsertUsername(ctx); err != nil {
		return err
	}
	if err := env.Login.InsertPasswordValue(ctx, "Wrong password"); err != nil {
		return err
	}
	if err := env.Login.Submit(ctx); err != nil {
		return err
	}
	return expectErrorMessage(ctx, env)
}

func noErrorWhenValidLogin(ctx context.Context, env *Env) error {
	if err := submitValidCredentials(ctx, env); err != nil {
		return err
	}
	if msg, ok := env.Login.ErrorMessage(ctx, env.Timeouts.ValidLoginBanner); ok {
		return fmt.Errorf("received error message %q", msg)
	}
	return nil
}

func validLogin(ctx context.Context, env *Env) error {
	if err := submitValidCredentials(ctx, env); err != nil {
		return err
	}
	received, err := env.Browser.CurrentURL(ctx)
	if err != nil {
		return err
	}
	return expectURL(env.URLs.Base, received)
}

func submitValidCredentials(ctx context.Context, env *Env) error {
	if err := env.Login.InsertUsername(ctx); err != nil {
		return err
	}
	if err := env.Login.InsertPassword(ctx); err != nil {
		return err
	}
	return env.Login.Submit(ctx)
}

func expectErrorMessage(ctx context.Context, env *Env) error {
	received, ok := env.Login.ErrorMessage(ctx, env.Timeouts.ErrorBanner)
	if !ok {
		return fmt.Errorf("expected error message: %s, got none", InvalidCredentials)
	}
	if received != InvalidCredentials {
		return fmt.Errorf("expected error message: %s, got %q", InvalidCredentials, received)
	}
	return nil
}

func expectURL(expected, received string) error {
	if expected != received {
		return fmt.Errorf("url is not the same: expected %s, got %s", expected, received)
	}
	return nil
}
