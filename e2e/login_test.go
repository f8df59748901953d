package e2e

import (
	"testing"
)

// Feature: Login
//
//	As a customer of the demo store
//	I want the login form to reject bad credentials and accept good ones
//	So that my account stays mine

func TestNoUnexpectedRedirect(t *testing.T) {
	// Given I open the login page
	// Then I stay on the login page
	runScenario(t, "no_unexpected_redirect")
}

func TestErrorNoUsername(t *testing.T) {
	// Given I only enter a password
	// When I submit
	// Then I see "Invalid credentials"
	runScenario(t, "error_no_username")
}

func TestErrorNoPassword(t *testing.T) {
	// Given I only enter a username
	// When I submit
	// Then I see "Invalid credentials"
	runScenario(t, "error_no_password")
}

func TestErrorInvalidCredentials(t *testing.T) {
	// Given I enter a valid username and a wrong password
	// When I submit
	// Then I see "Invalid credentials"
	runScenario(t, "error_invalid_credentials")
}

func TestNoErrorWhenValidLogin(t *testing.T) {
	// Given I enter valid credentials
	// When I submit
	// Then no error is shown
	runScenario(t, "no_error_when_valid_login")
}

func TestValidLogin(t *testing.T) {
	// Given I enter valid credentials
	// When I submit
	// Then I land on the shop's home page
	runScenario(t, "valid_login")
}

// TestStorageIsolation checks that state written by one test is gone in the next
func TestStorageIsolation(t *testing.T) {
	t.Run("write", func(t *testing.T) {
		ctx, env := setUp(t)
		if _, err := env.Browser.ExecuteScript(ctx, "window.localStorage.setItem('e2e', 'leftover')"); err != nil {
			t.Fatalf("Failed to write local storage: %v", err)
		}
		if _, err := env.Browser.ExecuteScript(ctx, "window.sessionStorage.setItem('e2e', 'leftover')"); err != nil {
			t.Fatalf("Failed to write session storage: %v", err)
		}
	})

	t.Run("read", func(t *testing.T) {
		ctx, env := setUp(t)
		for _, area := range []string{"localStorage", "sessionStorage"} {
			got, err := env.Browser.ExecuteScript(ctx, "return window."+area+".getItem('e2e')")
			if err != nil {
				t.Fatalf("Failed to read %s: %v", area, err)
			}
			if got != nil {
				t.Errorf("Expected empty %s, got %v", area, got)
			}
		}
	})
}
