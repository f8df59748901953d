package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tebeka/selenium"
)

func TestScriptFunction(t *testing.T) {
	assert.Equal(t, "() => {\nreturn window.localStorage.getItem('k')\n}", scriptFunction("return window.localStorage.getItem('k')"))
	assert.Equal(t, "() => {\nwindow.sessionStorage.clear()\n}", scriptFunction("window.sessionStorage.clear()"))
}

func TestIsClosedError(t *testing.T) {
	assert.True(t, isClosedError(errors.New("Target page, context or browser has been closed")))
	assert.False(t, isClosedError(errors.New("connection refused")))
}

func TestIsNoSuchElement(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"webdriver error", &selenium.Error{Err: "no such element", Message: "Unable to locate element"}, true},
		{"other webdriver error", &selenium.Error{Err: "stale element reference"}, false},
		{"legacy message", errors.New("no such element: Unable to locate element"), true},
		{"transport", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNoSuchElement(tt.err))
		})
	}
}
