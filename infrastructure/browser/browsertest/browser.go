// Package browsertest provides an in-memory browser for exercising page objects
// and the suite runner without a real browser.
package browsertest

import (
	"context"
	"fmt"
	"strings"

	"login_regression/domain/entities"
	"login_regression/domain/interfaces"
)

// Scripts understood by Browser.ExecuteScript
const (
	ClearLocalStorage   = "window.localStorage.clear()"
	ClearSessionStorage = "window.sessionStorage.clear()"
)

// Browser is a fake interfaces.BrowserHandle. It keeps a flat map of locators to
// elements that tests (or a Site) mutate directly.
type Browser struct {
	URL            string
	Cookies        map[string]string
	LocalStorage   map[string]string
	SessionStorage map[string]string

	// Navigations, Scripts and Lookups record calls in order
	Navigations []string
	Scripts     []string
	Lookups     []entities.Locator

	// Quits counts Quit calls; QuitErr is returned from each of them
	Quits   int
	QuitErr error

	// NavigateErr and ScriptErr make the respective calls fail
	NavigateErr error
	ScriptErr   error
	CookieErr   error

	// OnNavigate runs after URL has been updated
	OnNavigate func(url string)

	// PNG is returned by Screenshot
	PNG []byte

	elements    map[entities.Locator]*Element
	appearAfter map[entities.Locator]int
	findErr     map[entities.Locator]error
}

// NewBrowser returns an empty browser on about:blank
func NewBrowser() *Browser {
	return &Browser{
		URL:            "about:blank",
		Cookies:        make(map[string]string),
		LocalStorage:   make(map[string]string),
		SessionStorage: make(map[string]string),
		PNG:            []byte("\x89PNG"),
		elements:       make(map[entities.Locator]*Element),
		appearAfter:    make(map[entities.Locator]int),
		findErr:        make(map[entities.Locator]error),
	}
}

// AddElement places an element on the page and returns it
func (b *Browser) AddElement(locator entities.Locator, text string) *Element {
	el := &Element{Locator: locator, TextValue: text}
	b.elements[locator] = el
	return el
}

// RemoveElement takes an element off the page
func (b *Browser) RemoveElement(locator entities.Locator) {
	delete(b.elements, locator)
}

// Element returns the element at locator, or nil
func (b *Browser) Element(locator entities.Locator) *Element {
	return b.elements[locator]
}

// AppearAfter hides the element at locator from the first n lookups
func (b *Browser) AppearAfter(locator entities.Locator, n int) {
	b.appearAfter[locator] = n
}

// FailLookup makes every lookup of locator return err
func (b *Browser) FailLookup(locator entities.Locator, err error) {
	b.findErr[locator] = err
}

func (b *Browser) Navigate(ctx context.Context, url string) error {
	if b.NavigateErr != nil {
		return b.NavigateErr
	}
	b.Navigations = append(b.Navigations, url)
	b.URL = url
	if b.OnNavigate != nil {
		b.OnNavigate(url)
	}
	return nil
}

func (b *Browser) CurrentURL(ctx context.Context) (string, error) {
	return b.URL, nil
}

func (b *Browser) FindElement(ctx context.Context, locator entities.Locator) (interfaces.Element, error) {
	b.Lookups = append(b.Lookups, locator)
	if err := b.findErr[locator]; err != nil {
		return nil, err
	}
	if n := b.appearAfter[locator]; n > 0 {
		b.appearAfter[locator] = n - 1
		return nil, fmt.Errorf("%w: %s", interfaces.ErrElementNotFound, locator)
	}
	el, ok := b.elements[locator]
	if !ok {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrElementNotFound, locator)
	}
	return el, nil
}

func (b *Browser) DeleteAllCookies(ctx context.Context) error {
	if b.CookieErr != nil {
		return b.CookieErr
	}
	b.Cookies = make(map[string]string)
	return nil
}

func (b *Browser) ExecuteScript(ctx context.Context, script string) (interface{}, error) {
	if b.ScriptErr != nil {
		return nil, b.ScriptErr
	}
	b.Scripts = append(b.Scripts, script)
	switch strings.TrimSuffix(strings.TrimSpace(script), ";") {
	case ClearLocalStorage:
		b.LocalStorage = make(map[string]string)
	case ClearSessionStorage:
		b.SessionStorage = make(map[string]string)
	}
	return nil, nil
}

func (b *Browser) Screenshot(ctx context.Context) ([]byte, error) {
	return b.PNG, nil
}

func (b *Browser) Quit() error {
	b.Quits++
	return b.QuitErr
}

// Element is a fake page element. Value holds what was typed into it.
type Element struct {
	Locator   entities.Locator
	Value     string
	TextValue string

	Clears int
	Clicks int

	// OnClick runs on every successful Click
	OnClick  func()
	ClickErr error
}

func (e *Element) Clear(ctx context.Context) error {
	e.Clears++
	e.Value = ""
	return nil
}

func (e *Element) SendKeys(ctx context.Context, text string) error {
	e.Value += text
	return nil
}

func (e *Element) Click(ctx context.Context) error {
	if e.ClickErr != nil {
		return e.ClickErr
	}
	e.Clicks++
	if e.OnClick != nil {
		e.OnClick()
	}
	return nil
}

func (e *Element) Text(ctx context.Context) (string, error) {
	return e.TextValue, nil
}

var _ interfaces.BrowserHandle = (*Browser)(nil)
