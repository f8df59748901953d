package entities

import "strings"

// BrowserName identifies one of the browsers the driver factory can start
type BrowserName string

const (
	BrowserChrome   BrowserName = "chrome"
	BrowserChromium BrowserName = "chromium"
	BrowserBrave    BrowserName = "brave"
	BrowserOpera    BrowserName = "opera"
	BrowserFirefox  BrowserName = "firefox"
	BrowserEdge     BrowserName = "edge"
	BrowserIE       BrowserName = "ie"
)

// SupportedBrowsers lists every browser name accepted by the driver factory
var SupportedBrowsers = []BrowserName{
	BrowserChrome,
	BrowserChromium,
	BrowserBrave,
	BrowserOpera,
	BrowserFirefox,
	BrowserEdge,
	BrowserIE,
}

// IsSupported reports whether the name is one of SupportedBrowsers
func (b BrowserName) IsSupported() bool {
	for _, s := range SupportedBrowsers {
		if s == b {
			return true
		}
	}
	return false
}

// NormalizeBrowserName lowercases and trims a user supplied browser name
func NormalizeBrowserName(name string) BrowserName {
	return BrowserName(strings.ToLower(strings.TrimSpace(name)))
}

// Backend selects the automation library used to drive the browser
type Backend string

const (
	BackendSelenium   Backend = "selenium"
	BackendPlaywright Backend = "playwright"
)

// IsValid reports whether the backend is known
func (b Backend) IsValid() bool {
	return b == BackendSelenium || b == BackendPlaywright
}
