package entities

// DefaultBaseURL is the landing page of the shop under test
const DefaultBaseURL = "http://demostore.gatling.io/"

// Config holds the run configuration. It is loaded once and treated as read-only.
type Config struct {
	BrowserName      string `json:"browser_name" yaml:"browser_name"`
	DriverInstallDir string `json:"driver_install_dir" yaml:"driver_install_dir"`
	Headless         bool   `json:"headless" yaml:"headless"`
	ValidUsername    string `json:"valid_username" yaml:"valid_username"`
	ValidPassword    string `json:"valid_password" yaml:"valid_password"`

	Backend   Backend `json:"backend,omitempty" yaml:"backend,omitempty"`
	BaseURL   string  `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	ReportDir string  `json:"report_dir,omitempty" yaml:"report_dir,omitempty"`
	LogLevel  string  `json:"log_level,omitempty" yaml:"log_level,omitempty"`
}

// Browser returns the configured browser name in normalized form
func (c Config) Browser() BrowserName {
	return NormalizeBrowserName(c.BrowserName)
}
