package browsertest

import (
	"net/url"

	"login_regression/domain/entities"
)

// InvalidCredentials is the banner text shown for a rejected login
const InvalidCredentials = "Invalid credentials"

// Site simulates the login form of the shop: the form appears on the login URL,
// wrong or missing credentials show the error banner and valid credentials
// redirect to the base URL and set a session cookie.
type Site struct {
	*Browser
	BaseURL  string
	LoginURL string
	Username string
	Password string
}

// NewSite returns a browser serving the login form under baseURL
func NewSite(baseURL, username, password string) *Site {
	s := &Site{
		Browser:  NewBrowser(),
		BaseURL:  baseURL,
		LoginURL: mustJoin(baseURL, "login"),
		Username: username,
		Password: password,
	}
	s.OnNavigate = s.render
	return s
}

func (s *Site) render(u string) {
	for _, l := range []entities.Locator{entities.UsernameInput, entities.PasswordInput, entities.SubmitButton, entities.ErrorBanner} {
		s.RemoveElement(l)
	}
	if u != s.LoginURL {
		return
	}
	s.AddElement(entities.UsernameInput, "")
	s.AddElement(entities.PasswordInput, "")
	submit := s.AddElement(entities.SubmitButton, "Login")
	submit.OnClick = s.submit
}

func (s *Site) submit() {
	user := s.Element(entities.UsernameInput).Value
	pass := s.Element(entities.PasswordInput).Value
	if user == s.Username && pass == s.Password {
		s.Cookies["session"] = user
		s.URL = s.BaseURL
		s.render(s.URL)
		return
	}
	s.AddElement(entities.ErrorBanner, InvalidCredentials)
}

func mustJoin(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		panic(err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		panic(err)
	}
	return b.ResolveReference(r).String()
}
