package entities

import "fmt"

// Locator is an XPath expression identifying one page element
type Locator string

// inputByID is reused for every <input> addressed by its id attribute
const inputByID = "//input[@id='%s']"

// Login page locators
var (
	UsernameInput = Locator(fmt.Sprintf(inputByID, "username"))
	PasswordInput = Locator(fmt.Sprintf(inputByID, "password"))
	SubmitButton  = Locator("//button[contains(@class, 'btn')]")
	ErrorBanner   = Locator("//div[contains(@class, 'alert-danger')]")
)

func (l Locator) String() string {
	return string(l)
}
