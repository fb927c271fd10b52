package email

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// WelcomeData feeds the welcome template sent after registration.
type WelcomeData struct {
	OrgName  string
	Email    string
	LoginURL string
}

// WelcomeBody renders the registration welcome email.
func WelcomeBody(data WelcomeData) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, "welcome.html", data); err != nil {
		return "", err
	}
	return body.String(), nil
}
