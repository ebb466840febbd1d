package views

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page names accepted by gin's c.HTML once Templates is installed.
const (
	Login      = "login.html"
	Register   = "registro.html"
	Recovery   = "recuperacao.html"
	Onboarding = "primeiro-login.html"
	Home       = "home.html"
)

// Templates parses every embedded page together with the shared layout.
func Templates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}
