package views

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
	"github.com/chorus-tre/authui/internal/http/viewmodels"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))

// LoginPage renders the full login document.
func LoginPage(data viewmodels.LoginViewData) templ.Component {
	return component("login", data)
}

// ErrorBanner renders only the error region, for htmx swaps.
func ErrorBanner(data viewmodels.ErrorBannerViewData) templ.Component {
	return component("error-banner", data)
}

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return pageTemplates.ExecuteTemplate(w, name, data)
	})
}
