package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/chorus-tre/authui/internal/banner"
	"github.com/chorus-tre/authui/internal/http/viewmodels"
	"github.com/chorus-tre/authui/internal/http/views"
	"github.com/chorus-tre/authui/internal/login"
	"github.com/labstack/echo/v5"
)

const (
	DevAuthPrefix = "/dev-auth"

	loginTitle   = "Sign in"
	devAuthTitle = "Developer sign in"
)

// redirectNavigator records the location a submission navigates to.
type redirectNavigator struct {
	location string
	ok       bool
}

func (n *redirectNavigator) Navigate(location string) {
	n.location = location
	n.ok = true
}

// HandleLoginGet renders the login page with the error banner hidden.
func (h *Handlers) HandleLoginGet(c *echo.Context) error {
	data := h.loginViewData(c)
	data.Banner = bannerViewData(banner.New().State())
	return h.RenderComponent(c, views.LoginPage(data))
}

// HandleLoginPost runs the submitted credentials through the login submitter.
// A successful login answers with a redirect; anything else renders the page
// (or, for htmx, the banner fragment) in the state the submission left it.
func (h *Handlers) HandleLoginPost(c *echo.Context) error {
	addVary(c, "HX-Request")
	if h.Submitter == nil {
		return errors.New("login submitter not configured")
	}

	creds := login.Credentials{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
	}

	b := banner.New()
	nav := &redirectNavigator{}
	h.Submitter.Submit(c.Request().Context(), login.Page{
		Banner:    b,
		Navigator: nav,
		Query:     c.Request().URL.Query(),
	}, creds)

	if nav.ok {
		if isHX(c) {
			setHXRedirect(c, nav.location)
			return c.NoContent(http.StatusOK)
		}
		return c.Redirect(http.StatusSeeOther, nav.location)
	}

	bannerData := bannerViewData(b.State())
	if isHX(c) {
		return h.RenderComponent(c, views.ErrorBanner(bannerData))
	}

	data := h.loginViewData(c)
	data.Username = creds.Username
	data.Banner = bannerData
	return h.RenderComponent(c, views.LoginPage(data))
}

// HandleSlashRedirect sends a page root without its trailing slash to the
// slash form, keeping the query string.
func (h *Handlers) HandleSlashRedirect(c *echo.Context) error {
	u := *c.Request().URL
	u.Path = strings.TrimRight(u.Path, "/") + "/"
	u.RawPath = ""
	return c.Redirect(http.StatusFound, u.RequestURI())
}

func (h *Handlers) loginViewData(c *echo.Context) viewmodels.LoginViewData {
	title := loginTitle
	if strings.HasPrefix(c.Request().URL.Path, DevAuthPrefix+"/") {
		title = devAuthTitle
	}
	return viewmodels.LoginViewData{
		Title:         title,
		Action:        c.Request().URL.RequestURI(),
		HTMXScriptURL: h.HTMXScriptURL,
	}
}

func bannerViewData(s banner.State) viewmodels.ErrorBannerViewData {
	return viewmodels.ErrorBannerViewData{
		Message: s.Message,
		Hidden:  s.Hidden,
	}
}
