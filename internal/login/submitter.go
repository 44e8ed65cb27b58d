// Package login runs one login form submission end to end: it clears the
// error banner, posts the credentials, and either navigates to the callback
// destination or shows why the login did not go through.
package login

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/chorus-tre/authui/internal/authapi"
	"github.com/chorus-tre/authui/internal/metrics"
)

const (
	// CallbackParam is the page query parameter naming the post-login destination.
	CallbackParam = "callback_url"
	// DefaultDestination is used when CallbackParam is absent or empty.
	DefaultDestination = "/"
	// GenericErrorPrefix starts the banner text shown when the backend could not be reached.
	GenericErrorPrefix = "An unexpected error occurred. Please try again later."
)

// Outcome is the result of one submission.
type Outcome string

const (
	OutcomeNavigated    Outcome = "navigated"
	OutcomeRejected     Outcome = "rejected"
	OutcomeUnrecognized Outcome = "unrecognized"
	OutcomeFailed       Outcome = "failed"
)

// Credentials are the values of the username and password inputs, as typed.
type Credentials = authapi.Credentials

// ErrorBanner is the page's error region.
type ErrorBanner interface {
	HideError()
	DisplayError(message string)
}

// Navigator moves the user to another location.
type Navigator interface {
	Navigate(location string)
}

// Authenticator posts credentials to the authentication backend.
type Authenticator interface {
	Login(ctx context.Context, creds authapi.Credentials) (authapi.LoginResponse, error)
}

// Page is the page a submission happens on.
type Page struct {
	Banner    ErrorBanner
	Navigator Navigator
	// Query is the query string of the page URL.
	Query url.Values
}

// Submitter handles login submissions. It holds no per-submission state, so
// one Submitter serves concurrent submissions; nothing serializes them.
type Submitter struct {
	Auth   Authenticator
	Logger *slog.Logger
}

// NewSubmitter returns a Submitter. A nil logger falls back to slog.Default.
func NewSubmitter(auth Authenticator, logger *slog.Logger) *Submitter {
	return &Submitter{Auth: auth, Logger: logger}
}

// Submit performs one submission against page.
func (s *Submitter) Submit(ctx context.Context, page Page, creds Credentials) Outcome {
	metrics.LoginSubmissionsInFlight.Inc()
	defer metrics.LoginSubmissionsInFlight.Dec()

	outcome := s.submit(ctx, page, creds)
	metrics.LoginSubmissionsTotal.WithLabelValues(string(outcome)).Inc()
	return outcome
}

func (s *Submitter) submit(ctx context.Context, page Page, creds Credentials) Outcome {
	logger := s.logger()
	page.Banner.HideError()

	start := time.Now()
	resp, err := s.Auth.Login(ctx, creds)
	metrics.LoginUpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		logger.ErrorContext(ctx, "login request failed", "error", err)
		page.Banner.DisplayError(GenericErrorPrefix + " " + err.Error())
		return OutcomeFailed
	}

	switch {
	case resp.Succeeded():
		destination := CallbackURL(page.Query)
		logger.InfoContext(ctx, "login succeeded", "destination", destination)
		page.Navigator.Navigate(destination)
		return OutcomeNavigated
	case resp.Message != "":
		logger.InfoContext(ctx, "login rejected", "status", resp.StatusCode, "message", resp.Message)
		page.Banner.DisplayError(resp.Message)
		return OutcomeRejected
	default:
		logger.WarnContext(ctx, "login reply carried neither token nor message", "status", resp.StatusCode)
		return OutcomeUnrecognized
	}
}

func (s *Submitter) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// CallbackURL returns the destination named by the callback_url query
// parameter, or "/". The value is not checked for being a local path.
func CallbackURL(query url.Values) string {
	if dest := query.Get(CallbackParam); dest != "" {
		return dest
	}
	return DefaultDestination
}
