package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNewClientRejectsInvalidBaseURL(t *testing.T) {
	tests := []string{"", "   ", "ftp://example.com", "/relative", "http://", "://bad"}

	for _, raw := range tests {
		raw := raw
		t.Run(raw, func(t *testing.T) {
			_, err := NewClient(raw)
			if !errors.Is(err, ErrInvalidBaseURL) {
				t.Fatalf("NewClient(%q) error = %v, want ErrInvalidBaseURL", raw, err)
			}
		})
	}
}

func TestNewClientJoinsLoginPath(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{base: "http://backend:5000", want: "http://backend:5000/api/rest/v1/authentication/login"},
		{base: "https://example.com/", want: "https://example.com/api/rest/v1/authentication/login"},
		{base: "https://example.com/chorus/?x=1#frag", want: "https://example.com/chorus/api/rest/v1/authentication/login"},
	}

	for _, tc := range tests {
		c, err := NewClient(tc.base)
		if err != nil {
			t.Fatalf("NewClient(%q) error = %v", tc.base, err)
		}
		if got := c.Endpoint(); got != tc.want {
			t.Fatalf("Endpoint() = %q, want %q", got, tc.want)
		}
	}
}

func TestLoginPostsJSONCredentials(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotCT     string
		gotUA     string
		gotBody   Credentials
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotCT = r.Header.Get("Content-Type")
		gotUA = r.Header.Get("User-Agent")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":{"token":"abc"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, WithUserAgent("authui-test"))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	creds := Credentials{Username: " alice ", Password: "p@ss word"}
	resp, err := c.Login(context.Background(), creds)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("method = %q, want POST", gotMethod)
	}
	if gotPath != LoginPath {
		t.Fatalf("path = %q, want %q", gotPath, LoginPath)
	}
	if gotCT != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotCT)
	}
	if gotUA != "authui-test" {
		t.Fatalf("User-Agent = %q, want %q", gotUA, "authui-test")
	}
	if diff := cmp.Diff(creds, gotBody); diff != "" {
		t.Fatalf("request body mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(LoginResponse{Token: "abc", StatusCode: http.StatusOK}, resp); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestLoginDecodesErrorStatusBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Unauthorized","code":401,"message":"Invalid credentials","details":"chorus-backend-error"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	resp, err := c.Login(context.Background(), Credentials{Username: "a", Password: "b"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if diff := cmp.Diff(LoginResponse{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}, resp); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestLoginNonJSONBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	_, err = c.Login(context.Background(), Credentials{})
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "decode login response") {
		t.Fatalf("error = %v, want decode error", err)
	}
}

func TestLoginConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := NewClient(base)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	_, err = c.Login(context.Background(), Credentials{})
	if err == nil {
		t.Fatal("expected transport error")
	}
	if !strings.Contains(err.Error(), "post login request") {
		t.Fatalf("error = %v, want transport error", err)
	}
}

func TestLoginHonoursTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := NewClient(srv.URL, WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, err := c.Login(context.Background(), Credentials{}); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestLoginCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.Login(ctx, Credentials{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Login() error = %v, want context.Canceled", err)
	}
}
