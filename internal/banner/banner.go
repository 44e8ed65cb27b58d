// Package banner holds the state of the login page error region.
package banner

import "sync"

// State is a snapshot of an ErrorBanner used for rendering.
type State struct {
	Message string
	Hidden  bool
}

// ErrorBanner is the single error region of a login page. The zero value is
// hidden with no text and is ready to use.
type ErrorBanner struct {
	mu      sync.Mutex
	message string
	shown   bool
}

// New returns a hidden banner.
func New() *ErrorBanner {
	return &ErrorBanner{}
}

// HideError clears the text and hides the region.
func (b *ErrorBanner) HideError() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.message = ""
	b.shown = false
}

// DisplayError replaces the text with message and shows the region.
func (b *ErrorBanner) DisplayError(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.message = message
	b.shown = true
}

// State returns the current text and visibility.
func (b *ErrorBanner) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return State{Message: b.message, Hidden: !b.shown}
}
