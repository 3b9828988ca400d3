package ui

import (
	"time"
)

// page_state.go provides shared state management for console pages.
// Embed PageState in a page model to get consistent status handling.

// StatusTTL is how long transient status messages stay on screen.
const StatusTTL = 5 * time.Second

// PageState contains common state that all pages need.
type PageState struct {
	Layout       Layout
	StatusMsg    string
	StatusExpiry time.Time
	Err          error

	now func() time.Time
}

// NewPageState creates a new PageState with the given layout.
func NewPageState(layout Layout) PageState {
	return PageState{Layout: layout, now: time.Now}
}

func (p *PageState) clock() time.Time {
	if p.now == nil {
		return time.Now()
	}
	return p.now()
}

// SetStatus sets a status message that will expire after the given duration.
// If duration is 0, the status message will not expire. Setting a status
// clears any previous error.
func (p *PageState) SetStatus(msg string, duration time.Duration) {
	p.StatusMsg = msg
	p.Err = nil
	if duration > 0 {
		p.StatusExpiry = p.clock().Add(duration)
	} else {
		p.StatusExpiry = time.Time{}
	}
}

// SetError shows err in the page's error slot and drops the status line.
func (p *PageState) SetError(err error) {
	p.Err = err
	p.StatusMsg = ""
	p.StatusExpiry = time.Time{}
}

// ClearExpiredStatus clears the status message if it has expired.
func (p *PageState) ClearExpiredStatus() {
	if !p.StatusExpiry.IsZero() && p.clock().After(p.StatusExpiry) {
		p.StatusMsg = ""
		p.StatusExpiry = time.Time{}
	}
}

// HasStatus returns true if there is a non-empty status message.
func (p *PageState) HasStatus() bool {
	return p.StatusMsg != ""
}

// UpdateLayout updates the layout and returns true if it changed.
func (p *PageState) UpdateLayout(width, height int) bool {
	newLayout := NewLayout(width, height)
	if newLayout != p.Layout {
		p.Layout = newLayout
		return true
	}
	return false
}
