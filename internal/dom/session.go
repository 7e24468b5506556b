package dom

import "github.com/rotisserie/eris"

// ErrStaticPage reports an interaction attempted against a non-interactive
// document (a saved HTML file has no click surface).
var ErrStaticPage = eris.New("dom: static page does not support interaction")

// Session is the interactive surface of a host page. View returns the
// current document snapshot, which may change after Activate mutates the
// page. Both mutation operations are best-effort against markup this system
// does not control.
type Session interface {
	View() *View
	// Activate clicks the first element matching the selector.
	Activate(selector string) error
	// SendEscape dispatches an Escape key event to the page.
	SendEscape() error
}

// StaticSession wraps a fixed document with no interaction support.
type StaticSession struct {
	view *View
}

// NewStaticSession builds a Session over an immutable document.
func NewStaticSession(v *View) *StaticSession {
	return &StaticSession{view: v}
}

func (s *StaticSession) View() *View             { return s.view }
func (s *StaticSession) Activate(_ string) error { return ErrStaticPage }
func (s *StaticSession) SendEscape() error       { return ErrStaticPage }
