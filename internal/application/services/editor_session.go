package services

import (
	"sync"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/session"
)

// EditorSession is one live editing surface: the document being edited, its
// selection/gesture machine, the active section, and the inline-edit buffer.
// Sessions are independent; the service owns a registry of them and two
// sessions never share state, so parallel editors (or a test harness
// instantiating two) cannot interfere.
type EditorSession struct {
	ID string

	mu              sync.Mutex
	doc             *proposal.Document
	machine         *session.Machine
	activeSectionID string

	// proposalID links the session to its backing proposal row, empty for a
	// document that has never been saved.
	proposalID string

	// Inline edit state. editingID is the Heading/Text element whose content
	// is being edited; editBuffer holds the uncommitted text. Abandoning the
	// session loses the buffer, which is the documented behavior.
	editingID  string
	editBuffer string
}

func newEditorSession(id string, doc *proposal.Document, proposalID string) *EditorSession {
	return &EditorSession{
		ID:              id,
		doc:             doc,
		machine:         session.NewMachine(),
		activeSectionID: doc.Sections[0].ID,
		proposalID:      proposalID,
	}
}

// Document returns the session's document. Mutations must go through the
// EditorService so selection rules and preview notifications stay applied.
func (s *EditorSession) Document() *proposal.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// SelectedID returns the currently selected element id, or "".
func (s *EditorSession) SelectedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.SelectedID()
}

// Phase returns the interaction machine's current phase.
func (s *EditorSession) Phase() session.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Phase()
}

// ActiveSectionID returns the section new elements are appended to.
func (s *EditorSession) ActiveSectionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeSectionID
}

// EditingElementID returns the element in inline edit mode, or "".
func (s *EditorSession) EditingElementID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID
}

// EditBuffer returns the uncommitted inline-edit text.
func (s *EditorSession) EditBuffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editBuffer
}

// ProposalID returns the backing proposal row id, or "" if never saved.
func (s *EditorSession) ProposalID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proposalID
}

// SessionState is a point-in-time copy of a session's document and UI
// state, safe to read while the session keeps mutating.
type SessionState struct {
	Doc             *proposal.Document
	ActiveSectionID string
	SelectedID      string
	Phase           session.Phase
	EditingID       string
	EditBuffer      string
	ProposalID      string
}

// Snapshot returns a consistent copy of the session under one lock
// acquisition. The document is deep-cloned so renderers never observe a
// half-applied mutation.
func (s *EditorSession) Snapshot() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		Doc:             s.doc.Clone(),
		ActiveSectionID: s.activeSectionID,
		SelectedID:      s.machine.SelectedID(),
		Phase:           s.machine.Phase(),
		EditingID:       s.editingID,
		EditBuffer:      s.editBuffer,
		ProposalID:      s.proposalID,
	}
}
