// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"fmt"
	"sync"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/session"
	"github.com/DecorForge/proposalcraft-go/internal/domain/repositories"
	domainservices "github.com/DecorForge/proposalcraft-go/internal/domain/services"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
)

// PreviewNotifier pushes document-change notifications to preview clients.
// The messaging hub implements it; tests substitute a recorder.
type PreviewNotifier interface {
	NotifyDocumentChanged(sessionID string)
}

// noopNotifier is used when no preview hub is wired (tests, tooling).
type noopNotifier struct{}

func (noopNotifier) NotifyDocumentChanged(string) {}

// EditorService owns the registry of editor sessions and applies every
// mutation to a session's document, keeping the selection rules, the
// gesture machine, and preview notifications in one place.
type EditorService struct {
	mu       sync.RWMutex
	sessions map[string]*EditorSession

	proposalRepo repositories.ProposalRepository
	templateRepo repositories.TemplateRepository
	integrity    *domainservices.DocumentIntegrityService
	notifier     PreviewNotifier
	logger       *logging.ChanneledLogger
}

// NewEditorService creates the editor session registry. notifier may be nil.
func NewEditorService(
	proposalRepo repositories.ProposalRepository,
	templateRepo repositories.TemplateRepository,
	notifier PreviewNotifier,
	logger *logging.ChanneledLogger,
) *EditorService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &EditorService{
		sessions:     make(map[string]*EditorSession),
		proposalRepo: proposalRepo,
		templateRepo: templateRepo,
		integrity:    domainservices.NewDocumentIntegrityService(),
		notifier:     notifier,
		logger:       logger,
	}
}

// OpenSession starts a new editor session. With an empty proposalID the
// session opens a fresh single-page document; otherwise it loads the
// proposal from the repository.
func (s *EditorService) OpenSession(proposalID string) (*EditorSession, error) {
	var doc *proposal.Document

	if proposalID == "" {
		doc = proposal.NewDocument("Untitled Proposal")
	} else {
		record, err := s.proposalRepo.FindByID(proposalID)
		if err != nil {
			return nil, fmt.Errorf("failed to load proposal %s: %w", proposalID, err)
		}
		if record == nil {
			return nil, fmt.Errorf("proposal %s not found", proposalID)
		}
		if err := s.integrity.ValidateDocument(record.Document); err != nil {
			return nil, fmt.Errorf("proposal %s failed validation: %w", proposalID, err)
		}
		doc = record.Document.Clone()
	}

	sess := newEditorSession(proposal.NewID(), doc, proposalID)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.WithSession(logging.ChannelEditor, sess.ID).Info("Editor session opened", "proposalId", proposalID)
	return sess, nil
}

// Session returns a live session by id.
func (s *EditorService) Session(id string) (*EditorSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// CloseSession discards a session and its unsaved state.
func (s *EditorService) CloseSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	s.logger.WithSession(logging.ChannelEditor, id).Info("Editor session closed")
}

func (s *EditorService) withSession(id string, fn func(*EditorSession) error) error {
	sess, ok := s.Session(id)
	if !ok {
		return fmt.Errorf("editor session %s not found", id)
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess)
}

// AddElement creates a default element of the given kind in the session's
// active section and makes it the selection target.
func (s *EditorService) AddElement(sessionID string, kind proposal.Kind, x, y float64) (*proposal.Element, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown element kind %q", kind)
	}

	var el *proposal.Element
	err := s.withSession(sessionID, func(sess *EditorSession) error {
		added, err := sess.doc.AddElement(sess.activeSectionID, kind, x, y)
		if err != nil {
			return err
		}
		sess.machine.Select(added.ID)
		el = added
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyDocumentChanged(sessionID)
	return el, nil
}

// UpdateElement applies a partial patch through the document model. The
// inspector and the inline-edit commit both land here.
func (s *EditorService) UpdateElement(sessionID, elementID string, patch proposal.ElementPatch) (*proposal.Element, error) {
	var el *proposal.Element
	err := s.withSession(sessionID, func(sess *EditorSession) error {
		updated, err := sess.doc.UpdateElement(elementID, patch)
		if err != nil {
			return err
		}
		el = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyDocumentChanged(sessionID)
	return el, nil
}

// RemoveElement deletes an element, clearing selection and any inline edit
// on it. Removing an unknown id is a no-op.
func (s *EditorService) RemoveElement(sessionID, elementID string) error {
	err := s.withSession(sessionID, func(sess *EditorSession) error {
		sess.doc.RemoveElement(elementID)
		sess.machine.ElementRemoved(elementID)
		if sess.editingID == elementID {
			sess.editingID = ""
			sess.editBuffer = ""
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.NotifyDocumentChanged(sessionID)
	return nil
}

// DeleteSelected removes the currently selected element, if any.
func (s *EditorService) DeleteSelected(sessionID string) error {
	var target string
	err := s.withSession(sessionID, func(sess *EditorSession) error {
		target = sess.machine.SelectedID()
		return nil
	})
	if err != nil {
		return err
	}
	if target == "" {
		return nil
	}
	return s.RemoveElement(sessionID, target)
}

// Reorder steps the element's stacking order.
func (s *EditorService) Reorder(sessionID, elementID string, direction proposal.ReorderDirection) error {
	err := s.withSession(sessionID, func(sess *EditorSession) error {
		sess.doc.Reorder(elementID, direction)
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.NotifyDocumentChanged(sessionID)
	return nil
}

// Duplicate copies an element and selects the copy.
func (s *EditorService) Duplicate(sessionID, elementID string) (*proposal.Element, error) {
	var el *proposal.Element
	err := s.withSession(sessionID, func(sess *EditorSession) error {
		cp, err := sess.doc.Duplicate(elementID)
		if err != nil {
			return err
		}
		sess.machine.Select(cp.ID)
		el = cp
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyDocumentChanged(sessionID)
	return el, nil
}

// HandlePointer feeds a normalized pointer event through the session's
// gesture machine.
func (s *EditorService) HandlePointer(sessionID string, ev session.PointerEvent) error {
	err := s.withSession(sessionID, func(sess *EditorSession) error {
		sess.machine.HandleEvent(sess.doc, ev)
		return nil
	})
	if err != nil {
		return err
	}

	// Drag and resize moves mutate geometry; down/up only change UI state.
	if ev.Type == session.PointerMove {
		s.notifier.NotifyDocumentChanged(sessionID)
	}
	return nil
}

// PressEscape aborts the in-flight gesture and selection, and abandons any
// uncommitted inline edit.
func (s *EditorService) PressEscape(sessionID string) error {
	return s.withSession(sessionID, func(sess *EditorSession) error {
		sess.machine.Reset()
		sess.editingID = ""
		sess.editBuffer = ""
		return nil
	})
}

// BeginInlineEdit opens the inline text surface for a selected Heading or
// Text element, seeding the buffer with the current content.
func (s *EditorService) BeginInlineEdit(sessionID, elementID string) error {
	return s.withSession(sessionID, func(sess *EditorSession) error {
		if sess.machine.SelectedID() != elementID {
			return fmt.Errorf("element %s is not selected", elementID)
		}

		el, _, ok := sess.doc.FindElement(elementID)
		if !ok {
			return fmt.Errorf("%w: %s", proposal.ErrElementNotFound, elementID)
		}

		switch content := el.Content.(type) {
		case *proposal.HeadingContent:
			sess.editBuffer = content.Text
		case *proposal.TextContent:
			sess.editBuffer = content.Text
		default:
			return fmt.Errorf("element kind %s does not support inline editing", el.Kind)
		}

		sess.editingID = elementID
		return nil
	})
}

// UpdateInlineBuffer replaces the uncommitted inline-edit text. Nothing is
// written to the document until commit.
func (s *EditorService) UpdateInlineBuffer(sessionID, text string) error {
	return s.withSession(sessionID, func(sess *EditorSession) error {
		if sess.editingID == "" {
			return fmt.Errorf("no inline edit in progress")
		}
		sess.editBuffer = text
		return nil
	})
}

// CommitInlineEdit writes the buffered text through the document model and
// exits edit mode.
func (s *EditorService) CommitInlineEdit(sessionID string) (*proposal.Element, error) {
	var (
		elementID string
		text      string
	)
	err := s.withSession(sessionID, func(sess *EditorSession) error {
		if sess.editingID == "" {
			return fmt.Errorf("no inline edit in progress")
		}
		elementID = sess.editingID
		text = sess.editBuffer
		sess.editingID = ""
		sess.editBuffer = ""
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.UpdateElement(sessionID, elementID, proposal.ElementPatch{
		Content: &proposal.ContentPatch{Text: &text},
	})
}

// AbandonInlineEdit exits edit mode dropping the buffered text.
func (s *EditorService) AbandonInlineEdit(sessionID string) error {
	return s.withSession(sessionID, func(sess *EditorSession) error {
		sess.editingID = ""
		sess.editBuffer = ""
		return nil
	})
}

// LoadTemplate replaces the session's document with a fresh instantiation
// of the named template. This discards the current document; the caller is
// responsible for confirming unsaved changes with the user first. Selection,
// gesture, and inline-edit state are all reset.
func (s *EditorService) LoadTemplate(sessionID, templateID string) (*proposal.Document, error) {
	template, err := s.templateRepo.FindByID(templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", templateID, err)
	}
	if template == nil {
		return nil, fmt.Errorf("template %s not found", templateID)
	}

	doc := template.Instantiate()
	err = s.withSession(sessionID, func(sess *EditorSession) error {
		sess.doc = doc
		sess.activeSectionID = doc.Sections[0].ID
		sess.proposalID = ""
		sess.machine.Reset()
		sess.editingID = ""
		sess.editBuffer = ""
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Template().Info("Template instantiated into session",
		"sessionId", sessionID, "templateId", templateID, "documentId", doc.ID)
	s.notifier.NotifyDocumentChanged(sessionID)
	return doc, nil
}

// SetActiveSection switches where AddElement appends.
func (s *EditorService) SetActiveSection(sessionID, sectionID string) error {
	return s.withSession(sessionID, func(sess *EditorSession) error {
		if _, ok := sess.doc.Section(sectionID); !ok {
			return fmt.Errorf("%w: %s", proposal.ErrSectionNotFound, sectionID)
		}
		sess.activeSectionID = sectionID
		return nil
	})
}

// AddSection appends a new page to the document and makes it active.
func (s *EditorService) AddSection(sessionID, title string) (*proposal.Section, error) {
	var section *proposal.Section
	err := s.withSession(sessionID, func(sess *EditorSession) error {
		section = sess.doc.AddSection(title)
		sess.activeSectionID = section.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyDocumentChanged(sessionID)
	return section, nil
}

// RenameSection retitles a page without touching its elements.
func (s *EditorService) RenameSection(sessionID, sectionID, title string) error {
	err := s.withSession(sessionID, func(sess *EditorSession) error {
		return sess.doc.RenameSection(sectionID, title)
	})
	if err != nil {
		return err
	}

	s.notifier.NotifyDocumentChanged(sessionID)
	return nil
}

// SaveProposal hands the session's document to the persistence repository,
// creating or updating the backing proposal row.
func (s *EditorService) SaveProposal(sessionID string) (*repositories.ProposalRecord, error) {
	var record *repositories.ProposalRecord
	err := s.withSession(sessionID, func(sess *EditorSession) error {
		if err := s.integrity.ValidateDocument(sess.doc); err != nil {
			return fmt.Errorf("document failed validation: %w", err)
		}

		id := sess.proposalID
		if id == "" {
			id = sess.doc.ID
			sess.proposalID = id
		}
		record = &repositories.ProposalRecord{
			ID:       id,
			Title:    sess.doc.Title,
			Document: sess.doc.Clone(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.proposalRepo.Store(record); err != nil {
		return nil, err
	}
	s.logger.Content().Info("Proposal saved", "sessionId", sessionID, "proposalId", record.ID)
	return record, nil
}
