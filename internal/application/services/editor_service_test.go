package services

import (
	"log/slog"
	"testing"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/session"
	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/templates"
	"github.com/DecorForge/proposalcraft-go/internal/domain/repositories"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProposalRepo struct {
	records map[string]*repositories.ProposalRecord
}

func newMemProposalRepo() *memProposalRepo {
	return &memProposalRepo{records: make(map[string]*repositories.ProposalRecord)}
}

func (r *memProposalRepo) FindAll() ([]*repositories.ProposalRecord, error) {
	var out []*repositories.ProposalRecord
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, nil
}

func (r *memProposalRepo) FindByID(id string) (*repositories.ProposalRecord, error) {
	return r.records[id], nil
}

func (r *memProposalRepo) Store(record *repositories.ProposalRecord) error {
	r.records[record.ID] = record
	return nil
}

func (r *memProposalRepo) Delete(id string) error {
	delete(r.records, id)
	return nil
}

type memTemplateRepo struct {
	items []*templates.Template
}

func (r *memTemplateRepo) FindAll() ([]*templates.Template, error) { return r.items, nil }

func (r *memTemplateRepo) FindByID(id string) (*templates.Template, error) {
	for _, t := range r.items {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

type recordingNotifier struct {
	notified []string
}

func (n *recordingNotifier) NotifyDocumentChanged(sessionID string) {
	n.notified = append(n.notified, sessionID)
}

func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToConsole: false,
		DefaultLevel:    slog.LevelError + 4,
	})
	require.NoError(t, err)
	return logger
}

func newTestEditorService(t *testing.T) (*EditorService, *memProposalRepo, *memTemplateRepo, *recordingNotifier) {
	t.Helper()
	proposalRepo := newMemProposalRepo()
	templateRepo := &memTemplateRepo{}
	notifier := &recordingNotifier{}
	svc := NewEditorService(proposalRepo, templateRepo, notifier, newTestLogger(t))
	return svc, proposalRepo, templateRepo, notifier
}

func TestOpenSession(t *testing.T) {
	t.Run("blank session starts with one page", func(t *testing.T) {
		svc, _, _, _ := newTestEditorService(t)

		sess, err := svc.OpenSession("")
		require.NoError(t, err)

		state := sess.Snapshot()
		require.Len(t, state.Doc.Sections, 1)
		assert.Equal(t, state.Doc.Sections[0].ID, state.ActiveSectionID)
		assert.Empty(t, state.SelectedID)
	})

	t.Run("loads a stored proposal by id", func(t *testing.T) {
		svc, repo, _, _ := newTestEditorService(t)

		doc := proposal.NewDocument("Stored")
		require.NoError(t, repo.Store(&repositories.ProposalRecord{ID: "p1", Title: "Stored", Document: doc}))

		sess, err := svc.OpenSession("p1")
		require.NoError(t, err)
		assert.Equal(t, "Stored", sess.Snapshot().Doc.Title)
		assert.Equal(t, "p1", sess.ProposalID())
	})

	t.Run("unknown proposal errors", func(t *testing.T) {
		svc, _, _, _ := newTestEditorService(t)
		_, err := svc.OpenSession("missing")
		assert.Error(t, err)
	})

	t.Run("sessions are fully independent", func(t *testing.T) {
		svc, _, _, _ := newTestEditorService(t)

		a, err := svc.OpenSession("")
		require.NoError(t, err)
		b, err := svc.OpenSession("")
		require.NoError(t, err)

		elA, err := svc.AddElement(a.ID, proposal.KindHeading, 0, 0)
		require.NoError(t, err)

		assert.Equal(t, elA.ID, a.SelectedID())
		assert.Empty(t, b.SelectedID())
		assert.Empty(t, b.Snapshot().Doc.Elements())
	})
}

func TestAddElementSelectsIt(t *testing.T) {
	svc, _, _, notifier := newTestEditorService(t)
	sess, err := svc.OpenSession("")
	require.NoError(t, err)

	el, err := svc.AddElement(sess.ID, proposal.KindText, 50, 60)
	require.NoError(t, err)

	assert.Equal(t, el.ID, sess.SelectedID())
	assert.Equal(t, session.PhaseSelected, sess.Phase())
	assert.Contains(t, notifier.notified, sess.ID)
}

func TestAddElementRejectsUnknownKind(t *testing.T) {
	svc, _, _, _ := newTestEditorService(t)
	sess, err := svc.OpenSession("")
	require.NoError(t, err)

	_, err = svc.AddElement(sess.ID, proposal.Kind("Video"), 0, 0)
	assert.Error(t, err)
}

func TestRemoveElementClearsSelection(t *testing.T) {
	svc, _, _, _ := newTestEditorService(t)
	sess, err := svc.OpenSession("")
	require.NoError(t, err)

	el, err := svc.AddElement(sess.ID, proposal.KindImage, 0, 0)
	require.NoError(t, err)
	require.Equal(t, el.ID, sess.SelectedID())

	require.NoError(t, svc.RemoveElement(sess.ID, el.ID))

	assert.Empty(t, sess.SelectedID())
	assert.Equal(t, session.PhaseIdle, sess.Phase())
	assert.False(t, sess.Snapshot().Doc.HasElement(el.ID))
}

func TestDeleteSelected(t *testing.T) {
	t.Run("removes the selection target", func(t *testing.T) {
		svc, _, _, _ := newTestEditorService(t)
		sess, err := svc.OpenSession("")
		require.NoError(t, err)

		el, err := svc.AddElement(sess.ID, proposal.KindHeading, 0, 0)
		require.NoError(t, err)

		require.NoError(t, svc.DeleteSelected(sess.ID))
		assert.False(t, sess.Snapshot().Doc.HasElement(el.ID))
	})

	t.Run("no selection is a no-op", func(t *testing.T) {
		svc, _, _, _ := newTestEditorService(t)
		sess, err := svc.OpenSession("")
		require.NoError(t, err)
		assert.NoError(t, svc.DeleteSelected(sess.ID))
	})
}

func TestDuplicateSelectsCopy(t *testing.T) {
	svc, _, _, _ := newTestEditorService(t)
	sess, err := svc.OpenSession("")
	require.NoError(t, err)

	el, err := svc.AddElement(sess.ID, proposal.KindScopeBlock, 10, 10)
	require.NoError(t, err)

	cp, err := svc.Duplicate(sess.ID, el.ID)
	require.NoError(t, err)

	assert.NotEqual(t, el.ID, cp.ID)
	assert.Equal(t, cp.ID, sess.SelectedID())
}

func TestHandlePointerDrivesTheMachine(t *testing.T) {
	svc, _, _, _ := newTestEditorService(t)
	sess, err := svc.OpenSession("")
	require.NoError(t, err)

	el, err := svc.AddElement(sess.ID, proposal.KindImage, 100, 100)
	require.NoError(t, err)

	require.NoError(t, svc.HandlePointer(sess.ID, session.PointerEvent{Type: session.PointerDown, X: 110, Y: 110, TargetID: el.ID}))
	require.NoError(t, svc.HandlePointer(sess.ID, session.PointerEvent{Type: session.PointerMove, X: 210, Y: 160}))
	require.NoError(t, svc.HandlePointer(sess.ID, session.PointerEvent{Type: session.PointerUp}))

	got, _, ok := sess.Snapshot().Doc.FindElement(el.ID)
	require.True(t, ok)
	assert.Equal(t, 200.0, got.Geometry.X)
	assert.Equal(t, 150.0, got.Geometry.Y)
	assert.Equal(t, session.PhaseSelected, sess.Phase())
}

func TestPressEscape(t *testing.T) {
	svc, _, _, _ := newTestEditorService(t)
	sess, err := svc.OpenSession("")
	require.NoError(t, err)

	el, err := svc.AddElement(sess.ID, proposal.KindHeading, 0, 0)
	require.NoError(t, err)
	require.NoError(t, svc.BeginInlineEdit(sess.ID, el.ID))

	require.NoError(t, svc.PressEscape(sess.ID))

	assert.Empty(t, sess.SelectedID())
	assert.Empty(t, sess.EditingElementID())
}

func TestInlineEdit(t *testing.T) {
	t.Run("commit writes the buffer through the document", func(t *testing.T) {
		svc, _, _, _ := newTestEditorService(t)
		sess, err := svc.OpenSession("")
		require.NoError(t, err)

		el, err := svc.AddElement(sess.ID, proposal.KindHeading, 0, 0)
		require.NoError(t, err)

		require.NoError(t, svc.BeginInlineEdit(sess.ID, el.ID))
		assert.Equal(t, "New Heading", sess.EditBuffer())

		require.NoError(t, svc.UpdateInlineBuffer(sess.ID, "Living Room Refresh"))
		updated, err := svc.CommitInlineEdit(sess.ID)
		require.NoError(t, err)

		assert.Equal(t, "Living Room Refresh", updated.Content.(*proposal.HeadingContent).Text)
		assert.Empty(t, sess.EditingElementID())
	})

	t.Run("abandon drops the buffer", func(t *testing.T) {
		svc, _, _, _ := newTestEditorService(t)
		sess, err := svc.OpenSession("")
		require.NoError(t, err)

		el, err := svc.AddElement(sess.ID, proposal.KindText, 0, 0)
		require.NoError(t, err)

		require.NoError(t, svc.BeginInlineEdit(sess.ID, el.ID))
		require.NoError(t, svc.UpdateInlineBuffer(sess.ID, "discarded"))
		require.NoError(t, svc.AbandonInlineEdit(sess.ID))

		got, _, ok := sess.Snapshot().Doc.FindElement(el.ID)
		require.True(t, ok)
		assert.NotEqual(t, "discarded", got.Content.(*proposal.TextContent).Text)
	})

	t.Run("only headings and text support inline editing", func(t *testing.T) {
		svc, _, _, _ := newTestEditorService(t)
		sess, err := svc.OpenSession("")
		require.NoError(t, err)

		el, err := svc.AddElement(sess.ID, proposal.KindImage, 0, 0)
		require.NoError(t, err)

		assert.Error(t, svc.BeginInlineEdit(sess.ID, el.ID))
	})

	t.Run("element must be selected first", func(t *testing.T) {
		svc, _, _, _ := newTestEditorService(t)
		sess, err := svc.OpenSession("")
		require.NoError(t, err)

		el, err := svc.AddElement(sess.ID, proposal.KindHeading, 0, 0)
		require.NoError(t, err)
		require.NoError(t, svc.PressEscape(sess.ID))

		assert.Error(t, svc.BeginInlineEdit(sess.ID, el.ID))
	})

	t.Run("removing the edited element cancels the edit", func(t *testing.T) {
		svc, _, _, _ := newTestEditorService(t)
		sess, err := svc.OpenSession("")
		require.NoError(t, err)

		el, err := svc.AddElement(sess.ID, proposal.KindHeading, 0, 0)
		require.NoError(t, err)
		require.NoError(t, svc.BeginInlineEdit(sess.ID, el.ID))

		require.NoError(t, svc.RemoveElement(sess.ID, el.ID))
		assert.Empty(t, sess.EditingElementID())
		assert.Empty(t, sess.EditBuffer())
	})
}

func TestLoadTemplate(t *testing.T) {
	svc, _, templateRepo, _ := newTestEditorService(t)

	srcDoc := proposal.NewDocument("Template Source")
	_, err := srcDoc.AddElement(srcDoc.Sections[0].ID, proposal.KindHeading, 20, 20)
	require.NoError(t, err)
	templateRepo.items = []*templates.Template{{
		ID: "t1", Name: "Studio Refresh", Category: "residential", Version: 1, Document: srcDoc,
	}}

	sess, err := svc.OpenSession("")
	require.NoError(t, err)
	_, err = svc.AddElement(sess.ID, proposal.KindText, 0, 0)
	require.NoError(t, err)

	doc, err := svc.LoadTemplate(sess.ID, "t1")
	require.NoError(t, err)

	state := sess.Snapshot()
	assert.Equal(t, doc.ID, state.Doc.ID)
	assert.Equal(t, "Studio Refresh", state.Doc.Title)
	assert.Empty(t, state.SelectedID, "template load resets selection")
	assert.Equal(t, session.PhaseIdle, sess.Phase())
	assert.Equal(t, state.Doc.Sections[0].ID, state.ActiveSectionID)
	assert.NotEqual(t, srcDoc.Sections[0].ID, state.Doc.Sections[0].ID)
}

func TestSaveProposal(t *testing.T) {
	t.Run("first save keys the row by document id", func(t *testing.T) {
		svc, repo, _, _ := newTestEditorService(t)
		sess, err := svc.OpenSession("")
		require.NoError(t, err)

		record, err := svc.SaveProposal(sess.ID)
		require.NoError(t, err)

		assert.Equal(t, sess.Snapshot().Doc.ID, record.ID)
		assert.NotNil(t, repo.records[record.ID])
		assert.Equal(t, record.ID, sess.ProposalID())
	})

	t.Run("later saves reuse the proposal id", func(t *testing.T) {
		svc, repo, _, _ := newTestEditorService(t)
		sess, err := svc.OpenSession("")
		require.NoError(t, err)

		first, err := svc.SaveProposal(sess.ID)
		require.NoError(t, err)
		_, err = svc.AddElement(sess.ID, proposal.KindHeading, 0, 0)
		require.NoError(t, err)
		second, err := svc.SaveProposal(sess.ID)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, repo.records, 1)
	})
}

func TestSections(t *testing.T) {
	svc, _, _, _ := newTestEditorService(t)
	sess, err := svc.OpenSession("")
	require.NoError(t, err)

	section, err := svc.AddSection(sess.ID, "Page 2")
	require.NoError(t, err)
	assert.Equal(t, section.ID, sess.ActiveSectionID())

	// New elements land in the active section.
	el, err := svc.AddElement(sess.ID, proposal.KindHeading, 0, 0)
	require.NoError(t, err)
	_, owner, ok := sess.Snapshot().Doc.FindElement(el.ID)
	require.True(t, ok)
	assert.Equal(t, section.ID, owner.ID)

	firstID := sess.Snapshot().Doc.Sections[0].ID
	require.NoError(t, svc.SetActiveSection(sess.ID, firstID))
	assert.Equal(t, firstID, sess.ActiveSectionID())

	assert.Error(t, svc.SetActiveSection(sess.ID, "missing"))

	require.NoError(t, svc.RenameSection(sess.ID, firstID, "Intro"))
	assert.Equal(t, "Intro", sess.Snapshot().Doc.Sections[0].Title)
	assert.Error(t, svc.RenameSection(sess.ID, "missing", "x"))
}

func TestCloseSession(t *testing.T) {
	svc, _, _, _ := newTestEditorService(t)
	sess, err := svc.OpenSession("")
	require.NoError(t, err)

	svc.CloseSession(sess.ID)
	_, ok := svc.Session(sess.ID)
	assert.False(t, ok)
}
