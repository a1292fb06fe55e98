package services

import (
	"testing"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
	"github.com/DecorForge/proposalcraft-go/internal/domain/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposalServiceSave(t *testing.T) {
	t.Run("stores a valid document and stamps the change time", func(t *testing.T) {
		repo := newMemProposalRepo()
		svc := NewProposalService(repo, newTestLogger(t))

		doc := proposal.NewDocument("Loft Makeover")
		record := &repositories.ProposalRecord{ID: doc.ID, Document: doc}
		require.NoError(t, svc.Save(record))

		stored := repo.records[doc.ID]
		require.NotNil(t, stored)
		assert.Equal(t, "Loft Makeover", stored.Title, "title falls back to the document title")
		assert.NotNil(t, stored.Changed)
	})

	t.Run("rejects a document that fails validation", func(t *testing.T) {
		repo := newMemProposalRepo()
		svc := NewProposalService(repo, newTestLogger(t))

		doc := proposal.NewDocument("Broken")
		doc.Sections = nil
		err := svc.Save(&repositories.ProposalRecord{ID: "p1", Document: doc})
		assert.Error(t, err)
		assert.Empty(t, repo.records)
	})

	t.Run("rejects missing id or document", func(t *testing.T) {
		svc := NewProposalService(newMemProposalRepo(), newTestLogger(t))
		assert.Error(t, svc.Save(&repositories.ProposalRecord{Document: proposal.NewDocument("x")}))
		assert.Error(t, svc.Save(&repositories.ProposalRecord{ID: "p1"}))
	})
}

func TestProposalServiceDelete(t *testing.T) {
	repo := newMemProposalRepo()
	svc := NewProposalService(repo, newTestLogger(t))

	doc := proposal.NewDocument("Gone Soon")
	require.NoError(t, svc.Save(&repositories.ProposalRecord{ID: "p1", Document: doc}))

	require.NoError(t, svc.Delete("p1"))
	assert.Empty(t, repo.records)

	// Deleting an unknown id is not an error.
	assert.NoError(t, svc.Delete("p1"))
}

func TestProposalServiceGet(t *testing.T) {
	repo := newMemProposalRepo()
	svc := NewProposalService(repo, newTestLogger(t))

	missing, err := svc.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
