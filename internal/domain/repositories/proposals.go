// Package repositories defines the persistence interfaces the domain layer
// depends on. Concrete implementations live in infrastructure/persistence.
package repositories

import (
	"time"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/templates"
)

// ProposalRecord is a persisted proposal: the serialized document plus row
// metadata.
type ProposalRecord struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Document *proposal.Document `json:"document"`
	Created  time.Time          `json:"created"`
	Changed  *time.Time         `json:"changed,omitempty"`
}

// ProposalRepository is the persistence collaborator boundary: save and load
// serialized documents. FindByID returns (nil, nil) when the id is unknown.
type ProposalRepository interface {
	FindAll() ([]*ProposalRecord, error)
	FindByID(id string) (*ProposalRecord, error)
	Store(record *ProposalRecord) error
	Delete(id string) error
}

// TemplateRepository is the template source boundary. FindByID returns
// (nil, nil) when the id is unknown.
type TemplateRepository interface {
	FindAll() ([]*templates.Template, error)
	FindByID(id string) (*templates.Template, error)
}
