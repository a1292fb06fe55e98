// Package caching provides the in-memory content cache fronting the
// proposal and template repositories. Single-process, TTL-based; the
// repositories stay cache-first and fall back to the database on a miss.
package caching

import (
	"sync"
	"time"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/templates"
	"github.com/DecorForge/proposalcraft-go/internal/domain/repositories"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
)

// ContentCache is the caching interface the repositories depend on.
type ContentCache interface {
	GetProposal(id string) (*repositories.ProposalRecord, bool)
	SetProposal(record *repositories.ProposalRecord)
	InvalidateProposal(id string)

	GetTemplate(id string) (*templates.Template, bool)
	SetTemplate(template *templates.Template)
	GetAllTemplateIDs() ([]string, bool)
	SetAllTemplateIDs(ids []string)
}

type proposalEntry struct {
	record    *repositories.ProposalRecord
	expiresAt time.Time
}

type templateEntry struct {
	template  *templates.Template
	expiresAt time.Time
}

// Store is the TTL-backed ContentCache implementation.
type Store struct {
	mu              sync.RWMutex
	proposals       map[string]proposalEntry
	templatesByID   map[string]templateEntry
	templateIDs     []string
	templateIDsSet  bool
	templateIDsFrom time.Time

	ttl    time.Duration
	logger *logging.ChanneledLogger
}

// NewStore creates a content cache whose entries expire after ttl.
func NewStore(ttl time.Duration, logger *logging.ChanneledLogger) *Store {
	return &Store{
		proposals:     make(map[string]proposalEntry),
		templatesByID: make(map[string]templateEntry),
		ttl:           ttl,
		logger:        logger,
	}
}

func (s *Store) GetProposal(id string) (*repositories.ProposalRecord, bool) {
	s.mu.RLock()
	entry, found := s.proposals[id]
	s.mu.RUnlock()

	if !found || time.Now().After(entry.expiresAt) {
		s.logger.LogCacheOperation("get", "proposal:"+id, false)
		return nil, false
	}
	s.logger.LogCacheOperation("get", "proposal:"+id, true)
	return entry.record, true
}

func (s *Store) SetProposal(record *repositories.ProposalRecord) {
	s.mu.Lock()
	s.proposals[record.ID] = proposalEntry{record: record, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	s.logger.LogCacheOperation("set", "proposal:"+record.ID, false)
}

func (s *Store) InvalidateProposal(id string) {
	s.mu.Lock()
	delete(s.proposals, id)
	s.mu.Unlock()
	s.logger.LogCacheOperation("invalidate", "proposal:"+id, false)
}

func (s *Store) GetTemplate(id string) (*templates.Template, bool) {
	s.mu.RLock()
	entry, found := s.templatesByID[id]
	s.mu.RUnlock()

	if !found || time.Now().After(entry.expiresAt) {
		s.logger.LogCacheOperation("get", "template:"+id, false)
		return nil, false
	}
	s.logger.LogCacheOperation("get", "template:"+id, true)
	return entry.template, true
}

func (s *Store) SetTemplate(template *templates.Template) {
	s.mu.Lock()
	s.templatesByID[template.ID] = templateEntry{template: template, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	s.logger.LogCacheOperation("set", "template:"+template.ID, false)
}

func (s *Store) GetAllTemplateIDs() ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.templateIDsSet || time.Now().After(s.templateIDsFrom.Add(s.ttl)) {
		return nil, false
	}
	ids := make([]string, len(s.templateIDs))
	copy(ids, s.templateIDs)
	return ids, true
}

func (s *Store) SetAllTemplateIDs(ids []string) {
	s.mu.Lock()
	s.templateIDs = make([]string, len(ids))
	copy(s.templateIDs, ids)
	s.templateIDsSet = true
	s.templateIDsFrom = time.Now()
	s.mu.Unlock()
}

// Purge drops every cached entry. Exposed through the sysop cache endpoint.
func (s *Store) Purge() {
	s.mu.Lock()
	s.proposals = make(map[string]proposalEntry)
	s.templatesByID = make(map[string]templateEntry)
	s.templateIDsSet = false
	s.mu.Unlock()
}
