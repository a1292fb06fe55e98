// Package content provides proposal and template repositories
package content

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
	"github.com/DecorForge/proposalcraft-go/internal/domain/repositories"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/caching"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/persistence/database"
)

type ProposalRepository struct {
	db     *sql.DB
	cache  caching.ContentCache
	logger *logging.ChanneledLogger
}

func NewProposalRepository(db *sql.DB, cache caching.ContentCache, logger *logging.ChanneledLogger) *ProposalRepository {
	return &ProposalRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *ProposalRepository) FindByID(id string) (*repositories.ProposalRecord, error) {
	if record, found := r.cache.GetProposal(id); found {
		return record, nil
	}

	record, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	r.cache.SetProposal(record)
	return record, nil
}

func (r *ProposalRepository) FindAll() ([]*repositories.ProposalRecord, error) {
	start := time.Now()
	rows, err := r.db.Query(`SELECT id, title, document_payload, created, changed FROM proposals ORDER BY created DESC`)
	database.CheckAndLogSlowQuery(r.logger, "SELECT proposals", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to query proposals: %w", err)
	}
	defer rows.Close()

	var records []*repositories.ProposalRecord
	for rows.Next() {
		record, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		r.cache.SetProposal(record)
		records = append(records, record)
	}
	return records, rows.Err()
}

// Store upserts the record and refreshes its cache entry.
func (r *ProposalRepository) Store(record *repositories.ProposalRecord) error {
	payload, err := record.Document.Serialize()
	if err != nil {
		return fmt.Errorf("failed to encode proposal %s: %w", record.ID, err)
	}

	now := time.Now().UTC()
	if record.Created.IsZero() {
		record.Created = now
	}
	record.Changed = &now

	start := time.Now()
	_, err = r.db.Exec(
		`INSERT INTO proposals (id, title, document_payload, created, changed) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET title = excluded.title, document_payload = excluded.document_payload, changed = excluded.changed`,
		record.ID, record.Title, string(payload), record.Created, record.Changed,
	)
	database.CheckAndLogSlowQuery(r.logger, "UPSERT proposals", time.Since(start))
	if err != nil {
		return fmt.Errorf("failed to store proposal %s: %w", record.ID, err)
	}

	r.cache.SetProposal(record)
	return nil
}

func (r *ProposalRepository) Delete(id string) error {
	if _, err := r.db.Exec(`DELETE FROM proposals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete proposal %s: %w", id, err)
	}
	r.cache.InvalidateProposal(id)
	return nil
}

func (r *ProposalRepository) loadFromDB(id string) (*repositories.ProposalRecord, error) {
	start := time.Now()
	row := r.db.QueryRow(`SELECT id, title, document_payload, created, changed FROM proposals WHERE id = ?`, id)
	record, err := scanProposal(row)
	database.CheckAndLogSlowQuery(r.logger, "SELECT proposal by id", time.Since(start))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProposal(row rowScanner) (*repositories.ProposalRecord, error) {
	var (
		record  repositories.ProposalRecord
		payload string
		changed sql.NullTime
	)
	if err := row.Scan(&record.ID, &record.Title, &payload, &record.Created, &changed); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan proposal row: %w", err)
	}
	if changed.Valid {
		record.Changed = &changed.Time
	}

	doc, err := proposal.Deserialize([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to decode proposal %s: %w", record.ID, err)
	}
	record.Document = doc
	return &record, nil
}
