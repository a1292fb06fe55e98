package content

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/templates"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/caching"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/persistence/database"
)

type TemplateRepository struct {
	db     *sql.DB
	cache  caching.ContentCache
	logger *logging.ChanneledLogger
}

func NewTemplateRepository(db *sql.DB, cache caching.ContentCache, logger *logging.ChanneledLogger) *TemplateRepository {
	return &TemplateRepository{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *TemplateRepository) FindByID(id string) (*templates.Template, error) {
	if template, found := r.cache.GetTemplate(id); found {
		return template, nil
	}

	template, err := r.loadFromDB(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}

	r.cache.SetTemplate(template)
	return template, nil
}

func (r *TemplateRepository) FindAll() ([]*templates.Template, error) {
	if ids, found := r.cache.GetAllTemplateIDs(); found {
		var result []*templates.Template
		var missingIDs []string

		for _, id := range ids {
			if template, found := r.cache.GetTemplate(id); found {
				result = append(result, template)
			} else {
				missingIDs = append(missingIDs, id)
			}
		}

		if len(missingIDs) == 0 {
			return result, nil
		}
		// Partial cache; reload the catalog from the database below.
	}

	start := time.Now()
	rows, err := r.db.Query(`SELECT id, name, category, version, description, document_payload FROM templates ORDER BY name`)
	database.CheckAndLogSlowQuery(r.logger, "SELECT templates", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var result []*templates.Template
	var ids []string
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		r.cache.SetTemplate(template)
		result = append(result, template)
		ids = append(ids, template.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.cache.SetAllTemplateIDs(ids)
	return result, nil
}

func (r *TemplateRepository) loadFromDB(id string) (*templates.Template, error) {
	start := time.Now()
	row := r.db.QueryRow(`SELECT id, name, category, version, description, document_payload FROM templates WHERE id = ?`, id)
	template, err := scanTemplate(row)
	database.CheckAndLogSlowQuery(r.logger, "SELECT template by id", time.Since(start))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return template, nil
}

func scanTemplate(row rowScanner) (*templates.Template, error) {
	var (
		template templates.Template
		payload  string
	)
	err := row.Scan(&template.ID, &template.Name, &template.Category, &template.Version, &template.Description, &payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan template row: %w", err)
	}

	doc, err := proposal.Deserialize([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to decode template %s: %w", template.ID, err)
	}
	template.Document = doc
	return &template, nil
}
