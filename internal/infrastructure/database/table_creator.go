// Package database provides schema instantiation
package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/templates"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/security"
)

var tables = []string{
	`CREATE TABLE IF NOT EXISTS proposals (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		document_payload TEXT NOT NULL,
		created TIMESTAMP NOT NULL,
		changed TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS templates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		description TEXT DEFAULT '',
		document_payload TEXT NOT NULL
	)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_proposals_title ON proposals(title)`,
	`CREATE INDEX IF NOT EXISTS idx_templates_category ON templates(category)`,
	`CREATE INDEX IF NOT EXISTS idx_templates_name ON templates(name)`,
}

// TableCreator handles the creation of the database schema for a new install.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the tables and indexes.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

// SeedInitialContent adds the starter template catalog a fresh install needs.
// Seeding is idempotent; existing templates are left alone.
func (tc *TableCreator) SeedInitialContent(db *sql.DB) error {
	for _, tpl := range seedTemplates() {
		var exists bool
		err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM templates WHERE name = ?)", tpl.Name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check for template %q: %w", tpl.Name, err)
		}
		if exists {
			continue
		}

		payload, err := json.Marshal(tpl.Document)
		if err != nil {
			return fmt.Errorf("failed to encode template %q: %w", tpl.Name, err)
		}

		_, err = db.Exec(
			`INSERT INTO templates (id, name, category, version, description, document_payload) VALUES (?, ?, ?, ?, ?, ?)`,
			tpl.ID, tpl.Name, tpl.Category, tpl.Version, tpl.Description, string(payload),
		)
		if err != nil {
			return fmt.Errorf("failed to insert template %q: %w", tpl.Name, err)
		}
	}

	return tc.seedDefaultProposal(db)
}

// seedDefaultProposal creates an empty starter proposal so the editor has
// something to open on a brand-new install.
func (tc *TableCreator) seedDefaultProposal(db *sql.DB) error {
	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM proposals WHERE title = 'Untitled Proposal')").Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for default proposal: %w", err)
	}
	if exists {
		return nil
	}

	doc := proposal.NewDocument("Untitled Proposal")
	payload, err := doc.Serialize()
	if err != nil {
		return fmt.Errorf("failed to encode default proposal: %w", err)
	}

	_, err = db.Exec(
		`INSERT INTO proposals (id, title, document_payload, created) VALUES (?, ?, ?, ?)`,
		doc.ID, doc.Title, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert default proposal: %w", err)
	}
	return nil
}

// seedTemplates builds the starter catalog through the document model itself,
// so every seed passes the same invariants as user-built documents.
func seedTemplates() []*templates.Template {
	return []*templates.Template{
		{
			ID:          security.GenerateULID(),
			Name:        "Residential Makeover",
			Category:    "residential",
			Version:     1,
			Description: "Single-page proposal for a room refresh: intro, moodboard image, scope, and pricing.",
			Document:    residentialMakeoverDocument(),
		},
		{
			ID:          security.GenerateULID(),
			Name:        "Commercial Fit-Out",
			Category:    "commercial",
			Version:     1,
			Description: "Two-page proposal for office and retail fit-out projects.",
			Document:    commercialFitOutDocument(),
		},
		{
			ID:          security.GenerateULID(),
			Name:        "Blank Canvas",
			Category:    "general",
			Version:     1,
			Description: "A single empty page.",
			Document:    proposal.NewDocument("Blank Canvas"),
		},
	}
}

func residentialMakeoverDocument() *proposal.Document {
	doc := proposal.NewDocument("Residential Makeover")
	page := doc.Sections[0].ID

	heading, _ := doc.AddElement(page, proposal.KindHeading, 40, 30)
	headingText := "Your Home, Reimagined"
	doc.UpdateElement(heading.ID, proposal.ElementPatch{
		Content: &proposal.ContentPatch{Text: &headingText},
	})

	intro, _ := doc.AddElement(page, proposal.KindText, 40, 110)
	introText := "Thank you for inviting us into your home. This proposal outlines our design direction, the scope of work, and a transparent cost breakdown."
	doc.UpdateElement(intro.ID, proposal.ElementPatch{
		Content: &proposal.ContentPatch{Text: &introText},
	})

	doc.AddElement(page, proposal.KindImage, 430, 110)

	scope, _ := doc.AddElement(page, proposal.KindScopeBlock, 40, 280)
	scopeItems := []string{"Site measurement and survey", "Concept moodboards", "Furniture and finish selection", "Installation supervision"}
	doc.UpdateElement(scope.ID, proposal.ElementPatch{
		Content: &proposal.ContentPatch{ScopeItems: &scopeItems},
	})

	pricing, _ := doc.AddElement(page, proposal.KindPricingTable, 40, 490)
	items := []proposal.PricingItem{
		{Name: "Design fee", Description: "Concept and detailed design", Price: 1500},
		{Name: "Project management", Description: "Vendor coordination and supervision", Price: 800},
	}
	doc.UpdateElement(pricing.ID, proposal.ElementPatch{
		Content: &proposal.ContentPatch{Items: &items},
	})

	return doc
}

func commercialFitOutDocument() *proposal.Document {
	doc := proposal.NewDocument("Commercial Fit-Out")
	pageOne := doc.Sections[0].ID
	pageTwo := doc.AddSection("Page 2").ID

	heading, _ := doc.AddElement(pageOne, proposal.KindHeading, 40, 30)
	headingText := "Workspace Fit-Out Proposal"
	doc.UpdateElement(heading.ID, proposal.ElementPatch{
		Content: &proposal.ContentPatch{Text: &headingText},
	})

	overview, _ := doc.AddElement(pageOne, proposal.KindText, 40, 110)
	overviewText := "A turnkey fit-out covering space planning, MEP coordination, custom joinery, and move-in ready handover."
	doc.UpdateElement(overview.ID, proposal.ElementPatch{
		Content: &proposal.ContentPatch{Text: &overviewText},
	})

	scope, _ := doc.AddElement(pageOne, proposal.KindScopeBlock, 40, 270)
	scopeItems := []string{"Space planning", "Partitioning and ceilings", "Electrical and data", "Furniture procurement"}
	doc.UpdateElement(scope.ID, proposal.ElementPatch{
		Content: &proposal.ContentPatch{ScopeItems: &scopeItems},
	})

	pricing, _ := doc.AddElement(pageTwo, proposal.KindPricingTable, 40, 40)
	items := []proposal.PricingItem{
		{Name: "Design and drawings", Description: "Layouts, 3D views, working drawings", Price: 4500},
		{Name: "Fit-out works", Description: "Civil, electrical, HVAC", Price: 28000},
		{Name: "Furniture", Description: "Workstations and seating", Price: 12000},
	}
	doc.UpdateElement(pricing.ID, proposal.ElementPatch{
		Content: &proposal.ContentPatch{Items: &items},
	})

	return doc
}
