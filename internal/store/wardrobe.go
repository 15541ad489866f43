package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/erazemk/garderoba/internal/model"
)

// wardrobeKey is the row key for the single wardrobe document.
const wardrobeKey = "wardrobe"

// DocumentStore persists the wardrobe document as one JSON value in the
// wardrobe table. The whole document is rewritten on every save.
type DocumentStore struct {
	DB *sql.DB
}

// Load reads the stored document. A missing row yields an empty
// document with both maps allocated.
func (s *DocumentStore) Load(ctx context.Context) (*model.Document, error) {
	var raw string
	err := s.DB.QueryRowContext(ctx,
		`SELECT value FROM wardrobe WHERE key = ?`, wardrobeKey,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading wardrobe document: %w", err)
	}

	doc := model.NewDocument()
	if err := json.Unmarshal([]byte(raw), doc); err != nil {
		return nil, fmt.Errorf("decoding wardrobe document: %w", err)
	}
	if doc.Scanners == nil {
		doc.Scanners = map[string]model.Scanner{}
	}
	if doc.Garments == nil {
		doc.Garments = map[string]*model.Garment{}
	}
	return doc, nil
}

// Save overwrites the stored document with doc.
func (s *DocumentStore) Save(ctx context.Context, doc *model.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding wardrobe document: %w", err)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO wardrobe (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		wardrobeKey, string(raw),
	)
	if err != nil {
		return fmt.Errorf("saving wardrobe document: %w", err)
	}
	return nil
}
