package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SetGarmentImage stores or replaces a garment's photo.
func SetGarmentImage(ctx context.Context, db *sql.DB, tagID string, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO garment_images (tag_id, image, image_mime, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(tag_id) DO UPDATE SET image = excluded.image,
		     image_mime = excluded.image_mime, updated_at = CURRENT_TIMESTAMP`,
		tagID, image, mime,
	)
	if err != nil {
		return fmt.Errorf("setting garment image: %w", err)
	}
	return nil
}

// GetGarmentImage returns a garment's photo and MIME type, or nil data
// if no photo is stored.
func GetGarmentImage(ctx context.Context, db *sql.DB, tagID string) ([]byte, string, error) {
	var image []byte
	var mime string
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM garment_images WHERE tag_id = ?`, tagID,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting garment image: %w", err)
	}
	return image, mime, nil
}

// DeleteGarmentImage removes a garment's photo, if any.
func DeleteGarmentImage(ctx context.Context, db *sql.DB, tagID string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM garment_images WHERE tag_id = ?`, tagID)
	if err != nil {
		return fmt.Errorf("deleting garment image: %w", err)
	}
	return nil
}
