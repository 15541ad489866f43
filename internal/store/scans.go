package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/garderoba/internal/model"
)

// AppendScan records one settled inbound scan in the audit log.
func AppendScan(ctx context.Context, db *sql.DB, rec model.ScanRecord) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO scan_log (tag_id, scanner_id, scanner_role, from_state, to_state, outcome)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.TagID, rec.ScannerID, rec.ScannerRole, rec.FromState, rec.ToState, rec.Outcome,
	)
	if err != nil {
		return fmt.Errorf("appending scan: %w", err)
	}
	return nil
}

// GetScanHistory returns the scan log for one tag, newest first,
// limited to the most recent limit entries (0 means all).
func GetScanHistory(ctx context.Context, db *sql.DB, tagID string, limit int) ([]model.ScanRecord, error) {
	query := `SELECT id, tag_id, scanner_id, scanner_role, from_state, to_state, outcome, scanned_at
	          FROM scan_log WHERE tag_id = ? ORDER BY scanned_at DESC, id DESC`
	args := []any{tagID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("getting scan history: %w", err)
	}
	defer rows.Close()

	var records []model.ScanRecord
	for rows.Next() {
		var rec model.ScanRecord
		var fromState, toState sql.NullString
		if err := rows.Scan(&rec.ID, &rec.TagID, &rec.ScannerID, &rec.ScannerRole,
			&fromState, &toState, &rec.Outcome, &rec.ScannedAt); err != nil {
			return nil, fmt.Errorf("scanning scan record: %w", err)
		}
		rec.FromState = model.GarmentState(fromState.String)
		rec.ToState = model.GarmentState(toState.String)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// PruneScanLog deletes scan log entries for a removed tag.
func PruneScanLog(ctx context.Context, db *sql.DB, tagID string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM scan_log WHERE tag_id = ?`, tagID)
	if err != nil {
		return fmt.Errorf("pruning scan log: %w", err)
	}
	return nil
}
