package store

import (
	"context"
	"testing"

	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/model"
)

func TestAppendAndGetScanHistory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	records := []model.ScanRecord{
		{TagID: "tag-1", ScannerID: "closet-1", ScannerRole: model.RoleCloset,
			FromState: model.StateClean, ToState: model.StateWorn, Outcome: "accepted"},
		{TagID: "tag-1", ScannerID: "washer-1", ScannerRole: model.RoleWasher,
			FromState: model.StateWorn, Outcome: "rejected"},
		{TagID: "tag-2", ScannerID: "closet-1", ScannerRole: model.RoleCloset,
			FromState: model.StateClean, ToState: model.StateWorn, Outcome: "accepted"},
	}
	for _, rec := range records {
		if err := AppendScan(ctx, database, rec); err != nil {
			t.Fatalf("AppendScan: %v", err)
		}
	}

	history, err := GetScanHistory(ctx, database, "tag-1", 0)
	if err != nil {
		t.Fatalf("GetScanHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 records for tag-1, got %d", len(history))
	}
	// Newest first.
	if history[0].Outcome != "rejected" || history[1].Outcome != "accepted" {
		t.Errorf("expected newest-first order, got %s then %s", history[0].Outcome, history[1].Outcome)
	}
	if history[0].ToState != "" {
		t.Errorf("expected empty to_state on rejected scan, got %q", history[0].ToState)
	}
	if history[1].FromState != model.StateClean || history[1].ToState != model.StateWorn {
		t.Errorf("expected clean -> worn, got %s -> %s", history[1].FromState, history[1].ToState)
	}
}

func TestGetScanHistoryLimit(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		AppendScan(ctx, database, model.ScanRecord{
			TagID: "tag-1", ScannerID: "closet-1", ScannerRole: model.RoleCloset,
			FromState: model.StateClean, ToState: model.StateWorn, Outcome: "accepted",
		})
	}

	history, err := GetScanHistory(ctx, database, "tag-1", 2)
	if err != nil {
		t.Fatalf("GetScanHistory: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("expected 2 records with limit, got %d", len(history))
	}
}

func TestPruneScanLog(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AppendScan(ctx, database, model.ScanRecord{
		TagID: "tag-1", ScannerID: "closet-1", ScannerRole: model.RoleCloset, Outcome: "rejected",
	})
	AppendScan(ctx, database, model.ScanRecord{
		TagID: "tag-2", ScannerID: "closet-1", ScannerRole: model.RoleCloset, Outcome: "rejected",
	})

	if err := PruneScanLog(ctx, database, "tag-1"); err != nil {
		t.Fatalf("PruneScanLog: %v", err)
	}

	pruned, _ := GetScanHistory(ctx, database, "tag-1", 0)
	if len(pruned) != 0 {
		t.Errorf("expected no records after prune, got %d", len(pruned))
	}
	kept, _ := GetScanHistory(ctx, database, "tag-2", 0)
	if len(kept) != 1 {
		t.Errorf("expected other tag untouched, got %d records", len(kept))
	}
}
