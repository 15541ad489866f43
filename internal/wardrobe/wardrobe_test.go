package wardrobe

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/garderoba/internal/model"
)

// memStore is an in-memory Store for tests. failSave makes Save error.
type memStore struct {
	doc      *model.Document
	saves    int
	failSave bool
}

func (m *memStore) Load(_ context.Context) (*model.Document, error) {
	if m.doc == nil {
		return model.NewDocument(), nil
	}
	return m.doc, nil
}

func (m *memStore) Save(_ context.Context, doc *model.Document) error {
	if m.failSave {
		return errors.New("disk full")
	}
	m.saves++
	m.doc = doc
	return nil
}

func setupWardrobe(t *testing.T) (*Wardrobe, *memStore) {
	t.Helper()
	store := &memStore{}
	w := New(store)
	if err := w.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	w.RegisterScanner(context.Background(), "closet-1", model.RoleCloset, "Bedroom closet")
	w.RegisterScanner(context.Background(), "washer-1", model.RoleWasher, "Washing machine")
	w.RegisterGarment(context.Background(), GarmentRegistration{
		TagID:    "tag-1",
		Name:     "Blue Shirt",
		Category: "shirt",
	})
	return w, store
}

func TestHandleScanAccepted(t *testing.T) {
	w, store := setupWardrobe(t)
	ctx := context.Background()
	savesBefore := store.saves

	res := w.HandleScan(ctx, "tag-1", "closet-1")
	if res.Outcome != ScanAccepted {
		t.Fatalf("expected accepted, got %s", res.Outcome)
	}
	if res.FromState != model.StateClean || res.ToState != model.StateWorn {
		t.Errorf("expected clean -> worn, got %s -> %s", res.FromState, res.ToState)
	}

	g, ok := w.Garment("tag-1")
	if !ok {
		t.Fatal("garment missing")
	}
	if g.State != model.StateWorn {
		t.Errorf("expected state worn, got %s", g.State)
	}
	if g.WearCountSinceWash != 1 || g.TotalWearCount != 1 {
		t.Errorf("expected counters 1/1, got %d/%d", g.WearCountSinceWash, g.TotalWearCount)
	}
	if g.LastScannedAt != "closet-1" {
		t.Errorf("expected last scanned 'closet-1', got %q", g.LastScannedAt)
	}

	if store.saves != savesBefore+1 {
		t.Errorf("expected one persist, got %d", store.saves-savesBefore)
	}
	if stored := store.doc.Garments["tag-1"]; stored.State != model.StateWorn {
		t.Errorf("expected stored state worn, got %s", stored.State)
	}
}

func TestHandleScanRejected(t *testing.T) {
	w, store := setupWardrobe(t)
	ctx := context.Background()
	savesBefore := store.saves

	// A washer cannot act on a clean garment.
	res := w.HandleScan(ctx, "tag-1", "washer-1")
	if res.Outcome != ScanRejected {
		t.Fatalf("expected rejected, got %s", res.Outcome)
	}

	g, _ := w.Garment("tag-1")
	if g.State != model.StateClean {
		t.Errorf("expected state unchanged, got %s", g.State)
	}
	if store.saves != savesBefore {
		t.Error("rejected scan should not persist")
	}
}

func TestHandleScanMalformed(t *testing.T) {
	w, _ := setupWardrobe(t)
	ctx := context.Background()

	if res := w.HandleScan(ctx, "", "closet-1"); res.Outcome != ScanMalformed {
		t.Errorf("expected malformed for empty tag, got %s", res.Outcome)
	}
	if res := w.HandleScan(ctx, "tag-1", ""); res.Outcome != ScanMalformed {
		t.Errorf("expected malformed for empty scanner, got %s", res.Outcome)
	}
}

func TestHandleScanUnregisteredScanner(t *testing.T) {
	w, _ := setupWardrobe(t)

	res := w.HandleScan(context.Background(), "tag-1", "nope")
	if res.Outcome != ScanUnregisteredScanner {
		t.Fatalf("expected unregistered_scanner, got %s", res.Outcome)
	}

	g, _ := w.Garment("tag-1")
	if g.State != model.StateClean {
		t.Errorf("expected state unchanged, got %s", g.State)
	}
}

func TestHandleScanUnknownTag(t *testing.T) {
	w, _ := setupWardrobe(t)
	ch := w.Notifier().Subscribe()
	defer w.Notifier().Unsubscribe(ch)

	res := w.HandleScan(context.Background(), "mystery", "closet-1")
	if res.Outcome != ScanUnknownTag {
		t.Fatalf("expected unknown_tag, got %s", res.Outcome)
	}

	select {
	case n := <-ch:
		if n.Type != EventUnknownTag {
			t.Errorf("expected unknown_tag event, got %s", n.Type)
		}
		if n.TagID != "mystery" || n.ScannerRole != model.RoleCloset {
			t.Errorf("unexpected event payload: %+v", n)
		}
	default:
		t.Fatal("expected a notification")
	}
}

func TestAcceptedScanNotifies(t *testing.T) {
	w, _ := setupWardrobe(t)
	ch := w.Notifier().Subscribe()
	defer w.Notifier().Unsubscribe(ch)

	w.HandleScan(context.Background(), "tag-1", "closet-1")

	select {
	case n := <-ch:
		if n.Type != EventChanged {
			t.Errorf("expected changed event, got %s", n.Type)
		}
	default:
		t.Fatal("expected a notification")
	}
}

func TestPersistFailureKeepsMutation(t *testing.T) {
	w, store := setupWardrobe(t)
	store.failSave = true

	res := w.HandleScan(context.Background(), "tag-1", "closet-1")
	if res.Outcome != ScanAccepted {
		t.Fatalf("expected accepted despite save failure, got %s", res.Outcome)
	}

	g, _ := w.Garment("tag-1")
	if g.State != model.StateWorn {
		t.Errorf("expected in-memory mutation to stand, got %s", g.State)
	}
}

func TestReRegistrationPreservesState(t *testing.T) {
	w, _ := setupWardrobe(t)
	ctx := context.Background()

	w.HandleScan(ctx, "tag-1", "closet-1") // clean -> worn

	got := w.RegisterGarment(ctx, GarmentRegistration{
		TagID:                 "tag-1",
		Name:                  "Navy Shirt",
		Category:              "shirt",
		Color:                 "navy",
		NeedsWashingThreshold: 5,
	})

	if got.Name != "Navy Shirt" || got.Color != "navy" {
		t.Errorf("expected metadata updated, got %+v", got)
	}
	if got.NeedsWashingThreshold != 5 {
		t.Errorf("expected threshold 5, got %d", got.NeedsWashingThreshold)
	}
	if got.State != model.StateWorn {
		t.Errorf("expected state preserved, got %s", got.State)
	}
	if got.TotalWearCount != 1 {
		t.Errorf("expected counters preserved, got %d", got.TotalWearCount)
	}
}

func TestRegisterGarmentDefaultsThreshold(t *testing.T) {
	w, _ := setupWardrobe(t)

	got := w.RegisterGarment(context.Background(), GarmentRegistration{
		TagID:    "tag-2",
		Name:     "Socks",
		Category: "socks",
	})
	if got.NeedsWashingThreshold != model.DefaultWashThreshold {
		t.Errorf("expected default threshold, got %d", got.NeedsWashingThreshold)
	}
	if got.State != model.StateClean {
		t.Errorf("expected new garment clean, got %s", got.State)
	}
}

func TestRemoveGarment(t *testing.T) {
	w, _ := setupWardrobe(t)
	ctx := context.Background()

	if !w.RemoveGarment(ctx, "tag-1") {
		t.Error("expected removal of existing garment to succeed")
	}
	if w.RemoveGarment(ctx, "tag-1") {
		t.Error("expected removal of missing garment to fail")
	}
	if _, ok := w.Garment("tag-1"); ok {
		t.Error("expected garment gone")
	}
}

func TestForceState(t *testing.T) {
	w, _ := setupWardrobe(t)
	ctx := context.Background()

	if !w.ForceState(ctx, "tag-1", model.StateDrying) {
		t.Fatal("expected force state to succeed")
	}
	g, _ := w.Garment("tag-1")
	if g.State != model.StateDrying {
		t.Errorf("expected drying, got %s", g.State)
	}
	if g.TotalWearCount != 0 || len(g.WashCycles) != 0 {
		t.Error("force state must not touch counters or history")
	}

	if w.ForceState(ctx, "nope", model.StateClean) {
		t.Error("expected force state on unknown tag to fail")
	}
}

func TestLogWashCycle(t *testing.T) {
	w, _ := setupWardrobe(t)
	ctx := context.Background()

	w.HandleScan(ctx, "tag-1", "closet-1") // clean -> worn

	if !w.LogWashCycle(ctx, "tag-1", "hand_wash") {
		t.Fatal("expected log wash to succeed")
	}
	g, _ := w.Garment("tag-1")
	if g.State != model.StateWashing {
		t.Errorf("expected washing, got %s", g.State)
	}
	if g.WearCountSinceWash != 0 {
		t.Errorf("expected wear count reset, got %d", g.WearCountSinceWash)
	}
	if len(g.WashCycles) != 1 || g.WashCycles[0].Method != "hand_wash" {
		t.Errorf("expected one 'hand_wash' cycle, got %+v", g.WashCycles)
	}

	if w.LogWashCycle(ctx, "nope", "hand_wash") {
		t.Error("expected log wash on unknown tag to fail")
	}
}

func TestLoadRestoresDocument(t *testing.T) {
	store := &memStore{}
	w := New(store)
	ctx := context.Background()
	if err := w.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	w.RegisterScanner(ctx, "dryer-1", model.RoleDryer, "Dryer")
	w.RegisterGarment(ctx, GarmentRegistration{TagID: "tag-9", Name: "Hoodie", Category: "hoodie"})

	// A fresh wardrobe over the same store sees the same directories.
	w2 := New(store)
	if err := w2.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	g, ok := w2.Garment("tag-9")
	if !ok {
		t.Fatal("expected garment after reload")
	}
	if g.TagID != "tag-9" || g.Name != "Hoodie" {
		t.Errorf("unexpected garment after reload: %+v", g)
	}

	scanners := w2.Scanners()
	if len(scanners) != 1 || scanners[0].ID != "dryer-1" || scanners[0].Role != model.RoleDryer {
		t.Errorf("unexpected scanners after reload: %+v", scanners)
	}
}

func TestGarmentsSortedByTag(t *testing.T) {
	w, _ := setupWardrobe(t)
	ctx := context.Background()

	w.RegisterGarment(ctx, GarmentRegistration{TagID: "tag-0", Name: "A", Category: "other"})
	w.RegisterGarment(ctx, GarmentRegistration{TagID: "tag-2", Name: "B", Category: "other"})

	garments := w.Garments()
	if len(garments) != 3 {
		t.Fatalf("expected 3 garments, got %d", len(garments))
	}
	for i := 1; i < len(garments); i++ {
		if garments[i-1].TagID > garments[i].TagID {
			t.Errorf("garments not sorted: %s before %s", garments[i-1].TagID, garments[i].TagID)
		}
	}
}
