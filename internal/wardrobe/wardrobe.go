// Package wardrobe holds the in-memory garment and scanner directories
// and orchestrates scans: resolve, transition, persist, notify. All
// mutations run to completion under a single lock before the next is
// admitted.
package wardrobe

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/erazemk/garderoba/internal/laundry"
	"github.com/erazemk/garderoba/internal/model"
)

// Store persists the wardrobe document. A missing document loads as
// empty maps.
type Store interface {
	Load(ctx context.Context) (*model.Document, error)
	Save(ctx context.Context, doc *model.Document) error
}

// ScanOutcome classifies what an inbound scan did.
type ScanOutcome string

const (
	ScanMalformed           ScanOutcome = "malformed"
	ScanUnregisteredScanner ScanOutcome = "unregistered_scanner"
	ScanUnknownTag          ScanOutcome = "unknown_tag"
	ScanRejected            ScanOutcome = "rejected"
	ScanAccepted            ScanOutcome = "accepted"
)

// ScanResult describes how one inbound scan was handled. Role is only
// set once the scanner resolved, From/To only for settled transitions.
type ScanResult struct {
	Outcome     ScanOutcome
	TagID       string
	ScannerID   string
	ScannerRole model.ScannerRole
	FromState   model.GarmentState
	ToState     model.GarmentState
}

// GarmentRegistration is the owner-supplied part of a garment record.
type GarmentRegistration struct {
	TagID                 string
	Name                  string
	Category              string
	Color                 string
	NeedsWashingThreshold int
}

// Wardrobe owns the garment and scanner directories. In-memory state is
// authoritative: persistence failures are logged and the mutation
// stands, with the next successful mutation rewriting the full document.
type Wardrobe struct {
	mu       sync.Mutex // serializes every scan and management call
	store    Store
	notifier *Notifier
	scanners map[string]model.Scanner
	garments map[string]*model.Garment
	now      func() time.Time
}

// New creates an empty wardrobe backed by store. Call Load before use.
func New(store Store) *Wardrobe {
	w := &Wardrobe{
		store:    store,
		notifier: NewNotifier(),
		scanners: map[string]model.Scanner{},
		garments: map[string]*model.Garment{},
		now:      func() time.Time { return time.Now().UTC() },
	}
	return w
}

// Notifier returns the change notification fan-out.
func (w *Wardrobe) Notifier() *Notifier {
	return w.notifier
}

// Load replaces the in-memory directories with the stored document.
func (w *Wardrobe) Load(ctx context.Context) error {
	doc, err := w.store.Load(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.scanners = map[string]model.Scanner{}
	for id, s := range doc.Scanners {
		s.ID = id
		w.scanners[id] = s
	}
	w.garments = map[string]*model.Garment{}
	for tagID, g := range doc.Garments {
		g.TagID = tagID
		w.garments[tagID] = g
	}
	return nil
}

// persist writes the full document. Failure is logged, not surfaced:
// the in-memory mutation already happened and stays visible.
func (w *Wardrobe) persist(ctx context.Context) {
	doc := model.NewDocument()
	for id, s := range w.scanners {
		doc.Scanners[id] = s
	}
	for tagID, g := range w.garments {
		doc.Garments[tagID] = g
	}
	if err := w.store.Save(ctx, doc); err != nil {
		slog.Error("failed to persist wardrobe", "error", err)
	}
}

// HandleScan processes one inbound scan event. Missing fields and
// unregistered scanners are silently dropped; an unknown tag fires an
// unknown-tag notification; a tabled transition mutates the garment,
// persists and notifies. Rejections leave everything untouched.
func (w *Wardrobe) HandleScan(ctx context.Context, tagID, scannerID string) ScanResult {
	res := ScanResult{TagID: tagID, ScannerID: scannerID}

	if tagID == "" || scannerID == "" {
		slog.Debug("ignoring scan with missing fields", "tag_id", tagID, "scanner_id", scannerID)
		res.Outcome = ScanMalformed
		return res
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	scanner, ok := w.scanners[scannerID]
	if !ok || !scanner.Role.Valid() {
		slog.Debug("ignoring scan from unregistered scanner", "scanner_id", scannerID)
		res.Outcome = ScanUnregisteredScanner
		return res
	}
	res.ScannerRole = scanner.Role

	garment, ok := w.garments[tagID]
	if !ok {
		slog.Warn("unknown tag scanned", "tag_id", tagID, "scanner_id", scannerID, "role", scanner.Role)
		w.notifier.Publish(Notification{Type: EventUnknownTag, TagID: tagID, ScannerRole: scanner.Role})
		res.Outcome = ScanUnknownTag
		return res
	}

	res.FromState = garment.State
	if laundry.Apply(garment, scanner.Role, scannerID, w.now()) == laundry.Rejected {
		slog.Debug("rejected transition", "tag_id", tagID, "state", garment.State, "role", scanner.Role)
		res.Outcome = ScanRejected
		return res
	}
	res.ToState = garment.State
	res.Outcome = ScanAccepted

	w.persist(ctx)
	w.notifier.Publish(Notification{Type: EventChanged})
	return res
}

// RegisterGarment creates a garment, or updates the descriptive fields
// of an existing one. State, counters and wash history survive
// re-registration; only metadata and the threshold are owner-mutable.
func (w *Wardrobe) RegisterGarment(ctx context.Context, reg GarmentRegistration) *model.Garment {
	if reg.NeedsWashingThreshold <= 0 {
		reg.NeedsWashingThreshold = model.DefaultWashThreshold
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	garment, ok := w.garments[reg.TagID]
	if !ok {
		garment = &model.Garment{
			TagID:      reg.TagID,
			State:      model.StateClean,
			WashCycles: []model.WashCycle{},
		}
		w.garments[reg.TagID] = garment
	}
	garment.Name = reg.Name
	garment.Category = reg.Category
	garment.Color = reg.Color
	garment.NeedsWashingThreshold = reg.NeedsWashingThreshold

	w.persist(ctx)
	w.notifier.Publish(Notification{Type: EventChanged})
	return garment.Clone()
}

// RemoveGarment deletes a garment. Returns false if the tag is unknown.
func (w *Wardrobe) RemoveGarment(ctx context.Context, tagID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.garments[tagID]; !ok {
		return false
	}
	delete(w.garments, tagID)

	w.persist(ctx)
	w.notifier.Publish(Notification{Type: EventChanged})
	return true
}

// RegisterScanner creates or overwrites a scanner directory entry.
func (w *Wardrobe) RegisterScanner(ctx context.Context, id string, role model.ScannerRole, name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.scanners[id] = model.Scanner{ID: id, Role: role, Name: name}

	w.persist(ctx)
	w.notifier.Publish(Notification{Type: EventChanged})
}

// RemoveScanner deletes a scanner. Returns false if the ID is unknown.
func (w *Wardrobe) RemoveScanner(ctx context.Context, id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.scanners[id]; !ok {
		return false
	}
	delete(w.scanners, id)

	w.persist(ctx)
	w.notifier.Publish(Notification{Type: EventChanged})
	return true
}

// ForceState overwrites a garment's state, touching nothing else.
// Returns false if the tag is unknown.
func (w *Wardrobe) ForceState(ctx context.Context, tagID string, state model.GarmentState) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	garment, ok := w.garments[tagID]
	if !ok {
		return false
	}
	laundry.ForceState(garment, state)

	w.persist(ctx)
	w.notifier.Publish(Notification{Type: EventChanged})
	return true
}

// LogWashCycle manually records a wash with the given method.
// Returns false if the tag is unknown.
func (w *Wardrobe) LogWashCycle(ctx context.Context, tagID, method string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	garment, ok := w.garments[tagID]
	if !ok {
		return false
	}
	laundry.LogWash(garment, method, w.now())

	w.persist(ctx)
	w.notifier.Publish(Notification{Type: EventChanged})
	return true
}

// Garment returns a copy of one garment by tag.
func (w *Wardrobe) Garment(tagID string) (*model.Garment, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	garment, ok := w.garments[tagID]
	if !ok {
		return nil, false
	}
	return garment.Clone(), true
}

// Garments returns copies of all garments, sorted by tag.
func (w *Wardrobe) Garments() []*model.Garment {
	w.mu.Lock()
	defer w.mu.Unlock()

	garments := make([]*model.Garment, 0, len(w.garments))
	for _, g := range w.garments {
		garments = append(garments, g.Clone())
	}
	sort.Slice(garments, func(i, j int) bool { return garments[i].TagID < garments[j].TagID })
	return garments
}

// Scanners returns all scanner directory entries, sorted by ID.
func (w *Wardrobe) Scanners() []model.Scanner {
	w.mu.Lock()
	defer w.mu.Unlock()

	scanners := make([]model.Scanner, 0, len(w.scanners))
	for _, s := range w.scanners {
		scanners = append(scanners, s)
	}
	sort.Slice(scanners, func(i, j int) bool { return scanners[i].ID < scanners[j].ID })
	return scanners
}
