package model

import (
	"encoding/json"
	"time"
)

// GarmentState is a garment's position in the laundry workflow.
type GarmentState string

// Garment states.
const (
	StateClean        GarmentState = "clean"
	StateWorn         GarmentState = "worn"
	StateInLaundryBin GarmentState = "in_laundry_bin"
	StateWashing      GarmentState = "washing"
	StateDrying       GarmentState = "drying"
	StateNeedsIroning GarmentState = "needs_ironing"
)

// GarmentStates lists every valid state, in workflow order.
var GarmentStates = []GarmentState{
	StateClean,
	StateWorn,
	StateInLaundryBin,
	StateWashing,
	StateDrying,
	StateNeedsIroning,
}

// Valid reports whether s is one of the defined garment states.
func (s GarmentState) Valid() bool {
	for _, v := range GarmentStates {
		if s == v {
			return true
		}
	}
	return false
}

// WashMethodMachine is the method recorded for scan-triggered washes.
// Manually logged washes carry a caller-chosen method string instead.
const WashMethodMachine = "machine"

// DefaultWashThreshold is the wear count after which a garment is
// considered to need washing, unless overridden at registration.
const DefaultWashThreshold = 3

// WashCycle is one recorded trip through the washer.
type WashCycle struct {
	Timestamp time.Time `json:"timestamp"`
	Method    string    `json:"method"`
}

// Garment is a single tracked garment, identified by its NFC tag.
// The tag ID is the key in the stored document, not a serialized field.
//
// WearCountSinceWash and TotalWearCount are independent counters: the
// first resets on every wash, the second only ever grows, so neither
// bounds the other.
type Garment struct {
	TagID                 string       `json:"-"`
	Name                  string       `json:"name"`
	Category              string       `json:"category"`
	Color                 string       `json:"color,omitempty"`
	State                 GarmentState `json:"state"`
	WearCountSinceWash    int          `json:"wear_count_since_wash"`
	TotalWearCount        int          `json:"total_wear_count"`
	NeedsWashingThreshold int          `json:"needs_washing_threshold"`
	LastWorn              *time.Time   `json:"last_worn,omitempty"`
	LastWashed            *time.Time   `json:"last_washed,omitempty"`
	LastScannedAt         string       `json:"last_scanned_at,omitempty"` // scanner ID, not a time
	WashCycles            []WashCycle  `json:"wash_cycles"`
}

// NeedsWashing reports whether the garment has reached its wear threshold.
// Derived on read, never stored.
func (g *Garment) NeedsWashing() bool {
	return g.WearCountSinceWash >= g.NeedsWashingThreshold
}

// Clone returns a deep copy, safe to hand out while the original keeps
// being mutated by scans.
func (g *Garment) Clone() *Garment {
	c := *g
	if g.LastWorn != nil {
		t := *g.LastWorn
		c.LastWorn = &t
	}
	if g.LastWashed != nil {
		t := *g.LastWashed
		c.LastWashed = &t
	}
	c.WashCycles = make([]WashCycle, len(g.WashCycles))
	copy(c.WashCycles, g.WashCycles)
	return &c
}

// UnmarshalJSON fills in defaults for fields that older or minimal stored
// records omit: state falls back to clean, the wash threshold to the
// default, and wash cycles to an empty list. The legacy "garment_state"
// key is still accepted.
func (g *Garment) UnmarshalJSON(data []byte) error {
	type garment Garment
	aux := struct {
		*garment
		LegacyState GarmentState `json:"garment_state"`
	}{garment: (*garment)(g)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if g.State == "" {
		g.State = aux.LegacyState
	}
	if g.State == "" {
		g.State = StateClean
	}
	if g.NeedsWashingThreshold == 0 {
		g.NeedsWashingThreshold = DefaultWashThreshold
	}
	if g.WashCycles == nil {
		g.WashCycles = []WashCycle{}
	}
	return nil
}

// GarmentCategories lists the categories offered by client pickers.
// Registration accepts any string; this is a convenience list, not a
// constraint.
var GarmentCategories = []string{
	"shirt",
	"t_shirt",
	"polo",
	"blouse",
	"sweater",
	"hoodie",
	"jacket",
	"coat",
	"jeans",
	"pants",
	"shorts",
	"skirt",
	"dress",
	"suit",
	"underwear",
	"socks",
	"sportswear",
	"other",
}
