// Package laundry implements the garment state machine: a fixed
// transition table keyed by (scanner role, current state), plus the two
// manual operations that bypass it.
package laundry

import (
	"time"

	"github.com/erazemk/garderoba/internal/model"
)

// Outcome reports whether a scan was applied to a garment. A rejected
// scan is an expected result, not an error: the garment is simply not in
// a state the scanning location can act on.
type Outcome int

const (
	Rejected Outcome = iota
	Accepted
)

type ruleKey struct {
	Role  model.ScannerRole
	State model.GarmentState
}

// transitions is the complete rule set. Any (role, state) pair not
// listed here is rejected, including same-role self-loops and
// cross-stage skips like washer-from-clean.
var transitions = map[ruleKey]model.GarmentState{
	{model.RoleCloset, model.StateClean}:        model.StateWorn,
	{model.RoleCloset, model.StateWorn}:         model.StateClean,
	{model.RoleCloset, model.StateInLaundryBin}: model.StateClean,
	{model.RoleCloset, model.StateDrying}:       model.StateClean,
	{model.RoleCloset, model.StateNeedsIroning}: model.StateClean,
	{model.RoleLaundryBin, model.StateWorn}:     model.StateInLaundryBin,
	{model.RoleWasher, model.StateInLaundryBin}: model.StateWashing,
	{model.RoleDryer, model.StateWashing}:       model.StateDrying,
	{model.RoleIroning, model.StateDrying}:      model.StateNeedsIroning,
	{model.RoleIroning, model.StateWashing}:     model.StateNeedsIroning,
}

// Target returns the state a scan by role would move a garment in state
// from to, and whether such a transition exists.
func Target(role model.ScannerRole, from model.GarmentState) (model.GarmentState, bool) {
	to, ok := transitions[ruleKey{role, from}]
	return to, ok
}

// Apply runs one scan against the transition table. On acceptance it
// mutates the garment in place: new state, last-scanned scanner ID, and
// the wear or wash bookkeeping for the target state. On rejection the
// garment is left untouched.
func Apply(g *model.Garment, role model.ScannerRole, scannerID string, now time.Time) Outcome {
	next, ok := transitions[ruleKey{role, g.State}]
	if !ok {
		return Rejected
	}

	g.State = next
	g.LastScannedAt = scannerID

	if next == model.StateWorn {
		g.WearCountSinceWash++
		g.TotalWearCount++
		worn := now
		g.LastWorn = &worn
	}

	if next == model.StateWashing {
		recordWash(g, model.WashMethodMachine, now)
	}

	return Accepted
}

// ForceState overwrites the state directly. Counters, timestamps and
// wash history are deliberately left alone: this is a raw correction
// tool, and any of the six states is accepted regardless of
// reachability.
func ForceState(g *model.Garment, state model.GarmentState) {
	g.State = state
}

// LogWash records a wash without a scanner: same effects as a washer
// scan, but with a caller-chosen method instead of the machine sentinel.
func LogWash(g *model.Garment, method string, now time.Time) {
	g.State = model.StateWashing
	recordWash(g, method, now)
}

func recordWash(g *model.Garment, method string, now time.Time) {
	g.WearCountSinceWash = 0
	washed := now
	g.LastWashed = &washed
	g.WashCycles = append(g.WashCycles, model.WashCycle{Timestamp: now, Method: method})
}
