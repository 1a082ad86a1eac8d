// Package model defines shared data structures.
package model

import "time"

// PlanMode selects how the schedule anchor is chosen.
type PlanMode string

const (
	// ModeNow anchors the schedule to the wall clock read at calculation
	// time, shifting the first arrival far enough out that every rally
	// start keeps the readiness buffer.
	ModeNow PlanMode = "now"
	// ModeTarget pins the first arrival to a user-chosen clock time.
	ModeTarget PlanMode = "target"
)

// Participant is one roster row. March fields keep the raw text exactly as
// entered; normalization happens at calculation time.
type Participant struct {
	ID           string
	Name         string
	MarchMinutes string
	MarchSeconds string
}

// Setup is a roster snapshot: a target label plus the ordered member list.
// List order is the arrival order.
type Setup struct {
	TargetLabel string
	Members     []Participant
}

// SetupInfo summarizes a stored setup for listing.
type SetupInfo struct {
	Name      string
	Members   int
	UpdatedAt time.Time
}

// PlanConfig carries the scheduling constants, in seconds.
type PlanConfig struct {
	GapSec       int
	PrepSec      int
	ReadinessSec int
	LeadSec      int
}

// DefaultPlanConfig returns the base constants: a 2s gap between
// consecutive arrivals, a 5m rally preparation countdown, a 40s readiness
// buffer, and a 7m minimum lead for fixed-target plans.
func DefaultPlanConfig() PlanConfig {
	return PlanConfig{
		GapSec:       2,
		PrepSec:      300,
		ReadinessSec: 40,
		LeadSec:      420,
	}
}

// Entry is one scheduling input: a display name and a march duration.
type Entry struct {
	Name    string
	Seconds int
}

// PlanRow holds one participant's computed timings. All times are UTC with
// second precision.
type PlanRow struct {
	Seq           int
	Name          string
	DurationSec   int
	OffsetSec     int
	StartDeltaSec int
	Arrival       time.Time
	Send          time.Time
	RallyStart    time.Time
}

// Plan is a complete computed schedule. Reference is the wall-clock read
// for now-anchored plans and the validated target arrival otherwise.
type Plan struct {
	Mode        PlanMode
	Reference   time.Time
	TargetLabel string
	Rows        []PlanRow
}
