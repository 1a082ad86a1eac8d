// Package plan computes rally schedules and their presentation artifacts.
package plan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SofianeSadi/rally-time/internal/duration"
	"github.com/SofianeSadi/rally-time/internal/model"
)

// Advisory conditions that suppress plan computation.
var (
	ErrSetupIncomplete = errors.New("setup incomplete: add at least one rally")
	ErrNoDurations     = errors.New("no march durations provided")
)

// TooSoonError reports a fixed-target arrival that leaves the roster too
// little lead time.
type TooSoonError struct {
	Target   time.Time
	Earliest time.Time
}

func (e *TooSoonError) Error() string {
	return fmt.Sprintf("target arrival time too soon (earliest %s UTC)", duration.Clock(e.Earliest))
}

// RosterEntries converts an ordered member list to schedule entries, filling
// blank names with ordinal labels.
func RosterEntries(members []model.Participant) []model.Entry {
	entries := make([]model.Entry, len(members))
	for i, m := range members {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			name = "Rally " + strconv.Itoa(i+1)
		}
		entries[i] = model.Entry{
			Name:    name,
			Seconds: duration.Seconds(m.MarchMinutes, m.MarchSeconds),
		}
	}
	return entries
}

// Build computes a now-anchored plan. The whole schedule shifts forward by
// the largest march skew, so the slowest-adjusted participant's rally start
// lands exactly ReadinessSec after now and everyone else gets slack, while
// consecutive arrivals stay exactly GapSec apart.
func Build(entries []model.Entry, label string, cfg model.PlanConfig, now time.Time) (*model.Plan, error) {
	if err := checkEntries(entries); err != nil {
		return nil, err
	}
	now = now.UTC().Truncate(time.Second)
	shift := cfg.ReadinessSec + cfg.PrepSec + maxSkew(entries, cfg.GapSec)
	firstArrival := now.Add(time.Duration(shift) * time.Second)
	return &model.Plan{
		Mode:        model.ModeNow,
		Reference:   now,
		TargetLabel: label,
		Rows:        buildRows(entries, firstArrival, cfg),
	}, nil
}

// BuildAtTarget computes a fixed-target plan: the first arrival sits exactly
// on target with no readiness shift, so long marches may get less read-ahead
// than the now-anchored mode guarantees. The target must already be rolled
// forward by duration.ParseClock and is rejected when it is under LeadSec
// away.
func BuildAtTarget(entries []model.Entry, label string, cfg model.PlanConfig, now, target time.Time) (*model.Plan, error) {
	if err := checkEntries(entries); err != nil {
		return nil, err
	}
	now = now.UTC().Truncate(time.Second)
	target = target.UTC().Truncate(time.Second)
	earliest := now.Add(time.Duration(cfg.LeadSec) * time.Second)
	if target.Before(earliest) {
		return nil, &TooSoonError{Target: target, Earliest: earliest}
	}
	return &model.Plan{
		Mode:        model.ModeTarget,
		Reference:   target,
		TargetLabel: label,
		Rows:        buildRows(entries, target, cfg),
	}, nil
}

func checkEntries(entries []model.Entry) error {
	if len(entries) == 0 {
		return ErrSetupIncomplete
	}
	for _, e := range entries {
		if e.Seconds > 0 {
			return nil
		}
	}
	return ErrNoDurations
}

// maxSkew finds the largest d_i - i*gap over the roster. Pushing the first
// arrival out by this much keeps the readiness floor intact for every row.
func maxSkew(entries []model.Entry, gap int) int {
	shift := entries[0].Seconds
	for i := 1; i < len(entries); i++ {
		if skew := entries[i].Seconds - i*gap; skew > shift {
			shift = skew
		}
	}
	return shift
}

func buildRows(entries []model.Entry, firstArrival time.Time, cfg model.PlanConfig) []model.PlanRow {
	rows := make([]model.PlanRow, len(entries))
	for i, e := range entries {
		arrival := firstArrival.Add(time.Duration(i*cfg.GapSec) * time.Second)
		send := arrival.Add(-time.Duration(e.Seconds) * time.Second)
		rows[i] = model.PlanRow{
			Seq:           i + 1,
			Name:          e.Name,
			DurationSec:   e.Seconds,
			OffsetSec:     i * cfg.GapSec,
			StartDeltaSec: i*cfg.GapSec - (e.Seconds - entries[0].Seconds),
			Arrival:       arrival,
			Send:          send,
			RallyStart:    send.Add(-time.Duration(cfg.PrepSec) * time.Second),
		}
	}
	return rows
}
