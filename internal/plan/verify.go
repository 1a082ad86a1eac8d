// Package plan computes rally schedules and their presentation artifacts.
package plan

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SofianeSadi/rally-time/internal/duration"
	"github.com/SofianeSadi/rally-time/internal/model"
)

// Rank is one participant's position in a time ordering.
type Rank struct {
	Pos  int
	Name string
	At   time.Time
}

// Step is one appearance-order handoff: how much later or earlier a
// participant starts their rally than the one before them, and where the
// previous leader's preparation countdown stands at that moment.
type Step struct {
	Name      string
	PrevName  string
	DeltaSec  int // signed rally-start difference vs the previous participant
	AnchorSec int // prep countdown remaining on the previous rally; negative means it already launched
}

// Summary is the cross-check narrative derived from a plan.
type Summary struct {
	Appearance []Rank
	Impact     []Rank
	Steps      []Step
}

// Summarize ranks the plan's rows by rally start (appearance order) and by
// arrival (impact order), then walks the appearance order deriving a
// countdown anchor for each handoff. The two orders can disagree when the
// roster is not listed in increasing-start order; both are reported as-is.
func Summarize(p *model.Plan, cfg model.PlanConfig) Summary {
	appearance := rankBy(p.Rows, func(r model.PlanRow) time.Time { return r.RallyStart })
	impact := rankBy(p.Rows, func(r model.PlanRow) time.Time { return r.Arrival })

	steps := make([]Step, 0, len(appearance))
	for i := 1; i < len(appearance); i++ {
		delta := int(appearance[i].At.Sub(appearance[i-1].At) / time.Second)
		abs := delta
		if abs < 0 {
			abs = -abs
		}
		steps = append(steps, Step{
			Name:      appearance[i].Name,
			PrevName:  appearance[i-1].Name,
			DeltaSec:  delta,
			AnchorSec: cfg.PrepSec - abs,
		})
	}
	return Summary{Appearance: appearance, Impact: impact, Steps: steps}
}

func rankBy(rows []model.PlanRow, at func(model.PlanRow) time.Time) []Rank {
	ranks := make([]Rank, len(rows))
	for i, r := range rows {
		ranks[i] = Rank{Name: r.Name, At: at(r)}
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].At.Before(ranks[j].At) })
	for i := range ranks {
		ranks[i].Pos = i + 1
	}
	return ranks
}

// RenderSummary renders the check-list as plain text lines.
func RenderSummary(s Summary) []string {
	if len(s.Appearance) == 0 {
		return nil
	}
	lines := []string{
		"Appearance order (rally start): " + rankNames(s.Appearance),
		"Impact order (arrival): " + rankNames(s.Impact),
	}
	for _, step := range s.Steps {
		lines = append(lines, stepLine(step))
	}
	return lines
}

func rankNames(ranks []Rank) string {
	names := make([]string, len(ranks))
	for i, r := range ranks {
		names[i] = r.Name
	}
	return strings.Join(names, ", ")
}

func stepLine(s Step) string {
	word := "more"
	delta := s.DeltaSec
	if delta < 0 {
		word = "less"
		delta = -delta
	}
	cue := fmt.Sprintf("go when %s's countdown shows %s", s.PrevName, duration.FormatSeconds(s.AnchorSec))
	if s.AnchorSec < 0 {
		cue = fmt.Sprintf("go %s after %s's rally launches", duration.FormatSeconds(-s.AnchorSec), s.PrevName)
	}
	return fmt.Sprintf("%s: %s %s than %s; %s", s.Name, duration.FormatSeconds(delta), word, s.PrevName, cue)
}
