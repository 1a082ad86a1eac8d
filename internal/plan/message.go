// Package plan computes rally schedules and their presentation artifacts.
package plan

import (
	"fmt"
	"strings"

	"github.com/SofianeSadi/rally-time/internal/duration"
	"github.com/SofianeSadi/rally-time/internal/model"
)

const blockDivider = "----------"

// Lines renders one bulleted instruction line per plan row.
func Lines(p *model.Plan) []string {
	lines := make([]string, len(p.Rows))
	for i, r := range p.Rows {
		line := fmt.Sprintf("• %s start rally at %s UTC", r.Name, duration.Clock(r.RallyStart))
		if p.TargetLabel != "" {
			line += " on " + p.TargetLabel
		}
		lines[i] = line
	}
	return lines
}

// ClipboardBlock joins the instruction lines, a divider, and the
// verification summary into a single copy-ready block.
func ClipboardBlock(p *model.Plan, cfg model.PlanConfig) string {
	parts := append([]string{}, Lines(p)...)
	parts = append(parts, blockDivider)
	parts = append(parts, RenderSummary(Summarize(p, cfg))...)
	return strings.Join(parts, "\n")
}
