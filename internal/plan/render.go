package plan

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/SofianeSadi/rally-time/internal/duration"
	"github.com/SofianeSadi/rally-time/internal/model"
)

// PlanTable renders a plan as width-aligned text lines for terminal output.
func PlanTable(p *model.Plan) []string {
	headers := []string{"#", "Name", "March", "Offset", "Start delta", "Rally start", "Send", "Arrival"}
	rows := make([][]string, len(p.Rows))
	for i, r := range p.Rows {
		rows[i] = []string{
			strconv.Itoa(r.Seq),
			r.Name,
			duration.FormatSeconds(r.DurationSec),
			duration.FormatSeconds(r.OffsetSec),
			duration.FormatSigned(r.StartDeltaSec),
			duration.Clock(r.RallyStart),
			duration.Clock(r.Send),
			duration.Clock(r.Arrival),
		}
	}
	rightAlign := map[int]bool{0: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true}
	return formatTable(headers, rows, rightAlign)
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return b.String()
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

// displayWidth measures terminal cells, not runes, so wide glyphs in member
// names keep the columns aligned.
func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
