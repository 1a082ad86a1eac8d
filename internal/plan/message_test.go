package plan

import (
	"strings"
	"testing"

	"github.com/SofianeSadi/rally-time/internal/model"
)

func TestLines(t *testing.T) {
	cfg := model.DefaultPlanConfig()
	p, err := Build(testEntries(), "", cfg, epoch)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	lines := Lines(p)
	want := []string{
		"• A start rally at 12:01:38 UTC",
		"• B start rally at 12:00:40 UTC",
		"• C start rally at 12:02:02 UTC",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestLinesWithLabel(t *testing.T) {
	cfg := model.DefaultPlanConfig()
	p, err := Build(testEntries(), "Keep 12", cfg, epoch)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	lines := Lines(p)
	if lines[0] != "• A start rally at 12:01:38 UTC on Keep 12" {
		t.Fatalf("line 0 = %q", lines[0])
	}
}

func TestClipboardBlock(t *testing.T) {
	cfg := model.DefaultPlanConfig()
	p, err := Build(testEntries(), "", cfg, epoch)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	block := ClipboardBlock(p, cfg)
	parts := strings.Split(block, "\n")
	// 3 instruction lines, divider, 2 order lines, 2 handoff lines.
	if len(parts) != 8 {
		t.Fatalf("got %d block lines: %q", len(parts), parts)
	}
	if parts[3] != blockDivider {
		t.Fatalf("line 3 = %q, want divider", parts[3])
	}
	if !strings.HasPrefix(parts[0], "• ") {
		t.Fatalf("instruction line not bulleted: %q", parts[0])
	}
	if !strings.HasPrefix(parts[4], "Appearance order") {
		t.Fatalf("summary does not follow divider: %q", parts[4])
	}
}
