package planui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/SofianeSadi/rally-time/internal/model"
)

var testEpoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestModel() *Model {
	setup := model.Setup{
		Members: []model.Participant{
			{ID: "a", Name: "A", MarchMinutes: "0", MarchSeconds: "30"},
			{ID: "b", Name: "B", MarchMinutes: "1", MarchSeconds: "30"},
			{ID: "c", Name: "C", MarchMinutes: "0", MarchSeconds: "10"},
		},
	}
	return NewModel(nil, clockwork.NewFakeClockAt(testEpoch), model.DefaultPlanConfig(), "default", setup)
}

func TestCalculateBuildsPlan(t *testing.T) {
	m := newTestModel()
	m.calculate()
	if m.plan == nil {
		t.Fatalf("no plan built, notice = %q", m.notice)
	}
	if m.notice != "" {
		t.Fatalf("unexpected notice %q", m.notice)
	}
	wantFirst := testEpoch.Add(428 * time.Second)
	if !m.plan.Rows[0].Arrival.Equal(wantFirst) {
		t.Fatalf("first arrival = %v, want %v", m.plan.Rows[0].Arrival, wantFirst)
	}
	if got := len(m.planTable.Rows()); got != 3 {
		t.Fatalf("plan table has %d rows, want 3", got)
	}
}

func TestCalculateTargetMode(t *testing.T) {
	m := newTestModel()
	m.targetMode = true
	m.targetText = "18:30"
	m.calculate()
	if m.plan == nil {
		t.Fatalf("no plan built, notice = %q", m.notice)
	}
	if m.plan.Mode != model.ModeTarget {
		t.Fatalf("mode = %q", m.plan.Mode)
	}
	want := time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC)
	if !m.plan.Reference.Equal(want) {
		t.Fatalf("reference = %v, want %v", m.plan.Reference, want)
	}
}

func TestCalculateTargetTooSoon(t *testing.T) {
	m := newTestModel()
	m.targetMode = true
	m.targetText = "12:03"
	m.calculate()
	if m.plan != nil {
		t.Fatalf("plan built despite too-soon target")
	}
	if !strings.Contains(m.notice, "too soon") {
		t.Fatalf("notice = %q", m.notice)
	}
	if !strings.Contains(m.notice, "12:07:00") {
		t.Fatalf("notice missing earliest time: %q", m.notice)
	}
}

func TestCalculateAdvisoryClearsPriorPlan(t *testing.T) {
	m := newTestModel()
	m.calculate()
	if m.plan == nil {
		t.Fatal("no plan built")
	}
	m.setup.Members = nil
	m.calculate()
	if m.plan != nil {
		t.Fatal("advisory did not clear prior plan")
	}
	if m.notice == "" {
		t.Fatal("advisory notice missing")
	}
	if got := len(m.planTable.Rows()); got != 0 {
		t.Fatalf("plan table still has %d rows", got)
	}
}

func TestRosterEditKeepsPriorPlan(t *testing.T) {
	m := newTestModel()
	m.calculate()
	if m.plan == nil {
		t.Fatal("no plan built")
	}
	m.deleteMember()
	if m.plan == nil {
		t.Fatal("roster edit cleared the plan")
	}
}

func TestMoveMemberSwaps(t *testing.T) {
	m := newTestModel()
	m.rosterIndex = 0
	m.moveMember(1)
	if m.setup.Members[0].Name != "B" || m.setup.Members[1].Name != "A" {
		t.Fatalf("members after swap: %+v", m.setup.Members)
	}
	if m.rosterIndex != 1 {
		t.Fatalf("cursor did not follow the moved member: %d", m.rosterIndex)
	}

	m.rosterIndex = 2
	m.moveMember(1)
	if m.setup.Members[2].Name != "C" {
		t.Fatalf("move past the end mutated the roster: %+v", m.setup.Members)
	}
}

func TestDeleteMemberClampsCursor(t *testing.T) {
	m := newTestModel()
	m.rosterIndex = 2
	m.deleteMember()
	if len(m.setup.Members) != 2 {
		t.Fatalf("got %d members", len(m.setup.Members))
	}
	if m.rosterIndex != 1 {
		t.Fatalf("cursor = %d, want 1", m.rosterIndex)
	}
}

func TestApplyMemberFormAdd(t *testing.T) {
	m := newTestModel()
	if _, cmd := m.startMemberForm(-1); cmd == nil {
		t.Fatal("expected focus command")
	}
	m.formInputs[0].SetValue("Delta")
	m.formInputs[1].SetValue("2")
	m.formInputs[2].SetValue("05")
	m.applyMemberForm()

	if len(m.setup.Members) != 4 {
		t.Fatalf("got %d members", len(m.setup.Members))
	}
	added := m.setup.Members[3]
	if added.Name != "Delta" || added.MarchMinutes != "2" || added.MarchSeconds != "05" {
		t.Fatalf("added member = %+v", added)
	}
	if added.ID == "" {
		t.Fatal("added member has no id")
	}
	if m.rosterIndex != 3 {
		t.Fatalf("cursor = %d, want 3", m.rosterIndex)
	}
}

func TestApplyMemberFormEditKeepsID(t *testing.T) {
	m := newTestModel()
	if _, cmd := m.startMemberForm(1); cmd == nil {
		t.Fatal("expected focus command")
	}
	if m.formInputs[1].Value() != "1" {
		t.Fatalf("minutes input not prefilled: %q", m.formInputs[1].Value())
	}
	m.formInputs[0].SetValue("Bravo")
	m.applyMemberForm()
	if m.setup.Members[1].Name != "Bravo" || m.setup.Members[1].ID != "b" {
		t.Fatalf("edited member = %+v", m.setup.Members[1])
	}
	if len(m.setup.Members) != 3 {
		t.Fatalf("edit changed roster length to %d", len(m.setup.Members))
	}
}

func TestRenderRosterOrdinalsAndCursor(t *testing.T) {
	m := newTestModel()
	m.setup.Members[1].Name = "  "
	m.rosterIndex = 1
	out := m.renderRoster(80)
	if !strings.Contains(out, "Rally 2") {
		t.Fatalf("blank name not given ordinal label:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[1], "> ") {
		t.Fatalf("cursor marker missing on selected row: %q", lines[1])
	}
	if strings.Contains(lines[0], "> ") {
		t.Fatalf("cursor marker on unselected row: %q", lines[0])
	}
}

func TestRenderBriefing(t *testing.T) {
	m := newTestModel()
	if got := m.renderBriefing(); !strings.Contains(got, "No plan yet") {
		t.Fatalf("empty briefing = %q", got)
	}
	m.calculate()
	out := m.renderBriefing()
	if !strings.Contains(out, "start rally at") {
		t.Fatalf("briefing missing instructions:\n%s", out)
	}
	if !strings.Contains(out, "Appearance order") {
		t.Fatalf("briefing missing verification summary:\n%s", out)
	}
}

func TestPlanTableResizeTracksRowCount(t *testing.T) {
	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m.calculate()
	if m.planSize.rowCount != 3 {
		t.Fatalf("row count after calculate = %d, want 3", m.planSize.rowCount)
	}
	if m.planTable.Height() < 1 {
		t.Fatalf("plan table height = %d", m.planTable.Height())
	}

	// Same window, different row count: the resize guard must not skip.
	members := m.setup.Members
	m.setup.Members = nil
	m.calculate()
	if m.planSize.rowCount != 0 {
		t.Fatalf("row count after advisory = %d, want 0", m.planSize.rowCount)
	}

	m.setup.Members = members
	m.calculate()
	if m.planSize.rowCount != 3 {
		t.Fatalf("row count after recalculate = %d, want 3", m.planSize.rowCount)
	}
}

func TestRenderFooterShowsNotice(t *testing.T) {
	m := newTestModel()
	if out := m.renderFooter(); strings.Contains(out, "\n") {
		t.Fatalf("footer without notice spans lines: %q", out)
	}
	m.notice = "no march durations provided"
	out := m.renderFooter()
	if !strings.Contains(out, "no march durations provided") {
		t.Fatalf("footer missing notice: %q", out)
	}
	if !strings.Contains(out, "Quit: q") {
		t.Fatalf("footer missing help line: %q", out)
	}
}

func TestSetupSummaryShowsMode(t *testing.T) {
	m := newTestModel()
	m.width = 120
	if out := m.renderSetupSummary(); !strings.Contains(out, "mode=now") {
		t.Fatalf("summary = %q", out)
	}
	m.targetMode = true
	m.targetText = "18:30"
	if out := m.renderSetupSummary(); !strings.Contains(out, "mode=target 18:30") {
		t.Fatalf("summary = %q", out)
	}
}

func TestViewAfterResize(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := updated.View()
	if out == "" {
		t.Fatal("empty view after resize")
	}
	if !strings.Contains(out, "Roster") {
		t.Fatalf("view missing tab strip:\n%s", out)
	}
	if !strings.Contains(out, "No rallies") && !strings.Contains(out, "A") {
		t.Fatalf("view missing roster body:\n%s", out)
	}
}
