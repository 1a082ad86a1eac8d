// Package planui provides the Bubble Tea rally planner interface.
package planui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/SofianeSadi/rally-time/internal/clip"
	"github.com/SofianeSadi/rally-time/internal/duration"
	"github.com/SofianeSadi/rally-time/internal/model"
	"github.com/SofianeSadi/rally-time/internal/plan"
	"github.com/SofianeSadi/rally-time/internal/store"
)

const (
	tabRoster = iota
	tabPlan
	tabBriefing
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea planner UI.
type Model struct {
	store     *store.Store
	clock     clockwork.Clock
	cfg       model.PlanConfig
	setupName string
	setup     model.Setup

	plan   *model.Plan
	notice string

	targetMode bool
	targetText string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	planTable table.Model
	planSize  tableLayout

	rosterIndex int

	width  int
	height int

	formMode   bool
	formInputs []textinput.Model
	formIndex  int
	editIndex  int

	labelMode  bool
	labelInput textinput.Model

	targetInputMode bool
	targetInput     textinput.Model
	targetError     string
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
}

// NewModel constructs a planner model. The store may be nil when persistence
// is not wanted; edits are then kept in memory only.
func NewModel(st *store.Store, clk clockwork.Clock, cfg model.PlanConfig, setupName string, setup model.Setup) *Model {
	m := &Model{
		store:     st,
		clock:     clk,
		cfg:       cfg,
		setupName: setupName,
		setup:     setup,
		editIndex: -1,
		tabs:      []string{"Roster", "Plan", "Briefing"},
	}
	m.initInputs()
	m.initPlanTable()
	m.initViewports()
	m.renderTabContents()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.formMode {
			return m.updateMemberForm(msg)
		}
		if m.labelMode {
			return m.updateLabelInput(msg)
		}
		if m.targetInputMode {
			return m.updateTargetInput(msg)
		}
		if m.activeTab == tabPlan {
			m.planTable.Focus()
		} else {
			m.planTable.Blur()
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "c":
			m.calculate()
			return m, nil
		case "r":
			m.resetPlan()
			return m, nil
		case "y":
			if m.activeTab == tabBriefing {
				m.copyBriefing()
				return m, nil
			}
			return m, nil
		case "a":
			if m.activeTab == tabRoster {
				return m.startMemberForm(-1)
			}
			return m, nil
		case "e", "enter":
			if m.activeTab == tabRoster && len(m.setup.Members) > 0 {
				return m.startMemberForm(m.rosterIndex)
			}
			return m.forwardScroll(msg)
		case "d":
			if m.activeTab == tabRoster {
				m.deleteMember()
				return m, nil
			}
			return m, nil
		case "J":
			if m.activeTab == tabRoster {
				m.moveMember(1)
				return m, nil
			}
			return m.forwardScroll(msg)
		case "K":
			if m.activeTab == tabRoster {
				m.moveMember(-1)
				return m, nil
			}
			return m.forwardScroll(msg)
		case "t":
			if m.activeTab == tabRoster {
				return m.startLabelInput()
			}
			return m, nil
		case "T":
			if m.activeTab == tabRoster {
				return m.startTargetInput()
			}
			return m, nil
		case "m":
			if m.activeTab == tabRoster {
				m.targetMode = !m.targetMode
				return m, nil
			}
			return m, nil
		case "up", "k":
			if m.activeTab == tabRoster {
				m.moveCursor(-1)
				return m, nil
			}
			return m.forwardScroll(msg)
		case "down", "j":
			if m.activeTab == tabRoster {
				m.moveCursor(1)
				return m, nil
			}
			return m.forwardScroll(msg)
		case "g", "home":
			switch m.activeTab {
			case tabRoster:
				m.setCursor(0)
			case tabPlan:
				m.planTable.GotoTop()
			default:
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			switch m.activeTab {
			case tabRoster:
				m.setCursor(len(m.setup.Members) - 1)
			case tabPlan:
				m.planTable.GotoBottom()
			default:
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			return m.forwardScroll(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.formMode {
		return fitLines(m.renderMemberModal(), m.width, m.height)
	}
	if m.labelMode {
		return fitLines(m.renderLabelModal(), m.width, m.height)
	}
	if m.targetInputMode {
		return fitLines(m.renderTargetModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.formInputs = []textinput.Model{
		newPromptInput("Name: "),
		newPromptInput("Minutes: "),
		newPromptInput("Seconds: "),
	}
	m.labelInput = newPromptInput("Target label: ")
	m.targetInput = newPromptInput("Arrival (HH:MM): ")
	m.targetInput.Placeholder = "18:30"
}

func newPromptInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) initPlanTable() {
	m.planTable = table.New(
		table.WithColumns(planColumns()),
		table.WithHeight(1),
	)
	m.planTable.SetStyles(planTableStyles())
}

func planColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Name", Width: 16},
		{Title: "March", Width: 7},
		{Title: "Offset", Width: 6},
		{Title: "Start delta", Width: 11},
		{Title: "Rally start", Width: 11},
		{Title: "Send", Width: 8},
		{Title: "Arrival", Width: 8},
	}
}

func planTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func planTableRows(p *model.Plan) []table.Row {
	if p == nil {
		return nil
	}
	rows := make([]table.Row, 0, len(p.Rows))
	for _, r := range p.Rows {
		rows = append(rows, table.Row{
			strconv.Itoa(r.Seq),
			r.Name,
			duration.FormatSeconds(r.DurationSec),
			duration.FormatSeconds(r.OffsetSec),
			duration.FormatSigned(r.StartDeltaSec),
			duration.Clock(r.RallyStart),
			duration.Clock(r.Send),
			duration.Clock(r.Arrival),
		})
	}
	return rows
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.notice != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.setPlanTableSize(m.width, bodyHeight)
	inner := modalInnerWidth(m.width)
	for i := range m.formInputs {
		promptWidth := lipgloss.Width(m.formInputs[i].Prompt)
		m.formInputs[i].Width = maxInt(10, inner-promptWidth)
	}
	m.labelInput.Width = maxInt(10, inner-lipgloss.Width(m.labelInput.Prompt))
	m.targetInput.Width = maxInt(10, inner-lipgloss.Width(m.targetInput.Prompt))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabPlan {
		m.planTable.Focus()
	} else {
		m.planTable.Blur()
	}
}

func (m *Model) moveCursor(delta int) {
	m.setCursor(m.rosterIndex + delta)
}

func (m *Model) setCursor(idx int) {
	if len(m.setup.Members) == 0 {
		m.rosterIndex = 0
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.setup.Members) {
		idx = len(m.setup.Members) - 1
	}
	m.rosterIndex = idx
	m.renderTabContents()
}

func (m *Model) forwardScroll(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.activeTab == tabPlan {
		var cmd tea.Cmd
		m.planTable, cmd = m.planTable.Update(msg)
		return m, cmd
	}
	vp := m.viewports[m.activeTab]
	var cmd tea.Cmd
	vp, cmd = vp.Update(msg)
	m.viewports[m.activeTab] = vp
	return m, cmd
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := padLines(m.renderSetupSummary(), m.width)
	return tabs + "\n" + summary
}

func (m *Model) renderSetupSummary() string {
	label := m.setup.TargetLabel
	if label == "" {
		label = "none"
	}
	mode := "now"
	if m.targetMode {
		target := m.targetText
		if target == "" {
			target = "unset"
		}
		mode = "target " + target
	}
	summary := fmt.Sprintf("Setup: %s  members=%d  label=%s  mode=%s", m.setupName, len(m.setup.Members), label, mode)
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderHelp() string {
	switch m.activeTab {
	case tabRoster:
		return headerStyle.Render("Add: a  Edit: enter  Del: d  Move: J/K  Label: t  Mode: m  Time: T  Calc: c  Quit: q")
	case tabPlan:
		return headerStyle.Render("Nav: left/right  Scroll: up/down  Calc: c  Reset: r  Quit: q")
	default:
		return headerStyle.Render("Nav: left/right  Scroll: up/down  Copy: y  Calc: c  Quit: q")
	}
}

func (m *Model) renderFooter() string {
	if m.notice != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.notice)
	}
	return m.renderHelp()
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabPlan {
		if m.plan == nil {
			return fitLines("No plan yet. Press c to calculate.", m.width, height)
		}
		view := tableMutedStyle.Render(m.planTable.View())
		return fitLines(view, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabRoster].SetContent(m.renderRoster(width))
	m.viewports[tabBriefing].SetContent(m.renderBriefing())
	m.ensureRosterVisible()
}

func (m *Model) renderRoster(width int) string {
	if len(m.setup.Members) == 0 {
		return "No rallies yet. Press a to add one."
	}
	entries := plan.RosterEntries(m.setup.Members)
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		marker := "  "
		if i == m.rosterIndex {
			marker = "> "
		}
		line := fmt.Sprintf("%s%2d. %-24s march %s", marker, i+1, truncateLine(e.Name, 24), duration.FormatSeconds(e.Seconds))
		line = truncateLine(line, width)
		if i == m.rosterIndex {
			line = selectedStyle.Render(line)
		} else {
			line = tableMutedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBriefing() string {
	if m.plan == nil {
		return "No plan yet. Press c to calculate."
	}
	return plan.ClipboardBlock(m.plan, m.cfg)
}

func (m *Model) ensureRosterVisible() {
	if len(m.viewports) == 0 {
		return
	}
	vp := &m.viewports[tabRoster]
	if vp.Height <= 0 {
		return
	}
	if m.rosterIndex < vp.YOffset {
		vp.SetYOffset(m.rosterIndex)
	}
	if m.rosterIndex >= vp.YOffset+vp.Height {
		vp.SetYOffset(m.rosterIndex - vp.Height + 1)
	}
}

func (m *Model) calculate() {
	entries := plan.RosterEntries(m.setup.Members)
	now := m.clock.Now()
	var built *model.Plan
	var err error
	if m.targetMode {
		target, perr := duration.ParseClock(m.targetText, now)
		if perr != nil {
			err = perr
		} else {
			built, err = plan.BuildAtTarget(entries, m.setup.TargetLabel, m.cfg, now, target)
		}
	} else {
		built, err = plan.Build(entries, m.setup.TargetLabel, m.cfg, now)
	}
	if err != nil {
		m.plan = nil
		m.notice = err.Error()
	} else {
		m.plan = built
		m.notice = ""
	}
	m.applyPlanTable()
	m.renderTabContents()
}

func (m *Model) resetPlan() {
	m.plan = nil
	m.notice = ""
	m.applyPlanTable()
	m.renderTabContents()
}

func (m *Model) copyBriefing() {
	if m.plan == nil {
		m.notice = "no plan to copy"
		return
	}
	if err := clip.Copy(plan.ClipboardBlock(m.plan, m.cfg)); err != nil {
		m.notice = fmt.Sprintf("copy failed: %v", err)
	}
}

func (m *Model) applyPlanTable() {
	// Row values change on every calculate; only the resize is guarded.
	m.planTable.SetRows(planTableRows(m.plan))
	if m.width > 0 && m.height > 0 {
		_, bodyHeight, _ := m.layoutHeights()
		m.setPlanTableSize(m.width, bodyHeight)
	}
}

func (m *Model) setPlanTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	rowCount := len(m.planTable.Rows())
	if m.planSize.width == width && m.planSize.height == viewportHeight && m.planSize.rowCount == rowCount {
		return
	}
	m.planSize.width = width
	m.planSize.height = viewportHeight
	m.planSize.rowCount = rowCount
	m.planTable.SetWidth(width)
	m.planTable.SetHeight(viewportHeight)
	viewportHeight = m.adjustPlanTableHeight(height)
	if m.planSize.height != viewportHeight {
		m.planSize.height = viewportHeight
		m.planTable.SetHeight(viewportHeight)
	}
}

// adjustPlanTableHeight corrects for the header/border rows the bubbles
// table adds around its viewport.
func (m *Model) adjustPlanTableHeight(bodyHeight int) int {
	target := maxInt(1, bodyHeight)
	height := m.planTable.Height()
	viewHeight := lipgloss.Height(m.planTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	m.planTable.SetHeight(height)
	viewHeight = lipgloss.Height(m.planTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	return height
}

func (m *Model) startMemberForm(editIndex int) (tea.Model, tea.Cmd) {
	m.formMode = true
	m.editIndex = editIndex
	if editIndex >= 0 && editIndex < len(m.setup.Members) {
		member := m.setup.Members[editIndex]
		m.formInputs[0].SetValue(member.Name)
		m.formInputs[1].SetValue(member.MarchMinutes)
		m.formInputs[2].SetValue(member.MarchSeconds)
	} else {
		for i := range m.formInputs {
			m.formInputs[i].SetValue("")
		}
	}
	return m, m.setFormIndex(0)
}

func (m *Model) updateMemberForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.formMode = false
		return m, nil
	case tea.KeyEnter:
		m.applyMemberForm()
		m.formMode = false
		m.renderTabContents()
		return m, nil
	case tea.KeyTab:
		return m, m.setFormIndex(m.formIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFormIndex(m.formIndex - 1)
	}
	var cmd tea.Cmd
	m.formInputs[m.formIndex], cmd = m.formInputs[m.formIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFormIndex(idx int) tea.Cmd {
	count := len(m.formInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.formIndex = idx
	var cmd tea.Cmd
	for i := range m.formInputs {
		if i == m.formIndex {
			cmd = m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyMemberForm() {
	member := model.Participant{
		Name:         strings.TrimSpace(m.formInputs[0].Value()),
		MarchMinutes: strings.TrimSpace(m.formInputs[1].Value()),
		MarchSeconds: strings.TrimSpace(m.formInputs[2].Value()),
	}
	if m.editIndex >= 0 && m.editIndex < len(m.setup.Members) {
		member.ID = m.setup.Members[m.editIndex].ID
		m.setup.Members[m.editIndex] = member
	} else {
		member.ID = uuid.NewString()
		m.setup.Members = append(m.setup.Members, member)
		m.rosterIndex = len(m.setup.Members) - 1
	}
	m.persistSetup()
}

func (m *Model) deleteMember() {
	if len(m.setup.Members) == 0 {
		return
	}
	i := m.rosterIndex
	m.setup.Members = append(m.setup.Members[:i], m.setup.Members[i+1:]...)
	if m.rosterIndex >= len(m.setup.Members) {
		m.rosterIndex = len(m.setup.Members) - 1
	}
	if m.rosterIndex < 0 {
		m.rosterIndex = 0
	}
	m.persistSetup()
	m.renderTabContents()
}

func (m *Model) moveMember(delta int) {
	j := m.rosterIndex + delta
	if j < 0 || j >= len(m.setup.Members) {
		return
	}
	members := m.setup.Members
	members[m.rosterIndex], members[j] = members[j], members[m.rosterIndex]
	m.rosterIndex = j
	m.persistSetup()
	m.renderTabContents()
}

func (m *Model) startLabelInput() (tea.Model, tea.Cmd) {
	m.labelMode = true
	m.labelInput.SetValue(m.setup.TargetLabel)
	return m, m.labelInput.Focus()
}

func (m *Model) updateLabelInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.labelMode = false
		return m, nil
	case tea.KeyEnter:
		m.setup.TargetLabel = strings.TrimSpace(m.labelInput.Value())
		m.labelMode = false
		m.persistSetup()
		return m, nil
	}
	var cmd tea.Cmd
	m.labelInput, cmd = m.labelInput.Update(msg)
	return m, cmd
}

func (m *Model) startTargetInput() (tea.Model, tea.Cmd) {
	m.targetInputMode = true
	m.targetError = ""
	m.targetInput.SetValue(m.targetText)
	return m, m.targetInput.Focus()
}

func (m *Model) updateTargetInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.targetInputMode = false
		m.targetError = ""
		return m, nil
	case tea.KeyEnter:
		raw := strings.TrimSpace(m.targetInput.Value())
		if raw == "" {
			m.targetText = ""
			m.targetMode = false
			m.targetInputMode = false
			m.targetError = ""
			return m, nil
		}
		if _, err := duration.ParseClock(raw, m.clock.Now()); err != nil {
			m.targetError = err.Error()
			return m, nil
		}
		m.targetText = raw
		m.targetMode = true
		m.targetInputMode = false
		m.targetError = ""
		return m, nil
	}
	var cmd tea.Cmd
	m.targetInput, cmd = m.targetInput.Update(msg)
	return m, cmd
}

func (m *Model) persistSetup() {
	if m.store == nil {
		return
	}
	if err := m.store.SaveSetup(context.Background(), m.setupName, m.setup); err != nil {
		m.notice = fmt.Sprintf("save failed: %v", err)
	}
}

func (m *Model) renderMemberModal() string {
	title := "Add Rally"
	if m.editIndex >= 0 {
		title = "Edit Rally"
	}
	body := []string{
		selectedStyle.Render(title),
	}
	for _, input := range m.formInputs {
		body = append(body, input.View())
	}
	body = append(body, modalTitleStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel"))
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderLabelModal() string {
	body := []string{
		selectedStyle.Render("Target Label"),
		m.labelInput.View(),
		modalTitleStyle.Render("Enter to apply / Esc to cancel"),
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderTargetModal() string {
	body := []string{
		selectedStyle.Render("Target Arrival Time (UTC)"),
		m.targetInput.View(),
		modalTitleStyle.Render("Empty clears the target. Enter to apply / Esc to cancel"),
	}
	if m.targetError != "" {
		body = append(body, errorStyle.Render(m.targetError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width)
	w -= 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
