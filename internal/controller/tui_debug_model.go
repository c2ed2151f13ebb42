package controller

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pegstep/pegstep/internal/domain"
	m "github.com/pegstep/pegstep/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	consumedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	markerStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("11")).
			Bold(true)

	stateStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	hitStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	matchedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// ruleDelegate renders one rule of the breakpoint panel.
type ruleDelegate struct{}

func (d ruleDelegate) Height() int  { return 1 }
func (d ruleDelegate) Spacing() int { return 0 }
func (d ruleDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d ruleDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	rule, ok := item.(ruleItem)
	if !ok {
		return
	}

	marker := "  "

	switch {
	case rule.queued:
		marker = noticeStyle.Render("~ ")
	case rule.breakpoint:
		marker = hitStyle.Render("● ")
	}

	name := string(rule.rule)
	if rule.silent {
		name += " (silent)"
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	if rule.silent {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	}

	if index == lm.Index() {
		style = style.
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
	}

	_, _ = fmt.Fprintf(w, "%s%s", marker, style.Render(name))
}

// debugModel is the Bubble Tea model for the interactive stepping view.
type debugModel struct {
	session *domain.Session
	snap    m.Snapshot
	message string

	ruleList list.Model
	queued   map[m.RuleName]bool

	width    int
	height   int
	quitting bool
}

func newDebugModel(session *domain.Session) debugModel {
	rules := session.Rules()
	items := make([]list.Item, 0, len(rules))

	breakpoints := session.Breakpoints()

	for _, rule := range rules {
		items = append(items, ruleItem{
			rule:       rule.Name,
			silent:     rule.Silent,
			breakpoint: hasBreakpoint(rule.Name, breakpoints),
		})
	}

	ruleList := list.New(items, ruleDelegate{}, 28, 12)
	ruleList.Title = "Rules"
	ruleList.SetShowStatusBar(false)
	ruleList.SetFilteringEnabled(false)
	ruleList.SetShowHelp(false)

	snap, _ := session.Command(domain.CommandInspect)

	return debugModel{
		session:  session,
		snap:     snap,
		ruleList: ruleList,
		queued:   make(map[m.RuleName]bool),
	}
}

func (dm debugModel) Init() tea.Cmd {
	return nil
}

func (dm debugModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		dm.width = msg.Width
		dm.height = msg.Height
		dm.ruleList.SetSize(28, maxInt(msg.Height-6, 4))

		return dm, nil

	case tea.KeyMsg:
		return dm.handleKeyPress(msg)
	}

	return dm, nil
}

//nolint:cyclop // one case per key binding
func (dm debugModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		dm.quitting = true
		return dm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		dm.quitting = true
		return dm, tea.Quit

	case "s", "n", "enter":
		dm.applyCommand(domain.CommandStep)
		return dm, nil

	case "c":
		dm.applyCommand(domain.CommandContinue)
		return dm, nil

	case "r":
		dm.applyCommand(domain.CommandRestart)
		return dm, nil

	case "R":
		dm.rerecord()
		return dm, nil

	case "b":
		dm.toggleBreakpoint()
		return dm, nil

	case "up", "k", "down", "j":
		var cmd tea.Cmd
		dm.ruleList, cmd = dm.ruleList.Update(msg)

		return dm, cmd
	}

	return dm, nil
}

func (dm *debugModel) applyCommand(command domain.Command) {
	snap, err := dm.session.Command(command)
	dm.snap = snap
	dm.message = ""

	if err != nil {
		if errors.Is(err, domain.ErrAlreadyFinished) {
			dm.message = "already finished; press r to replay from the start"
			return
		}

		dm.message = err.Error()
	}
}

// toggleBreakpoint queues a breakpoint change on the selected rule. The
// trace was recorded in full, so the change only takes effect on the
// next recording pass (R).
func (dm *debugModel) toggleBreakpoint() {
	item, ok := dm.ruleList.SelectedItem().(ruleItem)
	if !ok {
		return
	}

	effective := item.breakpoint
	if dm.queued[item.rule] {
		effective = !effective
	}

	var err error
	if effective {
		err = dm.session.RemoveBreakpoint(item.rule)
	} else {
		err = dm.session.AddBreakpoint(item.rule)
	}

	dm.queued[item.rule] = !dm.queued[item.rule]

	if errors.Is(err, domain.ErrSessionActive) {
		dm.message = "breakpoint change queued; press R to re-record with it"
	} else if err != nil {
		dm.message = err.Error()
	}

	dm.refreshRuleItems()
}

func (dm *debugModel) rerecord() {
	snap, err := dm.session.Rerecord()
	if err != nil {
		dm.message = err.Error()
		return
	}

	dm.snap = snap
	dm.message = "re-recorded with current breakpoints"
	dm.queued = make(map[m.RuleName]bool)
	dm.refreshRuleItems()
}

func (dm *debugModel) refreshRuleItems() {
	breakpoints := dm.session.Breakpoints()
	items := dm.ruleList.Items()

	for i, raw := range items {
		item, ok := raw.(ruleItem)
		if !ok {
			continue
		}

		item.breakpoint = hasBreakpoint(item.rule, breakpoints)
		item.queued = dm.queued[item.rule]
		items[i] = item
	}

	dm.ruleList.SetItems(items)
}

func (dm debugModel) View() string {
	if dm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("pegstep — recorded parse replay"))
	b.WriteString("\n\n")

	left := paneStyle.Render(dm.ruleList.View())
	right := lipgloss.JoinVertical(
		lipgloss.Left,
		paneStyle.Render(dm.renderInput()),
		paneStyle.Render(dm.renderStack()),
		dm.renderStatus(),
	)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	b.WriteString("\n")

	if dm.message != "" {
		b.WriteString(noticeStyle.Render("  " + dm.message))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("  s: step | c: continue | r: restart | b: toggle breakpoint | R: re-record | q: quit"))
	b.WriteString("\n")

	return b.String()
}

// renderInput shows the input split at the cursor position, the way the
// playground highlighted where a breakpoint stopped.
func (dm debugModel) renderInput() string {
	trace := dm.session.Trace()
	if trace == nil {
		return "no input"
	}

	input := trace.Input
	pos := int(dm.snap.Position)

	if pos > len(input) {
		pos = len(input)
	}

	consumed := input[:pos]
	rest := input[pos:]

	var b strings.Builder

	b.WriteString("Input @ ")
	b.WriteString(fmt.Sprintf("%d", pos))
	b.WriteString("\n")
	b.WriteString(consumedStyle.Render(consumed))

	if len(rest) > 0 {
		r, size := utf8.DecodeRuneInString(rest)

		current := string(r)
		if r == ' ' {
			current = "␣"
		}

		b.WriteString(markerStyle.Render(current))
		b.WriteString(rest[size:])
	} else {
		b.WriteString(markerStyle.Render("·"))
	}

	return b.String()
}

func (dm debugModel) renderStack() string {
	var b strings.Builder

	b.WriteString("Call stack\n")

	if len(dm.snap.CallStack) == 0 {
		b.WriteString(consumedStyle.Render("(empty)"))
		return b.String()
	}

	for i := len(dm.snap.CallStack) - 1; i >= 0; i-- {
		frame := dm.snap.CallStack[i]
		fmt.Fprintf(&b, "%s @ %d", frame.Rule, frame.Pos)

		if i > 0 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (dm debugModel) renderStatus() string {
	var parts []string

	parts = append(parts, stateStyle.Render(string(dm.snap.State)))
	parts = append(parts, fmt.Sprintf("event %d", dm.snap.TraceIndex))

	if dm.snap.HitBreakpoint != nil {
		parts = append(parts, hitStyle.Render(fmt.Sprintf("breakpoint %s", *dm.snap.HitBreakpoint)))
	}

	switch dm.snap.Outcome {
	case m.OutcomeMatched:
		parts = append(parts, matchedStyle.Render("matched"))
	case m.OutcomeFailed:
		parts = append(parts, failedStyle.Render("failed"))
	}

	return "  " + strings.Join(parts, " | ")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
