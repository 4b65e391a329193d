package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/tabnav/nav"
	"github.com/jask/tabnav/views"
)

const appName = "tabnav"

// unsavedGuardPriority keeps the demo dirty-draft guard below the auth guard,
// so a gated destination blocks before the discard prompt fires.
const unsavedGuardPriority = 10

type transitionMsg nav.Transition

type navResultMsg struct {
	res nav.Result
	err error
}

type preloadDoneMsg struct {
	view nav.ViewID
	err  error
}

// Model is the bubbletea program driving the navigation core. It owns no
// navigation state of its own: every read goes through the controller
// snapshot and every change through a facade call.
type Model struct {
	ctrl    *nav.Controller
	reg     *views.Registry
	relay   *TransitionRelay
	session *Session
	keys    keyMap

	// unregister handles for the per-view unsaved-changes guards toggled with
	// the dirty key
	dirty map[nav.ViewID]func()

	width  int
	height int
	status string
}

// New builds the shell around an already-wired controller. The relay must be
// part of the controller's observer chain for transitions to reach the UI.
func New(ctrl *nav.Controller, reg *views.Registry, relay *TransitionRelay, session *Session) Model {
	return Model{
		ctrl:    ctrl,
		reg:     reg,
		relay:   relay,
		session: session,
		keys:    defaultKeyMap(),
		dirty:   map[nav.ViewID]func(){},
		status:  "Ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listenTransitions(), m.preload(m.ctrl.ActiveView()))
}

// listenTransitions re-arms after every delivered message so the relay
// channel is always drained.
func (m Model) listenTransitions() tea.Cmd {
	return func() tea.Msg {
		return transitionMsg(<-m.relay.ch)
	}
}

func (m Model) requestNavigate(to nav.ViewID) tea.Cmd {
	return func() tea.Msg {
		res, err := m.ctrl.RequestNavigate(context.Background(), to, nil)
		return navResultMsg{res: res, err: err}
	}
}

func (m Model) confirmPending() tea.Cmd {
	return func() tea.Msg {
		if err := m.ctrl.ConfirmPending(context.Background()); err != nil {
			return navResultMsg{err: err}
		}
		return navResultMsg{res: nav.Result{Outcome: nav.OutcomeCommitted}}
	}
}

func (m Model) preload(view nav.ViewID) tea.Cmd {
	return func() tea.Msg {
		return preloadDoneMsg{view: view, err: m.ctrl.Preload(context.Background(), view)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case transitionMsg:
		return m.onTransition(nav.Transition(msg))

	case navResultMsg:
		return m.onNavResult(msg)

	case preloadDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Preload %s failed: %v", msg.view, msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}
	return m, nil
}

// onTransition runs the per-commit follow-ups: warm the neighboring tab and
// drop ephemeral state for views that opted out of preservation.
func (m Model) onTransition(t nav.Transition) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.listenTransitions()}
	if next, ok := m.neighbor(t.To, 1); ok && !m.ctrl.Preloaded(next) {
		cmds = append(cmds, m.preload(next))
	}
	if v, ok := m.reg.Get(t.From); ok && !v.PreserveState {
		m.ctrl.ClearViewState(t.From)
	}
	m.status = fmt.Sprintf("%s → %s", t.From, t.To)
	return m, tea.Batch(cmds...)
}

func (m Model) onNavResult(msg navResultMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err != nil:
		m.status = fmt.Sprintf("Navigation failed: %v", msg.err)
	case msg.res.Outcome == nav.OutcomeBlocked:
		m.status = "Blocked: " + msg.res.Reason
	case msg.res.Outcome == nav.OutcomeSuperseded:
		m.status = "Superseded by a newer navigation"
	}
	return m, nil
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The confirm modal swallows all keys while a blocked navigation waits.
	if p, ok := m.ctrl.PendingNavigation(); ok {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.status = fmt.Sprintf("Confirmed move to %s", p.View)
			return m, m.confirmPending()
		case key.Matches(msg, m.keys.Cancel):
			m.ctrl.CancelPending()
			m.status = "Navigation cancelled"
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		if next, ok := m.neighbor(m.ctrl.ActiveView(), 1); ok {
			return m, m.requestNavigate(next)
		}

	case key.Matches(msg, m.keys.PrevTab):
		if prev, ok := m.neighbor(m.ctrl.ActiveView(), -1); ok {
			return m, m.requestNavigate(prev)
		}

	case key.Matches(msg, m.keys.Jump):
		idx := int(msg.String()[0] - '1')
		all := m.reg.All()
		if idx >= 0 && idx < len(all) {
			return m, m.requestNavigate(all[idx].ID)
		}

	case key.Matches(msg, m.keys.Back):
		if m.ctrl.Back() {
			m.status = "Back"
		} else {
			m.status = "Already at the oldest entry"
		}

	case key.Matches(msg, m.keys.Forward):
		if m.ctrl.Forward() {
			m.status = "Forward"
		} else {
			m.status = "Already at the newest entry"
		}

	case key.Matches(msg, m.keys.ScrollDown):
		m.scrollBy(1)

	case key.Matches(msg, m.keys.ScrollUp):
		m.scrollBy(-1)

	case key.Matches(msg, m.keys.ToggleDirty):
		return m.toggleDirty()

	case key.Matches(msg, m.keys.ToggleAuth):
		if m.session.Toggle() {
			m.status = "Signed in"
		} else {
			m.status = "Signed out"
		}
	}
	return m, nil
}

// scrollBy saves the active view's scroll offset through the facade, which is
// also what stamps the history entry created on the next departure.
func (m Model) scrollBy(delta int) {
	active := m.ctrl.ActiveView()
	pos := nav.Point{}
	if vs, ok := m.ctrl.ViewStateFor(active); ok && vs.Scroll != nil {
		pos = *vs.Scroll
	}
	pos.Y += delta
	if pos.Y < 0 {
		pos.Y = 0
	}
	if bottom := len(m.contentLines(active)) - 1; pos.Y > bottom {
		pos.Y = bottom
	}
	m.ctrl.SaveViewState(active, nav.ViewState{Scroll: &pos})
}

// toggleDirty registers (or removes) an unsaved-changes guard scoped to the
// active view, the way a form view would on first edit / on save.
func (m Model) toggleDirty() (tea.Model, tea.Cmd) {
	active := m.ctrl.ActiveView()
	if unregister, ok := m.dirty[active]; ok {
		unregister()
		delete(m.dirty, active)
		m.status = fmt.Sprintf("%s draft saved", active)
		return m, nil
	}
	unregister, err := m.ctrl.RegisterGuard(nav.Guard{
		ID:       "shell.unsaved." + string(active),
		View:     active,
		Priority: unsavedGuardPriority,
		Check: func(context.Context, nav.ViewID, nav.ViewID) (nav.Decision, error) {
			return nav.Decision{Reason: fmt.Sprintf("discard unsaved changes on %s?", active)}, nil
		},
	})
	if err != nil {
		m.status = fmt.Sprintf("Guard registration failed: %v", err)
		return m, nil
	}
	m.dirty[active] = unregister
	m.status = fmt.Sprintf("%s draft marked dirty", active)
	return m, nil
}

// neighbor returns the view delta steps away in registry order, wrapping.
func (m Model) neighbor(from nav.ViewID, delta int) (nav.ViewID, bool) {
	all := m.reg.All()
	if len(all) < 2 {
		return "", false
	}
	for i, v := range all {
		if v.ID == from {
			return all[(i+delta+len(all))%len(all)].ID, true
		}
	}
	return all[0].ID, true
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	contentHeight := m.height - 3
	if contentHeight < 5 {
		contentHeight = 5
	}

	st := m.ctrl.State()
	var body string
	if p, ok := m.ctrl.PendingNavigation(); ok {
		body = m.renderConfirmModal(p, width, contentHeight)
	} else {
		body = m.renderContent(st, width, contentHeight)
	}

	return strings.Join([]string{
		m.renderHeader(st, width),
		body,
		m.renderStatus(st, width),
		m.renderFooter(width),
	}, "\n")
}

func (m Model) renderHeader(st nav.State, width int) string {
	var tabs []string
	for _, v := range m.reg.All() {
		label := v.Title
		if v.Icon != "" {
			label = v.Icon + " " + label
		}
		if n := m.reg.BadgeFor(v.ID); n > 0 {
			label += " " + badgeStyle.Render(fmt.Sprintf(" %d ", n))
		}
		if v.ID == st.Active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	bar := headerAppStyle.Render(appName) + "  " +
		tabSepStyle.Render(" ") + strings.Join(tabs, tabSepStyle.Render("│"))
	return headerBarStyle.Width(width).Render(bar)
}

func (m Model) renderContent(st nav.State, width, height int) string {
	lines := m.contentLines(st.Active)
	top := 0
	if vs, ok := st.ViewState[st.Active]; ok && vs.Scroll != nil {
		top = vs.Scroll.Y
	}
	if top > len(lines)-1 {
		top = len(lines) - 1
	}

	visible := height - 3
	if visible < 1 {
		visible = 1
	}
	var rows []string
	if !m.ctrl.Preloaded(st.Active) {
		rows = append(rows, loadingStyle.Render("loading "+string(st.Active)+" …"))
	}
	if st.DeepLink != nil {
		rows = append(rows, paramStyle.Render(fmt.Sprintf("params: %v", st.DeepLink)))
	}
	if st.Transitioning {
		rows = append(rows, transitionStyle.Render("transitioning…"))
	}
	for i := top; i < len(lines) && len(rows) < visible; i++ {
		if i == top {
			rows = append(rows, lineStyle.Render(lines[i]))
			continue
		}
		rows = append(rows, dimLineStyle.Render(lines[i]))
	}
	return contentStyle.Width(width).Height(height).Render(strings.Join(rows, "\n"))
}

// contentLines fabricates placeholder content per view; a real shell would
// render the view's lazily loaded body here.
func (m Model) contentLines(view nav.ViewID) []string {
	v, _ := m.reg.Get(view)
	title := v.Title
	if title == "" {
		title = string(view)
	}
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = fmt.Sprintf("%s · entry %02d", title, i+1)
	}
	return lines
}

func (m Model) renderConfirmModal(p nav.Pending, width, height int) string {
	reason := fmt.Sprintf("Navigation to %q was blocked.", p.View)
	card := modalStyle.Render(
		modalTitleStyle.Render("Leave this view?") + "\n\n" +
			modalReasonStyle.Render(reason) + "\n\n" +
			helpKeyStyle.Render("y") + " confirm   " + helpKeyStyle.Render("n") + " stay",
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (m Model) renderStatus(st nav.State, width int) string {
	pos := fmt.Sprintf("history %d/%d", st.Index+1, len(st.History))
	session := "signed out"
	if m.session.SignedIn() {
		session = "signed in"
	}
	return statusBarStyle.Width(width).Render(fmt.Sprintf("%s  ·  %s  ·  %s", m.status, pos, session))
}

func (m Model) renderFooter(width int) string {
	help := []string{
		helpKeyStyle.Render("tab") + " switch",
		helpKeyStyle.Render("[ ]") + " back/fwd",
		helpKeyStyle.Render("j/k") + " scroll",
		helpKeyStyle.Render("x") + " dirty",
		helpKeyStyle.Render("l") + " session",
		helpKeyStyle.Render("q") + " quit",
	}
	return footerStyle.Width(width).Render(strings.Join(help, "  "))
}
