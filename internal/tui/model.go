package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/jiraglance/internal/model"
	"github.com/idilsaglam/jiraglance/internal/popup"
	"github.com/idilsaglam/jiraglance/internal/ui"
)

// Messages delivered by the sink and by flow commands.
type (
	statusMsg   string
	resultsMsg  popup.Results
	settingsMsg model.Settings
	startedMsg  struct{ err error }
	flowDoneMsg struct {
		flow popup.Flow
		err  error
	}
	savedMsg struct{ err error }
)

// Form fields in focus order. The status selector sits between user and days.
const (
	fieldProject = iota
	fieldUser
	fieldStatus
	fieldDays
	numFields
)

// SettingsSaver persists the popup's project and user.
type SettingsSaver interface {
	Save(ctx context.Context, s model.Settings) error
}

type modelTUI struct {
	ctx   context.Context
	ctrl  *popup.Controller
	saver SettingsSaver
	now   func() time.Time

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	project, user, days textinput.Model
	statuses            []string
	statusIdx           int
	focus               int

	ready    bool
	startErr error
	status   string
	inFlight int

	results    list.Model
	hasResults bool
	browsing   bool

	width, height int
}

func newModel(ctx context.Context, ctrl *popup.Controller, saver SettingsSaver, statuses []string) modelTUI {
	if len(statuses) == 0 {
		statuses = []string{"Open"}
	}
	mk := func(prompt, placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Prompt = prompt
		ti.Placeholder = placeholder
		ti.CharLimit = 120
		return ti
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.Current().Pending

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("result", "results")
	l.FilterInput.Prompt = "/ "

	w, h := widthHeight()
	m := modelTUI{
		ctx:      ctx,
		ctrl:     ctrl,
		saver:    saver,
		now:      time.Now,
		keys:     defaultKeys(),
		help:     help.New(),
		spinner:  sp,
		project:  mk("Project  ", "Sunshine"),
		user:     mk("User     ", "nyx.linden"),
		days:     mk("Days     ", "5"),
		statuses: statuses,
		results:  l,
		width:    w,
		height:   h,
		status:   "Checking JIRA login...",
	}
	m.days.CharLimit = 4
	m.days.Validate = digitsOnly
	m.project.Focus()
	return m
}

func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("days must be a number")
		}
	}
	return nil
}

func (m modelTUI) form() model.Form {
	return model.Form{
		Project:      strings.TrimSpace(m.project.Value()),
		Status:       m.statuses[m.statusIdx],
		DaysInStatus: strings.TrimSpace(m.days.Value()),
	}
}

// Init implements tea.Model.
func (m modelTUI) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start())
}

func (m modelTUI) start() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return startedMsg{err: ctrl.Start(ctx)}
	}
}

func (m modelTUI) queryTickets() tea.Cmd {
	ctrl, ctx, form := m.ctrl, m.ctx, m.form()
	return func() tea.Msg {
		return flowDoneMsg{flow: popup.FlowTickets, err: ctrl.QueryTickets(ctx, form)}
	}
}

func (m modelTUI) activityFeed() tea.Cmd {
	ctrl, ctx, user := m.ctrl, m.ctx, strings.TrimSpace(m.user.Value())
	return func() tea.Msg {
		return flowDoneMsg{flow: popup.FlowActivity, err: ctrl.ActivityFeed(ctx, user)}
	}
}

func (m modelTUI) save() tea.Cmd {
	saver, ctx := m.saver, m.ctx
	st := model.Settings{Project: strings.TrimSpace(m.project.Value()), User: strings.TrimSpace(m.user.Value())}
	return func() tea.Msg {
		if saver == nil {
			return savedMsg{err: fmt.Errorf("no settings store")}
		}
		return savedMsg{err: saver.Save(ctx, st)}
	}
}

func (m *modelTUI) setFocus(i int) {
	m.focus = (i + numFields) % numFields
	m.project.Blur()
	m.user.Blur()
	m.days.Blur()
	switch m.focus {
	case fieldProject:
		m.project.Focus()
	case fieldUser:
		m.user.Focus()
	case fieldDays:
		m.days.Focus()
	}
}

// Update implements tea.Model.
func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case startedMsg:
		m.startErr = msg.err
		m.ready = msg.err == nil
		if m.ready {
			m.status = "Ready."
		}
		return m, nil

	case settingsMsg:
		m.project.SetValue(msg.Project)
		m.user.SetValue(msg.User)
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case resultsMsg:
		r := popup.Results(msg)
		m.hasResults = r.Lines != nil
		cmd := m.results.SetItems(toItems(r, m.now()))
		m.results.ResetSelected()
		return m, cmd

	case flowDoneMsg:
		if m.inFlight > 0 {
			m.inFlight--
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = "ERROR. save: " + msg.err.Error()
		} else {
			m.status = "Settings saved."
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m modelTUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.browsing {
		if m.results.FilterState() != list.Filtering && key.Matches(msg, m.keys.Quit, m.keys.Results) {
			m.browsing = false
			return m, nil
		}
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case !m.ready:
		if key.Matches(msg, m.keys.Retry) && m.startErr != nil {
			m.startErr = nil
			m.status = "Checking JIRA login..."
			return m, m.start()
		}
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.setFocus(m.focus + 1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.setFocus(m.focus - 1)
		return m, nil
	case key.Matches(msg, m.keys.Query):
		if err := digitsOnly(strings.TrimSpace(m.days.Value())); err != nil {
			m.status = "ERROR. " + err.Error()
			return m, nil
		}
		m.inFlight++
		return m, m.queryTickets()
	case key.Matches(msg, m.keys.Feed):
		m.inFlight++
		return m, m.activityFeed()
	case key.Matches(msg, m.keys.Save):
		return m, m.save()
	case key.Matches(msg, m.keys.Results):
		if m.hasResults {
			m.browsing = true
		}
		return m, nil
	case m.focus == fieldStatus && key.Matches(msg, m.keys.StatusPrev):
		m.statusIdx = (m.statusIdx - 1 + len(m.statuses)) % len(m.statuses)
		return m, nil
	case m.focus == fieldStatus && key.Matches(msg, m.keys.StatusNext):
		m.statusIdx = (m.statusIdx + 1) % len(m.statuses)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldProject:
		m.project, cmd = m.project.Update(msg)
	case fieldUser:
		m.user, cmd = m.user.Update(msg)
	case fieldDays:
		prev := m.days.Value()
		m.days, cmd = m.days.Update(msg)
		if m.days.Err != nil {
			// textinput keeps invalid input; drop the keystroke instead
			m.days.SetValue(prev)
			m.days.Err = nil
		}
	}
	return m, cmd
}

// View implements tea.Model.
func (m modelTUI) View() string {
	t := ui.Current()
	var b strings.Builder

	b.WriteString(t.Title.Render("JIRA popup"))
	b.WriteString("\n\n")

	status := m.status
	switch {
	case m.startErr != nil:
		status = t.Error.Render(status) + "  " + t.Help.Render("ctrl+r retry")
	case strings.HasPrefix(status, "ERROR."):
		status = t.Error.Render(status)
	case !m.ready || m.inFlight > 0:
		status = m.spinner.View() + " " + t.Pending.Render(status)
	}
	b.WriteString(status)
	b.WriteString("\n\n")

	if m.ready {
		b.WriteString(m.project.View() + "\n")
		b.WriteString(m.user.View() + "\n")
		b.WriteString(m.statusView() + "\n")
		b.WriteString(m.days.View() + "\n")
	}

	if m.hasResults {
		w := m.width - 4
		if w < 20 {
			w = 20
		}
		h := m.height - 16
		if h < 3 {
			h = 3
		}
		m.results.SetSize(w, h)
		b.WriteString("\n")
		b.WriteString(m.results.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(ui.PanelString(b.String()))
}

func (m modelTUI) statusView() string {
	t := ui.Current()
	label := "Status   "
	val := "‹ " + m.statuses[m.statusIdx] + " ›"
	if m.focus == fieldStatus {
		return t.Accent.Render(label) + t.Selected.Render(val)
	}
	return label + val
}
