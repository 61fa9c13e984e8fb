// Package tui is the interactive popup: a Bubble Tea program driving a
// popup.Controller.
package tui

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/idilsaglam/jiraglance/internal/jira"
	"github.com/idilsaglam/jiraglance/internal/model"
	"github.com/idilsaglam/jiraglance/internal/popup"
)

// SettingsStore loads and saves the popup preferences.
type SettingsStore interface {
	popup.SettingsLoader
	SettingsSaver
}

// Deps is everything the popup needs from the outside.
type Deps struct {
	Client       popup.Requester
	Settings     SettingsStore
	Endpoints    jira.Endpoints
	ProbeProject string
	Statuses     []string
	Location     *time.Location
	Logger       *slog.Logger
}

// programSink forwards controller output into the program's event loop.
type programSink struct {
	send func(tea.Msg)
}

func (s *programSink) SetStatus(msg string)           { s.send(statusMsg(msg)) }
func (s *programSink) ShowResults(r popup.Results)    { s.send(resultsMsg(r)) }
func (s *programSink) FillSettings(st model.Settings) { s.send(settingsMsg(st)) }

// Run starts the popup and blocks until the user quits.
func Run(ctx context.Context, d Deps, opts ...tea.ProgramOption) error {
	sink := &programSink{}
	ctrl := popup.New(popup.Options{
		Client:       d.Client,
		Settings:     d.Settings,
		Sink:         sink,
		Endpoints:    d.Endpoints,
		ProbeProject: d.ProbeProject,
		Location:     d.Location,
		Logger:       d.Logger,
	})

	m := newModel(ctx, ctrl, d.Settings, d.Statuses)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	sink.send = p.Send

	_, err := p.Run()
	return err
}

// widthHeight is the terminal size before the first WindowSizeMsg arrives.
func widthHeight() (int, int) {
	w, h := 80, 24
	if tw, th, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 && th > 0 {
		w, h = tw, th
	}
	return w, h
}
