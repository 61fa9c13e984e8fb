package cli

import (
	"context"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/idilsaglam/jiraglance/internal/jira"
	"github.com/idilsaglam/jiraglance/internal/model"
	"github.com/idilsaglam/jiraglance/internal/popup"
	"github.com/idilsaglam/jiraglance/internal/render"
	"github.com/idilsaglam/jiraglance/internal/tui"
	"github.com/idilsaglam/jiraglance/internal/ui"
)

// recordSink keeps what the controller displays so a one-shot command can
// print it once the flow is over.
type recordSink struct {
	statuses []string
	results  *popup.Results
	settings model.Settings
}

func (s *recordSink) SetStatus(msg string) { s.statuses = append(s.statuses, msg) }

func (s *recordSink) ShowResults(r popup.Results) { s.results = &r }

func (s *recordSink) FillSettings(st model.Settings) { s.settings = st }

func (s *recordSink) last() string {
	if len(s.statuses) == 0 {
		return ""
	}
	return s.statuses[len(s.statuses)-1]
}

// payload is the json/yaml shape of a flow result.
type payload struct {
	URL     string                `json:"url" yaml:"url"`
	Lines   []string              `json:"lines" yaml:"lines"`
	Issues  []model.Issue         `json:"issues,omitempty" yaml:"issues,omitempty"`
	Entries []model.ActivityEntry `json:"entries,omitempty" yaml:"entries,omitempty"`
}

func (e *env) controller(sink popup.Sink) *popup.Controller {
	return popup.New(popup.Options{
		Client:       e.client,
		Settings:     e.store,
		Sink:         sink,
		Endpoints:    e.endpoints(),
		ProbeProject: e.cfg.ProbeProject,
		Location:     e.opt.Location,
		Logger:       e.log,
	})
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (e *env) usage(msg string) int {
	ui.Fail(e.opt.Stderr, msg)
	return 2
}

// -------------- subcommand impls ----------------

func doUI(ctx context.Context, e *env) int {
	err := tui.Run(ctx, tui.Deps{
		Client:       e.client,
		Settings:     e.store,
		Endpoints:    e.endpoints(),
		ProbeProject: e.cfg.ProbeProject,
		Statuses:     e.cfg.Statuses,
		Location:     e.opt.Location,
		Logger:       e.log,
	})
	if err != nil {
		ui.Fail(e.opt.Stderr, "tui: "+err.Error())
		return 1
	}
	return 0
}

func doQuery(ctx context.Context, e *env, args []string) int {
	fs := newFlags("query")
	project := fs.StringP("project", "p", "", "project key or name (default: saved setting)")
	status := fs.StringP("status", "s", "Open", "issue status")
	days := fs.StringP("days", "d", "", "days in status")
	format := fs.StringP("format", "f", "text", "output format")
	if err := fs.Parse(args); err != nil {
		return e.usage("usage: jiraglance query [--project P] [--status S] --days N: " + err.Error())
	}
	out, err := render.ParseOutput(*format)
	if err != nil {
		return e.usage(err.Error())
	}

	sink := &recordSink{}
	ctrl := e.controller(sink)
	if err := ctrl.Start(ctx); err != nil {
		ui.Fail(e.opt.Stderr, sink.last())
		return 1
	}

	form := model.Form{Project: *project, Status: *status, DaysInStatus: *days}
	if !fs.Changed("project") {
		form.Project = ctrl.Settings().Project
	}
	return e.finish(sink, out, ctrl.QueryTickets(ctx, form))
}

func doFeed(ctx context.Context, e *env, args []string) int {
	fs := newFlags("feed")
	user := fs.StringP("user", "u", "", "JIRA user name (default: saved setting)")
	format := fs.StringP("format", "f", "text", "output format")
	if err := fs.Parse(args); err != nil {
		return e.usage("usage: jiraglance feed [--user U]: " + err.Error())
	}
	out, err := render.ParseOutput(*format)
	if err != nil {
		return e.usage(err.Error())
	}

	sink := &recordSink{}
	ctrl := e.controller(sink)
	if err := ctrl.Start(ctx); err != nil {
		ui.Fail(e.opt.Stderr, sink.last())
		return 1
	}

	u := *user
	if !fs.Changed("user") {
		u = ctrl.Settings().User
	}
	return e.finish(sink, out, ctrl.ActivityFeed(ctx, u))
}

func doCheck(ctx context.Context, e *env) int {
	sink := &recordSink{}
	if err := e.controller(sink).Start(ctx); err != nil {
		ui.Fail(e.opt.Stderr, sink.last())
		return 1
	}
	ui.OK(e.opt.Stdout, fmt.Sprintf("JIRA reachable at %s (project %s)", e.cfg.BaseURL, e.cfg.ProbeProject))
	for _, p := range []string{e.cfg.Sources.Global, e.cfg.Sources.Explicit} {
		if p != "" {
			ui.Hint(e.opt.Stdout, "config: "+p)
		}
	}
	return 0
}

// finish prints a flow outcome in the requested format.
func (e *env) finish(sink *recordSink, out render.Output, err error) int {
	stdout, stderr := e.opt.Stdout, e.opt.Stderr
	if err != nil {
		ui.Fail(stderr, sink.last())
		if jira.KindOf(err) == jira.KindValidation {
			return 2
		}
		return 1
	}
	r := sink.results
	if r == nil {
		// superseded by a newer request; nothing to print
		return 0
	}

	switch out {
	case render.OutputJSON, render.OutputYAML:
		p := payload{URL: r.URL, Lines: r.Lines, Issues: r.Issues, Entries: r.Entries}
		if p.Lines == nil {
			p.Lines = []string{}
		}
		if err := render.Encode(stdout, out, p); err != nil {
			ui.Fail(stderr, err.Error())
			return 1
		}
		return 0
	}

	if r.Lines == nil {
		ui.Hint(stderr, sink.last())
		return 0
	}
	if out == render.OutputHTML {
		fmt.Fprintln(stdout, render.HTML(r.Lines))
		return 0
	}
	ui.Hint(stderr, sink.last())
	ui.Panel(stdout, ui.List(r.Lines, 100))
	return 0
}
