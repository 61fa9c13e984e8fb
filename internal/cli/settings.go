package cli

import (
	"context"
	"fmt"

	"github.com/idilsaglam/jiraglance/internal/render"
	"github.com/idilsaglam/jiraglance/internal/ui"
)

func doSettings(ctx context.Context, e *env, args []string) int {
	if len(args) == 0 {
		return e.usage("usage: jiraglance settings <show|set>")
	}
	switch args[0] {
	case "show":
		return doSettingsShow(ctx, e, args[1:])
	case "set":
		return doSettingsSet(ctx, e, args[1:])
	default:
		return e.usage("usage: jiraglance settings <show|set>")
	}
}

func doSettingsShow(ctx context.Context, e *env, args []string) int {
	fs := newFlags("settings show")
	format := fs.StringP("format", "f", "text", "output format")
	if err := fs.Parse(args); err != nil {
		return e.usage(err.Error())
	}
	out, err := render.ParseOutput(*format)
	if err != nil {
		return e.usage(err.Error())
	}

	st, err := e.store.Load(ctx)
	if err != nil {
		ui.Fail(e.opt.Stderr, "load: "+err.Error())
		return 1
	}
	switch out {
	case render.OutputJSON, render.OutputYAML:
		if err := render.Encode(e.opt.Stdout, out, st); err != nil {
			ui.Fail(e.opt.Stderr, err.Error())
			return 1
		}
	default:
		fmt.Fprintf(e.opt.Stdout, "project=%s\nuser=%s\n", st.Project, st.User)
	}
	return 0
}

func doSettingsSet(ctx context.Context, e *env, args []string) int {
	fs := newFlags("settings set")
	project := fs.StringP("project", "p", "", "default project")
	user := fs.StringP("user", "u", "", "default user")
	if err := fs.Parse(args); err != nil {
		return e.usage(err.Error())
	}
	if !fs.Changed("project") && !fs.Changed("user") {
		return e.usage("usage: jiraglance settings set [--project P] [--user U]")
	}

	st, err := e.store.Load(ctx)
	if err != nil {
		ui.Fail(e.opt.Stderr, "load: "+err.Error())
		return 1
	}
	if fs.Changed("project") {
		st.Project = *project
	}
	if fs.Changed("user") {
		st.User = *user
	}
	if err := e.store.Save(ctx, st); err != nil {
		ui.Fail(e.opt.Stderr, "save: "+err.Error())
		return 1
	}
	ui.OK(e.opt.Stdout, "saved")
	return 0
}
