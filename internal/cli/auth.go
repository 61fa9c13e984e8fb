package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/idilsaglam/jiraglance/internal/auth"
	"github.com/idilsaglam/jiraglance/internal/ui"
)

// ---------------------------------------------------
// Auth subcommands
// ---------------------------------------------------

func doAuth(e *env, args []string) int {
	if len(args) != 1 {
		return e.usage("usage: jiraglance auth <login|logout|status>")
	}
	switch args[0] {
	case "login":
		return doAuthLogin(e)
	case "logout":
		return doAuthLogout(e)
	case "status":
		return doAuthStatus(e)
	default:
		return e.usage("usage: jiraglance auth <login|logout|status>")
	}
}

func doAuthLogin(e *env) int {
	fmt.Fprint(e.opt.Stdout, "Paste your token (email:api-token or personal access token): ")
	line, err := bufio.NewReader(e.opt.Stdin).ReadString('\n')
	if err != nil && strings.TrimSpace(line) == "" {
		ui.Fail(e.opt.Stderr, "read token: "+err.Error())
		return 1
	}
	if err := e.vault.Set(line, e.opt.Now()); err != nil {
		ui.Fail(e.opt.Stderr, "save token: "+err.Error())
		return 1
	}
	ui.OK(e.opt.Stdout, "logged in")
	return 0
}

func doAuthLogout(e *env) int {
	ti, _ := e.vault.Get()
	if ti != nil && ti.Source == "env" {
		ui.OK(e.opt.Stdout, "token is provided by "+auth.EnvToken+" env var (nothing to delete)")
		return 0
	}
	if err := e.vault.Delete(); err != nil {
		ui.Fail(e.opt.Stderr, "logout: "+err.Error())
		return 1
	}
	ui.OK(e.opt.Stdout, "logged out")
	return 0
}

func doAuthStatus(e *env) int {
	ti, err := e.vault.Get()
	if err != nil {
		ui.Fail(e.opt.Stderr, err.Error())
		return 1
	}
	if ti == nil {
		ui.Hint(e.opt.Stdout, "not logged in")
		fmt.Fprintln(e.opt.Stdout, "Run: jiraglance auth login")
		return 0
	}
	scheme := "bearer"
	if strings.Contains(ti.Token, ":") {
		scheme = "basic"
	}
	fmt.Fprintf(e.opt.Stdout, "source: %s\n", ti.Source)
	fmt.Fprintf(e.opt.Stdout, "scheme: %s\n", scheme)
	if !ti.CreatedAt.IsZero() {
		fmt.Fprintf(e.opt.Stdout, "saved: %s\n", ti.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"))
	}
	fmt.Fprintf(e.opt.Stdout, "env override: %s\n", auth.EnvToken)
	return 0
}
