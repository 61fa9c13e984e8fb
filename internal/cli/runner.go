package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/idilsaglam/jiraglance/internal/auth"
	"github.com/idilsaglam/jiraglance/internal/config"
	"github.com/idilsaglam/jiraglance/internal/jira"
	"github.com/idilsaglam/jiraglance/internal/store/jsonstore"
	"github.com/idilsaglam/jiraglance/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	ConfigPath string
	BaseURL    string
	Theme      string
	LogLevel   string
	LogFile    string
	NoColor    bool

	// Env replaces the process environment when set (tests).
	Env map[string]string

	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Location renders feed timestamps; time.Local when nil.
	Location *time.Location
	Now      func() time.Time
}

func (o *Options) defaults() {
	if o.Env == nil {
		o.Env = config.EnvMap()
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// env is what every subcommand works with.
type env struct {
	opt    Options
	cfg    config.Config
	log    *slog.Logger
	vault  auth.Vault
	store  *jsonstore.Store
	client *jira.Client
}

func (e *env) endpoints() jira.Endpoints { return jira.Endpoints{Base: e.cfg.BaseURL} }

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		PrintHelp(opt.Stdout)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0
	}

	e, closeLog, err := setup(cmd, opt)
	if err != nil {
		ui.Fail(opt.Stderr, err.Error())
		return 1
	}
	defer closeLog()

	switch cmd {
	case "ui":
		return doUI(ctx, e)
	case "query":
		return doQuery(ctx, e, a)
	case "feed":
		return doFeed(ctx, e, a)
	case "check":
		return doCheck(ctx, e)
	case "settings":
		return doSettings(ctx, e, a)
	case "auth":
		return doAuth(e, a)
	}

	ui.Fail(opt.Stderr, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

func setup(cmd string, opt Options) (*env, func(), error) {
	cfg, err := config.Load(config.LoadInput{
		ConfigPath: opt.ConfigPath,
		Env:        opt.Env,
		Overrides: config.Overrides{
			BaseURL:  opt.BaseURL,
			Theme:    opt.Theme,
			LogLevel: opt.LogLevel,
			LogFile:  opt.LogFile,
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	ui.SetTheme(cfg.Theme)
	if opt.NoColor {
		ui.DisableColor()
	}

	logger, closeLog, err := newLogger(cfg, opt.Stderr, cmd == "ui")
	if err != nil {
		return nil, nil, err
	}

	storePath := cfg.SettingsPath
	if storePath == "" {
		if d := config.Dir(opt.Env); d != "" {
			storePath = filepath.Join(d, "settings.json")
		}
	}
	store, err := jsonstore.New(storePath)
	if err != nil {
		closeLog()
		return nil, nil, fmt.Errorf("settings: %w", err)
	}

	vault := auth.Vault{
		Dir:    config.Dir(opt.Env),
		Getenv: func(k string) string { return opt.Env[k] },
	}
	token, err := vault.Token()
	if err != nil {
		logger.Warn("credentials unreadable, continuing anonymously", "error", err)
	}

	clientCfg := jira.DefaultClientConfig()
	clientCfg.Auth = jira.TokenAuth(token)
	clientCfg.RateLimit = cfg.RateLimit
	clientCfg.Logger = logger

	return &env{
		opt:    opt,
		cfg:    cfg,
		log:    logger,
		vault:  vault,
		store:  store,
		client: jira.NewClient(clientCfg),
	}, closeLog, nil
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `jiraglance - a JIRA ticket and activity popup

Usage:
  jiraglance [root flags] <subcommand> [args]

Subcommands:
  ui                                 Interactive popup
  query [--project P] [--status S] --days N [--format F]
                                     Issues of P in status S for more than N days
  feed [--user U] [--format F]       Recent activity of U
  check                              Probe the JIRA login/project
  settings show                      Print saved settings
  settings set [--project P] [--user U]
                                     Save settings
  auth <login|logout|status>         Token authentication

Formats: text (default), html, json, yaml

Root flags:
  -c, --config PATH     config file (JSON with comments)
      --base-url URL    JIRA base URL
      --theme NAME      classic, neon or mono
      --log-level LVL   debug, info, warn, error
      --log-file PATH   write logs to PATH
      --no-color        disable colors

Examples:
  jiraglance ui
  jiraglance query --project Sunshine --status Open --days 5
  jiraglance feed --user nyx.linden --format html
`)
}
