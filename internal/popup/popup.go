// Package popup sequences the JIRA popup: a startup login probe, settings
// load, then two independent flows (ticket query and activity feed) whose
// output goes to an injected Sink.
package popup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/idilsaglam/jiraglance/internal/jira"
	"github.com/idilsaglam/jiraglance/internal/model"
	"github.com/idilsaglam/jiraglance/internal/render"
)

// ErrNotReady is returned by flows started before Start succeeded.
var ErrNotReady = errors.New("popup is not ready")

// Status lines shown by the flows.
const (
	msgNoSearchResults   = "There are no search results."
	msgNoActivityResults = "There are no activity results."
	msgProjectRequired   = "Project is required."
	msgDaysRequired      = "Days in status is required."
	msgUserRequired      = "User is required."
)

// Requester performs the JIRA exchanges. *jira.Client implements it.
type Requester interface {
	Project(ctx context.Context, url string) (*model.Project, error)
	Search(ctx context.Context, url string) (*model.SearchResult, error)
	Activity(ctx context.Context, url string) (*model.Feed, error)
}

// SettingsLoader provides the persisted preferences.
type SettingsLoader interface {
	Load(ctx context.Context) (model.Settings, error)
}

// Sink is the display surface. Calls are serialized by the controller and
// must not call back into it.
type Sink interface {
	SetStatus(msg string)
	// ShowResults replaces the result container. Lines is nil when the
	// flow found nothing; the sink should hide the container then.
	ShowResults(r Results)
	FillSettings(s model.Settings)
}

// Results is one rendered flow outcome.
type Results struct {
	Flow    Flow
	URL     string
	Lines   []string
	Issues  []model.Issue
	Entries []model.ActivityEntry
}

// Options wires a Controller.
type Options struct {
	Client       Requester
	Settings     SettingsLoader
	Sink         Sink
	Endpoints    jira.Endpoints
	ProbeProject string
	Location     *time.Location // timestamps in the feed; time.Local when nil
	Logger       *slog.Logger
}

// Controller drives startup and the two flows. It is safe for concurrent
// use: each flow call tags itself with a generation and only the latest
// generation of a flow may write to the sink.
type Controller struct {
	client    Requester
	settings  SettingsLoader
	sink      Sink
	endpoints jira.Endpoints
	probe     string
	loc       *time.Location
	log       *slog.Logger

	gens [numFlows]atomic.Uint64

	mu     sync.Mutex // guards everything below and serializes sink writes
	state  State
	flows  [numFlows]FlowState
	loaded model.Settings
	stale  int
}

func New(opt Options) *Controller {
	logger := opt.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	loc := opt.Location
	if loc == nil {
		loc = time.Local
	}
	probe := opt.ProbeProject
	if probe == "" {
		probe = "SUN"
	}
	return &Controller{
		client:    opt.Client,
		settings:  opt.Settings,
		sink:      opt.Sink,
		endpoints: opt.Endpoints,
		probe:     probe,
		loc:       loc,
		log:       logger,
		loaded:    model.DefaultSettings(),
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) FlowState(f Flow) FlowState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flows[f]
}

// Settings returns the preferences loaded on entry into Ready.
func (c *Controller) Settings() model.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Stale reports how many completions were dropped because a newer request
// of the same flow had been issued.
func (c *Controller) Stale() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stale
}

func (c *Controller) setState(s State) {
	c.log.Debug("popup state", "from", c.state, "to", s)
	c.state = s
}

// Start probes the project URL. Success loads settings, fills the sink and
// moves to Ready; failure shows the error and moves to Error. Start may be
// called again from Error. While another Start is verifying it returns
// ErrNotReady.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateReady:
		c.mu.Unlock()
		return nil
	case StateVerifying:
		c.mu.Unlock()
		return ErrNotReady
	}
	c.setState(StateVerifying)
	c.mu.Unlock()

	url := c.endpoints.Project(c.probe)
	if _, err := c.client.Project(ctx, url); err != nil {
		c.mu.Lock()
		c.setState(StateError)
		c.sink.SetStatus(errorStatus(err))
		c.mu.Unlock()
		c.log.Warn("project probe failed", "url", url, "error", err)
		return err
	}

	st := model.DefaultSettings()
	if c.settings != nil {
		loaded, err := c.settings.Load(ctx)
		if err != nil {
			c.log.Warn("settings load failed, using defaults", "error", err)
		} else {
			st = loaded
		}
	}

	c.mu.Lock()
	c.loaded = st
	c.setState(StateReady)
	c.sink.FillSettings(st)
	c.mu.Unlock()
	c.log.Info("popup ready", "project", st.Project, "user", st.User)
	return nil
}

// QueryTickets runs the ticket query flow.
func (c *Controller) QueryTickets(ctx context.Context, form model.Form) error {
	gen, err := c.begin(FlowTickets)
	if err != nil {
		return err
	}

	switch {
	case strings.TrimSpace(form.Project) == "":
		return c.fail(FlowTickets, gen, jira.ValidationError(msgProjectRequired))
	case strings.TrimSpace(form.DaysInStatus) == "":
		return c.fail(FlowTickets, gen, jira.ValidationError(msgDaysRequired))
	}

	url := c.endpoints.Search(form.Project, form.Status, form.DaysInStatus)
	c.commit(FlowTickets, gen, func() {
		c.sink.SetStatus("Performing JIRA search for " + url)
	})

	res, err := c.client.Search(ctx, url)
	if err != nil {
		return c.fail(FlowTickets, gen, err)
	}

	lines, err := render.Render(res.Issues, render.FormatIssue)
	c.commit(FlowTickets, gen, func() {
		c.sink.SetStatus("Query term: " + url)
		if errors.Is(err, render.ErrNoResults) {
			c.sink.SetStatus(msgNoSearchResults)
		}
		c.sink.ShowResults(Results{Flow: FlowTickets, URL: url, Lines: lines, Issues: res.Issues})
		c.flows[FlowTickets] = FlowRendered
	})
	return nil
}

// ActivityFeed runs the activity feed flow for user.
func (c *Controller) ActivityFeed(ctx context.Context, user string) error {
	gen, err := c.begin(FlowActivity)
	if err != nil {
		return err
	}
	if strings.TrimSpace(user) == "" {
		return c.fail(FlowActivity, gen, jira.ValidationError(msgUserRequired))
	}

	url := c.endpoints.Activity(user)
	feed, err := c.client.Activity(ctx, url)
	if err != nil {
		return c.fail(FlowActivity, gen, err)
	}

	lines, err := render.Render(feed.Entries, render.EntryFormatter(c.loc))
	c.commit(FlowActivity, gen, func() {
		c.sink.SetStatus("Activity query: " + url)
		if errors.Is(err, render.ErrNoResults) {
			c.sink.SetStatus(msgNoActivityResults)
		}
		c.sink.ShowResults(Results{Flow: FlowActivity, URL: url, Lines: lines, Entries: feed.Entries})
		c.flows[FlowActivity] = FlowRendered
	})
	return nil
}

// begin issues a new generation for f.
func (c *Controller) begin(f Flow) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return 0, ErrNotReady
	}
	gen := c.gens[f].Add(1)
	c.flows[f] = FlowInFlight
	c.log.Debug("flow started", "flow", f, "gen", gen)
	return gen, nil
}

// commit runs write only if gen is still the latest generation of f.
func (c *Controller) commit(f Flow, gen uint64, write func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if latest := c.gens[f].Load(); latest != gen {
		c.stale++
		c.log.Debug("stale result dropped", "flow", f, "gen", gen, "latest", latest)
		return false
	}
	write()
	return true
}

func (c *Controller) fail(f Flow, gen uint64, err error) error {
	c.commit(f, gen, func() {
		c.sink.SetStatus(errorStatus(err))
		c.flows[f] = FlowIdle
	})
	c.log.Debug("flow failed", "flow", f, "gen", gen, "kind", jira.KindOf(err), "error", err)
	return err
}

func errorStatus(err error) string {
	return "ERROR. " + err.Error()
}
