package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/idilsaglam/jiraglance/internal/popup"
	"github.com/idilsaglam/jiraglance/internal/ui"
)

// resultItem adapts one rendered line to bubbles/list.Item.
type resultItem struct {
	text string
	desc string
}

func (i resultItem) Title() string       { return i.text }
func (i resultItem) Description() string { return i.desc }
func (i resultItem) FilterValue() string { return i.text }

// toItems pairs each rendered line with a short description: status and
// assignee for issues, a relative time for feed entries.
func toItems(r popup.Results, now time.Time) []list.Item {
	items := make([]list.Item, 0, len(r.Lines))
	for i, ln := range r.Lines {
		it := resultItem{text: ln}
		switch {
		case i < len(r.Issues):
			f := r.Issues[i].Fields
			parts := []string{}
			if f.Status.Name != "" {
				parts = append(parts, f.Status.Name)
			}
			if f.Assignee != nil && f.Assignee.DisplayName != "" {
				parts = append(parts, f.Assignee.DisplayName)
			}
			it.desc = strings.Join(parts, " · ")
		case i < len(r.Entries):
			if t, err := time.Parse(time.RFC3339, r.Entries[i].Updated); err == nil {
				it.desc = humanize.RelTime(t, now, "ago", "from now")
			}
		}
		items = append(items, it)
	}
	return items
}

// Custom delegate to control how results render (one line each)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(resultItem)
	t := ui.Current()

	line := it.text
	if it.desc != "" {
		line += "  " + t.Muted.Render(it.desc)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(t.SymCursor)
	}
	fmt.Fprint(w, prefix+line)
}
