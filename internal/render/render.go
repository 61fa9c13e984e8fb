// Package render turns JIRA results into display lines.
package render

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/idilsaglam/jiraglance/internal/model"
)

// ErrNoResults is returned instead of an empty list.
var ErrNoResults = errors.New("no results")

// Render applies format to every item, keeping order. An empty or nil input
// yields ErrNoResults and no list at all.
func Render[T any](items []T, format func(T) string) ([]string, error) {
	if len(items) == 0 {
		return nil, ErrNoResults
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, format(it))
	}
	return out, nil
}

// FormatIssue renders "<key>: <summary>".
func FormatIssue(is model.Issue) string {
	return is.Key + ": " + is.Fields.Summary
}

// TimestampLayout mirrors a browser's default locale rendering.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// EntryFormatter renders "<local timestamp> - <title text>" with timestamps
// shown in loc (time.Local when nil).
func EntryFormatter(loc *time.Location) func(model.ActivityEntry) string {
	if loc == nil {
		loc = time.Local
	}
	return func(e model.ActivityEntry) string {
		return LocalTime(e.Updated, loc) + " - " + TextContent(e.Title)
	}
}

// LocalTime formats an RFC 3339 timestamp in loc. Unparseable input is
// returned unchanged.
func LocalTime(ts string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(ts))
	if err != nil {
		return ts
	}
	return t.In(loc).Format(TimestampLayout)
}

// TextContent parses s as an HTML fragment and returns its text with tags
// dropped and entities decoded.
func TextContent(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
