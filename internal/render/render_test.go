package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/jiraglance/internal/model"
)

func TestRender_EmptySignalsNoResults(t *testing.T) {
	t.Parallel()
	lines, err := Render([]model.Issue{}, FormatIssue)
	require.ErrorIs(t, err, ErrNoResults)
	assert.Nil(t, lines)

	lines, err = Render[model.Issue](nil, FormatIssue)
	require.ErrorIs(t, err, ErrNoResults)
	assert.Nil(t, lines)
}

func TestRender_SingleIssue(t *testing.T) {
	t.Parallel()
	issues := []model.Issue{{
		Key:    "SUN-1",
		Fields: model.IssueFields{Summary: "Fix bug", Status: model.Status{Name: "Open"}},
	}}
	lines, err := Render(issues, FormatIssue)
	require.NoError(t, err)
	assert.Equal(t, []string{"SUN-1: Fix bug"}, lines)
}

func TestRender_KeepsOrder(t *testing.T) {
	t.Parallel()
	lines, err := Render([]int{3, 1, 2}, func(i int) string { return string(rune('a' + i)) })
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"d", "b", "c"}, lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestEntryFormatter_TwoEntriesInDocumentOrder(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("PST", -8*3600)
	entries := []model.ActivityEntry{
		{Title: `<a href="/u/nyx">Nyx Linden</a> resolved SUN-1 &amp; closed it`, Updated: "2017-03-09T19:33:03.873Z"},
		{Title: "Nyx Linden created SUN-2", Updated: "2017-03-08T10:00:00Z"},
	}
	lines, err := Render(entries, EntryFormatter(loc))
	require.NoError(t, err)

	want := []string{
		"3/9/2017, 11:33:03 AM - Nyx Linden resolved SUN-1 & closed it",
		"3/8/2017, 2:00:00 AM - Nyx Linden created SUN-2",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalTime_Unparseable(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "yesterday", LocalTime("yesterday", time.UTC))
}

func TestTextContent(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a <b> c", TextContent("a &lt;b&gt; <i>c</i>"))
	assert.Equal(t, "", TextContent(""))
}

func TestHTML_Escapes(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "<ul><li>SUN-1: a &lt;b&gt;</li><li>x</li></ul>", HTML([]string{"SUN-1: a <b>", "x"}))
}

func TestEncode(t *testing.T) {
	t.Parallel()
	v := model.Settings{Project: "SUN", User: "nyx"}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, OutputJSON, v))
	assert.JSONEq(t, `{"project":"SUN","user":"nyx"}`, buf.String())

	buf.Reset()
	require.NoError(t, Encode(&buf, OutputYAML, map[string]string{"project": "SUN"}))
	assert.Equal(t, "project: SUN\n", buf.String())

	assert.Error(t, Encode(&buf, OutputText, v))
}

func TestParseOutput(t *testing.T) {
	t.Parallel()
	o, err := ParseOutput("")
	require.NoError(t, err)
	assert.Equal(t, OutputText, o)
	o, err = ParseOutput("YAML")
	require.NoError(t, err)
	assert.Equal(t, OutputYAML, o)
	_, err = ParseOutput("xml")
	assert.Error(t, err)
}
