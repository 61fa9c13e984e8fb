package jira

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuery_Format(t *testing.T) {
	t.Parallel()
	got := BuildQuery("https://jira.example.com", "Sunshine", "Open", "5")
	assert.Equal(t,
		"https://jira.example.com/rest/api/2/search?jql=project=Sunshine+and+status=Open+and+status+changed+to+Open+before+-5d&fields=id,status,key,assignee,summary&maxresults=100",
		got)
	assert.Contains(t, got, "project=Sunshine+and+status=Open+and+status+changed+to+Open+before+-5d")
}

func TestBuildQuery_DefaultBaseAndTrailingSlash(t *testing.T) {
	t.Parallel()
	assert.Contains(t, BuildQuery("", "SUN", "Closed", "1"), DefaultBaseURL+"/rest/api/2/search?jql=project=SUN")
	assert.Contains(t, BuildQuery("http://h/", "SUN", "Closed", "1"), "http://h/rest/api/2/search?")
}

func TestBuildQuery_DoesNotEscape(t *testing.T) {
	t.Parallel()
	got := BuildQuery("http://h", "My Project", "In Progress", "3")
	assert.Contains(t, got, "project=My Project+and+status=In Progress")
}

func TestEndpoints(t *testing.T) {
	t.Parallel()
	e := Endpoints{Base: "https://jira.example.com/"}
	assert.Equal(t, "https://jira.example.com/activity?maxResults=50&streams=user+IS+nyx.linden&providers=issues", e.Activity("nyx.linden"))
	assert.Equal(t, "https://jira.example.com/rest/api/2/project/SUN", e.Project("SUN"))
	assert.Equal(t, BuildQuery(e.Base, "SUN", "Open", "2"), e.Search("SUN", "Open", "2"))
}
