package jira

import (
	"strconv"
	"strings"
)

// DefaultBaseURL is the instance the popup was written against.
const DefaultBaseURL = "https://jira.secondlife.com"

const (
	searchFields     = "id,status,key,assignee,summary"
	searchMaxResults = 100
	activityMax      = 50
)

// BuildQuery returns the JQL search URL for issues of project that have been
// in status for more than daysInStatus days.
//
// Nothing is escaped: project and status are spliced into the JQL as typed.
// Callers make sure project and daysInStatus are non-empty.
func BuildQuery(base, project, status, daysInStatus string) string {
	var b strings.Builder
	b.WriteString(trimBase(base))
	b.WriteString("/rest/api/2/search?jql=")
	b.WriteString("project=" + project)
	b.WriteString("+and+status=" + status)
	b.WriteString("+and+status+changed+to+" + status)
	b.WriteString("+before+-" + daysInStatus + "d")
	b.WriteString("&fields=" + searchFields)
	b.WriteString("&maxresults=" + strconv.Itoa(searchMaxResults))
	return b.String()
}

// Endpoints builds every URL the popup requests against one JIRA host.
type Endpoints struct {
	Base string
}

func (e Endpoints) Search(project, status, daysInStatus string) string {
	return BuildQuery(e.Base, project, status, daysInStatus)
}

// Activity returns the activity stream URL for user.
func (e Endpoints) Activity(user string) string {
	return trimBase(e.Base) + "/activity?maxResults=" + strconv.Itoa(activityMax) + "&streams=user+IS+" + user + "&providers=issues"
}

// Project returns the project lookup URL used as a login probe.
func (e Endpoints) Project(id string) string {
	return trimBase(e.Base) + "/rest/api/2/project/" + id
}

func trimBase(base string) string {
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimSuffix(base, "/")
}
