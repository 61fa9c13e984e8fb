// Package jira talks to a JIRA server: it builds the search, activity and
// project URLs and performs single GET exchanges, classifying every failure
// into an *Error.
package jira
