package model

// SearchResult is the subset of /rest/api/2/search we read.
type SearchResult struct {
	Total  int     `json:"total" yaml:"total"`
	Issues []Issue `json:"issues" yaml:"issues"`
}

type Issue struct {
	ID     string      `json:"id,omitempty" yaml:"id,omitempty"`
	Key    string      `json:"key" yaml:"key"`
	Fields IssueFields `json:"fields" yaml:"fields"`
}

type IssueFields struct {
	Summary  string `json:"summary" yaml:"summary"`
	Status   Status `json:"status" yaml:"status"`
	Assignee *User  `json:"assignee,omitempty" yaml:"assignee,omitempty"`
}

type Status struct {
	Name string `json:"name" yaml:"name"`
}

type User struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	DisplayName string `json:"displayName" yaml:"displayName"`
}

// Project is what the startup probe returns.
type Project struct {
	ID   string `json:"id" yaml:"id"`
	Key  string `json:"key" yaml:"key"`
	Name string `json:"name" yaml:"name"`
}
