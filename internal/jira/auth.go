package jira

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// Authorizer decorates outgoing requests with credentials.
type Authorizer interface {
	Apply(req *http.Request)
}

// NoAuth sends requests anonymously; JIRA then relies on its own session
// handling and answers 401 for private projects.
type NoAuth struct{}

func (NoAuth) Apply(*http.Request) {}

// BasicAuth uses HTTP Basic Authentication (Atlassian email + API token).
type BasicAuth struct {
	Username string
	Password string
}

func (a BasicAuth) Apply(req *http.Request) {
	if a.Username == "" && a.Password == "" {
		return
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(a.Username + ":" + a.Password))
	req.Header.Set("Authorization", "Basic "+credentials)
}

// BearerToken uses a personal access token.
type BearerToken struct {
	Token string
}

func (a BearerToken) Apply(req *http.Request) {
	if a.Token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+a.Token)
}

// TokenAuth picks the scheme from the token shape: "user:secret" is sent as
// Basic, anything else as a Bearer personal access token.
func TokenAuth(token string) Authorizer {
	token = strings.TrimSpace(token)
	if token == "" {
		return NoAuth{}
	}
	if user, secret, ok := strings.Cut(token, ":"); ok {
		return BasicAuth{Username: user, Password: secret}
	}
	return BearerToken{Token: token}
}
