package jira

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{"total":1,"issues":[{"id":"10001","key":"SUN-1","fields":{"summary":"Fix bug","status":{"name":"Open"},"assignee":{"name":"nyx","displayName":"Nyx Linden"}}}]}`

const feedBody = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <title type="html">&lt;a href="/u/nyx"&gt;Nyx Linden&lt;/a&gt; resolved SUN-1</title>
    <updated>2017-03-09T19:33:03.873Z</updated>
  </entry>
  <entry>
    <title type="html">Nyx Linden created SUN-2</title>
    <updated>2017-03-08T10:00:00.000Z</updated>
  </entry>
</feed>`

func serve(t *testing.T, status int, contentType, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRequest_JSONSuccess(t *testing.T) {
	t.Parallel()
	srv := serve(t, http.StatusOK, "application/json", searchBody)

	res, err := NewClient(nil).Search(context.Background(), BuildQuery(srv.URL, "SUN", "Open", "5"))
	require.NoError(t, err)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "SUN-1", res.Issues[0].Key)
	assert.Equal(t, "Fix bug", res.Issues[0].Fields.Summary)
	assert.Equal(t, "Open", res.Issues[0].Fields.Status.Name)
	require.NotNil(t, res.Issues[0].Fields.Assignee)
	assert.Equal(t, "Nyx Linden", res.Issues[0].Fields.Assignee.DisplayName)
}

func TestRequest_ErrorMessagesFailRegardlessOfStatus(t *testing.T) {
	t.Parallel()
	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusNotFound} {
		srv := serve(t, status, "application/json",
			`{"errorMessages":["The value 'Nope' does not exist for the field 'project'.","second"],"errors":{}}`)

		_, err := NewClient(nil).Request(context.Background(), srv.URL, FormatJSON)
		require.Error(t, err, "status %d", status)
		assert.Equal(t, KindAPI, KindOf(err))
		assert.Equal(t, "The value 'Nope' does not exist for the field 'project'.", err.Error())
	}
}

func TestRequest_ErrorMessagesAlsoCheckedForXML(t *testing.T) {
	t.Parallel()
	srv := serve(t, http.StatusOK, "application/json", `{"errorMessages":["no stream"]}`)

	_, err := NewClient(nil).Activity(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, KindAPI, KindOf(err))
	assert.Equal(t, "no stream", err.Error())
}

func TestRequest_EmptyErrorMessagesResolves(t *testing.T) {
	t.Parallel()
	srv := serve(t, http.StatusOK, "application/json", `{"errorMessages":[],"issues":[]}`)

	res, err := NewClient(nil).Search(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Empty(t, res.Issues)
}

func TestRequest_UnauthorizedOverridesBody(t *testing.T) {
	t.Parallel()
	srv := serve(t, http.StatusUnauthorized, "application/json", `{"errorMessages":["session expired"]}`)

	_, err := NewClient(nil).Request(context.Background(), srv.URL, FormatJSON)
	require.Error(t, err)
	assert.Equal(t, KindAuth, KindOf(err))
	assert.Equal(t, MsgAuth, err.Error())
	assert.True(t, errors.Is(err, &Error{Kind: KindAuth}))
}

func TestRequest_NetworkError(t *testing.T) {
	t.Parallel()
	srv := serve(t, http.StatusOK, "application/json", "{}")
	url := srv.URL
	srv.Close()

	_, err := NewClient(nil).Request(context.Background(), url, FormatJSON)
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
	assert.Equal(t, MsgNetwork, err.Error())

	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	assert.NotNil(t, jerr.Unwrap())
}

func TestRequest_OtherStatusIsAPIError(t *testing.T) {
	t.Parallel()
	srv := serve(t, http.StatusInternalServerError, "text/html", "<html>oops</html>")

	_, err := NewClient(nil).Request(context.Background(), srv.URL, FormatJSON)
	require.Error(t, err)
	assert.Equal(t, KindAPI, KindOf(err))
	assert.Equal(t, "HTTP 500", err.Error())
}

func TestRequest_MalformedBody(t *testing.T) {
	t.Parallel()
	srv := serve(t, http.StatusOK, "application/json", "not json")

	_, err := NewClient(nil).Request(context.Background(), srv.URL, FormatJSON)
	require.Error(t, err)
	assert.Equal(t, KindAPI, KindOf(err))
	assert.Contains(t, err.Error(), "malformed json response")

	srv = serve(t, http.StatusOK, "application/xml", "<feed><entry></feed>")
	_, err = NewClient(nil).Request(context.Background(), srv.URL, FormatXML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed xml response")
}

func TestActivity_ParsesEntriesInOrder(t *testing.T) {
	t.Parallel()
	srv := serve(t, http.StatusOK, "application/atom+xml", feedBody)

	feed, err := NewClient(nil).Activity(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, feed.Entries, 2)
	assert.Equal(t, `<a href="/u/nyx">Nyx Linden</a> resolved SUN-1`, feed.Entries[0].Title)
	assert.Equal(t, "2017-03-09T19:33:03.873Z", feed.Entries[0].Updated)
	assert.Equal(t, "Nyx Linden created SUN-2", feed.Entries[1].Title)
}

func TestActivity_WrongRootIsAPIError(t *testing.T) {
	t.Parallel()
	srv := serve(t, http.StatusOK, "application/xml", "<rss><channel/></rss>")

	_, err := NewClient(nil).Activity(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, KindAPI, KindOf(err))
}

func TestRequest_AppliesAuthAndAccept(t *testing.T) {
	t.Parallel()
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"id":"1","key":"SUN","name":"Sunshine"}`))
	}))
	defer srv.Close()

	cfg := DefaultClientConfig()
	cfg.Auth = TokenAuth("secret-pat")
	p, err := NewClient(cfg).Project(context.Background(), Endpoints{Base: srv.URL}.Project("SUN"))
	require.NoError(t, err)
	assert.Equal(t, "Sunshine", p.Name)
	assert.Equal(t, "Bearer secret-pat", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestTokenAuth(t *testing.T) {
	t.Parallel()
	assert.Equal(t, NoAuth{}, TokenAuth("  "))
	assert.Equal(t, BearerToken{Token: "abc"}, TokenAuth("abc"))
	assert.Equal(t, BasicAuth{Username: "me@example.com", Password: "tok"}, TokenAuth("me@example.com:tok"))
}

func TestRequest_CanceledContext(t *testing.T) {
	t.Parallel()
	srv := serve(t, http.StatusOK, "application/json", "{}")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultClientConfig()
	cfg.RateLimit = 1
	_, err := NewClient(cfg).Request(ctx, srv.URL, FormatJSON)
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestRequest_SpacesInQueryAreSent(t *testing.T) {
	t.Parallel()
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"total":0,"issues":[]}`))
	}))
	defer srv.Close()

	res, err := NewClient(nil).Search(context.Background(), BuildQuery(srv.URL, "SUN", "In Progress", "5"))
	require.NoError(t, err)
	assert.Empty(t, res.Issues)
	assert.Contains(t, gotQuery, "status=In%20Progress")
	assert.Contains(t, gotQuery, "changed+to+In%20Progress+before")

	_, err = NewClient(nil).Activity(context.Background(), Endpoints{Base: srv.URL}.Activity("nyx linden"))
	require.Error(t, err) // JSON body for an XML request
	assert.Contains(t, gotQuery, "streams=user+IS+nyx%20linden")
}
