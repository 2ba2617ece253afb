package languagetool_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/texspell/texspell/internal/adapters/outbound/languagetool"
	"github.com/texspell/texspell/internal/domain"
)

const frenchCheck = `{
  "software": {"name": "LanguageTool"},
  "matches": [{
    "message": "Faute de frappe possible trouvée.",
    "replacements": [{"value": "très"}, {"value": "tré"}],
    "offset": 8,
    "length": 3,
    "context": {"text": "je suis trè beau", "offset": 8, "length": 3},
    "rule": {"id": "FR_SPELLING_RULE", "issueType": "misspelling", "category": {"name": "Typos"}}
  }]
}`

type recorded struct {
	method, path string
	form         url.Values
}

func newServer(t *testing.T, status int, body string, rec *recorded) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rec != nil {
			rec.method = r.Method
			rec.path = r.URL.Path
			_ = r.ParseForm()
			rec.form = r.PostForm
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck_SendsFormAndNormalizes(t *testing.T) {
	var rec recorded
	srv := newServer(t, http.StatusOK, frenchCheck, &rec)
	c := languagetool.New(srv.URL+"/", languagetool.Options{}, nil)

	res, err := c.Check(context.Background(), domain.CheckRequest{Text: "je suis trè beau", Language: "fr"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/v2/check", rec.path)
	assert.Equal(t, "je suis trè beau", rec.form.Get("text"))
	assert.Equal(t, "fr", rec.form.Get("language"))
	assert.Empty(t, rec.form.Get("disabledRules"))
	assert.Empty(t, rec.form.Get("level"))

	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, 8, d.Offset)
	assert.Equal(t, 3, d.Length)
	assert.Equal(t, "trè", d.FlaggedText)
	assert.Equal(t, []string{"très", "tré"}, d.Replacements)
	assert.Equal(t, "misspelling", d.IssueType)
}

func TestCheck_OptionalFormFields(t *testing.T) {
	var rec recorded
	srv := newServer(t, http.StatusOK, `{"matches":[]}`, &rec)
	c := languagetool.New(srv.URL, languagetool.Options{
		DisabledRules: []string{"WHITESPACE_RULE", "COMMA_PARENTHESIS_WHITESPACE"},
		Picky:         true,
		MotherTongue:  "de-DE",
	}, nil)

	_, err := c.Check(context.Background(), domain.CheckRequest{Text: "x", Language: "en-US"})
	require.NoError(t, err)
	assert.Equal(t, "WHITESPACE_RULE,COMMA_PARENTHESIS_WHITESPACE", rec.form.Get("disabledRules"))
	assert.Equal(t, "picky", rec.form.Get("level"))
	assert.Equal(t, "de-DE", rec.form.Get("motherTongue"))
}

func TestCheck_Non2xxIsUnavailable(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "Error: Missing 'language' parameter", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)
	c := languagetool.New(srv.URL, languagetool.Options{}, nil)

	_, err := c.Check(context.Background(), domain.CheckRequest{Text: "x", Language: ""})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "Missing 'language' parameter")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "no automatic retry")
}

func TestCheck_UnreachableIsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := languagetool.New(base, languagetool.Options{Timeout: 2 * time.Second}, nil)
	_, err := c.Check(context.Background(), domain.CheckRequest{Text: "x", Language: "en-US"})
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestCheck_TimeoutIsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := languagetool.New(srv.URL, languagetool.Options{Timeout: 50 * time.Millisecond}, nil)
	_, err := c.Check(context.Background(), domain.CheckRequest{Text: "x", Language: "en-US"})
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestCheck_CancelledContextIsNotNetwork(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"matches":[]}`, nil)
	c := languagetool.New(srv.URL, languagetool.Options{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Check(ctx, domain.CheckRequest{Text: "x", Language: "en-US"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrNetwork)
}

func TestCheck_UnknownShapeIsMalformed(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"result":"ok"}`, nil)
	c := languagetool.New(srv.URL, languagetool.Options{}, nil)

	res, err := c.Check(context.Background(), domain.CheckRequest{Text: "x", Language: "en-US"})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestLanguages(t *testing.T) {
	var rec recorded
	srv := newServer(t, http.StatusOK, `[{"name":"French","code":"fr","longCode":"fr"}]`, &rec)
	c := languagetool.New(srv.URL, languagetool.Options{}, nil)

	langs, err := c.Languages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/v2/languages", rec.path)
	assert.Equal(t, []domain.Language{{Code: "fr", Name: "French"}}, langs)
}

func TestLanguages_ServerError(t *testing.T) {
	srv := newServer(t, http.StatusServiceUnavailable, ``, nil)
	c := languagetool.New(srv.URL, languagetool.Options{}, nil)

	_, err := c.Languages(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestClientsDoNotShareConfiguration(t *testing.T) {
	a := newServer(t, http.StatusOK, `[{"name":"French","longCode":"fr"}]`, nil)
	b := newServer(t, http.StatusOK, `[{"name":"German","longCode":"de-DE"}]`, nil)

	la, err := languagetool.New(a.URL, languagetool.Options{}, nil).Languages(context.Background())
	require.NoError(t, err)
	lb, err := languagetool.New(b.URL, languagetool.Options{}, nil).Languages(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "fr", la[0].Code)
	assert.Equal(t, "de-DE", lb[0].Code)
}
