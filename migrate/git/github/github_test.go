package github_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gh "github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghprov "github.com/byte4ever/springforge/migrate/git/github"
)

func TestNewProvider_valid(t *testing.T) {
	t.Parallel()

	pv, err := ghprov.NewProvider(ghprov.Config{
		RepoOwner:   "org",
		Repo:        "repo",
		AccessToken: "tok",
	})

	require.NoError(t, err)
	assert.NotNil(t, pv)
}

func TestNewProvider_missing_owner(t *testing.T) {
	t.Parallel()

	pv, err := ghprov.NewProvider(ghprov.Config{
		Repo:        "repo",
		AccessToken: "tok",
	})

	assert.Nil(t, pv)
	assert.ErrorContains(t, err, "repo owner")
}

func TestNewProvider_missing_repo(t *testing.T) {
	t.Parallel()

	pv, err := ghprov.NewProvider(ghprov.Config{
		RepoOwner:   "org",
		AccessToken: "tok",
	})

	assert.Nil(t, pv)
	assert.ErrorContains(t, err, "repo must be set")
}

func TestNewProvider_missing_token(t *testing.T) {
	t.Parallel()

	pv, err := ghprov.NewProvider(ghprov.Config{
		RepoOwner: "org",
		Repo:      "repo",
	})

	assert.Nil(t, pv)
	assert.ErrorContains(t, err, "access token")
}

func TestNewProvider_enterprise(t *testing.T) {
	t.Parallel()

	pv, err := ghprov.NewProvider(ghprov.Config{
		RepoOwner:      "org",
		Repo:           "repo",
		AccessToken:    "tok",
		EnterpriseHost: "git.corp.example.com",
	})

	require.NoError(t, err)
	assert.NotNil(t, pv)
}

func TestProvider_CreatePR_draft_and_labels(
	t *testing.T,
) {
	t.Parallel()

	var (
		gotCreate []byte
		gotLabels []byte
	)

	mux := http.NewServeMux()
	mux.HandleFunc(
		"/repos/org/repo/pulls",
		func(w http.ResponseWriter, r *http.Request) {
			var err error

			gotCreate, err = io.ReadAll(r.Body)
			if err != nil {
				http.Error(
					w,
					"read error",
					http.StatusInternalServerError,
				)

				return
			}

			w.WriteHeader(http.StatusCreated)
			//nolint:errcheck // test server
			w.Write([]byte(
				`{"number": 7, "html_url": "http://x/pull/7"}`,
			))
		},
	)
	mux.HandleFunc(
		"/repos/org/repo/issues/7/labels",
		func(w http.ResponseWriter, r *http.Request) {
			var err error

			gotLabels, err = io.ReadAll(r.Body)
			if err != nil {
				http.Error(
					w,
					"read error",
					http.StatusInternalServerError,
				)

				return
			}

			//nolint:errcheck // test server
			w.Write([]byte(`[]`))
		},
	)

	ts := httptest.NewServer(mux)
	defer ts.Close()

	pv := ghprov.NewProviderWithClientForTest(
		testClient(t, ts.URL),
		ghprov.Config{
			RepoOwner: "org",
			Repo:      "repo",
			Draft:     true,
			Labels: []string{
				"migration", "spring-boot-4",
			},
		},
	)

	err := pv.CreatePR(
		context.Background(),
		"migration/boot-4",
		"main",
		"Migrate to Spring Boot 4",
		"automated fixes",
	)
	require.NoError(t, err)

	assert.Contains(
		t, string(gotCreate), `"draft":true`,
	)
	assert.Contains(
		t, string(gotCreate),
		`"head":"migration/boot-4"`,
	)
	assert.Contains(
		t, string(gotCreate),
		`"body":"automated fixes"`,
	)
	assert.Contains(
		t, string(gotLabels), `"migration"`,
	)
	assert.Contains(
		t, string(gotLabels), `"spring-boot-4"`,
	)
}

func TestProvider_CreatePR_already_exists(
	t *testing.T,
) {
	t.Parallel()

	labelled := false

	mux := http.NewServeMux()
	mux.HandleFunc(
		"/repos/org/repo/pulls",
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(
				http.StatusUnprocessableEntity,
			)
			//nolint:errcheck // test server
			w.Write([]byte(
				`{"message": "Validation Failed"}`,
			))
		},
	)
	mux.HandleFunc(
		"/repos/org/repo/issues/",
		func(_ http.ResponseWriter, _ *http.Request) {
			labelled = true
		},
	)

	ts := httptest.NewServer(mux)
	defer ts.Close()

	pv := ghprov.NewProviderWithClientForTest(
		testClient(t, ts.URL),
		ghprov.Config{
			RepoOwner: "org",
			Repo:      "repo",
			Labels:    []string{"migration"},
		},
	)

	err := pv.CreatePR(
		context.Background(),
		"migration/boot-4",
		"main",
		"Migrate to Spring Boot 4",
		"automated fixes",
	)

	// The existing PR is reused and not relabelled.
	assert.NoError(t, err)
	assert.False(t, labelled)
}

// testClient returns an API client pointed at a local
// test server.
func testClient(
	tb testing.TB,
	serverURL string,
) *gh.Client {
	tb.Helper()

	base, err := url.Parse(serverURL + "/")
	require.NoError(tb, err)

	client := gh.NewClient(nil)
	client.BaseURL = base

	return client
}
