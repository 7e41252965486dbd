package nhl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standingsBody = `{
	"wildCardIndicator": true,
	"standings": [
		{
			"conferenceAbbrev": "E",
			"conferenceName": "Eastern",
			"divisionAbbrev": "A",
			"divisionName": "Atlantic",
			"teamName": {"default": "Toronto Maple Leafs", "fr": "Maple Leafs de Toronto"},
			"teamCommonName": {"default": "Maple Leafs"},
			"teamAbbrev": {"default": "TOR"},
			"teamLogo": "https://assets.nhle.com/logos/nhl/svg/TOR_light.svg",
			"gamesPlayed": 82,
			"wins": 46,
			"losses": 26,
			"otLosses": 10,
			"points": 102,
			"goalFor": 303,
			"goalAgainst": 263,
			"goalDifferential": 40,
			"streakCode": "W",
			"streakCount": 2
		},
		{
			"conferenceAbbrev": "W",
			"conferenceName": "Western",
			"divisionAbbrev": "P",
			"divisionName": "Pacific",
			"teamName": {"default": "Vancouver Canucks"},
			"teamCommonName": {"default": "Canucks"},
			"teamAbbrev": {"default": "VAN"},
			"teamLogo": "https://assets.nhle.com/logos/nhl/svg/VAN_light.svg",
			"gamesPlayed": 82,
			"wins": 50,
			"losses": 23,
			"otLosses": 9,
			"points": 109,
			"goalFor": 279,
			"goalAgainst": 223,
			"goalDifferential": 56,
			"streakCode": "L",
			"streakCount": 1
		}
	]
}`

type observation struct {
	endpoint Endpoint
	outcome  Outcome
	status   int
}

type recordingObserver struct {
	mu   sync.Mutex
	seen []observation
}

func (r *recordingObserver) ObserveRequest(endpoint Endpoint, outcome Outcome, statusCode int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, observation{endpoint, outcome, statusCode})
}

func (r *recordingObserver) all() []observation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]observation(nil), r.seen...)
}

// newTestServer routes every endpoint of the returned client to handler.
// Web API resources are served under /v1/, stats under /stats/rest/, search
// under /api/v1/ and core at the root.
func newTestServer(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return newClientFor(t, server, opts...), server
}

func newClientFor(t *testing.T, server *httptest.Server, opts ...Option) *Client {
	t.Helper()

	base := []Option{
		WithBaseURL(EndpointWebAPI, server.URL+"/v1/"),
		WithBaseURL(EndpointCoreAPI, server.URL+"/"),
		WithBaseURL(EndpointStatsAPI, server.URL+"/stats/rest/"),
		WithBaseURL(EndpointSearchAPI, server.URL+"/api/v1/"),
	}
	client, err := NewClient(zerolog.Nop(), append(base, opts...)...)
	require.NoError(t, err)
	return client
}

func TestFetchJSON_Success(t *testing.T) {
	var gotPath, gotAccept, gotUA string
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, standingsBody)
	})

	resp, err := FetchJSON[StandingsResponse](context.Background(), client, EndpointWebAPI, "standings/now", nil)
	require.NoError(t, err)

	assert.Equal(t, "/v1/standings/now", gotPath)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, userAgent, gotUA)

	require.Len(t, resp.Standings, 2)
	tor := resp.Standings[0]
	assert.Equal(t, "TOR", tor.TeamAbbrev.Default)
	assert.Equal(t, "Maple Leafs de Toronto", tor.TeamName.French)
	assert.Equal(t, 102, tor.Points)
	assert.Equal(t, 40, tor.GoalDifferential)
	assert.Equal(t, "Vancouver Canucks: 109 pts (50-23-9)", resp.Standings[1].String())
}

func TestFetchJSON_LeadingSlashResource(t *testing.T) {
	var gotPath string
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, standingsBody)
	})

	_, err := FetchJSON[StandingsResponse](context.Background(), client, EndpointWebAPI, "/standings/2024-04-18", nil)
	require.NoError(t, err)
	assert.Equal(t, "/v1/standings/2024-04-18", gotPath)
}

func TestFetchJSON_StatusErrors(t *testing.T) {
	tests := []struct {
		status int
		kind   ErrorKind
	}{
		{http.StatusNotFound, KindResourceNotFound},
		{http.StatusTooManyRequests, KindRateLimitExceeded},
		{http.StatusBadRequest, KindBadRequest},
		{http.StatusUnauthorized, KindUnauthorized},
		{http.StatusInternalServerError, KindServerError},
		{http.StatusServiceUnavailable, KindServerError},
		{http.StatusForbidden, KindGeneric},
		{http.StatusTeapot, KindGeneric},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				// a well-formed body must still not turn an error status into success
				fmt.Fprint(w, standingsBody)
			})

			_, err := FetchJSON[StandingsResponse](context.Background(), client, EndpointWebAPI, "standings/now", nil)
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Contains(t, apiErr.Message, "/v1/standings/now")
		})
	}
}

func TestFetchJSON_NotFoundBodyIsNotParsed(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `<html>not json at all{{{`)
	})

	_, err := FetchJSON[StandingsResponse](context.Background(), client, EndpointWebAPI, "standings/1900-01-01", nil)
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.False(t, errors.As(err, &decodeErr))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindResourceNotFound, apiErr.Kind)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFetchJSON_DecodeFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing required field", `{"standings": [{"teamName": {"default": "Toronto Maple Leafs"}, "points": 102}]}`},
		{"missing top-level field", `{"wildCardIndicator": true}`},
		{"null list", `{"standings": null}`},
		{"wrong type", `{"standings": "TOR"}`},
		{"wrong nested type", `{"standings": [{"teamAbbrev": {"default": "TOR"}, "points": "many"}]}`},
		{"truncated", `{"standings": [`},
		{"not json", `<!doctype html>`},
		{"empty body", ``},
		{"trailing garbage", `{"standings": [{"teamAbbrev": {"default": "TOR"}}]} trailing-garbage`},
		{"second value", `{"standings": []} {"standings": []}`},
		{"null body", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			})

			_, err := FetchJSON[StandingsResponse](context.Background(), client, EndpointWebAPI, "standings/now", nil)
			require.Error(t, err)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr), "got %T: %v", err, err)
			assert.Contains(t, decodeErr.URL, "/v1/standings/now")

			var apiErr *APIError
			assert.False(t, errors.As(err, &apiErr))
		})
	}
}

func TestFetchJSON_SliceDecodeFailures(t *testing.T) {
	for _, body := range []string{`[] {`, `[]]`, `null`, ` null `} {
		t.Run(body, func(t *testing.T) {
			client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			})

			results, err := FetchJSON[[]PlayerSearchResult](context.Background(), client, EndpointSearchAPI, "search/player", nil)
			require.Error(t, err)
			assert.Nil(t, results)

			var decodeErr *DecodeError
			assert.True(t, errors.As(err, &decodeErr), "got %T: %v", err, err)
		})
	}
}

func TestFetchJSON_TrailingWhitespaceAccepted(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "[]\n\n  ")
	})

	results, err := FetchJSON[[]PlayerSearchResult](context.Background(), client, EndpointSearchAPI, "search/player", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

func TestFetchJSON_UnknownFieldsIgnored(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"standings": [{"teamAbbrev": {"default": "BOS"}, "brandNewField": [1, 2, 3]}], "extra": {}}`)
	})

	resp, err := FetchJSON[StandingsResponse](context.Background(), client, EndpointWebAPI, "standings/now", nil)
	require.NoError(t, err)
	require.Len(t, resp.Standings, 1)
	assert.Equal(t, "BOS", resp.Standings[0].TeamAbbrev.Default)
}

func TestFetchJSON_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newClientFor(t, server)
	server.Close()

	_, err := FetchJSON[StandingsResponse](context.Background(), client, EndpointWebAPI, "standings/now", nil)
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.False(t, transportErr.Timeout())

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestFetchJSON_Timeout(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}, WithTimeout(50*time.Millisecond))

	_, err := FetchJSON[StandingsResponse](context.Background(), client, EndpointWebAPI, "standings/now", nil)
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.True(t, transportErr.Timeout())
}

func TestFetchJSON_ContextCanceled(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, standingsBody)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FetchJSON[StandingsResponse](ctx, client, EndpointWebAPI, "standings/now", nil)
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFetchJSON_QueryEncoding(t *testing.T) {
	var got url.Values
	var gotPath string
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		got = r.URL.Query()
		fmt.Fprint(w, `[]`)
	})

	query := url.Values{}
	query.Set("q", "Connor McDavid & co")
	query.Set("limit", "5")

	results, err := FetchJSON[[]PlayerSearchResult](context.Background(), client, EndpointSearchAPI, "search/player", query)
	require.NoError(t, err)
	assert.Empty(t, results)

	assert.Equal(t, "/api/v1/search/player", gotPath)
	assert.Equal(t, "Connor McDavid & co", got.Get("q"))
	assert.Equal(t, "5", got.Get("limit"))
}

func TestFetchJSON_Redirects(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/standings/now" {
			http.Redirect(w, r, "/v1/standings/2024-04-18", http.StatusFound)
			return
		}
		fmt.Fprint(w, standingsBody)
	}

	t.Run("followed by default", func(t *testing.T) {
		client, _ := newTestServer(t, handler)

		resp, err := FetchJSON[StandingsResponse](context.Background(), client, EndpointWebAPI, "standings/now", nil)
		require.NoError(t, err)
		assert.Len(t, resp.Standings, 2)
	})

	t.Run("returned as-is when disabled", func(t *testing.T) {
		client, _ := newTestServer(t, handler, WithFollowRedirects(false))

		_, err := FetchJSON[StandingsResponse](context.Background(), client, EndpointWebAPI, "standings/now", nil)
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, KindGeneric, apiErr.Kind)
		assert.Equal(t, http.StatusFound, apiErr.StatusCode)
	})

	t.Run("loop stops at the limit", func(t *testing.T) {
		var hits int
		var mu sync.Mutex
		client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			hits++
			mu.Unlock()
			http.Redirect(w, r, r.URL.Path, http.StatusFound)
		})

		_, err := FetchJSON[StandingsResponse](context.Background(), client, EndpointWebAPI, "standings/now", nil)
		require.Error(t, err)

		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))

		mu.Lock()
		defer mu.Unlock()
		assert.LessOrEqual(t, hits, MaxRedirects+1)
	})
}

func TestFetchJSON_SSLVerify(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, standingsBody)
	}))
	t.Cleanup(server.Close)

	t.Run("self-signed certificate rejected", func(t *testing.T) {
		client := newClientFor(t, server)

		_, err := FetchJSON[StandingsResponse](context.Background(), client, EndpointWebAPI, "standings/now", nil)
		require.Error(t, err)
		var transportErr *TransportError
		assert.True(t, errors.As(err, &transportErr))
	})

	t.Run("accepted when verification disabled", func(t *testing.T) {
		client := newClientFor(t, server, WithSSLVerify(false))

		resp, err := FetchJSON[StandingsResponse](context.Background(), client, EndpointWebAPI, "standings/now", nil)
		require.NoError(t, err)
		assert.Len(t, resp.Standings, 2)
	})
}

func TestFetchJSON_Observer(t *testing.T) {
	obs := &recordingObserver{}
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/standings/now":
			fmt.Fprint(w, standingsBody)
		case "/v1/standings/bad":
			fmt.Fprint(w, `{"standings": "nope"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, WithObserver(obs))

	ctx := context.Background()
	_, err := FetchJSON[StandingsResponse](ctx, client, EndpointWebAPI, "standings/now", nil)
	require.NoError(t, err)
	_, err = FetchJSON[StandingsResponse](ctx, client, EndpointWebAPI, "standings/bad", nil)
	require.Error(t, err)
	_, err = FetchJSON[FranchisesResponse](ctx, client, EndpointStatsAPI, "en/franchise", nil)
	require.Error(t, err)

	assert.Equal(t, []observation{
		{EndpointWebAPI, OutcomeSuccess, 200},
		{EndpointWebAPI, OutcomeDecodeError, 200},
		{EndpointStatsAPI, OutcomeHTTPError, 404},
	}, obs.all())
}

func TestFetchJSON_DebugLogging(t *testing.T) {
	var buf bytes.Buffer
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, standingsBody)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(zerolog.New(&buf).Level(zerolog.DebugLevel),
		WithBaseURL(EndpointWebAPI, server.URL+"/v1/"),
		WithDebug(true),
	)
	require.NoError(t, err)

	_, err = FetchJSON[StandingsResponse](context.Background(), client, EndpointWebAPI, "standings/now", nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Making NHL API request")
	assert.Contains(t, buf.String(), server.URL+"/v1/standings/now")
}

func TestFetchJSON_ConcurrentUse(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, standingsBody)
	})

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := FetchJSON[StandingsResponse](context.Background(), client, EndpointWebAPI, "standings/now", nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
