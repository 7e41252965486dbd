package nhl

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoint_BaseURL(t *testing.T) {
	tests := []struct {
		endpoint Endpoint
		want     string
		name     string
	}{
		{EndpointWebAPI, "https://api-web.nhle.com/v1/", "web"},
		{EndpointCoreAPI, "https://api.nhle.com/", "core"},
		{EndpointStatsAPI, "https://api.nhle.com/stats/rest/", "stats"},
		{EndpointSearchAPI, "https://search.d3.nhle.com/api/v1/", "search"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.endpoint.BaseURL())
			assert.Equal(t, tt.name, tt.endpoint.String())
		})
	}

	assert.Equal(t, "", Endpoint(99).BaseURL())
	assert.Equal(t, "unknown", Endpoint(99).String())
}

func TestEndpoints_AreAbsolute(t *testing.T) {
	for _, e := range Endpoints() {
		base := e.BaseURL()
		require.NotEmpty(t, base, e.String())

		u, err := url.Parse(base)
		require.NoError(t, err)
		assert.True(t, u.IsAbs(), "%s base URL must be absolute", e)
		assert.NotEmpty(t, u.Host)
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		resource string
		want     string
	}{
		{"both slashes", "https://x.test/v1/", "/standings/now", "https://x.test/v1/standings/now"},
		{"base slash only", "https://x.test/v1/", "standings/now", "https://x.test/v1/standings/now"},
		{"resource slash only", "https://x.test/v1", "/standings/now", "https://x.test/v1/standings/now"},
		{"no slashes", "https://x.test/v1", "standings/now", "https://x.test/v1/standings/now"},
		{"empty resource keeps trailing slash", "https://x.test/v1/", "", "https://x.test/v1/"},
		{"empty resource keeps bare base", "https://x.test/v1", "", "https://x.test/v1"},
		{"resource is a single slash", "https://x.test/v1/", "/", "https://x.test/v1/"},
		{"resource with trailing slash kept", "https://x.test", "schedule/", "https://x.test/schedule/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinURL(tt.base, tt.resource))
		})
	}
}

func TestJoinURL_ExactlyOneSeparator(t *testing.T) {
	for _, base := range []string{"https://api-web.nhle.com/v1", "https://api-web.nhle.com/v1/"} {
		for _, resource := range []string{"standings/now", "/standings/now"} {
			got := JoinURL(base, resource)
			assert.Equal(t, "https://api-web.nhle.com/v1/standings/now", got)
			assert.False(t, strings.Contains(strings.TrimPrefix(got, "https://"), "//"))
		}
	}

	for _, e := range Endpoints() {
		assert.Equal(t, e.BaseURL(), JoinURL(e.BaseURL(), ""))
	}
}
