package nhl

import "strings"

// Endpoint identifies one of the NHL's public API hosts.
type Endpoint int

const (
	// EndpointWebAPI serves game center, schedule and standings data.
	EndpointWebAPI Endpoint = iota
	// EndpointCoreAPI is the legacy root API host.
	EndpointCoreAPI
	// EndpointStatsAPI serves the stats REST resources (franchises, reports).
	EndpointStatsAPI
	// EndpointSearchAPI serves player search.
	EndpointSearchAPI
)

var endpointBaseURLs = map[Endpoint]string{
	EndpointWebAPI:    "https://api-web.nhle.com/v1/",
	EndpointCoreAPI:   "https://api.nhle.com/",
	EndpointStatsAPI:  "https://api.nhle.com/stats/rest/",
	EndpointSearchAPI: "https://search.d3.nhle.com/api/v1/",
}

var endpointNames = map[Endpoint]string{
	EndpointWebAPI:    "web",
	EndpointCoreAPI:   "core",
	EndpointStatsAPI:  "stats",
	EndpointSearchAPI: "search",
}

// Endpoints lists every known endpoint.
func Endpoints() []Endpoint {
	return []Endpoint{EndpointWebAPI, EndpointCoreAPI, EndpointStatsAPI, EndpointSearchAPI}
}

// BaseURL returns the fixed base URL for e, or "" for an unknown value.
func (e Endpoint) BaseURL() string {
	return endpointBaseURLs[e]
}

// String returns a short label, used in logs and metric labels.
func (e Endpoint) String() string {
	if name, ok := endpointNames[e]; ok {
		return name
	}
	return "unknown"
}

// JoinURL appends resource to base with exactly one '/' between them. An empty
// resource returns base unchanged.
func JoinURL(base, resource string) string {
	if resource == "" {
		return base
	}

	baseSlash := strings.HasSuffix(base, "/")
	resourceSlash := strings.HasPrefix(resource, "/")

	switch {
	case baseSlash && resourceSlash:
		return base + resource[1:]
	case !baseSlash && !resourceSlash:
		return base + "/" + resource
	default:
		return base + resource
	}
}
