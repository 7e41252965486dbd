package nhl

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultTimeout caps the total time of a single request.
	DefaultTimeout = 10 * time.Second
	// MaxRedirects is the redirect limit when FollowRedirects is enabled.
	MaxRedirects = 10
)

// ClientConfig is the transport configuration of a Client. It is copied into
// the client at construction and never changes afterwards.
type ClientConfig struct {
	Timeout         time.Duration
	SSLVerify       bool
	FollowRedirects bool
	// Debug logs every outgoing GET at debug level.
	Debug bool
}

// DefaultClientConfig returns a 10s timeout with certificate verification and
// redirect following enabled.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:         DefaultTimeout,
		SSLVerify:       true,
		FollowRedirects: true,
	}
}

// RedirectLimit is the number of redirects followed; 0 when disabled.
func (c ClientConfig) RedirectLimit() int {
	if c.FollowRedirects {
		return MaxRedirects
	}
	return 0
}

func (c ClientConfig) validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}
	return nil
}

// newHTTPClient builds the transport described by c.
func (c ClientConfig) newHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !c.SSLVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via ssl_verify=false
	}

	limit := c.RedirectLimit()
	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if limit == 0 {
				return http.ErrUseLastResponse
			}
			if len(via) >= limit {
				return fmt.Errorf("stopped after %d redirects", limit)
			}
			return nil
		},
	}
}

// Option configures a Client
type Option func(*clientOptions)

type clientOptions struct {
	config     ClientConfig
	httpClient *http.Client
	baseURLs   map[Endpoint]string
	observer   Observer
}

// WithConfig replaces the whole transport configuration.
func WithConfig(cfg ClientConfig) Option {
	return func(o *clientOptions) {
		o.config = cfg
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.config.Timeout = timeout
	}
}

// WithSSLVerify toggles TLS certificate verification.
func WithSSLVerify(verify bool) Option {
	return func(o *clientOptions) {
		o.config.SSLVerify = verify
	}
}

// WithFollowRedirects toggles redirect following.
func WithFollowRedirects(follow bool) Option {
	return func(o *clientOptions) {
		o.config.FollowRedirects = follow
	}
}

// WithDebug logs every request URL at debug level.
func WithDebug(debug bool) Option {
	return func(o *clientOptions) {
		o.config.Debug = debug
	}
}

// WithHTTPClient uses httpClient as-is instead of building one from the config.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithBaseURL points an endpoint at a different host, typically an httptest
// server. The production endpoint table is left untouched.
func WithBaseURL(endpoint Endpoint, baseURL string) Option {
	return func(o *clientOptions) {
		if o.baseURLs == nil {
			o.baseURLs = make(map[Endpoint]string)
		}
		o.baseURLs[endpoint] = baseURL
	}
}

// WithObserver registers a hook called once per request with its outcome.
func WithObserver(observer Observer) Option {
	return func(o *clientOptions) {
		o.observer = observer
	}
}
