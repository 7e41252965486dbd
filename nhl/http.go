package nhl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

const userAgent = "nhlapi-go"

// Validator is implemented by response records that have required fields.
// FetchJSON calls it after decoding and reports a failure as a DecodeError.
type Validator interface {
	Validate() error
}

// Outcome is the result class of a single request.
type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeHTTPError      Outcome = "http_error"
	OutcomeTransportError Outcome = "transport_error"
	OutcomeDecodeError    Outcome = "decode_error"
)

// Observer receives one call per finished request. Implementations must be
// safe for concurrent use.
type Observer interface {
	ObserveRequest(endpoint Endpoint, outcome Outcome, statusCode int, elapsed time.Duration)
}

// FetchJSON issues a GET for resource on endpoint and decodes a 2xx JSON body
// into T. Non-2xx responses become an *APIError without reading the body;
// failures before a response exists become a *TransportError; a body that
// does not decode into T (or fails T's Validate) becomes a *DecodeError.
func FetchJSON[T any](ctx context.Context, c *Client, endpoint Endpoint, resource string, query url.Values) (T, error) {
	var zero T

	fullURL := JoinURL(c.baseURL(endpoint), resource)
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	start := time.Now()
	resp, err := c.get(ctx, fullURL)
	if err != nil {
		c.observe(endpoint, OutcomeTransportError, 0, start)
		return zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(endpoint, OutcomeHTTPError, resp.StatusCode, start)
		apiErr := Classify(resp.StatusCode, fullURL)
		c.logger.Debug().
			Str("endpoint", endpoint.String()).
			Str("url", fullURL).
			Int("status", resp.StatusCode).
			Str("kind", apiErr.Kind.String()).
			Msg("NHL API request failed")
		return zero, apiErr
	}

	var out T
	if err := decodeBody(resp.Body, &out); err != nil {
		if isTransportFailure(err) {
			c.observe(endpoint, OutcomeTransportError, resp.StatusCode, start)
			return zero, &TransportError{URL: fullURL, Err: err}
		}
		c.observe(endpoint, OutcomeDecodeError, resp.StatusCode, start)
		return zero, &DecodeError{URL: fullURL, Err: err}
	}
	if v, ok := any(&out).(Validator); ok {
		if err := v.Validate(); err != nil {
			c.observe(endpoint, OutcomeDecodeError, resp.StatusCode, start)
			return zero, &DecodeError{URL: fullURL, Err: err}
		}
	}

	c.observe(endpoint, OutcomeSuccess, resp.StatusCode, start)
	return out, nil
}

// decodeBody decodes exactly one JSON value from body into out. Trailing data
// and a top-level null are rejected.
func decodeBody(body io.Reader, out any) error {
	dec := json.NewDecoder(body)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil || !isTransportFailure(err) {
			return errors.New("unexpected data after top-level JSON value")
		}
		return err
	}
	if bytes.Equal(raw, []byte("null")) {
		return errors.New("response body is null")
	}

	return json.Unmarshal(raw, out)
}

// get sends a single GET. Any error is returned as a *TransportError.
func (c *Client) get(ctx context.Context, fullURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &TransportError{URL: fullURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	if c.config.Debug {
		c.logger.Debug().Str("method", http.MethodGet).Str("url", fullURL).Msg("Making NHL API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: fullURL, Err: err}
	}
	return resp, nil
}

func (c *Client) observe(endpoint Endpoint, outcome Outcome, statusCode int, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveRequest(endpoint, outcome, statusCode, time.Since(start))
}

// isTransportFailure separates a body read that was cut short by the network
// or the context from a body that arrived intact but is malformed.
func isTransportFailure(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
