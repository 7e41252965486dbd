// Package nhl provides a typed client for the public NHL web, stats and
// search APIs.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Endpoints: the fixed table of API hosts and URL joining
//   - FetchJSON: the generic GET-and-decode dispatcher every resource method uses
//   - Errors: a status-code classifier plus transport, decode and parse errors
//   - GameDate and Season: the values used to build date and season path segments
//   - Client: resource methods (standings, schedule, game center, roster, search)
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := nhl.NewClient(logger, nhl.WithTimeout(5*time.Second))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	standings, err := client.Standings(ctx, nhl.Now())
//
// Any record type can be fetched directly:
//
//	week, err := nhl.FetchJSON[nhl.WeeklySchedule](ctx, client, nhl.EndpointWebAPI, "schedule/2024-10-19", nil)
//
// # Dates
//
// nhl.Now() is sent to the API as the literal "now" and resolved by the
// server. DailySchedule is the one exception: it resolves Now to the local
// date because it must pick a single day out of a weekly response.
//
// # Error Handling
//
// Nothing is retried or replaced with a default value. Failures are:
//
//   - *APIError: a non-2xx response, with Kind and the original StatusCode
//   - *TransportError: no response at all (DNS, TLS, connect, timeout)
//   - *DecodeError: a 2xx body that does not match the requested type
//   - *ParseError: a malformed date or season supplied by the caller
//
// APIError unwraps to a sentinel, so either form works:
//
//	if errors.Is(err, nhl.ErrNotFound) { ... }
//
//	var apiErr *nhl.APIError
//	if errors.As(err, &apiErr) && apiErr.IsRetryable() { ... }
package nhl
