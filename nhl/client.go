package nhl

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
)

// Client represents an NHL API client. It holds no per-request state and is
// safe for concurrent use.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	baseURLs   map[Endpoint]string
	observer   Observer
	logger     zerolog.Logger
}

// NewClient creates a new NHL client. Without options it uses
// DefaultClientConfig.
func NewClient(logger zerolog.Logger, opts ...Option) (*Client, error) {
	o := clientOptions{config: DefaultClientConfig()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.config.validate(); err != nil {
		return nil, err
	}

	baseURLs := make(map[Endpoint]string, len(endpointBaseURLs))
	for e, base := range endpointBaseURLs {
		baseURLs[e] = base
	}
	for e, base := range o.baseURLs {
		if base == "" {
			return nil, fmt.Errorf("%w: empty base URL for %s endpoint", ErrInvalidConfig, e)
		}
		baseURLs[e] = base
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = o.config.newHTTPClient()
	}

	return &Client{
		config:     o.config,
		httpClient: httpClient,
		baseURLs:   baseURLs,
		observer:   o.observer,
		logger:     logger,
	}, nil
}

// Config returns a copy of the client's transport configuration.
func (c *Client) Config() ClientConfig {
	return c.config
}

func (c *Client) baseURL(e Endpoint) string {
	return c.baseURLs[e]
}

// Standings returns the league standings on date. Now is passed through to
// the API as "now".
func (c *Client) Standings(ctx context.Context, date GameDate) ([]Standing, error) {
	resp, err := FetchJSON[StandingsResponse](ctx, c, EndpointWebAPI, "standings/"+date.APIString(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}
	return resp.Standings, nil
}

// SeasonManifest returns the standings window of every season.
func (c *Client) SeasonManifest(ctx context.Context) ([]SeasonInfo, error) {
	resp, err := FetchJSON[SeasonsResponse](ctx, c, EndpointWebAPI, "standings-season", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get season manifest: %w", err)
	}
	return resp.Seasons, nil
}

// StandingsForSeason returns the final standings of season, looked up through
// the season manifest's standingsEnd date.
func (c *Client) StandingsForSeason(ctx context.Context, season Season) ([]Standing, error) {
	seasons, err := c.SeasonManifest(ctx)
	if err != nil {
		return nil, err
	}

	id := int64(season.StartYear)*10000 + int64(season.EndYear())
	for _, info := range seasons {
		if info.ID != id {
			continue
		}
		end, err := ParseGameDate(info.StandingsEnd)
		if err != nil {
			return nil, fmt.Errorf("season %s has malformed standingsEnd: %w", season, err)
		}
		return c.Standings(ctx, end)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownSeason, season)
}

// Teams returns every team in the standings on date.
func (c *Client) Teams(ctx context.Context, date GameDate) ([]Team, error) {
	standings, err := c.Standings(ctx, date)
	if err != nil {
		return nil, err
	}

	teams := make([]Team, 0, len(standings))
	for _, s := range standings {
		teams = append(teams, s.ToTeam())
	}
	return teams, nil
}

// Boxscore fetches the boxscore of a game.
func (c *Client) Boxscore(ctx context.Context, id GameID) (*Boxscore, error) {
	box, err := FetchJSON[Boxscore](ctx, c, EndpointWebAPI, "gamecenter/"+id.String()+"/boxscore", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get boxscore for game %s: %w", id, err)
	}
	return &box, nil
}

// PlayByPlay fetches the full event feed of a game.
func (c *Client) PlayByPlay(ctx context.Context, id GameID) (*PlayByPlay, error) {
	pbp, err := FetchJSON[PlayByPlay](ctx, c, EndpointWebAPI, "gamecenter/"+id.String()+"/play-by-play", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get play-by-play for game %s: %w", id, err)
	}
	return &pbp, nil
}

// Landing fetches the game landing summary.
func (c *Client) Landing(ctx context.Context, id GameID) (*GameMatchup, error) {
	landing, err := FetchJSON[GameMatchup](ctx, c, EndpointWebAPI, "gamecenter/"+id.String()+"/landing", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get landing for game %s: %w", id, err)
	}
	return &landing, nil
}

// WeeklySchedule returns the schedule week starting at date.
func (c *Client) WeeklySchedule(ctx context.Context, date GameDate) (*WeeklySchedule, error) {
	week, err := FetchJSON[WeeklySchedule](ctx, c, EndpointWebAPI, "schedule/"+date.APIString(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &week, nil
}

// DailySchedule returns the games played on date.
//
// The response is a whole week keyed by concrete dates, so Now is resolved to
// the client's local date here before the request is made. This is the only
// call that resolves the sentinel locally.
func (c *Client) DailySchedule(ctx context.Context, date GameDate) (*DailySchedule, error) {
	if date.IsNow() {
		date = date.AddDays(0)
	}
	day := date.APIString()

	week, err := c.WeeklySchedule(ctx, date)
	if err != nil {
		return nil, err
	}

	schedule := &DailySchedule{
		NextStartDate:     week.NextStartDate,
		PreviousStartDate: week.PreviousStartDate,
		Date:              day,
		Games:             []ScheduleGame{},
	}
	for _, gd := range week.GameWeek {
		if gd.Date == day {
			schedule.Games = gd.Games
			break
		}
	}
	schedule.NumberOfGames = len(schedule.Games)

	return schedule, nil
}

// Roster returns a team's roster for season. team is the three-letter
// abbreviation, e.g. "TOR".
func (c *Client) Roster(ctx context.Context, team string, season Season) (*Roster, error) {
	if team == "" {
		return nil, fmt.Errorf("team abbreviation is required")
	}
	roster, err := FetchJSON[Roster](ctx, c, EndpointWebAPI, "roster/"+url.PathEscape(team)+"/"+season.APIString(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster for %s %s: %w", team, season, err)
	}
	return &roster, nil
}

// Franchises lists every franchise from the stats API.
func (c *Client) Franchises(ctx context.Context) ([]Franchise, error) {
	resp, err := FetchJSON[FranchisesResponse](ctx, c, EndpointStatsAPI, "en/franchise", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get franchises: %w", err)
	}
	return resp.Data, nil
}

// SearchPlayers queries the search API for players matching query.
func (c *Client) SearchPlayers(ctx context.Context, query string, limit int, activeOnly bool) ([]PlayerSearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if limit <= 0 {
		limit = 20
	}

	params := url.Values{}
	params.Set("culture", "en-us")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("q", query)
	if activeOnly {
		params.Set("active", "true")
	}

	results, err := FetchJSON[[]PlayerSearchResult](ctx, c, EndpointSearchAPI, "search/player", params)
	if err != nil {
		return nil, fmt.Errorf("failed to search players: %w", err)
	}
	return results, nil
}
