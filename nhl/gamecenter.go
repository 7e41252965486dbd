package nhl

import (
	"errors"
	"fmt"
)

// PeriodDescriptor identifies a period of play.
type PeriodDescriptor struct {
	Number               int    `json:"number"`
	PeriodType           string `json:"periodType"`
	MaxRegulationPeriods int    `json:"maxRegulationPeriods"`
}

// GameClock is the live clock of a game.
type GameClock struct {
	TimeRemaining    string `json:"timeRemaining"`
	SecondsRemaining int    `json:"secondsRemaining"`
	Running          bool   `json:"running"`
	InIntermission   bool   `json:"inIntermission"`
}

// GameTeam is a team as it appears in game center resources.
type GameTeam struct {
	ID         int64           `json:"id"`
	CommonName LocalizedString `json:"commonName"`
	Abbrev     string          `json:"abbrev"`
	Score      int             `json:"score"`
	SOG        int             `json:"sog"`
	Logo       string          `json:"logo"`
	PlaceName  LocalizedString `json:"placeName"`
}

// GameHeader holds the fields shared by boxscore, play-by-play and landing.
type GameHeader struct {
	ID               GameID           `json:"id"`
	Season           int64            `json:"season"`
	GameType         GameType         `json:"gameType"`
	GameDate         string           `json:"gameDate"`
	Venue            LocalizedString  `json:"venue"`
	StartTimeUTC     string           `json:"startTimeUTC"`
	GameState        GameState        `json:"gameState"`
	PeriodDescriptor PeriodDescriptor `json:"periodDescriptor"`
	AwayTeam         GameTeam         `json:"awayTeam"`
	HomeTeam         GameTeam         `json:"homeTeam"`
}

func (h *GameHeader) validate() error {
	if h.ID == 0 {
		return errors.New("missing field \"id\"")
	}
	if h.GameState == "" {
		return errors.New("missing field \"gameState\"")
	}
	if h.AwayTeam.Abbrev == "" || h.HomeTeam.Abbrev == "" {
		return errors.New("missing field \"awayTeam\" or \"homeTeam\"")
	}
	return nil
}

// Scoreline renders "AWY 2 - 3 HOM".
func (h *GameHeader) Scoreline() string {
	return fmt.Sprintf("%s %d - %d %s", h.AwayTeam.Abbrev, h.AwayTeam.Score, h.HomeTeam.Score, h.HomeTeam.Abbrev)
}

// SkaterStats is a skater's line in a boxscore.
type SkaterStats struct {
	PlayerID      int64           `json:"playerId"`
	SweaterNumber int             `json:"sweaterNumber"`
	Name          LocalizedString `json:"name"`
	Position      string          `json:"position"`
	Goals         int             `json:"goals"`
	Assists       int             `json:"assists"`
	Points        int             `json:"points"`
	PlusMinus     int             `json:"plusMinus"`
	PIM           int             `json:"pim"`
	SOG           int             `json:"sog"`
	TOI           string          `json:"toi"`
}

// GoalieStats is a goalie's line in a boxscore.
type GoalieStats struct {
	PlayerID         int64           `json:"playerId"`
	SweaterNumber    int             `json:"sweaterNumber"`
	Name             LocalizedString `json:"name"`
	SaveShotsAgainst string          `json:"saveShotsAgainst"`
	GoalsAgainst     int             `json:"goalsAgainst"`
	TOI              string          `json:"toi"`
	Decision         string          `json:"decision,omitempty"`
}

// TeamPlayerStats groups one team's player lines.
type TeamPlayerStats struct {
	Forwards []SkaterStats `json:"forwards"`
	Defense  []SkaterStats `json:"defense"`
	Goalies  []GoalieStats `json:"goalies"`
}

// PlayerByGameStats holds both teams' player lines.
type PlayerByGameStats struct {
	AwayTeam TeamPlayerStats `json:"awayTeam"`
	HomeTeam TeamPlayerStats `json:"homeTeam"`
}

// Boxscore is the body of gamecenter/{id}/boxscore.
type Boxscore struct {
	GameHeader
	Clock             GameClock         `json:"clock"`
	PlayerByGameStats PlayerByGameStats `json:"playerByGameStats"`
}

// Validate implements Validator
func (b *Boxscore) Validate() error {
	return b.GameHeader.validate()
}

// PlayEventDetails carries the event-specific payload of a play.
type PlayEventDetails struct {
	XCoord              *int   `json:"xCoord,omitempty"`
	YCoord              *int   `json:"yCoord,omitempty"`
	ZoneCode            string `json:"zoneCode,omitempty"`
	EventOwnerTeamID    int64  `json:"eventOwnerTeamId,omitempty"`
	ShootingPlayerID    int64  `json:"shootingPlayerId,omitempty"`
	ScoringPlayerID     int64  `json:"scoringPlayerId,omitempty"`
	GoalieInNetID       int64  `json:"goalieInNetId,omitempty"`
	ShotType            string `json:"shotType,omitempty"`
	AwayScore           *int   `json:"awayScore,omitempty"`
	HomeScore           *int   `json:"homeScore,omitempty"`
	CommittedByPlayerID int64  `json:"committedByPlayerId,omitempty"`
	Duration            int    `json:"duration,omitempty"`
}

// PlayEvent is a single event in a play-by-play feed.
type PlayEvent struct {
	EventID          int64             `json:"eventId"`
	PeriodDescriptor PeriodDescriptor  `json:"periodDescriptor"`
	TimeInPeriod     string            `json:"timeInPeriod"`
	TimeRemaining    string            `json:"timeRemaining"`
	SituationCode    string            `json:"situationCode"`
	TypeCode         int               `json:"typeCode"`
	TypeDescKey      string            `json:"typeDescKey"`
	SortOrder        int               `json:"sortOrder"`
	Details          *PlayEventDetails `json:"details,omitempty"`
}

// IsGoal reports whether the event is a goal.
func (e PlayEvent) IsGoal() bool {
	return e.TypeDescKey == "goal"
}

// PlayByPlay is the body of gamecenter/{id}/play-by-play.
type PlayByPlay struct {
	GameHeader
	Clock         GameClock   `json:"clock"`
	DisplayPeriod int         `json:"displayPeriod"`
	Plays         []PlayEvent `json:"plays"`
}

// Validate implements Validator
func (p *PlayByPlay) Validate() error {
	if err := p.GameHeader.validate(); err != nil {
		return err
	}
	if p.Plays == nil {
		return errors.New("missing field \"plays\"")
	}
	return nil
}

// Goals returns the goal events in feed order.
func (p *PlayByPlay) Goals() []PlayEvent {
	var goals []PlayEvent
	for _, e := range p.Plays {
		if e.IsGoal() {
			goals = append(goals, e)
		}
	}
	return goals
}

// PeriodScoring lists the goals of one period in a landing summary.
type PeriodScoring struct {
	PeriodDescriptor PeriodDescriptor `json:"periodDescriptor"`
	Goals            []GoalSummary    `json:"goals"`
}

// GoalSummary is a goal as summarised on the landing page.
type GoalSummary struct {
	TimeInPeriod string          `json:"timeInPeriod"`
	FirstName    LocalizedString `json:"firstName"`
	LastName     LocalizedString `json:"lastName"`
	TeamAbbrev   LocalizedString `json:"teamAbbrev"`
	AwayScore    int             `json:"awayScore"`
	HomeScore    int             `json:"homeScore"`
	Strength     string          `json:"strength"`
}

// GameSummary is the summary block of a landing response.
type GameSummary struct {
	Scoring []PeriodScoring `json:"scoring"`
}

// GameMatchup is the body of gamecenter/{id}/landing, a lighter alternative to
// play-by-play that includes per-period scoring.
type GameMatchup struct {
	GameHeader
	VenueTimezone string       `json:"venueTimezone"`
	Summary       *GameSummary `json:"summary,omitempty"`
}

// Validate implements Validator
func (m *GameMatchup) Validate() error {
	return m.GameHeader.validate()
}
