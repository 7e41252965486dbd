package nhl

import (
	"errors"
	"fmt"
)

// LocalizedString is the API's {"default": ..., "fr": ...} text wrapper.
type LocalizedString struct {
	Default string `json:"default"`
	French  string `json:"fr,omitempty"`
}

func (l LocalizedString) String() string {
	return l.Default
}

// Conference represents an NHL conference
type Conference struct {
	Abbr string `json:"abbr"`
	Name string `json:"name"`
}

// Division represents an NHL division
type Division struct {
	Abbr string `json:"abbr"`
	Name string `json:"name"`
}

// Team is a club with its league alignment.
type Team struct {
	Name        string     `json:"name"`
	CommonName  string     `json:"commonName"`
	Abbr        string     `json:"abbr"`
	Logo        string     `json:"logo"`
	Conference  Conference `json:"conference"`
	Division    Division   `json:"division"`
	FranchiseID int64      `json:"franchiseId,omitempty"`
}

// Standing is one team's row in the league standings.
type Standing struct {
	ConferenceAbbrev string          `json:"conferenceAbbrev"`
	ConferenceName   string          `json:"conferenceName"`
	DivisionAbbrev   string          `json:"divisionAbbrev"`
	DivisionName     string          `json:"divisionName"`
	TeamName         LocalizedString `json:"teamName"`
	TeamCommonName   LocalizedString `json:"teamCommonName"`
	TeamAbbrev       LocalizedString `json:"teamAbbrev"`
	TeamLogo         string          `json:"teamLogo"`
	GamesPlayed      int             `json:"gamesPlayed"`
	Wins             int             `json:"wins"`
	Losses           int             `json:"losses"`
	OTLosses         int             `json:"otLosses"`
	Points           int             `json:"points"`
	GoalFor          int             `json:"goalFor"`
	GoalAgainst      int             `json:"goalAgainst"`
	GoalDifferential int             `json:"goalDifferential"`
	StreakCode       string          `json:"streakCode"`
	StreakCount      int             `json:"streakCount"`
}

// ToTeam converts a standings row into a Team
func (s Standing) ToTeam() Team {
	return Team{
		Name:       s.TeamName.Default,
		CommonName: s.TeamCommonName.Default,
		Abbr:       s.TeamAbbrev.Default,
		Logo:       s.TeamLogo,
		Conference: Conference{Abbr: s.ConferenceAbbrev, Name: s.ConferenceName},
		Division:   Division{Abbr: s.DivisionAbbrev, Name: s.DivisionName},
	}
}

func (s Standing) String() string {
	return fmt.Sprintf("%s: %d pts (%d-%d-%d)", s.TeamName.Default, s.Points, s.Wins, s.Losses, s.OTLosses)
}

// StandingsResponse is the body of standings/{date}.
type StandingsResponse struct {
	Standings []Standing `json:"standings"`
}

// Validate implements Validator
func (r *StandingsResponse) Validate() error {
	if r.Standings == nil {
		return errors.New("missing field \"standings\"")
	}
	for i, s := range r.Standings {
		if s.TeamAbbrev.Default == "" {
			return fmt.Errorf("standings[%d]: missing field \"teamAbbrev\"", i)
		}
	}
	return nil
}

// SeasonInfo describes one season's standings window.
type SeasonInfo struct {
	ID             int64  `json:"id"`
	StandingsStart string `json:"standingsStart"`
	StandingsEnd   string `json:"standingsEnd"`
}

// SeasonsResponse is the body of standings-season.
type SeasonsResponse struct {
	Seasons []SeasonInfo `json:"seasons"`
}

// Validate implements Validator
func (r *SeasonsResponse) Validate() error {
	if r.Seasons == nil {
		return errors.New("missing field \"seasons\"")
	}
	for i, s := range r.Seasons {
		if s.ID == 0 || s.StandingsEnd == "" {
			return fmt.Errorf("seasons[%d]: missing field \"id\" or \"standingsEnd\"", i)
		}
	}
	return nil
}

// ScheduleTeam is a team as it appears in schedule and score listings.
type ScheduleTeam struct {
	ID        int64            `json:"id"`
	Abbrev    string           `json:"abbrev"`
	PlaceName *LocalizedString `json:"placeName,omitempty"`
	Logo      string           `json:"logo"`
	Score     *int             `json:"score,omitempty"`
}

// ScheduleGame is a single game in a schedule listing.
type ScheduleGame struct {
	ID           GameID       `json:"id"`
	GameType     GameType     `json:"gameType"`
	GameDate     string       `json:"gameDate,omitempty"`
	StartTimeUTC string       `json:"startTimeUTC"`
	AwayTeam     ScheduleTeam `json:"awayTeam"`
	HomeTeam     ScheduleTeam `json:"homeTeam"`
	GameState    GameState    `json:"gameState"`
}

func (g ScheduleGame) String() string {
	return fmt.Sprintf("%s @ %s (%s)", g.AwayTeam.Abbrev, g.HomeTeam.Abbrev, g.GameState)
}

// GameDay groups the games played on one date.
type GameDay struct {
	Date  string         `json:"date"`
	Games []ScheduleGame `json:"games"`
}

// WeeklySchedule is the body of schedule/{date}: the week starting at date.
type WeeklySchedule struct {
	NextStartDate     string    `json:"nextStartDate"`
	PreviousStartDate string    `json:"previousStartDate"`
	GameWeek          []GameDay `json:"gameWeek"`
}

// Validate implements Validator
func (w *WeeklySchedule) Validate() error {
	if w.GameWeek == nil {
		return errors.New("missing field \"gameWeek\"")
	}
	return nil
}

// DailySchedule is the slice of a weekly schedule for a single date.
type DailySchedule struct {
	NextStartDate     string         `json:"nextStartDate,omitempty"`
	PreviousStartDate string         `json:"previousStartDate,omitempty"`
	Date              string         `json:"date"`
	Games             []ScheduleGame `json:"games"`
	NumberOfGames     int            `json:"numberOfGames"`
}

// PlayerSearchResult is one hit from the search API.
type PlayerSearchResult struct {
	PlayerID      string `json:"playerId"`
	Name          string `json:"name"`
	PositionCode  string `json:"positionCode"`
	TeamID        string `json:"teamId,omitempty"`
	TeamAbbrev    string `json:"teamAbbrev,omitempty"`
	SweaterNumber *int   `json:"sweaterNumber,omitempty"`
	Active        bool   `json:"active"`
	Height        string `json:"height,omitempty"`
	BirthCity     string `json:"birthCity,omitempty"`
	BirthCountry  string `json:"birthCountry,omitempty"`
}

// RosterPlayer is a player on a team roster.
type RosterPlayer struct {
	ID             int64           `json:"id"`
	Headshot       string          `json:"headshot"`
	FirstName      LocalizedString `json:"firstName"`
	LastName       LocalizedString `json:"lastName"`
	SweaterNumber  int             `json:"sweaterNumber"`
	PositionCode   string          `json:"positionCode"`
	ShootsCatches  string          `json:"shootsCatches"`
	HeightInInches int             `json:"heightInInches"`
	WeightInPounds int             `json:"weightInPounds"`
	BirthDate      string          `json:"birthDate"`
	BirthCountry   string          `json:"birthCountry"`
}

// FullName returns "First Last".
func (p RosterPlayer) FullName() string {
	return p.FirstName.Default + " " + p.LastName.Default
}

// Roster is a team roster grouped by position.
type Roster struct {
	Forwards   []RosterPlayer `json:"forwards"`
	Defensemen []RosterPlayer `json:"defensemen"`
	Goalies    []RosterPlayer `json:"goalies"`
}

// Validate implements Validator
func (r *Roster) Validate() error {
	if r.Forwards == nil && r.Defensemen == nil && r.Goalies == nil {
		return errors.New("missing fields \"forwards\", \"defensemen\" and \"goalies\"")
	}
	return nil
}

// Franchise is an entry from the stats API franchise list.
type Franchise struct {
	ID             int64  `json:"id"`
	FullName       string `json:"fullName"`
	TeamCommonName string `json:"teamCommonName,omitempty"`
	TeamPlaceName  string `json:"teamPlaceName,omitempty"`
}

// FranchisesResponse is the body of the stats API franchise resource.
type FranchisesResponse struct {
	Data  []Franchise `json:"data"`
	Total int         `json:"total"`
}

// Validate implements Validator
func (r *FranchisesResponse) Validate() error {
	if r.Data == nil {
		return errors.New("missing field \"data\"")
	}
	return nil
}
