package filter

import (
	"strings"
	"time"

	"github.com/s0up4200/nhlapi/nhl"
)

// Environment describes how one record type is exposed to expressions.
type Environment[T any] struct {
	// Kind names the record type in evaluation errors
	Kind string
	// Label names a record in evaluation errors
	Label func(T) string
	// Fields returns the variables and record-bound helpers for one record
	Fields func(T) map[string]any
}

// Standings exposes nhl.Standing rows.
//
// Variables: Team, TeamName, Conference, ConferenceName, Division,
// DivisionName, GamesPlayed, Wins, Losses, OTLosses, Points, GoalsFor,
// GoalsAgainst, GoalDiff, PointPct, StreakCode, StreakCount and Standing
// (the full row). Helpers: inDivision(abbr), inConference(abbr),
// onStreak(code, min).
var Standings = Environment[nhl.Standing]{
	Kind: "standings row",
	Label: func(s nhl.Standing) string {
		return s.TeamAbbrev.Default
	},
	Fields: standingFields,
}

// Games exposes nhl.ScheduleGame entries.
//
// Variables: ID, Away, Home, State, Type, TypeName, StartTime, AwayScore,
// HomeScore, HasScore, IsLive, IsFinal, IsScheduled and Game (the full
// entry). Helpers: involves(team), startsWithin(hours).
var Games = Environment[nhl.ScheduleGame]{
	Kind: "game",
	Label: func(g nhl.ScheduleGame) string {
		return g.String()
	},
	Fields: gameFields,
}

func standingFields(s nhl.Standing) map[string]any {
	env := make(map[string]any, 24)

	env["Standing"] = s
	env["Team"] = s.TeamAbbrev.Default
	env["TeamName"] = s.TeamName.Default
	env["Conference"] = s.ConferenceAbbrev
	env["ConferenceName"] = s.ConferenceName
	env["Division"] = s.DivisionAbbrev
	env["DivisionName"] = s.DivisionName
	env["GamesPlayed"] = s.GamesPlayed
	env["Wins"] = s.Wins
	env["Losses"] = s.Losses
	env["OTLosses"] = s.OTLosses
	env["Points"] = s.Points
	env["GoalsFor"] = s.GoalFor
	env["GoalsAgainst"] = s.GoalAgainst
	env["GoalDiff"] = s.GoalDifferential
	env["PointPct"] = pointPct(s.Points, s.GamesPlayed)
	env["StreakCode"] = s.StreakCode
	env["StreakCount"] = s.StreakCount

	env["inDivision"] = func(abbr string) bool {
		return strings.EqualFold(s.DivisionAbbrev, abbr) || strings.EqualFold(s.DivisionName, abbr)
	}
	env["inConference"] = func(abbr string) bool {
		return strings.EqualFold(s.ConferenceAbbrev, abbr) || strings.EqualFold(s.ConferenceName, abbr)
	}
	env["onStreak"] = func(code string, minCount int) bool {
		return strings.EqualFold(s.StreakCode, code) && s.StreakCount >= minCount
	}

	return env
}

// pointPct is points earned over points available, 0 before any game.
func pointPct(points, gamesPlayed int) float64 {
	if gamesPlayed == 0 {
		return 0
	}
	return float64(points) / float64(2*gamesPlayed)
}

func gameFields(g nhl.ScheduleGame) map[string]any {
	env := make(map[string]any, 20)

	start, _ := time.Parse(time.RFC3339, g.StartTimeUTC)
	awayScore, homeScore, hasScore := 0, 0, false
	if g.AwayTeam.Score != nil && g.HomeTeam.Score != nil {
		awayScore, homeScore, hasScore = *g.AwayTeam.Score, *g.HomeTeam.Score, true
	}

	env["Game"] = g
	env["ID"] = int64(g.ID)
	env["Away"] = g.AwayTeam.Abbrev
	env["Home"] = g.HomeTeam.Abbrev
	env["State"] = string(g.GameState)
	env["Type"] = int(g.GameType)
	env["TypeName"] = g.GameType.String()
	env["StartTime"] = start
	env["AwayScore"] = awayScore
	env["HomeScore"] = homeScore
	env["HasScore"] = hasScore
	env["IsLive"] = g.GameState.IsLive()
	env["IsFinal"] = g.GameState.IsFinal()
	env["IsScheduled"] = g.GameState.IsScheduled()

	env["involves"] = func(team string) bool {
		return strings.EqualFold(g.AwayTeam.Abbrev, team) || strings.EqualFold(g.HomeTeam.Abbrev, team)
	}
	env["startsWithin"] = func(hours int) bool {
		if start.IsZero() {
			return false
		}
		until := time.Until(start)
		return until >= 0 && until <= time.Duration(hours)*time.Hour
	}

	return env
}
