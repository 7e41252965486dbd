package nhl

import (
	"encoding/json"
	"fmt"
)

// GameState is the lifecycle state the API reports for a game.
type GameState string

const (
	GameStateFuture    GameState = "FUT"
	GameStatePreGame   GameState = "PRE"
	GameStateLive      GameState = "LIVE"
	GameStateFinal     GameState = "FINAL"
	GameStateOff       GameState = "OFF"
	GameStatePostponed GameState = "PPD"
	GameStateSuspended GameState = "SUSP"
	// GameStateCritical is a live game in its closing minutes.
	GameStateCritical GameState = "CRIT"
)

var knownGameStates = map[GameState]struct{}{
	GameStateFuture:    {},
	GameStatePreGame:   {},
	GameStateLive:      {},
	GameStateFinal:     {},
	GameStateOff:       {},
	GameStatePostponed: {},
	GameStateSuspended: {},
	GameStateCritical:  {},
}

// ParseGameState parses one of the API's state codes.
func ParseGameState(s string) (GameState, error) {
	state := GameState(s)
	if _, ok := knownGameStates[state]; !ok {
		return "", fmt.Errorf("unknown game state %q", s)
	}
	return state, nil
}

// UnmarshalText rejects codes the API is not known to send.
func (s *GameState) UnmarshalText(text []byte) error {
	state, err := ParseGameState(string(text))
	if err != nil {
		return err
	}
	*s = state
	return nil
}

// HasStarted returns true if the game is live or completed
func (s GameState) HasStarted() bool {
	return s.IsLive() || s.IsFinal()
}

// IsFinal returns true if the game is completed
func (s GameState) IsFinal() bool {
	return s == GameStateFinal || s == GameStateOff
}

// IsLive returns true if the game is in progress
func (s GameState) IsLive() bool {
	return s == GameStateLive || s == GameStateCritical
}

// IsScheduled returns true if the game has not started yet
func (s GameState) IsScheduled() bool {
	return s == GameStateFuture || s == GameStatePreGame
}

// GameType is the numeric game type code.
type GameType int

const (
	GameTypePreseason     GameType = 1
	GameTypeRegularSeason GameType = 2
	GameTypePlayoffs      GameType = 3
	GameTypeAllStar       GameType = 4
)

// String returns the string representation of a GameType
func (t GameType) String() string {
	switch t {
	case GameTypePreseason:
		return "Preseason"
	case GameTypeRegularSeason:
		return "Regular Season"
	case GameTypePlayoffs:
		return "Playoffs"
	case GameTypeAllStar:
		return "All-Star"
	default:
		return fmt.Sprintf("GameType(%d)", int(t))
	}
}

// UnmarshalJSON accepts only the four known codes.
func (t *GameType) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("game type: %w", err)
	}
	switch GameType(code) {
	case GameTypePreseason, GameTypeRegularSeason, GameTypePlayoffs, GameTypeAllStar:
		*t = GameType(code)
		return nil
	default:
		return fmt.Errorf("unknown game type %d", code)
	}
}
