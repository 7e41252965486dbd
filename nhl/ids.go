package nhl

import (
	"fmt"
	"strconv"
)

// GameID is an NHL game identifier such as 2023020204: season start year,
// two-digit game type, then the game number.
type GameID int64

// ParseGameID parses a decimal game id.
func ParseGameID(s string) (GameID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid game id %q: %w", s, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid game id %q: must be positive", s)
	}
	return GameID(id), nil
}

func (id GameID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Season extracts the season encoded in the first four digits of a
// regular-format id. ok is false for ids too short to carry one.
func (id GameID) Season() (s Season, ok bool) {
	if id < 1_000_000_000 || id >= 10_000_000_000 {
		return Season{}, false
	}
	return NewSeason(int(id / 1_000_000)), true
}
