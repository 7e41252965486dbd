package nhl

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// nowToken is the path segment the NHL API resolves to its own current date.
	nowToken = "now"

	apiDateLayout = "2006-01-02"

	// seasonOpeningMonth is the first calendar month of a new NHL season.
	seasonOpeningMonth = time.October
)

// GameDate is either the "now" sentinel, which defers to the server's notion
// of the current date, or a concrete calendar date. The zero value is Now.
type GameDate struct {
	date     time.Time // civil date at UTC midnight; only meaningful when resolved
	resolved bool
}

// Now returns the unresolved "now" sentinel.
func Now() GameDate {
	return GameDate{}
}

// Today returns the local current date as a resolved GameDate.
func Today() GameDate {
	return DateOf(time.Now())
}

// DateOf returns the resolved GameDate for the calendar day of t in t's location.
func DateOf(t time.Time) GameDate {
	y, m, d := t.Date()
	return GameDate{date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), resolved: true}
}

// NewGameDate builds a resolved GameDate, rejecting components that do not
// form a real calendar date (month 13, Feb 30, day 0).
func NewGameDate(year int, month time.Month, day int) (GameDate, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return GameDate{}, &ParseError{
			Input:  fmt.Sprintf("%04d-%02d-%02d", year, int(month), day),
			Reason: "not a valid calendar date",
		}
	}
	return GameDate{date: t, resolved: true}, nil
}

// ParseGameDate parses "now" or a strict YYYY-MM-DD date.
func ParseGameDate(s string) (GameDate, error) {
	if s == nowToken {
		return Now(), nil
	}
	if !isDateShape(s) {
		return GameDate{}, &ParseError{Input: s, Reason: `expected "now" or YYYY-MM-DD`}
	}
	t, err := time.Parse(apiDateLayout, s)
	if err != nil {
		return GameDate{}, &ParseError{Input: s, Reason: "not a valid calendar date", Err: err}
	}
	return GameDate{date: t, resolved: true}, nil
}

// isDateShape reports whether s is exactly DDDD-DD-DD with ASCII digits.
func isDateShape(s string) bool {
	if len(s) != len(apiDateLayout) {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch i {
		case 4, 7:
			if s[i] != '-' {
				return false
			}
		default:
			if s[i] < '0' || s[i] > '9' {
				return false
			}
		}
	}
	return true
}

// IsNow reports whether g is the unresolved sentinel.
func (g GameDate) IsNow() bool {
	return !g.resolved
}

// Time returns the resolved date at UTC midnight. ok is false for Now.
func (g GameDate) Time() (t time.Time, ok bool) {
	return g.date, g.resolved
}

// APIString formats g for use in a request path: "now" or YYYY-MM-DD.
func (g GameDate) APIString() string {
	if !g.resolved {
		return nowToken
	}
	return g.date.Format(apiDateLayout)
}

func (g GameDate) String() string {
	return g.APIString()
}

// AddDays shifts g by n days. Now is first resolved to the local current date,
// so the result is always resolved.
func (g GameDate) AddDays(n int) GameDate {
	base := g
	if !base.resolved {
		base = Today()
	}
	return GameDate{date: base.date.AddDate(0, 0, n), resolved: true}
}

// Equal reports whether both values are Now or both name the same day.
func (g GameDate) Equal(other GameDate) bool {
	if g.resolved != other.resolved {
		return false
	}
	return !g.resolved || g.date.Equal(other.date)
}

// Set implements pflag.Value so a GameDate can back a --date flag.
func (g *GameDate) Set(s string) error {
	parsed, err := ParseGameDate(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Type implements pflag.Value.
func (g *GameDate) Type() string {
	return "date"
}

// MarshalText implements encoding.TextMarshaler.
func (g GameDate) MarshalText() ([]byte, error) {
	return []byte(g.APIString()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *GameDate) UnmarshalText(text []byte) error {
	return g.Set(string(text))
}

// Season identifies an NHL season by the calendar year it opens in. The end
// year is always derived, never stored.
type Season struct {
	StartYear int
}

// NewSeason returns the season opening in startYear.
func NewSeason(startYear int) Season {
	return Season{StartYear: startYear}
}

// SeasonFromYears builds a season from explicit start and end years.
func SeasonFromYears(startYear, endYear int) (Season, error) {
	if endYear != startYear+1 {
		return Season{}, &ParseError{
			Input:  fmt.Sprintf("%d%d", startYear, endYear),
			Reason: "season years must be consecutive",
		}
	}
	return Season{StartYear: startYear}, nil
}

// CurrentSeason returns the season in progress on today.
//
// NHL seasons open in October and finish the following summer, so any date
// from January through September still belongs to the season that opened in
// the previous calendar year. This cutover is a league scheduling rule, not a
// calendar fact; a preseason game in late September is attributed to the
// season that is ending.
func CurrentSeason(today time.Time) Season {
	if today.Month() < seasonOpeningMonth {
		return Season{StartYear: today.Year() - 1}
	}
	return Season{StartYear: today.Year()}
}

// EndYear is the calendar year the season finishes in.
func (s Season) EndYear() int {
	return s.StartYear + 1
}

// APIString formats s the way the API expects it in paths, e.g. "20232024".
func (s Season) APIString() string {
	return strconv.Itoa(s.StartYear) + strconv.Itoa(s.EndYear())
}

func (s Season) String() string {
	return s.APIString()
}

// ParseSeason parses an 8-digit season id such as "20232024". It returns
// false for any other shape, including non-consecutive years.
func ParseSeason(s string) (Season, bool) {
	if len(s) != 8 {
		return Season{}, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Season{}, false
		}
	}
	start, _ := strconv.Atoi(s[:4])
	end, _ := strconv.Atoi(s[4:])
	if end != start+1 {
		return Season{}, false
	}
	return Season{StartYear: start}, true
}
