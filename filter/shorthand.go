package filter

import (
	"fmt"
	"regexp"
	"strings"
)

type shorthandRule struct {
	pattern *regexp.Regexp
	replace func(matches []string) string
}

// Rules are applied in order; field names are matched as whole words.
var shorthandRules = []shorthandRule{
	// team:TOR or team!:"TOR"
	{regexp.MustCompile(`\bteam(!?):"?([A-Za-z]{2,3})"?`), func(m []string) string {
		return fmt.Sprintf(`Team %s "%s"`, equalityOp(m[1]), strings.ToUpper(m[2]))
	}},
	// division:P or division:"Pacific"
	{regexp.MustCompile(`\bdivision(!?):"?([A-Za-z]+)"?`), func(m []string) string {
		return negate(m[1], fmt.Sprintf(`inDivision("%s")`, m[2]))
	}},
	// conference:E
	{regexp.MustCompile(`\bconference(!?):"?([A-Za-z]+)"?`), func(m []string) string {
		return negate(m[1], fmt.Sprintf(`inConference("%s")`, m[2]))
	}},
	// points:>=90, wins:40, gp:<10, diff:>0
	{regexp.MustCompile(`\b(points|wins|losses|gp|diff):(>=|<=|>|<)?(-?\d+)\b`), func(m []string) string {
		op := m[2]
		if op == "" {
			op = "=="
		}
		return fmt.Sprintf(`%s %s %s`, numericFields[m[1]], op, m[3])
	}},
	// state:LIVE
	{regexp.MustCompile(`\bstate(!?):"?([A-Za-z]+)"?`), func(m []string) string {
		return fmt.Sprintf(`State %s "%s"`, equalityOp(m[1]), strings.ToUpper(m[2]))
	}},
	// involves:EDM
	{regexp.MustCompile(`\binvolves(!?):"?([A-Za-z]{2,3})"?`), func(m []string) string {
		return negate(m[1], fmt.Sprintf(`involves("%s")`, strings.ToUpper(m[2])))
	}},
}

var numericFields = map[string]string{
	"points": "Points",
	"wins":   "Wins",
	"losses": "Losses",
	"gp":     "GamesPlayed",
	"diff":   "GoalDiff",
}

func equalityOp(bang string) string {
	if bang == "!" {
		return "!="
	}
	return "=="
}

func negate(bang, expression string) string {
	if bang == "!" {
		return "not " + expression
	}
	return expression
}

// ConvertShorthand rewrites the short field:value syntax accepted on the
// command line into an expr expression. Text that is not shorthand is left
// as-is, so mixed input such as `team:TOR or Points > 100` works.
func ConvertShorthand(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}

	filter := strings.ReplaceAll(input, " AND ", " and ")
	filter = strings.ReplaceAll(filter, " OR ", " or ")
	filter = strings.ReplaceAll(filter, "NOT ", "not ")

	for _, rule := range shorthandRules {
		filter = rule.pattern.ReplaceAllStringFunc(filter, func(match string) string {
			return rule.replace(rule.pattern.FindStringSubmatch(match))
		})
	}

	return filter
}

// IsShorthand reports whether input uses any field:value shorthand
func IsShorthand(input string) bool {
	for _, rule := range shorthandRules {
		if rule.pattern.MatchString(input) {
			return true
		}
	}
	return false
}
