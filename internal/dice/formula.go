package dice

import (
	"regexp"
	"strconv"
	"strings"

	trackererr "github.com/KirkDiggler/combat-tracker/internal/errors"
)

// Formula is a parsed dice expression: [count]d<sides>[+/-modifier]
type Formula struct {
	Count    int
	Sides    int
	Modifier int
}

// Pattern: optional count, "d", die size, optional signed modifier.
// Examples: "2d6+3", "d20", "4d8-2".
var formulaPattern = regexp.MustCompile(`^(\d*)d(\d+)([+-]\d+)?$`)

// ParseFormula parses a dice formula string. The count defaults to 1 when
// omitted. Returns an invalid_formula error when the string does not match
// the grammar; no dice are rolled here.
func ParseFormula(formula string) (*Formula, error) {
	trimmed := strings.ToLower(strings.TrimSpace(formula))

	match := formulaPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return nil, trackererr.InvalidFormulaf(
			"invalid dice formula '%s': use a format like '1d20', '3d6+5', or '2d8-1'", formula).
			WithMeta("formula", formula)
	}

	count := 1
	if match[1] != "" {
		parsed, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, trackererr.InvalidFormulaf("invalid dice count in '%s'", formula)
		}
		count = parsed
	}

	sides, err := strconv.Atoi(match[2])
	if err != nil {
		return nil, trackererr.InvalidFormulaf("invalid die size in '%s'", formula)
	}

	modifier := 0
	if match[3] != "" {
		parsed, err := strconv.Atoi(match[3])
		if err != nil {
			return nil, trackererr.InvalidFormulaf("invalid modifier in '%s'", formula)
		}
		modifier = parsed
	}

	if count < 1 {
		return nil, trackererr.InvalidFormulaf("dice count must be at least 1 in '%s'", formula)
	}
	if sides < 1 {
		return nil, trackererr.InvalidFormulaf("die size must be at least 1 in '%s'", formula)
	}

	return &Formula{
		Count:    count,
		Sides:    sides,
		Modifier: modifier,
	}, nil
}
