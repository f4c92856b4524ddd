package dice

import (
	"fmt"
	"strings"
)

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a modifier
	Roll(count, sides, modifier int) (*RollResult, error)
}

// RollResult holds the outcome of a single dice roll
type RollResult struct {
	Count    int
	Sides    int
	Modifier int
	Rolls    []int
	Total    int
}

// String renders the roll in "2d6+3" style with the individual rolls
func (r *RollResult) String() string {
	formula := fmt.Sprintf("%dd%d", r.Count, r.Sides)
	if r.Modifier != 0 {
		formula += fmt.Sprintf("%+d", r.Modifier)
	}

	parts := make([]string, len(r.Rolls))
	for i, roll := range r.Rolls {
		parts[i] = fmt.Sprintf("%d", roll)
	}

	return fmt.Sprintf("%s: (%s) = %d", formula, strings.Join(parts, " + "), r.Total)
}

// RollString parses a dice formula like "2d6+3" and rolls it with the
// given roller
func RollString(r Roller, formula string) (*RollResult, error) {
	parsed, err := ParseFormula(formula)
	if err != nil {
		return nil, err
	}

	return r.Roll(parsed.Count, parsed.Sides, parsed.Modifier)
}
