package combat

import (
	"fmt"
)

// Sentinel durations. Anything positive is a round count.
const (
	// DurationPermanent marks an effect that never expires via tick-down
	DurationPermanent = -1

	// DurationNote marks an untimed note or item entry
	DurationNote = 0
)

// StatusEffect represents one named condition, buff, or note attached to a
// creature. Duration -1 is permanent, 0 is an untimed note/item, and a
// positive value is the number of rounds remaining at creation.
type StatusEffect struct {
	Name            string `json:"name"`
	Duration        int    `json:"duration"`
	Description     string `json:"description"`
	RoundsRemaining int    `json:"rounds_remaining"`
}

// NewStatusEffect creates a status effect. RoundsRemaining mirrors the
// duration; -1 and 0 pass through unchanged so they never drive expiry.
func NewStatusEffect(name string, duration int, description string) *StatusEffect {
	return &StatusEffect{
		Name:            name,
		Duration:        duration,
		Description:     description,
		RoundsRemaining: duration,
	}
}

// IsNote reports whether this is an untimed note/item entry
func (e *StatusEffect) IsNote() bool {
	return e.Duration == DurationNote
}

// IsPermanent reports whether this effect never expires
func (e *StatusEffect) IsPermanent() bool {
	return e.Duration == DurationPermanent
}

// TickDown decrements the rounds remaining if any are left. It reports
// whether the effect just ended: rounds remaining hit 0 and the effect was
// created with a positive duration. The duration check guards notes and
// permanent effects, which must never expire through ticking.
func (e *StatusEffect) TickDown() bool {
	if e.RoundsRemaining > 0 {
		e.RoundsRemaining--
	}
	return e.RoundsRemaining == 0 && e.Duration > 0
}

// DurationLabel returns the display category for the effect's timing
func (e *StatusEffect) DurationLabel() string {
	switch {
	case e.IsNote():
		return "Notes/Items"
	case e.IsPermanent():
		return "Permanent"
	default:
		return fmt.Sprintf("%d rounds remaining", e.RoundsRemaining)
	}
}

// String renders the effect for display. Pure, no mutation.
func (e *StatusEffect) String() string {
	return fmt.Sprintf("%s (%s). Details: %s", e.Name, e.DurationLabel(), e.Description)
}
