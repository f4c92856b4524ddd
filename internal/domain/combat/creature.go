package combat

import (
	"strings"
)

// CreatureStatus is the display state derived from current HP. It is never
// stored; recompute it whenever it is shown.
type CreatureStatus string

const (
	StatusAlive    CreatureStatus = "Alive"
	StatusBloodied CreatureStatus = "Bloodied"
	StatusDefeated CreatureStatus = "Defeated"
)

// ApplyOutcome describes what ApplyEffect did with the incoming effect
type ApplyOutcome string

const (
	// OutcomeAppliedTimed means a new timed effect was added
	OutcomeAppliedTimed ApplyOutcome = "applied_timed"

	// OutcomeAppliedPermanent means a new permanent effect was added
	OutcomeAppliedPermanent ApplyOutcome = "applied_permanent"

	// OutcomeAppliedNote means a new note/item entry was added
	OutcomeAppliedNote ApplyOutcome = "applied_note"

	// OutcomeDurationReset means an existing effect had its timer refreshed
	OutcomeDurationReset ApplyOutcome = "duration_reset"

	// OutcomeNotesUpdated means an existing effect had only its description updated
	OutcomeNotesUpdated ApplyOutcome = "notes_updated"
)

// Creature is a combatant or character holding HP state and an ordered
// collection of status effects. The creature owns its effects exclusively;
// nothing else mutates them directly.
type Creature struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	MaxHP     int             `json:"max_hp"`
	CurrentHP int             `json:"current_hp"`
	Effects   []*StatusEffect `json:"effects"`
}

// NewCreature creates a creature at full HP with no effects
func NewCreature(id, name string, maxHP int) *Creature {
	return &Creature{
		ID:        id,
		Name:      name,
		MaxHP:     maxHP,
		CurrentHP: maxHP,
		Effects:   []*StatusEffect{},
	}
}

// ChangeHP applies damage or healing and returns the actual change.
// Healing clamps at MaxHP, so the returned delta may be smaller than the
// requested amount. Damage returns -amount and has no floor; HP may go
// arbitrarily negative, defeat is a derived display state.
func (c *Creature) ChangeHP(amount int, isHeal bool) int {
	if isHeal {
		newHP := c.CurrentHP + amount
		if newHP > c.MaxHP {
			newHP = c.MaxHP
		}
		healed := newHP - c.CurrentHP
		c.CurrentHP = newHP
		return healed
	}

	c.CurrentHP -= amount
	return -amount
}

// ApplyEffect adds an effect or merges it into an existing one with the same
// name (case-insensitive). A match gets its description overwritten; timed
// re-applications also reset the timer, while untimed ones (duration 0) must
// never touch a running timer. No match appends, preserving insertion order.
func (c *Creature) ApplyEffect(effect *StatusEffect) ApplyOutcome {
	for _, existing := range c.Effects {
		if !strings.EqualFold(existing.Name, effect.Name) {
			continue
		}

		existing.Description = effect.Description
		if effect.Duration != DurationNote {
			existing.Duration = effect.Duration
			existing.RoundsRemaining = effect.RoundsRemaining
			return OutcomeDurationReset
		}
		return OutcomeNotesUpdated
	}

	c.Effects = append(c.Effects, effect)
	switch {
	case effect.IsNote():
		return OutcomeAppliedNote
	case effect.IsPermanent():
		return OutcomeAppliedPermanent
	default:
		return OutcomeAppliedTimed
	}
}

// RemoveEffect removes all effects matching the name case-insensitively.
// It reports whether anything was removed; a miss is not an error here.
func (c *Creature) RemoveEffect(name string) bool {
	kept := make([]*StatusEffect, 0, len(c.Effects))
	for _, effect := range c.Effects {
		if !strings.EqualFold(effect.Name, name) {
			kept = append(kept, effect)
		}
	}

	removed := len(kept) < len(c.Effects)
	c.Effects = kept
	return removed
}

// TickDownEffects advances every effect by one round and evicts the ones
// that expire, returning their names in order. Permanent and note effects
// are retained untouched. Relative order of survivors is preserved.
func (c *Creature) TickDownEffects() []string {
	var ended []string
	kept := make([]*StatusEffect, 0, len(c.Effects))

	for _, effect := range c.Effects {
		if effect.Duration <= 0 {
			kept = append(kept, effect)
			continue
		}

		if effect.TickDown() {
			ended = append(ended, effect.Name)
		} else {
			kept = append(kept, effect)
		}
	}

	c.Effects = kept
	return ended
}

// Status derives the display state from current HP. Bloodied means below
// half of max HP; the comparison is against the real-valued half, so 3/7 HP
// is Bloodied.
func (c *Creature) Status() CreatureStatus {
	switch {
	case c.CurrentHP <= 0:
		return StatusDefeated
	case 2*c.CurrentHP < c.MaxHP:
		return StatusBloodied
	default:
		return StatusAlive
	}
}

// Clone returns a deep copy, so repositories can hand out creatures without
// sharing effect pointers with callers
func (c *Creature) Clone() *Creature {
	clone := *c
	clone.Effects = make([]*StatusEffect, len(c.Effects))
	for i, effect := range c.Effects {
		effectCopy := *effect
		clone.Effects[i] = &effectCopy
	}
	return &clone
}
