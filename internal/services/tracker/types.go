package tracker

import (
	"github.com/KirkDiggler/combat-tracker/internal/domain/combat"
)

// AddCreatureInput contains data for adding a creature to the encounter
type AddCreatureInput struct {
	Name  string
	MaxHP int
}

// AddCreatureOutput is the result of adding a creature. Creature is nil when
// the name was blank and the request was ignored.
type AddCreatureOutput struct {
	Creature *combat.Creature
}

// ApplyEffectInput contains data for applying an effect to a creature
type ApplyEffectInput struct {
	CreatureName string
	EffectName   string
	Duration     int
	Description  string
}

// ApplyEffectOutput reports how the effect landed on the creature
type ApplyEffectOutput struct {
	Outcome combat.ApplyOutcome
	Effect  *combat.StatusEffect
}

// RemoveEffectInput contains data for removing an effect from a creature
type RemoveEffectInput struct {
	CreatureName string
	EffectName   string
}

// ModifyHPInput contains data for damaging or healing a creature
type ModifyHPInput struct {
	CreatureName string
	Amount       int
	IsHeal       bool
}

// ModifyHPOutput reports the actual HP change and resulting state
type ModifyHPOutput struct {
	Change    int
	CurrentHP int
	MaxHP     int
	Status    combat.CreatureStatus
}

// CreatureExpiry lists the effects that wore off one creature this round
type CreatureExpiry struct {
	CreatureName string
	Expired      []string
}

// AdvanceRoundOutput reports the new round, per-creature expiries, and a
// fresh status snapshot
type AdvanceRoundOutput struct {
	Round    int
	Expired  []CreatureExpiry
	Snapshot *StatusSnapshot
}

// StatusSnapshot is a read-only view of the whole encounter
type StatusSnapshot struct {
	Round     int
	Creatures []*CreatureSnapshot
}

// CreatureSnapshot is a read-only view of one creature: HP, the derived
// status label, and rendered effect lines
type CreatureSnapshot struct {
	Name      string
	CurrentHP int
	MaxHP     int
	Status    combat.CreatureStatus
	Effects   []string
}
