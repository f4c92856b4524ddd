package tracker

//go:generate mockgen -destination=mock/mock_service.go -package=mocktracker -source=service.go

import (
	"context"
	"strings"
	"sync"

	"github.com/KirkDiggler/combat-tracker/internal/domain/combat"
	trackererr "github.com/KirkDiggler/combat-tracker/internal/errors"
	"github.com/KirkDiggler/combat-tracker/internal/repositories/creatures"
	"github.com/KirkDiggler/combat-tracker/internal/uuid"
)

// Repository is an alias for the creature repository interface
type Repository = creatures.Repository

// Service tracks creatures, their HP, and status effects across rounds.
// Failed operations leave state unchanged and report a coded error.
type Service interface {
	// AddCreature adds a creature at full HP. Blank names are ignored.
	AddCreature(ctx context.Context, input *AddCreatureInput) (*AddCreatureOutput, error)

	// RemoveCreature removes a creature and its effects from the encounter
	RemoveCreature(ctx context.Context, name string) error

	// ApplyEffect applies or merges a status effect on a creature
	ApplyEffect(ctx context.Context, input *ApplyEffectInput) (*ApplyEffectOutput, error)

	// RemoveEffect removes all effects matching the name from a creature
	RemoveEffect(ctx context.Context, input *RemoveEffectInput) error

	// ModifyHP damages or heals a creature
	ModifyHP(ctx context.Context, input *ModifyHPInput) (*ModifyHPOutput, error)

	// AdvanceRound advances the encounter clock and ticks every timed effect
	AdvanceRound(ctx context.Context) (*AdvanceRoundOutput, error)

	// GetStatusSnapshot returns the current round and per-creature state
	GetStatusSnapshot(ctx context.Context) (*StatusSnapshot, error)
}

// service implements the Service interface
type service struct {
	repository    Repository
	uuidGenerator uuid.Generator

	mu    sync.Mutex
	round int
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    Repository     // Required
	UUIDGenerator uuid.Generator // Optional, will use default if nil
}

// NewService creates a new tracker service starting at round 0
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository: cfg.Repository,
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

// AddCreature adds a creature at full HP
func (s *service) AddCreature(ctx context.Context, input *AddCreatureInput) (*AddCreatureOutput, error) {
	if input == nil {
		return nil, trackererr.InvalidArgument("input cannot be nil")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		// Blank names are silently ignored: no creature, no error
		return &AddCreatureOutput{}, nil
	}

	creature := combat.NewCreature(s.uuidGenerator.New(), name, input.MaxHP)
	if err := s.repository.Create(ctx, creature); err != nil {
		return nil, err
	}

	return &AddCreatureOutput{Creature: creature}, nil
}

// RemoveCreature removes a creature and its effects
func (s *service) RemoveCreature(ctx context.Context, name string) error {
	return s.repository.Delete(ctx, strings.TrimSpace(name))
}

// ApplyEffect applies or merges a status effect on a creature
func (s *service) ApplyEffect(ctx context.Context, input *ApplyEffectInput) (*ApplyEffectOutput, error) {
	if input == nil {
		return nil, trackererr.InvalidArgument("input cannot be nil")
	}

	creature, err := s.repository.Get(ctx, input.CreatureName)
	if err != nil {
		return nil, err
	}

	effect := combat.NewStatusEffect(input.EffectName, input.Duration, input.Description)
	outcome := creature.ApplyEffect(effect)

	if err := s.repository.Update(ctx, creature); err != nil {
		return nil, err
	}

	return &ApplyEffectOutput{
		Outcome: outcome,
		Effect:  effect,
	}, nil
}

// RemoveEffect removes all effects matching the name from a creature
func (s *service) RemoveEffect(ctx context.Context, input *RemoveEffectInput) error {
	if input == nil {
		return trackererr.InvalidArgument("input cannot be nil")
	}

	creature, err := s.repository.Get(ctx, input.CreatureName)
	if err != nil {
		return err
	}

	if !creature.RemoveEffect(input.EffectName) {
		return trackererr.NotFoundf("effect '%s' not found on %s", input.EffectName, creature.Name).
			WithMeta("creature_name", creature.Name).
			WithMeta("effect_name", input.EffectName)
	}

	return s.repository.Update(ctx, creature)
}

// ModifyHP damages or heals a creature
func (s *service) ModifyHP(ctx context.Context, input *ModifyHPInput) (*ModifyHPOutput, error) {
	if input == nil {
		return nil, trackererr.InvalidArgument("input cannot be nil")
	}

	creature, err := s.repository.Get(ctx, input.CreatureName)
	if err != nil {
		return nil, err
	}

	change := creature.ChangeHP(input.Amount, input.IsHeal)

	if err := s.repository.Update(ctx, creature); err != nil {
		return nil, err
	}

	return &ModifyHPOutput{
		Change:    change,
		CurrentHP: creature.CurrentHP,
		MaxHP:     creature.MaxHP,
		Status:    creature.Status(),
	}, nil
}

// AdvanceRound advances the encounter clock and ticks every timed effect.
// The round counter increments even with zero creatures tracked.
func (s *service) AdvanceRound(ctx context.Context) (*AdvanceRoundOutput, error) {
	s.mu.Lock()
	s.round++
	round := s.round
	s.mu.Unlock()

	tracked, err := s.repository.List(ctx)
	if err != nil {
		return nil, err
	}

	var expired []CreatureExpiry
	for _, creature := range tracked {
		ended := creature.TickDownEffects()

		// List hands out clones, so every tick must be written back even
		// when nothing expired; a decrement alone still changed the creature
		if err := s.repository.Update(ctx, creature); err != nil {
			return nil, err
		}

		if len(ended) > 0 {
			expired = append(expired, CreatureExpiry{
				CreatureName: creature.Name,
				Expired:      ended,
			})
		}
	}

	return &AdvanceRoundOutput{
		Round:    round,
		Expired:  expired,
		Snapshot: buildSnapshot(round, tracked),
	}, nil
}

// GetStatusSnapshot returns the current round and per-creature state.
// Status labels are derived from HP on every call, never cached.
func (s *service) GetStatusSnapshot(ctx context.Context) (*StatusSnapshot, error) {
	tracked, err := s.repository.List(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	round := s.round
	s.mu.Unlock()

	return buildSnapshot(round, tracked), nil
}

func buildSnapshot(round int, tracked []*combat.Creature) *StatusSnapshot {
	snapshot := &StatusSnapshot{
		Round:     round,
		Creatures: make([]*CreatureSnapshot, 0, len(tracked)),
	}

	for _, creature := range tracked {
		rendered := make([]string, 0, len(creature.Effects))
		for _, effect := range creature.Effects {
			rendered = append(rendered, effect.String())
		}

		snapshot.Creatures = append(snapshot.Creatures, &CreatureSnapshot{
			Name:      creature.Name,
			CurrentHP: creature.CurrentHP,
			MaxHP:     creature.MaxHP,
			Status:    creature.Status(),
			Effects:   rendered,
		})
	}

	return snapshot
}
