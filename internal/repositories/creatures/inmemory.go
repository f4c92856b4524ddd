package creatures

import (
	"context"
	"sync"

	"github.com/KirkDiggler/combat-tracker/internal/domain/combat"
	trackererr "github.com/KirkDiggler/combat-tracker/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the creature
// repository. The tracker keeps no state across restarts, so this is the
// production store, not just a test double. A name-ordered slice rides
// alongside the map because iteration order must match insertion order.
type InMemoryRepository struct {
	mu        sync.RWMutex
	creatures map[string]*combat.Creature
	order     []string
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		creatures: make(map[string]*combat.Creature),
		order:     []string{},
	}
}

// Create stores a new creature
func (r *InMemoryRepository) Create(ctx context.Context, creature *combat.Creature) error {
	if creature == nil {
		return trackererr.InvalidArgument("creature cannot be nil")
	}

	if creature.Name == "" {
		return trackererr.InvalidArgument("creature name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.creatures[creature.Name]; exists {
		return trackererr.AlreadyExistsf("creature '%s' already exists", creature.Name).
			WithMeta("creature_name", creature.Name)
	}

	// Store a copy to avoid external modifications
	r.creatures[creature.Name] = creature.Clone()
	r.order = append(r.order, creature.Name)

	return nil
}

// Get retrieves a creature by name
func (r *InMemoryRepository) Get(ctx context.Context, name string) (*combat.Creature, error) {
	if name == "" {
		return nil, trackererr.InvalidArgument("creature name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	creature, exists := r.creatures[name]
	if !exists {
		return nil, trackererr.NotFoundf("creature '%s' not found", name).
			WithMeta("creature_name", name)
	}

	// Return a copy to avoid external modifications
	return creature.Clone(), nil
}

// Update modifies an existing creature
func (r *InMemoryRepository) Update(ctx context.Context, creature *combat.Creature) error {
	if creature == nil {
		return trackererr.InvalidArgument("creature cannot be nil")
	}

	if creature.Name == "" {
		return trackererr.InvalidArgument("creature name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.creatures[creature.Name]; !exists {
		return trackererr.NotFoundf("creature '%s' not found", creature.Name).
			WithMeta("creature_name", creature.Name)
	}

	r.creatures[creature.Name] = creature.Clone()

	return nil
}

// Delete removes a creature
func (r *InMemoryRepository) Delete(ctx context.Context, name string) error {
	if name == "" {
		return trackererr.InvalidArgument("creature name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.creatures[name]; !exists {
		return trackererr.NotFoundf("creature '%s' not found", name).
			WithMeta("creature_name", name)
	}

	delete(r.creatures, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

// List retrieves all creatures in insertion order
func (r *InMemoryRepository) List(ctx context.Context) ([]*combat.Creature, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*combat.Creature, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.creatures[name].Clone())
	}

	return result, nil
}
