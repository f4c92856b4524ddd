package creatures

//go:generate mockgen -destination=mock/mock_repository.go -package=mockcreatures -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/combat-tracker/internal/domain/combat"
)

// Repository defines the interface for creature storage operations.
// Creatures are keyed by name (exact match) and listed in insertion order.
type Repository interface {
	// Create stores a new creature
	Create(ctx context.Context, creature *combat.Creature) error

	// Get retrieves a creature by name
	Get(ctx context.Context, name string) (*combat.Creature, error)

	// Update modifies an existing creature
	Update(ctx context.Context, creature *combat.Creature) error

	// Delete removes a creature
	Delete(ctx context.Context, name string) error

	// List retrieves all creatures in insertion order
	List(ctx context.Context) ([]*combat.Creature, error)
}
