package entity

import (
	"fmt"

	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

// NewRound creates the round singleton already in PhasePlaying.
func NewRound(w *ecs.World, id string, maxHealth int) (ecs.Entity, error) {
	if maxHealth <= 0 {
		return 0, fmt.Errorf("round: invalid max health %d", maxHealth)
	}
	if _, exists := ecs.First(w, component.RoundComponent.Kind()); exists {
		return 0, fmt.Errorf("round: world already has a round")
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.RoundComponent.Kind(), &component.Round{
		ID:        id,
		Phase:     component.PhasePlaying,
		Health:    maxHealth,
		MaxHealth: maxHealth,
	}); err != nil {
		return 0, fmt.Errorf("round: add round: %w", err)
	}
	return e, nil
}
