package service

import (
	"math/rand"

	"github.com/y122132/pet-trainer-sub000/internal/battle"
	"github.com/y122132/pet-trainer-sub000/internal/catalog"
)

// ChooseBotMove picks the scripted opponent's move: uniformly random among
// learned moves that still have PP, falling back to the same no-PP move a
// human would be forced into.
func ChooseBotMove(rng *rand.Rand, state *battle.CombatState, learned []int) int {
	var usable []int
	for _, id := range learned {
		if state.PP[id] > 0 {
			usable = append(usable, id)
		}
	}
	if len(usable) == 0 {
		return catalog.MoveIDStruggle
	}
	return usable[rng.Intn(len(usable))]
}
