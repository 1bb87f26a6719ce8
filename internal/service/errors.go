// Package service hosts the turn resolution driver and the matchmaking
// queue: it consumes submitted moves, decides when a turn is ready,
// serializes resolution through the store's turn lock and drives rooms to
// their terminal state.
package service

import "errors"

var (
	ErrNotInBattle    = errors.New("user has no active battle")
	ErrNotInRoom      = errors.New("user is not part of this room")
	ErrUnknownMove    = errors.New("unknown move id")
	ErrMoveNotLearned = errors.New("move not in learned set")
	ErrMoveOutOfPP    = errors.New("move has no PP left")
	ErrStateMissing   = errors.New("combat state missing from aggregate")
	ErrAlreadyQueued  = errors.New("user already queued")
	ErrNotQueued      = errors.New("user not queued")
)
