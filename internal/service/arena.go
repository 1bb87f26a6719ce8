package service

import (
	"context"
	"errors"
	"time"

	"github.com/y122132/pet-trainer-sub000/internal/constants"
	"github.com/y122132/pet-trainer-sub000/internal/logging"
	"github.com/y122132/pet-trainer-sub000/internal/storage"
	"github.com/y122132/pet-trainer-sub000/internal/ws"
)

// Arena is the websocket command gateway: it translates inbound client
// actions into matchmaker and driver calls and maps the service sentinels
// to user-visible errors.
type Arena struct {
	driver *Driver
	match  *Matchmaker
	notify Notifier
}

func NewArena(driver *Driver, match *Matchmaker, notify Notifier) *Arena {
	return &Arena{driver: driver, match: match, notify: notify}
}

var _ ws.CommandHandler = (*Arena)(nil)

func (a *Arena) HandleQueue(ctx context.Context, userID string) error {
	opponentID, matched, err := a.match.Enqueue(userID)
	if err != nil {
		if errors.Is(err, ErrAlreadyQueued) {
			return ws.NewClientError(constants.ErrCodeState, constants.ErrAlreadyQueued)
		}
		return err
	}
	if !matched {
		a.notify.SendToUser(userID, constants.EventWaiting, ws.WaitingPayload{Message: "Searching for an opponent..."})
		return nil
	}
	if _, err := a.driver.CreateRoom(ctx, opponentID, userID); err != nil {
		if errors.Is(err, storage.ErrPetNotFound) {
			return ws.NewClientError(constants.ErrCodeValidation, constants.ErrCharacterMissing)
		}
		return err
	}
	return nil
}

func (a *Arena) HandleCancel(ctx context.Context, userID string) error {
	if err := a.match.Cancel(userID); err != nil {
		if errors.Is(err, ErrNotQueued) {
			return ws.NewClientError(constants.ErrCodeState, constants.ErrNotQueued)
		}
		return err
	}
	return nil
}

func (a *Arena) HandleMove(ctx context.Context, userID string, moveID int) error {
	err := a.driver.SubmitMove(ctx, userID, moveID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotInBattle):
		return ws.NewClientError(constants.ErrCodeState, constants.ErrRoomNotFound)
	case errors.Is(err, ErrNotInRoom):
		return ws.NewClientError(constants.ErrCodeState, constants.ErrNotInRoom)
	case errors.Is(err, ErrStateMissing):
		return ws.NewClientError(constants.ErrCodeState, constants.ErrCombatStateMissing)
	case errors.Is(err, ErrUnknownMove):
		return ws.NewClientError(constants.ErrCodeValidation, constants.ErrUnknownMove)
	case errors.Is(err, ErrMoveNotLearned):
		return ws.NewClientError(constants.ErrCodeValidation, constants.ErrMoveNotLearned)
	case errors.Is(err, ErrMoveOutOfPP):
		return ws.NewClientError(constants.ErrCodeValidation, constants.ErrMoveOutOfPP)
	default:
		return err
	}
}

func (a *Arena) HandleSurrender(ctx context.Context, userID string) error {
	err := a.driver.Surrender(ctx, userID)
	if errors.Is(err, ErrNotInBattle) {
		return ws.NewClientError(constants.ErrCodeState, constants.ErrRoomNotFound)
	}
	return err
}

// HandleDisconnect drops any queue ticket and concedes an in-progress
// battle. A disconnect with no active battle is a no-op.
func (a *Arena) HandleDisconnect(userID string) {
	a.match.Remove(userID)
	err := a.driver.Surrender(context.Background(), userID)
	if err != nil && !errors.Is(err, ErrNotInBattle) {
		logging.Error("surrender on disconnect", err, logging.Fields{constants.LogFieldUserID: userID})
	}
}

// RunQueueSweeper periodically converts tickets older than maxWait into
// battles against a scripted opponent so nobody waits forever. It returns
// when the context is cancelled.
func (a *Arena) RunQueueSweeper(ctx context.Context, interval, maxWait time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, userID := range a.match.TakeStale(maxWait) {
				if _, err := a.driver.CreateRoom(ctx, userID, constants.BotUserID); err != nil {
					logging.Error("start bot battle for stale ticket", err, logging.Fields{constants.LogFieldUserID: userID})
				}
			}
		}
	}
}
