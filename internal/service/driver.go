package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/y122132/pet-trainer-sub000/internal/battle"
	"github.com/y122132/pet-trainer-sub000/internal/catalog"
	"github.com/y122132/pet-trainer-sub000/internal/constants"
	"github.com/y122132/pet-trainer-sub000/internal/logging"
	"github.com/y122132/pet-trainer-sub000/internal/room"
	"github.com/y122132/pet-trainer-sub000/internal/storage"
	"github.com/y122132/pet-trainer-sub000/internal/ws"
)

// SnapshotSource resolves the immutable combatant snapshot used to seed a
// room.
type SnapshotSource interface {
	Snapshot(ctx context.Context, userID string) (*storage.CharacterSnapshot, error)
}

// RewardService persists battle outcomes back to the durable store.
type RewardService interface {
	ApplyBattleOutcome(winnerID, loserID string, draw bool) (map[string]*storage.RewardResult, error)
	SavePetHealth(userID string, currentHP int) error
}

// Notifier delivers events to connected clients. *ws.Hub satisfies it.
type Notifier interface {
	SendToUser(userID, eventType string, payload interface{})
	RoomBroadcast(roomID, eventType string, payload interface{})
	JoinRoom(roomID, userID string)
	DropRoom(roomID string)
}

// Driver owns the battle lifecycle: room creation, move intake, turn
// resolution and finalization. All shared state lives in the room
// repository; the driver itself only holds immutable collaborators, so one
// instance serves every connection.
type Driver struct {
	repo    room.Repository
	chars   SnapshotSource
	rewards RewardService
	notify  Notifier
	lockTTL time.Duration
	rng     *rand.Rand
}

func NewDriver(repo room.Repository, chars SnapshotSource, rewards RewardService, notify Notifier, lockTTL time.Duration) *Driver {
	return &Driver{
		repo:    repo,
		chars:   chars,
		rewards: rewards,
		notify:  notify,
		lockTTL: lockTTL,
		rng:     newLockedRand(),
	}
}

// CreateRoom seeds a room for the two combatants, persists it and announces
// the match. A guest id of constants.BotUserID creates a battle against a
// scripted opponent leveled to match the host.
func (d *Driver) CreateRoom(ctx context.Context, hostID, guestID string) (string, error) {
	hostSnap, err := d.chars.Snapshot(ctx, hostID)
	if err != nil {
		return "", fmt.Errorf("snapshot host: %w", err)
	}
	var guestSnap *storage.CharacterSnapshot
	isAI := guestID == constants.BotUserID
	if isAI {
		guestSnap = storage.BotSnapshot(d.rng, hostSnap.Level)
	} else {
		guestSnap, err = d.chars.Snapshot(ctx, guestID)
		if err != nil {
			return "", fmt.Errorf("snapshot guest: %w", err)
		}
	}

	rm := room.New(uuid.NewString())
	rm.IsAIBattle = isAI
	rm.AddCombatant(hostID, hostSnap.PetName, hostSnap.Species, hostSnap.Stats, hostSnap.Learned, hostSnap.CurrentHP)
	rm.AddCombatant(guestID, guestSnap.PetName, guestSnap.Species, guestSnap.Stats, guestSnap.Learned, guestSnap.CurrentHP)

	if err := d.repo.SaveRoom(ctx, rm); err != nil {
		return "", fmt.Errorf("save new room: %w", err)
	}
	for _, p := range rm.Players {
		if err := d.repo.AddPlayer(ctx, rm.ID, p); err != nil {
			return "", err
		}
		if p != constants.BotUserID {
			if err := d.repo.SetUserRoom(ctx, p, rm.ID); err != nil {
				return "", err
			}
		}
	}

	for _, p := range rm.Players {
		if p == constants.BotUserID {
			continue
		}
		opponent, _ := rm.Opponent(p)
		d.notify.JoinRoom(rm.ID, p)
		d.notify.SendToUser(p, constants.EventMatchFound, ws.MatchFoundPayload{RoomID: rm.ID, OpponentID: opponent})
		d.notify.RoomBroadcast(rm.ID, constants.EventJoin, ws.JoinPayload{UserID: p, CurrentPlayers: rm.Players})
	}
	d.notify.RoomBroadcast(rm.ID, constants.EventBattleStart, d.battleStartPayload(rm))

	logging.Info("battle room created", logging.Fields{
		constants.LogFieldRoomID: rm.ID,
		"players":                rm.Players,
		"ai_battle":              rm.IsAIBattle,
	})
	return rm.ID, nil
}

func (d *Driver) battleStartPayload(rm *room.Room) ws.BattleStartPayload {
	payload := ws.BattleStartPayload{RoomID: rm.ID}
	for _, p := range rm.Players {
		state := rm.BattleStates[p]
		intro := ws.CombatantIntro{
			UserID:  p,
			PetName: rm.PetNames[p],
			Species: rm.PetTypes[p],
			HP:      state.CurrentHP,
			MaxHP:   state.MaxHP,
		}
		for _, id := range rm.LearnedSkills[p] {
			if mv, ok := catalog.MoveByID(id); ok {
				intro.Moves = append(intro.Moves, ws.MoveInfo{ID: id, Name: mv.Name, PP: state.PP[id], MaxPP: mv.MaxPP})
			}
		}
		payload.Combatants = append(payload.Combatants, intro)
	}
	return payload
}

// SubmitMove validates and records a combatant's selection. When the
// selection completes the turn it also attempts resolution; losing the
// turn-lock race there is not an error, the winner resolves for both.
func (d *Driver) SubmitMove(ctx context.Context, userID string, moveID int) error {
	roomID, err := d.repo.UserRoom(ctx, userID)
	if err != nil {
		return err
	}
	if roomID == "" {
		return ErrNotInBattle
	}
	rm, err := d.repo.LoadRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			_ = d.repo.ClearUserRoom(ctx, userID)
			return ErrNotInBattle
		}
		return err
	}
	if !rm.HasPlayer(userID) {
		return ErrNotInRoom
	}
	state, ok := rm.BattleStates[userID]
	if !ok {
		return ErrStateMissing
	}

	// Everything out of PP forces the fallback move regardless of what was
	// asked for.
	if !state.HasUsablePP() {
		moveID = catalog.MoveIDStruggle
	}
	if _, ok := catalog.MoveByID(moveID); !ok {
		return ErrUnknownMove
	}
	if moveID != catalog.MoveIDStruggle {
		if !rm.HasLearned(userID, moveID) {
			return ErrMoveNotLearned
		}
		if state.PP[moveID] <= 0 {
			return ErrMoveOutOfPP
		}
	}

	if err := d.repo.SubmitMove(ctx, roomID, userID, moveID); err != nil {
		return fmt.Errorf("submit move: %w", err)
	}

	if rm.IsAIBattle {
		botMove := ChooseBotMove(d.rng, rm.BattleStates[constants.BotUserID], rm.LearnedSkills[constants.BotUserID])
		if err := d.repo.SubmitMove(ctx, roomID, constants.BotUserID, botMove); err != nil {
			return fmt.Errorf("submit bot move: %w", err)
		}
	}

	selections, err := d.repo.Selections(ctx, roomID)
	if err != nil {
		return err
	}
	if !allSelected(rm, selections) {
		d.notify.SendToUser(userID, constants.EventWaiting, ws.WaitingPayload{Message: "Waiting for your opponent..."})
		return nil
	}
	return d.tryResolveTurn(ctx, roomID)
}

func allSelected(rm *room.Room, selections map[string]int) bool {
	if len(rm.Players) < 2 {
		return false
	}
	for _, p := range rm.Players {
		if _, ok := selections[p]; !ok {
			return false
		}
	}
	return true
}

// tryResolveTurn resolves one turn if this caller wins the turn lock.
// Losing the lock means the other submitter is resolving; that caller will
// broadcast the result, so there is nothing left to do here.
func (d *Driver) tryResolveTurn(ctx context.Context, roomID string) error {
	acquired, err := d.repo.AcquireTurnLock(ctx, roomID, d.lockTTL)
	if err != nil {
		return fmt.Errorf("acquire turn lock: %w", err)
	}
	if !acquired {
		return nil
	}
	defer func() {
		if err := d.repo.ReleaseTurnLock(ctx, roomID); err != nil {
			logging.Error("release turn lock", err, logging.Fields{constants.LogFieldRoomID: roomID})
		}
	}()

	// Reload under the lock: the pre-lock view may be stale, and the
	// previous lock holder may already have consumed these selections.
	rm, err := d.repo.LoadRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			return nil
		}
		return err
	}
	selections, err := d.repo.Selections(ctx, roomID)
	if err != nil {
		return err
	}
	if !allSelected(rm, selections) {
		return nil
	}

	entries, gameOver := d.resolveTurn(rm, selections)

	// Persist before broadcasting so a crash after this point never leaves
	// clients ahead of the store.
	if err := d.repo.SaveRoom(ctx, rm); err != nil {
		return fmt.Errorf("save room after turn: %w", err)
	}
	if err := d.repo.ClearSelections(ctx, roomID); err != nil {
		return fmt.Errorf("clear selections: %w", err)
	}

	d.notify.RoomBroadcast(roomID, constants.EventTurnResult, ws.TurnResultPayload{
		Turn:       rm.TurnCount,
		Entries:    entries,
		Combatants: snapshotCombatants(rm),
		IsGameOver: gameOver,
	})
	logging.Info("turn resolved", logging.Fields{
		constants.LogFieldRoomID: roomID,
		constants.LogFieldTurn:   rm.TurnCount,
		"game_over":              gameOver,
	})

	if gameOver {
		d.finalizeFromStates(ctx, rm)
	}
	return nil
}

func snapshotCombatants(rm *room.Room) map[string]ws.CombatantSnapshot {
	out := make(map[string]ws.CombatantSnapshot, len(rm.Players))
	for _, p := range rm.Players {
		state := rm.BattleStates[p]
		out[p] = ws.CombatantSnapshot{
			HP:          state.CurrentHP,
			MaxHP:       state.MaxHP,
			Status:      string(state.Ailment),
			StatusTurns: state.StatusTurns,
			PP:          state.PP,
		}
	}
	return out
}

// resolveTurn mutates the aggregate through one full turn and returns the
// consolidated log plus whether the battle ended.
func (d *Driver) resolveTurn(rm *room.Room, selections map[string]int) ([]battle.LogEntry, bool) {
	p1, p2 := rm.Players[0], rm.Players[1]
	mv1 := selectedMove(rm, selections, p1)
	mv2 := selectedMove(rm, selections, p2)

	first, second := p1, p2
	firstMv, secondMv := mv1, mv2
	if battle.DetermineTurnOrder(d.rng, rm.CharacterStats[p1], rm.BattleStates[p1], mv1, rm.CharacterStats[p2], rm.BattleStates[p2], mv2) == 2 {
		first, second = p2, p1
		firstMv, secondMv = mv2, mv1
	}

	var entries []battle.LogEntry
	fainted := make(map[string]bool)

	d.executeAction(rm, first, second, firstMv, &entries)
	noteFaints(rm, fainted, &entries)
	if !fainted[first] && !fainted[second] {
		d.executeAction(rm, second, first, secondMv, &entries)
		noteFaints(rm, fainted, &entries)
	}

	// End-of-turn residuals run in acting order for every combatant still
	// standing, including a would-be winner. A survivor dying to its own
	// ailment here turns the knockout into a draw.
	for _, p := range []string{first, second} {
		if fainted[p] {
			continue
		}
		if _, entry := battle.ProcessStatusEffects(rm.BattleStates[p], rm.PetNames[p]); entry != nil {
			entries = append(entries, *entry)
		}
	}
	noteFaints(rm, fainted, &entries)

	rm.TurnCount++
	return entries, len(fainted) > 0
}

func selectedMove(rm *room.Room, selections map[string]int, userID string) catalog.Move {
	id, ok := selections[userID]
	if !ok {
		id = catalog.MoveIDStruggle
	}
	mv, ok := catalog.MoveByID(id)
	if !ok {
		mv, _ = catalog.MoveByID(catalog.MoveIDStruggle)
	}
	return mv
}

// noteFaints appends a faint entry for each combatant newly at zero HP.
func noteFaints(rm *room.Room, fainted map[string]bool, entries *[]battle.LogEntry) {
	for _, p := range rm.Players {
		if fainted[p] || !rm.BattleStates[p].IsFainted() {
			continue
		}
		fainted[p] = true
		*entries = append(*entries, battle.LogEntry{Actor: rm.PetNames[p], Kind: battle.LogKindFaint, Text: fmt.Sprintf("%s fainted!", rm.PetNames[p])})
	}
}

// executeAction runs one combatant's move for the turn.
func (d *Driver) executeAction(rm *room.Room, actorID, targetID string, mv catalog.Move, entries *[]battle.LogEntry) {
	actor := rm.BattleStates[actorID]
	target := rm.BattleStates[targetID]
	actorName := rm.PetNames[actorID]
	targetName := rm.PetNames[targetID]

	can, entry, _ := battle.CanMove(d.rng, actor, actorName)
	if entry != nil {
		*entries = append(*entries, *entry)
	}
	if !can {
		return
	}

	actor.SpendPP(mv.ID)
	logging.Debug("action executed", logging.Fields{constants.LogFieldRoomID: rm.ID, constants.LogFieldUserID: actorID, constants.LogFieldMoveID: mv.ID})
	*entries = append(*entries, battle.LogEntry{Actor: actorName, Kind: battle.LogKindMove, Text: fmt.Sprintf("%s used %s!", actorName, mv.Name)})

	if target.HasVolatile(catalog.VolatileProtect) {
		*entries = append(*entries, battle.LogEntry{Actor: targetName, Kind: battle.LogKindInfo, Text: fmt.Sprintf("%s protected itself!", targetName)})
		return
	}
	if !battle.CheckHit(d.rng, rm.CharacterStats[actorID], actor, rm.CharacterStats[targetID], target, mv) {
		*entries = append(*entries, battle.LogEntry{Actor: actorName, Kind: battle.LogKindInfo, Text: "But it missed!"})
		return
	}

	if mv.Power > 0 {
		result := battle.ComputeDamage(d.rng, rm.CharacterStats[actorID], actor, rm.CharacterStats[targetID], target, mv, rm.SpeciesElement(targetID), rm.Field)
		if result.Effectiveness == battle.EffectivenessImmune {
			*entries = append(*entries, battle.LogEntry{Actor: targetName, Kind: battle.LogKindInfo, Text: fmt.Sprintf("It doesn't affect %s...", targetName)})
			return
		}
		dealt := target.ApplyDamage(result.Damage)
		if result.Critical {
			*entries = append(*entries, battle.LogEntry{Actor: actorName, Kind: battle.LogKindInfo, Text: "A critical hit!"})
		}
		switch result.Effectiveness {
		case battle.EffectivenessSuper:
			*entries = append(*entries, battle.LogEntry{Actor: actorName, Kind: battle.LogKindInfo, Text: "It's super effective!"})
		case battle.EffectivenessNotVery:
			*entries = append(*entries, battle.LogEntry{Actor: actorName, Kind: battle.LogKindInfo, Text: "It's not very effective..."})
		}
		*entries = append(*entries, battle.LogEntry{Actor: targetName, Kind: battle.LogKindMove, Text: fmt.Sprintf("%s took %d damage!", targetName, dealt)})
	}

	*entries = append(*entries, battle.ApplyMoveEffects(d.rng, mv, actor, target, &rm.Field, actorName, targetName)...)
}

// Surrender ends the battle immediately in the opponent's favor. It does
// not contend for the turn lock; the conceded outcome wins over whatever a
// concurrent resolution computes.
func (d *Driver) Surrender(ctx context.Context, userID string) error {
	roomID, err := d.repo.UserRoom(ctx, userID)
	if err != nil {
		return err
	}
	if roomID == "" {
		return ErrNotInBattle
	}
	rm, err := d.repo.LoadRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			_ = d.repo.ClearUserRoom(ctx, userID)
			return ErrNotInBattle
		}
		return err
	}
	winnerID, ok := rm.Opponent(userID)
	if !ok {
		_ = d.repo.ClearUserRoom(ctx, userID)
		return ErrNotInBattle
	}

	d.notify.RoomBroadcast(rm.ID, constants.EventLeave, ws.LeavePayload{UserID: userID})
	d.notify.RoomBroadcast(rm.ID, constants.EventTurnResult, ws.TurnResultPayload{
		Turn:       rm.TurnCount,
		Entries:    []battle.LogEntry{{Actor: rm.PetNames[userID], Kind: battle.LogKindInfo, Text: fmt.Sprintf("%s surrendered!", rm.PetNames[userID])}},
		Combatants: snapshotCombatants(rm),
		IsGameOver: true,
	})
	d.finalize(ctx, rm, winnerID, userID, false)
	return nil
}

// finalizeFromStates derives the outcome from fainted states after a
// resolved turn. Both sides down is a draw.
func (d *Driver) finalizeFromStates(ctx context.Context, rm *room.Room) {
	p1, p2 := rm.Players[0], rm.Players[1]
	f1 := rm.BattleStates[p1].IsFainted()
	f2 := rm.BattleStates[p2].IsFainted()
	switch {
	case f1 && f2:
		d.finalize(ctx, rm, p1, p2, true)
	case f1:
		d.finalize(ctx, rm, p2, p1, false)
	default:
		d.finalize(ctx, rm, p1, p2, false)
	}
}

// finalize persists the outcome, notifies both sides and removes every
// per-room key. Persistence failures are logged and the cleanup continues;
// the battle is already decided from the clients' point of view.
func (d *Driver) finalize(ctx context.Context, rm *room.Room, winnerID, loserID string, draw bool) {
	rewards, err := d.rewards.ApplyBattleOutcome(winnerID, loserID, draw)
	if err != nil {
		logging.Error("apply battle outcome", err, logging.Fields{constants.LogFieldRoomID: rm.ID})
		rewards = map[string]*storage.RewardResult{}
	}

	for _, p := range rm.Players {
		if p == constants.BotUserID {
			continue
		}
		if err := d.rewards.SavePetHealth(p, rm.BattleStates[p].CurrentHP); err != nil {
			logging.Error("save pet health", err, logging.Fields{constants.LogFieldUserID: p})
		}
		result := constants.ResultDraw
		if !draw {
			result = constants.ResultLose
			if p == winnerID {
				result = constants.ResultWin
			}
		}
		payload := ws.GameOverPayload{Result: result, Reward: rewards[p]}
		if !draw {
			payload.Winner = winnerID
		}
		d.notify.SendToUser(p, constants.EventGameOver, payload)
	}

	for _, p := range rm.Players {
		if p != constants.BotUserID {
			if err := d.repo.ClearUserRoom(ctx, p); err != nil {
				logging.Error("clear user room index", err, logging.Fields{constants.LogFieldUserID: p})
			}
		}
		if err := d.repo.RemovePlayer(ctx, rm.ID, p); err != nil {
			logging.Error("remove player", err, logging.Fields{constants.LogFieldRoomID: rm.ID, constants.LogFieldUserID: p})
		}
	}
	if err := d.repo.ClearSelections(ctx, rm.ID); err != nil {
		logging.Error("clear selections", err, logging.Fields{constants.LogFieldRoomID: rm.ID})
	}
	if err := d.repo.DeleteRoom(ctx, rm.ID); err != nil {
		logging.Error("delete room", err, logging.Fields{constants.LogFieldRoomID: rm.ID})
	}
	d.notify.DropRoom(rm.ID)

	logging.Info("battle finished", logging.Fields{
		constants.LogFieldRoomID: rm.ID,
		"winner":                 winnerID,
		"draw":                   draw,
		constants.LogFieldTurn:   rm.TurnCount,
	})
}
