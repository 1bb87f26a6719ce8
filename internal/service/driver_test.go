package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/y122132/pet-trainer-sub000/internal/catalog"
	"github.com/y122132/pet-trainer-sub000/internal/constants"
	"github.com/y122132/pet-trainer-sub000/internal/room"
	"github.com/y122132/pet-trainer-sub000/internal/storage"
	"github.com/y122132/pet-trainer-sub000/internal/ws"
)

// memRepo is an in-memory room.Repository. Rooms round-trip through JSON so
// every load returns an independent copy, like the real external store.
type memRepo struct {
	mu         sync.Mutex
	rooms      map[string][]byte
	selections map[string]map[string]int
	players    map[string][]string
	userRooms  map[string]string
	locks      map[string]bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		rooms:      make(map[string][]byte),
		selections: make(map[string]map[string]int),
		players:    make(map[string][]string),
		userRooms:  make(map[string]string),
		locks:      make(map[string]bool),
	}
}

func (m *memRepo) SaveRoom(_ context.Context, r *room.Room) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.rooms[r.ID] = b
	m.mu.Unlock()
	return nil
}

func (m *memRepo) LoadRoom(_ context.Context, id string) (*room.Room, error) {
	m.mu.Lock()
	b, ok := m.rooms[id]
	m.mu.Unlock()
	if !ok {
		return nil, room.ErrRoomNotFound
	}
	var r room.Room
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (m *memRepo) DeleteRoom(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.rooms, id)
	m.mu.Unlock()
	return nil
}

func (m *memRepo) AddPlayer(_ context.Context, roomID, userID string) error {
	m.mu.Lock()
	m.players[roomID] = append(m.players[roomID], userID)
	m.mu.Unlock()
	return nil
}

func (m *memRepo) RemovePlayer(_ context.Context, roomID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.players[roomID][:0]
	for _, p := range m.players[roomID] {
		if p != userID {
			kept = append(kept, p)
		}
	}
	m.players[roomID] = kept
	return nil
}

func (m *memRepo) Players(_ context.Context, roomID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.players[roomID]...), nil
}

func (m *memRepo) PlayerCount(_ context.Context, roomID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.players[roomID]), nil
}

func (m *memRepo) SubmitMove(_ context.Context, roomID, userID string, moveID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selections[roomID] == nil {
		m.selections[roomID] = make(map[string]int)
	}
	m.selections[roomID][userID] = moveID
	return nil
}

func (m *memRepo) Selections(_ context.Context, roomID string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.selections[roomID]))
	for k, v := range m.selections[roomID] {
		out[k] = v
	}
	return out, nil
}

func (m *memRepo) ClearSelections(_ context.Context, roomID string) error {
	m.mu.Lock()
	delete(m.selections, roomID)
	m.mu.Unlock()
	return nil
}

func (m *memRepo) AcquireTurnLock(_ context.Context, roomID string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[roomID] {
		return false, nil
	}
	m.locks[roomID] = true
	return true, nil
}

func (m *memRepo) ReleaseTurnLock(_ context.Context, roomID string) error {
	m.mu.Lock()
	delete(m.locks, roomID)
	m.mu.Unlock()
	return nil
}

func (m *memRepo) SetUserRoom(_ context.Context, userID, roomID string) error {
	m.mu.Lock()
	m.userRooms[userID] = roomID
	m.mu.Unlock()
	return nil
}

func (m *memRepo) UserRoom(_ context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userRooms[userID], nil
}

func (m *memRepo) ClearUserRoom(_ context.Context, userID string) error {
	m.mu.Lock()
	delete(m.userRooms, userID)
	m.mu.Unlock()
	return nil
}

// recorder is a Notifier that records every delivery.
type recorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	target    string
	broadcast bool
	eventType string
	payload   interface{}
}

func (r *recorder) SendToUser(userID, eventType string, payload interface{}) {
	r.mu.Lock()
	r.events = append(r.events, recordedEvent{target: userID, eventType: eventType, payload: payload})
	r.mu.Unlock()
}

func (r *recorder) RoomBroadcast(roomID, eventType string, payload interface{}) {
	r.mu.Lock()
	r.events = append(r.events, recordedEvent{target: roomID, broadcast: true, eventType: eventType, payload: payload})
	r.mu.Unlock()
}

func (r *recorder) JoinRoom(string, string) {}
func (r *recorder) DropRoom(string)         {}

func (r *recorder) count(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.eventType == eventType {
			n++
		}
	}
	return n
}

func (r *recorder) lastToUser(userID, eventType string) (recordedEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if !r.events[i].broadcast && r.events[i].target == userID && r.events[i].eventType == eventType {
			return r.events[i], true
		}
	}
	return recordedEvent{}, false
}

type mockChars struct {
	snaps map[string]*storage.CharacterSnapshot
}

func (m *mockChars) Snapshot(_ context.Context, userID string) (*storage.CharacterSnapshot, error) {
	if s, ok := m.snaps[userID]; ok {
		return s, nil
	}
	return nil, storage.ErrPetNotFound
}

type mockRewards struct {
	mu          sync.Mutex
	winnerID    string
	loserID     string
	draw        bool
	called      bool
	healthSaved map[string]int
}

func (m *mockRewards) ApplyBattleOutcome(winnerID, loserID string, draw bool) (map[string]*storage.RewardResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.called = true
	m.winnerID, m.loserID, m.draw = winnerID, loserID, draw
	out := make(map[string]*storage.RewardResult)
	for _, id := range []string{winnerID, loserID} {
		if id != constants.BotUserID {
			out[id] = &storage.RewardResult{ExperienceGained: 10, Level: 5}
		}
	}
	return out, nil
}

func (m *mockRewards) SavePetHealth(userID string, currentHP int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.healthSaved == nil {
		m.healthSaved = make(map[string]int)
	}
	m.healthSaved[userID] = currentHP
	return nil
}

func testSnapshot(name string) *storage.CharacterSnapshot {
	return &storage.CharacterSnapshot{
		PetName: name,
		Species: "flarepup",
		Level:   5,
		Stats:   catalog.Stats{Strength: 60, Defense: 51, Agility: 73, Intelligence: 58, Luck: 12, MaxHealth: 55},
		Learned: []int{1, 8, 3},
	}
}

func newTestDriver() (*Driver, *memRepo, *recorder, *mockRewards) {
	repo := newMemRepo()
	notify := &recorder{}
	rewards := &mockRewards{}
	chars := &mockChars{snaps: map[string]*storage.CharacterSnapshot{
		"u1": testSnapshot("Pup"),
		"u2": testSnapshot("Cub"),
	}}
	return NewDriver(repo, chars, rewards, notify, 10*time.Second), repo, notify, rewards
}

func TestCreateRoom_AnnouncesMatchAndStart(t *testing.T) {
	d, repo, notify, _ := newTestDriver()

	roomID, err := d.CreateRoom(context.Background(), "u1", "u2")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	rm, err := repo.LoadRoom(context.Background(), roomID)
	if err != nil {
		t.Fatalf("room not persisted: %v", err)
	}
	if len(rm.Players) != 2 || rm.IsAIBattle {
		t.Fatalf("unexpected room shape: players=%v ai=%v", rm.Players, rm.IsAIBattle)
	}
	if repo.userRooms["u1"] != roomID || repo.userRooms["u2"] != roomID {
		t.Fatal("user -> room index not written")
	}
	if notify.count(constants.EventMatchFound) != 2 {
		t.Fatalf("expected 2 MATCH_FOUND, got %d", notify.count(constants.EventMatchFound))
	}
	if notify.count(constants.EventBattleStart) != 1 {
		t.Fatalf("expected 1 BATTLE_START, got %d", notify.count(constants.EventBattleStart))
	}
}

func TestSubmitMove_FirstSubmissionWaits(t *testing.T) {
	d, repo, notify, _ := newTestDriver()
	roomID, _ := d.CreateRoom(context.Background(), "u1", "u2")

	if err := d.SubmitMove(context.Background(), "u1", 1); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if notify.count(constants.EventTurnResult) != 0 {
		t.Fatal("turn must not resolve with one selection")
	}
	if _, ok := notify.lastToUser("u1", constants.EventWaiting); !ok {
		t.Fatal("submitter should get a WAITING event")
	}
	sel, _ := repo.Selections(context.Background(), roomID)
	if sel["u1"] != 1 {
		t.Fatalf("selection not recorded: %v", sel)
	}
}

func TestSubmitMove_SecondSubmissionResolvesTurn(t *testing.T) {
	d, repo, notify, _ := newTestDriver()
	roomID, _ := d.CreateRoom(context.Background(), "u1", "u2")

	if err := d.SubmitMove(context.Background(), "u1", 1); err != nil {
		t.Fatalf("submit u1: %v", err)
	}
	if err := d.SubmitMove(context.Background(), "u2", 1); err != nil {
		t.Fatalf("submit u2: %v", err)
	}

	if got := notify.count(constants.EventTurnResult); got != 1 {
		t.Fatalf("expected exactly 1 TURN_RESULT, got %d", got)
	}
	rm, err := repo.LoadRoom(context.Background(), roomID)
	if err != nil {
		t.Fatalf("room should survive a non-terminal turn: %v", err)
	}
	if rm.TurnCount != 1 {
		t.Fatalf("turn count not persisted, got %d", rm.TurnCount)
	}
	sel, _ := repo.Selections(context.Background(), roomID)
	if len(sel) != 0 {
		t.Fatalf("selections must be cleared after resolution: %v", sel)
	}
	if repo.locks[roomID] {
		t.Fatal("turn lock must be released")
	}
}

func TestSubmitMove_Validation(t *testing.T) {
	d, _, _, _ := newTestDriver()
	ctx := context.Background()

	if err := d.SubmitMove(ctx, "nobody", 1); !errors.Is(err, ErrNotInBattle) {
		t.Fatalf("expected ErrNotInBattle, got %v", err)
	}

	d.CreateRoom(ctx, "u1", "u2")
	if err := d.SubmitMove(ctx, "u1", 77); !errors.Is(err, ErrUnknownMove) {
		t.Fatalf("expected ErrUnknownMove, got %v", err)
	}
	// Move 25 exists but flarepup at level 5 has not learned it.
	if err := d.SubmitMove(ctx, "u1", 25); !errors.Is(err, ErrMoveNotLearned) {
		t.Fatalf("expected ErrMoveNotLearned, got %v", err)
	}
}

func TestSubmitMove_ForcesStruggleWhenOutOfPP(t *testing.T) {
	d, repo, _, _ := newTestDriver()
	ctx := context.Background()
	roomID, _ := d.CreateRoom(ctx, "u1", "u2")

	rm, _ := repo.LoadRoom(ctx, roomID)
	for id := range rm.BattleStates["u1"].PP {
		rm.BattleStates["u1"].PP[id] = 0
	}
	repo.SaveRoom(ctx, rm)

	if err := d.SubmitMove(ctx, "u1", 1); err != nil {
		t.Fatalf("submit with empty PP: %v", err)
	}
	sel, _ := repo.Selections(ctx, roomID)
	if sel["u1"] != catalog.MoveIDStruggle {
		t.Fatalf("expected forced struggle, got move %d", sel["u1"])
	}
}

func TestConcurrentResolution_ResolvesExactlyOnce(t *testing.T) {
	d, repo, notify, _ := newTestDriver()
	ctx := context.Background()
	roomID, _ := d.CreateRoom(ctx, "u1", "u2")

	repo.SubmitMove(ctx, roomID, "u1", 1)
	repo.SubmitMove(ctx, roomID, "u2", 1)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.tryResolveTurn(ctx, roomID); err != nil {
				t.Errorf("resolve: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := notify.count(constants.EventTurnResult); got != 1 {
		t.Fatalf("both submitters racing must produce exactly 1 TURN_RESULT, got %d", got)
	}
	rm, _ := repo.LoadRoom(ctx, roomID)
	if rm.TurnCount != 1 {
		t.Fatalf("turn applied %d times", rm.TurnCount)
	}
}

func TestResolution_DoubleFaintIsDraw(t *testing.T) {
	d, repo, notify, rewards := newTestDriver()
	ctx := context.Background()

	rm := room.New("draw-room")
	stats := catalog.Stats{Strength: 10, Defense: 10, Agility: 10, Intelligence: 10, MaxHealth: 40}
	rm.AddCombatant("u1", "Pup", "flarepup", stats, []int{8}, 0)
	rm.AddCombatant("u2", "Cub", "flarepup", stats, []int{8}, 0)
	for _, p := range rm.Players {
		rm.BattleStates[p].CurrentHP = 1
		rm.BattleStates[p].Ailment = catalog.AilmentPoison
		rm.BattleStates[p].StatusTurns = 3
	}
	repo.SaveRoom(ctx, rm)
	repo.AddPlayer(ctx, rm.ID, "u1")
	repo.AddPlayer(ctx, rm.ID, "u2")
	repo.SetUserRoom(ctx, "u1", rm.ID)
	repo.SetUserRoom(ctx, "u2", rm.ID)

	// Growl deals no damage; the poison ticks finish both off together.
	if err := d.SubmitMove(ctx, "u1", 8); err != nil {
		t.Fatalf("submit u1: %v", err)
	}
	if err := d.SubmitMove(ctx, "u2", 8); err != nil {
		t.Fatalf("submit u2: %v", err)
	}

	if !rewards.draw {
		t.Fatal("outcome should be recorded as a draw")
	}
	for _, u := range []string{"u1", "u2"} {
		ev, ok := notify.lastToUser(u, constants.EventGameOver)
		if !ok {
			t.Fatalf("no GAME_OVER for %s", u)
		}
		payload := ev.payload.(ws.GameOverPayload)
		if payload.Result != constants.ResultDraw {
			t.Fatalf("%s should see DRAW, got %s", u, payload.Result)
		}
		if payload.Winner != "" {
			t.Fatalf("a draw has no winner, got %q", payload.Winner)
		}
	}
	if _, err := repo.LoadRoom(ctx, rm.ID); !errors.Is(err, room.ErrRoomNotFound) {
		t.Fatal("room must be deleted after the battle")
	}
	if repo.userRooms["u1"] != "" || repo.userRooms["u2"] != "" {
		t.Fatal("user -> room index must be cleared")
	}
}

func TestResolution_SurvivorStillTicksAfterKnockout(t *testing.T) {
	d, repo, notify, rewards := newTestDriver()
	ctx := context.Background()

	// u1 is poisoned at 1 HP and lands the knockout; the end-of-turn poison
	// tick must still run and drop u1 too, turning the win into a draw.
	rm := room.New("tick-room")
	stats := catalog.Stats{Strength: 10, Defense: 10, Agility: 10, Intelligence: 10, MaxHealth: 40}
	rm.AddCombatant("u1", "Pup", "flarepup", stats, []int{2}, 0)
	rm.AddCombatant("u2", "Cub", "flarepup", stats, []int{8}, 0)
	rm.BattleStates["u1"].CurrentHP = 1
	rm.BattleStates["u1"].Ailment = catalog.AilmentPoison
	rm.BattleStates["u1"].StatusTurns = 3
	rm.BattleStates["u2"].CurrentHP = 1
	repo.SaveRoom(ctx, rm)
	repo.AddPlayer(ctx, rm.ID, "u1")
	repo.AddPlayer(ctx, rm.ID, "u2")
	repo.SetUserRoom(ctx, "u1", rm.ID)
	repo.SetUserRoom(ctx, "u2", rm.ID)

	// Bite always hits and deals at least 1, so u2 faints in the move
	// phase whichever side acts first (Growl deals no damage).
	if err := d.SubmitMove(ctx, "u1", 2); err != nil {
		t.Fatalf("submit u1: %v", err)
	}
	if err := d.SubmitMove(ctx, "u2", 8); err != nil {
		t.Fatalf("submit u2: %v", err)
	}

	if !rewards.called {
		t.Fatal("battle should have finished")
	}
	if !rewards.draw {
		t.Fatalf("survivor must die to its own poison tick, got winner=%q", rewards.winnerID)
	}
	ev, ok := notify.lastToUser("u1", constants.EventGameOver)
	if !ok {
		t.Fatal("no GAME_OVER for u1")
	}
	if payload := ev.payload.(ws.GameOverPayload); payload.Result != constants.ResultDraw {
		t.Fatalf("u1 should see DRAW, got %s", payload.Result)
	}
}

func TestSurrender_OpponentWins(t *testing.T) {
	d, repo, notify, rewards := newTestDriver()
	ctx := context.Background()
	roomID, _ := d.CreateRoom(ctx, "u1", "u2")

	if err := d.Surrender(ctx, "u1"); err != nil {
		t.Fatalf("surrender: %v", err)
	}
	if rewards.winnerID != "u2" || rewards.loserID != "u1" || rewards.draw {
		t.Fatalf("wrong outcome: %+v", rewards)
	}
	ev, ok := notify.lastToUser("u2", constants.EventGameOver)
	if !ok {
		t.Fatal("winner got no GAME_OVER")
	}
	if payload := ev.payload.(ws.GameOverPayload); payload.Result != constants.ResultWin || payload.Winner != "u2" {
		t.Fatalf("winner payload wrong: %+v", payload)
	}
	ev, _ = notify.lastToUser("u1", constants.EventGameOver)
	if payload := ev.payload.(ws.GameOverPayload); payload.Result != constants.ResultLose {
		t.Fatalf("loser payload wrong: %+v", payload)
	}
	if _, err := repo.LoadRoom(ctx, roomID); !errors.Is(err, room.ErrRoomNotFound) {
		t.Fatal("room must be deleted after surrender")
	}

	if err := d.Surrender(ctx, "u1"); !errors.Is(err, ErrNotInBattle) {
		t.Fatalf("second surrender should fail with ErrNotInBattle, got %v", err)
	}
}

func TestBotBattle_BotSubmitsAutomatically(t *testing.T) {
	d, repo, notify, _ := newTestDriver()
	ctx := context.Background()

	roomID, err := d.CreateRoom(ctx, "u1", constants.BotUserID)
	if err != nil {
		t.Fatalf("create bot room: %v", err)
	}
	rm, _ := repo.LoadRoom(ctx, roomID)
	if !rm.IsAIBattle {
		t.Fatal("room should be flagged as an AI battle")
	}
	if repo.userRooms[constants.BotUserID] != "" {
		t.Fatal("the bot must not get a user -> room index entry")
	}

	if err := d.SubmitMove(ctx, "u1", 1); err != nil {
		t.Fatalf("submit: %v", err)
	}
	// The bot's selection completes the turn immediately.
	if got := notify.count(constants.EventTurnResult); got != 1 {
		t.Fatalf("expected immediate resolution, got %d TURN_RESULT", got)
	}
}
