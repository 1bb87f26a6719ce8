package room

import (
	"testing"

	"github.com/y122132/pet-trainer-sub000/internal/catalog"
)

func testRoom() *Room {
	r := New("room-1")
	r.AddCombatant("u1", "Pup", "flarepup", catalog.Stats{MaxHealth: 40, Agility: 10}, []int{1, 8}, 25)
	r.AddCombatant("u2", "Toad", "tidetoad", catalog.Stats{MaxHealth: 44, Agility: 9}, []int{1, 9}, 0)
	return r
}

func TestAddCombatant_SeedsStateFromPersistedHealth(t *testing.T) {
	r := testRoom()

	s1 := r.BattleStates["u1"]
	if s1.MaxHP != 40 || s1.CurrentHP != 25 {
		t.Fatalf("expected 25/40, got %d/%d", s1.CurrentHP, s1.MaxHP)
	}

	// Zero persisted health means a fresh pet at full HP, never a dead one.
	s2 := r.BattleStates["u2"]
	if s2.CurrentHP != 44 {
		t.Fatalf("zero persisted HP should start full, got %d", s2.CurrentHP)
	}

	if s1.PP[1] == 0 || s1.PP[8] == 0 {
		t.Fatalf("PP not seeded from learned moves: %v", s1.PP)
	}
}

func TestRoom_RosterQueries(t *testing.T) {
	r := testRoom()

	if !r.HasPlayer("u1") || r.HasPlayer("u3") {
		t.Fatal("roster membership is wrong")
	}
	opp, ok := r.Opponent("u1")
	if !ok || opp != "u2" {
		t.Fatalf("expected opponent u2, got %q ok=%v", opp, ok)
	}
	if !r.HasLearned("u1", 8) || r.HasLearned("u1", 9) {
		t.Fatal("learned-move check is wrong")
	}
}

func TestRoom_SpeciesElement(t *testing.T) {
	r := testRoom()
	if r.SpeciesElement("u1") != catalog.ElementFire {
		t.Fatalf("flarepup should be fire, got %q", r.SpeciesElement("u1"))
	}
	r.PetTypes["u1"] = "unknown"
	if r.SpeciesElement("u1") != catalog.ElementNormal {
		t.Fatal("unknown species should default to normal")
	}
}

func TestNew_CarriesSchemaVersion(t *testing.T) {
	if New("x").SchemaVersion != SchemaVersion {
		t.Fatal("new rooms must carry the current schema version")
	}
}
