package battle

import (
	"math/rand"
	"testing"

	"github.com/y122132/pet-trainer-sub000/internal/catalog"
)

func testStats(str, def, agi, intel, luck, hp int) catalog.Stats {
	return catalog.Stats{Strength: str, Defense: def, Agility: agi, Intelligence: intel, Luck: luck, MaxHealth: hp}
}

func TestComputeDamage_PhysicalUsesStrengthAndDefense(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	atk := testStats(50, 10, 10, 10, 0, 100)
	weak := testStats(50, 10, 10, 10, 0, 100)
	tough := testStats(50, 100, 10, 10, 0, 100)
	mv, _ := catalog.MoveByID(1) // Tackle, physical

	attacker := NewCombatState(100, nil)
	var vsWeak, vsTough int
	for i := 0; i < 50; i++ {
		vsWeak += ComputeDamage(rng, atk, attacker, weak, NewCombatState(100, nil), mv, catalog.ElementNormal, FieldEffects{}).Damage
		vsTough += ComputeDamage(rng, atk, attacker, tough, NewCombatState(100, nil), mv, catalog.ElementNormal, FieldEffects{}).Damage
	}
	if vsWeak <= vsTough {
		t.Fatalf("expected higher damage against lower defense, got weak=%d tough=%d", vsWeak, vsTough)
	}
}

func TestComputeDamage_SpecialUsesIntelligenceBothSides(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	atk := testStats(1, 1, 10, 80, 0, 100)
	def := testStats(100, 100, 10, 5, 0, 100)
	mv, _ := catalog.MoveByID(4) // Water Gun, special

	result := ComputeDamage(rng, atk, NewCombatState(100, nil), def, NewCombatState(100, nil), mv, catalog.ElementNormal, FieldEffects{})
	if result.Damage < 10 {
		t.Fatalf("special move should ignore physical stats, got damage=%d", result.Damage)
	}
}

func TestComputeDamage_ImmunityIsExactlyZero(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	atk := testStats(200, 10, 10, 200, 0, 100)
	def := testStats(10, 1, 10, 1, 0, 100)
	mv, _ := catalog.MoveByID(6) // Spark, electric

	result := ComputeDamage(rng, atk, NewCombatState(100, nil), def, NewCombatState(100, nil), mv, catalog.ElementGround, FieldEffects{})
	if result.Damage != 0 {
		t.Fatalf("electric vs ground must deal 0, got %d", result.Damage)
	}
	if result.Effectiveness != EffectivenessImmune {
		t.Fatalf("expected immune, got %v", result.Effectiveness)
	}
}

func TestComputeDamage_MinimumOneWhenNotImmune(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	atk := testStats(1, 1, 1, 1, 0, 100)
	def := testStats(1, 500, 1, 500, 0, 100)
	mv, _ := catalog.MoveByID(1)

	for i := 0; i < 20; i++ {
		result := ComputeDamage(rng, atk, NewCombatState(100, nil), def, NewCombatState(100, nil), mv, catalog.ElementNormal, FieldEffects{})
		if result.Damage < 1 {
			t.Fatalf("non-immune hit must deal at least 1, got %d", result.Damage)
		}
	}
}

func TestComputeDamage_BurnHalvesPhysicalAttack(t *testing.T) {
	atk := testStats(60, 10, 10, 10, 0, 100)
	def := testStats(10, 20, 10, 10, 0, 100)
	mv, _ := catalog.MoveByID(1)

	healthy := NewCombatState(100, nil)
	burned := NewCombatState(100, nil)
	burned.Ailment = catalog.AilmentBurn

	var sumHealthy, sumBurned int
	for i := 0; i < 50; i++ {
		sumHealthy += ComputeDamage(rand.New(rand.NewSource(int64(i))), atk, healthy, def, NewCombatState(100, nil), mv, catalog.ElementNormal, FieldEffects{}).Damage
		sumBurned += ComputeDamage(rand.New(rand.NewSource(int64(i))), atk, burned, def, NewCombatState(100, nil), mv, catalog.ElementNormal, FieldEffects{}).Damage
	}
	if sumBurned >= sumHealthy {
		t.Fatalf("burn should reduce physical damage, healthy=%d burned=%d", sumHealthy, sumBurned)
	}
}

func TestComputeDamage_StatusMoveDealsNothing(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	stats := testStats(50, 10, 10, 50, 0, 100)
	mv, _ := catalog.MoveByID(8) // Growl

	result := ComputeDamage(rng, stats, NewCombatState(100, nil), stats, NewCombatState(100, nil), mv, catalog.ElementNormal, FieldEffects{})
	if result.Damage != 0 {
		t.Fatalf("status move must deal 0, got %d", result.Damage)
	}
}

func TestComputeDamage_WeatherScalesElementalDamage(t *testing.T) {
	atk := testStats(10, 10, 10, 60, 0, 100)
	def := testStats(10, 10, 10, 20, 0, 100)
	mv, _ := catalog.MoveByID(3) // Ember, fire

	var clear, sunny int
	for i := 0; i < 50; i++ {
		clear += ComputeDamage(rand.New(rand.NewSource(int64(i))), atk, NewCombatState(100, nil), def, NewCombatState(100, nil), mv, catalog.ElementNormal, FieldEffects{}).Damage
		sunny += ComputeDamage(rand.New(rand.NewSource(int64(i))), atk, NewCombatState(100, nil), def, NewCombatState(100, nil), mv, catalog.ElementNormal, FieldEffects{Weather: catalog.WeatherSunny}).Damage
	}
	if sunny <= clear {
		t.Fatalf("sunny weather should boost fire damage, clear=%d sunny=%d", clear, sunny)
	}
}

func TestComputeDamage_PhysicalBeatsEquivalentSpecial(t *testing.T) {
	// Strength 100 into defense 10 with a 50-power physical move must out-
	// damage the same power as a special move into intelligence 100. The
	// same seed is used for both rolls so crit and variance cancel out.
	atk := testStats(100, 10, 10, 100, 0, 100)
	physTarget := testStats(10, 10, 10, 10, 0, 100)
	specTarget := testStats(10, 10, 10, 100, 0, 100)
	phys := catalog.Move{ID: 900, Name: "Slam", Power: 50, Accuracy: 100, Category: catalog.CategoryPhysical, Element: catalog.ElementNormal}
	spec := catalog.Move{ID: 901, Name: "Pulse", Power: 50, Accuracy: 100, Category: catalog.CategorySpecial, Element: catalog.ElementNormal}

	for seed := int64(0); seed < 20; seed++ {
		p := ComputeDamage(rand.New(rand.NewSource(seed)), atk, NewCombatState(100, nil), physTarget, NewCombatState(100, nil), phys, catalog.ElementNormal, FieldEffects{})
		s := ComputeDamage(rand.New(rand.NewSource(seed)), atk, NewCombatState(100, nil), specTarget, NewCombatState(100, nil), spec, catalog.ElementNormal, FieldEffects{})
		if p.Damage <= s.Damage {
			t.Fatalf("seed %d: physical %d should beat special %d", seed, p.Damage, s.Damage)
		}
	}
}

func TestComputeDamage_LostHPScalingExceeds150Percent(t *testing.T) {
	atk := testStats(50, 10, 10, 10, 0, 100)
	def := testStats(10, 30, 10, 10, 0, 100)
	mv, _ := catalog.MoveByID(18) // Flail

	full := NewCombatState(100, nil)
	wounded := NewCombatState(100, nil)
	wounded.CurrentHP = 10

	for seed := int64(0); seed < 20; seed++ {
		atFull := ComputeDamage(rand.New(rand.NewSource(seed)), atk, full, def, NewCombatState(100, nil), mv, catalog.ElementNormal, FieldEffects{})
		atTen := ComputeDamage(rand.New(rand.NewSource(seed)), atk, wounded, def, NewCombatState(100, nil), mv, catalog.ElementNormal, FieldEffects{})
		if float64(atTen.Damage) <= 1.5*float64(atFull.Damage) {
			t.Fatalf("seed %d: 10%% HP damage %d not >1.5x full-HP damage %d", seed, atTen.Damage, atFull.Damage)
		}
	}
}

func TestCheckHit_AlwaysHitBypassesEverything(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	stats := testStats(10, 10, 1, 10, 0, 100)
	fast := testStats(10, 10, 500, 10, 0, 100)
	mv, _ := catalog.MoveByID(9) // Harden, always-hit

	defender := NewCombatState(100, nil)
	defender.SetStage(catalog.StatEvasion, 6)
	for i := 0; i < 50; i++ {
		if !CheckHit(rng, stats, NewCombatState(100, nil), fast, defender, mv) {
			t.Fatal("always-hit move missed")
		}
	}
}

func TestCheckHit_ChanceNeverBelowFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	slow := testStats(10, 10, 1, 10, 0, 100)
	fast := testStats(10, 10, 500, 10, 0, 100)
	mv, _ := catalog.MoveByID(13) // Lullaby, accuracy 55

	attacker := NewCombatState(100, nil)
	attacker.SetStage(catalog.StatAccuracy, -6)
	defender := NewCombatState(100, nil)
	defender.SetStage(catalog.StatEvasion, 6)

	hits := 0
	const trials = 5000
	for i := 0; i < trials; i++ {
		if CheckHit(rng, slow, attacker, fast, defender, mv) {
			hits++
		}
	}
	// The floor is 20%; allow generous slack around it.
	if hits < trials*15/100 {
		t.Fatalf("hit rate fell below the 20%% floor: %d/%d", hits, trials)
	}
}

func TestCritChance_ClampedToPercentRange(t *testing.T) {
	lucky := testStats(10, 10, 10, 10, 500, 100)
	boosted := NewCombatState(100, nil)
	boosted.SetStage(catalog.StatCrit, 3)
	if got := critChance(lucky, boosted); got != 100 {
		t.Fatalf("crit chance should cap at 100, got %v", got)
	}

	unlucky := testStats(10, 10, 10, 10, -300, 100)
	if got := critChance(unlucky, NewCombatState(100, nil)); got != 0 {
		t.Fatalf("crit chance should never drop below 0, got %v", got)
	}
}

func TestComputeDamage_GuaranteedCrit(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	lucky := testStats(50, 10, 10, 10, 500, 100)
	plain := testStats(50, 10, 10, 10, 0, 100)
	mv, _ := catalog.MoveByID(1) // Tackle

	attacker := NewCombatState(100, nil)
	attacker.SetStage(catalog.StatCrit, 3)
	for i := 0; i < 50; i++ {
		res := ComputeDamage(rng, lucky, attacker, plain, NewCombatState(100, nil), mv, catalog.ElementNormal, FieldEffects{})
		if !res.Critical {
			t.Fatalf("a 100%% crit chance must always crit (trial %d)", i)
		}
	}
}

func TestDetermineTurnOrder_PriorityWins(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	slow := testStats(10, 10, 1, 10, 0, 100)
	fast := testStats(10, 10, 500, 10, 0, 100)
	quick, _ := catalog.MoveByID(7) // priority 1
	tackle, _ := catalog.MoveByID(1)

	if got := DetermineTurnOrder(rng, slow, NewCombatState(100, nil), quick, fast, NewCombatState(100, nil), tackle); got != 1 {
		t.Fatalf("priority move should act first, got %d", got)
	}
}

func TestDetermineTurnOrder_ParalysisHalvesAgility(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	a := testStats(10, 10, 30, 10, 0, 100)
	b := testStats(10, 10, 20, 10, 0, 100)
	tackle, _ := catalog.MoveByID(1)

	paralyzed := NewCombatState(100, nil)
	paralyzed.Ailment = catalog.AilmentParalysis
	if got := DetermineTurnOrder(rng, a, paralyzed, tackle, b, NewCombatState(100, nil), tackle); got != 2 {
		t.Fatalf("paralysis should drop 30 agility below 20, got first=%d", got)
	}
}

func TestDetermineTurnOrder_TieIsRoughlyFair(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	stats := testStats(10, 10, 10, 10, 0, 100)
	tackle, _ := catalog.MoveByID(1)

	firstCount := 0
	const trials = 2000
	for i := 0; i < trials; i++ {
		if DetermineTurnOrder(rng, stats, NewCombatState(100, nil), tackle, stats, NewCombatState(100, nil), tackle) == 1 {
			firstCount++
		}
	}
	if firstCount < trials*40/100 || firstCount > trials*60/100 {
		t.Fatalf("tie break looks biased: %d/%d went first", firstCount, trials)
	}
}
