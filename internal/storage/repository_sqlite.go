package storage

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/y122132/pet-trainer-sub000/internal/catalog"
	"github.com/y122132/pet-trainer-sub000/internal/constants"
)

// Experience awards per outcome. Winning scales with the opponent's level
// so beating a stronger trainer is worth more.
const (
	winBaseXP      = 100
	winPerLevelXP  = 5
	lossXP         = 30
	drawXP         = 60
	starterLevel   = 5
	leaderboardMax = 100
)

// LevelThreshold returns the experience needed to advance from the given
// level to the next one.
func LevelThreshold(level int) int {
	return level * level * 50
}

type SQLiteRepository struct {
	db *gorm.DB

	// rng picks starter species. math/rand sources are not goroutine safe,
	// so rolls are serialized under mu.
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSQLiteRepository(db *gorm.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// newStarterPet rolls a starter pet of a random species at the starter
// level, with stats grown from the species base line.
func newStarterPet(rng *rand.Rand, userID string) *Pet {
	names := catalog.SpeciesNames()
	sp, _ := catalog.SpeciesByName(names[rng.Intn(len(names))])
	pet := &Pet{
		OwnerID:      userID,
		Name:         sp.Name,
		Species:      sp.Name,
		Level:        1,
		Strength:     sp.BaseStats.Strength,
		Defense:      sp.BaseStats.Defense,
		Agility:      sp.BaseStats.Agility,
		Intelligence: sp.BaseStats.Intelligence,
		Luck:         sp.BaseStats.Luck,
		MaxHealth:    sp.BaseStats.MaxHealth,
	}
	for pet.Level < starterLevel {
		growPet(pet)
	}
	pet.CurrentHealth = pet.MaxHealth
	return pet
}

// growPet advances a pet one level and applies the flat stat growth.
func growPet(pet *Pet) {
	pet.Level++
	pet.Strength += 2
	pet.Defense += 2
	pet.Agility += 2
	pet.Intelligence += 2
	if pet.Level%2 == 0 {
		pet.Luck++
	}
	pet.MaxHealth += 4
}

// grantExperience adds experience to a pet, applying any level-ups, and
// returns the reward summary (UnlockedMoves lists newly reached learnset
// entries).
func grantExperience(pet *Pet, gained int) *RewardResult {
	result := &RewardResult{ExperienceGained: gained}
	pet.Experience += gained
	for pet.Experience >= LevelThreshold(pet.Level) {
		pet.Experience -= LevelThreshold(pet.Level)
		growPet(pet)
		result.LeveledUp = true
		if sp, ok := catalog.SpeciesByName(pet.Species); ok {
			for _, u := range sp.Learnset {
				if u.Level == pet.Level {
					result.UnlockedMoves = append(result.UnlockedMoves, u.MoveID)
				}
			}
		}
	}
	result.Level = pet.Level
	return result
}

func (r *SQLiteRepository) GetOrCreatePet(userID string) (*Pet, error) {
	var pet Pet
	err := r.db.Where("owner_id = ?", userID).First(&pet).Error
	if err == nil {
		return &pet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load pet for %s: %w", userID, err)
	}

	r.mu.Lock()
	created := newStarterPet(r.rng, userID)
	r.mu.Unlock()
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(created).Error; err != nil {
			return err
		}
		trainer := Trainer{UserID: userID, DisplayName: userID}
		return tx.Where("user_id = ?", userID).FirstOrCreate(&trainer).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create starter pet for %s: %w", userID, err)
	}
	return created, nil
}

func (r *SQLiteRepository) SavePetHealth(userID string, currentHP int) error {
	if currentHP < 0 {
		currentHP = 0
	}
	return r.db.Model(&Pet{}).Where("owner_id = ?", userID).Update("current_health", currentHP).Error
}

func (r *SQLiteRepository) ApplyBattleOutcome(winnerID, loserID string, draw bool) (map[string]*RewardResult, error) {
	results := make(map[string]*RewardResult, 2)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		apply := func(userID string, outcome string, gained int) error {
			if userID == constants.BotUserID {
				return nil
			}
			var pet Pet
			if err := tx.Where("owner_id = ?", userID).First(&pet).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrPetNotFound
				}
				return err
			}
			result := grantExperience(&pet, gained)
			result.Outcome = outcome
			if err := tx.Save(&pet).Error; err != nil {
				return err
			}

			column := map[string]string{
				constants.ResultWin:  "wins",
				constants.ResultLose: "losses",
				constants.ResultDraw: "draws",
			}[outcome]
			if err := tx.Model(&Trainer{}).Where("user_id = ?", userID).
				UpdateColumn(column, gorm.Expr(column+" + 1")).Error; err != nil {
				return err
			}
			results[userID] = result
			return nil
		}

		if draw {
			if err := apply(winnerID, constants.ResultDraw, drawXP); err != nil {
				return err
			}
			return apply(loserID, constants.ResultDraw, drawXP)
		}

		loserLevel := 1
		var loserPet Pet
		if err := tx.Where("owner_id = ?", loserID).First(&loserPet).Error; err == nil {
			loserLevel = loserPet.Level
		}
		if err := apply(winnerID, constants.ResultWin, winBaseXP+winPerLevelXP*loserLevel); err != nil {
			return err
		}
		return apply(loserID, constants.ResultLose, lossXP)
	})
	if err != nil {
		return nil, fmt.Errorf("apply battle outcome: %w", err)
	}
	return results, nil
}

func (r *SQLiteRepository) StatsByUser(userID string) (*Trainer, error) {
	var trainer Trainer
	if err := r.db.Where("user_id = ?", userID).First(&trainer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return &trainer, nil
}

func (r *SQLiteRepository) TopTrainers(limit int) ([]Trainer, error) {
	if limit <= 0 || limit > leaderboardMax {
		limit = 10
	}
	var trainers []Trainer
	if err := r.db.Order("wins DESC, draws DESC").Limit(limit).Find(&trainers).Error; err != nil {
		return nil, err
	}
	return trainers, nil
}
