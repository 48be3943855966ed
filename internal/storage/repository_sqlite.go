package storage

import (
	"errors"

	"gorm.io/gorm"
)

// ErrRecordNotFound normalizes gorm's not-found error so callers don't
// import gorm to test for it.
var ErrRecordNotFound = errors.New("record not found")

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateBattle(rec *BattleRecord) error {
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) FindBattleByJoinCode(code string) (*BattleRecord, error) {
	var rec BattleRecord
	err := r.db.Preload("Combatants").Where("join_code = ?", code).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) UpdateBattle(rec *BattleRecord) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(rec).Error
}

func (r *sqliteRepository) UpdateStatsOnConclusion(rec *BattleRecord) error {
	if rec.Status != StatusConcluded {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, t := range []struct {
			name string
			side string
		}{
			{rec.SideATrainer, "side_a"},
			{rec.SideBTrainer, "side_b"},
		} {
			if t.name == "" {
				continue
			}
			var p TrainerProfile
			err := tx.Where("name = ?", t.name).First(&p).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				p = TrainerProfile{Name: t.name}
			} else if err != nil {
				return err
			}
			p.Battles++
			switch rec.Winner {
			case t.side:
				p.Wins++
			case "draw":
				p.Draws++
			default:
				p.Losses++
			}
			if err := tx.Save(&p).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sqliteRepository) GetTrainerByName(name string) (*TrainerProfile, error) {
	var p TrainerProfile
	err := r.db.Where("name = ?", name).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) GetTopTrainers(limit int) ([]TrainerProfile, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []TrainerProfile
	err := r.db.Order("wins DESC, battles ASC").Limit(limit).Find(&out).Error
	return out, err
}
