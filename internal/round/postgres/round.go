package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nalharbi/inspection-management/internal"
	"github.com/nalharbi/inspection-management/internal/round"
)

// RoundRepository implements round.Repository using GORM.
type RoundRepository struct {
	db *gorm.DB
}

func NewRoundRepository(db *gorm.DB) round.Repository {
	return &RoundRepository{db: db}
}

// Create inserts the round and appends it to the manager's round list in one
// transaction, so a failed back-reference write never leaves an orphan round.
func (r *RoundRepository) Create(rnd *round.Round, managerID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rnd).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"INSERT INTO manager_rounds (manager_id, round_id) VALUES (?, ?)",
			managerID, rnd.ID,
		).Error; err != nil {
			return err
		}
		return tx.Exec(
			"UPDATE managers SET updated_at = ? WHERE id = ?",
			time.Now(), managerID,
		).Error
	})
}

func (r *RoundRepository) GetAll() ([]*round.Round, error) {
	var rounds []*round.Round
	err := r.db.Order("created_at ASC").Find(&rounds).Error
	if rounds == nil {
		rounds = []*round.Round{}
	}
	return rounds, err
}

func (r *RoundRepository) GetByID(id string) (*round.Round, error) {
	var rnd round.Round
	err := r.db.Where("id = ?", id).First(&rnd).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRoundNotFound
		}
		return nil, err
	}
	return &rnd, nil
}
