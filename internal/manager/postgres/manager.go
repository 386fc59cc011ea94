package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nalharbi/inspection-management/internal"
	"github.com/nalharbi/inspection-management/internal/manager"
	"github.com/nalharbi/inspection-management/internal/round"
)

// ManagerRepository implements manager.Repository using GORM. It also
// implements round.ManagerDirectory so the round service can snapshot
// managers without a dependency cycle.
type ManagerRepository struct {
	db *gorm.DB
}

func NewManagerRepository(db *gorm.DB) *ManagerRepository {
	return &ManagerRepository{db: db}
}

func (r *ManagerRepository) Create(m *manager.Manager) error {
	return r.db.Omit("LastRounds").Create(m).Error
}

func (r *ManagerRepository) GetAll() ([]*manager.Manager, error) {
	var managers []*manager.Manager
	err := r.db.Preload("LastRounds", roundOrder).Order("created_at ASC").Find(&managers).Error
	if err != nil {
		return nil, err
	}
	for _, m := range managers {
		if m.LastRounds == nil {
			m.LastRounds = []round.Round{}
		}
	}
	if managers == nil {
		managers = []*manager.Manager{}
	}
	return managers, nil
}

func (r *ManagerRepository) GetByID(id string) (*manager.Manager, error) {
	var m manager.Manager
	err := r.db.Preload("LastRounds", roundOrder).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrManagerNotFound
		}
		return nil, err
	}
	if m.LastRounds == nil {
		m.LastRounds = []round.Round{}
	}
	return &m, nil
}

// Update writes only the mutable columns, leaving the round references alone.
func (r *ManagerRepository) Update(m *manager.Manager) error {
	return r.db.Model(&manager.Manager{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"name":       m.Name,
			"rank":       m.Rank,
			"department": m.Department,
		}).Error
}

// DeleteCascade removes the manager, its round references, and every round
// whose snapshot fields equal the manager's current name, rank and
// department. All of it runs in one transaction; the match is by value, so
// rounds created before a rename are not matched.
func (r *ManagerRepository) DeleteCascade(m *manager.Manager) (int64, error) {
	var roundsRemoved int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM manager_rounds WHERE manager_id = ?", m.ID).Error; err != nil {
			return err
		}

		res := tx.Where(
			"manager_name = ? AND manager_rank = ? AND manager_department = ?",
			m.Name, m.Rank, m.Department,
		).Delete(&round.Round{})
		if res.Error != nil {
			return res.Error
		}
		roundsRemoved = res.RowsAffected

		// drop references other managers held to the removed rounds
		if err := tx.Exec(
			"DELETE FROM manager_rounds WHERE round_id NOT IN (SELECT id FROM inspection_rounds)",
		).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", m.ID).Delete(&manager.Manager{}).Error
	})
	if err != nil {
		return 0, err
	}
	return roundsRemoved, nil
}

// SnapshotByID implements round.ManagerDirectory.
func (r *ManagerRepository) SnapshotByID(id string) (*round.ManagerSnapshot, error) {
	var m manager.Manager
	err := r.db.Select("id", "name", "rank", "department").Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &round.ManagerSnapshot{
		ID:         m.ID,
		Name:       m.Name,
		Rank:       m.Rank,
		Department: m.Department,
	}, nil
}

func roundOrder(db *gorm.DB) *gorm.DB {
	return db.Order("inspection_rounds.created_at ASC")
}
