package manager

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nalharbi/inspection-management/internal/round"
)

const (
	MinRank = 1
	MaxRank = 16
)

// Manager is a person with a rank and a department. LastRounds is an
// append-only list of references to the rounds created against this manager;
// it is a back-reference kept in the manager_rounds join table, not an
// ownership relation, since rounds denormalize the manager's fields instead
// of holding a foreign key.
type Manager struct {
	ID         string        `json:"id" gorm:"primaryKey;size:36"`
	Name       string        `json:"name" gorm:"not null"`
	Rank       int           `json:"rank" gorm:"not null"`
	Department string        `json:"department" gorm:"not null"`
	LastRounds []round.Round `json:"last_rounds" gorm:"many2many:manager_rounds"`
	CreatedAt  time.Time     `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time     `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Manager) TableName() string {
	return "managers"
}

func (m *Manager) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ValidRank reports whether rank falls in the accepted range.
func ValidRank(rank int) bool {
	return rank >= MinRank && rank <= MaxRank
}
