package round

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hijri is an optional Hijri-calendar date attached to a round.
type Hijri struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Day   int    `json:"day"`
	Time  string `json:"time"`
}

// Round is an inspection round. The manager_* columns are a point-in-time
// snapshot copied from the manager at creation, not a live reference: renaming
// the manager afterwards does not touch existing rounds. Rounds are immutable
// once created and only removed by the manager delete cascade.
type Round struct {
	ID                string    `json:"id" gorm:"primaryKey;size:36"`
	ManagerName       string    `json:"manager_name" gorm:"column:manager_name;not null"`
	ManagerRank       int       `json:"manager_rank" gorm:"column:manager_rank;not null"`
	ManagerDepartment string    `json:"manager_department" gorm:"column:manager_department;not null"`
	Location          string    `json:"location" gorm:"not null"`
	Day               string    `json:"day" gorm:"not null"`
	Hijri             *Hijri    `json:"hijri,omitempty" gorm:"embedded;embeddedPrefix:hijri_"`
	CreatedAt         time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Round) TableName() string {
	return "inspection_rounds"
}

func (r *Round) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
