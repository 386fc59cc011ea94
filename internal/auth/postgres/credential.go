package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/nalharbi/inspection-management/internal"
	"github.com/nalharbi/inspection-management/internal/auth"
)

// CredentialRepository implements auth.Repository using GORM.
type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) auth.Repository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) FindByUsername(username string) (*auth.Credential, error) {
	var credential auth.Credential
	err := r.db.Where("username = ?", username).First(&credential).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &credential, nil
}

func (r *CredentialRepository) Create(credential *auth.Credential) error {
	if err := r.db.Create(credential).Error; err != nil {
		if isDuplicateKey(err) {
			return internal.ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// isDuplicateKey covers both gorm's translated error and the raw driver
// messages for postgres and sqlite.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
