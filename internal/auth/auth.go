package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Credential is a username/password-hash pair. Credentials are created on
// registration and never updated or deleted.
type Credential struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Credential) TableName() string {
	return "credentials"
}

func (c *Credential) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// TokenResponse is the body returned by login and registration.
type TokenResponse struct {
	Token string `json:"token"`
}

// Claims are the JWT claims carried by every issued token.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenGenerator issues and verifies signed bearer tokens.
type TokenGenerator interface {
	GenerateToken(subjectID string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}
