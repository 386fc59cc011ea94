package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nalharbi/inspection-management/internal"
)

// Repository is the credential store. FindByUsername returns (nil, nil) when
// no credential matches.
type Repository interface {
	FindByUsername(username string) (*Credential, error)
	Create(credential *Credential) error
}

// Service performs registration, login and token verification.
type Service struct {
	repo       Repository
	tokens     TokenGenerator
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, tokens TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a credential and issues a token for it. The existence
// check and the insert are two separate storage calls; a concurrent
// registration of the same username is caught by the unique index instead.
func (s *Service) Register(dto RegisterDTO) (TokenResponse, error) {
	if err := dto.Validate(); err != nil {
		return TokenResponse{}, err
	}

	existing, err := s.repo.FindByUsername(dto.Username)
	if err != nil {
		s.logger.Error("credential lookup failed", "error", err)
		return TokenResponse{}, internal.NewInternalError("failed to look up credential", err)
	}
	if existing != nil {
		return TokenResponse{}, internal.ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return TokenResponse{}, internal.NewInternalError("failed to hash password", err)
	}

	credential := &Credential{
		Username:     dto.Username,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(credential); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return TokenResponse{}, appErr
		}
		s.logger.Error("credential create failed", "error", err, "username", dto.Username)
		return TokenResponse{}, internal.NewInternalError("failed to create credential", err)
	}

	token, err := s.tokens.GenerateToken(credential.ID)
	if err != nil {
		s.logger.Error("token generation failed", "error", err, "credential_id", credential.ID)
		return TokenResponse{}, internal.NewInternalError("failed to issue token", err)
	}

	s.logger.Info("credential registered", "credential_id", credential.ID, "username", credential.Username)
	return TokenResponse{Token: token}, nil
}

// Authenticate validates a username/password pair and issues a token.
func (s *Service) Authenticate(dto LoginDTO) (TokenResponse, error) {
	if err := dto.Validate(); err != nil {
		return TokenResponse{}, err
	}

	credential, err := s.repo.FindByUsername(dto.Username)
	if err != nil {
		s.logger.Error("credential lookup failed", "error", err)
		return TokenResponse{}, internal.NewInternalError("failed to look up credential", err)
	}
	if credential == nil {
		return TokenResponse{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(dto.Password)); err != nil {
		return TokenResponse{}, internal.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(credential.ID)
	if err != nil {
		s.logger.Error("token generation failed", "error", err, "credential_id", credential.ID)
		return TokenResponse{}, internal.NewInternalError("failed to issue token", err)
	}

	return TokenResponse{Token: token}, nil
}

// ValidateToken verifies a bearer token and returns its claims. Verification
// needs only the shared secret, no storage access.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateToken(tokenString)
}

// JWTTokenGenerator signs HS256 tokens with a shared secret.
type JWTTokenGenerator struct {
	Secret   []byte
	TokenTTL time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		TokenTTL: ttl,
	}
}

func (j *JWTTokenGenerator) GenerateToken(subjectID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, internal.ErrInvalidToken
}
