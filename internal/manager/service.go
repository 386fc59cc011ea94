package manager

import (
	"context"
	"log/slog"

	"github.com/nalharbi/inspection-management/internal"
	"github.com/nalharbi/inspection-management/internal/core/events"
	"github.com/nalharbi/inspection-management/internal/round"
)

// Repository is the manager store. GetAll and GetByID return managers with
// their round references resolved to full round records.
type Repository interface {
	Create(manager *Manager) error
	GetAll() ([]*Manager, error)
	GetByID(id string) (*Manager, error)
	Update(manager *Manager) error
	DeleteCascade(manager *Manager) (roundsRemoved int64, err error)
}

// RoundLister lists every round in the system in creation order, used by the
// summary operation.
type RoundLister interface {
	GetAll() ([]*round.Round, error)
}

// SummaryResponse pairs a manager with every round in the system, not only
// the manager's own. This mirrors the behavior callers depend on.
type SummaryResponse struct {
	Manager   *Manager       `json:"manager"`
	AllRounds []*round.Round `json:"all_rounds"`
}

// Service handles manager business logic.
type Service struct {
	repo   Repository
	rounds RoundLister
	audit  *events.Bus
	logger *slog.Logger
}

func NewService(repo Repository, rounds RoundLister, audit *events.Bus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		rounds: rounds,
		audit:  audit,
		logger: logger,
	}
}

func (s *Service) CreateManager(dto CreateManagerDTO) (*Manager, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	manager := &Manager{
		Name:       dto.Name,
		Rank:       dto.Rank,
		Department: dto.Department,
		LastRounds: []round.Round{},
	}
	if err := s.repo.Create(manager); err != nil {
		s.logger.Error("manager create failed", "error", err)
		return nil, internal.NewInternalError("failed to create manager", err)
	}

	s.logger.Info("manager created", "manager_id", manager.ID, "rank", manager.Rank)
	return manager, nil
}

func (s *Service) ListManagers() ([]*Manager, error) {
	managers, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("manager list failed", "error", err)
		return nil, internal.NewInternalError("failed to list managers", err)
	}
	return managers, nil
}

func (s *Service) GetManager(id string) (*Manager, error) {
	manager, err := s.repo.GetByID(id)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("manager lookup failed", "error", err, "manager_id", id)
		return nil, internal.NewInternalError("failed to get manager", err)
	}
	return manager, nil
}

// UpdateManager applies the provided fields only; everything else keeps its
// stored value. Existing rounds keep the snapshot taken at their creation.
func (s *Service) UpdateManager(id string, dto UpdateManagerDTO) (*Manager, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	manager, err := s.GetManager(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		manager.Name = *dto.Name
	}
	if dto.Rank != nil {
		manager.Rank = *dto.Rank
	}
	if dto.Department != nil {
		manager.Department = *dto.Department
	}

	if err := s.repo.Update(manager); err != nil {
		s.logger.Error("manager update failed", "error", err, "manager_id", id)
		return nil, internal.NewInternalError("failed to update manager", err)
	}

	s.logger.Info("manager updated", "manager_id", id)
	return manager, nil
}

// DeleteManager removes the manager and, in the same transaction, every round
// whose snapshot fields match the manager's name, rank and department at the
// time of deletion.
func (s *Service) DeleteManager(id string) error {
	manager, err := s.GetManager(id)
	if err != nil {
		return err
	}

	roundsRemoved, err := s.repo.DeleteCascade(manager)
	if err != nil {
		s.logger.Error("manager delete failed", "error", err, "manager_id", id)
		return internal.NewInternalError("failed to delete manager", err)
	}

	s.logger.Info("manager deleted", "manager_id", id, "rounds_removed", roundsRemoved)

	if s.audit != nil {
		s.audit.Publish(context.Background(), events.NewManagerDeletedEvent(id, roundsRemoved))
	}

	return nil
}

// GetSummary returns the manager (with resolved rounds) alongside every round
// in the system sorted by creation time ascending.
func (s *Service) GetSummary(id string) (*SummaryResponse, error) {
	manager, err := s.GetManager(id)
	if err != nil {
		return nil, err
	}

	allRounds, err := s.rounds.GetAll()
	if err != nil {
		s.logger.Error("round list failed", "error", err)
		return nil, internal.NewInternalError("failed to list rounds", err)
	}

	return &SummaryResponse{
		Manager:   manager,
		AllRounds: allRounds,
	}, nil
}
