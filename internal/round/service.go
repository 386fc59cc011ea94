package round

import (
	"context"
	"log/slog"

	"github.com/nalharbi/inspection-management/internal"
	"github.com/nalharbi/inspection-management/internal/core/events"
)

// Repository is the round store. Create persists the round and appends its id
// to the owning manager's round list in a single transaction.
type Repository interface {
	Create(round *Round, managerID string) error
	GetAll() ([]*Round, error)
	GetByID(id string) (*Round, error)
}

// ManagerSnapshot is the slice of manager state copied into a round at
// creation time.
type ManagerSnapshot struct {
	ID         string
	Name       string
	Rank       int
	Department string
}

// ManagerDirectory resolves manager ids for snapshotting. SnapshotByID
// returns (nil, nil) when no manager matches.
type ManagerDirectory interface {
	SnapshotByID(id string) (*ManagerSnapshot, error)
}

// Service handles inspection-round business logic.
type Service struct {
	repo     Repository
	managers ManagerDirectory
	audit    *events.Bus
	logger   *slog.Logger
}

func NewService(repo Repository, managers ManagerDirectory, audit *events.Bus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		managers: managers,
		audit:    audit,
		logger:   logger,
	}
}

// CreateRound creates a round against an existing manager, copying the
// manager's current name, rank and department into the round record.
func (s *Service) CreateRound(dto CreateRoundDTO) (*Round, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := s.managers.SnapshotByID(dto.ManagerID)
	if err != nil {
		s.logger.Error("manager lookup failed", "error", err, "manager_id", dto.ManagerID)
		return nil, internal.NewInternalError("failed to look up manager", err)
	}
	if snapshot == nil {
		return nil, internal.ErrManagerNotFound
	}

	round := &Round{
		ManagerName:       snapshot.Name,
		ManagerRank:       snapshot.Rank,
		ManagerDepartment: snapshot.Department,
		Location:          dto.Location,
		Day:               dto.Day,
		Hijri:             dto.Hijri,
	}

	if err := s.repo.Create(round, snapshot.ID); err != nil {
		s.logger.Error("round create failed", "error", err, "manager_id", snapshot.ID)
		return nil, internal.NewInternalError("failed to create round", err)
	}

	s.logger.Info("round created",
		"round_id", round.ID,
		"manager_id", snapshot.ID,
		"location", round.Location)

	if s.audit != nil {
		s.audit.Publish(context.Background(), events.NewRoundCreatedEvent(round.ID, snapshot.ID, round.Location))
	}

	return round, nil
}

// ListRounds returns every round in creation order.
func (s *Service) ListRounds() ([]*Round, error) {
	rounds, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("round list failed", "error", err)
		return nil, internal.NewInternalError("failed to list rounds", err)
	}
	return rounds, nil
}

func (s *Service) GetRound(id string) (*Round, error) {
	round, err := s.repo.GetByID(id)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("round lookup failed", "error", err, "round_id", id)
		return nil, internal.NewInternalError("failed to get round", err)
	}
	return round, nil
}
