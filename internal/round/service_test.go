package round_test

import (
	"fmt"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nalharbi/inspection-management/internal"
	"github.com/nalharbi/inspection-management/internal/round"
)

func TestRound(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Round Suite")
}

type mockRoundRepository struct {
	rounds      []*round.Round
	ownerByID   map[string]string
	createError error
}

func newMockRoundRepository() *mockRoundRepository {
	return &mockRoundRepository{ownerByID: make(map[string]string)}
}

func (m *mockRoundRepository) Create(rnd *round.Round, managerID string) error {
	if m.createError != nil {
		return m.createError
	}
	rnd.ID = fmt.Sprintf("round-%d", len(m.rounds)+1)
	m.rounds = append(m.rounds, rnd)
	m.ownerByID[rnd.ID] = managerID
	return nil
}

func (m *mockRoundRepository) GetAll() ([]*round.Round, error) {
	return m.rounds, nil
}

func (m *mockRoundRepository) GetByID(id string) (*round.Round, error) {
	for _, rnd := range m.rounds {
		if rnd.ID == id {
			return rnd, nil
		}
	}
	return nil, internal.ErrRoundNotFound
}

type mockManagerDirectory struct {
	snapshots map[string]*round.ManagerSnapshot
}

func (m *mockManagerDirectory) SnapshotByID(id string) (*round.ManagerSnapshot, error) {
	return m.snapshots[id], nil
}

var _ = Describe("RoundService", func() {
	var (
		service  *round.Service
		repo     *mockRoundRepository
		managers *mockManagerDirectory
	)

	BeforeEach(func() {
		repo = newMockRoundRepository()
		managers = &mockManagerDirectory{snapshots: map[string]*round.ManagerSnapshot{
			"manager-1": {ID: "manager-1", Name: "Ahmed Al-Harbi", Rank: 5, Department: "Operations"},
		}}
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = round.NewService(repo, managers, nil, lg)
	})

	Describe("CreateRound", func() {
		It("copies the manager's current state into the round", func() {
			rnd, err := service.CreateRound(round.CreateRoundDTO{
				ManagerID: "manager-1",
				Location:  "Warehouse A",
				Day:       "Monday",
				Hijri:     &round.Hijri{Year: 1447, Month: 3, Day: 9, Time: "10:30"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(rnd.ManagerName).To(Equal("Ahmed Al-Harbi"))
			Expect(rnd.ManagerRank).To(Equal(5))
			Expect(rnd.ManagerDepartment).To(Equal("Operations"))
			Expect(rnd.Location).To(Equal("Warehouse A"))
			Expect(rnd.Hijri.Year).To(Equal(1447))
			Expect(repo.ownerByID[rnd.ID]).To(Equal("manager-1"))
		})

		It("keeps the snapshot after the manager changes", func() {
			rnd, err := service.CreateRound(round.CreateRoundDTO{
				ManagerID: "manager-1",
				Location:  "Warehouse A",
				Day:       "Monday",
			})
			Expect(err).ToNot(HaveOccurred())

			managers.snapshots["manager-1"].Rank = 12

			stored, err := service.GetRound(rnd.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored.ManagerRank).To(Equal(5))
		})

		It("rejects an unknown manager without persisting anything", func() {
			_, err := service.CreateRound(round.CreateRoundDTO{
				ManagerID: "missing",
				Location:  "Warehouse A",
				Day:       "Monday",
			})
			Expect(err).To(Equal(internal.ErrManagerNotFound))
			Expect(repo.rounds).To(BeEmpty())
		})

		It("rejects missing required fields", func() {
			_, err := service.CreateRound(round.CreateRoundDTO{ManagerID: "manager-1"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.IsValidation()).To(BeTrue())
			Expect(appErr.Messages).To(ContainElement("location is required"))
			Expect(appErr.Messages).To(ContainElement("day is required"))
		})

		It("accepts a round without hijri data", func() {
			rnd, err := service.CreateRound(round.CreateRoundDTO{
				ManagerID: "manager-1",
				Location:  "Warehouse B",
				Day:       "Tuesday",
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(rnd.Hijri).To(BeNil())
		})
	})

	Describe("GetRound", func() {
		It("returns not found for an unknown id", func() {
			_, err := service.GetRound("missing")
			Expect(err).To(Equal(internal.ErrRoundNotFound))
		})
	})

	Describe("ListRounds", func() {
		It("returns every created round", func() {
			for _, loc := range []string{"Warehouse A", "Warehouse B"} {
				_, err := service.CreateRound(round.CreateRoundDTO{
					ManagerID: "manager-1",
					Location:  loc,
					Day:       "Monday",
				})
				Expect(err).ToNot(HaveOccurred())
			}

			rounds, err := service.ListRounds()
			Expect(err).ToNot(HaveOccurred())
			Expect(rounds).To(HaveLen(2))
		})
	})
})
