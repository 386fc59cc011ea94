package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nalharbi/inspection-management/internal"
	"github.com/nalharbi/inspection-management/internal/manager"
	managerpostgres "github.com/nalharbi/inspection-management/internal/manager/postgres"
	"github.com/nalharbi/inspection-management/internal/round"
	roundpostgres "github.com/nalharbi/inspection-management/internal/round/postgres"
)

func TestManagerPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Manager Repository Suite")
}

var _ = Describe("ManagerRepository", func() {
	var (
		db     *gorm.DB
		repo   *managerpostgres.ManagerRepository
		rounds round.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(db.AutoMigrate(&manager.Manager{}, &round.Round{})).To(Succeed())

		repo = managerpostgres.NewManagerRepository(db)
		rounds = roundpostgres.NewRoundRepository(db)
	})

	newManager := func(name string, rank int, department string) *manager.Manager {
		m := &manager.Manager{Name: name, Rank: rank, Department: department}
		Expect(repo.Create(m)).To(Succeed())
		return m
	}

	newRound := func(m *manager.Manager, location string) *round.Round {
		rnd := &round.Round{
			ManagerName:       m.Name,
			ManagerRank:       m.Rank,
			ManagerDepartment: m.Department,
			Location:          location,
			Day:               "Monday",
		}
		Expect(rounds.Create(rnd, m.ID)).To(Succeed())
		return rnd
	}

	Describe("Create and GetByID", func() {
		It("assigns an id and round-trips the fields", func() {
			created := newManager("Ahmed Al-Harbi", 5, "Operations")
			Expect(created.ID).ToNot(BeEmpty())

			stored, err := repo.GetByID(created.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored.Name).To(Equal("Ahmed Al-Harbi"))
			Expect(stored.Rank).To(Equal(5))
			Expect(stored.Department).To(Equal("Operations"))
			Expect(stored.LastRounds).ToNot(BeNil())
			Expect(stored.LastRounds).To(BeEmpty())
		})

		It("returns not found for an unknown id", func() {
			_, err := repo.GetByID("missing")
			Expect(err).To(Equal(internal.ErrManagerNotFound))
		})
	})

	Describe("GetAll", func() {
		It("returns an empty slice when no managers exist", func() {
			managers, err := repo.GetAll()
			Expect(err).ToNot(HaveOccurred())
			Expect(managers).ToNot(BeNil())
			Expect(managers).To(BeEmpty())
		})

		It("resolves round references in creation order", func() {
			m := newManager("Ahmed Al-Harbi", 5, "Operations")
			first := newRound(m, "Warehouse A")
			time.Sleep(5 * time.Millisecond)
			second := newRound(m, "Warehouse B")

			managers, err := repo.GetAll()
			Expect(err).ToNot(HaveOccurred())
			Expect(managers).To(HaveLen(1))
			Expect(managers[0].LastRounds).To(HaveLen(2))
			Expect(managers[0].LastRounds[0].ID).To(Equal(first.ID))
			Expect(managers[0].LastRounds[1].ID).To(Equal(second.ID))
		})
	})

	Describe("Update", func() {
		It("persists the new values without touching round snapshots", func() {
			m := newManager("Ahmed Al-Harbi", 5, "Operations")
			rnd := newRound(m, "Warehouse A")

			m.Name = "Ahmed Al-Dosari"
			m.Rank = 7
			Expect(repo.Update(m)).To(Succeed())

			stored, err := repo.GetByID(m.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored.Name).To(Equal("Ahmed Al-Dosari"))
			Expect(stored.Rank).To(Equal(7))

			storedRound, err := rounds.GetByID(rnd.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(storedRound.ManagerName).To(Equal("Ahmed Al-Harbi"))
			Expect(storedRound.ManagerRank).To(Equal(5))
		})
	})

	Describe("DeleteCascade", func() {
		It("removes only rounds whose snapshot matches the current state", func() {
			m := newManager("Ahmed Al-Harbi", 5, "Operations")
			stale := newRound(m, "Warehouse A")

			m.Name = "Ahmed Al-Dosari"
			Expect(repo.Update(m)).To(Succeed())

			fresh := newRound(&manager.Manager{
				ID: m.ID, Name: "Ahmed Al-Dosari", Rank: 5, Department: "Operations",
			}, "Warehouse B")

			removed, err := repo.DeleteCascade(&manager.Manager{
				ID: m.ID, Name: "Ahmed Al-Dosari", Rank: 5, Department: "Operations",
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(removed).To(Equal(int64(1)))

			_, err = repo.GetByID(m.ID)
			Expect(err).To(Equal(internal.ErrManagerNotFound))

			_, err = rounds.GetByID(fresh.ID)
			Expect(err).To(Equal(internal.ErrRoundNotFound))

			survivor, err := rounds.GetByID(stale.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(survivor.ManagerName).To(Equal("Ahmed Al-Harbi"))
		})

		It("removes rounds shared by an identical manager snapshot", func() {
			m := newManager("Ahmed Al-Harbi", 5, "Operations")
			twin := newManager("Ahmed Al-Harbi", 5, "Operations")
			newRound(m, "Warehouse A")
			twinRound := newRound(twin, "Warehouse B")

			removed, err := repo.DeleteCascade(m)
			Expect(err).ToNot(HaveOccurred())
			Expect(removed).To(Equal(int64(2)))

			_, err = rounds.GetByID(twinRound.ID)
			Expect(err).To(Equal(internal.ErrRoundNotFound))

			stored, err := repo.GetByID(twin.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored.LastRounds).To(BeEmpty())
		})
	})

	Describe("SnapshotByID", func() {
		It("returns the manager's identifying fields", func() {
			m := newManager("Saleh Al-Qahtani", 9, "Security")

			snapshot, err := repo.SnapshotByID(m.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(snapshot.ID).To(Equal(m.ID))
			Expect(snapshot.Name).To(Equal("Saleh Al-Qahtani"))
			Expect(snapshot.Rank).To(Equal(9))
			Expect(snapshot.Department).To(Equal("Security"))
		})

		It("returns nil without an error for an unknown id", func() {
			snapshot, err := repo.SnapshotByID("missing")
			Expect(err).ToNot(HaveOccurred())
			Expect(snapshot).To(BeNil())
		})
	})
})
