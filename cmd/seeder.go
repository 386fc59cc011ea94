package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nalharbi/inspection-management/internal/auth"
	"github.com/nalharbi/inspection-management/internal/manager"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a bootstrap credential and sample managers",
	Long: `Registration requires a bearer token, so the first token has to come
from a seeded credential. Also inserts a couple of sample managers for
development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		username := "admin"
		password := os.Getenv("SEED_ADMIN_PASSWORD")
		if password == "" {
			password = "changeme"
		}

		var count int64
		if err := db.Model(&auth.Credential{}).Where("username = ?", username).Count(&count).Error; err != nil {
			log.Fatalf("failed to check for admin credential: %v", err)
		}

		if count == 0 {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)
			if err != nil {
				log.Fatalf("failed to hash password: %v", err)
			}
			if err := db.Create(&auth.Credential{
				Username:     username,
				PasswordHash: string(hash),
			}).Error; err != nil {
				log.Fatalf("failed to seed admin credential: %v", err)
			}
			fmt.Println("Seeded admin credential:", username)
		} else {
			fmt.Println("admin credential already exists")
		}

		managers := []manager.Manager{
			{Name: "Ahmed Al-Harbi", Rank: 5, Department: "Operations"},
			{Name: "Saleh Al-Qahtani", Rank: 9, Department: "Security"},
		}
		for _, m := range managers {
			var exists int64
			if err := db.Model(&manager.Manager{}).Where("name = ? AND department = ?", m.Name, m.Department).Count(&exists).Error; err != nil {
				log.Fatalf("failed to check for manager: %v", err)
			}
			if exists > 0 {
				continue
			}
			if err := db.Omit("LastRounds").Create(&m).Error; err != nil {
				log.Fatalf("failed to seed manager %s: %v", m.Name, err)
			}
			fmt.Println("Seeded manager:", m.Name)
		}

		fmt.Println("Seeding complete")
	},
}
