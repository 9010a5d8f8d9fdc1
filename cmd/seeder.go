package cmd

import (
	"fmt"
	"log"

	"github.com/gestionimagenes/backend/internal/auth"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// seedCmd creates the bootstrap users. Registration can only produce Admin
// (bootstrap username) and User roles; the coches uploader account has to
// come from here.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with bootstrap users",
	Long:  `Seed the database with an admin user and a vehicle-photo uploader for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		seedUsers := []struct {
			Username     string
			Nombre       string
			Departamento string
			Role         string
		}{
			{cfg.Security.BootstrapAdminUsername, "Administrator", "Sistemas", auth.RoleAdmin},
			{"coches", "Vehicle Uploader", "Flota", auth.RoleCoches},
		}

		for _, su := range seedUsers {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE username = ?", su.Username).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", su.Username)
				continue
			}

			if err := db.Exec(
				"INSERT INTO users (username, nombre, departamento, password_hash, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
				su.Username, su.Nombre, su.Departamento, string(hash), su.Role,
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", su.Username, err)
			}
			fmt.Printf("Seeded user %s with role %s\n", su.Username, su.Role)
		}

		fmt.Println("Seeding complete")
	},
}
