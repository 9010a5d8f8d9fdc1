package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gestionimagenes/backend/internal/user"
)

func TestUserRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "UserRepository Suite")
}

type SQLiteUser struct {
	ID           int64     `gorm:"primaryKey"`
	Username     string    `gorm:"column:username;uniqueIndex;not null"`
	Nombre       string    `gorm:"column:nombre;not null"`
	Departamento string    `gorm:"column:departamento;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (SQLiteUser) TableName() string {
	return "users"
}

var _ = Describe("UserRepository", func() {
	var (
		db   *gorm.DB
		repo user.Repository
	)

	newUser := func(username string) *user.User {
		return &user.User{
			Username:     username,
			Nombre:       "Maria Lopez",
			Departamento: "Mantenimiento",
			PasswordHash: "hash",
			Role:         "User",
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewUserRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("assigns an id on insert", func() {
			u := newUser("maria")
			Expect(repo.Create(u)).To(Succeed())
			Expect(u.ID).To(BeNumerically(">", 0))
		})

		It("maps the unique-index violation to ErrUserExists", func() {
			Expect(repo.Create(newUser("maria"))).To(Succeed())
			Expect(repo.Create(newUser("maria"))).To(MatchError(user.ErrUserExists))
		})
	})

	Describe("GetByUsername", func() {
		It("retrieves a stored user", func() {
			created := newUser("maria")
			Expect(repo.Create(created)).To(Succeed())

			got, err := repo.GetByUsername("maria")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(created.ID))
			Expect(got.Nombre).To(Equal("Maria Lopez"))
		})

		It("returns ErrUserNotFound for unknown usernames", func() {
			_, err := repo.GetByUsername("ghost")
			Expect(err).To(MatchError(user.ErrUserNotFound))
		})
	})

	Describe("GetByID", func() {
		It("returns ErrUserNotFound for unknown ids", func() {
			_, err := repo.GetByID(12345)
			Expect(err).To(MatchError(user.ErrUserNotFound))
		})
	})
})
