package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gestionimagenes/backend/internal/media"
)

func TestMediaRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "MediaRepository Suite")
}

type SQLiteUser struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"column:username;uniqueIndex;not null"`
	Nombre       string `gorm:"column:nombre;not null"`
	Departamento string `gorm:"column:departamento;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Role         string `gorm:"column:role;not null"`
}

func (SQLiteUser) TableName() string {
	return "users"
}

type SQLiteFloorImage struct {
	ID                int64     `gorm:"primaryKey"`
	UserID            int64     `gorm:"column:user_id;not null"`
	Piso              string    `gorm:"column:piso;not null"`
	FileName          string    `gorm:"column:file_name;not null"`
	StoragePath       string    `gorm:"column:storage_path;not null"`
	UploadedAt        time.Time `gorm:"column:uploaded_at;not null"`
	ContentModifiedAt time.Time `gorm:"column:content_modified_at;not null"`
}

func (SQLiteFloorImage) TableName() string {
	return "floor_images"
}

type SQLiteVehicleImage struct {
	ID          int64     `gorm:"primaryKey"`
	Plate       string    `gorm:"column:plate;not null"`
	Section     string    `gorm:"column:section;not null"`
	StoragePath string    `gorm:"column:storage_path;not null"`
	UserID      int64     `gorm:"column:user_id;not null"`
	UploadedAt  time.Time `gorm:"column:uploaded_at;not null"`
}

func (SQLiteVehicleImage) TableName() string {
	return "vehicle_images"
}

var _ = Describe("MediaRepository", func() {
	var (
		db   *gorm.DB
		repo media.Repository
	)

	createUser := func(username, nombre string) int64 {
		u := &SQLiteUser{
			Username:     username,
			Nombre:       nombre,
			Departamento: "Mantenimiento",
			PasswordHash: "x",
			Role:         "User",
		}
		Expect(db.Create(u).Error).NotTo(HaveOccurred())
		return u.ID
	}

	createFloorImage := func(userID int64, piso string, uploadedAt time.Time) {
		Expect(repo.CreateFloorImage(&media.FloorImage{
			UserID:            userID,
			Piso:              piso,
			FileName:          "f.png",
			StoragePath:       "/uploads/f.png",
			UploadedAt:        uploadedAt,
			ContentModifiedAt: uploadedAt,
		})).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{}, &SQLiteFloorImage{}, &SQLiteVehicleImage{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewMediaRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("floor images", func() {
		It("joins the uploader's display name into listing rows", func() {
			userID := createUser("maria", "Maria Lopez")
			createFloorImage(userID, "Piso 1", time.Now().UTC())

			records, err := repo.AllFloorImages()
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].UploaderName).To(Equal("Maria Lopez"))
			Expect(records[0].Piso).To(Equal("Piso 1"))
		})

		It("scopes per-user listings to the given owner", func() {
			mariaID := createUser("maria", "Maria Lopez")
			pedroID := createUser("pedro", "Pedro Ruiz")
			createFloorImage(mariaID, "Piso 1", time.Now().UTC())
			createFloorImage(mariaID, "Piso 2", time.Now().UTC())
			createFloorImage(pedroID, "Piso 1", time.Now().UTC())

			records, err := repo.FloorImagesByUser(mariaID)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			for _, rec := range records {
				Expect(rec.UserID).To(Equal(mariaID))
			}
		})

		It("orders listings newest first", func() {
			userID := createUser("maria", "Maria Lopez")
			older := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
			newer := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
			createFloorImage(userID, "Piso 1", older)
			createFloorImage(userID, "Piso 2", newer)

			records, err := repo.AllFloorImages()
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[0].Piso).To(Equal("Piso 2"))
		})
	})

	Describe("vehicle images", func() {
		var userID int64

		createVehicleImage := func(plate string, uploadedAt time.Time) {
			Expect(repo.CreateVehicleImage(&media.VehicleImage{
				Plate:       plate,
				Section:     media.SectionFront,
				StoragePath: "/uploads/v.png",
				UserID:      userID,
				UploadedAt:  uploadedAt,
			})).NotTo(HaveOccurred())
		}

		BeforeEach(func() {
			userID = createUser("carlos", "Carlos Gil")
		})

		It("filters by plate", func() {
			createVehicleImage("ABC123", time.Now().UTC())
			createVehicleImage("XYZ789", time.Now().UTC())

			images, err := repo.QueryVehicleImages("ABC123", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(images).To(HaveLen(1))
			Expect(images[0].Plate).To(Equal("ABC123"))
		})

		It("filters by upload calendar day with a half-open range", func() {
			inDay := time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC)
			nextDay := time.Date(2025, 3, 16, 0, 1, 0, 0, time.UTC)
			createVehicleImage("ABC123", inDay)
			createVehicleImage("ABC123", nextDay)

			day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
			images, err := repo.QueryVehicleImages("", &day)
			Expect(err).NotTo(HaveOccurred())
			Expect(images).To(HaveLen(1))
			Expect(images[0].UploadedAt.UTC()).To(BeTemporally("==", inDay))
		})

		It("combines both filters conjunctively", func() {
			target := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
			createVehicleImage("ABC123", target)
			createVehicleImage("XYZ789", target)
			createVehicleImage("ABC123", target.AddDate(0, 0, 1))

			day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
			images, err := repo.QueryVehicleImages("ABC123", &day)
			Expect(err).NotTo(HaveOccurred())
			Expect(images).To(HaveLen(1))
		})

		It("returns everything when no filters are given", func() {
			createVehicleImage("ABC123", time.Now().UTC())
			createVehicleImage("XYZ789", time.Now().UTC())

			images, err := repo.QueryVehicleImages("", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(images).To(HaveLen(2))
		})
	})
})
