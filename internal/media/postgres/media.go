package postgres

import (
	"time"

	"github.com/gestionimagenes/backend/internal/media"
	"gorm.io/gorm"
)

// MediaRepository implements the media.Repository interface using GORM
type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) media.Repository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) CreateFloorImage(img *media.FloorImage) error {
	return r.db.Create(img).Error
}

func (r *MediaRepository) FloorImagesByUser(userID int64) ([]*media.FloorImageRecord, error) {
	var records []*media.FloorImageRecord
	err := r.db.Model(&media.FloorImage{}).
		Select("floor_images.*, users.nombre AS usuario_nombre").
		Joins("JOIN users ON users.id = floor_images.user_id").
		Where("floor_images.user_id = ?", userID).
		Order("floor_images.uploaded_at DESC").
		Find(&records).Error
	return records, err
}

func (r *MediaRepository) AllFloorImages() ([]*media.FloorImageRecord, error) {
	var records []*media.FloorImageRecord
	err := r.db.Model(&media.FloorImage{}).
		Select("floor_images.*, users.nombre AS usuario_nombre").
		Joins("JOIN users ON users.id = floor_images.user_id").
		Order("floor_images.uploaded_at DESC").
		Find(&records).Error
	return records, err
}

func (r *MediaRepository) CreateVehicleImage(img *media.VehicleImage) error {
	return r.db.Create(img).Error
}

// QueryVehicleImages applies conjunctive optional filters. The date filter
// matches the upload calendar day with a half-open range so it stays
// portable across postgres and the sqlite used in tests, and can use an
// index on uploaded_at.
func (r *MediaRepository) QueryVehicleImages(plate string, day *time.Time) ([]*media.VehicleImage, error) {
	q := r.db.Model(&media.VehicleImage{})

	if plate != "" {
		q = q.Where("plate = ?", plate)
	}
	if day != nil {
		start := day.UTC().Truncate(24 * time.Hour)
		q = q.Where("uploaded_at >= ? AND uploaded_at < ?", start, start.Add(24*time.Hour))
	}

	var images []*media.VehicleImage
	err := q.Order("uploaded_at DESC").Find(&images).Error
	return images, err
}
