package media

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gestionimagenes/backend/internal"
	"github.com/gestionimagenes/backend/internal/auth"
)

// Repository defines the data access methods for image metadata
type Repository interface {
	CreateFloorImage(img *FloorImage) error
	FloorImagesByUser(userID int64) ([]*FloorImageRecord, error)
	AllFloorImages() ([]*FloorImageRecord, error)
	CreateVehicleImage(img *VehicleImage) error
	QueryVehicleImages(plate string, day *time.Time) ([]*VehicleImage, error)
}

// Service handles image upload, listing and serving
type Service struct {
	repo   Repository
	store  FileStore
	logger *slog.Logger
}

func NewService(repo Repository, store FileStore, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// SaveFloorImages stores a batch of floor photos for ownerID. Validation
// runs before any write. Each file is a saga of two steps: disk write, then
// metadata insert; the disk write is compensated (file removed) if the
// insert fails, so disk and table cannot drift apart for a single file.
// A failure mid-batch leaves earlier files committed; that partial-batch
// outcome is the documented contract.
func (s *Service) SaveFloorImages(ownerID int64, dto FloorUploadDTO) ([]string, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	piso := dto.Piso
	if piso == "" {
		piso = DefaultFloor
	}

	saved := make([]string, 0, len(dto.Files))
	for i, fh := range dto.Files {
		storageName := NewStorageName(fh.Filename)

		if err := s.store.Save(fh, storageName); err != nil {
			s.logger.Error("failed to store upload", "file", fh.Filename, "error", err)
			return saved, internal.NewInternalError("failed to store file", err)
		}

		img := &FloorImage{
			UserID:            ownerID,
			Piso:              piso,
			FileName:          storageName,
			StoragePath:       "/uploads/" + storageName,
			UploadedAt:        time.Now().UTC(),
			ContentModifiedAt: parseClientTimestamp(dto.LastModified[i]),
		}

		if err := s.repo.CreateFloorImage(img); err != nil {
			s.logger.Error("failed to insert image metadata", "file", storageName, "error", err)
			if rmErr := s.store.Remove(storageName); rmErr != nil {
				s.logger.Error("failed to remove orphaned file", "file", storageName, "error", rmErr)
			}
			return saved, internal.NewInternalError("failed to save image", err)
		}

		saved = append(saved, storageName)
	}

	s.logger.Info("floor images uploaded", "user_id", ownerID, "piso", piso, "count", len(saved))
	return saved, nil
}

// SaveVehicleImages stores exactly four photos for a plate, one per section
// in fixed order. Same per-file compensation as floor uploads.
func (s *Service) SaveVehicleImages(ownerID int64, dto VehicleUploadDTO) ([]string, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	sections := Sections()
	saved := make([]string, 0, VehicleImageCount)
	for i, fh := range dto.Files {
		storageName := NewStorageName(fh.Filename)

		if err := s.store.Save(fh, storageName); err != nil {
			s.logger.Error("failed to store upload", "file", fh.Filename, "error", err)
			return saved, internal.NewInternalError("failed to store file", err)
		}

		img := &VehicleImage{
			Plate:       dto.Plate,
			Section:     sections[i],
			StoragePath: "/uploads/" + storageName,
			UserID:      ownerID,
			UploadedAt:  time.Now().UTC(),
		}

		if err := s.repo.CreateVehicleImage(img); err != nil {
			s.logger.Error("failed to insert vehicle image metadata", "file", storageName, "error", err)
			if rmErr := s.store.Remove(storageName); rmErr != nil {
				s.logger.Error("failed to remove orphaned file", "file", storageName, "error", rmErr)
			}
			return saved, internal.NewInternalError("failed to save image", err)
		}

		saved = append(saved, sections[i])
	}

	s.logger.Info("vehicle images uploaded", "user_id", ownerID, "plate", dto.Plate)
	return saved, nil
}

// ListFloorImages applies row-level scoping: admins see every row, everyone
// else only their own. Rows come joined with the uploader's display name.
func (s *Service) ListFloorImages(requester *auth.User) ([]*FloorImageRecord, error) {
	var (
		records []*FloorImageRecord
		err     error
	)

	if requester.IsAdmin() {
		records, err = s.repo.AllFloorImages()
	} else {
		records, err = s.repo.FloorImagesByUser(requester.ID)
	}
	if err != nil {
		s.logger.Error("failed to list floor images", "user_id", requester.ID, "error", err)
		return nil, internal.NewInternalError("failed to list images", err)
	}

	if records == nil {
		records = []*FloorImageRecord{}
	}
	return records, nil
}

// ListVehicleImages filters by plate and/or upload calendar date; both
// filters are optional and conjunctive. Date format is YYYY-MM-DD.
func (s *Service) ListVehicleImages(plate, date string) ([]*VehicleImage, error) {
	var day *time.Time
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, time.UTC)
		if err != nil {
			return nil, internal.NewValidationError("date must be YYYY-MM-DD", internal.ErrCodeValidationFailed)
		}
		day = &parsed
	}

	images, err := s.repo.QueryVehicleImages(plate, day)
	if err != nil {
		s.logger.Error("failed to list vehicle images", "plate", plate, "error", err)
		return nil, internal.NewInternalError("failed to list images", err)
	}

	if images == nil {
		images = []*VehicleImage{}
	}
	return images, nil
}

// FilePath resolves a served filename to its on-disk path.
func (s *Service) FilePath(filename string) (string, error) {
	return s.store.Path(filename)
}

// parseClientTimestamp converts a client epoch-millis string to UTC time,
// falling back to server time when missing or unparsable.
func parseClientTimestamp(raw string) time.Time {
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || millis <= 0 {
		return time.Now().UTC()
	}
	return time.UnixMilli(millis).UTC()
}
