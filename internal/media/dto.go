package media

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gestionimagenes/backend/internal"
)

// FloorUploadDTO carries a floor-photo batch: files paired positionally
// with client-reported last-modified timestamps (epoch millis as strings).
type FloorUploadDTO struct {
	Piso         string
	Files        []*multipart.FileHeader
	LastModified []string
}

// Validate enforces every precondition before any byte hits disk: at least
// one file, matching parallel lengths, and a whitelisted extension on every
// file in the batch.
func (d FloorUploadDTO) Validate() error {
	if len(d.Files) == 0 {
		return internal.NewValidationError("no files in request", internal.ErrCodeMissingFields)
	}
	if len(d.Files) != len(d.LastModified) {
		return internal.NewValidationError(
			"file count does not match last_modified count",
			internal.ErrCodeCountMismatch,
		)
	}
	return validateExtensions(d.Files)
}

// VehicleUploadDTO carries a vehicle-photo batch: a plate and exactly four
// files mapped positionally to the fixed sections.
type VehicleUploadDTO struct {
	Plate string
	Files []*multipart.FileHeader
}

func (d VehicleUploadDTO) Validate() error {
	if d.Plate == "" {
		return internal.NewValidationError("plate is required", internal.ErrCodeMissingFields)
	}
	if len(d.Files) != VehicleImageCount {
		return internal.NewValidationError(
			fmt.Sprintf("exactly %d images are required, got %d", VehicleImageCount, len(d.Files)),
			internal.ErrCodeCountMismatch,
		)
	}
	return validateExtensions(d.Files)
}

func validateExtensions(files []*multipart.FileHeader) error {
	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowedExtensions[ext] {
			return internal.NewValidationError(
				fmt.Sprintf("file type not allowed: %s", fh.Filename),
				internal.ErrCodeUnsupportedFile,
			)
		}
	}
	return nil
}
