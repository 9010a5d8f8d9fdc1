package media

import (
	"time"
)

// FloorImage is one uploaded floor photo. JSON field names keep the wire
// format the gallery frontend reads (piso, nombre_archivo, fecha_subida...).
type FloorImage struct {
	ID                int64     `json:"id" gorm:"primaryKey"`
	UserID            int64     `json:"user_id" gorm:"column:user_id;not null"`
	Piso              string    `json:"piso" gorm:"column:piso;not null;size:50"`
	FileName          string    `json:"nombre_archivo" gorm:"column:file_name;not null;size:255"`
	StoragePath       string    `json:"ruta_archivo" gorm:"column:storage_path;not null"`
	UploadedAt        time.Time `json:"fecha_subida" gorm:"column:uploaded_at;not null"`
	ContentModifiedAt time.Time `json:"fecha_modificacion" gorm:"column:content_modified_at;not null"`
}

func (FloorImage) TableName() string {
	return "floor_images"
}

// FloorImageRecord is a listing row: the image joined with the uploader's
// display name.
type FloorImageRecord struct {
	FloorImage
	UploaderName string `json:"usuario_nombre" gorm:"column:usuario_nombre"`
}

// VehicleImage is one section photo of a vehicle. Rows are created in
// batches of exactly four, one per section.
type VehicleImage struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Plate       string    `json:"plate" gorm:"column:plate;not null;size:50"`
	Section     string    `json:"section" gorm:"column:section;not null;size:100"`
	StoragePath string    `json:"image_path" gorm:"column:storage_path;not null"`
	UserID      int64     `json:"user_id" gorm:"column:user_id;not null"`
	UploadedAt  time.Time `json:"upload_date" gorm:"column:uploaded_at;not null"`
}

func (VehicleImage) TableName() string {
	return "vehicle_images"
}

// Vehicle sections in upload order; files map to these positionally.
const (
	SectionFront = "front"
	SectionRear  = "rear"
	SectionLeft  = "left"
	SectionRight = "right"
)

func Sections() []string {
	return []string{SectionFront, SectionRear, SectionLeft, SectionRight}
}

// VehicleImageCount is the number of files a vehicle upload must carry.
const VehicleImageCount = 4

// DefaultFloor is used when the upload form omits the piso field.
const DefaultFloor = "Piso 1"

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}
