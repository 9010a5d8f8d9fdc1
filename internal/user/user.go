package user

import (
	"errors"
	"time"
)

// User is the credential store record. JSON field names follow the wire
// format the frontend already speaks (nombre, departamento).
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"column:username;uniqueIndex;not null;size:100"`
	Nombre       string    `json:"nombre" gorm:"column:nombre;not null;size:255"`
	Departamento string    `json:"departamento" gorm:"column:departamento;size:100"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         string    `json:"role" gorm:"column:role;not null;size:50"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

// RegisterDTO is the request payload for POST /register.
type RegisterDTO struct {
	Nombre       string `json:"nombre"`
	Departamento string `json:"departamento"`
	Username     string `json:"username"`
	Password     string `json:"password"`
}

// Validate checks that every registration field is present.
func (d RegisterDTO) Validate() error {
	if d.Nombre == "" || d.Departamento == "" || d.Username == "" || d.Password == "" {
		return errors.New("nombre, departamento, username and password are required")
	}
	return nil
}

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)
