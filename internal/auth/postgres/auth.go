package postgres

import (
	"database/sql"
	"fmt"

	"github.com/gestionimagenes/backend/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetPasswordForUsername(username string) (string, error) {
	var passwordHash string
	query := `SELECT password_hash FROM users WHERE username = ?`

	row := r.db.Raw(query, username).Row()
	if err := row.Scan(&passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("user not found")
		}
		return "", err
	}
	return passwordHash, nil
}

func (r *Repository) GetUserByUsername(username string) (*auth.User, error) {
	var user auth.User
	query := `SELECT id, username, nombre, departamento, role FROM users WHERE username = ?`

	row := r.db.Raw(query, username).Row()
	if err := row.Scan(&user.ID, &user.Username, &user.Nombre, &user.Department, &user.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &user, nil
}
