package user

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gestionimagenes/backend/internal"
	"github.com/gestionimagenes/backend/internal/auth"
)

type Repository interface {
	Create(u *User) error
	GetByUsername(username string) (*User, error)
	GetByID(id int64) (*User, error)
}

// Service handles registration and user lookups.
type Service struct {
	repo                   Repository
	bcryptCost             int
	bootstrapAdminUsername string
	logger                 *slog.Logger
}

func NewService(repo Repository, bcryptCost int, bootstrapAdminUsername string, logger *slog.Logger) *Service {
	return &Service{
		repo:                   repo,
		bcryptCost:             bcryptCost,
		bootstrapAdminUsername: bootstrapAdminUsername,
		logger:                 logger,
	}
}

// Register creates a user with a bcrypt-hashed password. The configured
// bootstrap admin username receives the Admin role; everyone else gets the
// default role. Roles are immutable through this API afterwards.
func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeMissingFields)
	}

	if _, err := s.repo.GetByUsername(dto.Username); err == nil {
		return nil, internal.NewAlreadyExistsError("user already exists", internal.ErrCodeUserAlreadyExists)
	} else if !errors.Is(err, ErrUserNotFound) {
		s.logger.Error("failed to check existing user", "username", dto.Username, "error", err)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	u := &User{
		Username:     dto.Username,
		Nombre:       dto.Nombre,
		Departamento: dto.Departamento,
		PasswordHash: hash,
		Role:         s.roleFor(dto.Username),
	}

	if err := s.repo.Create(u); err != nil {
		// unique index on username closes the check-then-insert race
		if errors.Is(err, ErrUserExists) {
			return nil, internal.NewAlreadyExistsError("user already exists", internal.ErrCodeUserAlreadyExists)
		}
		s.logger.Error("failed to create user", "username", dto.Username, "error", err)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	s.logger.Info("user registered", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return u, nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
		}
		return nil, internal.NewInternalError("failed to get user", err)
	}
	return u, nil
}

func (s *Service) roleFor(username string) string {
	if strings.EqualFold(username, s.bootstrapAdminUsername) {
		return auth.RoleAdmin
	}
	return auth.RoleUser
}
