package directory

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/user-dashboard/internal"
	"github.com/frahmantamala/user-dashboard/internal/core/datamodel/directoryuser"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*directoryuser.User, error)
	// GetByID returns nil, nil when no row has id.
	GetByID(ctx context.Context, id int64) (*directoryuser.User, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, user *directoryuser.User) error
	Update(ctx context.Context, user *directoryuser.User) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// Service answers the JSONPlaceholder /users resource. Unless persistWrites
// is set, writes are validated and echoed back but never stored, the way the
// public service behaves.
type Service struct {
	repo          RepositoryAPI
	logger        *slog.Logger
	persistWrites bool
}

func NewService(repo RepositoryAPI, logger *slog.Logger, persistWrites bool) *Service {
	return &Service{
		repo:          repo,
		logger:        logger,
		persistWrites: persistWrites,
	}
}

func (s *Service) List(ctx context.Context) ([]directoryuser.RawUser, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list directory users", "error", err)
		return nil, errors.NewInternalError("failed to list users", err)
	}

	users := make([]directoryuser.RawUser, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, id int64) (directoryuser.RawUser, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get directory user", "id", id, "error", err)
		return directoryuser.RawUser{}, errors.NewInternalError("failed to get user", err)
	}
	if row == nil {
		return directoryuser.RawUser{}, errors.ErrUserNotFound
	}
	return FromDataModel(row), nil
}

// Create stores u under a new id. Without persistence the id is the current
// row count plus one.
func (s *Service) Create(ctx context.Context, u directoryuser.RawUser) (directoryuser.RawUser, error) {
	if err := Validate(u); err != nil {
		return directoryuser.RawUser{}, err
	}

	if !s.persistWrites {
		count, err := s.repo.Count(ctx)
		if err != nil {
			return directoryuser.RawUser{}, errors.NewInternalError("failed to create user", err)
		}
		u.ID = count + 1
		s.logger.Info("directory user create echoed", "id", u.ID)
		return u, nil
	}

	row := ToDataModel(u)
	row.ID = 0
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create directory user", "error", err)
		return directoryuser.RawUser{}, errors.NewInternalError("failed to create user", err)
	}
	s.logger.Info("directory user created", "id", row.ID)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, u directoryuser.RawUser) (directoryuser.RawUser, error) {
	if err := Validate(u); err != nil {
		return directoryuser.RawUser{}, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return directoryuser.RawUser{}, errors.NewInternalError("failed to update user", err)
	}
	if existing == nil {
		return directoryuser.RawUser{}, errors.ErrUserNotFound
	}

	u.ID = id
	if !s.persistWrites {
		s.logger.Info("directory user update echoed", "id", id)
		return u, nil
	}

	row := ToDataModel(u)
	row.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update directory user", "id", id, "error", err)
		return directoryuser.RawUser{}, errors.NewInternalError("failed to update user", err)
	}
	s.logger.Info("directory user updated", "id", id)
	return FromDataModel(row), nil
}

// Delete removes id. Without persistence it always succeeds.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if !s.persistWrites {
		s.logger.Info("directory user delete echoed", "id", id)
		return nil
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete directory user", "id", id, "error", err)
		return errors.NewInternalError("failed to delete user", err)
	}
	if !deleted {
		return errors.ErrUserNotFound
	}
	s.logger.Info("directory user deleted", "id", id)
	return nil
}
