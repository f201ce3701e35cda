package memory

import (
	"context"

	"devlink/backend/internal/errorx"
	"devlink/backend/internal/models"
	"devlink/backend/internal/repository"
)

type userRepository struct {
	s *Store
}

func NewUserRepository(s *Store) repository.IdentityStore {
	return &userRepository{s: s}
}

func (r *userRepository) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Nickname == user.Nickname || u.Email == user.Email {
			return errorx.New(errorx.BadRequest, "Nickname or email already exists")
		}
	}

	r.s.nextUserID++
	user.ID = r.s.nextUserID
	user.CreatedAt = r.s.now()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepository) GetUser(_ context.Context, id uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, errorx.New(errorx.NotFound, "User %d not found", id)
	}
	return &u, nil
}

func (r *userRepository) UpdateProfile(_ context.Context, id uint, update repository.ProfileUpdate) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, errorx.New(errorx.NotFound, "User %d not found", id)
	}

	if update.DisplayName != nil {
		u.DisplayName = *update.DisplayName
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	if update.IsPrivate != nil {
		u.IsPrivate = *update.IsPrivate
	}
	if update.ShowFollowerCount != nil {
		u.ShowFollowerCount = *update.ShowFollowerCount
	}
	u.UpdatedAt = r.s.now()
	r.s.users[id] = u

	return &u, nil
}
