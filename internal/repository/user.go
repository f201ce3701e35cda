package repository

import (
	"context"
	"errors"

	"devlink/backend/internal/database"
	"devlink/backend/internal/errorx"
	"devlink/backend/internal/models"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) IdentityStore {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := database.Conn(ctx, r.db).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errorx.New(errorx.BadRequest, "Nickname or email already exists")
	}
	return err
}

func (r *userRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := database.Conn(ctx, r.db).Where("id = ?", id).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User %d not found", id)
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*models.User, error) {
	updateMap := map[string]any{}
	if update.DisplayName != nil {
		updateMap["display_name"] = *update.DisplayName
	}
	if update.Bio != nil {
		updateMap["bio"] = *update.Bio
	}
	if update.IsPrivate != nil {
		updateMap["is_private"] = *update.IsPrivate
	}
	if update.ShowFollowerCount != nil {
		updateMap["show_follower_count"] = *update.ShowFollowerCount
	}

	if len(updateMap) > 0 {
		tx := database.Conn(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Updates(updateMap)
		if tx.Error != nil {
			return nil, tx.Error
		}
		if tx.RowsAffected == 0 {
			return nil, errorx.New(errorx.NotFound, "User %d not found", id)
		}
	}

	return r.GetUser(ctx, id)
}
