package repository

import (
	"context"
	"errors"

	"devlink/backend/internal/database"
	"devlink/backend/internal/errorx"
	"devlink/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns the gorm backed social graph.
func NewFollowRepository(db *gorm.DB) SocialGraph {
	return &followRepository{db: db}
}

func (r *followRepository) GetEdge(ctx context.Context, followerID, followingID uint) (*models.Follow, error) {
	var edge models.Follow
	err := database.ForUpdate(ctx, database.Conn(ctx, r.db)).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Take(&edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &edge, nil
}

func (r *followRepository) CreateOrGetEdge(
	ctx context.Context, followerID, followingID uint, initial models.FollowStatus,
) (*models.Follow, bool, error) {
	if followerID == followingID {
		return nil, false, errorx.New(errorx.InvalidOperation, "Cannot follow yourself")
	}
	if !initial.Valid() || initial == models.FollowRejected {
		return nil, false, errorx.New(errorx.InvalidState, "Edge cannot start as %q", initial)
	}

	existing, err := r.GetEdge(ctx, followerID, followingID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	edge := models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		Status:      initial,
	}

	// A concurrent request may insert the same pair between the read and the insert; the
	// unique index turns that into a no-op and the row is read back below.
	tx := database.Conn(ctx, r.db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge)
	if tx.Error != nil {
		return nil, false, tx.Error
	}
	if tx.RowsAffected == 1 {
		return &edge, true, nil
	}

	existing, err = r.GetEdge(ctx, followerID, followingID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, errorx.New(errorx.ConflictRetry, "Follow edge vanished during insert")
	}

	return existing, false, nil
}

func (r *followRepository) SetStatus(ctx context.Context, edge *models.Follow, status models.FollowStatus) error {
	if status != models.FollowAccepted && status != models.FollowRejected {
		return errorx.New(errorx.InvalidState, "Cannot move a follow edge to %q", status)
	}
	if edge.Status != models.FollowPending {
		return errorx.New(errorx.InvalidState, "Follow edge is already %s", edge.Status)
	}

	tx := database.Conn(ctx, r.db).
		Model(&models.Follow{}).
		Where("id = ? AND status = ?", edge.ID, models.FollowPending).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return errorx.New(errorx.InvalidState, "Follow edge is no longer pending")
	}

	edge.Status = status
	return nil
}

func (r *followRepository) RemoveEdge(ctx context.Context, followerID, followingID uint) (bool, error) {
	tx := database.Conn(ctx, r.db).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *followRepository) CountAcceptedFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&models.Follow{}).
		Where("following_id = ? AND status = ?", userID, models.FollowAccepted).
		Count(&count).Error
	return count, err
}

func (r *followRepository) CountAcceptedFollowing(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&models.Follow{}).
		Where("follower_id = ? AND status = ?", userID, models.FollowAccepted).
		Count(&count).Error
	return count, err
}

func (r *followRepository) ListAcceptedFollowers(
	ctx context.Context, userID uint, offset, limit int,
) ([]models.Follow, error) {
	var result []models.Follow
	err := database.Conn(ctx, r.db).
		Preload("Follower").
		Where("following_id = ? AND status = ?", userID, models.FollowAccepted).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	return result, err
}

func (r *followRepository) ListAcceptedFollowing(
	ctx context.Context, userID uint, offset, limit int,
) ([]models.Follow, error) {
	var result []models.Follow
	err := database.Conn(ctx, r.db).
		Preload("Following").
		Where("follower_id = ? AND status = ?", userID, models.FollowAccepted).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	return result, err
}
