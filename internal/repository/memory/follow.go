package memory

import (
	"context"
	"slices"

	"devlink/backend/internal/errorx"
	"devlink/backend/internal/models"
	"devlink/backend/internal/repository"
)

type followRepository struct {
	s *Store
}

func NewFollowRepository(s *Store) repository.SocialGraph {
	return &followRepository{s: s}
}

func (r *followRepository) GetEdge(_ context.Context, followerID, followingID uint) (*models.Follow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	edge, ok := r.s.follows[pair{followerID, followingID}]
	if !ok {
		return nil, nil
	}
	return &edge, nil
}

func (r *followRepository) CreateOrGetEdge(
	_ context.Context, followerID, followingID uint, initial models.FollowStatus,
) (*models.Follow, bool, error) {
	if followerID == followingID {
		return nil, false, errorx.New(errorx.InvalidOperation, "Cannot follow yourself")
	}
	if !initial.Valid() || initial == models.FollowRejected {
		return nil, false, errorx.New(errorx.InvalidState, "Edge cannot start as %q", initial)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pair{followerID, followingID}
	if edge, ok := r.s.follows[key]; ok {
		return &edge, false, nil
	}

	r.s.nextFollowID++
	now := r.s.now()
	edge := models.Follow{
		ID:          r.s.nextFollowID,
		FollowerID:  followerID,
		FollowingID: followingID,
		Status:      initial,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.s.follows[key] = edge

	return &edge, true, nil
}

func (r *followRepository) SetStatus(_ context.Context, edge *models.Follow, status models.FollowStatus) error {
	if status != models.FollowAccepted && status != models.FollowRejected {
		return errorx.New(errorx.InvalidState, "Cannot move a follow edge to %q", status)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pair{edge.FollowerID, edge.FollowingID}
	stored, ok := r.s.follows[key]
	if !ok || stored.ID != edge.ID || stored.Status != models.FollowPending {
		return errorx.New(errorx.InvalidState, "Follow edge is no longer pending")
	}

	stored.Status = status
	stored.UpdatedAt = r.s.now()
	r.s.follows[key] = stored
	edge.Status = status
	return nil
}

func (r *followRepository) RemoveEdge(_ context.Context, followerID, followingID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pair{followerID, followingID}
	_, ok := r.s.follows[key]
	delete(r.s.follows, key)
	return ok, nil
}

func (r *followRepository) accepted(match func(models.Follow) bool) []models.Follow {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []models.Follow
	for _, edge := range r.s.follows {
		if edge.Status == models.FollowAccepted && match(edge) {
			edge.Follower = r.s.users[edge.FollowerID]
			edge.Following = r.s.users[edge.FollowingID]
			result = append(result, edge)
		}
	}

	slices.SortFunc(result, func(a, b models.Follow) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID) - int(a.ID)
	})
	return result
}

func (r *followRepository) CountAcceptedFollowers(_ context.Context, userID uint) (int64, error) {
	return int64(len(r.accepted(func(f models.Follow) bool { return f.FollowingID == userID }))), nil
}

func (r *followRepository) CountAcceptedFollowing(_ context.Context, userID uint) (int64, error) {
	return int64(len(r.accepted(func(f models.Follow) bool { return f.FollowerID == userID }))), nil
}

func (r *followRepository) ListAcceptedFollowers(
	_ context.Context, userID uint, offset, limit int,
) ([]models.Follow, error) {
	return page(r.accepted(func(f models.Follow) bool { return f.FollowingID == userID }), offset, limit), nil
}

func (r *followRepository) ListAcceptedFollowing(
	_ context.Context, userID uint, offset, limit int,
) ([]models.Follow, error) {
	return page(r.accepted(func(f models.Follow) bool { return f.FollowerID == userID }), offset, limit), nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
