package service

import (
	"context"

	"devlink/backend/internal/models"
	"devlink/backend/internal/repository"
)

// FeedGate answers visibility questions from accepted edges and the privacy flag.
// It never writes to the graph.
type FeedGate struct {
	users repository.IdentityStore
	graph repository.SocialGraph
}

func NewFeedGate(users repository.IdentityStore, graph repository.SocialGraph) *FeedGate {
	return &FeedGate{users: users, graph: graph}
}

// CanView reports whether viewerID may see content owned by ownerID.
func (g *FeedGate) CanView(ctx context.Context, viewerID, ownerID uint) (bool, error) {
	if viewerID == ownerID {
		return true, nil
	}

	owner, err := g.users.GetUser(ctx, ownerID)
	if err != nil {
		return false, err
	}
	if !owner.IsPrivate {
		return true, nil
	}

	state, err := g.Relationship(ctx, viewerID, ownerID)
	if err != nil {
		return false, err
	}
	return state == models.StateActive, nil
}

// Relationship returns the state of the viewer → owner edge.
func (g *FeedGate) Relationship(ctx context.Context, viewerID, ownerID uint) (models.RelationshipState, error) {
	edge, err := g.graph.GetEdge(ctx, viewerID, ownerID)
	if err != nil {
		return models.StateNone, err
	}
	return models.StateOf(edge), nil
}

// Counts returns accepted followers and following of userID.
func (g *FeedGate) Counts(ctx context.Context, userID uint) (followers, following int64, err error) {
	if followers, err = g.graph.CountAcceptedFollowers(ctx, userID); err != nil {
		return 0, 0, err
	}
	if following, err = g.graph.CountAcceptedFollowing(ctx, userID); err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}

func (g *FeedGate) Followers(ctx context.Context, userID uint, offset, limit int) ([]models.User, error) {
	edges, err := g.graph.ListAcceptedFollowers(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(edges))
	for _, e := range edges {
		users = append(users, e.Follower)
	}
	return users, nil
}

func (g *FeedGate) Following(ctx context.Context, userID uint, offset, limit int) ([]models.User, error) {
	edges, err := g.graph.ListAcceptedFollowing(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(edges))
	for _, e := range edges {
		users = append(users, e.Following)
	}
	return users, nil
}
