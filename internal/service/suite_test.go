package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"devlink/backend/internal/models"
	"devlink/backend/internal/repository"
	"devlink/backend/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (p *recordingPublisher) Publish(n models.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, n)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent)
}

type suite struct {
	store  *memory.Store
	users  repository.IdentityStore
	graph  repository.SocialGraph
	ledger repository.NotificationLedger
	tx     repository.Transactor
	pub    *recordingPublisher
}

func newSuite() *suite {
	store := memory.NewStore()
	return &suite{
		store:  store,
		users:  memory.NewUserRepository(store),
		graph:  memory.NewFollowRepository(store),
		ledger: memory.NewNotificationRepository(store),
		tx:     store,
		pub:    &recordingPublisher{},
	}
}

func (s *suite) orchestrator(opts ...Option) *FollowOrchestrator {
	opts = append([]Option{
		WithPublisher(s.pub),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithRetryPolicy(RetryPolicy{MaxTries: 3}),
	}, opts...)
	return NewFollowOrchestrator(s.users, s.graph, s.ledger, s.tx, opts...)
}

func (s *suite) createUser(t *testing.T, nickname string, private bool) models.User {
	t.Helper()
	u := &models.User{Nickname: nickname, Email: nickname + "@example.com", IsPrivate: private, ShowFollowerCount: true}
	require.NoError(t, s.users.Create(context.Background(), u))
	return *u
}

func (s *suite) notifications(t *testing.T, recipientID uint, typ models.NotificationType) []models.Notification {
	t.Helper()
	result, err := s.ledger.ListFor(context.Background(), recipientID, repository.NotificationFilter{Type: &typ})
	require.NoError(t, err)
	return result
}

func (s *suite) total(t *testing.T, recipientIDs ...uint) int64 {
	t.Helper()
	var total int64
	for _, id := range recipientIDs {
		n, err := s.ledger.CountFor(context.Background(), id, repository.NotificationFilter{})
		require.NoError(t, err)
		total += n
	}
	return total
}

func (s *suite) edge(t *testing.T, followerID, followingID uint) *models.Follow {
	t.Helper()
	edge, err := s.graph.GetEdge(context.Background(), followerID, followingID)
	require.NoError(t, err)
	return edge
}
