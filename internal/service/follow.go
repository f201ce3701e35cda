package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"devlink/backend/internal/errorx"
	"devlink/backend/internal/models"
	"devlink/backend/internal/repository"

	"github.com/cenkalti/backoff/v5"
)

// Publisher receives notifications after the transaction that created them commits.
type Publisher interface {
	Publish(n models.Notification)
}

// RetryPolicy bounds how often a transition is retried after a lock or serialization conflict.
type RetryPolicy struct {
	MaxTries  uint
	BaseDelay time.Duration
}

// DefaultRetryPolicy is used when no WithRetryPolicy option is given.
var DefaultRetryPolicy = RetryPolicy{MaxTries: 5, BaseDelay: 10 * time.Millisecond}

// FollowResult is the relationship state after a transition and whether the call changed it.
type FollowResult struct {
	State   models.RelationshipState `json:"state"`
	Changed bool                     `json:"changed"`
}

// Option configures a FollowOrchestrator.
type Option func(*FollowOrchestrator)

// WithPublisher delivers committed notifications to p.
func WithPublisher(p Publisher) Option {
	return func(o *FollowOrchestrator) { o.publisher = p }
}

// WithLogger replaces slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(o *FollowOrchestrator) { o.log = log }
}

// WithRetryPolicy overrides DefaultRetryPolicy. A zero MaxTries means a single attempt.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(o *FollowOrchestrator) { o.retry = p }
}

// FollowOrchestrator drives the follow state machine. Every transition writes the edge and
// its notifications in one transaction.
type FollowOrchestrator struct {
	users     repository.IdentityStore
	graph     repository.SocialGraph
	ledger    repository.NotificationLedger
	tx        repository.Transactor
	publisher Publisher
	log       *slog.Logger
	retry     RetryPolicy
}

// NewFollowOrchestrator wires the orchestrator to its stores. tx must be the transactor the
// repositories read their transaction from.
func NewFollowOrchestrator(
	users repository.IdentityStore,
	graph repository.SocialGraph,
	ledger repository.NotificationLedger,
	tx repository.Transactor,
	opts ...Option,
) *FollowOrchestrator {
	o := &FollowOrchestrator{
		users:  users,
		graph:  graph,
		ledger: ledger,
		tx:     tx,
		log:    slog.Default(),
		retry:  DefaultRetryPolicy,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.retry.MaxTries == 0 {
		o.retry.MaxTries = 1
	}
	return o
}

// Follow creates the edge from followerID to targetID. Public targets are followed
// immediately, private ones get a pending request. Following an existing edge of any status
// changes nothing and reports the current state.
func (o *FollowOrchestrator) Follow(ctx context.Context, followerID, targetID uint) (*FollowResult, error) {
	if followerID == targetID {
		return nil, o.observe("follow", time.Now(), nil,
			errorx.New(errorx.InvalidOperation, "Cannot follow yourself"))
	}

	var result FollowResult
	start := time.Now()
	err := o.run(ctx, "follow", func(ctx context.Context, created *[]models.Notification) error {
		if _, err := o.users.GetUser(ctx, followerID); err != nil {
			return err
		}

		target, err := o.users.GetUser(ctx, targetID)
		if err != nil {
			return err
		}

		initial := models.FollowAccepted
		if target.IsPrivate {
			initial = models.FollowPending
		}

		edge, isNew, err := o.graph.CreateOrGetEdge(ctx, followerID, targetID, initial)
		if err != nil {
			return err
		}

		result = FollowResult{State: models.StateOf(edge), Changed: isNew}
		if !isNew {
			return nil
		}

		if edge.Status == models.FollowAccepted {
			return o.notify(ctx, created, repository.NewNotification{
				RecipientID: targetID,
				SenderID:    followerID,
				Type:        models.NotificationFollow,
			})
		}

		pending := models.FollowPending
		if err := o.notify(ctx, created, repository.NewNotification{
			RecipientID: targetID,
			SenderID:    followerID,
			Type:        models.NotificationFollowRequestReceived,
			Status:      &pending,
			FollowID:    &edge.ID,
		}); err != nil {
			return err
		}

		// The sent copy is informational; its sender is the counterpart of the request.
		return o.notify(ctx, created, repository.NewNotification{
			RecipientID: followerID,
			SenderID:    targetID,
			Type:        models.NotificationFollowRequestSent,
			FollowID:    &edge.ID,
		})
	})
	if err := o.observe("follow", start, &result, err); err != nil {
		return nil, err
	}

	return &result, nil
}

// Unfollow removes the edge whatever its status. For a pending edge this cancels the request,
// and the target's follow_request_received is closed as cancelled in the same transaction.
// It reports whether an edge was removed.
func (o *FollowOrchestrator) Unfollow(ctx context.Context, followerID, targetID uint) (bool, error) {
	if followerID == targetID {
		return false, o.observe("unfollow", time.Now(), nil,
			errorx.New(errorx.InvalidOperation, "Cannot unfollow yourself"))
	}

	var removed bool
	start := time.Now()
	err := o.run(ctx, "unfollow", func(ctx context.Context, _ *[]models.Notification) error {
		removed = false
		edge, err := o.graph.GetEdge(ctx, followerID, targetID)
		if err != nil || edge == nil {
			return err
		}

		removed, err = o.graph.RemoveEdge(ctx, followerID, targetID)
		if err != nil || !removed || edge.Status != models.FollowPending {
			return err
		}

		// Edge before notification here; a concurrent accept holding the notification lock
		// surfaces as a deadlock and is retried by run.
		_, err = o.ledger.CancelFollowRequest(ctx, edge.ID)
		return err
	})
	if err := o.observe("unfollow", start, &FollowResult{Changed: removed}, err); err != nil {
		return false, err
	}

	return removed, nil
}

// Accept approves the follow request behind notificationID, which must be addressed to
// recipientID. The follower is told with a follow_accepted notification.
func (o *FollowOrchestrator) Accept(ctx context.Context, recipientID, notificationID uint) (*FollowResult, error) {
	return o.respond(ctx, "accept", recipientID, notificationID, models.FollowAccepted)
}

// Reject declines the follow request behind notificationID. Nothing is sent to the follower.
func (o *FollowOrchestrator) Reject(ctx context.Context, recipientID, notificationID uint) (*FollowResult, error) {
	return o.respond(ctx, "reject", recipientID, notificationID, models.FollowRejected)
}

func (o *FollowOrchestrator) respond(
	ctx context.Context, op string, recipientID, notificationID uint, status models.FollowStatus,
) (*FollowResult, error) {
	var result FollowResult
	start := time.Now()
	err := o.run(ctx, op, func(ctx context.Context, created *[]models.Notification) error {
		// Lock order is notification then edge for both accept and reject.
		n, err := o.ledger.Get(ctx, notificationID, recipientID)
		if err != nil {
			return err
		}
		if n.Type != models.NotificationFollowRequestReceived {
			return errorx.New(errorx.NotFound, "Follow request not found")
		}
		if !n.Actionable() {
			return errorx.New(errorx.InvalidState, "Follow request already handled")
		}

		edge, err := o.graph.GetEdge(ctx, n.SenderID, recipientID)
		if err != nil {
			return err
		}
		if edge == nil || edge.Status != models.FollowPending || (n.FollowID != nil && *n.FollowID != edge.ID) {
			return errorx.New(errorx.InvalidState, "Follow request no longer matches the relationship")
		}

		if err := o.graph.SetStatus(ctx, edge, status); err != nil {
			return err
		}
		if err := o.ledger.SetFollowRequestStatus(ctx, n.ID, recipientID, status); err != nil {
			return err
		}

		result = FollowResult{State: models.StateOf(edge), Changed: true}
		if status != models.FollowAccepted {
			return nil
		}

		return o.notify(ctx, created, repository.NewNotification{
			RecipientID: n.SenderID,
			SenderID:    recipientID,
			Type:        models.NotificationFollowAccepted,
			FollowID:    &edge.ID,
		})
	})
	if err := o.observe(op, start, &result, err); err != nil {
		return nil, err
	}

	return &result, nil
}

func (o *FollowOrchestrator) notify(
	ctx context.Context, created *[]models.Notification, in repository.NewNotification,
) error {
	n, err := o.ledger.Create(ctx, in)
	if err != nil {
		return err
	}
	*created = append(*created, *n)
	return nil
}

// run executes fn in a transaction, retrying it while the store reports contention.
// Notifications collected by fn are published only once the final attempt commits.
func (o *FollowOrchestrator) run(
	ctx context.Context, op string, fn func(ctx context.Context, created *[]models.Notification) error,
) error {
	var created []models.Notification

	attempt := func() (struct{}, error) {
		created = created[:0]
		err := o.tx.WithinTx(ctx, func(ctx context.Context) error {
			return fn(ctx, &created)
		})
		if errors.Is(err, errorx.ErrConflictRetry) {
			conflictRetriesTotal.WithLabelValues(op).Inc()
			o.log.Debug("Retrying follow transaction", slog.String("operation", op), slog.Any("error", err))
			return struct{}{}, err
		}
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.retry.BaseDelay
	b.MaxInterval = 32 * o.retry.BaseDelay

	_, err := backoff.Retry(ctx, attempt, backoff.WithBackOff(b), backoff.WithMaxTries(o.retry.MaxTries))
	if err != nil {
		if errors.Is(err, errorx.ErrConflictRetry) {
			return errorx.Wrap(errorx.Unavailable, err, "Too much contention, try again later")
		}
		return err
	}

	for _, n := range created {
		notificationsCreatedTotal.WithLabelValues(string(n.Type)).Inc()
		if o.publisher != nil {
			o.publisher.Publish(n)
		}
	}
	return nil
}

func (o *FollowOrchestrator) observe(op string, start time.Time, result *FollowResult, err error) error {
	transitionDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		code := errorx.CodeOf(err)
		transitionsTotal.WithLabelValues(op, code.String()).Inc()
		if code == errorx.Unknown || code == errorx.Unavailable {
			o.log.Error("Follow operation failed", slog.String("operation", op), slog.Any("error", err))
		}
	case result != nil && result.Changed:
		transitionsTotal.WithLabelValues(op, "changed").Inc()
	default:
		transitionsTotal.WithLabelValues(op, "unchanged").Inc()
	}

	return err
}
