package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	err := New(NotFound, "notification %d not found", 7)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, fmt.Errorf("respond: %w", err), ErrNotFound)
	assert.Equal(t, "notification 7 not found", err.Error())
}

func TestWrap(t *testing.T) {
	cause := errors.New("database is locked")
	err := Wrap(ConflictRetry, cause, "transaction conflict")

	assert.ErrorIs(t, err, ErrConflictRetry)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ConflictRetry, CodeOf(fmt.Errorf("tx: %w", err)))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, Unknown, CodeOf(errors.New("plain")))
	assert.Equal(t, InvalidState, CodeOf(ErrInvalidState))
	assert.Equal(t, "invalid_state", InvalidState.String())
}
