package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"devlink/backend/internal/database"
	"devlink/backend/internal/models"
	"devlink/backend/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// GetEmptyTestDB returns a migrated sqlite database stored in the test's temp dir.
func GetEmptyTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "devlink.db") + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := database.Open("sqlite", dsn, Logger())
	require.NoError(t, err, "open sqlite test db")
	require.NoError(t, database.Migrate(db), "migrate sqlite test db")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// GetEmptyIntegrationDB connects to the postgres database in TEST_DATABASE_URL and empties
// the service tables.
func GetEmptyIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("postgres", os.Getenv("TEST_DATABASE_URL"), Logger())
	require.NoError(t, err, "connect to integration db")
	require.NoError(t, database.Migrate(db), "migrate integration db")
	require.NoError(t, db.Exec("TRUNCATE notifications, follows, users RESTART IDENTITY CASCADE").Error)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// EnableIntegrationTest reports whether tests against TEST_DATABASE_URL should run.
func EnableIntegrationTest() bool {
	return len(os.Getenv("RUN_INTEGRATION_TEST")) > 0
}

// Repositories bundles the gorm repositories over one database.
type Repositories struct {
	Users  repository.IdentityStore
	Graph  repository.SocialGraph
	Ledger repository.NotificationLedger
	Tx     *database.Transactor
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:  repository.NewUserRepository(db),
		Graph:  repository.NewFollowRepository(db),
		Ledger: repository.NewNotificationRepository(db),
		Tx:     database.NewTransactor(db),
	}
}

// CreateUser stores a user named nickname with a derived email.
func CreateUser(t *testing.T, users repository.IdentityStore, nickname string, private bool) models.User {
	t.Helper()

	u := &models.User{
		Nickname:          nickname,
		Email:             fmt.Sprintf("%s@example.com", nickname),
		DisplayName:       nickname,
		IsPrivate:         private,
		ShowFollowerCount: true,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return *u
}
