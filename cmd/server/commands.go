package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"devlink/backend/internal/config"
	"devlink/backend/internal/database"
	"devlink/backend/internal/handler"
	"devlink/backend/internal/hub"
	"devlink/backend/internal/models"
	"devlink/backend/internal/repository"
	"devlink/backend/internal/service"
	"devlink/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:          "devlink",
		Short:        "Follow requests, privacy and notifications for devlink",
		SilenceUsage: true,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Runs the HTTP API",
		Long:  `Migrates the database and serves the REST API, the notification stream, /metrics and /swagger.`,
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Creates or updates the database tables",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}

	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	userCreateCmd = &cobra.Command{
		Use:   "create [nickname] [email]",
		Short: "Registers a user",
		Args:  cobra.ExactArgs(2),
		RunE:  runUserCreate,
	}
	userPrivate     bool
	userDisplayName string

	tokenCmd = &cobra.Command{
		Use:   "token [user-id]",
		Short: "Prints a bearer token for a user, for local development",
		Args:  cobra.ExactArgs(1),
		RunE:  runToken,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to an env file (default ./.env)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)

	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().BoolVar(&userPrivate, "private", false, "Create the account as private")
	userCreateCmd.Flags().StringVar(&userDisplayName, "display-name", "", "Display name")

	rootCmd.AddCommand(tokenCmd)
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// setup loads the configuration and opens the database.
func setup() (*config.Config, *slog.Logger, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := newLogger(cfg)
	slog.SetDefault(log)

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL, log)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, log, db, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	_, log, db, err := setup()
	if err != nil {
		return err
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	log.Info("Database migrated.")
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, db, err := setup()
	if err != nil {
		return err
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	users := repository.NewUserRepository(db)
	graph := repository.NewFollowRepository(db)
	ledger := repository.NewNotificationRepository(db)
	notificationHub := hub.NewHub(log)

	follows := service.NewFollowOrchestrator(users, graph, ledger, database.NewTransactor(db),
		service.WithPublisher(notificationHub),
		service.WithLogger(log),
		service.WithRetryPolicy(service.RetryPolicy{
			MaxTries:  cfg.TxMaxRetries,
			BaseDelay: cfg.TxRetryBaseDelay,
		}),
	)

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handler.Dependencies{
		JWTSecret:     cfg.JWTSecret,
		Users:         users,
		Follows:       follows,
		Notifications: service.NewNotificationService(ledger),
		Gate:          service.NewFeedGate(users, graph),
		Hub:           notificationHub,
		Log:           log,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Info("Server is running",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("swagger", "/swagger/index.html"),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	_, log, db, err := setup()
	if err != nil {
		return err
	}

	user := &models.User{
		Nickname:          args[0],
		Email:             args[1],
		DisplayName:       userDisplayName,
		IsPrivate:         userPrivate,
		ShowFollowerCount: true,
	}
	if err := repository.NewUserRepository(db).Create(cmd.Context(), user); err != nil {
		return err
	}

	log.Info("User created", slog.Uint64("user_id", uint64(user.ID)), slog.Bool("is_private", user.IsPrivate))
	fmt.Fprintln(cmd.OutOrStdout(), user.ID)
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	userID, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil || userID == 0 {
		return fmt.Errorf("invalid user id %q", args[0])
	}

	cfg, _, db, err := setup()
	if err != nil {
		return err
	}

	if _, err := repository.NewUserRepository(db).GetUser(cmd.Context(), uint(userID)); err != nil {
		return err
	}

	token, err := jwt.GenerateToken(cfg.JWTSecret, uint(userID))
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
