package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/SHAHRIARJAHIN/club-management/internal/config"
	"github.com/SHAHRIARJAHIN/club-management/internal/db"
	"github.com/SHAHRIARJAHIN/club-management/internal/handlers"
	"github.com/SHAHRIARJAHIN/club-management/internal/identity"
	"github.com/SHAHRIARJAHIN/club-management/internal/invite"
	"github.com/SHAHRIARJAHIN/club-management/internal/mail"
	"github.com/SHAHRIARJAHIN/club-management/internal/otel"
	"github.com/SHAHRIARJAHIN/club-management/internal/profile"
	"github.com/SHAHRIARJAHIN/club-management/internal/repository"
	"github.com/SHAHRIARJAHIN/club-management/internal/storage"
	"github.com/SHAHRIARJAHIN/club-management/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           version.Name,
		Short:         "Club membership portal",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newSeedCommand())
	return cmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the portal HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(ctx)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			database, err := db.Connect(ctx, cfg.DBDSN)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer func() {
				if err := db.Close(database); err != nil {
					log.Error().Err(err).Msg("close database")
				}
			}()
			return db.Migrate(ctx, database)
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the registration policy defaults and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(ctx)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			database, err := db.Connect(ctx, cfg.DBDSN)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer func() {
				if err := db.Close(database); err != nil {
					log.Error().Err(err).Msg("close database")
				}
			}()
			return db.Seed(ctx, database)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cleanup, err := otel.Init(ctx, version.Name, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("init otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cleanup(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown otel")
		}
	}()

	database, err := db.Connect(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}()

	if err := db.Migrate(ctx, database); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	if err := db.Seed(ctx, database); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	store, err := storage.NewClient(ctx, storage.Config{
		Endpoint:       cfg.S3Endpoint,
		Region:         cfg.S3Region,
		Bucket:         cfg.AvatarBucket,
		AccessKey:      cfg.S3AccessKey,
		SecretKey:      cfg.S3SecretKey,
		DisableTLS:     cfg.S3DisableTLS,
		ForcePathStyle: cfg.S3ForcePathStyle,
	})
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	profiles := repository.NewGormProfileRepository(database)
	sessions := repository.NewGormSessionRepository(database)
	emailTokens := repository.NewGormEmailTokenRepository(database)
	invitations := repository.NewGormInvitationRepository(database)
	settings := repository.NewGormSettingsRepository(database)
	events := repository.NewGormEventRepository(database)

	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)

	identitySvc := identity.NewService(profiles, sessions, emailTokens, mailer, identity.ServiceConfig{
		SessionTTL:     cfg.SessionTTL,
		VerifyTokenTTL: cfg.VerifyTokenTTL,
		BaseURL:        cfg.BaseURL,
	})
	profileSvc := profile.NewService(profiles, store)
	gate := invite.NewGate(settings, invitations)

	router := handlers.Router(handlers.Options{
		Identity:       identitySvc,
		Profiles:       profileSvc,
		Gate:           gate,
		Events:         events,
		AllowedOrigins: cfg.AllowedOrigins,
		CookieDomain:   cfg.CookieDomain,
		CookieSecure:   cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Str("version", version.Version).Msg("starting club portal")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
