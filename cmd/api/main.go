package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"agrifields/internal/adapter/repo"
	"agrifields/internal/domain"
	"agrifields/internal/http/handlers"
	httpapi "agrifields/internal/http/httpapi"
	"agrifields/internal/identity"
	"agrifields/internal/infra"
	"agrifields/internal/infra/credentials"
	"agrifields/internal/infra/geoip"
	"agrifields/internal/middleware"
	"agrifields/internal/providers/gemini"
	"agrifields/internal/scan"
	"agrifields/internal/storage"
)

func main() {
	// Load .env when present
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)
	ctx := context.Background()

	// Profiles and identities: Postgres when configured, memory in development
	var (
		identities domain.IdentityRepository
		profiles   interface {
			domain.ProfileRepository
			domain.ProfileCounter
		}
		tokenStore *credentials.Store
	)
	if cfg.DatabaseURL != "" {
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()
		if err := infra.EnsureSchema(ctx, dbpool); err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare schema")
		}
		runner := infra.NewSQLRunner(dbpool, logger)
		identities = repo.NewIdentityRepository(runner)
		profiles = repo.NewProfileRepository(runner)
		tokenStore = credentials.NewStore(runner)
	} else {
		logger.Warn().Msg("DATABASE_URL not set; accounts are kept in memory")
		identities = repo.NewMemoryIdentities()
		profiles = repo.NewMemoryProfiles()
	}

	// Session revocations: Redis when configured
	var revocations domain.RevocationStore = repo.NewRevocationsMemory()
	rdb, err := infra.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}
	if rdb != nil {
		defer rdb.Close()
		revocations = repo.NewRevocationsRedis(rdb)
	}

	svc := identity.NewService(identity.Options{
		Identities:  identities,
		Profiles:    profiles,
		Revocations: revocations,
		Tokens:      identity.NewTokenIssuer(cfg.SessionSecret, cfg.SessionTTL),
		Logger:      logger,
	})

	apiKey, err := credentials.ResolveGeminiKey(ctx, cfg.GeminiAPIKey, tokenStore)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read stored gemini key")
	}
	advisor, err := gemini.NewAdvisor(ctx, gemini.Options{
		APIKey:  apiKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create gemini client")
	}

	var store storage.ObjectStore
	if fs, err := storage.NewFileStore(cfg.StoragePath); err != nil {
		logger.Warn().Err(err).Str("path", cfg.StoragePath).Msg("scan uploads disabled")
	} else {
		store = fs
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	var lookup middleware.RegionLookup
	if resolver != nil {
		defer resolver.Close()
		lookup = resolver.Region
	}

	app := handlers.NewApp(handlers.Options{
		Logger:        logger,
		Identity:      svc,
		Advisor:       advisor,
		Doctor:        scan.NewDoctor(advisor, store, logger),
		Profiles:      profiles,
		IdleTimeout:   cfg.ClientIdleTimeout,
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: !cfg.IsDevelopment(),
	})

	router := httpapi.NewRouter(app, httpapi.Options{
		CORSOrigins:     cfg.CORSOrigins,
		DefaultLanguage: domain.Language(cfg.DefaultLanguage).OrDefault(),
		RegionLookup:    lookup,
		AIRatePerMinute: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Bool("ai_live", advisor.Live()).Msg("API listening")
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdown(logger, server, app, cfg)
}

func shutdown(logger zerolog.Logger, server *infra.HTTPServer, app *handlers.App, cfg *infra.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	app.Close()
	logger.Info().Msg("server stopped")
}
