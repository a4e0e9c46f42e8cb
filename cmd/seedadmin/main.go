package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"agrifields/internal/adapter/repo"
	"agrifields/internal/domain"
	"agrifields/internal/identity"
	"agrifields/internal/infra"
)

func main() {
	var (
		emailFlag    string
		passwordFlag string
		nameFlag     string
		languageFlag string
		promoteFlag  bool
	)

	flag.StringVar(&emailFlag, "email", "", "admin email")
	flag.StringVar(&passwordFlag, "password", "", "password for a new admin (falls back to ADMIN_PASSWORD)")
	flag.StringVar(&nameFlag, "name", "", "display name (defaults to Admin)")
	flag.StringVar(&languageFlag, "lang", "en", "preferred language (en, hi, te, ta, kn, mr)")
	flag.BoolVar(&promoteFlag, "promote", false, "promote an existing account instead of registering a new one")
	flag.Parse()

	email := identity.NormalizeIdentifier(emailFlag)
	if !identity.IsEmail(email) {
		exitWithError(errors.New("-email is required"))
	}
	lang, err := domain.ParseLanguage(languageFlag)
	if err != nil {
		exitWithError(err)
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()
	if err := infra.EnsureSchema(ctx, pool); err != nil {
		exitWithError(err)
	}

	logger := infra.NewLogger("cli").With().Str("cmd", "seedadmin").Logger()
	runner := infra.NewSQLRunner(pool, logger)
	profiles := repo.NewProfileRepository(runner)

	if promoteFlag {
		user, err := profiles.GetByEmail(ctx, email)
		if err != nil {
			exitWithError(fmt.Errorf("failed to load %s: %w", email, err))
		}
		if err := profiles.SetRole(ctx, user.UID, domain.UserRoleAdmin); err != nil {
			exitWithError(fmt.Errorf("failed to promote %s: %w", email, err))
		}
		fmt.Printf("User %s (%s) promoted to admin\n", user.UID, email)
		return
	}

	password := passwordFlag
	if password == "" {
		password = os.Getenv("ADMIN_PASSWORD")
	}

	svc := identity.NewService(identity.Options{
		Identities: repo.NewIdentityRepository(runner),
		Profiles:   profiles,
		// Register issues a session token the CLI discards.
		Tokens:      identity.NewTokenIssuer("seedadmin", time.Minute),
		Revocations: repo.NewRevocationsMemory(),
		Logger:      logger,
	})
	user, err := svc.NewClient().Register(ctx, identity.RegisterInput{
		Name:         nameFlag,
		PhoneOrEmail: email,
		Password:     password,
		Language:     lang,
		Role:         domain.UserRoleAdmin,
	})
	if err != nil {
		exitWithError(fmt.Errorf("failed to register admin: %w", err))
	}
	fmt.Printf("Admin %s (%s) registered\n", user.UID, user.Email)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
