package repo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"agrifields/internal/domain"
)

type scanFunc func(dest ...any) error

func (f scanFunc) Scan(dest ...any) error { return f(dest...) }

type fakeSQL struct {
	exec     func(query string, args ...any) (pgconn.CommandTag, error)
	queryRow func(query string, args ...any) pgx.Row
}

func (f *fakeSQL) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if f.exec == nil {
		return pgconn.CommandTag{}, errors.New("exec not implemented")
	}
	return f.exec(query, args...)
}

func (f *fakeSQL) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	if f.queryRow == nil {
		return scanFunc(func(dest ...any) error { return pgx.ErrNoRows })
	}
	return f.queryRow(query, args...)
}

func (f *fakeSQL) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("query not implemented")
}

func TestProfileRepositoryGetMapsNoRows(t *testing.T) {
	r := NewProfileRepository(&fakeSQL{})
	if _, err := r.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestProfileRepositoryUpdatePassesNullsForUntouchedFields(t *testing.T) {
	var gotArgs []any
	r := NewProfileRepository(&fakeSQL{
		queryRow: func(query string, args ...any) pgx.Row {
			gotArgs = args
			return scanFunc(func(dest ...any) error {
				*dest[0].(*string) = "uid-1"
				*dest[1].(*string) = "Ravi"
				*dest[2].(*string) = "9876543210"
				*dest[3].(*string) = "9876543210@agrifields.app"
				*dest[4].(*string) = "farmer"
				*dest[5].(*string) = "hi"
				*dest[6].(*string) = ""
				return nil
			})
		},
	})

	hi := domain.LanguageHindi
	user, err := r.Update(context.Background(), "uid-1", domain.ProfileUpdate{Language: &hi})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if user.Language != domain.LanguageHindi || user.Role != domain.UserRoleFarmer {
		t.Fatalf("Update() = %+v", user)
	}
	if len(gotArgs) != 5 {
		t.Fatalf("args = %#v", gotArgs)
	}
	if name, ok := gotArgs[1].(*string); !ok || name != nil {
		t.Fatalf("name arg = %#v, want nil *string", gotArgs[1])
	}
	if lang, ok := gotArgs[3].(*string); !ok || lang == nil || *lang != "hi" {
		t.Fatalf("language arg = %#v, want \"hi\"", gotArgs[3])
	}
}

func TestIdentityRepositoryCreateMapsUniqueViolation(t *testing.T) {
	r := NewIdentityRepository(&fakeSQL{
		exec: func(query string, args ...any) (pgconn.CommandTag, error) {
			if !strings.Contains(query, "insert into identities") {
				t.Fatalf("unexpected query %q", query)
			}
			return pgconn.CommandTag{}, &pgconn.PgError{Code: "23505"}
		},
	})
	err := r.Create(context.Background(), &domain.Identity{UID: "u", Identifier: "a@b.c", PasswordHash: "x"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("Create() error = %v, want ErrAlreadyExists", err)
	}
}

func TestProfileRepositorySetRoleNotFound(t *testing.T) {
	r := NewProfileRepository(&fakeSQL{
		exec: func(query string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		},
	})
	if err := r.SetRole(context.Background(), "nobody", domain.UserRoleAdmin); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("SetRole() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepositories(t *testing.T) {
	ctx := context.Background()
	ids := NewMemoryIdentities()
	if err := ids.Create(ctx, &domain.Identity{UID: "u1", Identifier: "x@y.z"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := ids.Create(ctx, &domain.Identity{UID: "u2", Identifier: "x@y.z"}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("duplicate Create() error = %v", err)
	}
	if err := ids.TouchLogin(ctx, "u1", time.Now()); err != nil {
		t.Fatalf("TouchLogin() error: %v", err)
	}
	got, err := ids.GetByIdentifier(ctx, "x@y.z")
	if err != nil || got.LastLoginAt == nil {
		t.Fatalf("GetByIdentifier() = %+v, %v", got, err)
	}

	profiles := NewMemoryProfiles()
	if _, err := profiles.Update(ctx, "u1", domain.ProfileUpdate{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Update() on missing profile error = %v", err)
	}
	if err := profiles.Save(ctx, &domain.User{UID: "u1", Name: "Asha", Role: domain.UserRoleFarmer, Language: domain.LanguageEnglish}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	name := "Asha Devi"
	updated, err := profiles.Update(ctx, "u1", domain.ProfileUpdate{Name: &name})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Name != name || updated.Language != domain.LanguageEnglish {
		t.Fatalf("Update() = %+v", updated)
	}
	if n, _ := profiles.CountByRole(ctx, domain.UserRoleFarmer); n != 1 {
		t.Fatalf("CountByRole(farmer) = %d", n)
	}
	if n, _ := profiles.CountByRole(ctx, domain.UserRoleAdmin); n != 0 {
		t.Fatalf("CountByRole(admin) = %d", n)
	}
}

func TestProfileRepositoryCountByRole(t *testing.T) {
	var gotRole any
	r := NewProfileRepository(&fakeSQL{
		queryRow: func(query string, args ...any) pgx.Row {
			gotRole = args[0]
			return scanFunc(func(dest ...any) error {
				*dest[0].(*int) = 7
				return nil
			})
		},
	})
	n, err := r.CountByRole(context.Background(), domain.UserRoleFarmer)
	if err != nil || n != 7 {
		t.Fatalf("CountByRole() = %d, %v", n, err)
	}
	if gotRole != "farmer" {
		t.Fatalf("role arg = %v", gotRole)
	}
}

func TestRevocationsMemoryExpires(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	r := NewRevocationsMemory()
	r.now = func() time.Time { return now }
	ctx := context.Background()

	if err := r.Revoke(ctx, "jti-1", time.Minute); err != nil {
		t.Fatalf("Revoke() error: %v", err)
	}
	if revoked, _ := r.IsRevoked(ctx, "jti-1"); !revoked {
		t.Fatal("IsRevoked() = false right after Revoke")
	}
	now = now.Add(2 * time.Minute)
	if revoked, _ := r.IsRevoked(ctx, "jti-1"); revoked {
		t.Fatal("IsRevoked() = true after ttl elapsed")
	}
	if err := r.Revoke(ctx, "jti-2", 0); err != nil {
		t.Fatalf("Revoke() with zero ttl error: %v", err)
	}
	if revoked, _ := r.IsRevoked(ctx, "jti-2"); revoked {
		t.Fatal("zero ttl should not record a revocation")
	}
}

// fakeRedis implements the two commands the revocation store issues.
type fakeRedis struct {
	redis.Cmdable
	values map[string]time.Duration
	getErr error
	sets   int
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.sets++
	f.values[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	if _, ok := f.values[key]; !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult("1", nil)
}

func TestRevocationsRedis(t *testing.T) {
	ctx := context.Background()
	client := &fakeRedis{values: make(map[string]time.Duration)}
	r := NewRevocationsRedis(client)

	if revoked, err := r.IsRevoked(ctx, "jti-1"); err != nil || revoked {
		t.Fatalf("IsRevoked() on missing key = %v, %v", revoked, err)
	}
	if err := r.Revoke(ctx, "jti-1", time.Minute); err != nil {
		t.Fatalf("Revoke() error: %v", err)
	}
	if ttl := client.values[revokedKeyPrefix+"jti-1"]; ttl != time.Minute {
		t.Fatalf("stored ttl = %s, want 1m", ttl)
	}
	if revoked, err := r.IsRevoked(ctx, "jti-1"); err != nil || !revoked {
		t.Fatalf("IsRevoked() after Revoke = %v, %v", revoked, err)
	}

	if err := r.Revoke(ctx, "jti-2", 0); err != nil {
		t.Fatalf("Revoke() with zero ttl error: %v", err)
	}
	if client.sets != 1 {
		t.Fatalf("zero ttl issued SET, sets = %d", client.sets)
	}

	client.getErr = errors.New("connection refused")
	if _, err := r.IsRevoked(ctx, "jti-1"); err == nil || !strings.Contains(err.Error(), "check revocation") {
		t.Fatalf("IsRevoked() error = %v, want wrapped failure", err)
	}
}
