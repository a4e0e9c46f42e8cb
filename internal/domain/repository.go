package domain

import (
	"context"
	"time"
)

// Identity is a credential record in the identity provider.
type Identity struct {
	UID          string
	Identifier   string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// IdentityRepository stores credentials keyed by a normalized identifier.
type IdentityRepository interface {
	Exists(ctx context.Context, identifier string) (bool, error)
	Create(ctx context.Context, identity *Identity) error
	GetByIdentifier(ctx context.Context, identifier string) (*Identity, error)
	TouchLogin(ctx context.Context, uid string, at time.Time) error
}

// ProfileRepository stores one User document per uid.
type ProfileRepository interface {
	Get(ctx context.Context, uid string) (*User, error)
	Save(ctx context.Context, user *User) error
	Update(ctx context.Context, uid string, update ProfileUpdate) (*User, error)
}

// ProfileCounter is implemented by profile stores that can report totals
// for the admin dashboard.
type ProfileCounter interface {
	CountByRole(ctx context.Context, role UserRole) (int, error)
}

// RevocationStore remembers session token ids that were signed out.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
