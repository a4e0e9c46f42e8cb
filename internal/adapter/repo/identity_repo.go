package repo

import (
	"context"
	"fmt"
	"time"

	"agrifields/internal/domain"
	"agrifields/internal/infra"
	"agrifields/internal/sqlinline"
)

// IdentityRepositoryPG implements domain.IdentityRepository backed by PostgreSQL.
type IdentityRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewIdentityRepository creates a new IdentityRepositoryPG.
func NewIdentityRepository(sql infra.SQLExecutor) *IdentityRepositoryPG {
	return &IdentityRepositoryPG{sql: sql}
}

func (r *IdentityRepositoryPG) Exists(ctx context.Context, identifier string) (bool, error) {
	var exists bool
	if err := r.sql.QueryRow(ctx, sqlinline.QIdentityExists, identifier).Scan(&exists); err != nil {
		return false, fmt.Errorf("check identity: %w", err)
	}
	return exists, nil
}

// Create inserts a new identity. A concurrent registration of the same
// identifier surfaces as domain.ErrAlreadyExists.
func (r *IdentityRepositoryPG) Create(ctx context.Context, identity *domain.Identity) error {
	created := identity.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := r.sql.Exec(ctx, sqlinline.QInsertIdentity, identity.UID, identity.Identifier, identity.PasswordHash, created)
	if err != nil {
		if infra.IsUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert identity: %w", err)
	}
	identity.CreatedAt = created
	return nil
}

func (r *IdentityRepositoryPG) GetByIdentifier(ctx context.Context, identifier string) (*domain.Identity, error) {
	var id domain.Identity
	row := r.sql.QueryRow(ctx, sqlinline.QSelectIdentityByIdentifier, identifier)
	if err := row.Scan(&id.UID, &id.Identifier, &id.PasswordHash, &id.CreatedAt, &id.LastLoginAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select identity: %w", err)
	}
	return &id, nil
}

func (r *IdentityRepositoryPG) TouchLogin(ctx context.Context, uid string, at time.Time) error {
	if _, err := r.sql.Exec(ctx, sqlinline.QTouchIdentityLogin, uid, at); err != nil {
		return fmt.Errorf("touch identity: %w", err)
	}
	return nil
}

var _ domain.IdentityRepository = (*IdentityRepositoryPG)(nil)
