package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"agrifields/internal/domain"
	"agrifields/internal/infra"
	"agrifields/internal/sqlinline"
)

// ProfileRepositoryPG implements domain.ProfileRepository backed by PostgreSQL.
type ProfileRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewProfileRepository creates a new ProfileRepositoryPG.
func NewProfileRepository(sql infra.SQLExecutor) *ProfileRepositoryPG {
	return &ProfileRepositoryPG{sql: sql}
}

// Get fetches the profile document for uid.
func (r *ProfileRepositoryPG) Get(ctx context.Context, uid string) (*domain.User, error) {
	return scanUser(r.sql.QueryRow(ctx, sqlinline.QSelectProfileByUID, uid))
}

// GetByEmail fetches a profile by its stored email-shaped identifier.
func (r *ProfileRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.sql.QueryRow(ctx, sqlinline.QSelectProfileByEmail, email))
}

// Save writes the whole document, replacing any previous version.
func (r *ProfileRepositoryPG) Save(ctx context.Context, user *domain.User) error {
	if user == nil || user.UID == "" {
		return domain.Invalid("uid", "is required")
	}
	_, err := r.sql.Exec(ctx, sqlinline.QUpsertProfile,
		user.UID,
		user.Name,
		user.Phone,
		user.Email,
		string(user.Role),
		string(user.Language),
		user.Avatar,
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Update applies a partial update and returns the stored result.
func (r *ProfileRepositoryPG) Update(ctx context.Context, uid string, update domain.ProfileUpdate) (*domain.User, error) {
	var language *string
	if update.Language != nil {
		l := string(*update.Language)
		language = &l
	}
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateProfile, uid, update.Name, update.Phone, language, update.Avatar)
	return scanUser(row)
}

// SetRole changes the role of an existing profile.
func (r *ProfileRepositoryPG) SetRole(ctx context.Context, uid string, role domain.UserRole) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateProfileRole, uid, string(role))
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByRole counts profiles holding role.
func (r *ProfileRepositoryPG) CountByRole(ctx context.Context, role domain.UserRole) (int, error) {
	var n int
	if err := r.sql.QueryRow(ctx, sqlinline.QCountProfilesByRole, string(role)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return n, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u        domain.User
		role     string
		language string
	)
	if err := row.Scan(&u.UID, &u.Name, &u.Phone, &u.Email, &role, &language, &u.Avatar); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u.Role = domain.UserRole(role)
	u.Language = domain.Language(language).OrDefault()
	return &u, nil
}

var _ domain.ProfileRepository = (*ProfileRepositoryPG)(nil)
