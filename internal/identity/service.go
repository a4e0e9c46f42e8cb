// Package identity registers and signs in farmers and admins, stores their
// profile documents and notifies each browser's session of sign-in changes.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"agrifields/internal/domain"
)

// Service holds the collaborators shared by every Client.
type Service struct {
	identities  domain.IdentityRepository
	profiles    domain.ProfileRepository
	revocations domain.RevocationStore
	hasher      *Hasher
	tokens      *TokenIssuer
	logger      zerolog.Logger
	now         func() time.Time
}

type Options struct {
	Identities  domain.IdentityRepository
	Profiles    domain.ProfileRepository
	Revocations domain.RevocationStore
	Hasher      *Hasher
	Tokens      *TokenIssuer
	Logger      zerolog.Logger
}

func NewService(opts Options) *Service {
	hasher := opts.Hasher
	if hasher == nil {
		hasher = NewHasher(0)
	}
	return &Service{
		identities:  opts.Identities,
		profiles:    opts.Profiles,
		revocations: opts.Revocations,
		hasher:      hasher,
		tokens:      opts.Tokens,
		logger:      opts.Logger.With().Str("component", "identity").Logger(),
		now:         time.Now,
	}
}

// NewClient returns a signed-out client for one browser.
func (s *Service) NewClient() *Client {
	return &Client{svc: s}
}

func (s *Service) register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in, err := ValidateRegistration(in)
	if err != nil {
		return nil, err
	}
	identifier := NormalizeIdentifier(in.PhoneOrEmail)

	exists, err := s.identities.Exists(ctx, identifier)
	if err != nil {
		s.logger.Error().Err(err).Msg("identity lookup failed")
		return nil, Classify(err)
	}
	if exists {
		return nil, domain.ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("hash password failed")
		return nil, domain.ErrUnknown
	}
	ident := &domain.Identity{
		UID:          uuid.NewString(),
		Identifier:   identifier,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.identities.Create(ctx, ident); err != nil {
		if !errors.Is(err, domain.ErrAlreadyExists) {
			s.logger.Error().Err(err).Msg("create identity failed")
		}
		return nil, Classify(err)
	}

	user := &domain.User{
		UID:      ident.UID,
		Name:     in.Name,
		Email:    identifier,
		Role:     in.Role,
		Language: in.Language,
	}
	if in.Role == domain.UserRoleFarmer {
		user.Phone = in.PhoneOrEmail
	}
	if err := s.profiles.Save(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("uid", user.UID).Msg("save profile failed")
		return nil, Classify(err)
	}
	s.logger.Info().Str("uid", user.UID).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

func (s *Service) authenticate(ctx context.Context, phoneOrEmail, password string) (*domain.User, error) {
	phoneOrEmail = trimmed(phoneOrEmail)
	if phoneOrEmail == "" || password == "" {
		return nil, domain.Invalid("credentials", "phone number and password are required")
	}
	ident, err := s.identities.GetByIdentifier(ctx, NormalizeIdentifier(phoneOrEmail))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Msg("identity lookup failed")
		return nil, Classify(err)
	}
	if err := s.hasher.Compare(ident.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := s.identities.TouchLogin(ctx, ident.UID, s.now().UTC()); err != nil {
		s.logger.Warn().Err(err).Str("uid", ident.UID).Msg("record login failed")
	}

	user, err := s.profiles.Get(ctx, ident.UID)
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Warn().Str("uid", ident.UID).Msg("profile not found, creating default profile")
		user = &domain.User{
			UID:      ident.UID,
			Name:     "Unknown",
			Phone:    phoneOrEmail,
			Role:     domain.UserRoleFarmer,
			Language: domain.DefaultLanguage,
		}
		if err := s.profiles.Save(ctx, user); err != nil {
			s.logger.Error().Err(err).Str("uid", user.UID).Msg("save default profile failed")
			return nil, Classify(err)
		}
		return user, nil
	default:
		s.logger.Error().Err(err).Str("uid", ident.UID).Msg("load profile failed")
		return nil, Classify(err)
	}
}

func (s *Service) updateProfile(ctx context.Context, uid string, update domain.ProfileUpdate) (*domain.User, error) {
	if uid == "" {
		return nil, domain.ErrNotFound
	}
	if err := ValidateProfileUpdate(update); err != nil {
		return nil, err
	}
	if update.Name != nil {
		name := trimmed(*update.Name)
		update.Name = &name
	}
	user, err := s.profiles.Update(ctx, uid, update)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error().Err(err).Str("uid", uid).Msg("update profile failed")
		}
		return nil, Classify(err)
	}
	return user, nil
}

func (s *Service) revoke(ctx context.Context, claims *SessionClaims) {
	if s.revocations == nil || claims == nil {
		return
	}
	if err := s.revocations.Revoke(ctx, claims.ID, claims.Remaining(s.now())); err != nil {
		s.logger.Warn().Err(err).Str("uid", claims.UID()).Msg("revoke session failed")
	}
}

func (s *Service) verify(ctx context.Context, token string) (*SessionClaims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	if s.revocations != nil {
		revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, errors.New("session token revoked")
		}
	}
	return claims, nil
}
