package identity

import (
	"context"
	"errors"
	"strings"
	"sync"

	"agrifields/internal/domain"
)

// Unsubscribe cancels a session subscription. It is safe to call more than
// once; no callback runs after it returns.
type Unsubscribe func()

type session struct {
	token  string
	claims *SessionClaims
}

// Client is one browser's view of the identity provider: at most one bound
// session and at most one live subscription.
type Client struct {
	svc *Service

	mu      sync.Mutex
	current *session

	// deliver serializes callbacks against unsubscribe.
	deliver sync.Mutex
	sub     func(*domain.User)
}

// Register creates the account, signs it in and notifies the subscriber.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	user, err := c.svc.register(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := c.bind(ctx, user); err != nil {
		return nil, err
	}
	return user.Clone(), nil
}

// Login signs in with a phone number or email.
func (c *Client) Login(ctx context.Context, phoneOrEmail, password string) (*domain.User, error) {
	user, err := c.svc.authenticate(ctx, phoneOrEmail, password)
	if err != nil {
		return nil, err
	}
	if err := c.bind(ctx, user); err != nil {
		return nil, err
	}
	return user.Clone(), nil
}

// LoginAdmin signs in and requires the admin role. A non-admin account is
// signed out again and ErrNotAdmin is returned.
func (c *Client) LoginAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := c.svc.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, ErrNotAdmin
	}
	if err := c.bind(ctx, user); err != nil {
		return nil, err
	}
	return user.Clone(), nil
}

// Logout ends the bound session. It never fails: revocation problems are
// logged and the local session is cleared regardless.
func (c *Client) Logout(ctx context.Context) {
	c.mu.Lock()
	prev := c.current
	c.current = nil
	c.mu.Unlock()

	if prev == nil {
		return
	}
	c.svc.revoke(ctx, prev.claims)
	c.svc.logger.Info().Str("uid", prev.claims.UID()).Msg("user signed out")
	c.notify(nil)
}

// Subscribe registers fn for session changes. fn runs once immediately with
// the current user (nil when signed out) and then after every sign-in and
// sign-out. fn must not call back into Subscribe or the returned Unsubscribe.
func (c *Client) Subscribe(ctx context.Context, fn func(*domain.User)) (Unsubscribe, error) {
	if fn == nil {
		return nil, errors.New("identity: nil subscriber")
	}
	c.deliver.Lock()
	defer c.deliver.Unlock()
	if c.sub != nil {
		return nil, ErrAlreadySubscribed
	}
	c.sub = fn

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			c.deliver.Lock()
			c.sub = nil
			c.deliver.Unlock()
		})
	}

	// The user is resolved under deliver so a concurrent bind or Logout
	// is delivered after it.
	fn(c.CurrentUser(ctx))
	return unsubscribe, nil
}

// CurrentUser resolves the profile of the bound session. A session whose
// profile can no longer be read reports nil.
func (c *Client) CurrentUser(ctx context.Context) *domain.User {
	uid := c.UID()
	if uid == "" {
		return nil
	}
	user, err := c.svc.profiles.Get(ctx, uid)
	if err != nil {
		c.svc.logger.Warn().Err(err).Str("uid", uid).Msg("resolve session profile failed")
		return nil
	}
	return user
}

// UpdateProfile applies a partial update to the profile document.
func (c *Client) UpdateProfile(ctx context.Context, uid string, update domain.ProfileUpdate) (*domain.User, error) {
	return c.svc.updateProfile(ctx, uid, update)
}

// Resume binds a session token issued earlier, typically read from a cookie.
// Invalid, expired or revoked tokens are ignored and false is returned.
func (c *Client) Resume(ctx context.Context, token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	claims, err := c.svc.verify(ctx, token)
	if err != nil {
		c.svc.logger.Debug().Err(err).Msg("ignoring session token")
		return false
	}
	c.mu.Lock()
	c.current = &session{token: token, claims: claims}
	c.mu.Unlock()

	c.notifyCurrent(ctx)
	return true
}

// Token is the signed session token, empty when signed out.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return ""
	}
	return c.current.token
}

// UID is the uid of the bound session, empty when signed out.
func (c *Client) UID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return ""
	}
	return c.current.claims.UID()
}

func (c *Client) bind(ctx context.Context, user *domain.User) error {
	token, claims, err := c.svc.tokens.Issue(user.UID)
	if err != nil {
		c.svc.logger.Error().Err(err).Msg("issue session token failed")
		return domain.ErrUnknown
	}
	c.mu.Lock()
	prev := c.current
	c.current = &session{token: token, claims: claims}
	c.mu.Unlock()

	if prev != nil {
		c.svc.revoke(ctx, prev.claims)
	}
	c.svc.logger.Info().Str("uid", user.UID).Msg("user signed in")
	c.notify(user.Clone())
	return nil
}

func (c *Client) notify(user *domain.User) {
	c.deliver.Lock()
	defer c.deliver.Unlock()
	if c.sub != nil {
		c.sub(user)
	}
}

func (c *Client) notifyCurrent(ctx context.Context) {
	c.deliver.Lock()
	defer c.deliver.Unlock()
	if c.sub != nil {
		c.sub(c.CurrentUser(ctx))
	}
}

func trimmed(s string) string { return strings.TrimSpace(s) }
