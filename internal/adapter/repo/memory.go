package repo

import (
	"context"
	"sync"
	"time"

	"agrifields/internal/domain"
)

// MemoryIdentities is an in-process domain.IdentityRepository used in
// development without Postgres and in tests.
type MemoryIdentities struct {
	mu    sync.RWMutex
	byKey map[string]domain.Identity
}

func NewMemoryIdentities() *MemoryIdentities {
	return &MemoryIdentities{byKey: make(map[string]domain.Identity)}
}

func (m *MemoryIdentities) Exists(ctx context.Context, identifier string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byKey[identifier]
	return ok, nil
}

func (m *MemoryIdentities) Create(ctx context.Context, identity *domain.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byKey[identity.Identifier]; ok {
		return domain.ErrAlreadyExists
	}
	if identity.CreatedAt.IsZero() {
		identity.CreatedAt = time.Now().UTC()
	}
	m.byKey[identity.Identifier] = *identity
	return nil
}

func (m *MemoryIdentities) GetByIdentifier(ctx context.Context, identifier string) (*domain.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byKey[identifier]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &id, nil
}

func (m *MemoryIdentities) TouchLogin(ctx context.Context, uid string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, id := range m.byKey {
		if id.UID == uid {
			at := at
			id.LastLoginAt = &at
			m.byKey[key] = id
			return nil
		}
	}
	return domain.ErrNotFound
}

// MemoryProfiles is an in-process domain.ProfileRepository.
type MemoryProfiles struct {
	mu    sync.RWMutex
	byUID map[string]domain.User
}

func NewMemoryProfiles() *MemoryProfiles {
	return &MemoryProfiles{byUID: make(map[string]domain.User)}
}

func (m *MemoryProfiles) Get(ctx context.Context, uid string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byUID[uid]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m *MemoryProfiles) Save(ctx context.Context, user *domain.User) error {
	if user == nil || user.UID == "" {
		return domain.Invalid("uid", "is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byUID[user.UID] = *user
	return nil
}

func (m *MemoryProfiles) Update(ctx context.Context, uid string, update domain.ProfileUpdate) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byUID[uid]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u = update.Apply(u)
	m.byUID[uid] = u
	return &u, nil
}

func (m *MemoryProfiles) CountByRole(ctx context.Context, role domain.UserRole) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, u := range m.byUID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// Delete removes a profile. Only tests use it, to model an identity whose
// profile document was never written.
func (m *MemoryProfiles) Delete(uid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byUID, uid)
}

var (
	_ domain.IdentityRepository = (*MemoryIdentities)(nil)
	_ domain.ProfileRepository  = (*MemoryProfiles)(nil)
)
