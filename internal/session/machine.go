// Package session owns the per-browser application state: the active view,
// the bound user, language and theme. State only changes through the named
// transitions below; each runs to completion under the machine's lock.
package session

import (
	"context"
	"errors"
	"sync"

	"agrifields/internal/domain"
	"agrifields/internal/identity"
)

var (
	ErrStarted = errors.New("session: machine already started")
	ErrClosed  = errors.New("session: machine closed")
)

// Authenticator is the part of the identity client the machine drives.
type Authenticator interface {
	Subscribe(ctx context.Context, fn func(*domain.User)) (identity.Unsubscribe, error)
	Logout(ctx context.Context)
}

// State is a point-in-time copy of the machine.
type State struct {
	View     domain.View     `json:"view"`
	User     *domain.User    `json:"user"`
	Language domain.Language `json:"language"`
	DarkMode bool            `json:"dark_mode"`
	Loading  bool            `json:"loading"`
}

// Options seeds a new machine. The zero value starts on the landing page in
// the default language.
type Options struct {
	View     domain.View
	Language domain.Language
	DarkMode bool
}

type Machine struct {
	auth Authenticator

	mu          sync.Mutex
	state       State
	started     bool
	closed      bool
	unsubscribe identity.Unsubscribe
}

func New(auth Authenticator, opts Options) *Machine {
	view := opts.View
	if view == "" {
		view = domain.ViewLanding
	}
	return &Machine{
		auth: auth,
		state: State{
			View:     view,
			Language: opts.Language.OrDefault(),
			DarkMode: opts.DarkMode,
			Loading:  true,
		},
	}
}

// Start subscribes to session changes. The machine reports Loading until the
// first callback arrives.
func (m *Machine) Start(ctx context.Context) error {
	m.mu.Lock()
	switch {
	case m.closed:
		m.mu.Unlock()
		return ErrClosed
	case m.started:
		m.mu.Unlock()
		return ErrStarted
	}
	m.started = true
	m.mu.Unlock()

	// The first callback runs synchronously and takes the lock itself.
	unsubscribe, err := m.auth.Subscribe(ctx, m.onSessionChange)
	if err != nil {
		m.mu.Lock()
		m.state.Loading = false
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		unsubscribe()
		return ErrClosed
	}
	m.unsubscribe = unsubscribe
	m.mu.Unlock()
	return nil
}

// onSessionChange handles a background sign-in or sign-out. Only the entry
// screens are replaced; any other view is left where the user put it.
func (m *Machine) onSessionChange(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user != nil {
		m.state.User = user.Clone()
		m.state.Language = user.Language.OrDefault()
		if m.state.View.IsEntry() {
			m.state.View = domain.HomeView(user.Role)
		}
	} else {
		m.state.User = nil
	}
	m.state.Loading = false
}

// LoginSucceeded binds user after an explicit sign-in and goes to the home
// view of its role.
func (m *Machine) LoginSucceeded(user *domain.User) {
	if user == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.User = user.Clone()
	m.state.Language = user.Language.OrDefault()
	m.state.View = domain.HomeView(user.Role)
	m.state.Loading = false
}

// Logout signs out and returns to the landing page.
func (m *Machine) Logout(ctx context.Context) {
	// Without the lock: the adapter fires the subscription callback.
	m.auth.Logout(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.User = nil
	m.state.View = domain.ViewLanding
}

// UpdateUser replaces the bound user after a profile edit and adopts its
// language when it differs.
func (m *Machine) UpdateUser(user *domain.User) {
	if user == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.User = user.Clone()
	if lang := user.Language; lang.Valid() && lang != m.state.Language {
		m.state.Language = lang
	}
}

func (m *Machine) ToggleTheme() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.DarkMode = !m.state.DarkMode
	return m.state.DarkMode
}

// SetLanguage switches the UI language from the navigation selector. The
// stored profile is not touched.
func (m *Machine) SetLanguage(lang domain.Language) error {
	if !lang.Valid() {
		return domain.Invalid("language", "unsupported language")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Language = lang
	return nil
}

// Navigate switches to view unconditionally. Access checks happen when the
// view is rendered.
func (m *Machine) Navigate(view domain.View) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.View = view
}

// StartJourney is the landing page call to action.
func (m *Machine) StartJourney() domain.View {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.User != nil {
		m.state.View = domain.ViewDashboard
	} else {
		m.state.View = domain.ViewAuth
	}
	return m.state.View
}

// Close tears down the session subscription. It is safe to call repeatedly.
func (m *Machine) Close() {
	m.mu.Lock()
	m.closed = true
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()

	// Outside the lock: unsubscribe waits for an in-flight callback.
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.state
	s.User = m.state.User.Clone()
	return s
}
