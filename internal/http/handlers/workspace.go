package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"agrifields/internal/chat"
	"agrifields/internal/domain"
	"agrifields/internal/identity"
	"agrifields/internal/middleware"
	"agrifields/internal/session"
	"agrifields/internal/views"
)

const (
	clientCookie  = "agri_client"
	sessionCookie = "agri_session"
)

var errRegistryClosed = errors.New("workspace registry closed")

// Workspace is everything the server keeps for one browser.
type Workspace struct {
	ID      string
	Machine *session.Machine
	Auth    *identity.Client
	Chat    *chat.Conversation

	mu        sync.Mutex
	formError string
	notice    string
	analysis  string
	lastSeen  time.Time
}

func (ws *Workspace) setFormError(msg string) {
	ws.mu.Lock()
	ws.formError = msg
	ws.notice = ""
	ws.mu.Unlock()
}

func (ws *Workspace) setNotice(msg string) {
	ws.mu.Lock()
	ws.notice = msg
	ws.formError = ""
	ws.mu.Unlock()
}

func (ws *Workspace) setAnalysis(text string) {
	ws.mu.Lock()
	ws.analysis = text
	ws.mu.Unlock()
}

// clearFeedback drops form errors and notices when the screen changes.
func (ws *Workspace) clearFeedback() {
	ws.mu.Lock()
	ws.formError = ""
	ws.notice = ""
	ws.analysis = ""
	ws.mu.Unlock()
}

func (ws *Workspace) extras() views.Extras {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return views.Extras{FormError: ws.formError, Notice: ws.notice, Analysis: ws.analysis}
}

func (ws *Workspace) close() {
	ws.Machine.Close()
}

// Registry maps client ids to workspaces and evicts the idle ones.
type Registry struct {
	idle   time.Duration
	now    func() time.Time
	logger zerolog.Logger

	mu         sync.Mutex
	workspaces map[string]*Workspace
	closed     bool

	stop chan struct{}
	done chan struct{}
}

// NewRegistry starts the idle janitor when idle is positive.
func NewRegistry(idle time.Duration, logger zerolog.Logger) *Registry {
	r := &Registry{
		idle:       idle,
		now:        time.Now,
		logger:     logger.With().Str("component", "workspaces").Logger(),
		workspaces: make(map[string]*Workspace),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	if idle <= 0 {
		close(r.done)
		return r
	}
	go r.janitor(sweepInterval(idle))
	return r
}

func sweepInterval(idle time.Duration) time.Duration {
	interval := idle / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

func (r *Registry) janitor(interval time.Duration) {
	defer close(r.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug().Int("evicted", n).Msg("idle workspaces evicted")
			}
		}
	}
}

// Get returns the workspace for id and marks it as used.
func (r *Registry) Get(id string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workspaces[id]
	if !ok {
		return nil, false
	}
	ws.mu.Lock()
	ws.lastSeen = r.now()
	ws.mu.Unlock()
	return ws, true
}

// Put stores ws unless a workspace with the same id won the race, in which
// case ws is closed and the existing one is returned.
func (r *Registry) Put(ws *Workspace) (*Workspace, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		ws.close()
		return nil, errRegistryClosed
	}
	if existing, ok := r.workspaces[ws.ID]; ok {
		r.mu.Unlock()
		ws.close()
		return existing, nil
	}
	ws.mu.Lock()
	ws.lastSeen = r.now()
	ws.mu.Unlock()
	r.workspaces[ws.ID] = ws
	r.mu.Unlock()
	return ws, nil
}

// Sweep closes workspaces idle for longer than the timeout.
func (r *Registry) Sweep() int {
	if r.idle <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idle)
	var evicted []*Workspace
	r.mu.Lock()
	for id, ws := range r.workspaces {
		ws.mu.Lock()
		stale := ws.lastSeen.Before(cutoff)
		ws.mu.Unlock()
		if stale {
			delete(r.workspaces, id)
			evicted = append(evicted, ws)
		}
	}
	r.mu.Unlock()

	for _, ws := range evicted {
		ws.close()
	}
	return len(evicted)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

// Close stops the janitor and closes every workspace. Later Puts fail.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	all := r.workspaces
	r.workspaces = make(map[string]*Workspace)
	r.mu.Unlock()

	close(r.stop)
	<-r.done
	for _, ws := range all {
		ws.close()
	}
}

type workspaceKey struct{}

// Workspace attaches the browser's workspace to the request, creating it on
// first contact.
func (a *App) Workspace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := a.workspaceFor(w, r)
		if err != nil {
			a.Logger.Error().Err(err).Msg("create workspace failed")
			a.error(w, http.StatusServiceUnavailable, "unavailable", "service unavailable")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), workspaceKey{}, ws)))
	})
}

func workspaceFrom(ctx context.Context) *Workspace {
	ws, _ := ctx.Value(workspaceKey{}).(*Workspace)
	return ws
}

func (a *App) workspaceFor(w http.ResponseWriter, r *http.Request) (*Workspace, error) {
	id := ""
	if c, err := r.Cookie(clientCookie); err == nil {
		if ws, ok := a.Workspaces.Get(c.Value); ok {
			return ws, nil
		}
		if _, err := uuid.Parse(c.Value); err == nil {
			id = c.Value
		}
	}
	if id == "" {
		id = uuid.NewString()
	}

	ctx := r.Context()
	opts := session.Options{Language: middleware.LanguageFromContext(ctx)}
	if v := r.URL.Query().Get("view"); v != "" {
		if view, err := domain.ParseView(v); err == nil {
			opts.View = view
		}
	}

	client := a.Identity.NewClient()
	staleSession := false
	if c, err := r.Cookie(sessionCookie); err == nil {
		staleSession = !client.Resume(ctx, c.Value)
	}
	machine := session.New(client, opts)
	if err := machine.Start(ctx); err != nil {
		return nil, err
	}
	ws, err := a.Workspaces.Put(&Workspace{
		ID:      id,
		Machine: machine,
		Auth:    client,
		Chat:    chat.NewConversation(a.Advisor, machine.Snapshot().Language),
	})
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     clientCookie,
		Value:    ws.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	if staleSession {
		a.syncSessionCookie(w, ws)
	}
	a.Logger.Debug().Str("client_id", ws.ID).Bool("resumed", client.UID() != "").Msg("workspace created")
	return ws, nil
}

// syncSessionCookie mirrors the identity client's token into the session
// cookie so a new workspace can resume it.
func (a *App) syncSessionCookie(w http.ResponseWriter, ws *Workspace) {
	token := ws.Auth.Token()
	c := &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if token == "" {
		c.MaxAge = -1
	} else if a.sessionTTL > 0 {
		c.MaxAge = int(a.sessionTTL.Seconds())
	}
	http.SetCookie(w, c)
}
