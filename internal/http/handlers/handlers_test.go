package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"agrifields/internal/adapter/repo"
	"agrifields/internal/chat"
	"agrifields/internal/domain"
	"agrifields/internal/i18n"
	"agrifields/internal/identity"
	"agrifields/internal/providers/gemini"
	"agrifields/internal/session"
)

type fakeAdvisor struct {
	reply    string
	analysis string
	live     bool
}

func (f fakeAdvisor) Chat(ctx context.Context, message string, lang domain.Language, history []gemini.Turn) string {
	return f.reply
}

func (f fakeAdvisor) AnalyzeImage(ctx context.Context, image string, lang domain.Language) string {
	return f.analysis
}

func (f fakeAdvisor) Live() bool { return f.live }

func newTestApp(t *testing.T) *App {
	t.Helper()
	profiles := repo.NewMemoryProfiles()
	svc := identity.NewService(identity.Options{
		Identities:  repo.NewMemoryIdentities(),
		Profiles:    profiles,
		Revocations: repo.NewRevocationsMemory(),
		Hasher:      identity.NewHasher(bcrypt.MinCost),
		Tokens:      identity.NewTokenIssuer("test-secret", time.Hour),
		Logger:      zerolog.Nop(),
	})
	app := NewApp(Options{
		Logger:     zerolog.Nop(),
		Identity:   svc,
		Advisor:    fakeAdvisor{reply: "water early", analysis: "leaf blight"},
		Profiles:   profiles,
		SessionTTL: time.Hour,
	})
	t.Cleanup(app.Close)
	return app
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"exists", domain.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"not admin", identity.ErrNotAdmin, http.StatusForbidden, "not_admin"},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"validation", domain.Invalid("phone", "bad"), http.StatusBadRequest, "validation"},
		{"busy", chat.ErrBusy, http.StatusConflict, "busy"},
		{"timeout", context.DeadlineExceeded, http.StatusServiceUnavailable, "unavailable"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "unknown"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, code := statusFor(tc.err)
			if status != tc.status || code != tc.code {
				t.Fatalf("statusFor(%v) = %d %q, want %d %q", tc.err, status, code, tc.status, tc.code)
			}
		})
	}
}

func TestMessageForLocalizes(t *testing.T) {
	hi := i18n.For(domain.LanguageHindi)
	if got := messageFor(domain.Invalid("phone", "bad"), hi); got != hi.T("auth.errorPhone") {
		t.Fatalf("phone message = %q", got)
	}
	en := i18n.For(domain.LanguageEnglish)
	if got := messageFor(identity.ErrNotAdmin, en); got != "Access Denied: Not an admin account." {
		t.Fatalf("not admin message = %q", got)
	}
	if got := messageFor(domain.ErrAlreadyExists, en); got != en.T("auth.errorExists") {
		t.Fatalf("exists message = %q", got)
	}
	if got := messageFor(errors.New("driver exploded"), en); got != en.T("auth.errorUnknown") {
		t.Fatalf("unknown message = %q", got)
	}
}

func testWorkspace(app *App, id string) *Workspace {
	client := app.Identity.NewClient()
	return &Workspace{
		ID:      id,
		Machine: session.New(client, session.Options{}),
		Auth:    client,
		Chat:    chat.NewConversation(app.Advisor, domain.LanguageEnglish),
	}
}

func TestRegistrySweepEvictsIdle(t *testing.T) {
	app := newTestApp(t)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	done := make(chan struct{})
	close(done)
	reg := &Registry{
		idle:       time.Minute,
		now:        func() time.Time { return now },
		logger:     zerolog.Nop(),
		workspaces: make(map[string]*Workspace),
		stop:       make(chan struct{}),
		done:       done,
	}
	defer reg.Close()

	if _, err := reg.Put(testWorkspace(app, "a")); err != nil {
		t.Fatalf("Put a: %v", err)
	}
	now = now.Add(45 * time.Second)
	if _, err := reg.Put(testWorkspace(app, "b")); err != nil {
		t.Fatalf("Put b: %v", err)
	}
	now = now.Add(30 * time.Second)

	if n := reg.Sweep(); n != 1 {
		t.Fatalf("Sweep evicted %d, want 1", n)
	}
	if _, ok := reg.Get("a"); ok {
		t.Fatal("workspace a should be evicted")
	}
	if _, ok := reg.Get("b"); !ok {
		t.Fatal("workspace b should survive")
	}
}

func TestRegistryPut(t *testing.T) {
	app := newTestApp(t)
	reg := NewRegistry(0, zerolog.Nop())

	first, err := reg.Put(testWorkspace(app, "same"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	second, err := reg.Put(testWorkspace(app, "same"))
	if err != nil {
		t.Fatalf("Put duplicate: %v", err)
	}
	if second != first || reg.Len() != 1 {
		t.Fatal("duplicate id must return the existing workspace")
	}

	reg.Close()
	reg.Close()
	if reg.Len() != 0 {
		t.Fatalf("Len after Close = %d", reg.Len())
	}
	if _, err := reg.Put(testWorkspace(app, "late")); !errors.Is(err, errRegistryClosed) {
		t.Fatalf("Put after Close error = %v", err)
	}
}

func captureWorkspace(app *App, req *http.Request) (*Workspace, *httptest.ResponseRecorder) {
	var ws *Workspace
	h := app.Workspace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws = workspaceFrom(r.Context())
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return ws, rr
}

func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestWorkspaceReusesClientCookie(t *testing.T) {
	app := newTestApp(t)

	first, rr := captureWorkspace(app, httptest.NewRequest(http.MethodGet, "/v1/state", nil))
	cookie := findCookie(rr, clientCookie)
	if first == nil || cookie == nil || cookie.Value != first.ID {
		t.Fatalf("client cookie not issued: ws=%v cookie=%v", first, cookie)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/state", nil)
	req.AddCookie(cookie)
	second, _ := captureWorkspace(app, req)
	if second != first {
		t.Fatal("same client cookie must reuse the workspace")
	}
	if app.Workspaces.Len() != 1 {
		t.Fatalf("registry holds %d workspaces", app.Workspaces.Len())
	}
}

func TestWorkspaceResumesSession(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	signedIn := app.Identity.NewClient()
	if _, err := signedIn.Register(ctx, identity.RegisterInput{
		Name:         "Lakshmi",
		PhoneOrEmail: "9123456780",
		Password:     "secret1",
		Language:     domain.LanguageKannada,
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token := signedIn.Token()

	tests := []struct {
		name string
		path string
		want domain.View
	}{
		{"landing goes home", "/v1/state", domain.ViewDashboard},
		{"deep link kept", "/v1/state?view=PROFILE", domain.ViewProfile},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
			ws, _ := captureWorkspace(app, req)
			state := ws.Machine.Snapshot()
			if state.View != tc.want || state.User == nil || state.Loading {
				t.Fatalf("state = %+v, want view %s with user", state, tc.want)
			}
			if state.Language != domain.LanguageKannada {
				t.Fatalf("language = %q", state.Language)
			}
		})
	}
}

func TestWorkspaceClearsStaleSessionCookie(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/state", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "not-a-token"})
	ws, rr := captureWorkspace(app, req)
	if ws.Machine.Snapshot().User != nil {
		t.Fatal("stale token must not bind a user")
	}
	c := findCookie(rr, sessionCookie)
	if c == nil || c.MaxAge >= 0 {
		t.Fatalf("stale session cookie not cleared: %+v", c)
	}
}

func TestAdminStats(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	for _, phone := range []string{"9000000001", "9000000002"} {
		c := app.Identity.NewClient()
		if _, err := c.Register(ctx, identity.RegisterInput{Name: "F", PhoneOrEmail: phone, Password: "secret1"}); err != nil {
			t.Fatalf("Register %s: %v", phone, err)
		}
	}
	app.queries.Add(3)
	app.scans.Add(1)

	stats := app.adminStats(ctx)
	if stats.Farmers != 2 || stats.Queries != 3 || stats.Alerts != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}
