package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"agrifields/internal/chat"
	"agrifields/internal/domain"
	"agrifields/internal/i18n"
	"agrifields/internal/identity"
	"agrifields/internal/scan"
	"agrifields/internal/views"
)

const maxBodyBytes = 12 << 20

// Advisor is the AI backend used by the tutor and the crop doctor.
type Advisor interface {
	chat.Advisor
	scan.Analyzer
	Live() bool
}

type Options struct {
	Logger        zerolog.Logger
	Identity      *identity.Service
	Advisor       Advisor
	Doctor        *scan.Doctor
	Profiles      domain.ProfileCounter
	IdleTimeout   time.Duration
	SessionTTL    time.Duration
	SecureCookies bool
}

type App struct {
	Logger     zerolog.Logger
	Identity   *identity.Service
	Advisor    Advisor
	Doctor     *scan.Doctor
	Profiles   domain.ProfileCounter
	Workspaces *Registry

	sessionTTL    time.Duration
	secureCookies bool

	queries atomic.Int64
	scans   atomic.Int64
}

func NewApp(opts Options) *App {
	doctor := opts.Doctor
	if doctor == nil {
		doctor = scan.NewDoctor(opts.Advisor, nil, opts.Logger)
	}
	return &App{
		Logger:        opts.Logger,
		Identity:      opts.Identity,
		Advisor:       opts.Advisor,
		Doctor:        doctor,
		Profiles:      opts.Profiles,
		Workspaces:    NewRegistry(opts.IdleTimeout, opts.Logger),
		sessionTTL:    opts.SessionTTL,
		secureCookies: opts.SecureCookies,
	}
}

// Close evicts every workspace and waits for pending scan uploads.
func (a *App) Close() {
	a.Workspaces.Close()
	a.Doctor.Wait()
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]errorBody{"error": {Code: errCode, Message: message}})
}

// fail answers with the localized message for err and remembers it as the
// form error of the current screen. The view is left alone.
func (a *App) fail(w http.ResponseWriter, ws *Workspace, err error) {
	status, code := statusFor(err)
	lang := ws.Machine.Snapshot().Language
	message := messageFor(err, i18n.For(lang))
	if status >= http.StatusInternalServerError {
		a.Logger.Error().Err(err).Str("client_id", ws.ID).Msg("request failed")
	}
	ws.setFormError(message)

	body := errorBody{Code: code, Message: message}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body.Field = verr.Field
	}
	a.json(w, status, map[string]errorBody{"error": body})
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

// statusFor maps the closed error set onto HTTP.
func statusFor(err error) (int, string) {
	if errors.Is(err, chat.ErrBusy) {
		return http.StatusConflict, "busy"
	}
	kind := identity.Classify(err)
	switch {
	case errors.Is(kind, identity.ErrNotAdmin):
		return http.StatusForbidden, "not_admin"
	case errors.Is(kind, domain.ErrAlreadyExists):
		return http.StatusConflict, "already_exists"
	case errors.Is(kind, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(kind, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(kind, domain.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(kind, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	}
	return http.StatusInternalServerError, "unknown"
}

var fieldMessages = map[string]string{
	"phone":    "auth.errorPhone",
	"password": "auth.errorPass",
	"name":     "auth.errorName",
	"email":    "auth.errorEmail",
}

func messageFor(err error, t i18n.Strings) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		if key, ok := fieldMessages[verr.Field]; ok {
			return t.T(key)
		}
		return verr.Error()
	}
	kind := identity.Classify(err)
	switch {
	case errors.Is(err, chat.ErrBusy):
		return t.T("teacher.thinking")
	case errors.Is(kind, identity.ErrNotAdmin):
		return t.T("auth.errorNotAdmin")
	case errors.Is(kind, domain.ErrAlreadyExists):
		return t.T("auth.errorExists")
	case errors.Is(kind, domain.ErrInvalidCredentials):
		return t.T("auth.errorCredentials")
	case errors.Is(kind, domain.ErrNotFound):
		return t.T("auth.errorNotFound")
	case errors.Is(kind, domain.ErrValidation):
		return err.Error()
	}
	return t.T("auth.errorUnknown")
}

// screen renders the workspace with everything the current view needs.
func (a *App) screen(ctx context.Context, ws *Workspace) views.Screen {
	state := ws.Machine.Snapshot()
	ws.Chat.Localize(state.Language)

	extras := ws.extras()
	extras.Messages = ws.Chat.Messages()
	extras.ChatBusy = ws.Chat.Busy()
	extras.AIAvailable = a.Advisor != nil && a.Advisor.Live()
	if state.View == domain.ViewAdminDashboard && state.User.IsAdmin() {
		extras.AdminStats = a.adminStats(ctx)
	}
	return views.Render(state, extras)
}

func (a *App) adminStats(ctx context.Context) *views.AdminStats {
	stats := &views.AdminStats{Queries: a.queries.Load(), Alerts: int(a.scans.Load())}
	if a.Profiles == nil {
		return stats
	}
	farmers, err := a.Profiles.CountByRole(ctx, domain.UserRoleFarmer)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("count farmers failed")
		return stats
	}
	stats.Farmers = farmers
	return stats
}
