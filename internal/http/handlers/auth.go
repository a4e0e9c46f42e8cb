package handlers

import (
	"net/http"
	"strings"

	"agrifields/internal/domain"
	"agrifields/internal/identity"
)

type registerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Language string `json:"language"`
	Admin    bool   `json:"admin"`
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Admin    bool   `json:"admin"`
}

func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	var req registerRequest
	if !a.decode(w, r, &req) {
		return
	}

	in := identity.RegisterInput{
		Name:         req.Name,
		PhoneOrEmail: req.Phone,
		Password:     req.Password,
		Language:     ws.Machine.Snapshot().Language,
		Role:         domain.UserRoleFarmer,
	}
	if req.Admin {
		in.PhoneOrEmail = req.Email
		in.Role = domain.UserRoleAdmin
	}
	if strings.TrimSpace(req.Language) != "" {
		lang, err := domain.ParseLanguage(req.Language)
		if err != nil {
			a.fail(w, ws, domain.Invalid("language", "unsupported language"))
			return
		}
		in.Language = lang
	}

	user, err := ws.Auth.Register(r.Context(), in)
	if err != nil {
		a.fail(w, ws, err)
		return
	}
	ws.clearFeedback()
	ws.Machine.LoginSucceeded(user)
	a.syncSessionCookie(w, ws)
	a.json(w, http.StatusCreated, a.screen(r.Context(), ws))
}

func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	var req loginRequest
	if !a.decode(w, r, &req) {
		return
	}

	var (
		user *domain.User
		err  error
	)
	if req.Admin {
		user, err = ws.Auth.LoginAdmin(r.Context(), req.Email, req.Password)
	} else {
		if err := identity.ValidateFarmerLogin(req.Phone, req.Password); err != nil {
			a.fail(w, ws, err)
			return
		}
		user, err = ws.Auth.Login(r.Context(), req.Phone, req.Password)
	}
	if err != nil {
		a.fail(w, ws, err)
		return
	}
	ws.clearFeedback()
	ws.Machine.LoginSucceeded(user)
	a.syncSessionCookie(w, ws)
	a.json(w, http.StatusOK, a.screen(r.Context(), ws))
}

func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	ws.Machine.Logout(r.Context())
	ws.clearFeedback()
	ws.Chat.Reset(ws.Machine.Snapshot().Language)
	a.syncSessionCookie(w, ws)
	a.json(w, http.StatusOK, a.screen(r.Context(), ws))
}
