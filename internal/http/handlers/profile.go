package handlers

import (
	"net/http"
	"strings"

	"agrifields/internal/domain"
	"agrifields/internal/i18n"
	"agrifields/internal/identity"
)

type profileRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Language *string `json:"language"`
	Avatar   *string `json:"avatar"`
}

func (a *App) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	var req profileRequest
	if !a.decode(w, r, &req) {
		return
	}
	uid := ws.Auth.UID()
	if uid == "" {
		a.fail(w, ws, domain.ErrInvalidCredentials)
		return
	}

	update := domain.ProfileUpdate{Name: req.Name, Phone: req.Phone, Avatar: req.Avatar}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		update.Phone = &phone
	}
	if req.Language != nil {
		lang := domain.Language(strings.ToLower(strings.TrimSpace(*req.Language)))
		update.Language = &lang
	}
	if err := identity.ValidateProfileUpdate(update); err != nil {
		a.fail(w, ws, err)
		return
	}

	user, err := ws.Auth.UpdateProfile(r.Context(), uid, update)
	if err != nil {
		a.fail(w, ws, err)
		return
	}
	ws.Machine.UpdateUser(user)
	ws.setNotice(i18n.For(ws.Machine.Snapshot().Language).T("profile.saved"))
	a.json(w, http.StatusOK, a.screen(r.Context(), ws))
}
