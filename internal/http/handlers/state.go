package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"agrifields/internal/domain"
	"agrifields/internal/i18n"
)

func (a *App) State(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	a.json(w, http.StatusOK, a.screen(r.Context(), ws))
}

type navigateRequest struct {
	View string `json:"view"`
}

func (a *App) Navigate(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	var req navigateRequest
	if !a.decode(w, r, &req) {
		return
	}
	view, err := domain.ParseView(req.View)
	if err != nil {
		a.error(w, http.StatusBadRequest, "validation", err.Error())
		return
	}
	ws.clearFeedback()
	ws.Machine.Navigate(view)
	a.json(w, http.StatusOK, a.screen(r.Context(), ws))
}

// StartJourney is the landing page call to action.
func (a *App) StartJourney(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	ws.clearFeedback()
	ws.Machine.StartJourney()
	a.json(w, http.StatusOK, a.screen(r.Context(), ws))
}

type languageRequest struct {
	Language string `json:"language"`
}

func (a *App) SetLanguage(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	var req languageRequest
	if !a.decode(w, r, &req) {
		return
	}
	lang, err := domain.ParseLanguage(req.Language)
	if err != nil {
		a.error(w, http.StatusBadRequest, "validation", err.Error())
		return
	}
	if err := ws.Machine.SetLanguage(lang); err != nil {
		a.fail(w, ws, err)
		return
	}
	a.json(w, http.StatusOK, a.screen(r.Context(), ws))
}

func (a *App) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	ws.Machine.ToggleTheme()
	a.json(w, http.StatusOK, a.screen(r.Context(), ws))
}

// Strings serves the raw localization table of one language.
func (a *App) Strings(w http.ResponseWriter, r *http.Request) {
	lang, err := domain.ParseLanguage(chi.URLParam(r, "lang"))
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "unsupported language")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"language": lang,
		"name":     i18n.NativeName(lang),
		"strings":  i18n.For(lang).All(),
	})
}
