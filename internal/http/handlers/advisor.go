package handlers

import (
	"net/http"
	"strings"

	"agrifields/internal/domain"
)

type messageRequest struct {
	Text string `json:"text"`
}

type messagesResponse struct {
	Messages []domain.Message `json:"messages"`
}

// SendMessage asks Krishi Guru and returns the whole conversation. Advisor
// failures come back as reply text, never as an error status.
func (a *App) SendMessage(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	var req messageRequest
	if !a.decode(w, r, &req) {
		return
	}
	msgs, err := ws.Chat.Send(r.Context(), req.Text)
	if err != nil {
		a.fail(w, ws, err)
		return
	}
	a.queries.Add(1)
	a.json(w, http.StatusOK, messagesResponse{Messages: msgs})
}

type analyzeRequest struct {
	Image string `json:"image"`
}

type analyzeResponse struct {
	Analysis string `json:"analysis"`
}

func (a *App) AnalyzeCrop(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	var req analyzeRequest
	if !a.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Image) == "" {
		a.fail(w, ws, domain.Invalid("image", "is required"))
		return
	}
	lang := ws.Machine.Snapshot().Language
	analysis := a.Doctor.Analyze(r.Context(), ws.Auth.UID(), req.Image, lang)
	a.queries.Add(1)
	a.scans.Add(1)
	ws.setAnalysis(analysis)
	a.json(w, http.StatusOK, analyzeResponse{Analysis: analysis})
}
