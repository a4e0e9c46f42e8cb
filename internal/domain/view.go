package domain

import (
	"fmt"
	"strings"
	"time"
)

// View enumerates the screens of the application. Exactly one is active.
type View string

const (
	ViewLanding        View = "LANDING"
	ViewAuth           View = "AUTH"
	ViewDashboard      View = "DASHBOARD"
	ViewAdminDashboard View = "ADMIN_DASHBOARD"
	ViewTeacher        View = "TEACHER"
	ViewDoctor         View = "DOCTOR"
	ViewLessons        View = "LESSONS"
	ViewProfile        View = "PROFILE"
)

var views = []View{
	ViewLanding, ViewAuth, ViewDashboard, ViewAdminDashboard,
	ViewTeacher, ViewDoctor, ViewLessons, ViewProfile,
}

// ParseView validates a view name.
func ParseView(s string) (View, error) {
	v := View(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range views {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: unknown view %q", ErrValidation, s)
}

// IsEntry reports whether v is one of the signed-out entry screens.
func (v View) IsEntry() bool {
	return v == ViewLanding || v == ViewAuth
}

// HomeView is the landing screen after authentication for the given role.
func HomeView(role UserRole) View {
	if role == UserRoleAdmin {
		return ViewAdminDashboard
	}
	return ViewDashboard
}

// Sender identifies the author of a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Message is one entry of the tutor conversation.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}
