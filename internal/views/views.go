// Package views turns a session snapshot into the typed screen model the
// browser renders. All copy comes from the i18n table.
package views

import (
	"strings"

	"agrifields/internal/domain"
	"agrifields/internal/i18n"
	"agrifields/internal/session"
)

// Screen is the complete render model of one browser.
type Screen struct {
	View     domain.View     `json:"view"`
	Loading  bool            `json:"loading"`
	Language domain.Language `json:"language"`
	DarkMode bool            `json:"dark_mode"`
	Nav      Nav             `json:"nav"`
	Body     any             `json:"body,omitempty"`
}

// Extras carries per-screen data that does not live in the session state.
type Extras struct {
	Messages    []domain.Message
	ChatBusy    bool
	Analysis    string
	FormError   string
	Notice      string
	AdminStats  *AdminStats
	AIAvailable bool
}

type Link struct {
	View   domain.View `json:"view"`
	Label  string      `json:"label"`
	Active bool        `json:"active"`
}

type LanguageOption struct {
	Code     domain.Language `json:"code"`
	Name     string          `json:"name"`
	Selected bool            `json:"selected"`
}

// Nav is the navigation bar. Farmer links only appear for farmers.
type Nav struct {
	Home       Link             `json:"home"`
	Links      []Link           `json:"links"`
	Languages  []LanguageOption `json:"languages"`
	ThemeLabel string           `json:"theme_label"`
	Login      *Link            `json:"login,omitempty"`
	Account    *Account         `json:"account,omitempty"`
}

// Account is the signed-in badge that links to the profile page.
type Account struct {
	Initial   string `json:"initial"`
	FirstName string `json:"first_name"`
	Link      Link   `json:"link"`
}

type Landing struct {
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle"`
	Description string      `json:"description"`
	CTA         string      `json:"cta"`
	CTATarget   domain.View `json:"cta_target"`
	Services    string      `json:"services_title"`
	Journey     string      `json:"journey_title"`
}

type Auth struct {
	Strings map[string]string `json:"strings"`
	Error   string            `json:"error,omitempty"`
}

type Tile struct {
	Title  string      `json:"title"`
	Desc   string      `json:"desc"`
	Target domain.View `json:"target,omitempty"`
}

type Dashboard struct {
	Greeting string `json:"greeting"`
	Name     string `json:"name"`
	Subtitle string `json:"subtitle"`
	LiveFeed string `json:"live_feed"`
	AIBadge  string `json:"ai_badge"`
	AIText   string `json:"ai_text"`
	Weather  string `json:"weather"`
	Tiles    []Tile `json:"tiles"`
	Logout   string `json:"logout"`
}

type AdminStats struct {
	Farmers int   `json:"farmers"`
	Queries int64 `json:"queries"`
	Alerts  int   `json:"alerts"`
}

type Stat struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

type AdminDashboard struct {
	AccessDenied bool   `json:"access_denied"`
	Message      string `json:"message,omitempty"`
	Title        string `json:"title,omitempty"`
	Subtitle     string `json:"subtitle,omitempty"`
	Status       string `json:"status,omitempty"`
	AdminName    string `json:"admin_name,omitempty"`
	Signals      string `json:"signals,omitempty"`
	Stats        []Stat `json:"stats,omitempty"`
	AILive       bool   `json:"ai_live"`
}

type Teacher struct {
	Title       string           `json:"title"`
	Placeholder string           `json:"placeholder"`
	Thinking    string           `json:"thinking"`
	Busy        bool             `json:"busy"`
	Messages    []domain.Message `json:"messages"`
}

type Doctor struct {
	Title    string `json:"title"`
	Ready    string `json:"ready"`
	TapScan  string `json:"tap_scan"`
	Support  string `json:"support"`
	Start    string `json:"start"`
	Complete string `json:"complete,omitempty"`
	Analysis string `json:"analysis,omitempty"`
}

type Lessons struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Profile struct {
	SignedOut bool              `json:"signed_out"`
	User      *domain.User      `json:"user,omitempty"`
	Strings   map[string]string `json:"strings,omitempty"`
	Languages []LanguageOption  `json:"languages,omitempty"`
	Notice    string            `json:"notice,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// Render builds the screen for state. While the session is loading only the
// shell is rendered.
func Render(state session.State, extras Extras) Screen {
	t := i18n.For(state.Language)
	screen := Screen{
		View:     state.View,
		Loading:  state.Loading,
		Language: t.Language(),
		DarkMode: state.DarkMode,
		Nav:      renderNav(state, t),
	}
	if state.Loading {
		return screen
	}
	screen.Body = renderBody(state, extras, t)
	return screen
}

func renderBody(state session.State, extras Extras, t i18n.Strings) any {
	switch state.View {
	case domain.ViewAuth:
		return Auth{Strings: t.Section("auth"), Error: extras.FormError}
	case domain.ViewDashboard:
		return renderDashboard(state.User, t)
	case domain.ViewAdminDashboard:
		return RenderAdmin(state.User, extras, t)
	case domain.ViewTeacher:
		return Teacher{
			Title:       t.T("teacher.title"),
			Placeholder: t.T("teacher.placeholder"),
			Thinking:    t.T("teacher.thinking"),
			Busy:        extras.ChatBusy,
			Messages:    extras.Messages,
		}
	case domain.ViewDoctor:
		d := Doctor{
			Title:    t.T("doctor.title"),
			Ready:    t.T("doctor.ready"),
			TapScan:  t.T("doctor.tapScan"),
			Support:  t.T("doctor.support"),
			Start:    t.T("doctor.start"),
			Analysis: extras.Analysis,
		}
		if extras.Analysis != "" {
			d.Complete = t.T("doctor.complete")
		}
		return d
	case domain.ViewLessons:
		return Lessons{Title: t.T("lessons.title"), Description: t.T("lessons.desc")}
	case domain.ViewProfile:
		if state.User == nil {
			return Profile{SignedOut: true}
		}
		return Profile{
			User:      state.User,
			Strings:   t.Section("profile"),
			Languages: languageOptions(state.User.Language),
			Notice:    extras.Notice,
			Error:     extras.FormError,
		}
	default:
		return renderLanding(state.User, t)
	}
}

func renderLanding(user *domain.User, t i18n.Strings) Landing {
	target := domain.ViewAuth
	if user != nil {
		target = domain.ViewDashboard
	}
	return Landing{
		Title:       t.T("landing.heroTitle"),
		Subtitle:    t.T("landing.heroSub"),
		Description: t.T("landing.heroDesc"),
		CTA:         t.T("landing.start"),
		CTATarget:   target,
		Services:    t.T("landing.servicesTitle"),
		Journey:     t.T("landing.journeyTitle"),
	}
}

func renderDashboard(user *domain.User, t i18n.Strings) Dashboard {
	name := "Farmer"
	if user != nil {
		if first := firstName(user.Name); first != "" {
			name = first
		}
	}
	return Dashboard{
		Greeting: t.T("dashboard.greeting"),
		Name:     name,
		Subtitle: t.T("dashboard.subtitle"),
		LiveFeed: t.T("dashboard.liveFeed"),
		AIBadge:  t.T("dashboard.aiBadge"),
		AIText:   t.T("dashboard.aiText"),
		Weather:  t.T("dashboard.weather"),
		Logout:   t.T("nav.logout"),
		Tiles: []Tile{
			{Title: t.T("dashboard.scan"), Desc: t.T("dashboard.scanDesc"), Target: domain.ViewDoctor},
			{Title: t.T("dashboard.soil"), Desc: t.T("dashboard.soilDesc")},
			{Title: t.T("dashboard.academy"), Desc: t.T("dashboard.academyDesc"), Target: domain.ViewTeacher},
			{Title: t.T("dashboard.community"), Desc: t.T("dashboard.communityDesc")},
		},
	}
}

// RenderAdmin refuses to show admin content to anyone but a bound admin.
func RenderAdmin(user *domain.User, extras Extras, t i18n.Strings) AdminDashboard {
	if !user.IsAdmin() {
		return AdminDashboard{AccessDenied: true, Message: t.T("admin.denied")}
	}
	stats := extras.AdminStats
	if stats == nil {
		stats = &AdminStats{}
	}
	return AdminDashboard{
		Title:     t.T("admin.title"),
		Subtitle:  t.T("admin.subtitle"),
		Status:    t.T("admin.status"),
		AdminName: user.Name,
		Signals:   t.T("admin.signals"),
		AILive:    extras.AIAvailable,
		Stats: []Stat{
			{Label: t.T("admin.farmers"), Value: int64(stats.Farmers)},
			{Label: t.T("admin.queries"), Value: stats.Queries},
			{Label: t.T("admin.alerts"), Value: int64(stats.Alerts)},
		},
	}
}

func renderNav(state session.State, t i18n.Strings) Nav {
	nav := Nav{
		Home:       Link{View: domain.ViewLanding, Label: "AgriFields", Active: state.View == domain.ViewLanding},
		Languages:  languageOptions(t.Language()),
		ThemeLabel: t.T("nav.theme"),
	}
	user := state.User
	if user != nil && user.Role == domain.UserRoleFarmer {
		for _, l := range []struct {
			view domain.View
			key  string
		}{
			{domain.ViewDashboard, "nav.home"},
			{domain.ViewTeacher, "nav.guru"},
			{domain.ViewDoctor, "nav.doctor"},
			{domain.ViewLessons, "nav.lessons"},
		} {
			nav.Links = append(nav.Links, Link{View: l.view, Label: t.T(l.key), Active: state.View == l.view})
		}
	}
	if user == nil {
		nav.Login = &Link{View: domain.ViewAuth, Label: t.T("nav.login"), Active: state.View == domain.ViewAuth}
		return nav
	}
	nav.Account = &Account{
		Initial:   initial(user.Name),
		FirstName: firstName(user.Name),
		Link:      Link{View: domain.ViewProfile, Label: t.T("nav.profile"), Active: state.View == domain.ViewProfile},
	}
	return nav
}

func languageOptions(selected domain.Language) []LanguageOption {
	out := make([]LanguageOption, 0, len(domain.Languages))
	for _, lang := range domain.Languages {
		out = append(out, LanguageOption{Code: lang, Name: i18n.NativeName(lang), Selected: lang == selected})
	}
	return out
}

func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func initial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return strings.ToUpper(string(r))
	}
	return ""
}
