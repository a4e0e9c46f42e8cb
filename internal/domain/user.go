package domain

import (
	"fmt"
	"strings"
)

// UserRole enumerates supported roles.
type UserRole string

const (
	UserRoleFarmer UserRole = "farmer"
	UserRoleAdmin  UserRole = "admin"
)

// ParseRole validates a role string. Empty input resolves to farmer.
func ParseRole(s string) (UserRole, error) {
	switch UserRole(strings.ToLower(strings.TrimSpace(s))) {
	case "", UserRoleFarmer:
		return UserRoleFarmer, nil
	case UserRoleAdmin:
		return UserRoleAdmin, nil
	}
	return "", fmt.Errorf("%w: unsupported role %q", ErrValidation, s)
}

// Language is one of the UI languages the product ships with.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguageTelugu  Language = "te"
	LanguageTamil   Language = "ta"
	LanguageKannada Language = "kn"
	LanguageMarathi Language = "mr"
)

// DefaultLanguage is used whenever no preference is known.
const DefaultLanguage = LanguageEnglish

// Languages lists the supported languages in selector order.
var Languages = []Language{
	LanguageEnglish,
	LanguageHindi,
	LanguageTelugu,
	LanguageTamil,
	LanguageKannada,
	LanguageMarathi,
}

// ParseLanguage validates a language code.
func ParseLanguage(s string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	if lang.Valid() {
		return lang, nil
	}
	return "", fmt.Errorf("%w: unsupported language %q", ErrValidation, s)
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	for _, known := range Languages {
		if l == known {
			return true
		}
	}
	return false
}

// OrDefault returns l when supported, DefaultLanguage otherwise.
func (l Language) OrDefault() Language {
	if l.Valid() {
		return l
	}
	return DefaultLanguage
}

// User is the profile document stored per identity uid.
type User struct {
	UID      string   `json:"uid"`
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Email    string   `json:"email,omitempty"`
	Role     UserRole `json:"role"`
	Language Language `json:"language"`
	Avatar   string   `json:"avatar,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}

// Clone returns a copy safe to hand to another goroutine.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// ProfileUpdate carries a partial profile update. Nil fields are left untouched.
type ProfileUpdate struct {
	Name     *string   `json:"name,omitempty"`
	Phone    *string   `json:"phone,omitempty"`
	Language *Language `json:"language,omitempty"`
	Avatar   *string   `json:"avatar,omitempty"`
}

// Empty reports whether the update changes nothing.
func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.Language == nil && p.Avatar == nil
}

// Apply returns a copy of u with the update applied.
func (p ProfileUpdate) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Language != nil {
		u.Language = *p.Language
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	return u
}
