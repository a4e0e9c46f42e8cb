package identity

import "strings"

// PhoneDomain is appended to bare phone numbers so that phones and emails
// share one identifier namespace.
const PhoneDomain = "agrifields.app"

// NormalizeIdentifier maps a phone number or email to the identifier the
// credentials are stored under. Anything containing "@" is treated as an
// email and lower-cased; anything else becomes <phone>@agrifields.app.
func NormalizeIdentifier(phoneOrEmail string) string {
	s := strings.TrimSpace(phoneOrEmail)
	if s == "" {
		return ""
	}
	if strings.Contains(s, "@") {
		return strings.ToLower(s)
	}
	return s + "@" + PhoneDomain
}

// IsEmail reports whether the raw identifier is an email address.
func IsEmail(phoneOrEmail string) bool {
	return strings.Contains(phoneOrEmail, "@")
}
