package identity

import (
	"regexp"
	"strings"

	"agrifields/internal/domain"
)

const (
	// MinPasswordLength matches the identity provider's weak-password floor.
	MinPasswordLength = 6
	// MaxPasswordLength is the most bcrypt will hash, counted in bytes.
	MaxPasswordLength = 72
	defaultAdminName  = "Admin"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// ValidPhone reports whether p is a 10-digit phone number.
func ValidPhone(p string) bool {
	return phonePattern.MatchString(p)
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Name         string
	PhoneOrEmail string
	Password     string
	Language     domain.Language
	Role         domain.UserRole
}

// ValidateRegistration checks a registration form and returns it with
// defaults applied: farmer role, default language, and "Admin" as the name
// of an unnamed admin.
func ValidateRegistration(in RegisterInput) (RegisterInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.PhoneOrEmail = strings.TrimSpace(in.PhoneOrEmail)
	if in.Role == "" {
		in.Role = domain.UserRoleFarmer
	}
	in.Language = in.Language.OrDefault()

	switch in.Role {
	case domain.UserRoleAdmin:
		if !IsEmail(in.PhoneOrEmail) {
			return in, domain.Invalid("email", "a valid email is required")
		}
		if in.Name == "" {
			in.Name = defaultAdminName
		}
	case domain.UserRoleFarmer:
		if !ValidPhone(in.PhoneOrEmail) {
			return in, domain.Invalid("phone", "must be a 10-digit number")
		}
	default:
		return in, domain.Invalid("role", "unsupported role")
	}
	if len(in.Password) < MinPasswordLength {
		return in, domain.Invalid("password", "must be at least 6 characters")
	}
	if len(in.Password) > MaxPasswordLength {
		return in, domain.Invalid("password", "must be at most 72 bytes")
	}
	if in.Name == "" {
		return in, domain.Invalid("name", "is required")
	}
	return in, nil
}

// ValidateFarmerLogin checks the farmer login form. Admin logins skip it.
func ValidateFarmerLogin(phone, password string) error {
	if !ValidPhone(strings.TrimSpace(phone)) {
		return domain.Invalid("phone", "must be a 10-digit number")
	}
	if len(password) < MinPasswordLength {
		return domain.Invalid("password", "must be at least 6 characters")
	}
	return nil
}

// ValidateProfileUpdate checks the fields present in a partial update.
func ValidateProfileUpdate(update domain.ProfileUpdate) error {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return domain.Invalid("name", "is required")
	}
	if update.Phone != nil && *update.Phone != "" && !ValidPhone(*update.Phone) {
		return domain.Invalid("phone", "must be a 10-digit number")
	}
	if update.Language != nil && !update.Language.Valid() {
		return domain.Invalid("language", "unsupported language")
	}
	return nil
}
