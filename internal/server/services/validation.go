package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/avelinsk/teamspace/internal/common"
	"github.com/avelinsk/teamspace/internal/server/models"
)

var (
	emailRe         = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	passwordUpperRe = regexp.MustCompile(`[A-Z]`)
	passwordDigitRe = regexp.MustCompile(`\d`)
	slugRe          = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// NormalizeEmail lowercases and trims an email address. All storage and
// lookup goes through this, making emails case-insensitively unique.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, fmt.Sprintf(format, args...))
}

func validateSignUp(name, email, password string) error {
	if name == "" || len(name) > 255 {
		return invalid("name must be between 1 and 255 characters")
	}
	if !emailRe.MatchString(NormalizeEmail(email)) {
		return invalid("invalid email address")
	}
	if len(password) < 4 {
		return invalid("password must be at least 4 characters")
	}
	if !passwordUpperRe.MatchString(password) || !passwordDigitRe.MatchString(password) {
		return invalid("password must contain at least one uppercase letter and one number")
	}
	return nil
}

func validateOrg(name, slug string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 100 {
		return invalid("name must be between 2 and 100 characters")
	}
	if len(slug) < 2 || len(slug) > 50 || !slugRe.MatchString(slug) {
		return invalid("slug must be lowercase alphanumeric with hyphens")
	}
	return nil
}

func validateWorkspaceName(name string) error {
	if len(name) > 100 {
		return invalid("workspace name must be less than 100 characters")
	}
	return nil
}

func validateDocument(name, title, content string) error {
	if len(name) > 100 {
		return invalid("document name must be less than 100 characters")
	}
	if title == "" || len(title) > 100 {
		return invalid("document title must be between 1 and 100 characters")
	}
	if content == "" {
		return invalid("document content cannot be empty")
	}
	return nil
}

func validateRole(role models.Role) error {
	if !role.Valid() {
		return invalid("unknown role %q", role)
	}
	return nil
}
