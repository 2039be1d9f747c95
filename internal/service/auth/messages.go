package auth

import (
	"errors"

	"eventoria/internal/pkg/i18n"
)

var messageKeys = []struct {
	err error
	key string
}{
	{ErrEmailExists, "auth.email_in_use"},
	{ErrUserNotFound, "auth.user_not_found"},
	{ErrWrongPassword, "auth.wrong_password"},
	{ErrInvalidCredentials, "auth.invalid_credentials"},
	{ErrUserDisabled, "auth.user_disabled"},
	{ErrInvalidToken, "auth.invalid_token"},
	{ErrTokenExpired, "auth.reset_token_expired"},
}

// MessageFor returns the Romanian text shown for an auth failure.
func MessageFor(err error) string {
	for _, m := range messageKeys {
		if errors.Is(err, m.err) {
			return i18n.T(m.key)
		}
	}
	return i18n.T("auth.default")
}
