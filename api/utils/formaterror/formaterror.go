package formaterror

import (
	"errors"
	"strings"
)

// FormatError maps database and auth errors to messages safe to show users.
func FormatError(err string) error {
	lower := strings.ToLower(err)

	switch {
	case strings.Contains(lower, "username"):
		return errors.New("Username Already Taken")
	case strings.Contains(lower, "email"):
		return errors.New("Email Already Taken")
	case strings.Contains(lower, "hashedpassword"):
		return errors.New("Incorrect Password")
	case strings.Contains(lower, "record not found"):
		return errors.New("Incorrect Details")
	}
	return errors.New("Incorrect Details")
}
