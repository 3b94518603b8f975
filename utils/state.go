package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewStateToken returns a 32 character anti-forgery token made of
// uppercase letters and digits.
func NewStateToken() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
