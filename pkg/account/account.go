// Package account holds the user model and the client-side validation rules
// for registration, sign-in and account settings.
package account

import (
	"fmt"
	"sort"
	"strings"

	"tableflip.dev/dreamlog/pkg/dream"
)

// User is the authenticated account as returned by the API.
type User struct {
	ID        int64           `json:"id" yaml:"id"`
	Email     string          `json:"email" yaml:"email"`
	Username  string          `json:"username" yaml:"username"`
	CreatedAt dream.Timestamp `json:"created_at" yaml:"created_at"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	User        User   `json:"user"`
}

// Message is the {success, message} acknowledgement some endpoints return.
type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FieldErrors maps a form field to its validation message. Validation
// failures never reach the network.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, f[k]))
	}
	return strings.Join(parts, "; ")
}

// Err returns f as an error, or nil when there are no field errors.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return f
}
