package validation

import "strings"

// RegisterRequest mirrors the fields needed for register validation.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// ValidateRegisterRequest validates the fields of a registration request.
func ValidateRegisterRequest(req RegisterRequest) []string {
	var msgs []string

	username := strings.TrimSpace(req.Username)
	if username == "" {
		msgs = append(msgs, "username is required")
	} else if len(username) > 150 {
		msgs = append(msgs, "username must be at most 150 characters")
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		msgs = append(msgs, "email is required")
	} else if !strings.Contains(email, "@") {
		msgs = append(msgs, "email must be a valid email address")
	}

	if req.Password == "" {
		msgs = append(msgs, "password is required")
	} else if len(req.Password) < 8 {
		msgs = append(msgs, "password must be at least 8 characters")
	}

	return msgs
}

// LoginRequest mirrors the fields needed for login validation.
type LoginRequest struct {
	Username string
	Password string
}

// ValidateLoginRequest validates the fields of a login request.
func ValidateLoginRequest(req LoginRequest) []string {
	var msgs []string

	if strings.TrimSpace(req.Username) == "" {
		msgs = append(msgs, "username is required")
	}
	if req.Password == "" {
		msgs = append(msgs, "password is required")
	}

	return msgs
}
