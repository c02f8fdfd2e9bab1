package validation

import "strings"

// CreateTeamRequest mirrors the fields needed for create team validation.
type CreateTeamRequest struct {
	Name string
}

// ValidateCreateTeamRequest validates the fields of a create team request.
func ValidateCreateTeamRequest(req CreateTeamRequest) []string {
	var msgs []string

	name := strings.TrimSpace(req.Name)
	if name == "" {
		msgs = append(msgs, "name is required")
	} else if len(name) > 100 {
		msgs = append(msgs, "name must be at most 100 characters")
	}

	return msgs
}

// MemberRequest mirrors the fields needed for add/remove member validation.
type MemberRequest struct {
	Username string
}

// ValidateMemberRequest validates the fields of an add/remove member request.
func ValidateMemberRequest(req MemberRequest) []string {
	var msgs []string

	if strings.TrimSpace(req.Username) == "" {
		msgs = append(msgs, "username is required")
	}

	return msgs
}
