package client

import "fmt"

// ValidationError is raised locally, before any network call, for input
// failing the role/user form rules.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// ConflictError is a server-reported uniqueness or referential-integrity
// violation (duplicate role name, role still assigned to users).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ProtectedRoleError rejects mutations of system roles. Raised locally
// when the target is known to be a system role, otherwise surfaced from
// the server's 403.
type ProtectedRoleError struct {
	Role string
}

func (e *ProtectedRoleError) Error() string {
	if e.Role == "" {
		return "system roles cannot be modified"
	}
	return fmt.Sprintf("system role %q cannot be modified", e.Role)
}

// HTTPError covers every other non-2xx response; network failures map to
// StatusCode 0.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.StatusCode == 0 {
		return "request failed: " + e.Message
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}
