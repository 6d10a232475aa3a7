package model

// Role names the caller role attached by the auth middleware.
type Role string

const (
	// RoleAdmin is the only role in the system; a valid API key implies it.
	RoleAdmin Role = "Admin"
)
