package domain

// ID is used across domain entities.
type ID int64

// Status represents a lightweight state value.
type Status string

// RequestContext carries the authenticated user through every service call, so
// services never re-fetch session state on their own.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Roles a portal user can hold. Guests are promoted to member on their first
// reservation-submitting action; there is no downgrade path.
const (
	RoleGuest   = "guest"
	RoleMember  = "member"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)
