package models

// User is a portal account. Role starts at guest and is promoted to member as
// a side effect of the first reservation-submitting action.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// UserUpdate supports PATCH-style updates via key presence.
type UserUpdate struct {
	Name  *string
	Phone *string
	Role  *string
}
