package models

// Role distinguishes the two principal kinds. It is decided once at token
// issuance and carried explicitly through every call.
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleProvider
}

// Principal identifies an authenticated caller.
type Principal struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}
