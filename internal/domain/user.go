package domain

// Role represents the caller's permission level in the storefront.
type Role string

const (
	// RoleAdmin may author and delete custom books.
	RoleAdmin Role = "admin"
	// RoleMember may browse, buy and read.
	RoleMember Role = "member"
)

// Identity is the session identity supplied by the identity provider.
// Email is the ledger key and the only input to role resolution.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// IsAdmin returns true if the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Owns reports whether the identity authored the given book.
func (i *Identity) Owns(b *Book) bool {
	return i != nil && b != nil && b.AddedBy != "" && b.AddedBy == i.Email
}
