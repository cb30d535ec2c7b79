package models

// Role defines allowed roles in the system
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleDeliverer Role = "deliverer"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleDeliverer, RoleAdmin:
		return true
	}
	return false
}

// User is a stored credential record. The password is kept in plaintext to
// match the client this engine replaces; it must not be reused outside the
// local single-client model.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Identity is the reduced view of a user held by the authenticated session.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
}

// Capabilities are derived from the session role and never stored.
type Capabilities struct {
	IsAdmin  bool `json:"isAdmin"`
	IsSeller bool `json:"isSeller"`
}

// CapabilitiesFor derives the capability set for an identity. A nil identity
// (anonymous session) yields no capabilities.
func CapabilitiesFor(identity *Identity) Capabilities {
	if identity == nil {
		return Capabilities{}
	}
	return Capabilities{
		IsAdmin:  identity.Role == RoleAdmin,
		IsSeller: identity.Role == RoleAdmin || identity.Role == RoleDeliverer,
	}
}
