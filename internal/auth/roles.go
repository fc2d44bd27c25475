package auth

// Role is the user's global role
type Role = string

const (
	// RoleAdmin can manage movies, showtimes and users
	RoleAdmin Role = "ADMIN"
	// RoleCustomer is the default role for every new account
	RoleCustomer Role = "CUSTOMER"
)

// Provider denotes where an account's credentials live
type Provider = string

const (
	// ProviderLocal accounts hold a bcrypt password hash
	ProviderLocal Provider = "LOCAL"
	// ProviderGoogle accounts are federated and carry no password hash
	ProviderGoogle Provider = "GOOGLE"
)

// IsValidRole checks if the role is one of the predefined valid roles
func IsValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleCustomer:
		return true
	default:
		return false
	}
}

// ParseRole safely parses a string into a Role
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, IsValidRole(role)
}

// IsValidProvider checks if the provider is one of the predefined origins
func IsValidProvider(p Provider) bool {
	switch p {
	case ProviderLocal, ProviderGoogle:
		return true
	default:
		return false
	}
}
