package user

type Role string

const (
	RoleAdmin  Role = "admin"  // Operators who record figures and move money
	RoleViewer Role = "viewer" // Read-only dashboard access
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleViewer:
		return true
	}
	return false
}

// Claims is the identity carried by an access token.
type Claims struct {
	UserID string
	Role   Role
}
