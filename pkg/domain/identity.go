package domain

// Role is the coarse permission tier carried by an authenticated identity.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ParseRole maps a claim value to a role, defaulting to RoleUser.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleModerator:
		return RoleModerator
	default:
		return RoleUser
	}
}

// Identity is the authenticated principal as reported by the auth provider.
type Identity struct {
	UserID      UserID
	DisplayName string
	Role        Role
}

// AuthState is the auth collaborator's view of the current request: the
// identity, when one is present, and whether the check is still pending.
type AuthState struct {
	Identity *Identity
	Loading  bool
}

// Authenticated reports whether a settled identity is present.
func (a AuthState) Authenticated() bool {
	return !a.Loading && a.Identity != nil && !a.Identity.UserID.IsZero()
}
