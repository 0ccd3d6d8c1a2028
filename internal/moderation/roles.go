package moderation

// Role is the closed set of actor roles the moderation core recognizes.
// It is resolved once at authentication time and passed in explicitly.
type Role string

const (
	RoleUser      Role = "user"
	RoleDeveloper Role = "developer"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ParseRole maps a stored role string onto the closed set. Unknown
// strings fall back to the unprivileged default.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleDeveloper:
		return RoleDeveloper
	case RoleModerator:
		return RoleModerator
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// CanModerate reports whether the role may approve or reject content.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

// AutoApproved reports whether content created by this role bypasses
// the pending state entirely.
func (r Role) AutoApproved() bool {
	return r.CanModerate()
}

// Actor identifies who is performing a moderation action.
type Actor struct {
	ID   uint
	Role Role
}
