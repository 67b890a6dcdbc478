package model

// Known role names returned by the upstream auth API.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
)

// UserRecord mirrors the user object returned by the upstream auth API.
// Field names follow the upstream JSON contract exactly; the record is
// persisted verbatim so a restored session decodes into the same value.
type UserRecord struct {
	ID         int     `json:"id"`
	Username   string  `json:"username"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	IsActive   bool    `json:"is_active"`
	DateJoined string  `json:"date_joined"`
	LastLogin  *string `json:"last_login,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *UserRecord) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsModerator reports whether the user holds at least moderator privileges.
// Admins count as moderators.
func (u *UserRecord) IsModerator() bool {
	return u != nil && (u.Role == RoleAdmin || u.Role == RoleModerator)
}

// FullName joins first and last name, falling back to the username.
func (u *UserRecord) FullName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// LoginRequest is the credential payload accepted by the gateway's login
// endpoint and forwarded to the upstream auth API.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
