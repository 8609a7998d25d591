package models

// Identity is the user resolved from the backend session cookie. The zero
// value means unauthenticated.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// IsZero reports whether no user is resolved.
func (i Identity) IsZero() bool {
	return i.UserID == ""
}

// DisplayName prefers the username, then the email, then the id.
func (i Identity) DisplayName() string {
	switch {
	case i.Username != "":
		return i.Username
	case i.Email != "":
		return i.Email
	default:
		return i.UserID
	}
}
