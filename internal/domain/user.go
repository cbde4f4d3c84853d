// Package domain contains the core entities the Bookshelf client works with.
package domain

// User identifies an account on the remote book-review service.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session holds the credential and identity for the current user.
// Token and User are always set or cleared together; a session carrying
// only one of them is treated as absent.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// IsAuthenticated reports whether the session carries both a token and a
// user identity.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User.ID != ""
}
