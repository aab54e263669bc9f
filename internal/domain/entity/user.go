package entity

// User is the identity value behind every piece of content.
// Two users are the same user when their UserID matches.
type User struct {
	ID       int64
	UserID   string
	Name     string
	Password string
	Email    string
}

// NewUser builds a User. userID is the external identifier used for equality.
func NewUser(userID, name, password, email string) User {
	return User{UserID: userID, Name: name, Password: password, Email: email}
}

// Equals compares users by identity, not by the remaining attributes.
func (u User) Equals(other User) bool {
	return u.UserID == other.UserID
}

// IsGuest reports whether the value carries no identity.
func (u User) IsGuest() bool {
	return u.UserID == ""
}
