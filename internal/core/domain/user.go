package domain

import "time"

// User models a registered account. Roles is always one of the canonical
// role sets from roles.go, never an arbitrary combination.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email,omitempty" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Roles        []string  `json:"roles" bson:"roles"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Rank returns the user's authority rank derived from its role set.
func (u *User) Rank() (int, error) {
	return Rank(u.Roles)
}
