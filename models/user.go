package models

import "time"

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"-" bson:"password"`
	Role          []string  `json:"role" bson:"role"`
	EmailVerified bool      `json:"email_verified" bson:"email_verified"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
	LastLogin     time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
}

// IsSeller reports whether the user may create and sell plans.
func (u *User) IsSeller() bool {
	for _, r := range u.Role {
		if r == "seller" {
			return true
		}
	}
	return false
}
