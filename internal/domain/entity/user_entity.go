package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash and must never reach a client.
// Favorites keeps insertion order and contains no duplicates.
// Version counts favorites writes; conditional updates compare it so a
// concurrent writer cannot silently overwrite another's change.
type User struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Password  string
	Favorites []string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasFavorite reports whether code is already in the favorites set.
func (u *User) HasFavorite(code string) bool {
	for _, c := range u.Favorites {
		if c == code {
			return true
		}
	}
	return false
}
