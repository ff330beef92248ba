package domain

import "time"

// User is a registered account. Username is the unique, immutable key and
// only the bcrypt hash of the password is ever kept.
type User struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
