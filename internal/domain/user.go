package domain

import "time"

// User is the generic identity shared by customers and administrators.
// Passwords live on the admin privilege record, not here.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
