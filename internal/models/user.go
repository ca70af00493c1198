package models

// User owns zero or more posts.
type User struct {
	ID             int    `json:"id"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"` // never leaves the server
	IsActive       bool   `json:"is_active"`
	Posts          []Post `json:"posts"`
}
