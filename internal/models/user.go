// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account. Password holds the bcrypt hash and never leaves
// the process: handlers respond with PublicUser.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Name      string    `gorm:"not null" json:"name"`
	Password  string    `gorm:"not null" json:"-"`
	IconURL   string    `json:"iconUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Posts     []Post    `gorm:"foreignKey:AuthorID" json:"-"`
}

// PublicUser is the client-facing projection of User.
type PublicUser struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	IconURL   string    `json:"iconUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the projection of u that is safe to send to clients.
func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		IconURL:   u.IconURL,
		CreatedAt: u.CreatedAt,
	}
}

// PublicUsers projects a slice of users.
func PublicUsers(users []User) []*PublicUser {
	out := make([]*PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out
}
