// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DefaultAvatar is the sentinel avatar filename assigned at registration.
const DefaultAvatar = "default.png"

// User represents a registered author.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email     *string   `gorm:"size:150;uniqueIndex" json:"email,omitempty"`
	Password  string    `gorm:"size:150;not null" json:"-"`
	Avatar    string    `gorm:"size:200;not null;default:default.png" json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Posts     []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
	Comments  []Comment `gorm:"foreignKey:UserID" json:"-"`
}

// EmailValue returns the email or "" when unset.
func (u *User) EmailValue() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}
