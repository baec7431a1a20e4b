package models

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a registered account. The password field holds a bcrypt
// hash and is never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null;size:100" json:"username"`
	Email     string    `gorm:"unique;not null;size:200" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"not null;default:USER;size:20" json:"role"`
	CreatedAt time.Time `json:"createdAt"`

	Notes []Note `gorm:"foreignKey:UserID" json:"-"`
}
