package entities

import "time"

type User struct {
	UserID       string    `gorm:"primaryKey" json:"user_id"` // uuid
	Username     string    `gorm:"uniqueIndex" json:"username"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`
}
