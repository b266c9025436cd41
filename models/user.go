package models

import "time"

// User is an account created at signup. Rows are never updated or deleted
// by the application.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"size:100" json:"name"`
	PasswordHash string    `gorm:"size:200;not null" json:"-"`
	History      []History `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
