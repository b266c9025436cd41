package models

import "time"

// History events.
const (
	EventView     = "view"
	EventDownload = "download"
)

// History is one view/download event by an authenticated user. Rows are
// append-only; the only read is the 15 most recent per user.
type History struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"index;not null" json:"user_id"`
	PaperID  uint      `gorm:"index;not null" json:"paper_id"`
	Event    string    `gorm:"size:10" json:"event"` // view / download
	ViewedAt time.Time `gorm:"index" json:"viewed_at"`
	Paper    Paper     `gorm:"foreignKey:PaperID;references:ID" json:"paper"`
}
