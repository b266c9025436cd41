package models

// Paper categories.
const (
	CategoryExam = "exam"
	CategoryKey  = "key"
)

// Paper is one distinct exam or answer-key file, keyed by filename. A row is
// created lazily the first time a file is served and frozen after that; the
// grade label is derived once from the filename.
type Paper struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FileName string `gorm:"size:150;uniqueIndex" json:"file_name"`
	Category string `gorm:"size:20" json:"category"` // exam / key
	Grade    string `gorm:"size:10" json:"grade"`
}
