package models

// TutorApplication is one submission of the become-a-tutor form. Created once,
// never updated or deleted; readable in bulk via the tutors API.
type TutorApplication struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:255;not null" json:"name"`
	Location      string `gorm:"size:255;not null" json:"location"`
	School        string `gorm:"size:255;not null" json:"school"`
	HourlyRate    string `gorm:"size:50;not null" json:"hourly_rate"`
	Experience    string `gorm:"size:255;not null" json:"experience"`
	ClassesTaught string `gorm:"size:255;not null" json:"classes_taught"`
	Phone         string `gorm:"size:50" json:"phone"`
	Email         string `gorm:"size:255;not null" json:"email"`
	CVBio         string `gorm:"column:cv_bio;type:text" json:"cv_bio"`
	ProfileBio    string `gorm:"type:text;not null" json:"profile_bio"`
}
