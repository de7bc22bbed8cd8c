package domain

import "time"

// Branches students can belong to. Drives reference the same codes.
var ValidBranches = []string{"CSE", "IT", "ECE", "EEE", "MECH", "CIVIL", "MCA"}

func IsValidBranch(branch string) bool {
	for _, b := range ValidBranches {
		if b == branch {
			return true
		}
	}
	return false
}

type Student struct {
	ID             string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name           string     `gorm:"not null" json:"name"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	Branch         string     `gorm:"type:varchar(20);not null" json:"branch"`
	CGPA           float64    `json:"cgpa"`
	ActiveBacklogs int        `gorm:"default:0" json:"active_backlogs"`
	GraduationYear int        `json:"graduation_year"`
	Phone          string     `json:"phone"`
	Skills         StringList `gorm:"type:text" json:"skills"`
	Projects       StringList `gorm:"type:text" json:"projects"`
	Certifications StringList `gorm:"type:text" json:"certifications"`
	ResumeText     string     `gorm:"type:text" json:"resume_text,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
