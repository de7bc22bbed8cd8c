package domain

import "time"

const (
	DriveStatusActive    = "active"
	DriveStatusClosed    = "closed"
	DriveStatusCompleted = "completed"
)

func IsValidDriveStatus(status string) bool {
	switch status {
	case DriveStatusActive, DriveStatusClosed, DriveStatusCompleted:
		return true
	}
	return false
}

type Drive struct {
	ID               string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CompanyName      string     `gorm:"not null" json:"company_name"`
	JobRole          string     `gorm:"not null" json:"job_role"`
	JDText           string     `gorm:"type:text" json:"jd_text"`
	RequiredSkills   StringList `gorm:"type:text" json:"required_skills"`
	MinCGPA          float64    `gorm:"default:6.0" json:"min_cgpa"`
	MaxBacklogs      int        `gorm:"default:0" json:"max_backlogs"`
	EligibleBranches StringList `gorm:"type:text" json:"eligible_branches"`
	Location         string     `json:"location"`
	PackageMin       *float64   `json:"package_min,omitempty"`
	PackageMax       *float64   `json:"package_max,omitempty"`
	DriveDate        string     `json:"drive_date"`
	Status           string     `gorm:"type:varchar(20);not null;default:active" json:"status"`
	CreatedBy        string     `json:"created_by,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
