package domain

import "time"

const (
	ApplicationRejected    = "REJECTED"
	ApplicationEligible    = "ELIGIBLE"
	ApplicationShortlisted = "SHORTLISTED"
)

// Application is keyed by the (student_id, drive_id) pair: the unique index is
// what makes apply() at-most-once under concurrent requests.
type Application struct {
	ID                string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	StudentID         string     `gorm:"uniqueIndex:uidx_app_student_drive;not null" json:"student_id"`
	DriveID           string     `gorm:"uniqueIndex:uidx_app_student_drive;not null" json:"drive_id"`
	Status            string     `gorm:"type:varchar(20);not null" json:"status"`
	PolicyPassed      bool       `json:"policy_passed"`
	PolicyReasoning   string     `gorm:"type:text" json:"policy_reasoning,omitempty"`
	CRSScore          *float64   `json:"crs_score,omitempty"`
	SemanticScore     *float64   `json:"semantic_score,omitempty"`
	ProjectScore      *float64   `json:"project_score,omitempty"`
	CompletenessScore *float64   `json:"completeness_score,omitempty"`
	MatchedSkills     StringList `gorm:"type:text" json:"matched_skills"`
	MissingSkills     StringList `gorm:"type:text" json:"missing_skills"`
	ShortlistedBy     string     `json:"shortlisted_by,omitempty"`
	AppliedAt         time.Time  `gorm:"autoCreateTime;index" json:"applied_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
