package dto

import (
	"time"

	"github.com/SundayYogurt/placement_service/internal/engine/policy"
	"github.com/SundayYogurt/placement_service/internal/engine/scoring"
)

type ApplyRequest struct {
	StudentID string `json:"student_id"`
	DriveID   string `json:"drive_id"`
}

type ApplyResponse struct {
	Status       string             `json:"status"`
	PolicyResult *policy.Result     `json:"policy_result,omitempty"`
	CRS          *scoring.Breakdown `json:"crs,omitempty"`
}

type ApproveRequest struct {
	StudentID  string `json:"student_id"`
	DriveID    string `json:"drive_id"`
	ApprovedBy string `json:"approved_by"`
}

type ShortlistCandidate struct {
	StudentID         string   `json:"student_id"`
	StudentName       string   `json:"student_name"`
	Branch            string   `json:"branch"`
	CGPA              float64  `json:"cgpa"`
	Rank              int      `json:"rank"`
	CRSScore          float64  `json:"crs_score"`
	SemanticScore     float64  `json:"semantic_score"`
	ProjectScore      float64  `json:"project_score"`
	CompletenessScore float64  `json:"completeness_score"`
	MatchedSkills     []string `json:"matched_skills"`
	MissingSkills     []string `json:"missing_skills"`
	Status            string   `json:"status"`
}

type ShortlistResponse struct {
	DriveID       string               `json:"drive_id"`
	TotalEligible int                  `json:"total_eligible"`
	Candidates    []ShortlistCandidate `json:"candidates"`
}

type StudentApplication struct {
	ApplicationID string    `json:"application_id"`
	DriveID       string    `json:"drive_id"`
	CompanyName   string    `json:"company_name"`
	JobRole       string    `json:"job_role"`
	Status        string    `json:"status"`
	CRSScore      *float64  `json:"crs_score,omitempty"`
	MissingSkills []string  `json:"missing_skills"`
	AppliedAt     time.Time `json:"applied_at"`
}
