package dto

import "github.com/SundayYogurt/placement_service/internal/engine/policy"

type CreateStudentRequest struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Branch         string   `json:"branch"`
	CGPA           float64  `json:"cgpa"`
	ActiveBacklogs int      `json:"active_backlogs"`
	GraduationYear int      `json:"graduation_year"`
	Phone          string   `json:"phone"`
	Skills         []string `json:"skills"`
	Projects       []string `json:"projects"`
	Certifications []string `json:"certifications"`
	ResumeText     string   `json:"resume_text"`
}

type UploadResumeRequest struct {
	StudentID  string `json:"student_id"`
	ResumeText string `json:"resume_text"`
}

type UploadResumeResponse struct {
	ExtractedSkills []string `json:"extracted_skills"`
	TotalSkills     []string `json:"total_skills"`
}

type DriveEligibility struct {
	DriveID     string         `json:"drive_id"`
	CompanyName string         `json:"company_name"`
	JobRole     string         `json:"job_role"`
	Eligible    bool           `json:"eligible"`
	Checks      []policy.Check `json:"checks"`
}

type EligibilityResponse struct {
	StudentID   string             `json:"student_id"`
	Eligibility []DriveEligibility `json:"eligibility"`
}
