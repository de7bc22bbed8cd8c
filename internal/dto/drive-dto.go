package dto

type CreateDriveRequest struct {
	CompanyName      string   `json:"company_name"`
	JobRole          string   `json:"job_role"`
	JDText           string   `json:"jd_text"`
	RequiredSkills   []string `json:"required_skills"`
	MinCGPA          float64  `json:"min_cgpa"`
	MaxBacklogs      int      `json:"max_backlogs"`
	EligibleBranches []string `json:"eligible_branches"`
	Location         string   `json:"location"`
	PackageMin       *float64 `json:"package_min"`
	PackageMax       *float64 `json:"package_max"`
	DriveDate        string   `json:"drive_date"`
	CreatedBy        string   `json:"created_by"`
}
