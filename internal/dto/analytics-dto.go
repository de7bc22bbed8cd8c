package dto

// Analytics are computed on demand from stored entities; there is no
// persisted analytics state to go stale.

type OverviewAnalytics struct {
	TotalStudents     int64   `json:"total_students"`
	ActiveDrives      int64   `json:"active_drives"`
	TotalApplications int64   `json:"total_applications"`
	Shortlisted       int64   `json:"shortlisted"`
	Rejected          int64   `json:"rejected"`
	Eligible          int64   `json:"eligible"`
	PlacementRate     float64 `json:"placement_rate"`
}

type DriveAnalytics struct {
	DriveID           string  `json:"drive_id"`
	CompanyName       string  `json:"company_name"`
	JobRole           string  `json:"job_role"`
	Status            string  `json:"status"`
	TotalApplications int64   `json:"total_applications"`
	Eligible          int64   `json:"eligible"`
	Rejected          int64   `json:"rejected"`
	Shortlisted       int64   `json:"shortlisted"`
	PlacementRate     float64 `json:"placement_rate"`
}
