package scoring

import "github.com/SundayYogurt/placement_service/internal/domain"

// Completeness checklist weights. They sum to exactly 100 when everything is
// present; a thin skill list (1-2 entries) earns half the skill share.
const (
	weightSkillsFull    = 30
	weightSkillsPartial = 15
	weightProjects      = 30
	weightCerts         = 20
	weightPhone         = 10
	weightResume        = 10

	minSkillsForFull = 3
	minResumeLength  = 100
)

// Completeness is a pure checklist over the student's profile fields, no
// model dependency.
func Completeness(student *domain.Student) float64 {
	score := 0.0
	switch {
	case len(student.Skills) >= minSkillsForFull:
		score += weightSkillsFull
	case len(student.Skills) > 0:
		score += weightSkillsPartial
	}
	if len(student.Projects) >= 1 {
		score += weightProjects
	}
	if len(student.Certifications) >= 1 {
		score += weightCerts
	}
	if student.Phone != "" {
		score += weightPhone
	}
	if len(student.ResumeText) > minResumeLength {
		score += weightResume
	}
	return score
}
