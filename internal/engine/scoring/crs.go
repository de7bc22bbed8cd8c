package scoring

import (
	"fmt"
	"math"
	"strings"
)

// CRS weights. Fixed for every drive; they must sum to 1.0.
const (
	WeightSemantic     = 0.5
	WeightProject      = 0.3
	WeightCompleteness = 0.2
)

const maxSuggestedSkills = 3

type Breakdown struct {
	CRSScore          float64  `json:"crs_score"`
	SemanticScore     float64  `json:"semantic_score"`
	ProjectScore      float64  `json:"project_score"`
	CompletenessScore float64  `json:"completeness_score"`
	MatchedSkills     []string `json:"matched_skills"`
	MissingSkills     []string `json:"missing_skills"`
	Suggestions       []string `json:"improvement_suggestions"`
}

// Combine folds the three sub-scores into the final CRS. Sub-scores are kept
// to one decimal; the CRS itself is rounded to a whole number in [0,100].
func Combine(semantic, project, completeness float64, matched, missing []string) *Breakdown {
	semantic = round1(clamp(semantic))
	project = round1(clamp(project))
	completeness = round1(clamp(completeness))

	crs := WeightSemantic*semantic + WeightProject*project + WeightCompleteness*completeness

	return &Breakdown{
		CRSScore:          clamp(math.Round(crs)),
		SemanticScore:     semantic,
		ProjectScore:      project,
		CompletenessScore: completeness,
		MatchedSkills:     matched,
		MissingSkills:     missing,
		Suggestions:       suggestions(semantic, project, completeness, missing),
	}
}

// suggestions picks one improvement hint from the weakest area: profile
// completeness first, then skill gaps, then project relevance.
func suggestions(semantic, project, completeness float64, missing []string) []string {
	switch {
	case completeness < 70:
		return []string{"Complete your profile: add skills, projects, certifications and contact details"}
	case semantic < 60 && len(missing) > 0:
		top := missing
		if len(top) > maxSuggestedSkills {
			top = top[:maxSuggestedSkills]
		}
		return []string{fmt.Sprintf("Learn missing skills: %s", strings.Join(top, ", "))}
	case project < 50:
		return []string{"Add a project relevant to the roles you are targeting"}
	}
	return []string{}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
