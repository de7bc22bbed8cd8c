package scoring

import (
	"context"
	"fmt"

	"github.com/SundayYogurt/placement_service/internal/domain"
	"github.com/SundayYogurt/placement_service/internal/engine/similarity"
)

// SimilarityThreshold is the cutoff above which a required skill counts as
// matched. 0.6 lets exact and substring-level matches through while keeping
// loose token overlap out.
const SimilarityThreshold = 0.6

// semanticMatch scores the student's skills against the drive's required
// skills. Each required skill takes the max similarity over every student
// skill plus, when present, the resume text. Empty required_skills scores a
// neutral 100: there is nothing to mismatch.
func semanticMatch(ctx context.Context, model similarity.Model, student *domain.Student, drive *domain.Drive) (float64, []string, []string, error) {
	matched := []string{}
	missing := []string{}

	if len(drive.RequiredSkills) == 0 {
		return 100, matched, missing, nil
	}

	for _, required := range drive.RequiredSkills {
		best := 0.0
		for _, skill := range student.Skills {
			sim, err := model.Similarity(ctx, required, skill)
			if err != nil {
				return 0, nil, nil, fmt.Errorf("similarity %q vs %q: %w", required, skill, err)
			}
			if sim > best {
				best = sim
			}
		}
		if best <= SimilarityThreshold && student.ResumeText != "" {
			sim, err := model.Similarity(ctx, required, student.ResumeText)
			if err != nil {
				return 0, nil, nil, fmt.Errorf("similarity %q vs resume: %w", required, err)
			}
			if sim > best {
				best = sim
			}
		}
		if best > SimilarityThreshold {
			matched = append(matched, required)
		} else {
			missing = append(missing, required)
		}
	}

	score := 100 * float64(len(matched)) / float64(len(drive.RequiredSkills))
	return clamp(score), matched, missing, nil
}
