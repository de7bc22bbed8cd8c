package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/SundayYogurt/placement_service/internal/domain"
	"github.com/SundayYogurt/placement_service/internal/engine/similarity"
)

// projectRelevance compares the concatenated project descriptions against the
// drive's JD (job role when the JD text is absent). No projects scores 0.
func projectRelevance(ctx context.Context, model similarity.Model, student *domain.Student, drive *domain.Drive) (float64, error) {
	if len(student.Projects) == 0 {
		return 0, nil
	}

	target := drive.JDText
	if strings.TrimSpace(target) == "" {
		target = drive.JobRole
	}

	sim, err := model.Similarity(ctx, strings.Join(student.Projects, " "), target)
	if err != nil {
		return 0, fmt.Errorf("project similarity: %w", err)
	}
	return clamp(sim * 100), nil
}
