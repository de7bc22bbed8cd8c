// Package rank orders scored applications for a drive. Rank is a read-time
// projection: nothing here is persisted, so the ordering can never go stale
// relative to new applications.
package rank

import (
	"sort"

	"github.com/SundayYogurt/placement_service/internal/domain"
)

// Applications returns a sorted copy of the non-REJECTED applications with
// ranks assigned 1..N. Order: crs_score descending, then applied_at ascending
// (earlier applicant wins), then student_id ascending for a strict total
// order.
func Applications(apps []domain.Application) []domain.Application {
	ranked := make([]domain.Application, 0, len(apps))
	for _, a := range apps {
		if a.Status == domain.ApplicationRejected {
			continue
		}
		ranked = append(ranked, a)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := score(ranked[i]), score(ranked[j])
		if si != sj {
			return si > sj
		}
		if !ranked[i].AppliedAt.Equal(ranked[j].AppliedAt) {
			return ranked[i].AppliedAt.Before(ranked[j].AppliedAt)
		}
		return ranked[i].StudentID < ranked[j].StudentID
	})

	return ranked
}

func score(a domain.Application) float64 {
	if a.CRSScore == nil {
		return 0
	}
	return *a.CRSScore
}
