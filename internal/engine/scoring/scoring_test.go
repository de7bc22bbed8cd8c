package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/SundayYogurt/placement_service/internal/domain"
	"github.com/SundayYogurt/placement_service/internal/engine/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// exactModel matches only identical (case-insensitive) strings. Keeps the
// matched/missing expectations in tests completely under control.
type exactModel struct{}

func (exactModel) Name() string { return "exact-stub" }

func (exactModel) Similarity(_ context.Context, a, b string) (float64, error) {
	if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
		return 1.0, nil
	}
	return 0.0, nil
}

type failingModel struct {
	calls int
}

func (m *failingModel) Name() string { return "failing-stub" }

func (m *failingModel) Similarity(context.Context, string, string) (float64, error) {
	m.calls++
	return 0, errors.New("model overloaded")
}

func TestSemanticMatchPartial(t *testing.T) {
	student := &domain.Student{
		ID:     "STU_1",
		Skills: domain.StringList{"Python", "React"},
	}
	drive := &domain.Drive{
		ID:             "DRIVE_1",
		RequiredSkills: domain.StringList{"Python", "React", "Docker"},
	}

	score, matched, missing, err := semanticMatch(context.Background(), exactModel{}, student, drive)
	require.NoError(t, err)

	assert.InDelta(t, 66.666, score, 0.01)
	assert.Equal(t, []string{"Python", "React"}, matched)
	assert.Equal(t, []string{"Docker"}, missing)
}

func TestSemanticMatchEmptyRequiredSkillsIsNeutral(t *testing.T) {
	student := &domain.Student{ID: "STU_1", Skills: domain.StringList{"Python"}}
	drive := &domain.Drive{ID: "DRIVE_1"}

	score, matched, missing, err := semanticMatch(context.Background(), exactModel{}, student, drive)
	require.NoError(t, err)

	assert.Equal(t, 100.0, score)
	assert.Empty(t, matched)
	assert.Empty(t, missing)
}

func TestSemanticMatchFallsBackToResumeText(t *testing.T) {
	student := &domain.Student{
		ID:         "STU_1",
		Skills:     domain.StringList{"Java"},
		ResumeText: "Docker",
	}
	drive := &domain.Drive{
		ID:             "DRIVE_1",
		RequiredSkills: domain.StringList{"Docker"},
	}

	score, matched, _, err := semanticMatch(context.Background(), exactModel{}, student, drive)
	require.NoError(t, err)

	assert.Equal(t, 100.0, score)
	assert.Equal(t, []string{"Docker"}, matched)
}

func TestProjectRelevanceNoProjects(t *testing.T) {
	student := &domain.Student{ID: "STU_1"}
	drive := &domain.Drive{ID: "DRIVE_1", JDText: "backend engineer"}

	score, err := projectRelevance(context.Background(), exactModel{}, student, drive)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestProjectRelevanceUsesJobRoleWhenJDMissing(t *testing.T) {
	student := &domain.Student{
		ID:       "STU_1",
		Projects: domain.StringList{"Backend Engineer"},
	}
	drive := &domain.Drive{ID: "DRIVE_1", JobRole: "Backend Engineer"}

	score, err := projectRelevance(context.Background(), exactModel{}, student, drive)
	require.NoError(t, err)
	assert.Equal(t, 100.0, score)
}

func TestCompletenessWeightsSumToHundred(t *testing.T) {
	full := &domain.Student{
		ID:             "STU_1",
		Skills:         domain.StringList{"a", "b", "c"},
		Projects:       domain.StringList{"p"},
		Certifications: domain.StringList{"c"},
		Phone:          "9876543210",
		ResumeText:     strings.Repeat("resume ", 20),
	}
	assert.Equal(t, 100.0, Completeness(full))

	empty := &domain.Student{ID: "STU_2"}
	assert.Equal(t, 0.0, Completeness(empty))
}

func TestCompletenessPartialSkills(t *testing.T) {
	student := &domain.Student{
		ID:     "STU_1",
		Skills: domain.StringList{"Python"},
	}
	assert.Equal(t, float64(weightSkillsPartial), Completeness(student))
}

func TestCombineWeightsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, WeightSemantic+WeightProject+WeightCompleteness, 1e-12)
}

func TestCombineBoundaries(t *testing.T) {
	top := Combine(100, 100, 100, nil, nil)
	assert.Equal(t, 100.0, top.CRSScore)

	bottom := Combine(0, 0, 0, nil, nil)
	assert.Equal(t, 0.0, bottom.CRSScore)
}

func TestCombineRoundsSubScores(t *testing.T) {
	b := Combine(66.666, 50, 80, []string{"Python"}, []string{"Docker"})

	assert.Equal(t, 66.7, b.SemanticScore)
	// 0.5*66.7 + 0.3*50 + 0.2*80 = 64.35 → 64
	assert.Equal(t, 64.0, b.CRSScore)
	assert.GreaterOrEqual(t, b.CRSScore, 0.0)
	assert.LessOrEqual(t, b.CRSScore, 100.0)
}

func TestSuggestionsPreferLowestArea(t *testing.T) {
	low := Combine(90, 90, 30, nil, nil)
	require.Len(t, low.Suggestions, 1)
	assert.Contains(t, low.Suggestions[0], "Complete your profile")

	gaps := Combine(40, 90, 90, []string{"Go"}, []string{"Docker", "Kafka", "AWS", "Terraform"})
	require.Len(t, gaps.Suggestions, 1)
	assert.Contains(t, gaps.Suggestions[0], "Docker, Kafka, AWS")
	assert.NotContains(t, gaps.Suggestions[0], "Terraform")

	weakProjects := Combine(90, 30, 90, nil, nil)
	require.Len(t, weakProjects.Suggestions, 1)
	assert.Contains(t, weakProjects.Suggestions[0], "project")

	strong := Combine(90, 90, 90, nil, nil)
	assert.Empty(t, strong.Suggestions)
}

func TestEngineScoreHappyPath(t *testing.T) {
	engine := NewEngine(exactModel{}, zap.NewNop())

	student := &domain.Student{
		ID:             "STU_1",
		Skills:         domain.StringList{"Python", "React", "SQL"},
		Projects:       domain.StringList{"Campus Portal"},
		Certifications: domain.StringList{"AWS"},
		Phone:          "9876543210",
	}
	drive := &domain.Drive{
		ID:             "DRIVE_1",
		RequiredSkills: domain.StringList{"Python", "Docker"},
		JDText:         "Campus Portal",
	}

	b, err := engine.Score(context.Background(), student, drive)
	require.NoError(t, err)

	assert.Equal(t, 50.0, b.SemanticScore)
	assert.Equal(t, 100.0, b.ProjectScore)
	assert.Equal(t, 90.0, b.CompletenessScore)
	// 0.5*50 + 0.3*100 + 0.2*90 = 73
	assert.Equal(t, 73.0, b.CRSScore)
	assert.Equal(t, []string{"Python"}, b.MatchedSkills)
	assert.Equal(t, []string{"Docker"}, b.MissingSkills)
}

func TestEngineRetriesThenGivesUp(t *testing.T) {
	model := &failingModel{}
	engine := NewEngine(model, zap.NewNop(), WithMaxAttempts(3))

	student := &domain.Student{ID: "STU_1", Skills: domain.StringList{"Python"}}
	drive := &domain.Drive{ID: "DRIVE_1", RequiredSkills: domain.StringList{"Python"}}

	_, err := engine.Score(context.Background(), student, drive)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrScoringUnavailable)
	assert.Equal(t, 3, model.calls)
}

func TestEngineScoreIsDeterministic(t *testing.T) {
	engine := NewEngine(similarity.Lexical{}, zap.NewNop())

	student := &domain.Student{
		ID:       "STU_1",
		Skills:   domain.StringList{"Go", "Kafka"},
		Projects: domain.StringList{"Streaming pipeline with Kafka"},
	}
	drive := &domain.Drive{
		ID:             "DRIVE_1",
		RequiredSkills: domain.StringList{"Go", "Kafka", "Terraform"},
		JDText:         "Streaming data platform built on Kafka",
	}

	first, err := engine.Score(context.Background(), student, drive)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := engine.Score(context.Background(), student, drive)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}
