package services_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/SundayYogurt/placement_service/internal/domain"
	"github.com/SundayYogurt/placement_service/internal/dto"
	"github.com/SundayYogurt/placement_service/internal/engine/scoring"
	"github.com/SundayYogurt/placement_service/internal/engine/similarity"
	"github.com/SundayYogurt/placement_service/internal/repository"
	"github.com/SundayYogurt/placement_service/internal/services"
	"github.com/SundayYogurt/placement_service/internal/skills"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// downModel simulates a similarity backend that is unreachable.
type downModel struct{}

func (downModel) Similarity(ctx context.Context, a, b string) (float64, error) {
	return 0, errors.New("model endpoint unreachable")
}

func (downModel) Name() string { return "down" }

type fixture struct {
	svc     services.PlacementService
	audit   services.AuditService
	appRepo repository.ApplicationRepository
	db      *gorm.DB
}

func newFixture(t *testing.T, model similarity.Model) *fixture {
	t.Helper()

	db := newTestDB(t)
	audit := services.NewAuditService(repository.NewAuditRepository(db), zap.NewNop())
	appRepo := repository.NewApplicationRepository(db)
	engine := scoring.NewEngine(model, zap.NewNop(), scoring.WithTimeout(5*time.Second))

	svc := services.NewPlacementService(
		repository.NewStudentRepository(db),
		repository.NewDriveRepository(db),
		appRepo,
		audit,
		engine,
		skills.NewDictionaryExtractor(),
		nil,
		zap.NewNop(),
	)
	return &fixture{svc: svc, audit: audit, appRepo: appRepo, db: db}
}

const longResume = "Final year student with internship experience building data pipelines " +
	"in Python and SQL, plus coursework projects on distributed systems and REST APIs."

func (f *fixture) createStudent(t *testing.T, req dto.CreateStudentRequest) *domain.Student {
	t.Helper()
	student, err := f.svc.CreateStudent(req)
	require.NoError(t, err)
	return student
}

func (f *fixture) createDrive(t *testing.T, req dto.CreateDriveRequest) *domain.Drive {
	t.Helper()
	drive, err := f.svc.CreateDrive(req)
	require.NoError(t, err)
	return drive
}

func strongCandidate(email string) dto.CreateStudentRequest {
	return dto.CreateStudentRequest{
		Name:           "Ananya Rao",
		Email:          email,
		Branch:         "CSE",
		CGPA:           8.2,
		ActiveBacklogs: 0,
		GraduationYear: 2026,
		Skills:         []string{"Python", "SQL", "Git"},
		Projects:       []string{"Built a data pipeline with Python and SQL"},
		Certifications: []string{"AWS Cloud Practitioner"},
		ResumeText:     longResume,
	}
}

func pythonDrive() dto.CreateDriveRequest {
	return dto.CreateDriveRequest{
		CompanyName:      "Acme Analytics",
		JobRole:          "Data Engineer",
		JDText:           "Looking for a data engineer comfortable with Python and SQL pipelines",
		RequiredSkills:   []string{"Python", "SQL"},
		MinCGPA:          7.0,
		MaxBacklogs:      0,
		EligibleBranches: []string{"CSE", "IT"},
	}
}

func TestCreateStudentValidation(t *testing.T) {
	f := newFixture(t, similarity.Lexical{})

	cases := []struct {
		name string
		req  dto.CreateStudentRequest
	}{
		{"missing name", dto.CreateStudentRequest{Email: "a@x.edu", Branch: "CSE", CGPA: 8}},
		{"bad branch", dto.CreateStudentRequest{Name: "A", Email: "a@x.edu", Branch: "BIO", CGPA: 8}},
		{"cgpa out of range", dto.CreateStudentRequest{Name: "A", Email: "a@x.edu", Branch: "CSE", CGPA: 10.5}},
		{"negative backlogs", dto.CreateStudentRequest{Name: "A", Email: "a@x.edu", Branch: "CSE", CGPA: 8, ActiveBacklogs: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CreateStudent(tc.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestApplyPolicyRejectedPath(t *testing.T) {
	f := newFixture(t, similarity.Lexical{})

	req := strongCandidate("backlog@x.edu")
	req.ActiveBacklogs = 2
	student := f.createStudent(t, req)
	drive := f.createDrive(t, pythonDrive())

	resp, err := f.svc.Apply(context.Background(), student.ID, drive.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.ApplicationRejected, resp.Status)
	require.NotNil(t, resp.PolicyResult)
	assert.False(t, resp.PolicyResult.Eligible)
	assert.Nil(t, resp.CRS, "rejected applications are never scored")

	app, err := f.appRepo.FindApplication(student.ID, drive.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationRejected, app.Status)
	assert.Nil(t, app.CRSScore)

	entries, err := f.audit.Query(student.ID, drive.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	actions := []string{entries[0].Action, entries[1].Action}
	assert.Contains(t, actions, domain.AuditActionApplied)
	assert.Contains(t, actions, domain.AuditActionPolicyRejected)
}

func TestApplyEligiblePath(t *testing.T) {
	f := newFixture(t, similarity.Lexical{})

	student := f.createStudent(t, strongCandidate("ananya@x.edu"))
	drive := f.createDrive(t, pythonDrive())

	resp, err := f.svc.Apply(context.Background(), student.ID, drive.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.ApplicationEligible, resp.Status)
	require.NotNil(t, resp.CRS)
	assert.Equal(t, 100.0, resp.CRS.SemanticScore, "exact skill matches score full marks")
	assert.ElementsMatch(t, []string{"Python", "SQL"}, resp.CRS.MatchedSkills)
	assert.Empty(t, resp.CRS.MissingSkills)
	assert.Equal(t, math.Trunc(resp.CRS.CRSScore), resp.CRS.CRSScore, "CRS is a whole number")

	app, err := f.appRepo.FindApplication(student.ID, drive.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationEligible, app.Status)
	require.NotNil(t, app.CRSScore)
	assert.Equal(t, resp.CRS.CRSScore, *app.CRSScore)

	entries, err := f.audit.Query(student.ID, drive.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	scored := entries[0]
	if scored.Action != domain.AuditActionAIScored {
		scored = entries[1]
	}
	require.Equal(t, domain.AuditActionAIScored, scored.Action)
	require.NotNil(t, scored.AIScore)
	assert.Equal(t, resp.CRS.CRSScore, *scored.AIScore)
	assert.Equal(t, domain.PolicyCheckPassed, scored.PolicyCheck)
}

func TestApplyDuplicateBlocked(t *testing.T) {
	f := newFixture(t, similarity.Lexical{})

	student := f.createStudent(t, strongCandidate("dup@x.edu"))
	drive := f.createDrive(t, pythonDrive())

	_, err := f.svc.Apply(context.Background(), student.ID, drive.ID)
	require.NoError(t, err)

	_, err = f.svc.Apply(context.Background(), student.ID, drive.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicateApplication)
}

func TestApplyRejectedApplicationBlocksReapply(t *testing.T) {
	f := newFixture(t, similarity.Lexical{})

	req := strongCandidate("rejected@x.edu")
	req.CGPA = 6.0
	student := f.createStudent(t, req)
	drive := f.createDrive(t, pythonDrive())

	resp, err := f.svc.Apply(context.Background(), student.ID, drive.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ApplicationRejected, resp.Status)

	_, err = f.svc.Apply(context.Background(), student.ID, drive.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicateApplication)
}

func TestApplyConcurrentDuplicates(t *testing.T) {
	f := newFixture(t, similarity.Lexical{})

	student := f.createStudent(t, strongCandidate("race@x.edu"))
	drive := f.createDrive(t, pythonDrive())

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Apply(context.Background(), student.ID, drive.ID)
		}(i)
	}
	wg.Wait()

	var successes, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrDuplicateApplication):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one racing apply may win")
	assert.Equal(t, workers-1, duplicates)

	entries, err := f.audit.Query(student.ID, drive.ID, 100)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "losers must not leave audit entries")
}

func TestApplyClosedDriveRejected(t *testing.T) {
	f := newFixture(t, similarity.Lexical{})

	student := f.createStudent(t, strongCandidate("closed@x.edu"))
	drive := f.createDrive(t, pythonDrive())

	_, err := f.svc.UpdateDriveStatus(drive.ID, domain.DriveStatusClosed)
	require.NoError(t, err)

	_, err = f.svc.Apply(context.Background(), student.ID, drive.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestApplyScoringUnavailable(t *testing.T) {
	f := newFixture(t, downModel{})

	student := f.createStudent(t, strongCandidate("down@x.edu"))
	drive := f.createDrive(t, pythonDrive())

	_, err := f.svc.Apply(context.Background(), student.ID, drive.ID)
	assert.ErrorIs(t, err, domain.ErrScoringUnavailable)

	// No application row, so the student can retry once scoring is back.
	_, err = f.appRepo.FindApplication(student.ID, drive.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	entries, err := f.audit.Query(student.ID, drive.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditActionAIScored, entries[0].Action)
	assert.Equal(t, "SCORING_FAILED", entries[0].FinalDecision)
}

func TestApplyUnknownStudentOrDrive(t *testing.T) {
	f := newFixture(t, similarity.Lexical{})
	drive := f.createDrive(t, pythonDrive())

	_, err := f.svc.Apply(context.Background(), "STU_missing", drive.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	student := f.createStudent(t, strongCandidate("nodrive@x.edu"))
	_, err = f.svc.Apply(context.Background(), student.ID, "DRIVE_missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApproveTransitions(t *testing.T) {
	f := newFixture(t, similarity.Lexical{})

	student := f.createStudent(t, strongCandidate("approve@x.edu"))
	drive := f.createDrive(t, pythonDrive())

	_, err := f.svc.Apply(context.Background(), student.ID, drive.ID)
	require.NoError(t, err)

	app, err := f.svc.Approve(context.Background(), student.ID, drive.ID, "tpo_officer")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationShortlisted, app.Status)
	assert.Equal(t, "tpo_officer", app.ShortlistedBy)

	// Approving twice is an error, not a re-transition.
	_, err = f.svc.Approve(context.Background(), student.ID, drive.ID, "tpo_officer")
	assert.ErrorIs(t, err, domain.ErrValidation)

	entries, err := f.audit.Query(student.ID, drive.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.AuditActionShortlisted, entries[0].Action)
	assert.Equal(t, "tpo_officer", entries[0].Actor)
}

func TestApproveRejectedApplicationFails(t *testing.T) {
	f := newFixture(t, similarity.Lexical{})

	req := strongCandidate("noapprove@x.edu")
	req.ActiveBacklogs = 3
	student := f.createStudent(t, req)
	drive := f.createDrive(t, pythonDrive())

	_, err := f.svc.Apply(context.Background(), student.ID, drive.ID)
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), student.ID, drive.ID, "tpo_officer")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUploadResumeMergesSkills(t *testing.T) {
	f := newFixture(t, similarity.Lexical{})

	req := strongCandidate("resume@x.edu")
	req.Skills = []string{"Python"}
	req.ResumeText = ""
	student := f.createStudent(t, req)

	resp, err := f.svc.UploadResume(student.ID, "Internship work with python, Docker and Kubernetes deployments")
	require.NoError(t, err)

	assert.Contains(t, resp.ExtractedSkills, "Docker")
	assert.Contains(t, resp.ExtractedSkills, "Kubernetes")

	updated, err := f.svc.GetStudent(student.ID)
	require.NoError(t, err)
	assert.Equal(t, "Python", updated.Skills[0], "existing skills keep their position")
	assert.Contains(t, []string(updated.Skills), "Docker")

	count := 0
	for _, s := range updated.Skills {
		if s == "Python" {
			count++
		}
	}
	assert.Equal(t, 1, count, "merge must not duplicate case-insensitive matches")
}

func TestUploadResumeRequiresText(t *testing.T) {
	f := newFixture(t, similarity.Lexical{})
	student := f.createStudent(t, strongCandidate("blank@x.edu"))

	_, err := f.svc.UploadResume(student.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateDriveExtractsSkillsFromJD(t *testing.T) {
	f := newFixture(t, similarity.Lexical{})

	req := pythonDrive()
	req.RequiredSkills = nil
	req.JDText = "Backend role working with Go, PostgreSQL and Kafka"
	drive := f.createDrive(t, req)

	assert.Contains(t, []string(drive.RequiredSkills), "Postgresql")
	assert.Contains(t, []string(drive.RequiredSkills), "Kafka")
}

func TestEligibilityPreviewsActiveDrivesOnly(t *testing.T) {
	f := newFixture(t, similarity.Lexical{})

	student := f.createStudent(t, strongCandidate("preview@x.edu"))
	active := f.createDrive(t, pythonDrive())

	closedReq := pythonDrive()
	closedReq.CompanyName = "Closed Corp"
	closed := f.createDrive(t, closedReq)
	_, err := f.svc.UpdateDriveStatus(closed.ID, domain.DriveStatusClosed)
	require.NoError(t, err)

	resp, err := f.svc.Eligibility(student.ID)
	require.NoError(t, err)
	require.Len(t, resp.Eligibility, 1)
	assert.Equal(t, active.ID, resp.Eligibility[0].DriveID)
	assert.True(t, resp.Eligibility[0].Eligible)
	assert.Len(t, resp.Eligibility[0].Checks, 3)

	// Pure preview: no application rows and no audit entries.
	entries, err := f.audit.Query(student.ID, "", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestShortlistRanksCurrentState(t *testing.T) {
	f := newFixture(t, similarity.Lexical{})
	drive := f.createDrive(t, pythonDrive())

	strong := f.createStudent(t, strongCandidate("strong@x.edu"))

	weakReq := strongCandidate("weak@x.edu")
	weakReq.Name = "Weak Match"
	weakReq.Skills = []string{"Java"}
	weakReq.Projects = nil
	weakReq.Certifications = nil
	weakReq.ResumeText = ""
	weak := f.createStudent(t, weakReq)

	rejectedReq := strongCandidate("reject@x.edu")
	rejectedReq.CGPA = 5.0
	rejected := f.createStudent(t, rejectedReq)

	for _, id := range []string{strong.ID, weak.ID, rejected.ID} {
		_, err := f.svc.Apply(context.Background(), id, drive.ID)
		require.NoError(t, err)
	}

	resp, err := f.svc.Shortlist(drive.ID)
	require.NoError(t, err)

	require.Len(t, resp.Candidates, 2, "rejected applications never rank")
	assert.Equal(t, 2, resp.TotalEligible)
	assert.Equal(t, strong.ID, resp.Candidates[0].StudentID)
	assert.Equal(t, 1, resp.Candidates[0].Rank)
	assert.Equal(t, weak.ID, resp.Candidates[1].StudentID)
	assert.Greater(t, resp.Candidates[0].CRSScore, resp.Candidates[1].CRSScore)
	assert.Equal(t, "Ananya Rao", resp.Candidates[0].StudentName)
}

func TestStudentApplicationsListsHistory(t *testing.T) {
	f := newFixture(t, similarity.Lexical{})

	student := f.createStudent(t, strongCandidate("history@x.edu"))
	first := f.createDrive(t, pythonDrive())

	secondReq := pythonDrive()
	secondReq.CompanyName = "Beta Systems"
	second := f.createDrive(t, secondReq)

	for _, driveID := range []string{first.ID, second.ID} {
		_, err := f.svc.Apply(context.Background(), student.ID, driveID)
		require.NoError(t, err)
	}

	apps, err := f.svc.StudentApplications(student.ID)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	companies := []string{apps[0].CompanyName, apps[1].CompanyName}
	assert.Contains(t, companies, "Acme Analytics")
	assert.Contains(t, companies, "Beta Systems")
}

func TestAnalyticsCounts(t *testing.T) {
	f := newFixture(t, similarity.Lexical{})
	drive := f.createDrive(t, pythonDrive())

	placed := f.createStudent(t, strongCandidate("placed@x.edu"))
	_, err := f.svc.Apply(context.Background(), placed.ID, drive.ID)
	require.NoError(t, err)
	_, err = f.svc.Approve(context.Background(), placed.ID, drive.ID, "tpo")
	require.NoError(t, err)

	rejectedReq := strongCandidate("out@x.edu")
	rejectedReq.ActiveBacklogs = 4
	rejected := f.createStudent(t, rejectedReq)
	_, err = f.svc.Apply(context.Background(), rejected.ID, drive.ID)
	require.NoError(t, err)

	overview, err := f.svc.OverviewAnalytics()
	require.NoError(t, err)
	assert.Equal(t, int64(2), overview.TotalStudents)
	assert.Equal(t, int64(1), overview.ActiveDrives)
	assert.Equal(t, int64(2), overview.TotalApplications)
	assert.Equal(t, int64(1), overview.Shortlisted)
	assert.Equal(t, int64(1), overview.Rejected)
	assert.Equal(t, int64(0), overview.Eligible)
	assert.Equal(t, 50.0, overview.PlacementRate)

	perDrive, err := f.svc.DriveAnalytics(drive.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), perDrive.TotalApplications)
	assert.Equal(t, int64(1), perDrive.Shortlisted)
	assert.Equal(t, int64(1), perDrive.Rejected)
	assert.Equal(t, 50.0, perDrive.PlacementRate)
}
