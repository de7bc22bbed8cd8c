package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/SundayYogurt/placement_service/internal/domain"
	"github.com/SundayYogurt/placement_service/internal/dto"
	"github.com/SundayYogurt/placement_service/internal/engine/policy"
	"github.com/SundayYogurt/placement_service/internal/engine/rank"
	"github.com/SundayYogurt/placement_service/internal/engine/scoring"
	"github.com/SundayYogurt/placement_service/internal/interfaces"
	"github.com/SundayYogurt/placement_service/internal/repository"
	"github.com/SundayYogurt/placement_service/internal/skills"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PlacementService interface {
	// Students
	CreateStudent(input dto.CreateStudentRequest) (*domain.Student, error)
	GetStudent(id string) (*domain.Student, error)
	ListStudents() ([]domain.Student, error)
	UploadResume(studentID, resumeText string) (*dto.UploadResumeResponse, error)
	Eligibility(studentID string) (*dto.EligibilityResponse, error)

	// Drives
	CreateDrive(input dto.CreateDriveRequest) (*domain.Drive, error)
	GetDrive(id string) (*domain.Drive, error)
	ListDrives() ([]domain.Drive, error)
	UpdateDriveStatus(id, status string) (*domain.Drive, error)

	// Applications
	Apply(ctx context.Context, studentID, driveID string) (*dto.ApplyResponse, error)
	StudentApplications(studentID string) ([]dto.StudentApplication, error)
	Shortlist(driveID string) (*dto.ShortlistResponse, error)
	Approve(ctx context.Context, studentID, driveID, approvedBy string) (*domain.Application, error)

	// Analytics
	OverviewAnalytics() (*dto.OverviewAnalytics, error)
	DriveAnalytics(driveID string) (*dto.DriveAnalytics, error)
}

type placementService struct {
	studentRepo repository.StudentRepository
	driveRepo   repository.DriveRepository
	appRepo     repository.ApplicationRepository

	audit     AuditService
	engine    *scoring.Engine
	extractor interfaces.SkillExtractor

	// messaging
	producer interfaces.ProducerHandler

	logger *zap.Logger
}

func NewPlacementService(
	studentRepo repository.StudentRepository,
	driveRepo repository.DriveRepository,
	appRepo repository.ApplicationRepository,
	audit AuditService,
	engine *scoring.Engine,
	extractor interfaces.SkillExtractor,
	producer interfaces.ProducerHandler,
	logger *zap.Logger,
) PlacementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &placementService{
		studentRepo: studentRepo,
		driveRepo:   driveRepo,
		appRepo:     appRepo,
		audit:       audit,
		engine:      engine,
		extractor:   extractor,
		producer:    producer,
		logger:      logger,
	}
}

// STUDENTS

func (s *placementService) CreateStudent(input dto.CreateStudentRequest) (*domain.Student, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}
	if !domain.IsValidBranch(input.Branch) {
		return nil, fmt.Errorf("%w: unknown branch %q", domain.ErrValidation, input.Branch)
	}
	if input.CGPA < 0 || input.CGPA > 10 {
		return nil, fmt.Errorf("%w: cgpa must be between 0.0 and 10.0", domain.ErrValidation)
	}
	if input.ActiveBacklogs < 0 {
		return nil, fmt.Errorf("%w: active_backlogs must not be negative", domain.ErrValidation)
	}

	student := &domain.Student{
		ID:             "STU_" + uuid.NewString(),
		Name:           name,
		Email:          email,
		Branch:         input.Branch,
		CGPA:           input.CGPA,
		ActiveBacklogs: input.ActiveBacklogs,
		GraduationYear: input.GraduationYear,
		Phone:          strings.TrimSpace(input.Phone),
		Skills:         domain.StringList(input.Skills),
		Projects:       domain.StringList(input.Projects),
		Certifications: domain.StringList(input.Certifications),
		ResumeText:     input.ResumeText,
	}

	return s.studentRepo.CreateStudent(student)
}

func (s *placementService) GetStudent(id string) (*domain.Student, error) {
	return s.studentRepo.FindStudentByID(id)
}

func (s *placementService) ListStudents() ([]domain.Student, error) {
	return s.studentRepo.ListStudents()
}

func (s *placementService) UploadResume(studentID, resumeText string) (*dto.UploadResumeResponse, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("%w: resume text is required", domain.ErrValidation)
	}

	student, err := s.studentRepo.FindStudentByID(studentID)
	if err != nil {
		return nil, err
	}

	extracted := s.extractor.Extract(resumeText)
	student.ResumeText = resumeText
	student.Skills = domain.StringList(skills.Merge(student.Skills, extracted))

	if err := s.studentRepo.SaveStudent(student); err != nil {
		return nil, err
	}

	s.logger.Info("resume uploaded",
		zap.String("student_id", student.ID),
		zap.Int("extracted_skills", len(extracted)),
	)

	return &dto.UploadResumeResponse{
		ExtractedSkills: extracted,
		TotalSkills:     student.Skills,
	}, nil
}

// Eligibility previews the policy gateway against every active drive. It is
// read-only: nothing is applied and nothing is written to the audit ledger.
func (s *placementService) Eligibility(studentID string) (*dto.EligibilityResponse, error) {
	student, err := s.studentRepo.FindStudentByID(studentID)
	if err != nil {
		return nil, err
	}

	drives, err := s.driveRepo.ListDrivesByStatus(domain.DriveStatusActive)
	if err != nil {
		return nil, err
	}

	resp := &dto.EligibilityResponse{
		StudentID:   student.ID,
		Eligibility: make([]dto.DriveEligibility, 0, len(drives)),
	}
	for i := range drives {
		result := policy.Evaluate(student, &drives[i])
		resp.Eligibility = append(resp.Eligibility, dto.DriveEligibility{
			DriveID:     drives[i].ID,
			CompanyName: drives[i].CompanyName,
			JobRole:     drives[i].JobRole,
			Eligible:    result.Eligible,
			Checks:      result.Checks,
		})
	}
	return resp, nil
}

// DRIVES

func (s *placementService) CreateDrive(input dto.CreateDriveRequest) (*domain.Drive, error) {
	company := strings.TrimSpace(input.CompanyName)
	role := strings.TrimSpace(input.JobRole)

	if company == "" || role == "" {
		return nil, fmt.Errorf("%w: company_name and job_role are required", domain.ErrValidation)
	}
	if input.MinCGPA < 0 || input.MinCGPA > 10 {
		return nil, fmt.Errorf("%w: min_cgpa must be between 0.0 and 10.0", domain.ErrValidation)
	}
	if input.MaxBacklogs < 0 {
		return nil, fmt.Errorf("%w: max_backlogs must not be negative", domain.ErrValidation)
	}
	if input.PackageMin != nil && input.PackageMax != nil && *input.PackageMin > *input.PackageMax {
		return nil, fmt.Errorf("%w: package_min must not exceed package_max", domain.ErrValidation)
	}
	for _, b := range input.EligibleBranches {
		if !domain.IsValidBranch(b) {
			return nil, fmt.Errorf("%w: unknown branch %q in eligible_branches", domain.ErrValidation, b)
		}
	}

	required := input.RequiredSkills
	if len(required) == 0 && strings.TrimSpace(input.JDText) != "" {
		required = s.extractor.Extract(input.JDText)
	}

	drive := &domain.Drive{
		ID:               "DRIVE_" + uuid.NewString(),
		CompanyName:      company,
		JobRole:          role,
		JDText:           input.JDText,
		RequiredSkills:   domain.StringList(required),
		MinCGPA:          input.MinCGPA,
		MaxBacklogs:      input.MaxBacklogs,
		EligibleBranches: domain.StringList(input.EligibleBranches),
		Location:         input.Location,
		PackageMin:       input.PackageMin,
		PackageMax:       input.PackageMax,
		DriveDate:        input.DriveDate,
		Status:           domain.DriveStatusActive,
		CreatedBy:        input.CreatedBy,
	}

	return s.driveRepo.CreateDrive(drive)
}

func (s *placementService) GetDrive(id string) (*domain.Drive, error) {
	return s.driveRepo.FindDriveByID(id)
}

func (s *placementService) ListDrives() ([]domain.Drive, error) {
	return s.driveRepo.ListDrives()
}

func (s *placementService) UpdateDriveStatus(id, status string) (*domain.Drive, error) {
	if !domain.IsValidDriveStatus(status) {
		return nil, fmt.Errorf("%w: status must be one of active, closed, completed", domain.ErrValidation)
	}
	if err := s.driveRepo.UpdateDriveStatus(id, status); err != nil {
		return nil, err
	}
	return s.driveRepo.FindDriveByID(id)
}

// APPLICATIONS

// Apply runs the full decision pipeline: policy gateway first, then scoring
// only for policy-passing candidates, then the audit trail. The unique
// (student_id, drive_id) index is the concurrency gate: of N racing applies
// exactly one creates the application row and writes the audit entries; the
// rest get ErrDuplicateApplication.
func (s *placementService) Apply(ctx context.Context, studentID, driveID string) (*dto.ApplyResponse, error) {
	student, err := s.studentRepo.FindStudentByID(studentID)
	if err != nil {
		return nil, err
	}
	drive, err := s.driveRepo.FindDriveByID(driveID)
	if err != nil {
		return nil, err
	}
	if drive.Status != domain.DriveStatusActive {
		return nil, fmt.Errorf("%w: drive %s is %s and not accepting applications", domain.ErrValidation, drive.ID, drive.Status)
	}

	result := policy.Evaluate(student, drive)
	if !result.Eligible {
		return s.rejectApplication(student, drive, result)
	}

	breakdown, err := s.engine.Score(ctx, student, drive)
	if err != nil {
		// Surfaced only after the engine's retries are exhausted. No
		// application row is created, so the student can apply again once
		// scoring is back.
		s.logger.Error("scoring unavailable",
			zap.String("student_id", student.ID),
			zap.String("drive_id", drive.ID),
			zap.Error(err),
		)
		auditErr := s.audit.Record(&domain.AuditLog{
			StudentID:     student.ID,
			DriveID:       drive.ID,
			Action:        domain.AuditActionAIScored,
			PolicyCheck:   domain.PolicyCheckPassed,
			Reasoning:     "scoring unavailable",
			FinalDecision: "SCORING_FAILED",
		})
		if auditErr != nil {
			return nil, auditErr
		}
		return nil, err
	}

	return s.acceptApplication(student, drive, result, breakdown)
}

func (s *placementService) rejectApplication(student *domain.Student, drive *domain.Drive, result policy.Result) (*dto.ApplyResponse, error) {
	app := &domain.Application{
		ID:              "APP_" + uuid.NewString(),
		StudentID:       student.ID,
		DriveID:         drive.ID,
		Status:          domain.ApplicationRejected,
		PolicyPassed:    false,
		PolicyReasoning: result.Reasoning,
		MatchedSkills:   domain.StringList{},
		MissingSkills:   domain.StringList{},
	}
	if _, err := s.appRepo.CreateApplication(app); err != nil {
		return nil, err
	}

	if err := s.recordDecision(app,
		&domain.AuditLog{
			StudentID:   student.ID,
			DriveID:     drive.ID,
			Action:      domain.AuditActionApplied,
			Reasoning:   fmt.Sprintf("Student '%s' applied to %s - %s", student.Name, drive.CompanyName, drive.JobRole),
			PolicyCheck: domain.PolicyCheckNA,
		},
		&domain.AuditLog{
			StudentID:     student.ID,
			DriveID:       drive.ID,
			Action:        domain.AuditActionPolicyRejected,
			Reasoning:     result.Reasoning,
			PolicyCheck:   domain.PolicyCheckFailed,
			FinalDecision: domain.ApplicationRejected,
		},
	); err != nil {
		return nil, err
	}

	s.logger.Info("application rejected by policy",
		zap.String("student_id", student.ID),
		zap.String("drive_id", drive.ID),
	)

	return &dto.ApplyResponse{
		Status:       domain.ApplicationRejected,
		PolicyResult: &result,
	}, nil
}

func (s *placementService) acceptApplication(student *domain.Student, drive *domain.Drive, result policy.Result, breakdown *scoring.Breakdown) (*dto.ApplyResponse, error) {
	app := &domain.Application{
		ID:                "APP_" + uuid.NewString(),
		StudentID:         student.ID,
		DriveID:           drive.ID,
		Status:            domain.ApplicationEligible,
		PolicyPassed:      true,
		PolicyReasoning:   result.Reasoning,
		CRSScore:          &breakdown.CRSScore,
		SemanticScore:     &breakdown.SemanticScore,
		ProjectScore:      &breakdown.ProjectScore,
		CompletenessScore: &breakdown.CompletenessScore,
		MatchedSkills:     domain.StringList(breakdown.MatchedSkills),
		MissingSkills:     domain.StringList(breakdown.MissingSkills),
	}
	if _, err := s.appRepo.CreateApplication(app); err != nil {
		return nil, err
	}

	if err := s.recordDecision(app,
		&domain.AuditLog{
			StudentID:   student.ID,
			DriveID:     drive.ID,
			Action:      domain.AuditActionApplied,
			Reasoning:   fmt.Sprintf("Student '%s' applied to %s - %s", student.Name, drive.CompanyName, drive.JobRole),
			PolicyCheck: domain.PolicyCheckNA,
		},
		&domain.AuditLog{
			StudentID:     student.ID,
			DriveID:       drive.ID,
			Action:        domain.AuditActionAIScored,
			Reasoning:     fmt.Sprintf("%s CRS %.0f (semantic %.1f, project %.1f, completeness %.1f)", result.Reasoning, breakdown.CRSScore, breakdown.SemanticScore, breakdown.ProjectScore, breakdown.CompletenessScore),
			PolicyCheck:   domain.PolicyCheckPassed,
			AIScore:       &breakdown.CRSScore,
			MissingSkills: domain.StringList(breakdown.MissingSkills),
			FinalDecision: domain.ApplicationEligible,
		},
	); err != nil {
		return nil, err
	}

	s.publishEvent("application.scored", student.ID, drive.ID, &breakdown.CRSScore)
	s.logger.Info("application scored",
		zap.String("student_id", student.ID),
		zap.String("drive_id", drive.ID),
		zap.Float64("crs_score", breakdown.CRSScore),
	)

	return &dto.ApplyResponse{
		Status:       domain.ApplicationEligible,
		PolicyResult: &result,
		CRS:          breakdown,
	}, nil
}

// recordDecision writes the audit entries for a freshly created application.
// A decision without an audit trail must not survive, so a failed append
// rolls the application row back and fails the whole apply.
func (s *placementService) recordDecision(app *domain.Application, entries ...*domain.AuditLog) error {
	for _, entry := range entries {
		if err := s.audit.Record(entry); err != nil {
			if delErr := s.appRepo.DeleteApplication(app.ID); delErr != nil {
				s.logger.Error("failed to roll back application after audit failure",
					zap.String("application_id", app.ID),
					zap.Error(delErr),
				)
			}
			return err
		}
	}
	return nil
}

func (s *placementService) StudentApplications(studentID string) ([]dto.StudentApplication, error) {
	if _, err := s.studentRepo.FindStudentByID(studentID); err != nil {
		return nil, err
	}

	apps, err := s.appRepo.ListApplicationsByStudent(studentID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.StudentApplication, 0, len(apps))
	for _, app := range apps {
		item := dto.StudentApplication{
			ApplicationID: app.ID,
			DriveID:       app.DriveID,
			Status:        app.Status,
			CRSScore:      app.CRSScore,
			MissingSkills: app.MissingSkills,
			AppliedAt:     app.AppliedAt,
		}
		if drive, err := s.driveRepo.FindDriveByID(app.DriveID); err == nil {
			item.CompanyName = drive.CompanyName
			item.JobRole = drive.JobRole
		}
		out = append(out, item)
	}
	return out, nil
}

// Shortlist ranks every non-rejected application for the drive at read time.
// Rank is never persisted, so the ordering cannot go stale.
func (s *placementService) Shortlist(driveID string) (*dto.ShortlistResponse, error) {
	drive, err := s.driveRepo.FindDriveByID(driveID)
	if err != nil {
		return nil, err
	}

	apps, err := s.appRepo.ListApplicationsByDrive(drive.ID)
	if err != nil {
		return nil, err
	}

	ranked := rank.Applications(apps)
	resp := &dto.ShortlistResponse{
		DriveID:       drive.ID,
		TotalEligible: len(ranked),
		Candidates:    make([]dto.ShortlistCandidate, 0, len(ranked)),
	}

	for i, app := range ranked {
		candidate := dto.ShortlistCandidate{
			StudentID:         app.StudentID,
			Rank:              i + 1,
			CRSScore:          deref(app.CRSScore),
			SemanticScore:     deref(app.SemanticScore),
			ProjectScore:      deref(app.ProjectScore),
			CompletenessScore: deref(app.CompletenessScore),
			MatchedSkills:     app.MatchedSkills,
			MissingSkills:     app.MissingSkills,
			Status:            app.Status,
		}
		if student, err := s.studentRepo.FindStudentByID(app.StudentID); err == nil {
			candidate.StudentName = student.Name
			candidate.Branch = student.Branch
			candidate.CGPA = student.CGPA
		}
		resp.Candidates = append(resp.Candidates, candidate)
	}
	return resp, nil
}

// Approve advances ELIGIBLE to SHORTLISTED. REJECTED is terminal and never
// advances; approving twice is an error, not a re-transition.
func (s *placementService) Approve(ctx context.Context, studentID, driveID, approvedBy string) (*domain.Application, error) {
	app, err := s.appRepo.FindApplication(studentID, driveID)
	if err != nil {
		return nil, err
	}

	switch app.Status {
	case domain.ApplicationRejected:
		return nil, fmt.Errorf("%w: rejected application cannot be shortlisted", domain.ErrValidation)
	case domain.ApplicationShortlisted:
		return nil, fmt.Errorf("%w: application is already shortlisted", domain.ErrValidation)
	}

	actor := strings.TrimSpace(approvedBy)
	if actor == "" {
		actor = domain.ActorSystem
	}

	previous := app.Status
	app.Status = domain.ApplicationShortlisted
	app.ShortlistedBy = actor
	if err := s.appRepo.SaveApplication(app); err != nil {
		return nil, err
	}

	entry := &domain.AuditLog{
		StudentID:     studentID,
		DriveID:       driveID,
		Actor:         actor,
		Action:        domain.AuditActionShortlisted,
		Reasoning:     fmt.Sprintf("Application approved for shortlist by %s", actor),
		PolicyCheck:   domain.PolicyCheckPassed,
		AIScore:       app.CRSScore,
		FinalDecision: domain.ApplicationShortlisted,
	}
	if err := s.audit.Record(entry); err != nil {
		// No shortlist without an audit trail: put the status back.
		app.Status = previous
		app.ShortlistedBy = ""
		if revertErr := s.appRepo.SaveApplication(app); revertErr != nil {
			s.logger.Error("failed to revert shortlist after audit failure",
				zap.String("application_id", app.ID),
				zap.Error(revertErr),
			)
		}
		return nil, err
	}

	s.publishEvent("application.shortlisted", studentID, driveID, app.CRSScore)
	s.logger.Info("application shortlisted",
		zap.String("student_id", studentID),
		zap.String("drive_id", driveID),
		zap.String("actor", actor),
	)
	return app, nil
}

// ANALYTICS

func (s *placementService) OverviewAnalytics() (*dto.OverviewAnalytics, error) {
	totalStudents, err := s.studentRepo.CountStudents()
	if err != nil {
		return nil, err
	}
	activeDrives, err := s.driveRepo.CountDrivesByStatus(domain.DriveStatusActive)
	if err != nil {
		return nil, err
	}
	totalApps, err := s.appRepo.CountApplications()
	if err != nil {
		return nil, err
	}
	shortlisted, err := s.appRepo.CountApplicationsByStatus(domain.ApplicationShortlisted)
	if err != nil {
		return nil, err
	}
	rejected, err := s.appRepo.CountApplicationsByStatus(domain.ApplicationRejected)
	if err != nil {
		return nil, err
	}
	eligible, err := s.appRepo.CountApplicationsByStatus(domain.ApplicationEligible)
	if err != nil {
		return nil, err
	}

	return &dto.OverviewAnalytics{
		TotalStudents:     totalStudents,
		ActiveDrives:      activeDrives,
		TotalApplications: totalApps,
		Shortlisted:       shortlisted,
		Rejected:          rejected,
		Eligible:          eligible,
		PlacementRate:     placementRate(shortlisted, totalApps),
	}, nil
}

func (s *placementService) DriveAnalytics(driveID string) (*dto.DriveAnalytics, error) {
	drive, err := s.driveRepo.FindDriveByID(driveID)
	if err != nil {
		return nil, err
	}

	apps, err := s.appRepo.ListApplicationsByDrive(drive.ID)
	if err != nil {
		return nil, err
	}
	total := int64(len(apps))

	var eligible, rejected, shortlisted int64
	for _, app := range apps {
		switch app.Status {
		case domain.ApplicationEligible:
			eligible++
		case domain.ApplicationRejected:
			rejected++
		case domain.ApplicationShortlisted:
			shortlisted++
		}
	}

	return &dto.DriveAnalytics{
		DriveID:           drive.ID,
		CompanyName:       drive.CompanyName,
		JobRole:           drive.JobRole,
		Status:            drive.Status,
		TotalApplications: total,
		Eligible:          eligible,
		Rejected:          rejected,
		Shortlisted:       shortlisted,
		PlacementRate:     placementRate(shortlisted, total),
	}, nil
}

// helpers

func (s *placementService) publishEvent(event, studentID, driveID string, crs *float64) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"event":      event,
		"student_id": studentID,
		"drive_id":   driveID,
		"crs_score":  crs,
	})
	if err != nil {
		return
	}
	if err := s.producer.PublishMessage([]byte(driveID), payload); err != nil {
		// Notifications are best-effort; the decision itself is already
		// persisted and audited.
		s.logger.Warn("publish decision event failed",
			zap.String("event", event),
			zap.Error(err),
		)
	}
}

func placementRate(shortlisted, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(shortlisted)/float64(total)*1000) / 10
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
