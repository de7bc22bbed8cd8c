package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SundayYogurt/placement_service/internal/domain"
	"github.com/SundayYogurt/placement_service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// csvColumns is the export column order. Skills inside one cell are joined
// with "|"; encoding/csv takes care of quoting embedded commas and newlines.
var csvColumns = []string{
	"id", "timestamp", "student_id", "drive_id", "action",
	"policy_check", "ai_score", "missing_skills", "final_decision", "reasoning", "actor",
}

const csvSkillSeparator = "|"

type AuditService interface {
	// Record appends an immutable entry. It fails only when storage is
	// unavailable, never on content; a failed append must fail the
	// operation that produced the decision.
	Record(entry *domain.AuditLog) error
	Query(studentID, driveID string, limit int) ([]domain.AuditLog, error)
	// Export variants apply the same filters as Query but are never capped.
	ExportJSON(studentID, driveID string) ([]byte, error)
	ExportCSV(studentID, driveID string) ([]byte, error)
}

type auditService struct {
	repo   repository.AuditRepository
	logger *zap.Logger
}

func NewAuditService(repo repository.AuditRepository, logger *zap.Logger) AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &auditService{repo: repo, logger: logger}
}

func (s *auditService) Record(entry *domain.AuditLog) error {
	if entry == nil {
		return errors.New("nil audit entry")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Actor == "" {
		entry.Actor = domain.ActorSystem
	}
	if entry.PolicyCheck == "" {
		entry.PolicyCheck = domain.PolicyCheckNA
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	if err := s.repo.Append(entry); err != nil {
		return err
	}

	s.logger.Info("audit entry recorded",
		zap.String("action", entry.Action),
		zap.String("student_id", entry.StudentID),
		zap.String("drive_id", entry.DriveID),
		zap.String("actor", entry.Actor),
	)
	return nil
}

func (s *auditService) Query(studentID, driveID string, limit int) ([]domain.AuditLog, error) {
	return s.repo.Query(studentID, driveID, limit)
}

func (s *auditService) ExportJSON(studentID, driveID string) ([]byte, error) {
	entries, err := s.repo.Query(studentID, driveID, 0)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(entries, "", "  ")
}

func (s *auditService) ExportCSV(studentID, driveID string) ([]byte, error) {
	entries, err := s.repo.Query(studentID, driveID, 0)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvColumns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		score := ""
		if e.AIScore != nil {
			score = strconv.FormatFloat(*e.AIScore, 'f', -1, 64)
		}
		record := []string{
			e.ID,
			e.Timestamp.UTC().Format(time.RFC3339Nano),
			e.StudentID,
			e.DriveID,
			e.Action,
			e.PolicyCheck,
			score,
			strings.Join(e.MissingSkills, csvSkillSeparator),
			e.FinalDecision,
			e.Reasoning,
			e.Actor,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
