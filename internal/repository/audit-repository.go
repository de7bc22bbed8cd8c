package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/SundayYogurt/placement_service/internal/domain"
	"gorm.io/gorm"
)

// AuditRepository is the only component that writes audit entries. Append
// is the only write it supports; entries are never updated or deleted.
type AuditRepository interface {
	Append(entry *domain.AuditLog) error
	// Query returns entries most recent first. limit <= 0 means no limit
	// (used by export, which must be complete).
	Query(studentID, driveID string, limit int) ([]domain.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Append(entry *domain.AuditLog) error {
	if entry == nil {
		return errors.New("nil audit entry")
	}

	if err := r.db.Create(entry).Error; err != nil {
		log.Printf("append audit entry error: %v", err)
		return fmt.Errorf("%w: append audit entry", domain.ErrStorageUnavailable)
	}
	return nil
}

func (r *auditRepository) Query(studentID, driveID string, limit int) ([]domain.AuditLog, error) {
	q := r.db.Model(&domain.AuditLog{})
	if studentID != "" {
		q = q.Where("student_id = ?", studentID)
	}
	if driveID != "" {
		q = q.Where("drive_id = ?", driveID)
	}
	q = q.Order("timestamp DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var entries []domain.AuditLog
	if err := q.Find(&entries).Error; err != nil {
		log.Printf("query audit entries error: %v", err)
		return nil, fmt.Errorf("%w: query audit entries", domain.ErrStorageUnavailable)
	}
	return entries, nil
}
