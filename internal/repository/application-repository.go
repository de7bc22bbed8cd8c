package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/SundayYogurt/placement_service/internal/domain"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	// CreateApplication relies on the unique (student_id, drive_id) index to
	// make apply() at-most-once: the loser of a concurrent race gets
	// domain.ErrDuplicateApplication.
	CreateApplication(app *domain.Application) (*domain.Application, error)
	FindApplication(studentID, driveID string) (*domain.Application, error)
	ListApplicationsByDrive(driveID string) ([]domain.Application, error)
	ListApplicationsByStudent(studentID string) ([]domain.Application, error)
	SaveApplication(app *domain.Application) error
	DeleteApplication(id string) error
	CountApplications() (int64, error)
	CountApplicationsByStatus(status string) (int64, error)
	CountApplicationsByDriveAndStatus(driveID, status string) (int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) CreateApplication(app *domain.Application) (*domain.Application, error) {
	if app == nil {
		return nil, errors.New("nil application")
	}

	if err := r.db.Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateApplication
		}
		log.Printf("create application error: %v", err)
		return nil, fmt.Errorf("%w: create application", domain.ErrStorageUnavailable)
	}

	return app, nil
}

func (r *applicationRepository) FindApplication(studentID, driveID string) (*domain.Application, error) {
	app := &domain.Application{}

	err := r.db.Where("student_id = ? AND drive_id = ?", studentID, driveID).First(app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: application for student %s and drive %s", domain.ErrNotFound, studentID, driveID)
		}
		log.Printf("find application error: %v", err)
		return nil, fmt.Errorf("%w: find application", domain.ErrStorageUnavailable)
	}

	return app, nil
}

func (r *applicationRepository) ListApplicationsByDrive(driveID string) ([]domain.Application, error) {
	var apps []domain.Application
	if err := r.db.Where("drive_id = ?", driveID).Find(&apps).Error; err != nil {
		log.Printf("list applications by drive error: %v", err)
		return nil, fmt.Errorf("%w: list applications", domain.ErrStorageUnavailable)
	}
	return apps, nil
}

func (r *applicationRepository) ListApplicationsByStudent(studentID string) ([]domain.Application, error) {
	var apps []domain.Application
	if err := r.db.Where("student_id = ?", studentID).Order("applied_at DESC").Find(&apps).Error; err != nil {
		log.Printf("list applications by student error: %v", err)
		return nil, fmt.Errorf("%w: list applications", domain.ErrStorageUnavailable)
	}
	return apps, nil
}

func (r *applicationRepository) SaveApplication(app *domain.Application) error {
	if app == nil {
		return errors.New("nil application")
	}

	if err := r.db.Save(app).Error; err != nil {
		log.Printf("save application error: %v", err)
		return fmt.Errorf("%w: save application", domain.ErrStorageUnavailable)
	}
	return nil
}

func (r *applicationRepository) DeleteApplication(id string) error {
	if err := r.db.Delete(&domain.Application{}, "id = ?", id).Error; err != nil {
		log.Printf("delete application error: %v", err)
		return fmt.Errorf("%w: delete application", domain.ErrStorageUnavailable)
	}
	return nil
}

func (r *applicationRepository) CountApplications() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Application{}).Count(&count).Error; err != nil {
		log.Printf("count applications error: %v", err)
		return 0, fmt.Errorf("%w: count applications", domain.ErrStorageUnavailable)
	}
	return count, nil
}

func (r *applicationRepository) CountApplicationsByStatus(status string) (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Application{}).Where("status = ?", status).Count(&count).Error; err != nil {
		log.Printf("count applications by status error: %v", err)
		return 0, fmt.Errorf("%w: count applications", domain.ErrStorageUnavailable)
	}
	return count, nil
}

func (r *applicationRepository) CountApplicationsByDriveAndStatus(driveID, status string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Application{}).
		Where("drive_id = ? AND status = ?", driveID, status).
		Count(&count).Error
	if err != nil {
		log.Printf("count applications by drive error: %v", err)
		return 0, fmt.Errorf("%w: count applications", domain.ErrStorageUnavailable)
	}
	return count, nil
}
