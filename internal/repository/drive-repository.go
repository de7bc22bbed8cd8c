package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/SundayYogurt/placement_service/internal/domain"
	"gorm.io/gorm"
)

type DriveRepository interface {
	CreateDrive(drive *domain.Drive) (*domain.Drive, error)
	FindDriveByID(id string) (*domain.Drive, error)
	ListDrives() ([]domain.Drive, error)
	ListDrivesByStatus(status string) ([]domain.Drive, error)
	UpdateDriveStatus(id, status string) error
	CountDrivesByStatus(status string) (int64, error)
}

type driveRepository struct {
	db *gorm.DB
}

func NewDriveRepository(db *gorm.DB) DriveRepository {
	return &driveRepository{db: db}
}

func (r *driveRepository) CreateDrive(drive *domain.Drive) (*domain.Drive, error) {
	if drive == nil {
		return nil, errors.New("nil drive")
	}

	if err := r.db.Create(drive).Error; err != nil {
		log.Printf("create drive error: %v", err)
		return nil, fmt.Errorf("%w: create drive", domain.ErrStorageUnavailable)
	}

	return drive, nil
}

func (r *driveRepository) FindDriveByID(id string) (*domain.Drive, error) {
	drive := &domain.Drive{}

	if err := r.db.First(drive, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: drive %s", domain.ErrNotFound, id)
		}
		log.Printf("find drive by id error: %v", err)
		return nil, fmt.Errorf("%w: find drive", domain.ErrStorageUnavailable)
	}

	return drive, nil
}

func (r *driveRepository) ListDrives() ([]domain.Drive, error) {
	var drives []domain.Drive
	if err := r.db.Order("created_at ASC").Find(&drives).Error; err != nil {
		log.Printf("list drives error: %v", err)
		return nil, fmt.Errorf("%w: list drives", domain.ErrStorageUnavailable)
	}
	return drives, nil
}

func (r *driveRepository) ListDrivesByStatus(status string) ([]domain.Drive, error) {
	var drives []domain.Drive
	if err := r.db.Where("status = ?", status).Order("created_at ASC").Find(&drives).Error; err != nil {
		log.Printf("list drives by status error: %v", err)
		return nil, fmt.Errorf("%w: list drives", domain.ErrStorageUnavailable)
	}
	return drives, nil
}

func (r *driveRepository) UpdateDriveStatus(id, status string) error {
	res := r.db.Model(&domain.Drive{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		log.Printf("update drive status error: %v", res.Error)
		return fmt.Errorf("%w: update drive status", domain.ErrStorageUnavailable)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: drive %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *driveRepository) CountDrivesByStatus(status string) (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Drive{}).Where("status = ?", status).Count(&count).Error; err != nil {
		log.Printf("count drives error: %v", err)
		return 0, fmt.Errorf("%w: count drives", domain.ErrStorageUnavailable)
	}
	return count, nil
}
