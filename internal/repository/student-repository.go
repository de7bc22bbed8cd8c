package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/SundayYogurt/placement_service/internal/domain"
	"gorm.io/gorm"
)

type StudentRepository interface {
	CreateStudent(student *domain.Student) (*domain.Student, error)
	FindStudentByID(id string) (*domain.Student, error)
	ListStudents() ([]domain.Student, error)
	SaveStudent(student *domain.Student) error
	CountStudents() (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) CreateStudent(student *domain.Student) (*domain.Student, error) {
	if student == nil {
		return nil, errors.New("nil student")
	}

	if err := r.db.Create(student).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", domain.ErrValidation)
		}
		log.Printf("create student error: %v", err)
		return nil, fmt.Errorf("%w: create student", domain.ErrStorageUnavailable)
	}

	return student, nil
}

func (r *studentRepository) FindStudentByID(id string) (*domain.Student, error) {
	student := &domain.Student{}

	if err := r.db.First(student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: student %s", domain.ErrNotFound, id)
		}
		log.Printf("find student by id error: %v", err)
		return nil, fmt.Errorf("%w: find student", domain.ErrStorageUnavailable)
	}

	return student, nil
}

func (r *studentRepository) ListStudents() ([]domain.Student, error) {
	var students []domain.Student
	if err := r.db.Order("created_at ASC").Find(&students).Error; err != nil {
		log.Printf("list students error: %v", err)
		return nil, fmt.Errorf("%w: list students", domain.ErrStorageUnavailable)
	}
	return students, nil
}

func (r *studentRepository) SaveStudent(student *domain.Student) error {
	if student == nil {
		return errors.New("nil student")
	}

	if err := r.db.Save(student).Error; err != nil {
		log.Printf("save student error: %v", err)
		return fmt.Errorf("%w: save student", domain.ErrStorageUnavailable)
	}
	return nil
}

func (r *studentRepository) CountStudents() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Student{}).Count(&count).Error; err != nil {
		log.Printf("count students error: %v", err)
		return 0, fmt.Errorf("%w: count students", domain.ErrStorageUnavailable)
	}
	return count, nil
}
