package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/Maksonjenu/SybersTest/internal/domain"
	"gorm.io/gorm"
)

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetAll(ctx context.Context) ([]domain.Employee, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Employee, error)
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id int64) error
	SearchByName(ctx context.Context, term string) ([]domain.Employee, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).First(&emp, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) GetAll(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).Find(&employees).Error
	return employees, err
}

// GetByIDs возвращает сотрудников по списку идентификаторов.
// Неизвестные идентификаторы молча пропускаются.
func (r *employeeRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var employees []domain.Employee
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	return r.db.WithContext(ctx).Omit("Projects", "ManagedProjects").Save(emp).Error
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Employee{}, id)
	if result.Error != nil {
		// Запрет БД на удаление руководителя с проектами
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return domain.ErrEmployeeIsManager
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// SearchByName сравнивает подстроки в Go: SQL LOWER() не приводит
// регистр кириллицы
func (r *employeeRepository) SearchByName(ctx context.Context, term string) ([]domain.Employee, error) {
	var employees []domain.Employee
	if err := r.db.WithContext(ctx).Find(&employees).Error; err != nil {
		return nil, err
	}

	lowerTerm := strings.ToLower(term)

	matched := make([]domain.Employee, 0, len(employees))
	for _, emp := range employees {
		if strings.Contains(strings.ToLower(emp.FirstName), lowerTerm) ||
			strings.Contains(strings.ToLower(emp.LastName), lowerTerm) ||
			strings.Contains(strings.ToLower(emp.Patronymic), lowerTerm) {
			matched = append(matched, emp)
		}
	}
	return matched, nil
}
