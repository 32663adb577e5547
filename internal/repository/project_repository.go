package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/Maksonjenu/SybersTest/internal/domain"
	"gorm.io/gorm"
)

// ProjectRepository определяет интерфейс для работы с проектами
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	GetAll(ctx context.Context, search string) ([]domain.Project, error)
	SearchByName(ctx context.Context, term string) ([]domain.Project, error)
	Update(ctx context.Context, project *domain.Project, employees []domain.Employee) error
	Delete(ctx context.Context, id int64) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository создаёт новый экземпляр репозитория
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetByID загружает проект вместе с руководителем и участниками
func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Preload("Employees").
		First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// GetAll возвращает проекты, при непустом search отфильтрованные
// по подстроке в названии, заказчике или исполнителе. Сравнение
// выполняется в Go: SQL LOWER() не приводит регистр кириллицы.
func (r *projectRepository) GetAll(ctx context.Context, search string) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Preload("Employees").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(search) == "" {
		return projects, nil
	}

	lowerSearch := strings.ToLower(search)

	matched := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Name), lowerSearch) ||
			strings.Contains(strings.ToLower(p.CustomerCompany), lowerSearch) ||
			strings.Contains(strings.ToLower(p.ExecutorCompany), lowerSearch) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (r *projectRepository) SearchByName(ctx context.Context, term string) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Preload("Employees").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	lowerTerm := strings.ToLower(term)

	matched := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Name), lowerTerm) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Update в одной транзакции заменяет состав участников и сохраняет
// скалярные поля: при ошибке любого из шагов проект остаётся в прежнем
// состоянии
func (r *projectRepository) Update(ctx context.Context, project *domain.Project, employees []domain.Employee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(project).Association("Employees").Replace(&employees); err != nil {
			return err
		}
		return tx.Omit("Employees", "Manager").Save(project).Error
	})
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Select("Employees").Delete(&domain.Project{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}
