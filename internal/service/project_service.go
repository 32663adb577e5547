package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/Maksonjenu/SybersTest/internal/domain"
	"github.com/Maksonjenu/SybersTest/internal/dto"
	"github.com/Maksonjenu/SybersTest/internal/repository"
	"github.com/Maksonjenu/SybersTest/internal/storage"
)

const dateLayout = "2006-01-02"

// Подпись руководителя в списке проектов, когда он не назначен
const managerNotAssigned = "Not Assigned"

// ProjectService определяет интерфейс бизнес-логики для проектов
type ProjectService interface {
	GetAll(ctx context.Context, search string) ([]dto.ProjectListItemDto, error)
	SearchByName(ctx context.Context, term string) ([]dto.ProjectListItemDto, error)
	GetByID(ctx context.Context, id int64) (*dto.ProjectFormDto, error)
	Create(ctx context.Context, req *dto.ProjectFormDto) error
	Update(ctx context.Context, id int64, req *dto.ProjectFormDto) error
	Delete(ctx context.Context, id int64) error
}

type projectService struct {
	projRepo repository.ProjectRepository
	empRepo  repository.EmployeeRepository
	files    *storage.FileStore
}

// NewProjectService создаёт новый экземпляр сервиса
func NewProjectService(
	projRepo repository.ProjectRepository,
	empRepo repository.EmployeeRepository,
	files *storage.FileStore,
) ProjectService {
	return &projectService{
		projRepo: projRepo,
		empRepo:  empRepo,
		files:    files,
	}
}

func (s *projectService) GetAll(ctx context.Context, search string) ([]dto.ProjectListItemDto, error) {
	projects, err := s.projRepo.GetAll(ctx, search)
	if err != nil {
		return nil, err
	}
	return toProjectListItems(projects), nil
}

// SearchByName ищет только по названию проекта
func (s *projectService) SearchByName(ctx context.Context, term string) ([]dto.ProjectListItemDto, error) {
	projects, err := s.projRepo.SearchByName(ctx, term)
	if err != nil {
		return nil, err
	}
	return toProjectListItems(projects), nil
}

func (s *projectService) GetByID(ctx context.Context, id int64) (*dto.ProjectFormDto, error) {
	project, err := s.projRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	form := &dto.ProjectFormDto{
		ID:              project.ID,
		Name:            project.Name,
		CustomerCompany: project.CustomerCompany,
		ExecutorCompany: project.ExecutorCompany,
		StartDate:       project.StartDate.Format(dateLayout),
		EndDate:         project.EndDate.Format(dateLayout),
		Priority:        project.Priority,
		ManagerFullName: "Не назначен",
		EmployeeIDs:     make([]int64, 0, len(project.Employees)),
		Employees:       make([]dto.EmployeeDto, 0, len(project.Employees)),
		ExistingFiles:   project.FileNames(),
	}

	if project.ManagerID != nil {
		form.ManagerID = *project.ManagerID
	}
	if project.Manager != nil {
		form.ManagerFullName = project.Manager.ShortName()
	}

	for i := range project.Employees {
		emp := &project.Employees[i]
		form.EmployeeIDs = append(form.EmployeeIDs, emp.ID)
		form.Employees = append(form.Employees, dto.EmployeeDto{
			ID:       emp.ID,
			FullName: emp.ShortName(),
			Email:    emp.Email,
		})
	}

	return form, nil
}

// Create сохраняет новый проект. Участники разрешаются выборкой по
// списку идентификаторов, неизвестные молча отбрасываются. Документы
// записываются на диск до фиксации в БД; при ошибке сохранения записи
// уже записанные файлы не откатываются.
func (s *projectService) Create(ctx context.Context, req *dto.ProjectFormDto) error {
	startDate, endDate, err := parseDates(req)
	if err != nil {
		return err
	}

	employees, err := s.empRepo.GetByIDs(ctx, req.EmployeeIDs)
	if err != nil {
		return err
	}

	project := &domain.Project{
		Name:            req.Name,
		CustomerCompany: req.CustomerCompany,
		ExecutorCompany: req.ExecutorCompany,
		StartDate:       startDate,
		EndDate:         endDate,
		Priority:        req.Priority,
		Employees:       employees,
	}

	if req.ManagerID > 0 {
		managerID := req.ManagerID
		project.ManagerID = &managerID
	}

	if len(req.Documents) > 0 {
		storedNames, err := s.saveDocuments(req.Documents)
		if err != nil {
			return err
		}
		project.AttachedFiles = strings.Join(storedNames, ";")
	}

	return s.projRepo.Create(ctx, project)
}

// Update перезаписывает скалярные поля и руководителя, полностью
// заменяет состав участников и дописывает новые документы к уже
// прикреплённым. Отсутствующий проект - тихий no-op.
func (s *projectService) Update(ctx context.Context, id int64, req *dto.ProjectFormDto) error {
	project, err := s.projRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return nil
		}
		return err
	}

	startDate, endDate, err := parseDates(req)
	if err != nil {
		return err
	}

	project.Name = req.Name
	project.CustomerCompany = req.CustomerCompany
	project.ExecutorCompany = req.ExecutorCompany
	project.StartDate = startDate
	project.EndDate = endDate
	project.Priority = req.Priority

	project.ManagerID = nil
	if req.ManagerID > 0 {
		managerID := req.ManagerID
		project.ManagerID = &managerID
	}

	if len(req.Documents) > 0 {
		storedNames, err := s.saveDocuments(req.Documents)
		if err != nil {
			return err
		}

		oldFiles := strings.TrimRight(project.AttachedFiles, ";")
		addedFiles := strings.Join(storedNames, ";")
		if oldFiles == "" {
			project.AttachedFiles = addedFiles
		} else {
			project.AttachedFiles = oldFiles + ";" + addedFiles
		}
	}

	// Старый состав очищается целиком и собирается заново; скалярные
	// поля и участники фиксируются одной транзакцией
	employees, err := s.empRepo.GetByIDs(ctx, req.EmployeeIDs)
	if err != nil {
		return err
	}
	return s.projRepo.Update(ctx, project, employees)
}

// Delete удаляет только запись проекта: участники и руководитель
// остаются, файлы на диске не трогаются. Несуществующий идентификатор
// не считается ошибкой.
func (s *projectService) Delete(ctx context.Context, id int64) error {
	err := s.projRepo.Delete(ctx, id)
	if errors.Is(err, domain.ErrProjectNotFound) {
		return nil
	}
	return err
}

func (s *projectService) saveDocuments(documents []*multipart.FileHeader) ([]string, error) {
	storedNames := make([]string, 0, len(documents))
	for _, fh := range documents {
		name, err := s.files.Save(fh)
		if err != nil {
			return nil, err
		}
		storedNames = append(storedNames, name)
	}
	return storedNames, nil
}

func parseDates(req *dto.ProjectFormDto) (time.Time, time.Time, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return startDate, endDate, nil
}

func toProjectListItems(projects []domain.Project) []dto.ProjectListItemDto {
	result := make([]dto.ProjectListItemDto, len(projects))
	for i := range projects {
		result[i] = toProjectListItem(&projects[i])
	}
	return result
}

func toProjectListItem(p *domain.Project) dto.ProjectListItemDto {
	item := dto.ProjectListItemDto{
		ID:              p.ID,
		Name:            p.Name,
		CustomerCompany: p.CustomerCompany,
		ExecutorCompany: p.ExecutorCompany,
		ManagerFullName: managerNotAssigned,
		ManagerID:       p.ManagerID,
		StartDate:       p.StartDate.Format(dateLayout),
		EndDate:         p.EndDate.Format(dateLayout),
		Priority:        p.Priority,
		EmployeeCount:   len(p.Employees),
		EmployeeIDs:     make([]int64, 0, len(p.Employees)),
		Files:           p.FileNames(),
	}

	if p.Manager != nil {
		item.ManagerFullName = p.Manager.FullName()
	}

	for i := range p.Employees {
		item.EmployeeIDs = append(item.EmployeeIDs, p.Employees[i].ID)
	}

	return item
}
