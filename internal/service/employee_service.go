package service

import (
	"context"
	"errors"

	"github.com/Maksonjenu/SybersTest/internal/domain"
	"github.com/Maksonjenu/SybersTest/internal/dto"
	"github.com/Maksonjenu/SybersTest/internal/repository"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	GetAll(ctx context.Context) ([]dto.EmployeeDto, error)
	GetByID(ctx context.Context, id int64) (*dto.EmployeeDto, error)
	Create(ctx context.Context, req *dto.EmployeeFormDto) error
	Update(ctx context.Context, req *dto.EmployeeFormDto) error
	Delete(ctx context.Context, id int64) error
	SearchByName(ctx context.Context, term string) ([]dto.EmployeeDto, error)
}

type employeeService struct {
	empRepo repository.EmployeeRepository
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(empRepo repository.EmployeeRepository) EmployeeService {
	return &employeeService{empRepo: empRepo}
}

func (s *employeeService) GetAll(ctx context.Context) ([]dto.EmployeeDto, error) {
	employees, err := s.empRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return toEmployeeDtos(employees), nil
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*dto.EmployeeDto, error) {
	emp, err := s.empRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := toEmployeeDto(emp)
	return &d, nil
}

func (s *employeeService) Create(ctx context.Context, req *dto.EmployeeFormDto) error {
	if err := domain.ValidateFullName(req.FullName); err != nil {
		return err
	}
	if err := domain.ValidateEmail(req.Email); err != nil {
		return err
	}

	firstName, lastName, patronymic := domain.ParseFullName(req.FullName)

	emp := &domain.Employee{
		FirstName:  firstName,
		LastName:   lastName,
		Patronymic: patronymic,
		Email:      req.Email,
	}

	return s.empRepo.Create(ctx, emp)
}

// Update полностью заменяет имя и адрес сотрудника.
// Отсутствующий сотрудник - ошибка, в отличие от Delete.
func (s *employeeService) Update(ctx context.Context, req *dto.EmployeeFormDto) error {
	if err := domain.ValidateFullName(req.FullName); err != nil {
		return err
	}
	if err := domain.ValidateEmail(req.Email); err != nil {
		return err
	}

	emp, err := s.empRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	emp.FirstName, emp.LastName, emp.Patronymic = domain.ParseFullName(req.FullName)
	emp.Email = req.Email

	return s.empRepo.Update(ctx, emp)
}

// Delete удаляет сотрудника. Несуществующий идентификатор не считается
// ошибкой; удаление руководителя с проектами запрещено ограничением БД.
func (s *employeeService) Delete(ctx context.Context, id int64) error {
	err := s.empRepo.Delete(ctx, id)
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		return nil
	}
	return err
}

// SearchByName ищет по подстроке в имени, фамилии или отчестве без
// учёта регистра. Пустой запрос возвращает всех сотрудников.
func (s *employeeService) SearchByName(ctx context.Context, term string) ([]dto.EmployeeDto, error) {
	employees, err := s.empRepo.SearchByName(ctx, term)
	if err != nil {
		return nil, err
	}
	return toEmployeeDtos(employees), nil
}

func toEmployeeDto(emp *domain.Employee) dto.EmployeeDto {
	return dto.EmployeeDto{
		ID:       emp.ID,
		FullName: emp.FullName(),
		Email:    emp.Email,
	}
}

func toEmployeeDtos(employees []domain.Employee) []dto.EmployeeDto {
	result := make([]dto.EmployeeDto, len(employees))
	for i := range employees {
		result[i] = toEmployeeDto(&employees[i])
	}
	return result
}
