package dto

import (
	"mime/multipart"
)

// EmployeeDto - ответ с данными сотрудника
type EmployeeDto struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// EmployeeFormDto - запрос на создание или обновление сотрудника.
// Id > 0 означает обновление существующей записи.
type EmployeeFormDto struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,max=200"`
}

// ProjectListItemDto - элемент списка проектов
type ProjectListItemDto struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	CustomerCompany string   `json:"customerCompany"`
	ExecutorCompany string   `json:"executorCompany"`
	ManagerFullName string   `json:"managerFullName"`
	ManagerID       *int64   `json:"managerId"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	Priority        int      `json:"priority"`
	EmployeeCount   int      `json:"employeeCount"`
	EmployeeIDs     []int64  `json:"employeeIds"`
	Files           []string `json:"files"`
}

// ProjectFormDto - универсальный DTO мастера проектов
// (создание, редактирование и отображение)
type ProjectFormDto struct {
	// 0 при создании, идентификатор проекта при редактировании
	ID              int64  `json:"id"`
	Name            string `json:"name" validate:"required,max=100"`
	CustomerCompany string `json:"customerCompany" validate:"required,max=200"`
	ExecutorCompany string `json:"executorCompany" validate:"required,max=200"`
	StartDate       string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate         string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Priority        int    `json:"priority" validate:"min=0,max=100"`
	ManagerID       int64  `json:"managerId" validate:"required,min=1"`

	// Полное имя руководителя для шагов просмотра и подтверждения
	ManagerFullName string `json:"managerFullName,omitempty"`

	EmployeeIDs []int64       `json:"employeeIds"`
	Employees   []EmployeeDto `json:"employees,omitempty"`

	// Новые документы из multipart-формы; в JSON не сериализуются
	Documents []*multipart.FileHeader `json:"-"`

	// Уже сохранённые имена файлов
	ExistingFiles []string `json:"existingFiles"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
