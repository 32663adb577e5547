package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrInvalidFullName   = errors.New("full name must contain at least first and last name")
	ErrInvalidEmail      = errors.New("email address is not valid")
	ErrEmployeeIsManager = errors.New("employee is assigned as a project manager and cannot be deleted")
)
