package domain

import (
	"strings"
	"time"
)

// Employee представляет сотрудника компании
type Employee struct {
	ID         int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName  string `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName   string `json:"last_name" gorm:"type:varchar(100);not null"`
	Patronymic string `json:"patronymic" gorm:"type:varchar(100);not null;default:''"`
	Email      string `json:"email" gorm:"type:varchar(200);not null"`

	Projects        []Project `json:"-" gorm:"many2many:project_employees;constraint:OnDelete:CASCADE"`
	ManagedProjects []Project `json:"-" gorm:"foreignKey:ManagerID"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// FullName собирает полное имя из непустых частей через пробел
func (e *Employee) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.FirstName, e.LastName, e.Patronymic} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// ShortName возвращает имя и фамилию без отчества
func (e *Employee) ShortName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Project представляет проект: заказчик, исполнитель, руководитель,
// участники и прикреплённые документы
type Project struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string    `json:"name" gorm:"type:varchar(100);not null"`
	CustomerCompany string    `json:"customer_company" gorm:"type:varchar(200);not null"`
	ExecutorCompany string    `json:"executor_company" gorm:"type:varchar(200);not null"`
	StartDate       time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate         time.Time `json:"end_date" gorm:"type:date;not null"`
	Priority        int       `json:"priority" gorm:"not null;default:0"`
	ManagerID       *int64    `json:"manager_id" gorm:"index"`
	// Имена сохранённых документов, склеенные через ';'.
	// Пустая строка - документов нет.
	AttachedFiles string `json:"attached_files" gorm:"type:text;not null;default:''"`

	Manager   *Employee  `json:"-" gorm:"foreignKey:ManagerID;constraint:OnDelete:RESTRICT"`
	Employees []Employee `json:"-" gorm:"many2many:project_employees;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (Project) TableName() string {
	return "projects"
}

// FileNames разбирает AttachedFiles, отбрасывая пустые элементы
func (p *Project) FileNames() []string {
	files := make([]string, 0)
	for _, f := range strings.Split(p.AttachedFiles, ";") {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}
