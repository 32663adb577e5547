package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Maksonjenu/SybersTest/internal/domain"
	"github.com/Maksonjenu/SybersTest/internal/dto"
	"github.com/Maksonjenu/SybersTest/internal/handler"
	"github.com/Maksonjenu/SybersTest/internal/repository"
	"github.com/Maksonjenu/SybersTest/internal/service"
	"github.com/Maksonjenu/SybersTest/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.Employee{}, &domain.Project{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	empRepo := repository.NewEmployeeRepository(db)
	projRepo := repository.NewProjectRepository(db)
	fileStore := storage.NewFileStore(t.TempDir())

	empService := service.NewEmployeeService(empRepo)
	projService := service.NewProjectService(projRepo, empRepo, fileStore)

	empHandler := handler.NewEmployeeHandler(empService, logger)
	projHandler := handler.NewProjectHandler(projService, logger)

	return handler.NewRouter(empHandler, projHandler, logger).Setup()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doProjectForm(t *testing.T, h http.Handler, path string, fields map[string]string, employeeIDs []string, files map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	for _, id := range employeeIDs {
		if err := mw.WriteField("employeeIds", id); err != nil {
			t.Fatalf("failed to write employeeIds: %v", err)
		}
	}
	for name, content := range files {
		fw, err := mw.CreateFormFile("documents", name)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write file content: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func saveEmployee(t *testing.T, h http.Handler, fullName, email string) {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/employees/save", dto.EmployeeFormDto{
		FullName: fullName,
		Email:    email,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save employee: status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func listEmployees(t *testing.T, h http.Handler) []dto.EmployeeDto {
	t.Helper()

	rec := doJSON(t, h, http.MethodGet, "/api/employees", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list employees: status = %d", rec.Code)
	}
	var employees []dto.EmployeeDto
	if err := json.Unmarshal(rec.Body.Bytes(), &employees); err != nil {
		t.Fatalf("failed to decode employees: %v", err)
	}
	return employees
}

func projectFields(managerID int64) map[string]string {
	return map[string]string{
		"name":            "Alpha",
		"customerCompany": "Acme",
		"executorCompany": "Sibers",
		"startDate":       "2024-01-01",
		"endDate":         "2024-12-31",
		"priority":        "50",
		"managerId":       fmt.Sprintf("%d", managerID),
	}
}

func TestEmployeeSave_CreateAndUpdate(t *testing.T) {
	h := newTestHandler(t)

	saveEmployee(t, h, "John Doe", "john.doe@example.com")

	employees := listEmployees(t, h)
	if len(employees) != 1 || employees[0].FullName != "John Doe" {
		t.Fatalf("employees = %+v", employees)
	}

	// id > 0 переключает save на обновление
	rec := doJSON(t, h, http.MethodPost, "/api/employees/save", dto.EmployeeFormDto{
		ID:       employees[0].ID,
		FullName: "Jane Smith",
		Email:    "jane.smith@example.com",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	employees = listEmployees(t, h)
	if len(employees) != 1 || employees[0].FullName != "Jane Smith" {
		t.Errorf("employees after update = %+v", employees)
	}
}

func TestEmployeeSave_ValidationErrors(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name     string
		fullName string
		email    string
	}{
		{"single word name", "John", "john.doe@example.com"},
		{"bad email", "John Doe", "john@domain"},
		{"empty body fields", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/employees/save", dto.EmployeeFormDto{
				FullName: tt.fullName,
				Email:    tt.email,
			})
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}

	if got := listEmployees(t, h); len(got) != 0 {
		t.Errorf("rejected requests mutated state: %+v", got)
	}
}

// Короткий запрос не уходит в БД и возвращает пустой список
func TestEmployeeSearch_ShortTermGuard(t *testing.T) {
	h := newTestHandler(t)
	saveEmployee(t, h, "John Doe", "john.doe@example.com")

	rec := doJSON(t, h, http.MethodGet, "/api/employees/search?term=jo", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/employees/search?term=john", nil)
	var results []dto.EmployeeDto
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("failed to decode results: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("results = %+v, want 1 match", results)
	}
}

func TestEmployeeGetByID_NotFound(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/employees/999", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestEmployeeDelete_InvalidID(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/employees/delete/0", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// Удаление руководителя с проектами отклоняется конфликтом
func TestEmployeeDelete_ManagerConflict(t *testing.T) {
	h := newTestHandler(t)
	saveEmployee(t, h, "John Doe", "john.doe@example.com")
	manager := listEmployees(t, h)[0]

	rec := doProjectForm(t, h, "/api/projects/create", projectFields(manager.ID), nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("create project: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/employees/delete/%d", manager.ID), nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestProjectCreateAndGet(t *testing.T) {
	h := newTestHandler(t)
	saveEmployee(t, h, "John Doe", "john.doe@example.com")
	saveEmployee(t, h, "Anna Petrova", "anna@example.com")
	employees := listEmployees(t, h)
	manager, member := employees[0], employees[1]

	rec := doProjectForm(t, h, "/api/projects/create", projectFields(manager.ID),
		[]string{fmt.Sprintf("%d", member.ID)},
		map[string]string{"contract.pdf": "payload"})
	if rec.Code != http.StatusOK {
		t.Fatalf("create: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/api/projects", nil)
	var projects []dto.ProjectListItemDto
	if err := json.Unmarshal(rec.Body.Bytes(), &projects); err != nil {
		t.Fatalf("failed to decode projects: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("projects = %+v", projects)
	}
	if projects[0].EmployeeCount != 1 || len(projects[0].Files) != 1 {
		t.Errorf("list item = %+v", projects[0])
	}

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/projects/%d", projects[0].ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}
	var form dto.ProjectFormDto
	if err := json.Unmarshal(rec.Body.Bytes(), &form); err != nil {
		t.Fatalf("failed to decode form: %v", err)
	}
	if form.ManagerID != manager.ID || len(form.ExistingFiles) != 1 {
		t.Errorf("form = %+v", form)
	}
}

func TestProjectCreate_MissingRequiredFields(t *testing.T) {
	h := newTestHandler(t)

	fields := projectFields(1)
	delete(fields, "name")

	rec := doProjectForm(t, h, "/api/projects/create", fields, nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestProjectEdit_IDMismatch(t *testing.T) {
	h := newTestHandler(t)
	saveEmployee(t, h, "John Doe", "john.doe@example.com")
	manager := listEmployees(t, h)[0]

	fields := projectFields(manager.ID)
	fields["id"] = "7"

	rec := doProjectForm(t, h, "/api/projects/edit/8", fields, nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestProjectSearch_ShortTermGuard(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/projects/search?term=al", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestProjectDelete_InvalidID(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/projects/delete/-1", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
