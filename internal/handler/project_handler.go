package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Maksonjenu/SybersTest/internal/domain"
	"github.com/Maksonjenu/SybersTest/internal/dto"
	"github.com/Maksonjenu/SybersTest/internal/service"
	"github.com/go-playground/validator/v10"
)

// Запросы короче этого порога не уходят в БД
const projectSearchMinLen = 3

// Предел размера multipart-формы мастера проектов
const maxProjectFormSize = 32 << 20

type ProjectHandler struct {
	projService service.ProjectService
	validator   *validator.Validate
	logger      *slog.Logger
}

func NewProjectHandler(projService service.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projService: projService,
		validator:   validator.New(),
		logger:      logger,
	}
}

// List возвращает проекты, опционально отфильтрованные параметром search
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projService.GetAll(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, projects)
}

// Search ищет проекты по подстроке названия
func (h *ProjectHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if len([]rune(term)) < projectSearchMinLen {
		h.respondJSON(w, http.StatusOK, []dto.ProjectListItemDto{})
		return
	}

	results, err := h.projService.SearchByName(r.Context(), term)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, results)
}

func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request, id int64) {
	project, err := h.projService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, project)
}

// Create принимает multipart-форму мастера с полями проекта и
// документами
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseProjectForm(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid form data", err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	if err := h.projService.Create(r.Context(), req); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Edit обновляет проект. Идентификатор в пути должен совпадать с
// идентификатором в форме.
func (h *ProjectHandler) Edit(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid project id", "")
		return
	}

	req, err := h.parseProjectForm(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid form data", err.Error())
		return
	}

	if req.ID != id {
		h.respondError(w, http.StatusBadRequest, "id mismatch", "")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	if err := h.projService.Update(r.Context(), id, req); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid project id", "")
		return
	}

	if err := h.projService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseProjectForm собирает ProjectFormDto из multipart-формы мастера.
// Поле employeeIds может повторяться; документы лежат в поле documents.
func (h *ProjectHandler) parseProjectForm(r *http.Request) (*dto.ProjectFormDto, error) {
	if err := r.ParseMultipartForm(maxProjectFormSize); err != nil {
		return nil, err
	}

	req := &dto.ProjectFormDto{
		Name:            r.FormValue("name"),
		CustomerCompany: r.FormValue("customerCompany"),
		ExecutorCompany: r.FormValue("executorCompany"),
		StartDate:       r.FormValue("startDate"),
		EndDate:         r.FormValue("endDate"),
	}

	if rawID := r.FormValue("id"); rawID != "" {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ID = id
	}

	if rawPriority := r.FormValue("priority"); rawPriority != "" {
		priority, err := strconv.Atoi(rawPriority)
		if err != nil {
			return nil, err
		}
		req.Priority = priority
	}

	if rawManagerID := r.FormValue("managerId"); rawManagerID != "" {
		managerID, err := strconv.ParseInt(rawManagerID, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ManagerID = managerID
	}

	for _, rawEmpID := range r.PostForm["employeeIds"] {
		empID, err := strconv.ParseInt(rawEmpID, 10, 64)
		if err != nil {
			return nil, err
		}
		req.EmployeeIDs = append(req.EmployeeIDs, empID)
	}

	if r.MultipartForm != nil {
		req.Documents = r.MultipartForm.File["documents"]
	}

	return req, nil
}

func (h *ProjectHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		h.respondError(w, http.StatusNotFound, "project not found", "")
	case errors.Is(err, domain.ErrEmployeeNotFound):
		h.respondError(w, http.StatusNotFound, "employee not found", "")
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h *ProjectHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *ProjectHandler) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
