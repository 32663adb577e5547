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
const employeeSearchMinLen = 4

type EmployeeHandler struct {
	empService service.EmployeeService
	validator  *validator.Validate
	logger     *slog.Logger
}

func NewEmployeeHandler(empService service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		empService: empService,
		validator:  validator.New(),
		logger:     logger,
	}
}

// List возвращает всех сотрудников
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.empService.GetAll(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, employees)
}

// Search ищет сотрудников по подстроке имени, фамилии или отчества
func (h *EmployeeHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if len([]rune(term)) < employeeSearchMinLen {
		h.respondJSON(w, http.StatusOK, []dto.EmployeeDto{})
		return
	}

	results, err := h.empService.SearchByName(r.Context(), term)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, results)
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request, id int64) {
	emp, err := h.empService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, emp)
}

// Save создаёт сотрудника или обновляет существующего, если в теле
// передан id больше нуля
func (h *EmployeeHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.EmployeeFormDto
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	var err error
	if req.ID > 0 {
		err = h.empService.Update(r.Context(), &req)
	} else {
		err = h.empService.Create(r.Context(), &req)
	}
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid employee id", "")
		return
	}

	if err := h.empService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *EmployeeHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		h.respondError(w, http.StatusNotFound, "employee not found", "")
	case errors.Is(err, domain.ErrInvalidFullName):
		h.respondError(w, http.StatusBadRequest, "full name must contain at least first and last name", "")
	case errors.Is(err, domain.ErrInvalidEmail):
		h.respondError(w, http.StatusBadRequest, "email address is not valid", "")
	case errors.Is(err, domain.ErrEmployeeIsManager):
		h.respondError(w, http.StatusConflict, "employee manages projects and cannot be deleted", "")
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h *EmployeeHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *EmployeeHandler) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
