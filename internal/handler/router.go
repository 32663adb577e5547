package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Maksonjenu/SybersTest/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	empHandler  *EmployeeHandler
	projHandler *ProjectHandler
}

// NewRouter создаёт новый роутер
func NewRouter(empHandler *EmployeeHandler, projHandler *ProjectHandler, logger *slog.Logger) *Router {
	return &Router{
		mux:         http.NewServeMux(),
		logger:      logger,
		empHandler:  empHandler,
		projHandler: projHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	// Регистрируем обработчики
	r.mux.HandleFunc("/api/employees", r.employeesRouter)
	r.mux.HandleFunc("/api/employees/", r.employeesRouter)
	r.mux.HandleFunc("/api/projects", r.projectsRouter)
	r.mux.HandleFunc("/api/projects/", r.projectsRouter)

	// Health check
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)

	return handler
}

// employeesRouter обрабатывает все запросы к /api/employees
func (r *Router) employeesRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/api/employees")
	path = strings.Trim(path, "/")

	// GET /api/employees - список всех сотрудников
	if path == "" && req.Method == http.MethodGet {
		r.empHandler.List(w, req)
		return
	}

	parts := strings.Split(path, "/")

	if len(parts) == 1 {
		switch {
		case parts[0] == "search" && req.Method == http.MethodGet:
			r.empHandler.Search(w, req)
			return
		case parts[0] == "save" && req.Method == http.MethodPost:
			r.empHandler.Save(w, req)
			return
		default:
			// GET /api/employees/{id}
			if req.Method == http.MethodGet {
				if id, err := strconv.ParseInt(parts[0], 10, 64); err == nil {
					r.empHandler.GetByID(w, req, id)
					return
				}
			}
		}
	}

	// POST /api/employees/delete/{id}
	if len(parts) == 2 && parts[0] == "delete" && req.Method == http.MethodPost {
		r.empHandler.Delete(w, req, parts[1])
		return
	}

	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}

// projectsRouter обрабатывает все запросы к /api/projects
func (r *Router) projectsRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/api/projects")
	path = strings.Trim(path, "/")

	// GET /api/projects?search= - список проектов
	if path == "" && req.Method == http.MethodGet {
		r.projHandler.List(w, req)
		return
	}

	parts := strings.Split(path, "/")

	if len(parts) == 1 {
		switch {
		case parts[0] == "search" && req.Method == http.MethodGet:
			r.projHandler.Search(w, req)
			return
		case parts[0] == "create" && req.Method == http.MethodPost:
			r.projHandler.Create(w, req)
			return
		default:
			// GET /api/projects/{id}
			if req.Method == http.MethodGet {
				if id, err := strconv.ParseInt(parts[0], 10, 64); err == nil {
					r.projHandler.GetByID(w, req, id)
					return
				}
			}
		}
	}

	if len(parts) == 2 && req.Method == http.MethodPost {
		switch parts[0] {
		case "edit":
			// POST /api/projects/edit/{id}
			r.projHandler.Edit(w, req, parts[1])
			return
		case "delete":
			// POST /api/projects/delete/{id}
			r.projHandler.Delete(w, req, parts[1])
			return
		}
	}

	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}
