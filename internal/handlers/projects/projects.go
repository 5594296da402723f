package projects

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pot/sparkhub/internal/domain"
	"github.com/pot/sparkhub/internal/dto"
	projectservice "github.com/pot/sparkhub/internal/service/projectservice"
	"github.com/pot/sparkhub/pkg/auth"
	"github.com/pot/sparkhub/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, callerID int64, in dto.ProjectCreateRequestDTO) (*domain.Project, error)
	Update(ctx context.Context, callerID, id int64, in dto.ProjectUpdateRequestDTO) (*domain.Project, error)
	Audit(ctx context.Context, callerID int64, role string, id int64, newStatus int) (*domain.Project, error)
	GetPublicProjects(ctx context.Context, page, size int) ([]dto.ProjectSummaryDTO, error)
	GetDetail(ctx context.Context, id, callerID int64, role string) (*dto.ProjectDetailDTO, error)
	GetMyProjects(ctx context.Context, callerID int64) ([]dto.ProjectSummaryDTO, error)
}

type ProjectHandler struct {
	projectService Service
}

func New(projectService Service) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CreateProject принимает черновик проекта вместе с уровнями наград и
// отправляет его на модерацию.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())

	var req dto.ProjectCreateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.projectService.Create(r.Context(), callerID, req)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.ProjectSummaryFromDomain(project))
}

// UpdateProject заменяет проект целиком и возвращает его на модерацию.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())

	id, err := parseID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	var req dto.ProjectUpdateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.projectService.Update(r.Context(), callerID, id, req)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ProjectSummaryFromDomain(project))
}

// AuditProject обрабатывает решение модератора: одобрение или отклонение.
func (h *ProjectHandler) AuditProject(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())
	role := auth.CallerRole(r.Context())

	id, err := parseID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	var req dto.ProjectAuditRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.projectService.Audit(r.Context(), callerID, role, id, req.Status)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	if project == nil {
		// проект отклонён и удалён
		utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Project rejected"})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ProjectSummaryFromDomain(project))
}

// GetPublicProjects returns a page of the public (active) project listing.
func (h *ProjectHandler) GetPublicProjects(w http.ResponseWriter, r *http.Request) {
	page, size := parsePage(r)

	summaries, err := h.projectService.GetPublicProjects(r.Context(), page, size)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if summaries == nil {
		summaries = []dto.ProjectSummaryDTO{}
	}
	utils.RespondWithJSON(w, http.StatusOK, summaries)
}

// GetProject returns the project detail together with its reward tiers.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())
	role := auth.CallerRole(r.Context())

	id, err := parseID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	detail, err := h.projectService.GetDetail(r.Context(), id, callerID, role)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, detail)
}

// GetMyProjects returns the authenticated creator's own projects.
func (h *ProjectHandler) GetMyProjects(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())

	summaries, err := h.projectService.GetMyProjects(r.Context(), callerID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if summaries == nil {
		summaries = []dto.ProjectSummaryDTO{}
	}
	utils.RespondWithJSON(w, http.StatusOK, summaries)
}

func (h *ProjectHandler) respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, projectservice.ErrProjectNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, projectservice.ErrNoRewards),
		errors.Is(err, projectservice.ErrGoalUnreachable),
		errors.Is(err, projectservice.ErrInvalidStatus):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, projectservice.ErrNotOwner),
		errors.Is(err, projectservice.ErrNotAllowed):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, projectservice.ErrNotModifiable),
		errors.Is(err, projectservice.ErrPendingBackings):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func parsePage(r *http.Request) (page, size int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	size, _ = strconv.Atoi(r.URL.Query().Get("size"))
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}
