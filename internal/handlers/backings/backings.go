package backings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pot/sparkhub/internal/domain"
	"github.com/pot/sparkhub/internal/dto"
	backingservice "github.com/pot/sparkhub/internal/service/backingservice"
	"github.com/pot/sparkhub/pkg/auth"
	"github.com/pot/sparkhub/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, callerID, rewardID int64) (*domain.Backing, error)
	ExecutePayment(ctx context.Context, callerID, backingID int64) (*domain.Backing, error)
	GetMyBackings(ctx context.Context, callerID int64) ([]domain.BackingDetail, error)
}

type BackingHandler struct {
	backingService Service
}

func New(backingService Service) *BackingHandler {
	return &BackingHandler{
		backingService: backingService,
	}
}

// CreateBacking places an unpaid pledge for a reward tier.
func (h *BackingHandler) CreateBacking(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())

	var req dto.BackingCreateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RewardID == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Reward id is required")
		return
	}

	backing, err := h.backingService.Create(r.Context(), callerID, req.RewardID)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, backingResponse(backing))
}

// PayBacking settles a pending pledge: decrements reward stock and adds
// the pledge amount to the project funding total.
func (h *BackingHandler) PayBacking(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid backing id")
		return
	}

	backing, err := h.backingService.ExecutePayment(r.Context(), callerID, id)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, backingResponse(backing))
}

// GetMyBackings returns the caller's pledge history, newest first.
func (h *BackingHandler) GetMyBackings(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())

	details, err := h.backingService.GetMyBackings(r.Context(), callerID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.MyBackingResponseDTO, 0, len(details))
	for _, d := range details {
		response = append(response, dto.MyBackingResponseDTO{
			ID:           d.ID,
			Amount:       d.Amount,
			Status:       d.Status,
			CreateTime:   d.CreateTime,
			ProjectID:    d.ProjectID,
			ProjectTitle: d.ProjectTitle,
			RewardID:     d.RewardID,
			RewardTitle:  d.RewardTitle,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (h *BackingHandler) respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, backingservice.ErrBackingNotFound),
		errors.Is(err, backingservice.ErrRewardNotFound),
		errors.Is(err, backingservice.ErrProjectNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, backingservice.ErrNotOwner):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, backingservice.ErrAlreadySettled),
		errors.Is(err, backingservice.ErrProjectNotOpen),
		errors.Is(err, backingservice.ErrSoldOut):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, backingservice.ErrProjectExpired):
		utils.RespondWithError(w, http.StatusGone, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func backingResponse(b *domain.Backing) dto.BackingResponseDTO {
	return dto.BackingResponseDTO{
		ID:         b.ID,
		ProjectID:  b.ProjectID,
		RewardID:   b.RewardID,
		Amount:     b.Amount,
		Status:     b.Status,
		CreateTime: b.CreateTime,
	}
}
