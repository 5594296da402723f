package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pot/sparkhub/internal/domain"
)

type RewardDTO struct {
	Title       string          `json:"title" example:"Early bird"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount" example:"500"`
	Stock       *int32          `json:"stock"`
	ImageURL    string          `json:"image_url,omitempty"`
}

type ProjectCreateRequestDTO struct {
	CategoryID  int64           `json:"category_id" example:"3"`
	Title       string          `json:"title" example:"Mechanical keyboard"`
	Description string          `json:"description,omitempty"`
	CoverImage  string          `json:"cover_image,omitempty"`
	GoalAmount  decimal.Decimal `json:"goal_amount" example:"1000"`
	EndTime     time.Time       `json:"end_time" example:"2026-12-31T00:00:00Z"`
	Rewards     []RewardDTO     `json:"rewards"`
}

type ProjectUpdateRequestDTO struct {
	CategoryID  int64           `json:"category_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	CoverImage  string          `json:"cover_image,omitempty"`
	GoalAmount  decimal.Decimal `json:"goal_amount"`
	EndTime     time.Time       `json:"end_time"`
	Rewards     []RewardDTO     `json:"rewards"`
}

type ProjectAuditRequestDTO struct {
	Status int `json:"status" example:"1"`
}

type ProjectSummaryDTO struct {
	ID            int64           `json:"id" example:"1"`
	Title         string          `json:"title"`
	CoverImage    string          `json:"cover_image,omitempty"`
	GoalAmount    decimal.Decimal `json:"goal_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	EndTime       time.Time       `json:"end_time"`
	Status        int             `json:"status"`
	CreateTime    time.Time       `json:"create_time"`
}

// ProjectSummaryFromDomain maps a project row to its listing shape.
func ProjectSummaryFromDomain(p *domain.Project) ProjectSummaryDTO {
	return ProjectSummaryDTO{
		ID:            p.ID,
		Title:         p.Title,
		CoverImage:    p.CoverImage,
		GoalAmount:    p.GoalAmount,
		CurrentAmount: p.CurrentAmount,
		EndTime:       p.EndTime,
		Status:        p.Status,
		CreateTime:    p.CreateTime,
	}
}

type RewardResponseDTO struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Stock       *int32          `json:"stock"`
	ImageURL    string          `json:"image_url,omitempty"`
}

type ProjectDetailDTO struct {
	ProjectSummaryDTO
	Description string              `json:"description,omitempty"`
	CreatorID   int64               `json:"creator_id"`
	CategoryID  int64               `json:"category_id"`
	Rewards     []RewardResponseDTO `json:"rewards"`
}
