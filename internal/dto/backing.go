package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type BackingCreateRequestDTO struct {
	RewardID int64 `json:"reward_id" example:"7"`
}

type BackingResponseDTO struct {
	ID         int64           `json:"id" example:"42"`
	ProjectID  int64           `json:"project_id"`
	RewardID   int64           `json:"reward_id"`
	Amount     decimal.Decimal `json:"amount" example:"500"`
	Status     int             `json:"status" example:"0"`
	CreateTime time.Time       `json:"create_time"`
}

type MyBackingResponseDTO struct {
	ID           int64           `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Status       int             `json:"status"`
	CreateTime   time.Time       `json:"create_time"`
	ProjectID    int64           `json:"project_id"`
	ProjectTitle string          `json:"project_title"`
	RewardID     int64           `json:"reward_id"`
	RewardTitle  string          `json:"reward_title"`
}
