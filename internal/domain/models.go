package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// ProjectStatusAuditing проект на проверке у администратора
	ProjectStatusAuditing = 0
	// ProjectStatusActive идёт сбор средств
	ProjectStatusActive = 1
	// ProjectStatusSuccessful цель достигнута к моменту дедлайна
	ProjectStatusSuccessful = 2
	// ProjectStatusFailed цель не достигнута к моменту дедлайна
	ProjectStatusFailed = 3
)

const (
	// BackingStatusPending заказ создан, но не оплачен
	BackingStatusPending = 0
	// BackingStatusPaid заказ оплачен
	BackingStatusPaid = 1
	// BackingStatusCanceled заказ отменён
	BackingStatusCanceled = 2
)

const (
	RoleBacker  = "BACKER"
	RoleCreator = "CREATOR"
	RoleAdmin   = "ADMIN"
)

type Project struct {
	ID            int64           `db:"id"`
	CreatorID     int64           `db:"creator_id"`
	CategoryID    int64           `db:"category_id"`
	Title         string          `db:"title"`
	Description   string          `db:"description"`
	CoverImage    string          `db:"cover_image"`
	GoalAmount    decimal.Decimal `db:"goal_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount"`
	EndTime       time.Time       `db:"end_time"`
	Status        int             `db:"status"`
	CreateTime    time.Time       `db:"create_time"`
}

// Reward is a funding tier. Stock == nil means unlimited capacity.
type Reward struct {
	ID          int64           `db:"id"`
	ProjectID   int64           `db:"project_id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Stock       *int32          `db:"stock"`
	ImageURL    string          `db:"image_url"`
}

// Backing is a pledge order. Amount is snapshotted from the reward at
// creation time and never re-read from the reward afterward.
type Backing struct {
	ID         int64           `db:"id"`
	BackerID   int64           `db:"backer_id"`
	ProjectID  int64           `db:"project_id"`
	RewardID   int64           `db:"reward_id"`
	Amount     decimal.Decimal `db:"amount"`
	Status     int             `db:"status"`
	CreateTime time.Time       `db:"create_time"`
}

// BackingDetail is the joined row behind the "my backings" listing.
type BackingDetail struct {
	ID           int64           `db:"id"`
	Amount       decimal.Decimal `db:"amount"`
	Status       int             `db:"status"`
	CreateTime   time.Time       `db:"create_time"`
	ProjectID    int64           `db:"project_id"`
	ProjectTitle string          `db:"project_title"`
	RewardID     int64           `db:"reward_id"`
	RewardTitle  string          `db:"reward_title"`
}

type Notification struct {
	ID          int64     `db:"id"`
	RecipientID int64     `db:"recipient_id"`
	SenderID    *int64    `db:"sender_id"`
	Type        string    `db:"type"`
	Content     string    `db:"content"`
	LinkURL     string    `db:"link_url"`
	IsRead      bool      `db:"is_read"`
	CreateTime  time.Time `db:"create_time"`
}
