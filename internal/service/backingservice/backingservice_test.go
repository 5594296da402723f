package backingservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/pot/sparkhub/internal/domain"
	"github.com/pot/sparkhub/internal/pg"
)

func NewMock(t *testing.T) (*Service, *MockBackingRepo, *MockRewardRepo, *MockProjectRepo, *MockCache, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	backingRepo := NewMockBackingRepo(ctrl)
	rewardRepo := NewMockRewardRepo(ctrl)
	projectRepo := NewMockProjectRepo(ctrl)
	cache := NewMockCache(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	service := New(backingRepo, rewardRepo, projectRepo, cache, txManager)
	defer ctrl.Finish()
	return service, backingRepo, rewardRepo, projectRepo, cache, txManager
}

func int32Ptr(v int32) *int32 { return &v }

func activeProject(id int64) *domain.Project {
	return &domain.Project{
		ID:            id,
		CreatorID:     10,
		Title:         "Keyboard",
		GoalAmount:    decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(200),
		EndTime:       time.Now().Add(24 * time.Hour),
		Status:        domain.ProjectStatusActive,
	}
}

func TestCreate(t *testing.T) {
	service, backingRepo, rewardRepo, projectRepo, _, _ := NewMock(t)

	reward := &domain.Reward{ID: 7, ProjectID: 1, Title: "Early bird", Amount: decimal.NewFromInt(500), Stock: int32Ptr(0)}

	tests := []struct {
		name          string
		rewardID      int64
		prepareMock   func()
		expectedError error
	}{
		{
			name:     "Pledge created even when the tier is sold out",
			rewardID: 7,
			prepareMock: func() {
				rewardRepo.EXPECT().FindByID(gomock.Any(), int64(7)).Return(reward, nil)
				projectRepo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(activeProject(1), nil)
				backingRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "Reward not found",
			rewardID: 99,
			prepareMock: func() {
				rewardRepo.EXPECT().FindByID(gomock.Any(), int64(99)).Return(nil, nil)
			},
			expectedError: ErrRewardNotFound,
		},
		{
			name:     "Project not found",
			rewardID: 7,
			prepareMock: func() {
				rewardRepo.EXPECT().FindByID(gomock.Any(), int64(7)).Return(reward, nil)
				projectRepo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(nil, nil)
			},
			expectedError: ErrProjectNotFound,
		},
		{
			name:     "Project not accepting pledges",
			rewardID: 7,
			prepareMock: func() {
				project := activeProject(1)
				project.Status = domain.ProjectStatusAuditing
				rewardRepo.EXPECT().FindByID(gomock.Any(), int64(7)).Return(reward, nil)
				projectRepo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(project, nil)
			},
			expectedError: ErrProjectNotOpen,
		},
		{
			name:     "Project past deadline",
			rewardID: 7,
			prepareMock: func() {
				project := activeProject(1)
				project.EndTime = time.Now().Add(-time.Hour)
				rewardRepo.EXPECT().FindByID(gomock.Any(), int64(7)).Return(reward, nil)
				projectRepo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(project, nil)
			},
			expectedError: ErrProjectNotOpen,
		},
		{
			name:     "Cannot save backing",
			rewardID: 7,
			prepareMock: func() {
				rewardRepo.EXPECT().FindByID(gomock.Any(), int64(7)).Return(reward, nil)
				projectRepo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(activeProject(1), nil)
				backingRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("some error"))
			},
			expectedError: errors.New("some error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}

			backing, err := service.Create(context.Background(), 5, tt.rewardID)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, backing)
				assert.Equal(t, int64(5), backing.BackerID)
				assert.Equal(t, int64(1), backing.ProjectID)
				assert.Equal(t, domain.BackingStatusPending, backing.Status)
				assert.True(t, backing.Amount.Equal(reward.Amount))
			}
		})
	}
}

func TestExecutePayment(t *testing.T) {
	service, backingRepo, rewardRepo, projectRepo, cache, txManager := NewMock(t)

	pendingBacking := func() *domain.Backing {
		return &domain.Backing{
			ID: 42, BackerID: 5, ProjectID: 1, RewardID: 7,
			Amount: decimal.NewFromInt(500), Status: domain.BackingStatusPending,
		}
	}
	passThrough := func() {
		txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			return fn(ctx)
		})
	}
	expectEvict := func() {
		cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		cache.EXPECT().DeletePrefix(gomock.Any(), gomock.Any()).Return(nil)
	}

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Settles a limited tier pledge",
			prepareMock: func() {
				passThrough()
				backingRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(42)).Return(pendingBacking(), nil)
				rewardRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(7)).
					Return(&domain.Reward{ID: 7, ProjectID: 1, Amount: decimal.NewFromInt(500), Stock: int32Ptr(3)}, nil)
				rewardRepo.EXPECT().DecrementStock(gomock.Any(), int64(7)).Return(nil)
				projectRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(1)).Return(activeProject(1), nil)
				projectRepo.EXPECT().Update(gomock.Any(), gomock.Cond(func(p any) bool {
					return p.(*domain.Project).CurrentAmount.Equal(decimal.NewFromInt(700))
				})).Return(nil)
				backingRepo.EXPECT().UpdateStatus(gomock.Any(), int64(42), domain.BackingStatusPaid).Return(nil)
				expectEvict()
			},
			expectedError: nil,
		},
		{
			name: "Settles an unlimited tier pledge without touching stock",
			prepareMock: func() {
				passThrough()
				backingRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(42)).Return(pendingBacking(), nil)
				rewardRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(7)).
					Return(&domain.Reward{ID: 7, ProjectID: 1, Amount: decimal.NewFromInt(500)}, nil)
				projectRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(1)).Return(activeProject(1), nil)
				projectRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
				backingRepo.EXPECT().UpdateStatus(gomock.Any(), int64(42), domain.BackingStatusPaid).Return(nil)
				expectEvict()
			},
			expectedError: nil,
		},
		{
			name: "Backing not found",
			prepareMock: func() {
				passThrough()
				backingRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(42)).Return(nil, nil)
			},
			expectedError: ErrBackingNotFound,
		},
		{
			name: "Backing belongs to another user",
			prepareMock: func() {
				passThrough()
				other := pendingBacking()
				other.BackerID = 6
				backingRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(42)).Return(other, nil)
			},
			expectedError: ErrNotOwner,
		},
		{
			name: "Backing already settled",
			prepareMock: func() {
				passThrough()
				paid := pendingBacking()
				paid.Status = domain.BackingStatusPaid
				backingRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(42)).Return(paid, nil)
			},
			expectedError: ErrAlreadySettled,
		},
		{
			name: "Reward tier sold out",
			prepareMock: func() {
				passThrough()
				backingRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(42)).Return(pendingBacking(), nil)
				rewardRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(7)).
					Return(&domain.Reward{ID: 7, ProjectID: 1, Amount: decimal.NewFromInt(500), Stock: int32Ptr(0)}, nil)
			},
			expectedError: ErrSoldOut,
		},
		{
			name: "Project ended before settlement",
			prepareMock: func() {
				passThrough()
				expired := activeProject(1)
				expired.EndTime = time.Now().Add(-time.Hour)
				backingRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(42)).Return(pendingBacking(), nil)
				rewardRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(7)).
					Return(&domain.Reward{ID: 7, ProjectID: 1, Amount: decimal.NewFromInt(500)}, nil)
				projectRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(1)).Return(expired, nil)
			},
			expectedError: ErrProjectExpired,
		},
		{
			name: "Funding total update fails and settlement rolls back",
			prepareMock: func() {
				passThrough()
				backingRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(42)).Return(pendingBacking(), nil)
				rewardRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(7)).
					Return(&domain.Reward{ID: 7, ProjectID: 1, Amount: decimal.NewFromInt(500)}, nil)
				projectRepo.EXPECT().FindByIDForUpdate(gomock.Any(), int64(1)).Return(activeProject(1), nil)
				projectRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("some error"))
			},
			expectedError: errors.New("some error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}

			backing, err := service.ExecutePayment(context.Background(), 5, 42)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, backing)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, backing)
				assert.Equal(t, domain.BackingStatusPaid, backing.Status)
			}
		})
	}
}

func TestGetMyBackings(t *testing.T) {
	service, backingRepo, _, _, _, _ := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedLen   int
		expectedError error
	}{
		{
			name: "Backings found",
			prepareMock: func() {
				backingRepo.EXPECT().FindDetailsByBackerID(gomock.Any(), int64(5)).Return([]domain.BackingDetail{
					{ID: 42, ProjectTitle: "Keyboard", RewardTitle: "Early bird"},
					{ID: 41, ProjectTitle: "Game", RewardTitle: "Digital copy"},
				}, nil)
			},
			expectedLen: 2,
		},
		{
			name: "Error fetching backings",
			prepareMock: func() {
				backingRepo.EXPECT().FindDetailsByBackerID(gomock.Any(), int64(5)).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			details, err := service.GetMyBackings(context.Background(), 5)
			if tt.expectedError != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, details, tt.expectedLen)
			}
		})
	}
}
