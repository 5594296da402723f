package backingrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/pot/sparkhub/internal/domain"
	"github.com/pot/sparkhub/internal/pg"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func TestRepository_Save(t *testing.T) {
	repo, mock, tx := NewMock(t)
	timeNow := time.Now()

	query := `INSERT INTO backings (backer_id, project_id, reward_id, amount, status, create_time) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	backing := &domain.Backing{
		BackerID: 5, ProjectID: 1, RewardID: 7,
		Amount: decimal.NewFromInt(500), Status: domain.BackingStatusPending, CreateTime: timeNow,
	}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Save backing successfully",
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					rows := pgxmock.NewRows([]string{"id"}).AddRow(int64(42))
					mock.ExpectQuery(regexp.QuoteMeta(query)).
						WithArgs(backing.BackerID, backing.ProjectID, backing.RewardID, backing.Amount, backing.Status, backing.CreateTime).
						WillReturnRows(rows)
					return fn(ctx)
				})
			},
			expectErr: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(query)).
						WithArgs(backing.BackerID, backing.ProjectID, backing.RewardID, backing.Amount, backing.Status, backing.CreateTime).
						WillReturnError(errors.New("database error"))
					return fn(ctx)
				})
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Save(context.Background(), backing)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(42), backing.ID)
			}
		})
	}
}

func TestRepository_FindByIDForUpdate(t *testing.T) {
	repo, mock, _ := NewMock(t)
	timeNow := time.Now()

	query := `SELECT id, backer_id, project_id, reward_id, amount, status, create_time FROM backings WHERE id = $1 FOR UPDATE`

	tests := []struct {
		name      string
		id        int64
		mockSetup func()
		expectErr bool
		result    *domain.Backing
	}{
		{
			name: "Backing exists",
			id:   42,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "backer_id", "project_id", "reward_id", "amount", "status", "create_time"}).
					AddRow(int64(42), int64(5), int64(1), int64(7), decimal.NewFromInt(500), domain.BackingStatusPending, timeNow)
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(int64(42)).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.Backing{
				ID: 42, BackerID: 5, ProjectID: 1, RewardID: 7,
				Amount: decimal.NewFromInt(500), Status: domain.BackingStatusPending, CreateTime: timeNow,
			},
		},
		{
			name: "Backing does not exist",
			id:   99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(int64(99)).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name: "Database error",
			id:   42,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(int64(42)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByIDForUpdate(context.Background(), tt.id)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if tt.result == nil {
				assert.Nil(t, result)
			} else {
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock, _ := NewMock(t)

	query := `UPDATE backings SET status = $1 WHERE id = $2`

	mock.ExpectExec(regexp.QuoteMeta(query)).
		WithArgs(domain.BackingStatusPaid, int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateStatus(context.Background(), 42, domain.BackingStatusPaid)
	assert.NoError(t, err)
}

func TestRepository_FindDetailsByBackerID(t *testing.T) {
	repo, mock, _ := NewMock(t)
	timeNow := time.Now()

	query := `SELECT b.id, b.amount, b.status, b.create_time, b.project_id, p.title AS project_title, b.reward_id, r.title AS reward_title FROM backings b JOIN projects p ON p.id = b.project_id JOIN rewards r ON r.id = b.reward_id WHERE b.backer_id = $1 ORDER BY b.create_time DESC`

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		wantLen   int
	}{
		{
			name: "Backings found",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "amount", "status", "create_time", "project_id", "project_title", "reward_id", "reward_title"}).
					AddRow(int64(42), decimal.NewFromInt(500), domain.BackingStatusPaid, timeNow, int64(1), "Keyboard", int64(7), "Early bird").
					AddRow(int64(41), decimal.NewFromInt(100), domain.BackingStatusPending, timeNow, int64(2), "Game", int64(8), "Digital copy")
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(int64(5)).
					WillReturnRows(rows)
			},
			expectErr: false,
			wantLen:   2,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(int64(5)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindDetailsByBackerID(context.Background(), 5)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.wantLen)
				assert.Equal(t, "Keyboard", result[0].ProjectTitle)
			}
		})
	}
}

func TestRepository_CountPendingByProjectID(t *testing.T) {
	repo, mock, _ := NewMock(t)

	query := `SELECT COUNT(*) FROM backings WHERE project_id = $1 AND status = $2`

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		want      int
	}{
		{
			name: "Pending backings counted",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"count"}).AddRow(3)
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(int64(1), domain.BackingStatusPending).
					WillReturnRows(rows)
			},
			expectErr: false,
			want:      3,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(int64(1), domain.BackingStatusPending).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			count, err := repo.CountPendingByProjectID(context.Background(), 1)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, count)
			}
		})
	}
}
