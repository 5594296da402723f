package notificationrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/pot/sparkhub/internal/domain"
)

func TestRepository_Insert(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()
	repo := New(mockDB)
	timeNow := time.Now()

	query := `INSERT INTO notifications (recipient_id, sender_id, type, content, link_url, is_read, create_time) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	notification := &domain.Notification{
		RecipientID: 10,
		Type:        "PROJECT_FUNDED",
		Content:     "Your project reached its funding goal",
		LinkURL:     "/project/1",
		CreateTime:  timeNow,
	}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Insert notification successfully",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id"}).AddRow(int64(3))
				mockDB.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(notification.RecipientID, notification.SenderID, notification.Type,
						notification.Content, notification.LinkURL, notification.IsRead, notification.CreateTime).
					WillReturnRows(rows)
			},
			expectErr: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mockDB.ExpectQuery(regexp.QuoteMeta(query)).
					WithArgs(notification.RecipientID, notification.SenderID, notification.Type,
						notification.Content, notification.LinkURL, notification.IsRead, notification.CreateTime).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Insert(context.Background(), notification)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(3), notification.ID)
			}
		})
	}
}
