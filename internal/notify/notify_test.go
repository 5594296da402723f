package notify

import (
	"context"
	"errors"
	"testing"

	gomock "go.uber.org/mock/gomock"

	"github.com/pot/sparkhub/internal/domain"
)

func TestNotify(t *testing.T) {
	tests := []struct {
		name        string
		prepareMock func(repo *MockRepo)
	}{
		{
			name: "Notification stored",
			prepareMock: func(repo *MockRepo) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Cond(func(n any) bool {
					notification := n.(*domain.Notification)
					return notification.RecipientID == 10 &&
						notification.Type == KindProjectFunded &&
						notification.LinkURL == "/project/1"
				})).Return(nil)
			},
		},
		{
			name: "Insert failure is swallowed",
			prepareMock: func(repo *MockRepo) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := NewMockRepo(ctrl)
			tt.prepareMock(repo)

			service := New(repo)
			service.Notify(context.Background(), 10, KindProjectFunded, "Your project reached its goal", "/project/1")
		})
	}
}
