package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pot/sparkhub/internal/domain"
)

const (
	KindProjectCreated  = "PROJECT_CREATED"
	KindProjectUpdated  = "PROJECT_UPDATED"
	KindProjectApproved = "PROJECT_APPROVED"
	KindProjectRejected = "PROJECT_REJECTED"
	KindProjectFunded   = "PROJECT_FUNDED"
	KindProjectFailed   = "PROJECT_FAILED"
)

// Gateway delivers user-facing messages. Calls are fire-and-forget:
// delivery failures must never abort or delay the caller.
type Gateway interface {
	Notify(ctx context.Context, recipientID int64, kind, content, linkURL string)
}

type Repo interface {
	Insert(ctx context.Context, n *domain.Notification) error
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{repo: repo}
}

// Notify stores a system notification for the recipient. Errors are
// logged and swallowed.
func (s *Service) Notify(ctx context.Context, recipientID int64, kind, content, linkURL string) {
	n := &domain.Notification{
		RecipientID: recipientID,
		Type:        kind,
		Content:     content,
		LinkURL:     linkURL,
		CreateTime:  time.Now(),
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		zap.L().Error("failed to deliver notification",
			zap.Int64("recipientID", recipientID),
			zap.String("kind", kind),
			zap.Error(err),
		)
	}
}
