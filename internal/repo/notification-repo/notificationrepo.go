package notificationrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/pot/sparkhub/internal/domain"
	"github.com/pot/sparkhub/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, n *domain.Notification) error {
	query := `
        INSERT INTO notifications (recipient_id, sender_id, type, content, link_url, is_read, create_time)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	row := r.db.QueryRow(ctx, query,
		n.RecipientID, n.SenderID, n.Type, n.Content, n.LinkURL, n.IsRead, n.CreateTime)
	if err := row.Scan(&n.ID); err != nil {
		zap.L().Error("can't insert notification", zap.Error(err))
		return err
	}
	return nil
}
