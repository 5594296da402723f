package backingrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/pot/sparkhub/internal/domain"
	"github.com/pot/sparkhub/internal/pg"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) Save(ctx context.Context, backing *domain.Backing) error {
	query := `
        INSERT INTO backings (backer_id, project_id, reward_id, amount, status, create_time)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query,
			backing.BackerID, backing.ProjectID, backing.RewardID, backing.Amount, backing.Status, backing.CreateTime)
		if err := row.Scan(&backing.ID); err != nil {
			zap.L().Error("can't save backing", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// FindByIDForUpdate locks the backing row until the enclosing
// transaction commits. Must be called inside TXManager.Begin.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Backing, error) {
	query := `
        SELECT id, backer_id, project_id, reward_id, amount, status, create_time
        FROM backings
        WHERE id = $1
        FOR UPDATE
    `
	row := r.db.QueryRow(ctx, query, id)

	var backing domain.Backing
	err := row.Scan(&backing.ID, &backing.BackerID, &backing.ProjectID, &backing.RewardID,
		&backing.Amount, &backing.Status, &backing.CreateTime)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't lock backing row", zap.Error(err))
		return nil, err
	}
	return &backing, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status int) error {
	query := `
        UPDATE backings
        SET status = $1
        WHERE id = $2
    `
	_, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		zap.L().Error("failed to update backing status", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindDetailsByBackerID(ctx context.Context, backerID int64) ([]domain.BackingDetail, error) {
	query := `
        SELECT b.id, b.amount, b.status, b.create_time, b.project_id, p.title AS project_title, b.reward_id, r.title AS reward_title
        FROM backings b
        JOIN projects p ON p.id = b.project_id
        JOIN rewards r ON r.id = b.reward_id
        WHERE b.backer_id = $1
        ORDER BY b.create_time DESC
    `
	rows, err := r.db.Query(ctx, query, backerID)
	if err != nil {
		zap.L().Error("can't get backings", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var details []domain.BackingDetail
	for rows.Next() {
		var d domain.BackingDetail
		err := rows.Scan(&d.ID, &d.Amount, &d.Status, &d.CreateTime,
			&d.ProjectID, &d.ProjectTitle, &d.RewardID, &d.RewardTitle)
		if err != nil {
			zap.L().Error("can't scan backing row", zap.Error(err))
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (r *Repository) CountPendingByProjectID(ctx context.Context, projectID int64) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM backings
        WHERE project_id = $1 AND status = $2
    `
	var count int
	err := r.db.QueryRow(ctx, query, projectID, domain.BackingStatusPending).Scan(&count)
	if err != nil {
		zap.L().Error("can't count pending backings", zap.Error(err))
		return 0, err
	}
	return count, nil
}
