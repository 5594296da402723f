package rewardrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/pot/sparkhub/internal/domain"
	"github.com/pot/sparkhub/internal/pg"
)

// ErrNoStock is returned when a decrement would drive a limited stock
// below zero. Under the row lock this means the tier is sold out.
var ErrNoStock = errors.New("no stock left to decrement")

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

const rewardColumns = `id, project_id, title, description, amount, stock, image_url`

func scanReward(row pgx.Row) (*domain.Reward, error) {
	var reward domain.Reward
	err := row.Scan(&reward.ID, &reward.ProjectID, &reward.Title, &reward.Description,
		&reward.Amount, &reward.Stock, &reward.ImageURL)
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Reward, error) {
	query := `
        SELECT ` + rewardColumns + `
        FROM rewards
        WHERE id = $1
    `
	reward, err := scanReward(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find reward", zap.Error(err))
		return nil, err
	}
	return reward, nil
}

// FindByIDForUpdate locks the reward row until the enclosing
// transaction commits. Must be called inside TXManager.Begin.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Reward, error) {
	query := `
        SELECT ` + rewardColumns + `
        FROM rewards
        WHERE id = $1
        FOR UPDATE
    `
	reward, err := scanReward(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't lock reward row", zap.Error(err))
		return nil, err
	}
	return reward, nil
}

func (r *Repository) FindByProjectID(ctx context.Context, projectID int64) ([]domain.Reward, error) {
	query := `
        SELECT ` + rewardColumns + `
        FROM rewards
        WHERE project_id = $1
        ORDER BY amount ASC
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		zap.L().Error("can't get project rewards", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var rewards []domain.Reward
	for rows.Next() {
		var reward domain.Reward
		err := rows.Scan(&reward.ID, &reward.ProjectID, &reward.Title, &reward.Description,
			&reward.Amount, &reward.Stock, &reward.ImageURL)
		if err != nil {
			zap.L().Error("can't scan reward row", zap.Error(err))
			return nil, err
		}
		rewards = append(rewards, reward)
	}
	return rewards, nil
}

func (r *Repository) InsertList(ctx context.Context, rewards []domain.Reward) error {
	query := `
        INSERT INTO rewards (project_id, title, description, amount, stock, image_url)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		for i := range rewards {
			reward := &rewards[i]
			row := r.db.QueryRow(ctx, query,
				reward.ProjectID, reward.Title, reward.Description, reward.Amount, reward.Stock, reward.ImageURL)
			if err := row.Scan(&reward.ID); err != nil {
				zap.L().Error("can't insert reward", zap.Error(err))
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) DeleteByProjectID(ctx context.Context, projectID int64) error {
	query := `
        DELETE FROM rewards
        WHERE project_id = $1
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, projectID)
		if err != nil {
			zap.L().Error("failed to delete project rewards", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// DecrementStock takes one unit off a limited tier. Callers must hold
// the reward row lock; the WHERE clause keeps stock from going negative
// even if they do not.
func (r *Repository) DecrementStock(ctx context.Context, id int64) error {
	query := `
        UPDATE rewards
        SET stock = stock - 1
        WHERE id = $1 AND stock IS NOT NULL AND stock > 0
    `
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		zap.L().Error("failed to decrement reward stock", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoStock
	}
	return nil
}
