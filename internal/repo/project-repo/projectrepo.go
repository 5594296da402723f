package projectrepo

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

const projectColumns = `id, creator_id, category_id, title, description, cover_image, goal_amount, current_amount, end_time, status, create_time`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.CreatorID, &p.CategoryID, &p.Title, &p.Description, &p.CoverImage,
		&p.GoalAmount, &p.CurrentAmount, &p.EndTime, &p.Status, &p.CreateTime)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	query := `
        SELECT ` + projectColumns + `
        FROM projects
        WHERE id = $1
    `
	project, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find project", zap.Error(err))
		return nil, err
	}
	return project, nil
}

// FindByIDForUpdate locks the project row until the enclosing
// transaction commits. Must be called inside TXManager.Begin.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Project, error) {
	query := `
        SELECT ` + projectColumns + `
        FROM projects
        WHERE id = $1
        FOR UPDATE
    `
	project, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't lock project row", zap.Error(err))
		return nil, err
	}
	return project, nil
}

func (r *Repository) FindByStatus(ctx context.Context, status int) ([]domain.Project, error) {
	query := `
        SELECT ` + projectColumns + `
        FROM projects
        WHERE status = $1
        ORDER BY create_time DESC
    `
	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		zap.L().Error("can't get projects by status", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectProjects(rows)
}

func (r *Repository) FindPageByStatus(ctx context.Context, status, limit, offset int) ([]domain.Project, error) {
	query := `
        SELECT ` + projectColumns + `
        FROM projects
        WHERE status = $1
        ORDER BY create_time DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		zap.L().Error("can't get projects page", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectProjects(rows)
}

func (r *Repository) FindByCreatorID(ctx context.Context, creatorID int64) ([]domain.Project, error) {
	query := `
        SELECT ` + projectColumns + `
        FROM projects
        WHERE creator_id = $1
        ORDER BY create_time DESC
    `
	rows, err := r.db.Query(ctx, query, creatorID)
	if err != nil {
		zap.L().Error("can't get creator projects", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectProjects(rows)
}

func collectProjects(rows pgx.Rows) ([]domain.Project, error) {
	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		err := rows.Scan(&p.ID, &p.CreatorID, &p.CategoryID, &p.Title, &p.Description, &p.CoverImage,
			&p.GoalAmount, &p.CurrentAmount, &p.EndTime, &p.Status, &p.CreateTime)
		if err != nil {
			zap.L().Error("can't scan project row", zap.Error(err))
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (r *Repository) Save(ctx context.Context, project *domain.Project) error {
	query := `
        INSERT INTO projects (creator_id, category_id, title, description, cover_image, goal_amount, current_amount, end_time, status, create_time)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query,
			project.CreatorID, project.CategoryID, project.Title, project.Description, project.CoverImage,
			project.GoalAmount, project.CurrentAmount, project.EndTime, project.Status, project.CreateTime)
		if err := row.Scan(&project.ID); err != nil {
			zap.L().Error("can't save project", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, project *domain.Project) error {
	query := `
        UPDATE projects
        SET category_id = $1, title = $2, description = $3, cover_image = $4, goal_amount = $5,
            current_amount = $6, end_time = $7, status = $8
        WHERE id = $9
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query,
			project.CategoryID, project.Title, project.Description, project.CoverImage, project.GoalAmount,
			project.CurrentAmount, project.EndTime, project.Status, project.ID)
		if err != nil {
			zap.L().Error("failed to update project", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `
        DELETE FROM projects
        WHERE id = $1
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, id)
		if err != nil {
			zap.L().Error("failed to delete project", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}
