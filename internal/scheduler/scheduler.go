package scheduler

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pot/sparkhub/internal/cache"
	"github.com/pot/sparkhub/internal/domain"
	"github.com/pot/sparkhub/internal/notify"
	"github.com/pot/sparkhub/internal/pg"
)

// ProjectRepo is the subset of the project repository the sweep needs.
type ProjectRepo interface {
	FindByStatus(ctx context.Context, status int) ([]domain.Project, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
}

type Cache interface {
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// ExpiryJob closes funding on projects whose deadline has passed.
type ExpiryJob struct {
	projectRepo ProjectRepo
	cache       Cache
	notifier    notify.Gateway
	txManager   pg.TXManager
}

func NewExpiryJob(projectRepo ProjectRepo, c Cache, notifier notify.Gateway, txManager pg.TXManager) *ExpiryJob {
	return &ExpiryJob{projectRepo: projectRepo, cache: c, notifier: notifier, txManager: txManager}
}

// Execute runs a single sweep. Scheduled runs do not inherit a caller
// context, so the job owns its own.
func (j *ExpiryJob) Execute() {
	ctx := context.Background()
	if err := j.sweep(ctx); err != nil {
		zap.L().Error("project expiry sweep failed", zap.Error(err))
	}
}

func (j *ExpiryJob) sweep(ctx context.Context) error {
	projects, err := j.projectRepo.FindByStatus(ctx, domain.ProjectStatusActive)
	if err != nil {
		return err
	}
	now := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range projects {
		if p.EndTime.After(now) {
			continue
		}
		id := p.ID
		g.Go(func() error {
			if err := j.resolve(ctx, id); err != nil {
				// одна неудача не должна срывать весь проход
				zap.L().Error("can't resolve expired project",
					zap.Int64("projectID", id), zap.Error(err))
			}
			return nil
		})
	}
	return g.Wait()
}

// resolve flips one expired project to its final status. The listing read
// in sweep is unlocked, so the row is re-read under FOR UPDATE inside the
// transaction: settlements lock the same row last (backing -> reward ->
// project) and commit amount increments that the stale copy would erase.
func (j *ExpiryJob) resolve(ctx context.Context, id int64) error {
	var resolved *domain.Project
	err := j.txManager.Begin(ctx, func(ctx context.Context) error {
		project, err := j.projectRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if project == nil || project.Status != domain.ProjectStatusActive {
			// already resolved or deleted since the listing read
			return nil
		}
		if project.CurrentAmount.GreaterThanOrEqual(project.GoalAmount) {
			project.Status = domain.ProjectStatusSuccessful
		} else {
			project.Status = domain.ProjectStatusFailed
		}
		if err := j.projectRepo.Update(ctx, project); err != nil {
			return err
		}
		resolved = project
		return nil
	})
	if err != nil || resolved == nil {
		return err
	}

	if err := j.cache.Delete(ctx, cache.ProjectDetailKey(resolved.ID)); err != nil {
		zap.L().Warn("can't evict project detail cache", zap.Int64("projectID", resolved.ID), zap.Error(err))
	}
	if err := j.cache.DeletePrefix(ctx, cache.ProjectListPrefix); err != nil {
		zap.L().Warn("can't evict project list cache", zap.Error(err))
	}

	if resolved.Status == domain.ProjectStatusSuccessful {
		j.notifier.Notify(ctx, resolved.CreatorID, notify.KindProjectFunded,
			"Your project \""+resolved.Title+"\" reached its funding goal", projectLink(resolved.ID))
	} else {
		j.notifier.Notify(ctx, resolved.CreatorID, notify.KindProjectFailed,
			"Your project \""+resolved.Title+"\" did not reach its funding goal", projectLink(resolved.ID))
	}
	zap.L().Info("expired project resolved",
		zap.Int64("projectID", resolved.ID), zap.Int("status", resolved.Status))
	return nil
}

func projectLink(id int64) string {
	return "/project/" + strconv.FormatInt(id, 10)
}
