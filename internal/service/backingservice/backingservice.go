package backingservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/pot/sparkhub/internal/cache"
	"github.com/pot/sparkhub/internal/domain"
	"github.com/pot/sparkhub/internal/pg"
)

type BackingRepo interface {
	Save(ctx context.Context, backing *domain.Backing) error
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Backing, error)
	UpdateStatus(ctx context.Context, id int64, status int) error
	FindDetailsByBackerID(ctx context.Context, backerID int64) ([]domain.BackingDetail, error)
}

type RewardRepo interface {
	FindByID(ctx context.Context, id int64) (*domain.Reward, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Reward, error)
	DecrementStock(ctx context.Context, id int64) error
}

type ProjectRepo interface {
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
}

type Cache interface {
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

type Service struct {
	backingRepo BackingRepo
	rewardRepo  RewardRepo
	projectRepo ProjectRepo
	cache       Cache
	txManager   pg.TXManager
}

func New(backingRepo BackingRepo, rewardRepo RewardRepo, projectRepo ProjectRepo, cache Cache, txManager pg.TXManager) *Service {
	return &Service{
		backingRepo: backingRepo,
		rewardRepo:  rewardRepo,
		projectRepo: projectRepo,
		cache:       cache,
		txManager:   txManager,
	}
}

var (
	ErrBackingNotFound = errors.New("backing not found")
	ErrRewardNotFound  = errors.New("reward not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrNotOwner        = errors.New("backing belongs to another user")
	ErrAlreadySettled  = errors.New("backing is not pending")
	ErrProjectNotOpen  = errors.New("project is not accepting pledges")
	ErrSoldOut         = errors.New("reward tier is sold out")
	ErrProjectExpired  = errors.New("project has ended, payment failed")
)

// Create makes a PENDING pledge against a tier. Stock is deliberately
// not checked or reserved here: the first settler wins it, which keeps
// order creation lock-free.
func (s *Service) Create(ctx context.Context, callerID, rewardID int64) (*domain.Backing, error) {
	reward, err := s.rewardRepo.FindByID(ctx, rewardID)
	if err != nil {
		return nil, err
	}
	if reward == nil {
		return nil, ErrRewardNotFound
	}

	project, err := s.projectRepo.FindByID(ctx, reward.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	if project.Status != domain.ProjectStatusActive || time.Now().After(project.EndTime) {
		return nil, ErrProjectNotOpen
	}

	backing := &domain.Backing{
		BackerID:   callerID,
		ProjectID:  project.ID,
		RewardID:   rewardID,
		Amount:     reward.Amount,
		Status:     domain.BackingStatusPending,
		CreateTime: time.Now(),
	}
	if err := s.backingRepo.Save(ctx, backing); err != nil {
		zap.L().Error("can't save backing", zap.Error(err))
		return nil, err
	}
	return backing, nil
}

// ExecutePayment settles a pledge in a single transaction. Rows are
// locked in the fixed Backing -> Reward -> Project order; every path
// that locks more than one of these rows must keep that order.
func (s *Service) ExecutePayment(ctx context.Context, callerID, backingID int64) (*domain.Backing, error) {
	var settled *domain.Backing

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		backing, err := s.backingRepo.FindByIDForUpdate(ctx, backingID)
		if err != nil {
			return err
		}
		if backing == nil {
			return ErrBackingNotFound
		}
		if backing.BackerID != callerID {
			return ErrNotOwner
		}
		if backing.Status != domain.BackingStatusPending {
			return ErrAlreadySettled
		}

		reward, err := s.rewardRepo.FindByIDForUpdate(ctx, backing.RewardID)
		if err != nil {
			return err
		}
		if reward == nil {
			return ErrRewardNotFound
		}
		if reward.Stock != nil {
			if *reward.Stock <= 0 {
				return ErrSoldOut
			}
			if err := s.rewardRepo.DecrementStock(ctx, reward.ID); err != nil {
				return err
			}
		}

		project, err := s.projectRepo.FindByIDForUpdate(ctx, backing.ProjectID)
		if err != nil {
			return err
		}
		if project == nil {
			return ErrProjectNotFound
		}
		// Project state may have changed since order creation.
		if project.Status != domain.ProjectStatusActive || time.Now().After(project.EndTime) {
			return ErrProjectExpired
		}

		project.CurrentAmount = project.CurrentAmount.Add(backing.Amount)
		if err := s.projectRepo.Update(ctx, project); err != nil {
			return err
		}

		if err := s.backingRepo.UpdateStatus(ctx, backing.ID, domain.BackingStatusPaid); err != nil {
			return err
		}
		backing.Status = domain.BackingStatusPaid
		settled = backing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.evictProjectCache(ctx, settled.ProjectID)
	return settled, nil
}

func (s *Service) GetMyBackings(ctx context.Context, callerID int64) ([]domain.BackingDetail, error) {
	details, err := s.backingRepo.FindDetailsByBackerID(ctx, callerID)
	if err != nil {
		zap.L().Error("failed to get backings", zap.Error(err))
		return nil, err
	}
	return details, nil
}

// Post-commit, best-effort: a stale cache entry is acceptable, a rolled
// back settlement because of Redis is not.
func (s *Service) evictProjectCache(ctx context.Context, projectID int64) {
	if err := s.cache.Delete(ctx, cache.ProjectDetailKey(projectID)); err != nil {
		zap.L().Warn("failed to evict project detail cache", zap.Int64("projectID", projectID), zap.Error(err))
	}
	if err := s.cache.DeletePrefix(ctx, cache.ProjectListPrefix); err != nil {
		zap.L().Warn("failed to evict project list cache", zap.Error(err))
	}
}
