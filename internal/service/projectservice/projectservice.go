package projectservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pot/sparkhub/internal/cache"
	"github.com/pot/sparkhub/internal/domain"
	"github.com/pot/sparkhub/internal/dto"
	"github.com/pot/sparkhub/internal/filestore"
	"github.com/pot/sparkhub/internal/notify"
	"github.com/pot/sparkhub/internal/pg"
)

type ProjectRepo interface {
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	FindPageByStatus(ctx context.Context, status, limit, offset int) ([]domain.Project, error)
	FindByCreatorID(ctx context.Context, creatorID int64) ([]domain.Project, error)
	Save(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id int64) error
}

type RewardRepo interface {
	FindByProjectID(ctx context.Context, projectID int64) ([]domain.Reward, error)
	InsertList(ctx context.Context, rewards []domain.Reward) error
	DeleteByProjectID(ctx context.Context, projectID int64) error
}

type BackingRepo interface {
	CountPendingByProjectID(ctx context.Context, projectID int64) (int, error)
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

type Service struct {
	projectRepo ProjectRepo
	rewardRepo  RewardRepo
	backingRepo BackingRepo
	cache       Cache
	notifier    notify.Gateway
	fileStore   filestore.FileStore
	txManager   pg.TXManager
	cacheTTL    time.Duration
}

func New(projectRepo ProjectRepo, rewardRepo RewardRepo, backingRepo BackingRepo,
	cache Cache, notifier notify.Gateway, fileStore filestore.FileStore,
	txManager pg.TXManager, cacheTTL time.Duration) *Service {
	return &Service{
		projectRepo: projectRepo,
		rewardRepo:  rewardRepo,
		backingRepo: backingRepo,
		cache:       cache,
		notifier:    notifier,
		fileStore:   fileStore,
		txManager:   txManager,
		cacheTTL:    cacheTTL,
	}
}

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrNoRewards       = errors.New("project must have at least one reward tier")
	ErrGoalUnreachable = errors.New("reward tiers cannot raise the goal amount even when sold out")
	ErrNotOwner        = errors.New("project belongs to another user")
	ErrNotModifiable   = errors.New("project is active or already successful, cannot modify")
	ErrPendingBackings = errors.New("project has pending pledges, cannot replace reward tiers")
	ErrInvalidStatus   = errors.New("invalid status code")
	ErrNotAllowed      = errors.New("admin role required")
)

// goalReachable checks the worst case: could the goal be met with every
// tier sold out. A tier with unlimited stock can raise any amount, so
// its presence satisfies the bound by itself.
func goalReachable(goal decimal.Decimal, rewards []dto.RewardDTO) bool {
	total := decimal.Zero
	for _, r := range rewards {
		if r.Stock == nil {
			return true
		}
		total = total.Add(r.Amount.Mul(decimal.NewFromInt(int64(*r.Stock))))
	}
	return total.GreaterThanOrEqual(goal)
}

func rewardsFromDTO(projectID int64, in []dto.RewardDTO) []domain.Reward {
	rewards := make([]domain.Reward, 0, len(in))
	for _, r := range in {
		rewards = append(rewards, domain.Reward{
			ProjectID:   projectID,
			Title:       r.Title,
			Description: r.Description,
			Amount:      r.Amount,
			Stock:       r.Stock,
			ImageURL:    r.ImageURL,
		})
	}
	return rewards
}

func (s *Service) Create(ctx context.Context, callerID int64, in dto.ProjectCreateRequestDTO) (*domain.Project, error) {
	if len(in.Rewards) == 0 {
		return nil, ErrNoRewards
	}
	if !goalReachable(in.GoalAmount, in.Rewards) {
		return nil, ErrGoalUnreachable
	}

	project := &domain.Project{
		CreatorID:     callerID,
		CategoryID:    in.CategoryID,
		Title:         in.Title,
		Description:   in.Description,
		CoverImage:    in.CoverImage,
		GoalAmount:    in.GoalAmount,
		CurrentAmount: decimal.Zero,
		EndTime:       in.EndTime,
		Status:        domain.ProjectStatusAuditing,
		CreateTime:    time.Now(),
	}

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.Save(ctx, project); err != nil {
			return err
		}
		return s.rewardRepo.InsertList(ctx, rewardsFromDTO(project.ID, in.Rewards))
	})
	if err != nil {
		zap.L().Error("can't create project", zap.Error(err))
		return nil, err
	}

	s.notifier.Notify(ctx, callerID, notify.KindProjectCreated,
		fmt.Sprintf("Your project '%s' was created and is awaiting review.", project.Title),
		"/my-projects")
	return project, nil
}

// Update replaces the project fields and the whole reward set, and
// resets the status to AUDITING so every edit goes through re-review.
// Refused while PENDING pledges reference the project: the reinsert
// would leave their reward ids dangling.
func (s *Service) Update(ctx context.Context, callerID, id int64, in dto.ProjectUpdateRequestDTO) (*domain.Project, error) {
	if len(in.Rewards) == 0 {
		return nil, ErrNoRewards
	}

	var project *domain.Project
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		project, err = s.projectRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if project == nil {
			return ErrProjectNotFound
		}
		if project.CreatorID != callerID {
			return ErrNotOwner
		}
		if project.Status != domain.ProjectStatusAuditing && project.Status != domain.ProjectStatusFailed {
			return ErrNotModifiable
		}

		pending, err := s.backingRepo.CountPendingByProjectID(ctx, id)
		if err != nil {
			return err
		}
		if pending > 0 {
			return ErrPendingBackings
		}

		project.CategoryID = in.CategoryID
		project.Title = in.Title
		project.Description = in.Description
		project.CoverImage = in.CoverImage
		project.GoalAmount = in.GoalAmount
		project.EndTime = in.EndTime
		project.Status = domain.ProjectStatusAuditing

		if err := s.projectRepo.Update(ctx, project); err != nil {
			return err
		}
		if err := s.rewardRepo.DeleteByProjectID(ctx, id); err != nil {
			return err
		}
		return s.rewardRepo.InsertList(ctx, rewardsFromDTO(id, in.Rewards))
	})
	if err != nil {
		return nil, err
	}

	s.evictProjectCache(ctx, id)
	s.notifier.Notify(ctx, project.CreatorID, notify.KindProjectUpdated,
		fmt.Sprintf("Your project '%s' was updated and resubmitted for review.", project.Title),
		"/my-projects")
	return project, nil
}

// Audit applies the admin decision. ACTIVE approves the project; FAILED
// rejects it and cascade-deletes the project, its reward tiers and
// their media. Expiry never deletes anything, only rejection does.
func (s *Service) Audit(ctx context.Context, callerID int64, role string, id int64, newStatus int) (*domain.Project, error) {
	if role != domain.RoleAdmin {
		return nil, ErrNotAllowed
	}

	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	if newStatus != domain.ProjectStatusActive && newStatus != domain.ProjectStatusFailed {
		return nil, ErrInvalidStatus
	}

	if newStatus == domain.ProjectStatusFailed {
		// the row is gone after the cascade, so there is no project to return
		if err := s.reject(ctx, project); err != nil {
			return nil, err
		}
		return nil, nil
	}

	project.Status = domain.ProjectStatusActive
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.evictProjectCache(ctx, id)
	s.notifier.Notify(ctx, project.CreatorID, notify.KindProjectApproved,
		fmt.Sprintf("Congratulations! Your project '%s' passed review and is now live.", project.Title),
		fmt.Sprintf("/project/%d", project.ID))
	return project, nil
}

func (s *Service) reject(ctx context.Context, project *domain.Project) error {
	rewards, err := s.rewardRepo.FindByProjectID(ctx, project.ID)
	if err != nil {
		return err
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.rewardRepo.DeleteByProjectID(ctx, project.ID); err != nil {
			return err
		}
		return s.projectRepo.Delete(ctx, project.ID)
	})
	if err != nil {
		zap.L().Error("can't delete rejected project", zap.Int64("projectID", project.ID), zap.Error(err))
		return err
	}

	// Media cleanup is best-effort: the rows are already gone.
	for _, reward := range rewards {
		if reward.ImageURL == "" {
			continue
		}
		if err := s.fileStore.Delete(ctx, reward.ImageURL); err != nil {
			zap.L().Warn("can't delete reward image", zap.String("url", reward.ImageURL), zap.Error(err))
		}
	}
	if project.CoverImage != "" {
		if err := s.fileStore.Delete(ctx, project.CoverImage); err != nil {
			zap.L().Warn("can't delete cover image", zap.String("url", project.CoverImage), zap.Error(err))
		}
	}

	s.evictProjectCache(ctx, project.ID)
	s.notifier.Notify(ctx, project.CreatorID, notify.KindProjectRejected,
		fmt.Sprintf("Your project '%s' did not pass review.", project.Title),
		"/my-projects")
	return nil
}

func (s *Service) GetPublicProjects(ctx context.Context, page, size int) ([]dto.ProjectSummaryDTO, error) {
	key := cache.ProjectListKey("public", page, size)
	if cached, err := s.cache.Get(ctx, key); err != nil {
		zap.L().Warn("project list cache read failed", zap.Error(err))
	} else if cached != nil {
		var summaries []dto.ProjectSummaryDTO
		if uerr := json.Unmarshal(cached, &summaries); uerr == nil {
			return summaries, nil
		} else {
			zap.L().Warn("can't decode cached project list", zap.Error(uerr))
		}
	}

	projects, err := s.projectRepo.FindPageByStatus(ctx, domain.ProjectStatusActive, size, (page-1)*size)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.ProjectSummaryDTO, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, summaryFromProject(p))
	}

	if encoded, err := json.Marshal(summaries); err == nil {
		if err := s.cache.Set(ctx, key, encoded, s.cacheTTL); err != nil {
			zap.L().Warn("project list cache write failed", zap.Error(err))
		}
	}
	return summaries, nil
}

// GetDetail returns the project with its reward tiers. A project still
// in review is visible only to its creator and to admins.
func (s *Service) GetDetail(ctx context.Context, id, callerID int64, role string) (*dto.ProjectDetailDTO, error) {
	detail, err := s.loadDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrProjectNotFound
	}

	if detail.Status == domain.ProjectStatusAuditing {
		isOwner := callerID != 0 && callerID == detail.CreatorID
		if !isOwner && role != domain.RoleAdmin {
			return nil, ErrProjectNotFound
		}
	}
	return detail, nil
}

func (s *Service) loadDetail(ctx context.Context, id int64) (*dto.ProjectDetailDTO, error) {
	key := cache.ProjectDetailKey(id)
	if cached, err := s.cache.Get(ctx, key); err != nil {
		zap.L().Warn("project detail cache read failed", zap.Error(err))
	} else if cached != nil {
		var detail dto.ProjectDetailDTO
		if uerr := json.Unmarshal(cached, &detail); uerr == nil {
			return &detail, nil
		} else {
			zap.L().Warn("can't decode cached project detail", zap.Error(uerr))
		}
	}

	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	rewards, err := s.rewardRepo.FindByProjectID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.ProjectDetailDTO{
		ProjectSummaryDTO: summaryFromProject(*project),
		Description:       project.Description,
		CreatorID:         project.CreatorID,
		CategoryID:        project.CategoryID,
		Rewards:           make([]dto.RewardResponseDTO, 0, len(rewards)),
	}
	for _, r := range rewards {
		detail.Rewards = append(detail.Rewards, dto.RewardResponseDTO{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Amount:      r.Amount,
			Stock:       r.Stock,
			ImageURL:    r.ImageURL,
		})
	}

	if encoded, err := json.Marshal(detail); err == nil {
		if err := s.cache.Set(ctx, key, encoded, s.cacheTTL); err != nil {
			zap.L().Warn("project detail cache write failed", zap.Error(err))
		}
	}
	return detail, nil
}

func (s *Service) GetMyProjects(ctx context.Context, callerID int64) ([]dto.ProjectSummaryDTO, error) {
	projects, err := s.projectRepo.FindByCreatorID(ctx, callerID)
	if err != nil {
		zap.L().Error("failed to get creator projects", zap.Error(err))
		return nil, err
	}
	summaries := make([]dto.ProjectSummaryDTO, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, summaryFromProject(p))
	}
	return summaries, nil
}

func summaryFromProject(p domain.Project) dto.ProjectSummaryDTO {
	return dto.ProjectSummaryFromDomain(&p)
}

func (s *Service) evictProjectCache(ctx context.Context, projectID int64) {
	if err := s.cache.Delete(ctx, cache.ProjectDetailKey(projectID)); err != nil {
		zap.L().Warn("failed to evict project detail cache", zap.Int64("projectID", projectID), zap.Error(err))
	}
	if err := s.cache.DeletePrefix(ctx, cache.ProjectListPrefix); err != nil {
		zap.L().Warn("failed to evict project list cache", zap.Error(err))
	}
}
