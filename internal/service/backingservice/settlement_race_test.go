package backingservice

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pot/sparkhub/internal/domain"
)

// memStore is an in-memory stand-in for the repositories. Writes are
// only safe under memTxManager, which serializes transactions the way
// row locks do in Postgres.
type memStore struct {
	backings map[int64]*domain.Backing
	rewards  map[int64]*domain.Reward
	projects map[int64]*domain.Project
	nextID   int64
}

func (s *memStore) Save(_ context.Context, backing *domain.Backing) error {
	s.nextID++
	backing.ID = s.nextID
	cp := *backing
	s.backings[backing.ID] = &cp
	return nil
}

func (s *memStore) FindByIDForUpdate(_ context.Context, id int64) (*domain.Backing, error) {
	b, ok := s.backings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (s *memStore) UpdateStatus(_ context.Context, id int64, status int) error {
	s.backings[id].Status = status
	return nil
}

func (s *memStore) FindDetailsByBackerID(_ context.Context, _ int64) ([]domain.BackingDetail, error) {
	return nil, nil
}

type memRewards struct{ store *memStore }

func (r memRewards) FindByID(_ context.Context, id int64) (*domain.Reward, error) {
	rw, ok := r.store.rewards[id]
	if !ok {
		return nil, nil
	}
	cp := *rw
	if rw.Stock != nil {
		stock := *rw.Stock
		cp.Stock = &stock
	}
	return &cp, nil
}

func (r memRewards) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Reward, error) {
	return r.FindByID(ctx, id)
}

func (r memRewards) DecrementStock(_ context.Context, id int64) error {
	rw := r.store.rewards[id]
	if rw.Stock == nil || *rw.Stock <= 0 {
		return ErrSoldOut
	}
	*rw.Stock--
	return nil
}

type memProjects struct{ store *memStore }

func (p memProjects) FindByID(_ context.Context, id int64) (*domain.Project, error) {
	pr, ok := p.store.projects[id]
	if !ok {
		return nil, nil
	}
	cp := *pr
	return &cp, nil
}

func (p memProjects) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Project, error) {
	return p.FindByID(ctx, id)
}

func (p memProjects) Update(_ context.Context, project *domain.Project) error {
	cp := *project
	p.store.projects[project.ID] = &cp
	return nil
}

type noopCache struct{}

func (noopCache) Delete(_ context.Context, _ ...string) error    { return nil }
func (noopCache) DeletePrefix(_ context.Context, _ string) error { return nil }

type memTxManager struct{ mu sync.Mutex }

func (m *memTxManager) Begin(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// Many pending pledges race to settle against a tier with one unit of
// stock. Exactly one settlement must win; the funding total must move
// exactly once.
func TestExecutePayment_StockRace(t *testing.T) {
	const backers = 8

	store := &memStore{
		backings: make(map[int64]*domain.Backing),
		rewards:  make(map[int64]*domain.Reward),
		projects: make(map[int64]*domain.Project),
	}
	stock := int32(1)
	store.rewards[7] = &domain.Reward{ID: 7, ProjectID: 1, Amount: decimal.NewFromInt(500), Stock: &stock}
	store.projects[1] = &domain.Project{
		ID:            1,
		GoalAmount:    decimal.NewFromInt(1000),
		CurrentAmount: decimal.Zero,
		EndTime:       time.Now().Add(24 * time.Hour),
		Status:        domain.ProjectStatusActive,
	}

	backingIDs := make([]int64, 0, backers)
	for i := 0; i < backers; i++ {
		backing := &domain.Backing{
			BackerID: int64(i + 1), ProjectID: 1, RewardID: 7,
			Amount: decimal.NewFromInt(500), Status: domain.BackingStatusPending,
		}
		err := store.Save(context.Background(), backing)
		assert.NoError(t, err)
		backingIDs = append(backingIDs, backing.ID)
	}

	service := New(store, memRewards{store}, memProjects{store}, noopCache{}, &memTxManager{})

	var wg sync.WaitGroup
	errs := make([]error, backers)
	for i := 0; i < backers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.ExecutePayment(context.Background(), int64(i+1), backingIDs[i])
		}(i)
	}
	wg.Wait()

	var succeeded, soldOut int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case err == ErrSoldOut:
			soldOut++
		default:
			t.Fatalf("unexpected settlement error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, backers-1, soldOut)
	assert.Equal(t, int32(0), *store.rewards[7].Stock)
	assert.True(t, store.projects[1].CurrentAmount.Equal(decimal.NewFromInt(500)))

	var paid int
	for _, b := range store.backings {
		if b.Status == domain.BackingStatusPaid {
			paid++
		}
	}
	assert.Equal(t, 1, paid)
}
