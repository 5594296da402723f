package service

import (
	"time"

	"github.com/pot/sparkhub/internal/cache"
	"github.com/pot/sparkhub/internal/filestore"
	backinghandlers "github.com/pot/sparkhub/internal/handlers/backings"
	projecthandlers "github.com/pot/sparkhub/internal/handlers/projects"
	"github.com/pot/sparkhub/internal/notify"
	"github.com/pot/sparkhub/internal/pg"
	"github.com/pot/sparkhub/internal/repo"
	backingservice "github.com/pot/sparkhub/internal/service/backingservice"
	projectservice "github.com/pot/sparkhub/internal/service/projectservice"
)

type Services struct {
	ProjectService projecthandlers.Service
	BackingService backinghandlers.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, c cache.Cache,
	notifier notify.Gateway, fileStore filestore.FileStore, cacheTTL time.Duration) *Services {
	projectService := projectservice.New(
		repo.Projects, repo.Rewards, repo.Backings, c, notifier, fileStore, txManager, cacheTTL)
	backingService := backingservice.New(
		repo.Backings, repo.Rewards, repo.Projects, c, txManager)

	return &Services{
		ProjectService: projectService,
		BackingService: backingService,
	}
}
