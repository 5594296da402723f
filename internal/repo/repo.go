package repo

import (
	"github.com/pot/sparkhub/internal/pg"
	backingrepo "github.com/pot/sparkhub/internal/repo/backing-repo"
	notificationrepo "github.com/pot/sparkhub/internal/repo/notification-repo"
	projectrepo "github.com/pot/sparkhub/internal/repo/project-repo"
	rewardrepo "github.com/pot/sparkhub/internal/repo/reward-repo"
)

type Repositories struct {
	Projects      *projectrepo.Repository
	Rewards       *rewardrepo.Repository
	Backings      *backingrepo.Repository
	Notifications *notificationrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		Projects:      projectrepo.New(conn, txManager),
		Rewards:       rewardrepo.New(conn, txManager),
		Backings:      backingrepo.New(conn, txManager),
		Notifications: notificationrepo.New(conn),
	}
}
