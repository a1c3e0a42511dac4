package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/slotswapper-backend/internal/data/repos"
	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
)

type Repos struct {
	User        repos.UserRepo
	Event       repos.EventRepo
	SwapRequest repos.SwapRequestRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		Event:       repos.NewEventRepo(db, log),
		SwapRequest: repos.NewSwapRequestRepo(db, log),
	}
}
