package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/slotswapper-backend/internal/data/repos/scheduling"
	"github.com/yungbote/slotswapper-backend/internal/data/repos/user"
	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type EventRepo = scheduling.EventRepo
type SwapRequestRepo = scheduling.SwapRequestRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewEventRepo(db *gorm.DB, baseLog *logger.Logger) EventRepo {
	return scheduling.NewEventRepo(db, baseLog)
}
func NewSwapRequestRepo(db *gorm.DB, baseLog *logger.Logger) SwapRequestRepo {
	return scheduling.NewSwapRequestRepo(db, baseLog)
}
