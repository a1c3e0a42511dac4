package services

import (
	"context"

	"github.com/yungbote/slotswapper-backend/internal/data/aggregates"
	"github.com/yungbote/slotswapper-backend/internal/data/repos"
	types "github.com/yungbote/slotswapper-backend/internal/domain"
	domainagg "github.com/yungbote/slotswapper-backend/internal/domain/aggregates"
	"github.com/yungbote/slotswapper-backend/internal/platform/dbctx"
	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	const op = "User.GetMe"
	uid, err := callerID(ctx, op)
	if err != nil {
		return nil, err
	}
	u, err := us.userRepo.GetByID(dbctx.Context{Ctx: ctx}, uid)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if u == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "user not found", nil)
	}
	return u, nil
}
