package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/plantulas/plantbot/internal/clock"
	"github.com/plantulas/plantbot/internal/user/domain"
	"github.com/plantulas/plantbot/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) ResolveOrCreate(ctx context.Context, telegramUserID int64) (domain.User, error) {
	if telegramUserID <= 0 {
		return domain.User{}, domain.ErrInvalidTelegramID
	}

	existing, err := s.repo.FindByTelegramID(ctx, s.db, telegramUserID)
	if err != nil {
		return domain.User{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	user := domain.User{
		ID:             s.genID.Generate(),
		TelegramUserID: telegramUserID,
		CreatedAt:      s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		if !db.IsDuplicateKeyErr(err) {
			return domain.User{}, err
		}
		// Lost the first-contact race; the row written by the winner is ours.
		existing, err := s.repo.FindByTelegramID(ctx, s.db, telegramUserID)
		if err != nil {
			return domain.User{}, err
		}
		if existing == nil {
			return domain.User{}, gorm.ErrRecordNotFound
		}
		return *existing, nil
	}

	s.log.Info("created user on first contact", zap.Int64("telegram_user_id", telegramUserID))
	return user, nil
}
