package domain

import (
	"context"
	"errors"
)

var ErrInvalidTelegramID = errors.New("invalid telegram user id")

type Service interface {
	// ResolveOrCreate maps a Telegram user id to the owning account,
	// creating it on first sight. Safe under concurrent first contact:
	// the unique constraint wins and the existing row is returned.
	ResolveOrCreate(ctx context.Context, telegramUserID int64) (User, error)
}
