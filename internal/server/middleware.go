package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/plantulas/plantbot/internal/usercontext"
)

// HeaderTelegramUser carries the caller's Telegram user id on every
// authenticated request.
const HeaderTelegramUser = "X-Telegram-UserId"

// TelegramAuth resolves the request header to an owner account, creating it
// on first sight, and scopes the request context to that owner.
func (s *Server) TelegramAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderTelegramUser))
		if raw == "" {
			AbortWithError(c, newValidationError("x-telegram-userid", "missing_header", "missing X-Telegram-UserId header"))
			return
		}

		telegramID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			AbortWithError(c, newValidationError("x-telegram-userid", "invalid_header", "X-Telegram-UserId must be an integer"))
			return
		}

		user, err := s.userSvc.ResolveOrCreate(c.Request.Context(), telegramID)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := usercontext.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
