package usecase

import (
	"context"

	"streambay/internal/domain/entity"
	"streambay/internal/infrastructure/ratelimit"
	"streambay/pkg/errors"
	"streambay/pkg/logger"
)

type TokenUseCase struct {
	chat        ChatProvider
	rateLimiter *ratelimit.RateLimiter
}

func NewTokenUseCase(chat ChatProvider) *TokenUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &TokenUseCase{
		chat:        chat,
		rateLimiter: rateLimiter,
	}
}

type IssueTokenInput struct {
	UserID string
	Name   string
}

type TokenResponse struct {
	APIKey string          `json:"apiKey"`
	Token  string          `json:"token"`
	User   entity.ChatUser `json:"user"`
}

// IssueToken upserts the user with the chat provider and mints a session
// token scoped to that user id. The caller is trusted; the request itself is
// not authenticated.
func (uc *TokenUseCase) IssueToken(ctx context.Context, input IssueTokenInput) (*TokenResponse, error) {
	if allowed, waitTime := uc.rateLimiter.Allow(input.UserID, "issue_token"); !allowed {
		logger.Warn("Token minting rate limited for user %s, wait %v", input.UserID, waitTime)
		return nil, errors.TooManyRequests("Too many token requests", waitTime)
	}

	if !uc.chat.Configured() {
		return nil, errors.NotConfigured("Stream Chat credentials")
	}

	user := entity.ChatUser{ID: input.UserID, Name: input.Name, Role: "user"}
	if err := uc.chat.UpsertUsers(ctx, []entity.ChatUser{user}); err != nil {
		return nil, err
	}

	token, err := uc.chat.CreateToken(input.UserID)
	if err != nil {
		return nil, err
	}

	logger.Info("Issued chat token for user %s (%s)", input.UserID, input.Name)

	return &TokenResponse{
		APIKey: uc.chat.APIKey(),
		Token:  token,
		User:   entity.ChatUser{ID: input.UserID, Name: input.Name},
	}, nil
}
