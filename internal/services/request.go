package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/yungbote/breakbetter-backend/internal/platform/apierr"
	"github.com/yungbote/breakbetter-backend/internal/platform/ctxutil"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

func requireUserID(ctx context.Context) (uuid.UUID, error) {
	userID := ctxutil.UserID(ctx)
	if userID == uuid.Nil {
		return uuid.Nil, apierr.Auth("unauthorized", errors.New("missing caller identity"))
	}
	return userID, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
