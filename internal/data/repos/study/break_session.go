package study

import (
	"context"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/breakbetter-backend/internal/domain"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type BreakSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sessions []*types.BreakSession) ([]*types.BreakSession, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.BreakSession, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.BreakSession, error)
	ListCompletedSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.BreakSession, error)
	Complete(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, endTime time.Time, energyAfter *int) (bool, error)
}

type breakSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBreakSessionRepo(db *gorm.DB, baseLog *logger.Logger) BreakSessionRepo {
	return &breakSessionRepo{db: db, log: baseLog.With("repo", "BreakSessionRepo")}
}

func (br *breakSessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*types.BreakSession) ([]*types.BreakSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	if len(sessions) == 0 {
		return []*types.BreakSession{}, nil
	}
	for _, s := range sessions {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
	}
	if err := transaction.WithContext(ctx).Create(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (br *breakSessionRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.BreakSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.BreakSession
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (br *breakSessionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.BreakSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.BreakSession
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *breakSessionRepo) ListCompletedSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.BreakSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.BreakSession
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND completed = ? AND start_time >= ?", userID, true, since).
		Order("start_time ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *breakSessionRepo) Complete(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, endTime time.Time, energyAfter *int) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.BreakSession{}).
		Where("id = ? AND user_id = ? AND completed = ?", id, userID, false).
		Updates(map[string]any{
			"end_time":           endTime,
			"completed":          true,
			"energy_level_after": energyAfter,
			"updated_at":         endTime,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
