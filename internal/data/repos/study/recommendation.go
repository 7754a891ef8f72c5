package study

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/breakbetter-backend/internal/domain"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type RecommendationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, recs []*types.Recommendation) ([]*types.Recommendation, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Recommendation, error)
}

type recommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	return &recommendationRepo{db: db, log: baseLog.With("repo", "RecommendationRepo")}
}

func (rr *recommendationRepo) Create(ctx context.Context, tx *gorm.DB, recs []*types.Recommendation) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(recs) == 0 {
		return []*types.Recommendation{}, nil
	}
	for _, r := range recs {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
	}
	if err := transaction.WithContext(ctx).Create(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// ListByUser returns the newest recommendations first.
func (rr *recommendationRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Recommendation
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
