package study

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/breakbetter-backend/internal/domain"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type ProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profiles []*types.Profile) ([]*types.Profile, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Profile, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{db: db, log: baseLog.With("repo", "ProfileRepo")}
}

func (pr *profileRepo) Create(ctx context.Context, tx *gorm.DB, profiles []*types.Profile) ([]*types.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(profiles) == 0 {
		return []*types.Profile{}, nil
	}
	for _, p := range profiles {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
	}
	if err := transaction.WithContext(ctx).Create(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (pr *profileRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Profile
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
