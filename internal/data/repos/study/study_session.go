package study

import (
	"context"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/breakbetter-backend/internal/domain"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type StudySessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sessions []*types.StudySession) ([]*types.StudySession, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.StudySession, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.StudySession, error)
	ListCompletedSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.StudySession, error)
	// Complete closes an open session owned by userID. It reports false when
	// no open session matched.
	Complete(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, endTime time.Time, duration int, notes *string) (bool, error)
}

type studySessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudySessionRepo(db *gorm.DB, baseLog *logger.Logger) StudySessionRepo {
	return &studySessionRepo{db: db, log: baseLog.With("repo", "StudySessionRepo")}
}

func (sr *studySessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*types.StudySession) ([]*types.StudySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(sessions) == 0 {
		return []*types.StudySession{}, nil
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

func (sr *studySessionRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) (*types.StudySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.StudySession
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

func (sr *studySessionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.StudySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.StudySession
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *studySessionRepo) ListCompletedSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.StudySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.StudySession
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND completed = ? AND start_time >= ?", userID, true, since).
		Order("start_time ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *studySessionRepo) Complete(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, endTime time.Time, duration int, notes *string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.StudySession{}).
		Where("id = ? AND user_id = ? AND completed = ?", id, userID, false).
		Updates(map[string]any{
			"end_time":   endTime,
			"completed":  true,
			"duration":   duration,
			"notes":      notes,
			"updated_at": endTime,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
