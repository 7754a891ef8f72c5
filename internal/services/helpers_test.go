package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/breakbetter-backend/internal/data/repos/testutil"
	types "github.com/yungbote/breakbetter-backend/internal/domain"
	"github.com/yungbote/breakbetter-backend/internal/modules/breaks"
	"github.com/yungbote/breakbetter-backend/internal/platform/apierr"
	"github.com/yungbote/breakbetter-backend/internal/platform/ctxutil"
)

func asUser(userID uuid.UUID) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID})
}

func seedUser(t *testing.T, db *gorm.DB, username string) *types.User {
	t.Helper()
	return testutil.SeedUser(t, context.Background(), db, username)
}

func requireKind(t *testing.T, err error, kind apierr.Kind) {
	t.Helper()
	if !apierr.IsKind(err, kind) {
		t.Fatalf("error kind: want=%s got=%v", kind, err)
	}
}

func validProfile() *types.Profile {
	return &types.Profile{
		Name:                   "Sam",
		StudyInterval:          types.LowMental,
		TimeOfDay:              types.Evening,
		DeadlinePressure:       types.DeadlineHigh,
		PersonalPreferences:    []string{" walking ", "", "music"},
		ScreenUsage:            true,
		ActivityLevel:          types.Active,
		EnergyLevel:            9,
		PreferredBreakDuration: 10,
	}
}

type fakeGenerator struct {
	mu     sync.Mutex
	text   string
	err    error
	calls  int
	system string
	user   string
}

func (f *fakeGenerator) GenerateText(ctx context.Context, system string, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.system = system
	f.user = user
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

var errStoreDown = errors.New("store down")

type failingProfileRepo struct{}

func (failingProfileRepo) Create(context.Context, *gorm.DB, []*types.Profile) ([]*types.Profile, error) {
	return nil, errStoreDown
}

func (failingProfileRepo) ListByUser(context.Context, *gorm.DB, uuid.UUID, int) ([]*types.Profile, error) {
	return nil, errStoreDown
}

type failingRecommendationRepo struct{}

func (failingRecommendationRepo) Create(context.Context, *gorm.DB, []*types.Recommendation) ([]*types.Recommendation, error) {
	return nil, errStoreDown
}

func (failingRecommendationRepo) ListByUser(context.Context, *gorm.DB, uuid.UUID, int) ([]*types.Recommendation, error) {
	return nil, errStoreDown
}

type recordingStatsCache struct {
	mu          sync.Mutex
	entries     map[string]breaks.Stats
	gens        map[uuid.UUID]int64
	invalidated []uuid.UUID
}

func newRecordingStatsCache() *recordingStatsCache {
	return &recordingStatsCache{entries: map[string]breaks.Stats{}, gens: map[uuid.UUID]int64{}}
}

func cacheKey(userID uuid.UUID, days int) string {
	return userID.String() + "/" + strconv.Itoa(days)
}

func (c *recordingStatsCache) Get(_ context.Context, userID uuid.UUID, days int) (*breaks.Stats, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[cacheKey(userID, days)]
	if !ok {
		return nil, false, nil
	}
	return &s, true, nil
}

func (c *recordingStatsCache) Generation(_ context.Context, userID uuid.UUID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[userID], nil
}

func (c *recordingStatsCache) Set(_ context.Context, userID uuid.UUID, days int, gen int64, stats breaks.Stats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[userID] != gen {
		return nil
	}
	c.entries[cacheKey(userID, days)] = stats
	return nil
}

func (c *recordingStatsCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, userID)
	c.gens[userID]++
	for k := range c.entries {
		if strings.HasPrefix(k, userID.String()+"/") {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *recordingStatsCache) Close() error { return nil }
