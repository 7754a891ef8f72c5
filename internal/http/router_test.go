package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/breakbetter-backend/internal/data/repos"
	"github.com/yungbote/breakbetter-backend/internal/data/repos/testutil"
	httpH "github.com/yungbote/breakbetter-backend/internal/http/handlers"
	httpMW "github.com/yungbote/breakbetter-backend/internal/http/middleware"
	"github.com/yungbote/breakbetter-backend/internal/modules/breaks"
	"github.com/yungbote/breakbetter-backend/internal/observability"
	"github.com/yungbote/breakbetter-backend/internal/platform/openai"
	"github.com/yungbote/breakbetter-backend/internal/services"
)

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) GenerateText(context.Context, string, string) (string, error) {
	return s.text, s.err
}

func newTestRouter(t *testing.T, gen openai.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(db, log)
	profileRepo := repos.NewProfileRepo(db, log)
	recRepo := repos.NewRecommendationRepo(db, log)
	studyRepo := repos.NewStudySessionRepo(db, log)
	breakRepo := repos.NewBreakSessionRepo(db, log)

	authService := services.NewAuthService(log, userRepo, "test-secret", 30*time.Minute)
	metrics := observability.NewMetrics()

	return NewRouter(RouterConfig{
		Log:            log,
		Metrics:        metrics,
		AuthMiddleware: httpMW.NewAuthMiddleware(log, authService),
		HealthHandler:  httpH.NewHealthHandler(),
		AuthHandler:    httpH.NewAuthHandler(log, authService),
		UserHandler:    httpH.NewUserHandler(log, services.NewUserService(log, userRepo)),
		ProfileHandler: httpH.NewProfileHandler(log, services.NewProfileService(log, profileRepo)),
		RecommendationHandler: httpH.NewRecommendationHandler(log,
			services.NewRecommendationService(log, metrics, gen, breaks.NewScorer(true), profileRepo, recRepo)),
		SessionHandler: httpH.NewSessionHandler(log, services.NewSessionService(db, log, metrics, studyRepo, breakRepo, nil)),
		StatsHandler:   httpH.NewStatsHandler(log, services.NewStatsService(log, metrics, studyRepo, breakRepo, nil)),
	})
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func registerAndLogin(t *testing.T, r http.Handler) string {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/register", "", map[string]string{"username": "ada", "password": "secret123"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: want=201 got=%d %s", rec.Code, rec.Body.String())
	}

	form := url.Values{"username": {"ada"}, "password": {"secret123"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	tokRec := httptest.NewRecorder()
	r.ServeHTTP(tokRec, req)
	if tokRec.Code != http.StatusOK {
		t.Fatalf("token: want=200 got=%d %s", tokRec.Code, tokRec.Body.String())
	}
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	decode(t, tokRec, &tok)
	if tok.TokenType != "bearer" || tok.ExpiresIn != 1800 || tok.AccessToken == "" {
		t.Fatalf("token response: got %+v", tok)
	}
	return tok.AccessToken
}

var profileBody = map[string]any{
	"name":                     "Sam",
	"study_interval":           "low_mental",
	"time_of_day":              "evening",
	"deadline_pressure":        "high",
	"personal_preferences":     "walking, music ,",
	"screen_usage":             true,
	"activity_level":           "active",
	"energy_level":             9,
	"preferred_break_duration": 10,
}

func TestRootAndHealth(t *testing.T) {
	r := newTestRouter(t, stubGenerator{})
	rec := doJSON(t, r, http.MethodGet, "/", "", nil)
	var body map[string]string
	decode(t, rec, &body)
	if body["message"] != "Welcome to BreakBetter API" {
		t.Fatalf("root: got %v", body)
	}
	if rec := doJSON(t, r, http.MethodGet, "/healthcheck", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthcheck: got %d", rec.Code)
	}
}

func TestDuplicateRegistration(t *testing.T) {
	r := newTestRouter(t, stubGenerator{})
	registerAndLogin(t, r)
	rec := doJSON(t, r, http.MethodPost, "/api/register", "", map[string]string{"username": "ada", "password": "another1"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: want=409 got=%d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{"username": "ada", "password": "wrong-pass"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: want=401 got=%d", rec.Code)
	}
}

func TestRecommendFlow(t *testing.T) {
	r := newTestRouter(t, stubGenerator{text: "Take a short walk\nThen stretch."})
	if rec := doJSON(t, r, http.MethodPost, "/api/recommend", "", profileBody); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous recommend: want=401 got=%d", rec.Code)
	}
	token := registerAndLogin(t, r)

	rec := doJSON(t, r, http.MethodPost, "/api/recommend", token, profileBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("recommend: want=200 got=%d %s", rec.Code, rec.Body.String())
	}
	var got struct {
		StudyInterval string   `json:"study_interval"`
		BreakActivity string   `json:"break_activity"`
		Duration      int      `json:"duration"`
		Benefits      []string `json:"benefits"`
	}
	decode(t, rec, &got)
	if got.StudyInterval != "33 minutes" || got.BreakActivity != "Take a short walk" || got.Duration != 10 {
		t.Fatalf("recommendation: got %+v", got)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/history?limit=5", token, nil)
	var history struct {
		Recommendations []json.RawMessage `json:"recommendations"`
	}
	decode(t, rec, &history)
	if len(history.Recommendations) != 1 {
		t.Fatalf("history: want=1 got=%d", len(history.Recommendations))
	}

	rec = doJSON(t, r, http.MethodGet, "/api/profiles", token, nil)
	var profiles struct {
		Profiles []struct {
			PersonalPreferences []string `json:"personal_preferences"`
		} `json:"profiles"`
	}
	decode(t, rec, &profiles)
	if len(profiles.Profiles) != 1 || len(profiles.Profiles[0].PersonalPreferences) != 2 {
		t.Fatalf("profiles: got %+v", profiles)
	}
}

func TestRecommendGenerationFailureIs502(t *testing.T) {
	r := newTestRouter(t, stubGenerator{err: context.DeadlineExceeded})
	token := registerAndLogin(t, r)
	rec := doJSON(t, r, http.MethodPost, "/api/recommend", token, profileBody)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("want=502 got=%d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "break_activity") {
		t.Fatalf("partial recommendation returned: %s", rec.Body.String())
	}
}

func TestRecommendWithoutGeneratorIsConfigurationError(t *testing.T) {
	r := newTestRouter(t, nil)
	token := registerAndLogin(t, r)

	rec := doJSON(t, r, http.MethodPost, "/api/recommend", token, map[string]any{"name": "Sam", "energy_level": 42})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("malformed profile without generator: want=500 got=%d %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, rec, &body)
	if body.Error.Code != "generator_not_configured" {
		t.Fatalf("error code: got %q", body.Error.Code)
	}
	if rec := doJSON(t, r, http.MethodPost, "/api/recommend", token, profileBody); rec.Code != http.StatusInternalServerError {
		t.Fatalf("valid profile without generator: want=500 got=%d", rec.Code)
	}
}

func TestAnonymousProfileAcceptsPreferenceArray(t *testing.T) {
	r := newTestRouter(t, stubGenerator{})
	body := map[string]any{}
	for k, v := range profileBody {
		body[k] = v
	}
	body["personal_preferences"] = []string{" reading ", "music"}
	rec := doJSON(t, r, http.MethodPost, "/api/profile", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: want=200 got=%d %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Name                string   `json:"name"`
		PersonalPreferences []string `json:"personal_preferences"`
	}
	decode(t, rec, &got)
	if got.Name != "Sam" || len(got.PersonalPreferences) != 2 || got.PersonalPreferences[0] != "reading" {
		t.Fatalf("profile echo: got %+v", got)
	}

	body["energy_level"] = 0
	if rec := doJSON(t, r, http.MethodPost, "/api/profile", "", body); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid profile: want=400 got=%d", rec.Code)
	}
}

func TestSessionsAndStats(t *testing.T) {
	r := newTestRouter(t, stubGenerator{})
	token := registerAndLogin(t, r)

	rec := doJSON(t, r, http.MethodPost, "/api/sessions/start", token, nil)
	var study struct {
		ID       string `json:"id"`
		Interval string `json:"interval"`
	}
	decode(t, rec, &study)
	if study.Interval != "pending" {
		t.Fatalf("start study: got %+v", study)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/sessions/"+study.ID+"/end", token, map[string]any{"notes": "done"})
	if rec.Code != http.StatusOK {
		t.Fatalf("end study: want=200 got=%d %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, r, http.MethodPost, "/api/sessions/"+study.ID+"/end", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second close: want=404 got=%d", rec.Code)
	}
	if rec := doJSON(t, r, http.MethodPost, "/api/sessions/not-a-uuid/end", token, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("bad id: want=404 got=%d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/breaks/start", token, map[string]any{
		"activity": "walk", "duration": 10, "energy_level_before": 3,
	})
	var brk struct {
		ID string `json:"id"`
	}
	decode(t, rec, &brk)
	rec = doJSON(t, r, http.MethodPost, "/api/breaks/"+brk.ID+"/end", token, map[string]any{"energy_level_after": 7})
	if rec.Code != http.StatusOK {
		t.Fatalf("end break: want=200 got=%d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodGet, "/api/stats?days=7", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: want=200 got=%d %s", rec.Code, rec.Body.String())
	}
	var stats struct {
		StudySessionsCount  int     `json:"study_sessions_count"`
		BreakSessionsCount  int     `json:"break_sessions_count"`
		AverageEnergyChange float64 `json:"average_energy_change"`
		PeriodDays          int     `json:"period_days"`
	}
	decode(t, rec, &stats)
	if stats.StudySessionsCount != 1 || stats.BreakSessionsCount != 1 || stats.AverageEnergyChange != 4 || stats.PeriodDays != 7 {
		t.Fatalf("stats: got %+v", stats)
	}
	if rec := doJSON(t, r, http.MethodGet, "/api/stats?days=0", token, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("days=0: want=400 got=%d", rec.Code)
	}
}
