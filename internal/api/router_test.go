package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TaylorONeal/jetsweep/internal/airport"
	"github.com/TaylorONeal/jetsweep/internal/api"
	"github.com/TaylorONeal/jetsweep/internal/api/models"
	"github.com/TaylorONeal/jetsweep/internal/recent"
	"github.com/TaylorONeal/jetsweep/internal/resilience"
	"github.com/TaylorONeal/jetsweep/internal/timeline"
)

// testNow is a Wednesday morning outside every holiday period.
var testNow = time.Date(2026, time.October, 21, 6, 0, 0, 0, time.UTC)

type testEnv struct {
	router  http.Handler
	recents *recent.Service
}

func newTestEnv(t *testing.T, repo recent.Repository) *testEnv {
	t.Helper()
	clock := func() time.Time { return testNow }
	logger := zerolog.New(io.Discard)

	registry := resilience.NewRegistry()
	guardCfg := resilience.DefaultGuardConfig("recent-store")
	guardCfg.MaxRetries = 1
	guardCfg.InitialInterval = time.Millisecond
	guardCfg.MaxInterval = time.Millisecond
	guardCfg.Registry = registry
	guardCfg.Breaker.Healthy = recent.IsDataError

	recents := recent.NewService(recent.ServiceConfig{
		Repository: repo,
		Guard:      resilience.NewGuard(guardCfg),
		Logger:     logger,
		Clock:      clock,
	})

	router := api.NewRouter(api.RouterConfig{
		Version:        "test",
		BuildTime:      "2026-01-01T00:00:00Z",
		Logger:         logger,
		Timelines:      timeline.NewService(timeline.ServiceConfig{Logger: logger, Clock: clock}),
		Recents:        recents,
		Health:         registry,
		Location:       time.UTC,
		Clock:          clock,
		AllowedOrigins: []string{"http://localhost:5173"},
	})

	return &testEnv{router: router, recents: recents}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRouter_HealthCheck(t *testing.T) {
	env := newTestEnv(t, recent.NewInMemoryRepository())

	w := env.do(t, http.MethodGet, "/v1/ops/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	health := decode[models.Health](t, w)
	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.Equal(t, "test", health.Details["version"])
	assert.True(t, health.Time.Time().Equal(testNow))
}

func TestRouter_ReadinessCheck(t *testing.T) {
	env := newTestEnv(t, recent.NewInMemoryRepository())

	w := env.do(t, http.MethodGet, "/v1/ops/ready", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.HealthStatusOK, decode[models.Health](t, w).Status)
}

// downRepository is a store that cannot be reached.
type downRepository struct{}

var errDown = errors.New("connection refused")

func (downRepository) Load(context.Context) ([]recent.Search, error) { return nil, errDown }
func (downRepository) Store(context.Context, []recent.Search) error  { return errDown }
func (downRepository) Clear(context.Context) error                   { return errDown }
func (downRepository) Ping(context.Context) error                    { return errDown }

func TestRouter_ReadinessCheck_StoreDown(t *testing.T) {
	env := newTestEnv(t, downRepository{})

	w := env.do(t, http.MethodGet, "/v1/ops/ready", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	assert.Equal(t, "5", w.Header().Get("Retry-After"))
	assert.Equal(t, models.ProblemTypeUnavailable, decode[models.Problem](t, w).Type)
}

func TestRouter_SystemStatus(t *testing.T) {
	env := newTestEnv(t, recent.NewInMemoryRepository())
	env.recents.List(context.Background())

	w := env.do(t, http.MethodGet, "/v1/ops/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	status := decode[models.SystemStatus](t, w)
	assert.Equal(t, models.HealthStatusOK, status.Status)
	require.Len(t, status.Subsystems, 1)
	assert.Equal(t, "recent-store", status.Subsystems[0].Name)
	assert.Equal(t, "closed", status.Subsystems[0].CircuitState)
	assert.NotNil(t, status.Subsystems[0].LastSuccessAt)
}

func TestRouter_SystemStatus_StoreFailing(t *testing.T) {
	env := newTestEnv(t, downRepository{})
	env.recents.List(context.Background())

	w := env.do(t, http.MethodGet, "/v1/ops/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	status := decode[models.SystemStatus](t, w)
	require.Len(t, status.Subsystems, 1)
	require.NotNil(t, status.Subsystems[0].Message)
	assert.Contains(t, *status.Subsystems[0].Message, "connection refused")
	assert.NotNil(t, status.Subsystems[0].LastFailureAt)
}

type timelineBody struct {
	Stages []struct {
		ID        string    `json:"id"`
		StartTime time.Time `json:"startTime"`
		EndTime   time.Time `json:"endTime"`
	} `json:"stages"`
	LeaveTime      time.Time `json:"leaveTime"`
	LeaveTimeRange struct {
		Min int `json:"min"`
		Max int `json:"max"`
	} `json:"leaveTimeRange"`
	Confidence     string `json:"confidence"`
	AirportProfile struct {
		Code string `json:"code"`
		Tier string `json:"tier"`
	} `json:"airportProfile"`
	IsAirportEstimate bool           `json:"isAirportEstimate"`
	IsLeaveNow        bool           `json:"isLeaveNow"`
	StressMargin      int            `json:"stressMargin"`
	StressLevel       string         `json:"stressLevel"`
	ConditionsSummary string         `json:"conditionsSummary"`
	SavedSearch       *recent.Search `json:"savedSearch"`
}

func TestRouter_ComputeTimeline(t *testing.T) {
	env := newTestEnv(t, recent.NewInMemoryRepository())

	w := env.do(t, http.MethodPost, "/v1/timeline:compute", map[string]any{
		"departureDateTime": "2026-10-21T12:00",
		"hasPreCheck":       true,
		"airport":           "ATL",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	body := decode[timelineBody](t, w)
	ids := make([]string, len(body.Stages))
	for i, s := range body.Stages {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{"call", "pickup", "drive", "arrival", "security", "gate", "boarding"}, ids)
	assert.True(t, body.LeaveTime.Equal(time.Date(2026, 10, 21, 7, 53, 0, 0, time.UTC)))
	assert.Equal(t, 149, body.LeaveTimeRange.Min)
	assert.Equal(t, 219, body.LeaveTimeRange.Max)
	assert.Equal(t, "normal", body.Confidence)
	assert.Equal(t, "ATL", body.AirportProfile.Code)
	assert.Equal(t, "MEGA", body.AirportProfile.Tier)
	assert.False(t, body.IsAirportEstimate)
	assert.False(t, body.IsLeaveNow)
	assert.Equal(t, 23, body.StressMargin)
	assert.Equal(t, "TIGHT", body.StressLevel)
	assert.Equal(t, "Normal conditions", body.ConditionsSummary)
	assert.Nil(t, body.SavedSearch)

	assert.Empty(t, env.recents.List(context.Background()))
}

func TestRouter_ComputeTimeline_SavesRecent(t *testing.T) {
	env := newTestEnv(t, recent.NewInMemoryRepository())

	w := env.do(t, http.MethodPost, "/v1/timeline:compute", map[string]any{
		"departureDateTime": "2026-10-21T12:00:00Z",
		"tripType":          "international",
		"airport":           "Narita",
		"saveRecent":        true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode[timelineBody](t, w)
	require.NotNil(t, body.SavedSearch)
	assert.Equal(t, "NAR", body.SavedSearch.Airport)
	assert.True(t, body.IsAirportEstimate)

	w = env.do(t, http.MethodGet, "/v1/recent-searches", nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decode[models.RecentSearchesResponse](t, w)
	require.Len(t, list.Searches, 1)
	assert.Equal(t, "NAR", list.Searches[0].Airport)
	assert.Equal(t, timeline.TripInternational, list.Searches[0].TripType)
	assert.Equal(t, "Just now", list.Searches[0].Age)

	w = env.do(t, http.MethodDelete, "/v1/recent-searches", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/v1/recent-searches", nil)
	assert.Empty(t, decode[models.RecentSearchesResponse](t, w).Searches)
}

func TestRouter_ComputeTimeline_StoreDownStillComputes(t *testing.T) {
	env := newTestEnv(t, downRepository{})

	w := env.do(t, http.MethodPost, "/v1/timeline:compute", map[string]any{
		"departureDateTime": "2026-10-21T12:00",
		"saveRecent":        true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/v1/recent-searches", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[models.RecentSearchesResponse](t, w).Searches)
}

func TestRouter_ComputeTimeline_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
		code  string
	}{
		{"empty body", ``, "", models.CodeInvalidJSON},
		{"malformed", `{"departureDateTime":`, "", models.CodeInvalidJSON},
		{"missing departure", `{"airport":"ATL"}`, "departureDateTime", models.CodeRequired},
		{"bad departure", `{"departureDateTime":"next tuesday"}`, "departureDateTime", models.CodeInvalidValue},
		{"bad trip type", `{"departureDateTime":"2026-10-21T12:00","tripType":"orbital"}`, "tripType", models.CodeInvalidValue},
		{"bad transport", `{"departureDateTime":"2026-10-21T12:00","transportType":"bike"}`, "transportType", models.CodeInvalidValue},
		{"bad risk", `{"departureDateTime":"2026-10-21T12:00","riskPreference":"yolo"}`, "riskPreference", models.CodeInvalidValue},
		{"negative drive", `{"departureDateTime":"2026-10-21T12:00","driveTime":-5}`, "driveTime", models.CodeOutOfRange},
		{"huge drive", `{"departureDateTime":"2026-10-21T12:00","driveTime":6000}`, "driveTime", models.CodeOutOfRange},
	}

	env := newTestEnv(t, recent.NewInMemoryRepository())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/timeline:compute", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			env.router.ServeHTTP(w, req)

			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			problem := decode[models.Problem](t, w)
			assert.Equal(t, models.ProblemTypeValidation, problem.Type)
			assert.Equal(t, "/v1/timeline:compute", problem.Instance)
			require.NotEmpty(t, problem.Errors)
			assert.Equal(t, tt.field, problem.Errors[0].Field)
			assert.Equal(t, tt.code, problem.Errors[0].Code)
		})
	}
}

func TestRouter_ComputeTimeline_RejectsNonJSON(t *testing.T) {
	env := newTestEnv(t, recent.NewInMemoryRepository())

	req := httptest.NewRequest(http.MethodPost, "/v1/timeline:compute", strings.NewReader("departure=noon"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestRouter_ListAirports(t *testing.T) {
	env := newTestEnv(t, recent.NewInMemoryRepository())

	w := env.do(t, http.MethodGet, "/v1/airports", nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decode[models.AirportListResponse](t, w)
	require.Equal(t, 83, list.Count)
	require.Len(t, list.Airports, 83)
	assert.Equal(t, "ABQ", list.Airports[0].Code)
	assert.Equal(t, "OTHER_LARGE", list.Airports[81].Code)
	assert.Equal(t, "OTHER_REGIONAL", list.Airports[82].Code)
	assert.Equal(t, []airport.Tier{airport.TierGeneric, airport.TierMedium, airport.TierLarge, airport.TierMega}, list.Tiers)
}

// fixedResolver resolves every query to one profile.
type fixedResolver struct{ profile airport.Profile }

func (f fixedResolver) Resolve(string) (airport.Profile, bool) { return f.profile, false }

func TestRouter_UsesTimelineServiceForLookupsAndClock(t *testing.T) {
	clock := func() time.Time { return testNow }
	home := airport.Profile{Code: "HOM", Name: "Home Field", Tier: airport.TierMedium, Friction: airport.TierDefaults(airport.TierMedium)}

	router := api.NewRouter(api.RouterConfig{
		Logger: zerolog.Nop(),
		Timelines: timeline.NewService(timeline.ServiceConfig{
			Airports: fixedResolver{profile: home},
			Logger:   zerolog.Nop(),
			Clock:    clock,
		}),
		Recents:  recent.NewService(recent.ServiceConfig{Repository: recent.NewInMemoryRepository(), Logger: zerolog.Nop()}),
		Location: time.UTC,
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/airports/anything", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HOM", decode[models.AirportResolveResponse](t, w).Profile.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[models.Health](t, w).Time.Time().Equal(testNow), "health time comes from the service clock")
}

func TestRouter_ResolveAirport(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		code     string
		estimate bool
	}{
		{"known code", "/v1/airports/sfo", "SFO", false},
		{"name search", "/v1/airports/O%27Hare", "ORD", false},
		{"sentinel", "/v1/airports/OTHER_REGIONAL", "REG", true},
		{"unknown", "/v1/airports/Heathrow", "HEA", true},
	}

	env := newTestEnv(t, recent.NewInMemoryRepository())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, w.Code)

			resp := decode[models.AirportResolveResponse](t, w)
			assert.Equal(t, tt.code, resp.Profile.Code)
			assert.Equal(t, tt.estimate, resp.IsEstimate)
		})
	}
}

func TestRouter_Conditions(t *testing.T) {
	env := newTestEnv(t, recent.NewInMemoryRepository())

	w := env.do(t, http.MethodGet, "/v1/conditions?at=2025-11-24T08:00", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.ConditionsResponse](t, w)
	assert.Equal(t, "Heavy rush hour + Thanksgiving Week", resp.Description)
	assert.True(t, resp.Conditions.IsRushHour)
	assert.InDelta(t, 1.35, resp.Conditions.TrafficMultiplier, 1e-9)
	assert.InDelta(t, 1.5, resp.Conditions.SecurityMultiplier, 1e-9)
	require.NotNil(t, resp.Conditions.HolidayImpact)
	assert.Equal(t, "Thanksgiving Week", resp.Conditions.HolidayImpact.Name)
}

func TestRouter_Conditions_Invalid(t *testing.T) {
	env := newTestEnv(t, recent.NewInMemoryRepository())

	for _, path := range []string{"/v1/conditions", "/v1/conditions?at=soon"} {
		w := env.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, "at", decode[models.Problem](t, w).Errors[0].Field)
	}
}

func TestRouter_NotFound(t *testing.T) {
	env := newTestEnv(t, recent.NewInMemoryRepository())

	w := env.do(t, http.MethodGet, "/v1/nonexistent", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	problem := decode[models.Problem](t, w)
	assert.Equal(t, models.ProblemTypeNotFound, problem.Type)
	assert.Equal(t, "/v1/nonexistent", problem.Instance)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	env := newTestEnv(t, recent.NewInMemoryRepository())

	w := env.do(t, http.MethodPut, "/v1/recent-searches", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, models.ProblemTypeMethodNotAllowed, decode[models.Problem](t, w).Type)
}

func TestRouter_CORS(t *testing.T) {
	env := newTestEnv(t, recent.NewInMemoryRepository())

	req := httptest.NewRequest(http.MethodOptions, "/v1/timeline:compute", http.NoBody)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/airports", http.NoBody)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_PropagatesRequestID(t *testing.T) {
	env := newTestEnv(t, recent.NewInMemoryRepository())

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	req.Header.Set("X-Request-Id", "client-supplied-42")
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	assert.Equal(t, "client-supplied-42", w.Header().Get("X-Request-Id"))
}
