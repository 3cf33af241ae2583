package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/place-resolver/internal/delivery/http/handler"
	"github.com/place-resolver/internal/usecase/dto"
)

type MockStatsProvider struct {
	mock.Mock
}

func (m *MockStatsProvider) GetStatistics(ctx context.Context) (*dto.StatsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StatsResponse), args.Error(1)
}

type checkFunc func(ctx context.Context) error

func (f checkFunc) Health(ctx context.Context) error { return f(ctx) }

func newStatsApp(stats handler.StatsProvider, checks map[string]handler.HealthChecker) *fiber.App {
	h := handler.NewStatsHandler(stats, checks, zap.NewNop())
	app := fiber.New()
	app.Get("/api/v1/stats", h.GetStatistics)
	app.Get("/api/v1/health", h.Health)
	return app
}

func TestStatsHandler_GetStatistics(t *testing.T) {
	stats := &MockStatsProvider{}
	stats.On("GetStatistics", mock.Anything).Return(&dto.StatsResponse{Documents: 5, IndexedDocuments: 5}, nil)

	status, body := do(t, newStatsApp(stats, nil), "/api/v1/stats")

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"data":{"documents":5,"indexed_documents":5}}`, string(body))
}

func TestStatsHandler_GetStatisticsError(t *testing.T) {
	stats := &MockStatsProvider{}
	stats.On("GetStatistics", mock.Anything).Return(nil, errors.New("boom"))

	status, body := do(t, newStatsApp(stats, nil), "/api/v1/stats")

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", errorCode(t, body))
}

func TestStatsHandler_Health(t *testing.T) {
	ok := checkFunc(func(context.Context) error { return nil })
	down := checkFunc(func(context.Context) error { return errors.New("connection refused") })

	t.Run("healthy", func(t *testing.T) {
		status, body := do(t, newStatsApp(&MockStatsProvider{}, map[string]handler.HealthChecker{
			"postgres": ok,
			"redis":    ok,
		}), "/api/v1/health")

		assert.Equal(t, fiber.StatusOK, status)
		var resp dto.HealthResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, map[string]string{"postgres": "ok", "redis": "ok"}, resp.Checks)
	})

	t.Run("dependency down", func(t *testing.T) {
		status, body := do(t, newStatsApp(&MockStatsProvider{}, map[string]handler.HealthChecker{
			"postgres": ok,
			"redis":    down,
		}), "/api/v1/health")

		assert.Equal(t, fiber.StatusServiceUnavailable, status)
		var resp dto.HealthResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "connection refused", resp.Checks["redis"])
	})
}
