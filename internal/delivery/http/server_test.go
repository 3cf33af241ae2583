package http_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/place-resolver/internal/config"
	httpDelivery "github.com/place-resolver/internal/delivery/http"
	"github.com/place-resolver/internal/delivery/http/handler"
	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/usecase/dto"
)

type stubSearcher struct {
	mock.Mock
}

func (m *stubSearcher) Search(ctx context.Context, req dto.SearchRequest) (*domain.Resolution, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(*domain.Resolution), args.Error(1)
}

func (m *stubSearcher) SearchAddress(ctx context.Context, req dto.AddressRequest) (*domain.Resolution, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(*domain.Resolution), args.Error(1)
}

func (m *stubSearcher) GetPlace(ctx context.Context, id int64, lang string) (*domain.Result, error) {
	args := m.Called(ctx, id, lang)
	return args.Get(0).(*domain.Result), args.Error(1)
}

type stubStats struct{}

func (stubStats) GetStatistics(context.Context) (*dto.StatsResponse, error) {
	return &dto.StatsResponse{Documents: 1, IndexedDocuments: 1}, nil
}

func newTestServer(t *testing.T) (*httpDelivery.Server, *stubSearcher) {
	t.Helper()
	cfg := &config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: 8080},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	searcher := &stubSearcher{}
	log := zap.NewNop()
	s := httpDelivery.NewServer(cfg, log,
		handler.NewSearchHandler(searcher, log, 0),
		handler.NewStatsHandler(stubStats{}, nil, log),
	)
	return s, searcher
}

func get(t *testing.T, app *fiber.App, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServer_Routes(t *testing.T) {
	s, searcher := newTestServer(t)
	searcher.On("Search", mock.Anything, mock.Anything).Return(&domain.Resolution{}, nil)

	status, body := get(t, s.App(), "/api/v1/search?text=paris")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, body)

	status, _ = get(t, s.App(), "/api/v1/stats")
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = get(t, s.App(), "/api/v1/health")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestServer_UnknownRoute(t *testing.T) {
	s, _ := newTestServer(t)

	status, body := get(t, s.App(), "/api/v1/tiles/1/2/3")

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Contains(t, body, "ROUTE_NOT_FOUND")
}

func TestServer_PanicIsRecovered(t *testing.T) {
	s, _ := newTestServer(t)
	s.App().Get("/panic", func(c *fiber.Ctx) error {
		panic("unexpected")
	})

	status, body := get(t, s.App(), "/panic")

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Contains(t, body, "INTERNAL_SERVER_ERROR")
}

func TestServer_Metrics(t *testing.T) {
	s, searcher := newTestServer(t)
	searcher.On("Search", mock.Anything, mock.Anything).Return(&domain.Resolution{}, nil)
	get(t, s.App(), "/api/v1/search?text=paris")

	status, body := get(t, s.App(), "/metrics")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "placeresolver_requests_total")
}
