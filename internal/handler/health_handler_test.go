package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/hibara/portfolio-api/internal/config"
	"github.com/hibara/portfolio-api/internal/handler"
)

func TestHealthCheck(t *testing.T) {
	cfg := config.Config{AppName: "Portfolio Contact API", AppEnv: "test"}

	app := fiber.New()
	app.Get("/api/health", handler.HealthCheck(cfg))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded struct {
		Success bool                   `json:"success"`
		Data    handler.HealthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.True(t, decoded.Success)
	require.Equal(t, "ok", decoded.Data.Status)
	require.Equal(t, "Portfolio Contact API", decoded.Data.Service)
	require.False(t, decoded.Data.MailEnabled)
}
