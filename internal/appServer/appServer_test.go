package appServer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ds124wfegd/georaster/config"
	"github.com/ds124wfegd/georaster/internal/pkg/kafka"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	v, err := config.LoadConfig()
	require.NoError(t, err)
	cfg, err := config.ParseConfig(v)
	require.NoError(t, err)
	cfg.Raster.SpoolDir = t.TempDir()
	return cfg
}

func TestSetupLogger(t *testing.T) {
	defer logrus.SetLevel(logrus.GetLevel())
	cfg := testConfig(t)

	cfg.Logger.Level = "debug"
	setupLogger(cfg)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	cfg.Logger.Level = "chatty"
	setupLogger(cfg)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestNewProducerDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Kafka.Enabled = false

	p := newProducer(cfg)
	assert.NoError(t, p.SendMessage(cfg.Kafka.Topic, "k", map[string]int{"rows": 1}))
	assert.NoError(t, p.Close())
}

func TestBuildRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	router := buildRouter(cfg, kafka.NewMockProducer())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/operations", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		MaxAdjustment float64 `json:"max_adjustment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, cfg.Raster.MaxAdjustment, body.MaxAdjustment)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
