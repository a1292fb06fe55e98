package handlers

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DecorForge/proposalcraft-go/internal/application/container"
	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/templates"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/caching"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/messaging"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSysOpRouter(t *testing.T) (*gin.Engine, *container.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToConsole: false,
		DefaultLevel:    slog.LevelError + 4,
	})
	require.NoError(t, err)

	c := &container.Container{
		Cache:       caching.NewStore(time.Hour, logger),
		PreviewHub:  messaging.NewPreviewHub(logger),
		PerfTracker: performance.NewTracker(time.Second, 10, logger),
		Logger:      logger,
	}

	h := NewSysOpHandlers(c)
	r := gin.New()
	r.GET("/sysop/status", h.GetStatus)
	r.POST("/sysop/log-level", h.SetLogLevel)
	r.POST("/sysop/cache/purge", h.PostCachePurge)
	return r, c
}

func TestSysOpStatus(t *testing.T) {
	r, c := newSysOpRouter(t)

	c.PerfTracker.StartOperation("editor.addElement", "s1").SetSuccess(true)
	c.PreviewHub.Register(&messaging.PreviewClient{SessionID: "s1", Send: make(chan []byte, 1)})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sysop/status?sessionId=s1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"completedOperations":1`)
	assert.Contains(t, w.Body.String(), `"previewClients":1`)
}

func TestSysOpSetLogLevel(t *testing.T) {
	r, _ := newSysOpRouter(t)

	t.Run("valid level is applied", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/sysop/log-level",
			strings.NewReader(`{"channel":"editor","level":"DEBUG"}`))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown level is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/sysop/log-level",
			strings.NewReader(`{"channel":"editor","level":"LOUD"}`))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/sysop/log-level", strings.NewReader(`{}`))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSysOpCachePurge(t *testing.T) {
	r, c := newSysOpRouter(t)

	c.Cache.SetTemplate(&templates.Template{ID: "t1", Name: "Residential Makeover"})
	_, found := c.Cache.GetTemplate("t1")
	require.True(t, found)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sysop/cache/purge", nil))
	require.Equal(t, http.StatusOK, w.Code)

	_, found = c.Cache.GetTemplate("t1")
	assert.False(t, found)
}
