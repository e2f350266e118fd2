// Package httpserver stands up the optional debug-mode HTTP surface: a
// minimal Gin engine exposing /healthz and /metrics. It never gates or
// blocks the search driver — the driver owns no HTTP state and keeps
// running whether or not this server is started.
package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fhw-wedel/timetable-solver/internal/metrics"
	"github.com/fhw-wedel/timetable-solver/pkg/logger"
	"github.com/fhw-wedel/timetable-solver/pkg/middleware/requestid"
)

// New builds the debug Gin engine, wired with the teacher's request-id
// middleware and request logging. There is no per-request metrics
// middleware here: the only metrics this process owns are the GA progress
// gauges in metricsSink, updated from the search driver rather than from
// request handling.
func New(metricsSink *metrics.SolverMetrics, zapLogger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.Middleware())
	r.Use(logger.GinMiddleware(zapLogger))

	r.GET("/healthz", healthz)
	r.GET("/metrics", func(c *gin.Context) {
		metricsSink.Handler().ServeHTTP(c.Writer, c.Request)
	})

	return r
}

func healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run starts the server and blocks until ctx is cancelled, then shuts down
// gracefully. Intended to be launched in its own goroutine by
// cmd/timetable-solver.
func Run(ctx context.Context, engine *gin.Engine, addr string, zapLogger *zap.Logger) {
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Sugar().Errorw("debug http server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
