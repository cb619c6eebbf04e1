package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/annel0/blockverse/internal/logging"
)

// RequestLogger логирует каждый HTTP-запрос с коротким trace-id.
// Id прокидывается заголовком X-Trace-Id, чтобы клиент мог сослаться
// на конкретный запрос в логах сервера.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		traceID := c.GetHeader("X-Trace-Id")
		if traceID == "" {
			traceID = uuid.New().String()[:8]
		}
		c.Writer.Header().Set("X-Trace-Id", traceID)

		logging.Debug("[HTTP] ▶ %s %s trace=%s", c.Request.Method, c.Request.URL.Path, traceID)

		c.Next()

		status := c.Writer.Status()
		elapsed := time.Since(start)
		if status >= 500 {
			logging.Error("[HTTP] ◀ %s %s → %d (%v) trace=%s", c.Request.Method, c.Request.URL.Path, status, elapsed, traceID)
		} else if status >= 400 {
			logging.Warn("[HTTP] ◀ %s %s → %d (%v) trace=%s", c.Request.Method, c.Request.URL.Path, status, elapsed, traceID)
		} else {
			logging.Info("[HTTP] ◀ %s %s → %d (%v) trace=%s", c.Request.Method, c.Request.URL.Path, status, elapsed, traceID)
		}
	}
}
