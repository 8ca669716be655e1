package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger логирует каждый запрос вместе с приватными ошибками обработчиков.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	log := l.WithField("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		})

		if privateErrs := c.Errors.ByType(gin.ErrorTypePrivate); len(privateErrs) > 0 {
			entry.WithError(privateErrs.Last()).Warn("request finished with errors")
			return
		}
		entry.Info("request finished")
	}
}
