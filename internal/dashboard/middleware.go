package dashboard

import (
    "net/http"
    "strings"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/google/uuid"
    "go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
    return func(c *gin.Context) {
        id := c.GetHeader(requestIDHeader)
        if id == "" { id = uuid.NewString() }
        c.Set("request_id", id)
        c.Header(requestIDHeader, id)

        start := time.Now()
        c.Next()
        fields := []zap.Field{
            zap.String("request_id", id),
            zap.String("method", c.Request.Method),
            zap.String("path", c.Request.URL.Path),
            zap.Int("status", c.Writer.Status()),
            zap.Duration("latency", time.Since(start)),
        }
        if len(c.Errors) > 0 { fields = append(fields, zap.String("errors", c.Errors.String())) }
        if c.Writer.Status() >= http.StatusInternalServerError {
            logger.Error("request", fields...)
            return
        }
        logger.Info("request", fields...)
    }
}

// requireData stops every page when the data file failed to load.
func (s *Server) requireData(c *gin.Context) {
    if s.loadErr == nil { c.Next(); return }
    msg := "Data file not found, please check the path: " + s.cfg.DataFile
    if !isNotFound(s.loadErr) { msg = "Data file could not be loaded: " + s.loadErr.Error() }
    if strings.HasPrefix(c.Request.URL.Path, "/api/") {
        c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": msg})
        return
    }
    s.renderError(c, http.StatusServiceUnavailable, msg)
    c.Abort()
}

func apiKeyMiddleware(key string) gin.HandlerFunc {
    return func(c *gin.Context) {
        if key == "" { c.Next(); return }
        if c.GetHeader("X-API-Key") != key {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
            return
        }
        c.Next()
    }
}
