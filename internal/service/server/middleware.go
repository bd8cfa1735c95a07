package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const requestIDHeader = "X-Request-ID"

// corsAllowAll applies the go-chi/cors policy inside the gin chain.
// Preflight requests are answered by the policy and stop there.
func corsAllowAll() gin.HandlerFunc {
	policy := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestIDHeader},
	})
	return func(c *gin.Context) {
		passed := false
		policy.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
		})).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
			return
		}
		c.Next()
	}
}

// requestLogger tags every request with an ID and logs it once served
func requestLogger(c *gin.Context) {
	start := time.Now()
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header(requestIDHeader, requestID)

	c.Next()

	status := c.Writer.Status()
	event := log.Info()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	} else if status >= http.StatusBadRequest {
		event = log.Warn()
	}
	event.
		Str("requestID", requestID).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Dur("duration", time.Since(start)).
		Msg("http request")
}
