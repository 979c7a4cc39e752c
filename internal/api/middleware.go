package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/drink-helper/internal/auth"
	"github.com/vladimiradmaev/drink-helper/internal/logger"
)

// requireUser verifies the bearer token and puts its subject into the
// request context.
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("Authorization header required"))
			return
		}

		userID, err := s.tokens.Verify(token)
		if err != nil {
			logger.Debug("Rejected bearer token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("Invalid token"))
			return
		}

		c.Request = c.Request.WithContext(auth.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// SignInSecretHeader carries the secret shared with the upstream login.
const SignInSecretHeader = "X-Signin-Secret"

// requireSignInSecret lets only the upstream login service exchange user
// ids for tokens.
func (s *Server) requireSignInSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader(SignInSecretHeader)
		if subtle.ConstantTimeCompare([]byte(secret), []byte(s.signInSecret)) != 1 {
			logger.Warn("Rejected sign-in without a valid secret", "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("Invalid sign-in credential"))
			return
		}
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
