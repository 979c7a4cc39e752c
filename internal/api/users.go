package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/drink-helper/internal/auth"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
)

type signInRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type signInResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

type profileRequest struct {
	Name     *string  `json:"name"`
	WeightKg *float64 `json:"weight"`
	HeightCm *float64 `json:"height"`
}

// signIn exchanges a user id established by the upstream login for a bearer
// token. Bot users cannot be signed in here.
func (s *Server) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if auth.IsTelegramUserID(req.UserID) {
		c.JSON(http.StatusForbidden, errorBody("Telegram users cannot sign in through the API"))
		return
	}

	user, err := s.services.Users.SignIn(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, signInResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

func (s *Server) getMe(c *gin.Context) {
	user, err := s.services.Users.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) updateMe(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := s.services.Users.UpdateProfile(c.Request.Context(), domain.ProfileUpdate{
		Name:     req.Name,
		WeightKg: req.WeightKg,
		HeightCm: req.HeightCm,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
