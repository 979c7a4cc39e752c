package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) weeklyStats(c *gin.Context) {
	weekly, err := s.services.Stats.Weekly(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, weekly)
}

func (s *Server) monthlyStats(c *gin.Context) {
	year, month, err := yearMonth(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	monthly, err := s.services.Stats.Monthly(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, monthly)
}
