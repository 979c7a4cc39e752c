package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	"github.com/vladimiradmaev/drink-helper/internal/services"
)

type goalUpdateRequest struct {
	TargetValue *int    `json:"targetValue"`
	EndDate     *string `json:"endDate"`
}

func (s *Server) listGoals(c *gin.Context) {
	goals, err := s.services.Goals.Active(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

func (s *Server) createGoal(c *gin.Context) {
	var in services.CreateGoalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	goal, err := s.services.Goals.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (s *Server) goalProgress(c *gin.Context) {
	progress, err := s.services.Goals.Progress(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

func (s *Server) goalByType(c *gin.Context) {
	goal, err := s.services.Goals.ByType(c.Request.Context(), domain.GoalType(c.Param("type")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

func (s *Server) updateGoal(c *gin.Context) {
	var req goalUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	goal, err := s.services.Goals.Update(c.Request.Context(), c.Param("id"), domain.GoalUpdate{
		TargetValue: req.TargetValue,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (s *Server) deactivateGoal(c *gin.Context) {
	if err := s.services.Goals.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
