package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	"github.com/vladimiradmaev/drink-helper/internal/services"
)

func (s *Server) chat(c *gin.Context) {
	var in services.ChatInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	result, err := s.services.Consultations.Chat(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// listConsultations returns the newest consultations, or those of
// ?start=&end= when both are given.
func (s *Server) listConsultations(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		list []domain.Consultation
		err  error
	)
	if start, end := c.Query("start"), c.Query("end"); start != "" || end != "" {
		list, err = s.services.Consultations.ByDateRange(ctx, start, end)
	} else {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			if limit, err = strconv.Atoi(raw); err != nil {
				badRequest(c, errors.New("limit must be a number"))
				return
			}
		}
		list, err = s.services.Consultations.List(ctx, limit)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultations": list})
}

func (s *Server) deleteConsultation(c *gin.Context) {
	if err := s.services.Consultations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
