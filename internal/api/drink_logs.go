package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	"github.com/vladimiradmaev/drink-helper/internal/services"
)

type drinkLogUpdateRequest struct {
	Amount *float64 `json:"amount"`
	Memo   *string  `json:"memo"`
}

func (s *Server) createDrinkLog(c *gin.Context) {
	var in services.CreateDrinkLogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	log, err := s.services.DrinkLogs.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

// listDrinkLogs filters by ?date=, ?start=&end= or ?year=&month=.
func (s *Server) listDrinkLogs(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		logs []domain.DrinkLog
		err  error
	)
	switch {
	case c.Query("date") != "":
		logs, err = s.services.DrinkLogs.ByDate(ctx, c.Query("date"))
	case c.Query("start") != "" || c.Query("end") != "":
		logs, err = s.services.DrinkLogs.ByDateRange(ctx, c.Query("start"), c.Query("end"))
	case c.Query("year") != "" || c.Query("month") != "":
		year, month, parseErr := yearMonth(c)
		if parseErr != nil {
			badRequest(c, parseErr)
			return
		}
		logs, err = s.services.DrinkLogs.ByMonth(ctx, year, month)
	default:
		badRequest(c, errors.New("one of date, start/end or year/month is required"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drinkLogs": logs})
}

func (s *Server) updateDrinkLog(c *gin.Context) {
	var req drinkLogUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	log, err := s.services.DrinkLogs.Update(c.Request.Context(), c.Param("id"), domain.DrinkLogUpdate{
		Amount: req.Amount,
		Memo:   req.Memo,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (s *Server) deleteDrinkLog(c *gin.Context) {
	if err := s.services.DrinkLogs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func yearMonth(c *gin.Context) (int, time.Month, error) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return 0, 0, errors.New("year must be a number")
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		return 0, 0, errors.New("month must be a number")
	}
	return year, time.Month(month), nil
}
