package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/breakbetter-backend/internal/http/response"
	"github.com/yungbote/breakbetter-backend/internal/platform/apierr"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
	"github.com/yungbote/breakbetter-backend/internal/services"
)

type StatsHandler struct {
	log          *logger.Logger
	statsService services.StatsService
}

func NewStatsHandler(log *logger.Logger, statsService services.StatsService) *StatsHandler {
	return &StatsHandler{log: log.With("handler", "StatsHandler"), statsService: statsService}
}

func (sh *StatsHandler) GetStats(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.RespondErr(c, sh.log, apierr.Validation("invalid_days", errors.New("days must be a positive integer")))
			return
		}
		days = n
	}
	stats, err := sh.statsService.GetStats(c.Request.Context(), days)
	if err != nil {
		response.RespondErr(c, sh.log, err)
		return
	}
	response.RespondOK(c, stats)
}
