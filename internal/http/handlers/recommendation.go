package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/breakbetter-backend/internal/http/response"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
	"github.com/yungbote/breakbetter-backend/internal/services"
)

type RecommendationHandler struct {
	log                   *logger.Logger
	recommendationService services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recommendationService services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log:                   log.With("handler", "RecommendationHandler"),
		recommendationService: recommendationService,
	}
}

func (rh *RecommendationHandler) Recommend(c *gin.Context) {
	if err := rh.recommendationService.CheckConfigured(); err != nil {
		response.RespondErr(c, rh.log, err)
		return
	}
	profile, err := bindProfile(c)
	if err != nil {
		response.RespondErr(c, rh.log, err)
		return
	}
	rec, err := rh.recommendationService.Recommend(c.Request.Context(), profile)
	if err != nil {
		response.RespondErr(c, rh.log, err)
		return
	}
	response.RespondOK(c, rec)
}

func (rh *RecommendationHandler) History(c *gin.Context) {
	limit, err := queryLimit(c, "limit")
	if err != nil {
		response.RespondErr(c, rh.log, err)
		return
	}
	recs, err := rh.recommendationService.History(c.Request.Context(), limit)
	if err != nil {
		response.RespondErr(c, rh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"recommendations": recs})
}
