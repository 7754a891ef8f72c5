package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/breakbetter-backend/internal/http/response"
	"github.com/yungbote/breakbetter-backend/internal/platform/apierr"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
	"github.com/yungbote/breakbetter-backend/internal/services"
)

type SessionHandler struct {
	log            *logger.Logger
	sessionService services.SessionService
}

func NewSessionHandler(log *logger.Logger, sessionService services.SessionService) *SessionHandler {
	return &SessionHandler{log: log.With("handler", "SessionHandler"), sessionService: sessionService}
}

func sessionIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// Unparseable ids cannot name an owned session.
		return uuid.Nil, apierr.NotFound("session_not_found", errors.New("session not found"))
	}
	return id, nil
}

// bindOptionalJSON binds the body when present; an empty body is allowed.
func bindOptionalJSON(c *gin.Context, out any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(out); err != nil && !errors.Is(err, io.EOF) {
		return apierr.Validation("invalid_request", err)
	}
	return nil
}

func (sh *SessionHandler) StartStudy(c *gin.Context) {
	session, err := sh.sessionService.StartStudy(c.Request.Context())
	if err != nil {
		response.RespondErr(c, sh.log, err)
		return
	}
	response.RespondOK(c, session)
}

func (sh *SessionHandler) EndStudy(c *gin.Context) {
	id, err := sessionIDParam(c)
	if err != nil {
		response.RespondErr(c, sh.log, err)
		return
	}
	var req struct {
		Notes    *string `json:"notes"`
		Duration *int    `json:"duration"`
	}
	if err := bindOptionalJSON(c, &req); err != nil {
		response.RespondErr(c, sh.log, err)
		return
	}
	session, err := sh.sessionService.EndStudy(c.Request.Context(), id, services.EndStudyInput{
		Notes:    req.Notes,
		Duration: req.Duration,
	})
	if err != nil {
		response.RespondErr(c, sh.log, err)
		return
	}
	response.RespondOK(c, session)
}

func (sh *SessionHandler) ListStudy(c *gin.Context) {
	limit, err := queryLimit(c, "limit")
	if err != nil {
		response.RespondErr(c, sh.log, err)
		return
	}
	sessions, err := sh.sessionService.ListStudy(c.Request.Context(), limit)
	if err != nil {
		response.RespondErr(c, sh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"sessions": sessions})
}

func (sh *SessionHandler) StartBreak(c *gin.Context) {
	var req struct {
		Activity          string `json:"activity"`
		Duration          int    `json:"duration"`
		EnergyLevelBefore int    `json:"energy_level_before"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, sh.log, apierr.Validation("invalid_request", err))
		return
	}
	session, err := sh.sessionService.StartBreak(c.Request.Context(), services.StartBreakInput{
		Activity:          req.Activity,
		Duration:          req.Duration,
		EnergyLevelBefore: req.EnergyLevelBefore,
	})
	if err != nil {
		response.RespondErr(c, sh.log, err)
		return
	}
	response.RespondOK(c, session)
}

func (sh *SessionHandler) EndBreak(c *gin.Context) {
	id, err := sessionIDParam(c)
	if err != nil {
		response.RespondErr(c, sh.log, err)
		return
	}
	var req struct {
		EnergyLevelAfter *int `json:"energy_level_after"`
	}
	if err := bindOptionalJSON(c, &req); err != nil {
		response.RespondErr(c, sh.log, err)
		return
	}
	session, err := sh.sessionService.EndBreak(c.Request.Context(), id, services.EndBreakInput{
		EnergyLevelAfter: req.EnergyLevelAfter,
	})
	if err != nil {
		response.RespondErr(c, sh.log, err)
		return
	}
	response.RespondOK(c, session)
}

func (sh *SessionHandler) ListBreaks(c *gin.Context) {
	limit, err := queryLimit(c, "limit")
	if err != nil {
		response.RespondErr(c, sh.log, err)
		return
	}
	sessions, err := sh.sessionService.ListBreaks(c.Request.Context(), limit)
	if err != nil {
		response.RespondErr(c, sh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"breaks": sessions})
}
