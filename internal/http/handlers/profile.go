package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/breakbetter-backend/internal/domain"
	"github.com/yungbote/breakbetter-backend/internal/http/response"
	"github.com/yungbote/breakbetter-backend/internal/modules/breaks"
	"github.com/yungbote/breakbetter-backend/internal/platform/apierr"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
	"github.com/yungbote/breakbetter-backend/internal/services"
)

// preferenceList accepts either a comma separated string or a JSON array.
type preferenceList []string

func (p *preferenceList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*p = breaks.SplitPreferences(raw)
		return nil
	}
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return fmt.Errorf("personal_preferences must be a string or an array of strings")
	}
	*p = breaks.CleanPreferences(tags)
	return nil
}

type profileRequest struct {
	Name                   string         `json:"name"`
	StudyInterval          string         `json:"study_interval"`
	TimeOfDay              string         `json:"time_of_day"`
	DeadlinePressure       string         `json:"deadline_pressure"`
	PersonalPreferences    preferenceList `json:"personal_preferences"`
	ScreenUsage            bool           `json:"screen_usage"`
	ActivityLevel          string         `json:"activity_level"`
	EnergyLevel            int            `json:"energy_level"`
	PreferredBreakDuration int            `json:"preferred_break_duration"`
}

func (r profileRequest) toProfile() *types.Profile {
	return &types.Profile{
		Name:                   r.Name,
		StudyInterval:          types.StudyIntervalKind(r.StudyInterval),
		TimeOfDay:              types.TimeOfDay(r.TimeOfDay),
		DeadlinePressure:       types.DeadlinePressure(r.DeadlinePressure),
		PersonalPreferences:    []string(r.PersonalPreferences),
		ScreenUsage:            r.ScreenUsage,
		ActivityLevel:          types.ActivityLevel(r.ActivityLevel),
		EnergyLevel:            r.EnergyLevel,
		PreferredBreakDuration: r.PreferredBreakDuration,
	}
}

func bindProfile(c *gin.Context) (*types.Profile, error) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, apierr.Validation("invalid_request", err)
	}
	return req.toProfile(), nil
}

// queryLimit returns 0 when absent so services apply their default.
func queryLimit(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apierr.Validation("invalid_"+name, fmt.Errorf("%s must be a positive integer", name))
	}
	return n, nil
}

type ProfileHandler struct {
	log            *logger.Logger
	profileService services.ProfileService
}

func NewProfileHandler(log *logger.Logger, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{log: log.With("handler", "ProfileHandler"), profileService: profileService}
}

func (ph *ProfileHandler) CreateProfile(c *gin.Context) {
	profile, err := bindProfile(c)
	if err != nil {
		response.RespondErr(c, ph.log, err)
		return
	}
	created, err := ph.profileService.CreateProfile(c.Request.Context(), profile)
	if err != nil {
		response.RespondErr(c, ph.log, err)
		return
	}
	response.RespondOK(c, created)
}

func (ph *ProfileHandler) ListProfiles(c *gin.Context) {
	limit, err := queryLimit(c, "limit")
	if err != nil {
		response.RespondErr(c, ph.log, err)
		return
	}
	profiles, err := ph.profileService.ListProfiles(c.Request.Context(), limit)
	if err != nil {
		response.RespondErr(c, ph.log, err)
		return
	}
	response.RespondOK(c, gin.H{"profiles": profiles})
}
