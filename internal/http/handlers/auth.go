package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/breakbetter-backend/internal/http/response"
	"github.com/yungbote/breakbetter-backend/internal/platform/apierr"
	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
	"github.com/yungbote/breakbetter-backend/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "AuthHandler"), authService: authService}
}

type credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// bindCredentials accepts a JSON body or an OAuth2 password-grant form.
func bindCredentials(c *gin.Context) (credentials, error) {
	var creds credentials
	var err error
	if strings.HasPrefix(c.ContentType(), "application/json") {
		err = c.ShouldBindJSON(&creds)
	} else {
		err = c.ShouldBind(&creds)
	}
	if err != nil {
		return creds, apierr.Validation("invalid_request", err)
	}
	return creds, nil
}

func (ah *AuthHandler) Register(c *gin.Context) {
	creds, err := bindCredentials(c)
	if err != nil {
		response.RespondErr(c, ah.log, err)
		return
	}
	user, err := ah.authService.RegisterUser(c.Request.Context(), creds.Username, creds.Password)
	if err != nil {
		response.RespondErr(c, ah.log, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

func (ah *AuthHandler) Token(c *gin.Context) {
	creds, err := bindCredentials(c)
	if err != nil {
		response.RespondErr(c, ah.log, err)
		return
	}
	if creds.Username == "" || creds.Password == "" {
		response.RespondErr(c, ah.log, apierr.Validation("invalid_request", errors.New("username and password are required")))
		return
	}
	accessToken, err := ah.authService.LoginUser(c.Request.Context(), creds.Username, creds.Password)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		response.RespondErr(c, ah.log, err)
		return
	}
	response.RespondOK(c, gin.H{
		"access_token": accessToken,
		"token_type":   "bearer",
		"expires_in":   int(ah.authService.GetAccessTTL().Seconds()),
	})
}
