package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/duccv/auth-service/internal/auth"
	"github.com/duccv/auth-service/internal/constant"
	"github.com/duccv/auth-service/internal/middleware"
	"github.com/duccv/auth-service/internal/model"
	"github.com/duccv/auth-service/internal/model/response"
	"github.com/duccv/auth-service/util"
)

// AuthHandler exposes the register/login/me endpoints over the auth service.
type AuthHandler struct {
	service *auth.Service
}

func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

// Register godoc
//
//	@Summary		Register a new account
//	@Description	Creates an account from email and password and returns the new account id
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		model.RegisterRequest	true	"credentials"
//	@Success		201		{object}	response.ResponseData{data=model.RegisterResponse}
//	@Failure		400		{object}	response.ResponseData
//	@Failure		409		{object}	response.ResponseData
//	@Router			/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	body := c.MustGet(constant.ValidatedBodyKey).(model.RegisterRequest)

	id, err := h.service.Register(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.ResponseData{
		Ec:   http.StatusCreated,
		Data: model.RegisterResponse{ID: id},
	})
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Verifies the credentials and returns a bearer access token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		model.LoginRequest	true	"credentials"
//	@Success		200		{object}	response.ResponseData{data=model.LoginResponse}
//	@Failure		401		{object}	response.ResponseData
//	@Router			/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	body := c.MustGet(constant.ValidatedBodyKey).(model.LoginRequest)

	token, err := h.service.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.ResponseData{
		Ec:   http.StatusOK,
		Data: model.LoginResponse{AccessToken: token},
	})
}

// Me godoc
//
//	@Summary		Current identity
//	@Description	Returns the identity carried by the presented bearer token
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	response.ResponseData{data=model.IdentityResponse}
//	@Failure		401	{object}	response.ResponseData
//	@Router			/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constant.UNAUTHORIZED)
		return
	}

	// the token's claims are trusted as of issuance time, no user refetch
	data := model.IdentityResponse{
		Subject: claims.Subject,
		Email:   claims.Email,
	}

	c.Header("ETag", util.GenerateETag(data))
	c.JSON(http.StatusOK, response.ResponseData{
		Ec:   http.StatusOK,
		Data: data,
	})
}

// writeAuthError maps internal failure kinds to their external outcome. Infra
// detail never reaches the client.
func writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, constant.INVALID_EMAIL_OR_PASSWORD)
	case errors.Is(err, auth.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, constant.EMAIL_EXISTS)
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, constant.INVALID_CREDENTIALS)
	default:
		zap.L().Error("Auth request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, constant.INTERNAL_SERVER_ERROR)
	}
}
