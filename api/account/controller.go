// Package account exposes sign-up, sign-in, sign-out and profile
// endpoints. The session-to-user binding lives here: on successful
// authentication the controller writes it, on sign-out it removes it.
package account

import (
	"net/http"

	"github.com/example/storefront/api/middleware"
	"github.com/example/storefront/api/response"
	accountapp "github.com/example/storefront/application/account"
	infrasession "github.com/example/storefront/infrastructure/session"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	accountService *accountapp.Service
	auth           infrasession.AuthSessions
}

func NewController(accountService *accountapp.Service, auth infrasession.AuthSessions) *Controller {
	return &Controller{accountService: accountService, auth: auth}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/sign-up", c.SignUp)
	router.POST("/sign-in", c.SignIn)
	router.POST("/sign-out", c.SignOut)

	profileGroup := router.Group("/profile", middleware.RequireAuth())
	{
		profileGroup.GET("", c.Profile)
		profileGroup.POST("", c.UpdateProfile)
		profileGroup.POST("/avatar", c.UpdateAvatar)
		profileGroup.POST("/password", c.ChangePassword)
	}
}

// SignUp POST /sign-up
func (c *Controller) SignUp(ctx *gin.Context) {
	var req accountapp.SignUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	owner := middleware.Owner(ctx)
	profile, err := c.accountService.SignUp(ctx.Request.Context(), owner.SessionID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	if err := c.auth.SignIn(ctx.Request.Context(), owner.SessionID, profile.ID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, profile, "signed up")
}

// SignIn POST /sign-in
func (c *Controller) SignIn(ctx *gin.Context) {
	var req accountapp.SignInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	owner := middleware.Owner(ctx)
	profile, err := c.accountService.SignIn(ctx.Request.Context(), owner.SessionID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	if err := c.auth.SignIn(ctx.Request.Context(), owner.SessionID, profile.ID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, profile, "signed in")
}

// SignOut POST /sign-out
func (c *Controller) SignOut(ctx *gin.Context) {
	owner := middleware.Owner(ctx)
	if err := c.auth.SignOut(ctx.Request.Context(), owner.SessionID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "signed out")
}

// Profile GET /profile
func (c *Controller) Profile(ctx *gin.Context) {
	profile, err := c.accountService.Profile(ctx.Request.Context(), middleware.Owner(ctx).UserID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, profile, "profile retrieved")
}

// UpdateProfile POST /profile
func (c *Controller) UpdateProfile(ctx *gin.Context) {
	var req accountapp.ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	profile, err := c.accountService.UpdateProfile(ctx.Request.Context(), middleware.Owner(ctx).UserID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, profile, "profile updated")
}

// ChangePassword POST /profile/password
func (c *Controller) ChangePassword(ctx *gin.Context) {
	var req accountapp.PasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	if err := c.accountService.ChangePassword(ctx.Request.Context(), middleware.Owner(ctx).UserID, req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "password updated")
}

// UpdateAvatar POST /profile/avatar
func (c *Controller) UpdateAvatar(ctx *gin.Context) {
	var req accountapp.AvatarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	profile, err := c.accountService.UpdateAvatar(ctx.Request.Context(), middleware.Owner(ctx).UserID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, profile, "avatar updated")
}
