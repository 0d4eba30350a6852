// Package basket exposes the basket endpoints. The same routes serve
// authenticated and anonymous owners; the session middleware decides
// which.
package basket

import (
	"net/http"

	"github.com/example/storefront/api/middleware"
	"github.com/example/storefront/api/response"
	basketapp "github.com/example/storefront/application/basket"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	basketService *basketapp.Service
}

func NewController(basketService *basketapp.Service) *Controller {
	return &Controller{basketService: basketService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	basketGroup := router.Group("/basket")
	{
		basketGroup.GET("", c.Get)
		basketGroup.POST("", c.Add)
		basketGroup.DELETE("", c.Remove)
	}
}

type mutationRequest struct {
	ID    string `json:"id" binding:"required"`
	Count int    `json:"count" binding:"required"`
}

// Get GET /basket
func (c *Controller) Get(ctx *gin.Context) {
	items, err := c.basketService.Get(ctx.Request.Context(), middleware.Owner(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, items, "basket retrieved")
}

// Add POST /basket
func (c *Controller) Add(ctx *gin.Context) {
	var req mutationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	items, err := c.basketService.Add(ctx.Request.Context(), middleware.Owner(ctx), req.ID, req.Count)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, items, "product added to basket")
}

// Remove DELETE /basket
func (c *Controller) Remove(ctx *gin.Context) {
	var req mutationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	items, err := c.basketService.Remove(ctx.Request.Context(), middleware.Owner(ctx), req.ID, req.Count)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, items, "product removed from basket")
}
