// Package order exposes the order workflow endpoints: create from
// basket, list, detail, confirm and pay.
package order

import (
	"net/http"

	"github.com/example/storefront/api/middleware"
	"github.com/example/storefront/api/response"
	orderapp "github.com/example/storefront/application/order"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	orderService *orderapp.Service
}

func NewController(orderService *orderapp.Service) *Controller {
	return &Controller{orderService: orderService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("", c.Create)
		orderGroup.GET("", c.List)
		orderGroup.GET("/:id", c.Get)
		orderGroup.POST("/:id/confirm", c.Confirm)
		orderGroup.POST("/:id/payment", c.Pay)
	}
}

// Create POST /orders
func (c *Controller) Create(ctx *gin.Context) {
	orderID, err := c.orderService.Create(ctx.Request.Context(), middleware.Owner(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, gin.H{"orderId": orderID}, "order created")
}

// List GET /orders
func (c *Controller) List(ctx *gin.Context) {
	orders, err := c.orderService.List(ctx.Request.Context(), middleware.Owner(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "orders retrieved")
}

// Get GET /orders/:id
func (c *Controller) Get(ctx *gin.Context) {
	order, err := c.orderService.Get(ctx.Request.Context(), middleware.Owner(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "order retrieved")
}

// Confirm POST /orders/:id/confirm
func (c *Controller) Confirm(ctx *gin.Context) {
	var req orderapp.ShippingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.Confirm(ctx.Request.Context(), middleware.Owner(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "order confirmed")
}

// Pay POST /orders/:id/payment
func (c *Controller) Pay(ctx *gin.Context) {
	var req orderapp.CardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	if err := c.orderService.Pay(ctx.Request.Context(), middleware.Owner(ctx), ctx.Param("id"), req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "order paid")
}
