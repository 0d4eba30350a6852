// Package catalog exposes the browsing endpoints: categories, tags,
// filtered listings, featured selections, sales, product cards and
// reviews.
package catalog

import (
	"net/http"
	"strconv"

	"github.com/example/storefront/api/response"
	catalogapp "github.com/example/storefront/application/catalog"
	"github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/domain/shared"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	catalogService *catalogapp.Service
}

func NewController(catalogService *catalogapp.Service) *Controller {
	return &Controller{catalogService: catalogService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/categories", c.Categories)
	router.GET("/tags", c.Tags)
	router.GET("/banners", c.Banners)
	router.GET("/sales", c.Sales)

	catalogGroup := router.Group("/catalog")
	{
		catalogGroup.GET("", c.List)
		catalogGroup.GET("/popular", c.Popular)
		catalogGroup.GET("/limited", c.Limited)
	}

	productGroup := router.Group("/product")
	{
		productGroup.GET("/:id", c.Product)
		productGroup.POST("/:id/reviews", c.AddReview)
	}
}

// parseFilter reads the catalog filter from query parameters. Prices are
// in minor units.
func parseFilter(ctx *gin.Context) catalog.Filter {
	filter := catalog.Filter{
		CategoryID:       ctx.Query("category"),
		NameContains:     ctx.Query("name"),
		FreeDeliveryOnly: ctx.Query("freeDelivery") == "true",
		AvailableOnly:    ctx.Query("available") == "true",
		TagIDs:           ctx.QueryArray("tags"),
	}

	if raw := ctx.Query("minPrice"); raw != "" {
		if amount, err := strconv.ParseInt(raw, 10, 64); err == nil {
			price := shared.NewMoney(amount)
			filter.MinPrice = &price
		}
	}
	if raw := ctx.Query("maxPrice"); raw != "" {
		if amount, err := strconv.ParseInt(raw, 10, 64); err == nil {
			price := shared.NewMoney(amount)
			filter.MaxPrice = &price
		}
	}

	switch catalog.SortField(ctx.Query("sort")) {
	case catalog.SortByRating:
		filter.SortField = catalog.SortByRating
	case catalog.SortByPrice:
		filter.SortField = catalog.SortByPrice
	case catalog.SortByReviews:
		filter.SortField = catalog.SortByReviews
	default:
		filter.SortField = catalog.SortByDate
	}
	filter.SortDescending = ctx.DefaultQuery("sortType", "dec") == "dec"

	return filter
}

func parsePage(ctx *gin.Context) catalog.Page {
	number, _ := strconv.Atoi(ctx.DefaultQuery("currentPage", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	return catalogapp.NormalizePage(number, size)
}

// Categories GET /categories
func (c *Controller) Categories(ctx *gin.Context) {
	categories, err := c.catalogService.Categories(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, categories, "categories retrieved")
}

// Tags GET /tags
func (c *Controller) Tags(ctx *gin.Context) {
	tags, err := c.catalogService.Tags(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, tags, "tags retrieved")
}

// List GET /catalog
func (c *Controller) List(ctx *gin.Context) {
	result, err := c.catalogService.List(ctx.Request.Context(), parseFilter(ctx), parsePage(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, result, "catalog retrieved")
}

// Popular GET /catalog/popular
func (c *Controller) Popular(ctx *gin.Context) {
	products, err := c.catalogService.Popular(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, products, "popular products retrieved")
}

// Limited GET /catalog/limited
func (c *Controller) Limited(ctx *gin.Context) {
	products, err := c.catalogService.Limited(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, products, "limited products retrieved")
}

// Banners GET /banners
func (c *Controller) Banners(ctx *gin.Context) {
	products, err := c.catalogService.Banners(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, products, "banners retrieved")
}

// Sales GET /sales
func (c *Controller) Sales(ctx *gin.Context) {
	result, err := c.catalogService.Sales(ctx.Request.Context(), parsePage(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, result, "sales retrieved")
}

// Product GET /product/:id
func (c *Controller) Product(ctx *gin.Context) {
	detail, err := c.catalogService.Product(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, detail, "product retrieved")
}

// AddReview POST /product/:id/reviews
func (c *Controller) AddReview(ctx *gin.Context) {
	var req catalogapp.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	reviews, err := c.catalogService.AddReview(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, reviews, "review added")
}
