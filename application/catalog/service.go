// Package catalog orchestrates product browsing: listings, filters,
// featured selections, sales, product cards and reviews.
package catalog

import (
	"context"
	"time"

	"github.com/example/storefront/domain/catalog"
	apperrors "github.com/example/storefront/pkg/errors"
)

const (
	popularLimit  = 8
	limitedStock  = 3
	limitedLimit  = 16
	bannersLimit  = 3
	defaultPage   = 1
	defaultLimit  = 20
	maxPageLimit  = 100
	minReviewRate = 1
	maxReviewRate = 5
)

// Service exposes catalog read operations and review submission.
type Service struct {
	repo catalog.Repository
}

func NewService(repo catalog.Repository) *Service {
	return &Service{repo: repo}
}

// ============================================================================
// DTOs
// ============================================================================

type ImageResponse struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductResponse is the catalog listing item. Price is in minor units.
type ProductResponse struct {
	ID           string          `json:"id"`
	Category     string          `json:"category"`
	Price        int64           `json:"price"`
	Count        int             `json:"count"`
	Date         time.Time       `json:"date"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	FreeDelivery bool            `json:"freeDelivery"`
	Images       []ImageResponse `json:"images"`
	Tags         []TagResponse   `json:"tags"`
	Reviews      int             `json:"reviews"`
	Rating       float64         `json:"rating"`
}

type SpecificationResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ReviewResponse struct {
	Author string    `json:"author"`
	Email  string    `json:"email"`
	Text   string    `json:"text"`
	Rate   int       `json:"rate"`
	Date   time.Time `json:"date"`
}

// ProductDetailResponse is the full product card.
type ProductDetailResponse struct {
	ProductResponse
	FullDescription string                  `json:"fullDescription"`
	Specifications  []SpecificationResponse `json:"specifications"`
	ReviewList      []ReviewResponse        `json:"reviewList"`
}

type CategoryResponse struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Image         ImageResponse      `json:"image"`
	Subcategories []CategoryResponse `json:"subcategories"`
}

// ListResponse is a page of products with pagination metadata.
type ListResponse struct {
	Items       []ProductResponse `json:"items"`
	CurrentPage int               `json:"currentPage"`
	LastPage    int               `json:"lastPage"`
}

type SaleResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Price     int64           `json:"price"`
	SalePrice int64           `json:"salePrice"`
	DateFrom  time.Time       `json:"dateFrom"`
	DateTo    time.Time       `json:"dateTo"`
	Images    []ImageResponse `json:"images"`
}

type SalesResponse struct {
	Items       []SaleResponse `json:"items"`
	CurrentPage int            `json:"currentPage"`
	LastPage    int            `json:"lastPage"`
}

type ReviewRequest struct {
	Author string `json:"author" binding:"required"`
	Email  string `json:"email"`
	Text   string `json:"text"`
	Rate   int    `json:"rate" binding:"required"`
}

// FromSummary converts a domain summary to the listing DTO.
func FromSummary(s catalog.ProductSummary) ProductResponse {
	images := make([]ImageResponse, len(s.Images))
	for i, image := range s.Images {
		images[i] = ImageResponse{Src: image.Src, Alt: image.Alt}
	}
	tags := make([]TagResponse, len(s.Tags))
	for i, tag := range s.Tags {
		tags[i] = TagResponse{ID: tag.ID, Name: tag.Name}
	}
	return ProductResponse{
		ID:           s.ID,
		Category:     s.CategoryID,
		Price:        s.Price.Amount(),
		Count:        s.Count,
		Date:         s.CreatedAt,
		Title:        s.Title,
		Description:  s.Description,
		FreeDelivery: s.FreeDelivery,
		Images:       images,
		Tags:         tags,
		Reviews:      s.ReviewCount,
		Rating:       s.Rating,
	}
}

func fromSummaries(summaries []catalog.ProductSummary) []ProductResponse {
	items := make([]ProductResponse, len(summaries))
	for i, s := range summaries {
		items[i] = FromSummary(s)
	}
	return items
}

// NormalizePage clamps page number and size to sane bounds.
func NormalizePage(number, size int) catalog.Page {
	if number < defaultPage {
		number = defaultPage
	}
	if size <= 0 {
		size = defaultLimit
	}
	if size > maxPageLimit {
		size = maxPageLimit
	}
	return catalog.Page{Number: number, Size: size}
}

func lastPage(total int64, size int) int {
	if size <= 0 || total == 0 {
		return 1
	}
	last := int((total + int64(size) - 1) / int64(size))
	if last < 1 {
		last = 1
	}
	return last
}

// ============================================================================
// Operations
// ============================================================================

// Categories returns the non-deleted category tree: roots with their
// subcategories.
func (s *Service) Categories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}

	children := make(map[string][]catalog.Category)
	var roots []catalog.Category
	for _, c := range categories {
		if c.ParentID == "" {
			roots = append(roots, c)
		} else {
			children[c.ParentID] = append(children[c.ParentID], c)
		}
	}

	result := make([]CategoryResponse, len(roots))
	for i, root := range roots {
		subs := make([]CategoryResponse, len(children[root.ID]))
		for j, sub := range children[root.ID] {
			subs[j] = CategoryResponse{
				ID:    sub.ID,
				Title: sub.Title,
				Image: ImageResponse{Src: sub.ImageSrc, Alt: sub.ImageAlt},
			}
		}
		result[i] = CategoryResponse{
			ID:            root.ID,
			Title:         root.Title,
			Image:         ImageResponse{Src: root.ImageSrc, Alt: root.ImageAlt},
			Subcategories: subs,
		}
	}
	return result, nil
}

func (s *Service) Tags(ctx context.Context) ([]TagResponse, error) {
	tags, err := s.repo.Tags(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]TagResponse, len(tags))
	for i, tag := range tags {
		result[i] = TagResponse{ID: tag.ID, Name: tag.Name}
	}
	return result, nil
}

// List returns a filtered, sorted page of the catalog.
func (s *Service) List(ctx context.Context, filter catalog.Filter, page catalog.Page) (*ListResponse, error) {
	summaries, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	return &ListResponse{
		Items:       fromSummaries(summaries),
		CurrentPage: page.Number,
		LastPage:    lastPage(total, page.Size),
	}, nil
}

// Popular returns the top products by rating, then review count.
func (s *Service) Popular(ctx context.Context) ([]ProductResponse, error) {
	summaries, err := s.repo.Popular(ctx, popularLimit)
	if err != nil {
		return nil, err
	}
	return fromSummaries(summaries), nil
}

// Limited returns in-stock products running low.
func (s *Service) Limited(ctx context.Context) ([]ProductResponse, error) {
	summaries, err := s.repo.Limited(ctx, limitedStock, limitedLimit)
	if err != nil {
		return nil, err
	}
	return fromSummaries(summaries), nil
}

func (s *Service) Banners(ctx context.Context) ([]ProductResponse, error) {
	summaries, err := s.repo.Banners(ctx, bannersLimit)
	if err != nil {
		return nil, err
	}
	return fromSummaries(summaries), nil
}

// Sales returns a page of sale entries joined with product data.
func (s *Service) Sales(ctx context.Context, page catalog.Page) (*SalesResponse, error) {
	sales, total, err := s.repo.Sales(ctx, page)
	if err != nil {
		return nil, err
	}

	productIDs := make([]string, len(sales))
	for i, sale := range sales {
		productIDs[i] = sale.ProductID
	}
	products, err := s.repo.FindProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	items := make([]SaleResponse, 0, len(sales))
	for _, sale := range sales {
		product, ok := products[sale.ProductID]
		if !ok {
			continue
		}
		images := make([]ImageResponse, len(product.Images))
		for i, image := range product.Images {
			images[i] = ImageResponse{Src: image.Src, Alt: image.Alt}
		}
		items = append(items, SaleResponse{
			ID:        sale.ID,
			ProductID: sale.ProductID,
			Title:     product.Title,
			Price:     product.Price.Amount(),
			SalePrice: sale.SalePrice.Amount(),
			DateFrom:  sale.DateFrom,
			DateTo:    sale.DateTo,
			Images:    images,
		})
	}
	return &SalesResponse{
		Items:       items,
		CurrentPage: page.Number,
		LastPage:    lastPage(total, page.Size),
	}, nil
}

// Product returns the full product card.
func (s *Service) Product(ctx context.Context, id string) (*ProductDetailResponse, error) {
	summary, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	specifications, err := s.repo.Specifications(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.repo.Reviews(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ProductDetailResponse{
		ProductResponse: FromSummary(*summary),
		FullDescription: summary.FullDescription,
		Specifications:  make([]SpecificationResponse, len(specifications)),
		ReviewList:      make([]ReviewResponse, len(reviews)),
	}
	for i, spec := range specifications {
		detail.Specifications[i] = SpecificationResponse{Name: spec.Name, Value: spec.Value}
	}
	for i, review := range reviews {
		detail.ReviewList[i] = ReviewResponse{
			Author: review.Author,
			Email:  review.Email,
			Text:   review.Text,
			Rate:   review.Rate,
			Date:   review.CreatedAt,
		}
	}
	return detail, nil
}

// AddReview stores a review and returns the refreshed review list.
func (s *Service) AddReview(ctx context.Context, productID string, req ReviewRequest) ([]ReviewResponse, error) {
	if _, err := s.repo.FindProduct(ctx, productID); err != nil {
		return nil, err
	}
	if req.Rate < minReviewRate || req.Rate > maxReviewRate {
		return nil, apperrors.Validation("invalid review", map[string]string{
			"rate": "rate must be between 1 and 5",
		})
	}

	review, err := catalog.NewReview(productID, req.Author, req.Email, req.Text, req.Rate)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveReview(ctx, review); err != nil {
		return nil, err
	}

	reviews, err := s.repo.Reviews(ctx, productID)
	if err != nil {
		return nil, err
	}
	result := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		result[i] = ReviewResponse{Author: r.Author, Email: r.Email, Text: r.Text, Rate: r.Rate, Date: r.CreatedAt}
	}
	return result, nil
}
