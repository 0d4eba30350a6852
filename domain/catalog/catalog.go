// Package catalog holds the product catalog: categories, tags, products,
// images, specifications, reviews and sales. Catalog entities are plain
// data; filtering and sorting are delegated to the repository.
package catalog

import (
	"time"

	"github.com/example/storefront/domain/shared"
)

// Category is a node of the category tree. Root categories have no parent.
type Category struct {
	ID        string
	Title     string
	ImageSrc  string
	ImageAlt  string
	ParentID  string // empty for roots
	IsDeleted bool
}

// Tag labels products, many-to-many.
type Tag struct {
	ID   string
	Name string
}

// Product is a catalog item. Price and Count are live values; order lines
// snapshot the price at purchase time and never read it again.
type Product struct {
	ID              string
	CategoryID      string
	Title           string
	Description     string
	FullDescription string
	Price           shared.Money
	Count           int // stock on hand
	FreeDelivery    bool
	CreatedAt       time.Time
	Tags            []Tag
	Images          []Image
	IsDeleted       bool
}

// Available reports whether the product can be added to a basket.
func (p *Product) Available() bool {
	return !p.IsDeleted && p.Count > 0
}

// Image is a product photo reference. Upload storage is external; only the
// source path and alt text are kept.
type Image struct {
	ID        string
	ProductID string
	Src       string
	Alt       string
}

// Specification is a named product characteristic.
type Specification struct {
	ID        string
	ProductID string
	Name      string
	Value     string
}

// Review is a customer review with a 1..5 rating.
type Review struct {
	ID        string
	ProductID string
	Author    string
	Email     string
	Text      string
	Rate      int
	CreatedAt time.Time
}

// Sale is a time-bounded discount on a single product.
type Sale struct {
	ID        string
	ProductID string
	SalePrice shared.Money
	DateFrom  time.Time
	DateTo    time.Time
}

// ProductSummary is a product with its review aggregates, the shape every
// listing endpoint returns.
type ProductSummary struct {
	Product
	Rating      float64
	ReviewCount int
}

// NewReview validates and builds a review for a product.
func NewReview(productID, author, email, text string, rate int) (*Review, error) {
	if rate < 1 || rate > 5 {
		return nil, shared.NewValidationError("review", "rate", "rate must be between 1 and 5")
	}
	if author == "" {
		return nil, shared.NewValidationError("review", "author", "author must not be empty")
	}
	return &Review{
		ProductID: productID,
		Author:    author,
		Email:     email,
		Text:      text,
		Rate:      rate,
		CreatedAt: time.Now(),
	}, nil
}
