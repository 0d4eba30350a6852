// Package po holds persistence objects: plain structs mapped to tables.
// No business logic and no GORM associations live here.
package po

import (
	"time"

	"github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/domain/shared"
)

type CategoryPO struct {
	ID        string `gorm:"primaryKey;size:64"`
	Title     string `gorm:"size:100;not null"`
	ImageSrc  string `gorm:"size:255"`
	ImageAlt  string `gorm:"size:200"`
	ParentID  string `gorm:"size:64;index"`
	IsDeleted bool   `gorm:"index;default:false"`
}

func (CategoryPO) TableName() string { return "categories" }

func (p *CategoryPO) ToDomain() catalog.Category {
	return catalog.Category{
		ID:        p.ID,
		Title:     p.Title,
		ImageSrc:  p.ImageSrc,
		ImageAlt:  p.ImageAlt,
		ParentID:  p.ParentID,
		IsDeleted: p.IsDeleted,
	}
}

type TagPO struct {
	ID   string `gorm:"primaryKey;size:64"`
	Name string `gorm:"size:100;uniqueIndex;not null"`
}

func (TagPO) TableName() string { return "tags" }

type ProductPO struct {
	ID              string    `gorm:"primaryKey;size:64"`
	CategoryID      string    `gorm:"size:64;index;not null"`
	Title           string    `gorm:"size:150;index;not null"`
	Description     string    `gorm:"type:text"`
	FullDescription string    `gorm:"type:text"`
	Price           int64     `gorm:"index;not null"`
	Count           int       `gorm:"index;not null;default:0"`
	FreeDelivery    bool      `gorm:"index;default:false"`
	CreatedAt       time.Time `gorm:"index;autoCreateTime"`
	IsDeleted       bool      `gorm:"index;default:false"`
}

func (ProductPO) TableName() string { return "products" }

// ProductTagPO is the product/tag join table.
type ProductTagPO struct {
	ProductID string `gorm:"primaryKey;size:64"`
	TagID     string `gorm:"primaryKey;size:64"`
}

func (ProductTagPO) TableName() string { return "product_tags" }

type ProductImagePO struct {
	ID        string `gorm:"primaryKey;size:64"`
	ProductID string `gorm:"size:64;index;not null"`
	Src       string `gorm:"size:255;not null"`
	Alt       string `gorm:"size:200"`
}

func (ProductImagePO) TableName() string { return "product_images" }

type SpecificationPO struct {
	ID        string `gorm:"primaryKey;size:64"`
	ProductID string `gorm:"size:64;index;not null"`
	Name      string `gorm:"size:100;not null"`
	Value     string `gorm:"size:200;not null"`
}

func (SpecificationPO) TableName() string { return "specifications" }

type ReviewPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	ProductID string    `gorm:"size:64;index;not null"`
	Author    string    `gorm:"size:200;not null"`
	Email     string    `gorm:"size:254"`
	Text      string    `gorm:"type:text"`
	Rate      int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ReviewPO) TableName() string { return "reviews" }

func (p *ReviewPO) ToDomain() catalog.Review {
	return catalog.Review{
		ID:        p.ID,
		ProductID: p.ProductID,
		Author:    p.Author,
		Email:     p.Email,
		Text:      p.Text,
		Rate:      p.Rate,
		CreatedAt: p.CreatedAt,
	}
}

type SalePO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	ProductID string    `gorm:"size:64;uniqueIndex;not null"`
	SalePrice int64     `gorm:"not null"`
	DateFrom  time.Time `gorm:"not null"`
	DateTo    time.Time `gorm:"not null"`
}

func (SalePO) TableName() string { return "sales" }

func (p *SalePO) ToDomain() catalog.Sale {
	return catalog.Sale{
		ID:        p.ID,
		ProductID: p.ProductID,
		SalePrice: shared.NewMoney(p.SalePrice),
		DateFrom:  p.DateFrom,
		DateTo:    p.DateTo,
	}
}

// FromProduct maps a domain product onto its PO. Tags and images are
// persisted separately.
func FromProduct(p *catalog.Product) *ProductPO {
	return &ProductPO{
		ID:              p.ID,
		CategoryID:      p.CategoryID,
		Title:           p.Title,
		Description:     p.Description,
		FullDescription: p.FullDescription,
		Price:           p.Price.Amount(),
		Count:           p.Count,
		FreeDelivery:    p.FreeDelivery,
		CreatedAt:       p.CreatedAt,
		IsDeleted:       p.IsDeleted,
	}
}

// ToDomain rebuilds a product with its tags and images.
func (p *ProductPO) ToDomain(tags []catalog.Tag, images []catalog.Image) catalog.Product {
	return catalog.Product{
		ID:              p.ID,
		CategoryID:      p.CategoryID,
		Title:           p.Title,
		Description:     p.Description,
		FullDescription: p.FullDescription,
		Price:           shared.NewMoney(p.Price),
		Count:           p.Count,
		FreeDelivery:    p.FreeDelivery,
		CreatedAt:       p.CreatedAt,
		Tags:            tags,
		Images:          images,
		IsDeleted:       p.IsDeleted,
	}
}
