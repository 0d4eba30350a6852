package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/domain/shared"
	"github.com/example/storefront/infrastructure/persistence"
	"github.com/example/storefront/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository implements catalog.Repository on MySQL. Review
// aggregates (rating, review count) are computed in the listing query so
// sorting by rating stays in the database.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// productRow is the flat scan target for product queries with aggregates.
type productRow struct {
	ID              string
	CategoryID      string
	Title           string
	Description     string
	FullDescription string
	Price           int64
	Count           int
	FreeDelivery    bool
	CreatedAt       time.Time
	IsDeleted       bool
	Rating          float64
	ReviewCount     int
}

func (r *CatalogRepository) productQuery(db *gorm.DB) *gorm.DB {
	return db.Table("products AS p").
		Select("p.id, p.category_id, p.title, p.description, p.full_description, " +
			"p.price, p.count, p.free_delivery, p.created_at, p.is_deleted, " +
			"COALESCE(AVG(r.rate), 0) AS rating, COUNT(r.id) AS review_count").
		Joins("LEFT JOIN reviews r ON r.product_id = p.id").
		Where("p.is_deleted = ?", false).
		Group("p.id")
}

func (r *CatalogRepository) toSummaries(ctx context.Context, rows []productRow) ([]catalog.ProductSummary, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	tagsByProduct, err := r.tagsByProduct(ctx, ids)
	if err != nil {
		return nil, err
	}
	imagesByProduct, err := r.imagesByProduct(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]catalog.ProductSummary, len(rows))
	for i, row := range rows {
		summaries[i] = catalog.ProductSummary{
			Product: catalog.Product{
				ID:              row.ID,
				CategoryID:      row.CategoryID,
				Title:           row.Title,
				Description:     row.Description,
				FullDescription: row.FullDescription,
				Price:           shared.NewMoney(row.Price),
				Count:           row.Count,
				FreeDelivery:    row.FreeDelivery,
				CreatedAt:       row.CreatedAt,
				Tags:            tagsByProduct[row.ID],
				Images:          imagesByProduct[row.ID],
				IsDeleted:       row.IsDeleted,
			},
			Rating:      row.Rating,
			ReviewCount: row.ReviewCount,
		}
	}
	return summaries, nil
}

func (r *CatalogRepository) tagsByProduct(ctx context.Context, productIDs []string) (map[string][]catalog.Tag, error) {
	type tagRow struct {
		ProductID string
		ID        string
		Name      string
	}
	var rows []tagRow
	err := r.getDB(ctx).Table("product_tags AS pt").
		Select("pt.product_id, t.id, t.name").
		Joins("JOIN tags t ON t.id = pt.tag_id").
		Where("pt.product_id IN ?", productIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string][]catalog.Tag, len(productIDs))
	for _, row := range rows {
		result[row.ProductID] = append(result[row.ProductID], catalog.Tag{ID: row.ID, Name: row.Name})
	}
	return result, nil
}

func (r *CatalogRepository) imagesByProduct(ctx context.Context, productIDs []string) (map[string][]catalog.Image, error) {
	var rows []struct {
		ID        string
		ProductID string
		Src       string
		Alt       string
	}
	err := r.getDB(ctx).Table("product_images").
		Where("product_id IN ?", productIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string][]catalog.Image, len(productIDs))
	for _, row := range rows {
		result[row.ProductID] = append(result[row.ProductID],
			catalog.Image{ID: row.ID, ProductID: row.ProductID, Src: row.Src, Alt: row.Alt})
	}
	return result, nil
}

func (r *CatalogRepository) FindProduct(ctx context.Context, id string) (*catalog.ProductSummary, error) {
	var row productRow
	err := r.productQuery(r.getDB(ctx)).Where("p.id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("product")
		}
		return nil, err
	}

	summaries, err := r.toSummaries(ctx, []productRow{row})
	if err != nil {
		return nil, err
	}
	return &summaries[0], nil
}

func (r *CatalogRepository) FindProducts(ctx context.Context, ids []string) (map[string]*catalog.ProductSummary, error) {
	if len(ids) == 0 {
		return map[string]*catalog.ProductSummary{}, nil
	}

	var rows []productRow
	err := r.productQuery(r.getDB(ctx)).Where("p.id IN ?", ids).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries, err := r.toSummaries(ctx, rows)
	if err != nil {
		return nil, err
	}

	result := make(map[string]*catalog.ProductSummary, len(summaries))
	for i := range summaries {
		result[summaries[i].ID] = &summaries[i]
	}
	return result, nil
}

func (r *CatalogRepository) SaveProduct(ctx context.Context, p *catalog.Product) error {
	db := r.getDB(ctx)
	if p.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		p.ID = id.String()
		p.CreatedAt = time.Now()
	}
	if err := db.Save(po.FromProduct(p)).Error; err != nil {
		return err
	}

	// tag links: delete then insert, same strategy as order lines
	if err := db.Where("product_id = ?", p.ID).Delete(&po.ProductTagPO{}).Error; err != nil {
		return err
	}
	if len(p.Tags) > 0 {
		links := make([]po.ProductTagPO, len(p.Tags))
		for i, tag := range p.Tags {
			links[i] = po.ProductTagPO{ProductID: p.ID, TagID: tag.ID}
		}
		if err := db.Create(&links).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *CatalogRepository) List(ctx context.Context, filter catalog.Filter, page catalog.Page) ([]catalog.ProductSummary, int64, error) {
	q := r.productQuery(r.getDB(ctx))

	if filter.CategoryID != "" {
		q = q.Where("p.category_id = ?", filter.CategoryID)
	}
	if filter.NameContains != "" {
		q = q.Where("p.title LIKE ?", "%"+filter.NameContains+"%")
	}
	if filter.MinPrice != nil {
		q = q.Where("p.price >= ?", filter.MinPrice.Amount())
	}
	if filter.MaxPrice != nil {
		q = q.Where("p.price <= ?", filter.MaxPrice.Amount())
	}
	if filter.FreeDeliveryOnly {
		q = q.Where("p.free_delivery = ?", true)
	}
	if filter.AvailableOnly {
		q = q.Where("p.count > ?", 0)
	}
	if len(filter.TagIDs) > 0 {
		q = q.Where("p.id IN (?)", r.getDB(ctx).Table("product_tags").
			Select("product_id").Where("tag_id IN ?", filter.TagIDs))
	}

	var total int64
	countQ := r.getDB(ctx).Table("(?) AS filtered", q.Session(&gorm.Session{}))
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortColumn := map[catalog.SortField]string{
		catalog.SortByRating:  "rating",
		catalog.SortByPrice:   "p.price",
		catalog.SortByDate:    "p.created_at",
		catalog.SortByReviews: "review_count",
	}[filter.SortField]
	if sortColumn == "" {
		sortColumn = "p.created_at"
	}
	direction := "ASC"
	if filter.SortDescending {
		direction = "DESC"
	}
	q = q.Order(sortColumn + " " + direction)

	if page.Size > 0 {
		q = q.Limit(page.Size).Offset(page.Offset())
	}

	var rows []productRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	summaries, err := r.toSummaries(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

func (r *CatalogRepository) Popular(ctx context.Context, limit int) ([]catalog.ProductSummary, error) {
	var rows []productRow
	err := r.productQuery(r.getDB(ctx)).
		Order("rating DESC, review_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.toSummaries(ctx, rows)
}

func (r *CatalogRepository) Limited(ctx context.Context, maxStock, limit int) ([]catalog.ProductSummary, error) {
	var rows []productRow
	err := r.productQuery(r.getDB(ctx)).
		Where("p.count > 0 AND p.count <= ?", maxStock).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.toSummaries(ctx, rows)
}

func (r *CatalogRepository) Banners(ctx context.Context, limit int) ([]catalog.ProductSummary, error) {
	var rows []productRow
	err := r.productQuery(r.getDB(ctx)).Limit(limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.toSummaries(ctx, rows)
}

func (r *CatalogRepository) Categories(ctx context.Context) ([]catalog.Category, error) {
	var rows []struct {
		ID        string
		Title     string
		ImageSrc  string
		ImageAlt  string
		ParentID  string
		IsDeleted bool
	}
	err := r.getDB(ctx).Table("categories").
		Where("is_deleted = ?", false).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	categories := make([]catalog.Category, len(rows))
	for i, row := range rows {
		categories[i] = catalog.Category{
			ID:       row.ID,
			Title:    row.Title,
			ImageSrc: row.ImageSrc,
			ImageAlt: row.ImageAlt,
			ParentID: row.ParentID,
		}
	}
	return categories, nil
}

func (r *CatalogRepository) Tags(ctx context.Context) ([]catalog.Tag, error) {
	var rows []struct {
		ID   string
		Name string
	}
	err := r.getDB(ctx).Table("tags").Order("name").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	tags := make([]catalog.Tag, len(rows))
	for i, row := range rows {
		tags[i] = catalog.Tag{ID: row.ID, Name: row.Name}
	}
	return tags, nil
}

func (r *CatalogRepository) Specifications(ctx context.Context, productID string) ([]catalog.Specification, error) {
	var rows []struct {
		ID        string
		ProductID string
		Name      string
		Value     string
	}
	err := r.getDB(ctx).Table("specifications").
		Where("product_id = ?", productID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	specs := make([]catalog.Specification, len(rows))
	for i, row := range rows {
		specs[i] = catalog.Specification{ID: row.ID, ProductID: row.ProductID, Name: row.Name, Value: row.Value}
	}
	return specs, nil
}

func (r *CatalogRepository) Reviews(ctx context.Context, productID string) ([]catalog.Review, error) {
	var rows []struct {
		ID        string
		ProductID string
		Author    string
		Email     string
		Text      string
		Rate      int
		CreatedAt time.Time
	}
	err := r.getDB(ctx).Table("reviews").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	reviews := make([]catalog.Review, len(rows))
	for i, row := range rows {
		reviews[i] = catalog.Review{
			ID:        row.ID,
			ProductID: row.ProductID,
			Author:    row.Author,
			Email:     row.Email,
			Text:      row.Text,
			Rate:      row.Rate,
			CreatedAt: row.CreatedAt,
		}
	}
	return reviews, nil
}

func (r *CatalogRepository) SaveReview(ctx context.Context, review *catalog.Review) error {
	if review.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		review.ID = id.String()
	}
	return r.getDB(ctx).Create(&po.ReviewPO{
		ID:        review.ID,
		ProductID: review.ProductID,
		Author:    review.Author,
		Email:     review.Email,
		Text:      review.Text,
		Rate:      review.Rate,
		CreatedAt: review.CreatedAt,
	}).Error
}

func (r *CatalogRepository) Sales(ctx context.Context, page catalog.Page) ([]catalog.Sale, int64, error) {
	db := r.getDB(ctx)

	var total int64
	if err := db.Table("sales").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := db.Table("sales").Order("date_from")
	if page.Size > 0 {
		q = q.Limit(page.Size).Offset(page.Offset())
	}

	var rows []struct {
		ID        string
		ProductID string
		SalePrice int64
		DateFrom  time.Time
		DateTo    time.Time
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	sales := make([]catalog.Sale, len(rows))
	for i, row := range rows {
		sales[i] = catalog.Sale{
			ID:        row.ID,
			ProductID: row.ProductID,
			SalePrice: shared.NewMoney(row.SalePrice),
			DateFrom:  row.DateFrom,
			DateTo:    row.DateTo,
		}
	}
	return sales, total, nil
}

var _ catalog.Repository = (*CatalogRepository)(nil)
