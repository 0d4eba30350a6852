package catalog

import "github.com/example/storefront/domain/shared"

// SortField enumerates the catalog sort keys.
type SortField string

const (
	SortByRating  SortField = "rating"
	SortByPrice   SortField = "price"
	SortByDate    SortField = "date"
	SortByReviews SortField = "reviews"
)

// Filter is the typed catalog query. Zero values mean "not filtered";
// MinPrice/MaxPrice use pointers so a zero price bound stays expressible.
type Filter struct {
	CategoryID       string
	NameContains     string
	MinPrice         *shared.Money
	MaxPrice         *shared.Money
	FreeDeliveryOnly bool
	AvailableOnly    bool
	TagIDs           []string
	SortField        SortField
	SortDescending   bool
}

// Page is offset pagination for catalog listings.
type Page struct {
	Number int // 1-based
	Size   int
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}
