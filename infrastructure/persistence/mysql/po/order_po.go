package po

import (
	"time"

	"github.com/example/storefront/domain/order"
	"github.com/example/storefront/domain/shared"
)

type OrderPO struct {
	ID           string    `gorm:"primaryKey;size:64"`
	UserID       string    `gorm:"size:64;index"` // empty until claimed
	CreatedAt    time.Time `gorm:"index;autoCreateTime:false"`
	FullName     string    `gorm:"size:200"`
	Email        string    `gorm:"size:254"`
	Phone        string    `gorm:"size:20"`
	City         string    `gorm:"size:30"`
	Address      string    `gorm:"type:text"`
	DeliveryType string    `gorm:"size:20;not null"`
	PaymentType  string    `gorm:"size:20;not null"`
	TotalCost    int64     `gorm:"not null"`
	Status       string    `gorm:"size:20;not null"`
	IsDeleted    bool      `gorm:"index;default:false"`
}

func (OrderPO) TableName() string { return "orders" }

type OrderLinePO struct {
	ID        string `gorm:"primaryKey;size:64"`
	OrderID   string `gorm:"size:64;index;not null"`
	ProductID string `gorm:"size:64;not null"`
	Count     int    `gorm:"not null"`
	Price     int64  `gorm:"not null"` // line total at purchase time
}

func (OrderLinePO) TableName() string { return "order_lines" }

type PaymentPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	OrderID   string    `gorm:"size:64;index;not null"`
	Number    string    `gorm:"size:8;not null"`
	Name      string    `gorm:"size:200"`
	Month     string    `gorm:"size:2"`
	Year      string    `gorm:"size:4"`
	Code      string    `gorm:"size:3"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PaymentPO) TableName() string { return "payments" }

// FromOrder maps the aggregate to its POs.
func FromOrder(o *order.Order) (*OrderPO, []OrderLinePO) {
	orderPO := &OrderPO{
		ID:           o.ID(),
		UserID:       o.UserID(),
		CreatedAt:    o.CreatedAt(),
		FullName:     o.FullName(),
		Email:        o.Email(),
		Phone:        o.Phone(),
		City:         o.City(),
		Address:      o.Address(),
		DeliveryType: string(o.Delivery()),
		PaymentType:  o.PaymentType(),
		TotalCost:    o.TotalCost().Amount(),
		Status:       string(o.Status()),
		IsDeleted:    o.IsDeleted(),
	}

	lines := o.Lines()
	linePOs := make([]OrderLinePO, len(lines))
	for i, line := range lines {
		linePOs[i] = OrderLinePO{
			ID:        line.ID,
			OrderID:   line.OrderID,
			ProductID: line.ProductID,
			Count:     line.Count,
			Price:     line.Price.Amount(),
		}
	}

	return orderPO, linePOs
}

// ToDomain rebuilds the aggregate from its POs.
func (p *OrderPO) ToDomain(linePOs []OrderLinePO) *order.Order {
	lines := make([]order.Line, len(linePOs))
	for i, lp := range linePOs {
		lines[i] = order.Line{
			ID:        lp.ID,
			OrderID:   lp.OrderID,
			ProductID: lp.ProductID,
			Count:     lp.Count,
			Price:     shared.NewMoney(lp.Price),
		}
	}

	return order.Rebuild(order.Snapshot{
		ID:           p.ID,
		UserID:       p.UserID,
		CreatedAt:    p.CreatedAt,
		FullName:     p.FullName,
		Email:        p.Email,
		Phone:        p.Phone,
		City:         p.City,
		Address:      p.Address,
		DeliveryType: order.DeliveryType(p.DeliveryType),
		PaymentType:  p.PaymentType,
		TotalCost:    shared.NewMoney(p.TotalCost),
		Status:       order.Status(p.Status),
		IsDeleted:    p.IsDeleted,
		Lines:        lines,
	})
}

// FromPayment maps a payment attempt to its PO.
func FromPayment(p *order.Payment) *PaymentPO {
	return &PaymentPO{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Number:    p.Number,
		Name:      p.Name,
		Month:     p.Month,
		Year:      p.Year,
		Code:      p.Code,
		CreatedAt: p.CreatedAt,
	}
}
