// Package order is the order workflow core: snapshotting a basket into
// immutable order lines, pricing with delivery surcharges, and the
// created → confirmed → paid status lifecycle.
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/storefront/domain/shared"

	"github.com/google/uuid"
)

// Status is the order lifecycle state. Transitions are
// created → confirmed → paid; there is no transition out of paid.
// Soft deletion is a separate flag, not a status.
type Status string

const (
	StatusCreated   Status = "created"
	StatusConfirmed Status = "confirmed"
	StatusPaid      Status = "paid"
)

// DeliveryType selects the delivery pricing rule.
type DeliveryType string

const (
	DeliveryOrdinary DeliveryType = "ordinary"
	DeliveryExpress  DeliveryType = "express"
)

// DefaultPaymentType is applied when an order is created without an
// explicit payment choice.
const DefaultPaymentType = "online"

// Order is the aggregate root. All state changes go through its methods so
// the status machine and the total-cost invariant cannot be bypassed.
type Order struct {
	id           string
	userID       string // empty until an anonymous order is claimed
	createdAt    time.Time
	fullName     string
	email        string
	phone        string
	city         string
	address      string
	deliveryType DeliveryType
	paymentType  string
	totalCost    shared.Money
	status       Status
	isDeleted    bool
	lines        []Line
}

// Line is an immutable snapshot of one basket line at order creation.
// Price is the line total (unit price × count) at the snapshot moment and
// must never be recomputed from the live product.
type Line struct {
	ID        string
	OrderID   string
	ProductID string
	Count     int
	Price     shared.Money
}

// LineSnapshot is the input for one order line: the product and its live
// unit price at the moment the order is created.
type LineSnapshot struct {
	ProductID string
	Count     int
	UnitPrice shared.Money
}

// New creates an order from basket snapshots. userID may be empty for the
// anonymous path. The total cost is the sum of the snapshotted line prices.
func New(userID string, snapshots []LineSnapshot) (*Order, error) {
	if len(snapshots) == 0 {
		return nil, shared.NewValidationError("order", "items", "basket is empty")
	}

	orderID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order id: %w", err)
	}

	lines := make([]Line, len(snapshots))
	total := shared.NewMoney(0)
	for i, snap := range snapshots {
		if snap.Count <= 0 {
			return nil, shared.NewValidationError("order", "count", "count must be positive")
		}
		price, err := snap.UnitPrice.MulInt(snap.Count)
		if err != nil {
			return nil, err
		}
		lineID, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate order line id: %w", err)
		}
		lines[i] = Line{
			ID:        lineID.String(),
			OrderID:   orderID.String(),
			ProductID: snap.ProductID,
			Count:     snap.Count,
			Price:     price,
		}
		total = total.Add(price)
	}

	return &Order{
		id:           orderID.String(),
		userID:       userID,
		createdAt:    time.Now(),
		deliveryType: DeliveryOrdinary,
		paymentType:  DefaultPaymentType,
		totalCost:    total,
		status:       StatusCreated,
		lines:        lines,
	}, nil
}

// Contact pre-fills the shipping contact fields from a user profile.
func (o *Order) Contact(fullName, email, phone string) {
	o.fullName = fullName
	o.email = email
	o.phone = phone
}

// Claim attaches a previously anonymous order to an authenticated user.
// The display name is backfilled only when the order has no name yet. A
// claim of an already owned order is rejected.
func (o *Order) Claim(userID, displayName string) error {
	if o.userID != "" {
		return shared.NewConflictError("order", "order already has an owner")
	}
	o.userID = userID
	if strings.TrimSpace(o.fullName) == "" {
		o.fullName = displayName
	}
	return nil
}

// ShippingUpdate carries the confirmation form. Empty fields leave the
// corresponding order fields unchanged.
type ShippingUpdate struct {
	FullName     string
	Email        string
	Phone        string
	City         string
	Address      string
	DeliveryType string
	PaymentType  string
}

// Confirm applies the shipping update, adds the delivery surcharge exactly
// once and moves the order to confirmed. Confirming an order that already
// left the created state fails with a conflict, so repeated confirmation
// calls cannot stack surcharges.
func (o *Order) Confirm(update ShippingUpdate, tariff Tariff) error {
	if o.status != StatusCreated {
		return shared.NewConflictError("order", "order is already confirmed")
	}

	if update.FullName != "" {
		o.fullName = update.FullName
	}
	if update.Email != "" {
		o.email = update.Email
	}
	if update.Phone != "" {
		o.phone = update.Phone
	}
	if update.City != "" {
		o.city = update.City
	}
	if update.Address != "" {
		o.address = update.Address
	}
	if update.DeliveryType != "" {
		dt := DeliveryType(update.DeliveryType)
		if dt != DeliveryOrdinary && dt != DeliveryExpress {
			return shared.NewValidationError("order", "deliveryType", "unknown delivery type")
		}
		o.deliveryType = dt
	}
	if update.PaymentType != "" {
		o.paymentType = update.PaymentType
	}

	o.totalCost = o.totalCost.Add(tariff.Surcharge(o.deliveryType, o.totalCost))
	o.status = StatusConfirmed
	return nil
}

// MarkPaid moves the order to paid after a successful payment attempt.
func (o *Order) MarkPaid() error {
	if o.status == StatusPaid {
		return shared.NewConflictError("order", "order is already paid")
	}
	o.status = StatusPaid
	return nil
}

// SoftDelete hides the order from listings without removing rows.
func (o *Order) SoftDelete() { o.isDeleted = true }

func (o *Order) ID() string                 { return o.id }
func (o *Order) UserID() string             { return o.userID }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) FullName() string           { return o.fullName }
func (o *Order) Email() string              { return o.email }
func (o *Order) Phone() string              { return o.phone }
func (o *Order) City() string               { return o.city }
func (o *Order) Address() string            { return o.address }
func (o *Order) Delivery() DeliveryType     { return o.deliveryType }
func (o *Order) PaymentType() string        { return o.paymentType }
func (o *Order) TotalCost() shared.Money    { return o.totalCost }
func (o *Order) Status() Status             { return o.status }
func (o *Order) IsDeleted() bool            { return o.isDeleted }

// Lines returns a copy of the order lines.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Snapshot is the reconstruction DTO for the persistence layer. Fields are
// private on the aggregate, so repositories rebuild orders through Rebuild
// instead of setters.
type Snapshot struct {
	ID           string
	UserID       string
	CreatedAt    time.Time
	FullName     string
	Email        string
	Phone        string
	City         string
	Address      string
	DeliveryType DeliveryType
	PaymentType  string
	TotalCost    shared.Money
	Status       Status
	IsDeleted    bool
	Lines        []Line
}

// ToSnapshot exports the aggregate state for persistence.
func (o *Order) ToSnapshot() Snapshot {
	return Snapshot{
		ID:           o.id,
		UserID:       o.userID,
		CreatedAt:    o.createdAt,
		FullName:     o.fullName,
		Email:        o.email,
		Phone:        o.phone,
		City:         o.city,
		Address:      o.address,
		DeliveryType: o.deliveryType,
		PaymentType:  o.paymentType,
		TotalCost:    o.totalCost,
		Status:       o.status,
		IsDeleted:    o.isDeleted,
		Lines:        o.Lines(),
	}
}

// Rebuild reconstructs an order from storage. Repository use only.
func Rebuild(s Snapshot) *Order {
	return &Order{
		id:           s.ID,
		userID:       s.UserID,
		createdAt:    s.CreatedAt,
		fullName:     s.FullName,
		email:        s.Email,
		phone:        s.Phone,
		city:         s.City,
		address:      s.Address,
		deliveryType: s.DeliveryType,
		paymentType:  s.PaymentType,
		totalCost:    s.TotalCost,
		status:       s.Status,
		isDeleted:    s.IsDeleted,
		lines:        s.Lines,
	}
}
