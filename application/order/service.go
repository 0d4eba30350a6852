// Package order orchestrates the order workflow: creation from a basket
// snapshot, claiming after sign-in, confirmation with the delivery
// surcharge and payment.
package order

import (
	"context"
	"errors"
	"time"

	"github.com/example/storefront/domain/account"
	"github.com/example/storefront/domain/basket"
	"github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/domain/order"
	"github.com/example/storefront/domain/session"
	"github.com/example/storefront/domain/shared"
	apperrors "github.com/example/storefront/pkg/errors"
)

// Service coordinates the order aggregate with the basket, catalog and
// session stores. Order creation runs inside the unit of work so the
// basket drain and the order insert commit together.
type Service struct {
	orderRepo   order.Repository
	basketRepo  basket.Repository
	catalogRepo catalog.Repository
	userRepo    account.Repository
	sessions    session.Store
	uow         shared.UnitOfWork
	tariff      order.Tariff
}

func NewService(
	orderRepo order.Repository,
	basketRepo basket.Repository,
	catalogRepo catalog.Repository,
	userRepo account.Repository,
	sessions session.Store,
	uow shared.UnitOfWork,
	tariff order.Tariff,
) *Service {
	return &Service{
		orderRepo:   orderRepo,
		basketRepo:  basketRepo,
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
		sessions:    sessions,
		uow:         uow,
		tariff:      tariff,
	}
}

// ============================================================================
// DTOs
// ============================================================================

// LineResponse is one order line. Price is the snapshot taken at creation
// time, in minor units; it never follows later catalog price changes.
type LineResponse struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Count     int    `json:"count"`
	Price     int64  `json:"price"`
}

type OrderResponse struct {
	ID           string         `json:"id"`
	CreatedAt    time.Time      `json:"createdAt"`
	FullName     string         `json:"fullName"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	City         string         `json:"city"`
	Address      string         `json:"address"`
	DeliveryType string         `json:"deliveryType"`
	PaymentType  string         `json:"paymentType"`
	TotalCost    int64          `json:"totalCost"`
	Status       string         `json:"status"`
	Products     []LineResponse `json:"products"`
}

type ShippingRequest struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	Address      string `json:"address"`
	DeliveryType string `json:"deliveryType"`
	PaymentType  string `json:"paymentType"`
}

type CardRequest struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Month  string `json:"month"`
	Year   string `json:"year"`
	Code   string `json:"code"`
}

func (s *Service) convertToResponse(ctx context.Context, o *order.Order) *OrderResponse {
	lines := o.Lines()
	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}
	// Missing products leave the title blank; the snapshot price stays.
	products, err := s.catalogRepo.FindProducts(ctx, ids)
	if err != nil {
		products = nil
	}

	responses := make([]LineResponse, len(lines))
	for i, line := range lines {
		title := ""
		if product, ok := products[line.ProductID]; ok {
			title = product.Title
		}
		responses[i] = LineResponse{
			ProductID: line.ProductID,
			Title:     title,
			Count:     line.Count,
			Price:     line.Price.Amount(),
		}
	}

	return &OrderResponse{
		ID:           o.ID(),
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
		Products:     responses,
	}
}

func (s *Service) snapshotLines(ctx context.Context, entries []session.BasketEntry) ([]order.LineSnapshot, error) {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ProductID
	}
	products, err := s.catalogRepo.FindProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	snapshots := make([]order.LineSnapshot, 0, len(entries))
	for _, e := range entries {
		product, ok := products[e.ProductID]
		if !ok || e.Quantity < 1 {
			continue
		}
		snapshots = append(snapshots, order.LineSnapshot{
			ProductID: e.ProductID,
			Count:     e.Quantity,
			UnitPrice: product.Price,
		})
	}
	return snapshots, nil
}

// ============================================================================
// Operations
// ============================================================================

// Create turns the owner's basket into an order. Line prices are
// snapshotted at this moment; the basket is emptied in the same unit of
// work. Anonymous owners get the order id parked in the session.
func (s *Service) Create(ctx context.Context, owner session.Context) (string, error) {
	if owner.Authenticated() {
		return s.createForUser(ctx, owner.UserID)
	}
	return s.createForSession(ctx, owner.SessionID)
}

func (s *Service) createForUser(ctx context.Context, userID string) (string, error) {
	var orderID string
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		lines, err := s.basketRepo.ClearByUser(ctx, userID)
		if err != nil {
			return err
		}

		entries := make([]session.BasketEntry, len(lines))
		for i, line := range lines {
			entries[i] = session.BasketEntry{ProductID: line.ProductID, Quantity: line.Quantity}
		}
		snapshots, err := s.snapshotLines(ctx, entries)
		if err != nil {
			return err
		}
		if len(snapshots) == 0 {
			return apperrors.EmptyBasket()
		}

		o, err := order.New(userID, snapshots)
		if err != nil {
			return err
		}

		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		o.Contact(user.DisplayName(), user.Email, user.Phone)

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		orderID = o.ID()
		return nil
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}

func (s *Service) createForSession(ctx context.Context, sessionID string) (string, error) {
	entries, err := s.sessions.Basket(ctx, sessionID)
	if err != nil {
		return "", err
	}

	var orderID string
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		snapshots, err := s.snapshotLines(ctx, entries)
		if err != nil {
			return err
		}
		if len(snapshots) == 0 {
			return apperrors.EmptyBasket()
		}

		o, err := order.New("", snapshots)
		if err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		orderID = o.ID()
		return nil
	})
	if err != nil {
		return "", err
	}

	// Session writes happen after the commit; a crash between them leaves
	// an orphan order, never a dangling pending-order reference.
	if err := s.sessions.SavePendingOrder(ctx, sessionID, orderID); err != nil {
		return "", err
	}
	if err := s.sessions.ClearBasket(ctx, sessionID); err != nil {
		return "", err
	}
	return orderID, nil
}

// Claim transfers the session's pending order to the freshly signed-in
// user. The slot is cleared either way, so the claim runs at most once.
func (s *Service) Claim(ctx context.Context, sessionID string, user *account.User) error {
	orderID, err := s.sessions.PendingOrder(ctx, sessionID)
	if err != nil {
		return err
	}
	if orderID == "" {
		return nil
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			if clearErr := s.sessions.ClearPendingOrder(ctx, sessionID); clearErr != nil {
				return clearErr
			}
			return apperrors.OrderNotFound()
		}
		return err
	}

	if err := o.Claim(user.ID, user.DisplayName()); err != nil {
		if clearErr := s.sessions.ClearPendingOrder(ctx, sessionID); clearErr != nil {
			return clearErr
		}
		return translateDomainError(err)
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return err
	}
	return s.sessions.ClearPendingOrder(ctx, sessionID)
}

// List returns the user's orders, newest first.
func (s *Service) List(ctx context.Context, owner session.Context) ([]*OrderResponse, error) {
	if !owner.Authenticated() {
		return nil, apperrors.Unauthorized("sign in to view orders")
	}

	orders, err := s.orderRepo.FindByUser(ctx, owner.UserID)
	if err != nil {
		return nil, err
	}
	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = s.convertToResponse(ctx, o)
	}
	return responses, nil
}

// authorize loads the order and checks the owner may touch it. Anonymous
// requests may only see the order parked in their own session; foreign
// orders surface as not found, not forbidden.
func (s *Service) authorize(ctx context.Context, owner session.Context, orderID string) (*order.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, apperrors.OrderNotFound()
		}
		return nil, err
	}

	if o.UserID() != "" {
		if o.UserID() != owner.UserID {
			return nil, apperrors.OrderNotFound()
		}
		return o, nil
	}

	pending, err := s.sessions.PendingOrder(ctx, owner.SessionID)
	if err != nil {
		return nil, err
	}
	if pending != orderID {
		return nil, apperrors.OrderNotFound()
	}
	return o, nil
}

// Get returns one order with its line snapshots.
func (s *Service) Get(ctx context.Context, owner session.Context, orderID string) (*OrderResponse, error) {
	o, err := s.authorize(ctx, owner, orderID)
	if err != nil {
		return nil, err
	}
	return s.convertToResponse(ctx, o), nil
}

// Confirm applies the shipping details and the delivery surcharge, moving
// the order to confirmed. Re-confirmation is rejected, so the surcharge is
// added exactly once.
func (s *Service) Confirm(ctx context.Context, owner session.Context, orderID string, req ShippingRequest) (*OrderResponse, error) {
	o, err := s.authorize(ctx, owner, orderID)
	if err != nil {
		return nil, err
	}

	update := order.ShippingUpdate{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		City:         req.City,
		Address:      req.Address,
		DeliveryType: req.DeliveryType,
		PaymentType:  req.PaymentType,
	}
	if err := o.Confirm(update, s.tariff); err != nil {
		return nil, translateDomainError(err)
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	return s.convertToResponse(ctx, o), nil
}

// Pay validates the card, records the payment attempt and marks the order
// paid. Only the authenticated owner may pay.
func (s *Service) Pay(ctx context.Context, owner session.Context, orderID string, req CardRequest) error {
	if !owner.Authenticated() {
		return apperrors.Unauthorized("sign in to pay")
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return apperrors.OrderNotFound()
		}
		return err
	}
	if o.UserID() != owner.UserID {
		return apperrors.OrderNotFound()
	}

	card := order.Card{
		Number: req.Number,
		Name:   req.Name,
		Month:  req.Month,
		Year:   req.Year,
		Code:   req.Code,
	}
	if fields := card.Validate(); fields != nil {
		return apperrors.Validation("invalid card", fields)
	}

	if err := o.MarkPaid(); err != nil {
		return translateDomainError(err)
	}

	payment, err := order.NewPayment(o.ID(), card)
	if err != nil {
		return err
	}

	return s.uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.orderRepo.SavePayment(ctx, payment); err != nil {
			return err
		}
		return s.orderRepo.Save(ctx, o)
	})
}

// translateDomainError maps domain sentinels onto application error codes.
func translateDomainError(err error) error {
	switch {
	case errors.Is(err, shared.ErrConflict):
		return apperrors.Wrap(err, apperrors.CodeOrderState, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		return apperrors.Wrap(err, apperrors.CodeValidation, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		return apperrors.OrderNotFound()
	default:
		return err
	}
}
