package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"provideo-rentals/internal/cart"
	"provideo-rentals/internal/dto"
	"provideo-rentals/internal/model"
	"provideo-rentals/internal/repository"
)

const orderIDRetries = 5

// OrderSnapshot carries everything an order denormalizes at creation time,
// regardless of which entry point produced it.
type OrderSnapshot struct {
	OrderID      string // generated when empty
	Items        []model.LineItem
	EventDetails model.EventDetails
	Total        float64
}

// PaymentState distinguishes the webhook-driven path (deposit collected via
// Stripe) from the direct booking path (no payment collected).
type PaymentState struct {
	Status          string
	SessionID       string
	PaymentIntentID string
}

type OrderService interface {
	CreateDirect(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	CreateFromPayment(ctx context.Context, snap OrderSnapshot, pay PaymentState) (*model.Order, error)
	Notify(order *model.Order) error
	Get(ctx context.Context, orderID string) (*dto.OrderView, error)
	GetBySessionID(ctx context.Context, sessionID string) (*dto.OrderView, error)
	List(ctx context.Context) ([]*dto.OrderView, error)
	ListByEmail(ctx context.Context, email string) ([]*dto.OrderView, error)
	Trash(ctx context.Context, orderID string) error
	Delete(ctx context.Context, orderID string) error
}

type orderServiceImpl struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
	mailer    Mailer
}

func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository, mailer Mailer) OrderService {
	return &orderServiceImpl{
		db:        db,
		orderRepo: orderRepo,
		mailer:    mailer,
	}
}

// CreateDirect is the no-payment booking path. The order is written
// synchronously with status "pending"; an email failure downgrades the
// response to a warning since the write already succeeded.
func (s *orderServiceImpl) CreateDirect(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if _, err := time.Parse("2006-01-02", req.EventDate); err != nil {
		return nil, fmt.Errorf("%w: eventDate must be YYYY-MM-DD", ErrValidation)
	}

	// Never trust client money math: the submitted total must match the
	// items it claims to cover.
	computed := cart.Total(req.Items)
	if diff := computed - req.Total; diff > 0.01 || diff < -0.01 {
		return nil, fmt.Errorf("%w: total %.2f does not match items total %.2f",
			ErrValidation, req.Total, computed)
	}

	if err := s.orderRepo.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}

	snap := OrderSnapshot{
		Items: req.Items,
		Total: req.Total,
		EventDetails: model.EventDetails{
			EventDate:      req.EventDate,
			EventStartTime: req.EventStartTime,
			EventEndTime:   req.EventEndTime,
			Location:       req.Location,
			CompanyName:    req.ContactDetails.CompanyName,
			ContactName:    req.ContactDetails.Name,
			ContactEmail:   req.ContactDetails.Email,
			ContactPhone:   req.ContactDetails.Phone,
			BillingAddress: req.ContactDetails.BillingAddress,
		},
	}

	order, err := s.createOrder(ctx, snap, PaymentState{Status: model.StatusPending})
	if err != nil {
		return nil, err
	}

	resp := &dto.CreateOrderResponse{}
	if resp.Order, err = dto.ToOrderView(order); err != nil {
		return nil, fmt.Errorf("render created order: %w", err)
	}
	if err := s.Notify(order); err != nil {
		log.Printf("order %s created but notification failed: %v", order.ID, err)
		resp.Warning = "order created but confirmation email could not be sent"
	}
	return resp, nil
}

// CreateFromPayment is the webhook path. Idempotent per payment session: if
// an order for the session already exists it is returned unchanged.
func (s *orderServiceImpl) CreateFromPayment(ctx context.Context, snap OrderSnapshot, pay PaymentState) (*model.Order, error) {
	if pay.SessionID != "" {
		existing, err := s.orderRepo.FindBySessionID(ctx, pay.SessionID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("look up order by session: %w", err)
		}
	}
	return s.createOrder(ctx, snap, pay)
}

// createOrder is the single creation operation both entry points share.
func (s *orderServiceImpl) createOrder(ctx context.Context, snap OrderSnapshot, pay PaymentState) (*model.Order, error) {
	details := snap.EventDetails
	details.PaymentIntentID = pay.PaymentIntentID

	itemsJSON, err := model.MarshalItems(snap.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	detailsJSON, err := marshalEventDetails(&details)
	if err != nil {
		return nil, fmt.Errorf("marshal event details: %w", err)
	}

	// The webhook path may arrive without metadata; a missing or malformed
	// date stores as zero rather than losing the payment record. The direct
	// path validates the date before reaching here.
	eventDate, _ := time.Parse("2006-01-02", details.EventDate)

	now := time.Now()
	order := &model.Order{
		ID:           snap.OrderID,
		Status:       pay.Status,
		Total:        snap.Total,
		OrderDate:    now,
		EventDate:    eventDate,
		Items:        itemsJSON,
		EventDetails: detailsJSON,
		ContactEmail: details.ContactEmail,
	}
	if pay.SessionID != "" {
		sessionID := pay.SessionID
		order.StripeSessionID = &sessionID
	}
	if order.ID == "" {
		order.ID = GenerateOrderID(now)
	}

	for attempt := 0; ; attempt++ {
		err := s.orderRepo.Create(ctx, nil, order)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("store order: %w", err)
		}

		// The conflict may be the session-id unique index rather than the
		// order id: a concurrent webhook replay won the race.
		if pay.SessionID != "" {
			if existing, lookupErr := s.orderRepo.FindBySessionID(ctx, pay.SessionID); lookupErr == nil {
				return existing, nil
			}
		}
		if attempt >= orderIDRetries {
			return nil, fmt.Errorf("store order: %w", err)
		}
		order.ID = GenerateOrderID(now)
	}
}

// Notify dispatches the customer confirmation and admin notification emails.
// Callers decide how to surface a failure; order creation never depends on it.
func (s *orderServiceImpl) Notify(order *model.Order) error {
	view, err := dto.ToOrderView(order)
	if err != nil {
		return fmt.Errorf("render order for email: %w", err)
	}
	if err := s.mailer.SendOrderConfirmation(view); err != nil {
		return fmt.Errorf("customer confirmation: %w", err)
	}
	if err := s.mailer.SendAdminOrderNotice(view); err != nil {
		return fmt.Errorf("admin notification: %w", err)
	}
	return nil
}

func (s *orderServiceImpl) Get(ctx context.Context, orderID string) (*dto.OrderView, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return dto.ToOrderView(order)
}

func (s *orderServiceImpl) GetBySessionID(ctx context.Context, sessionID string) (*dto.OrderView, error) {
	order, err := s.orderRepo.FindBySessionID(ctx, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return dto.ToOrderView(order)
}

func (s *orderServiceImpl) List(ctx context.Context) ([]*dto.OrderView, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderViews(orders)
}

func (s *orderServiceImpl) ListByEmail(ctx context.Context, email string) ([]*dto.OrderView, error) {
	orders, err := s.orderRepo.ListByContactEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return toOrderViews(orders)
}

func (s *orderServiceImpl) Trash(ctx context.Context, orderID string) error {
	err := s.orderRepo.UpdateStatus(ctx, orderID, model.StatusTrashed)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Delete hard-deletes an order, and only a trashed one; the guard keeps an
// active order from being removed by a stray click.
func (s *orderServiceImpl) Delete(ctx context.Context, orderID string) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if order.Status != model.StatusTrashed {
		return ErrNotTrashed
	}

	err = s.orderRepo.Delete(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func toOrderViews(orders []*model.Order) ([]*dto.OrderView, error) {
	views := make([]*dto.OrderView, len(orders))
	for i, order := range orders {
		view, err := dto.ToOrderView(order)
		if err != nil {
			return nil, fmt.Errorf("render order %s: %w", order.ID, err)
		}
		views[i] = view
	}
	return views, nil
}

func marshalEventDetails(details *model.EventDetails) (string, error) {
	b, err := json.Marshal(details)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
