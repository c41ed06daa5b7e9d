package services

import (
	"context"
	"errors"
	"time"

	"tovio-backoffice/internal/models"
	"tovio-backoffice/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type OrderService interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Update(ctx context.Context, id uuid.UUID, update *models.OrderUpdate) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *repositories.OrderSearchFilter) ([]*models.Order, error)
}

type orderService struct {
	orderRepo repositories.OrderRepository
	logger    zerolog.Logger
}

func NewOrderService(orderRepo repositories.OrderRepository, logger zerolog.Logger) OrderService {
	return &orderService{orderRepo: orderRepo, logger: logger}
}

// Create normalizes every line and derives the order total before
// persisting; whatever totals the caller sent are discarded.
func (s *orderService) Create(ctx context.Context, order *models.Order) error {
	if err := validateOrder(order); err != nil {
		return err
	}

	order.ID = uuid.New()
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentStatusPending
	}
	for i := range order.Items {
		order.Items[i].Recalculate()
	}
	order.RecalculateTotals()
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_code", order.OrderCode).Msg("failed to create order")
		return err
	}
	return nil
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// Update applies a partial edit. When the edit supplies items or delivery
// cost, the persisted order is re-read and the total recomputed from the
// merged view, so a delivery-cost-only edit still picks up the stored lines.
// An order deleted between the edit and the re-read is not an error: there
// is nothing left to reconcile.
func (s *orderService) Update(ctx context.Context, id uuid.UUID, update *models.OrderUpdate) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) && update.TouchesTotals() {
			s.logger.Warn().Str("order_id", id.String()).Msg("order vanished before total recompute, skipping")
			return nil, nil
		}
		return nil, err
	}

	update.Apply(order)
	if update.TouchesTotals() {
		for i := range order.Items {
			order.Items[i].Recalculate()
		}
		order.RecalculateTotals()
	}
	if err := validateOrder(order); err != nil {
		return nil, err
	}
	order.UpdatedAt = time.Now()

	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order")
		return nil, err
	}
	return order, nil
}

func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.orderRepo.Delete(ctx, id)
}

func (s *orderService) List(ctx context.Context, filter *repositories.OrderSearchFilter) ([]*models.Order, error) {
	return s.orderRepo.List(ctx, filter)
}

func validateOrder(order *models.Order) error {
	if order.CustomerName == "" {
		return errors.New("customer name is required")
	}
	if order.PaymentStatus != "" {
		if err := validatePaymentStatus(order.PaymentStatus); err != nil {
			return err
		}
	}
	if order.PaymentMode != "" {
		if err := validatePaymentMode(order.PaymentMode); err != nil {
			return err
		}
	}
	for _, item := range order.Items {
		if item.Quantity <= 0 {
			return errors.New("item quantity must be positive")
		}
	}
	if order.DeliveryCost < 0 {
		return errors.New("delivery cost cannot be negative")
	}
	return nil
}

func validatePaymentStatus(status string) error {
	switch status {
	case models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusFailed, models.PaymentStatusRefunded:
		return nil
	}
	return errors.New("payment status must be one of: pending, paid, failed, refunded")
}

func validatePaymentMode(mode string) error {
	switch mode {
	case models.PaymentModeCash, models.PaymentModeCard, models.PaymentModeUPI, models.PaymentModeOnline:
		return nil
	}
	return errors.New("payment mode must be one of: cash, card, upi, online")
}
