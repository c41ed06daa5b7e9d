package repositories

import (
	"context"
	"fmt"
	"time"

	"tovio-backoffice/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderSearchFilter narrows List results. Query matches customer name, order
// code, or mobile number; the date bounds apply to order_date.
type OrderSearchFilter struct {
	Query    string
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *OrderSearchFilter) ([]*models.Order, error)
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

const orderColumns = `id, order_code, order_date, customer_name, mobile_number, email, city, pincode, delivery_cost, total_cost, payment_status, payment_mode, reference_number, delivery_date, feedback, created_at, updated_at`

// Create writes the order and its lines in one transaction so a half-written
// order is never visible.
func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (id, order_code, order_date, customer_name, mobile_number, email, city, pincode, delivery_cost, total_cost, payment_status, payment_mode, reference_number, delivery_date, feedback, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
	`
	_, err = tx.Exec(ctx, query, order.ID, order.OrderCode, order.OrderDate, order.CustomerName, order.MobileNumber, order.Email, order.City, order.Pincode, order.DeliveryCost, order.TotalCost, order.PaymentStatus, order.PaymentMode, order.ReferenceNumber, order.DeliveryDate, order.Feedback)
	if err != nil {
		return err
	}

	if err := insertItems(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update rewrites the order row and replaces its lines wholesale. Lines are
// positional, so delete-and-reinsert keeps their order without identity
// bookkeeping.
func (r *orderRepo) Update(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE orders
		SET order_code = $1, order_date = $2, customer_name = $3, mobile_number = $4, email = $5, city = $6, pincode = $7, delivery_cost = $8, total_cost = $9, payment_status = $10, payment_mode = $11, reference_number = $12, delivery_date = $13, feedback = $14, updated_at = NOW()
		WHERE id = $15
	`
	_, err = tx.Exec(ctx, query, order.OrderCode, order.OrderDate, order.CustomerName, order.MobileNumber, order.Email, order.City, order.Pincode, order.DeliveryCost, order.TotalCost, order.PaymentStatus, order.PaymentMode, order.ReferenceNumber, order.DeliveryDate, order.Feedback, order.ID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID)
	if err != nil {
		return err
	}
	if err := insertItems(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, items []models.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, position, menu_item_id, item_name, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i, item := range items {
		if _, err := tx.Exec(ctx, query, orderID, i, item.MenuItemID, item.ItemName, item.Quantity, item.UnitPrice, item.TotalPrice); err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM orders WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *orderRepo) List(ctx context.Context, filter *OrderSearchFilter) ([]*models.Order, error) {
	if filter == nil {
		filter = &OrderSearchFilter{}
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	queryBase := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE 1=1
	`
	args := []interface{}{}
	conditionCount := 0

	if filter.Query != "" {
		conditionCount++
		queryBase += fmt.Sprintf(` AND (customer_name ILIKE $%d OR order_code ILIKE $%d OR mobile_number ILIKE $%d)`, conditionCount, conditionCount, conditionCount)
		args = append(args, "%"+filter.Query+"%")
	}
	if filter.DateFrom != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND order_date >= $%d`, conditionCount)
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND order_date <= $%d`, conditionCount)
		args = append(args, *filter.DateTo)
	}

	queryBase += ` ORDER BY order_date DESC`
	conditionCount++
	queryBase += fmt.Sprintf(` LIMIT $%d`, conditionCount)
	args = append(args, filter.Limit)
	if filter.Offset > 0 {
		conditionCount++
		queryBase += fmt.Sprintf(` OFFSET $%d`, conditionCount)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		if err := r.loadItems(ctx, order); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *orderRepo) loadItems(ctx context.Context, order *models.Order) error {
	query := `
		SELECT menu_item_id, item_name, quantity, unit_price, total_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY position ASC
	`
	rows, err := r.db.Query(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	order.Items = []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.MenuItemID, &item.ItemName, &item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

// scanOrder decodes one order row, defaulting nullable columns in one place
// so sparse records read back as complete orders.
func scanOrder(row pgx.Row) (*models.Order, error) {
	order := &models.Order{}
	var (
		orderCode     *string
		customerName  *string
		mobileNumber  *string
		email         *string
		city          *string
		pincode       *string
		deliveryCost  *float64
		totalCost     *float64
		paymentStatus *string
		paymentMode   *string
		createdAt     *time.Time
		updatedAt     *time.Time
	)
	err := row.Scan(&order.ID, &orderCode, &order.OrderDate, &customerName, &mobileNumber, &email, &city, &pincode, &deliveryCost, &totalCost, &paymentStatus, &paymentMode, &order.ReferenceNumber, &order.DeliveryDate, &order.Feedback, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	order.OrderCode = defaultString(orderCode)
	order.CustomerName = defaultString(customerName)
	order.MobileNumber = defaultString(mobileNumber)
	order.Email = defaultString(email)
	order.City = defaultString(city)
	order.Pincode = defaultString(pincode)
	order.DeliveryCost = defaultFloat(deliveryCost)
	order.TotalCost = defaultFloat(totalCost)
	order.PaymentStatus = defaultString(paymentStatus)
	order.PaymentMode = defaultString(paymentMode)
	order.CreatedAt = defaultTime(createdAt)
	order.UpdatedAt = defaultTime(updatedAt)
	return order, nil
}
