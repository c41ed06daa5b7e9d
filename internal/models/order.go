package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Payment status values accepted on an order.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Payment mode values accepted on an order.
const (
	PaymentModeCash   = "cash"
	PaymentModeCard   = "card"
	PaymentModeUPI    = "upi"
	PaymentModeOnline = "online"
)

// OrderItem is one line of an order. Name and unit price are copied from the
// catalog at order-entry time, so later menu edits never change a recorded
// order. TotalPrice must equal Quantity * UnitPrice after every edit.
type OrderItem struct {
	MenuItemID uuid.UUID `json:"menu_item_id" db:"menu_item_id"`
	ItemName   string    `json:"item_name" db:"item_name"`
	Quantity   int       `json:"quantity" db:"quantity"`
	UnitPrice  float64   `json:"unit_price" db:"unit_price"`
	TotalPrice float64   `json:"total_price" db:"total_price"`
}

// Recalculate restores the line invariant TotalPrice == Quantity * UnitPrice.
func (i *OrderItem) Recalculate() {
	i.TotalPrice = float64(i.Quantity) * i.UnitPrice
}

type Order struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	OrderCode       string      `json:"order_code" db:"order_code"`
	OrderDate       time.Time   `json:"order_date" db:"order_date"`
	CustomerName    string      `json:"customer_name" db:"customer_name"`
	MobileNumber    string      `json:"mobile_number" db:"mobile_number"`
	Email           string      `json:"email" db:"email"`
	City            string      `json:"city" db:"city"`
	Pincode         string      `json:"pincode" db:"pincode"`
	Items           []OrderItem `json:"items"`
	DeliveryCost    float64     `json:"delivery_cost" db:"delivery_cost"`
	TotalCost       float64     `json:"total_cost" db:"total_cost"`
	PaymentStatus   string      `json:"payment_status" db:"payment_status"`
	PaymentMode     string      `json:"payment_mode" db:"payment_mode"`
	ReferenceNumber *string     `json:"reference_number" db:"reference_number"`
	DeliveryDate    *time.Time  `json:"delivery_date" db:"delivery_date"`
	Feedback        *string     `json:"feedback" db:"feedback"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}

// AddItem appends an empty line: quantity 1, price 0 until a catalog item is
// selected for it.
func (o *Order) AddItem() {
	o.Items = append(o.Items, OrderItem{Quantity: 1})
	o.RecalculateTotals()
}

// SelectMenuItem copies the catalog item's current name and price into the
// line and recomputes its total. Later quantity edits keep using the copied
// price; the catalog is not consulted again.
func (o *Order) SelectMenuItem(index int, item *MenuItem) error {
	if index < 0 || index >= len(o.Items) {
		return fmt.Errorf("order has no item at index %d", index)
	}
	line := &o.Items[index]
	line.MenuItemID = item.ID
	line.ItemName = item.Name
	line.UnitPrice = item.Price
	line.Recalculate()
	o.RecalculateTotals()
	return nil
}

// SetItemQuantity updates a line's quantity and recomputes its total from the
// already-copied unit price.
func (o *Order) SetItemQuantity(index, quantity int) error {
	if index < 0 || index >= len(o.Items) {
		return fmt.Errorf("order has no item at index %d", index)
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	line := &o.Items[index]
	line.Quantity = quantity
	line.Recalculate()
	o.RecalculateTotals()
	return nil
}

// RemoveItem drops a line. Remaining lines keep their positions; lines are
// positional, not identity-bearing.
func (o *Order) RemoveItem(index int) error {
	if index < 0 || index >= len(o.Items) {
		return fmt.Errorf("order has no item at index %d", index)
	}
	o.Items = append(o.Items[:index], o.Items[index+1:]...)
	o.RecalculateTotals()
	return nil
}

// ItemsSubtotal sums the line totals.
func (o *Order) ItemsSubtotal() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.TotalPrice
	}
	return sum
}

// RecalculateTotals restores TotalCost == DeliveryCost + sum of line totals.
func (o *Order) RecalculateTotals() {
	o.TotalCost = o.DeliveryCost + o.ItemsSubtotal()
}

// OrderUpdate carries a partial edit. Nil fields are left untouched; a nil
// Items slice means the lines were not supplied (an empty non-nil slice
// clears them).
type OrderUpdate struct {
	OrderCode       *string     `json:"order_code,omitempty"`
	OrderDate       *time.Time  `json:"order_date,omitempty"`
	CustomerName    *string     `json:"customer_name,omitempty"`
	MobileNumber    *string     `json:"mobile_number,omitempty"`
	Email           *string     `json:"email,omitempty"`
	City            *string     `json:"city,omitempty"`
	Pincode         *string     `json:"pincode,omitempty"`
	Items           []OrderItem `json:"items,omitempty"`
	DeliveryCost    *float64    `json:"delivery_cost,omitempty"`
	PaymentStatus   *string     `json:"payment_status,omitempty"`
	PaymentMode     *string     `json:"payment_mode,omitempty"`
	ReferenceNumber *string     `json:"reference_number,omitempty"`
	DeliveryDate    *time.Time  `json:"delivery_date,omitempty"`
	Feedback        *string     `json:"feedback,omitempty"`
}

// TouchesTotals reports whether the update supplies either input of the
// order-total computation.
func (u *OrderUpdate) TouchesTotals() bool {
	return u.Items != nil || u.DeliveryCost != nil
}

// Apply merges the supplied fields onto the order. It does not recompute
// TotalCost; the service recomputes from the merged view when TouchesTotals.
func (u *OrderUpdate) Apply(order *Order) {
	if u.OrderCode != nil {
		order.OrderCode = *u.OrderCode
	}
	if u.OrderDate != nil {
		order.OrderDate = *u.OrderDate
	}
	if u.CustomerName != nil {
		order.CustomerName = *u.CustomerName
	}
	if u.MobileNumber != nil {
		order.MobileNumber = *u.MobileNumber
	}
	if u.Email != nil {
		order.Email = *u.Email
	}
	if u.City != nil {
		order.City = *u.City
	}
	if u.Pincode != nil {
		order.Pincode = *u.Pincode
	}
	if u.Items != nil {
		order.Items = u.Items
	}
	if u.DeliveryCost != nil {
		order.DeliveryCost = *u.DeliveryCost
	}
	if u.PaymentStatus != nil {
		order.PaymentStatus = *u.PaymentStatus
	}
	if u.PaymentMode != nil {
		order.PaymentMode = *u.PaymentMode
	}
	if u.ReferenceNumber != nil {
		order.ReferenceNumber = u.ReferenceNumber
	}
	if u.DeliveryDate != nil {
		order.DeliveryDate = u.DeliveryDate
	}
	if u.Feedback != nil {
		order.Feedback = u.Feedback
	}
}
