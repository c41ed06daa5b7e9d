package handlers

import (
	"net/http"
	"strconv"
	"time"

	"tovio-backoffice/internal/common"
	"tovio-backoffice/internal/models"
	"tovio-backoffice/internal/repositories"
	"tovio-backoffice/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for orders
type OrderHandlers struct {
	orderService services.OrderService
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderService) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

// CreateOrder handles POST /orders
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		OrderCode       string             `json:"order_code"`
		OrderDate       *time.Time         `json:"order_date"`
		CustomerName    string             `json:"customer_name"`
		MobileNumber    string             `json:"mobile_number"`
		Email           string             `json:"email"`
		City            string             `json:"city"`
		Pincode         string             `json:"pincode"`
		Items           []models.OrderItem `json:"items"`
		DeliveryCost    float64            `json:"delivery_cost"`
		PaymentStatus   string             `json:"payment_status"`
		PaymentMode     string             `json:"payment_mode"`
		ReferenceNumber *string            `json:"reference_number"`
		DeliveryDate    *time.Time         `json:"delivery_date"`
		Feedback        *string            `json:"feedback"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.CustomerName, "customer_name"); err != nil {
		return common.SendValidationError(c, "customer_name", err.Error())
	}
	if req.Email != "" {
		if err := common.ValidateEmail(req.Email, "email"); err != nil {
			return common.SendValidationError(c, "email", err.Error())
		}
	}
	if err := common.ValidateMobile(req.MobileNumber, "mobile_number"); err != nil {
		return common.SendValidationError(c, "mobile_number", err.Error())
	}
	if err := common.ValidatePincode(req.Pincode, "pincode"); err != nil {
		return common.SendValidationError(c, "pincode", err.Error())
	}
	if req.PaymentStatus != "" {
		if err := common.ValidatePaymentStatus(req.PaymentStatus); err != nil {
			return common.SendValidationError(c, "payment_status", err.Error())
		}
	}
	if req.PaymentMode != "" {
		if err := common.ValidatePaymentMode(req.PaymentMode); err != nil {
			return common.SendValidationError(c, "payment_mode", err.Error())
		}
	}
	for _, item := range req.Items {
		if err := common.ValidatePositiveInteger(item.Quantity, "quantity", 1000000); err != nil {
			return common.SendValidationError(c, "items", err.Error())
		}
	}

	order := &models.Order{
		OrderCode:       req.OrderCode,
		CustomerName:    req.CustomerName,
		MobileNumber:    req.MobileNumber,
		Email:           req.Email,
		City:            req.City,
		Pincode:         req.Pincode,
		Items:           req.Items,
		DeliveryCost:    req.DeliveryCost,
		PaymentStatus:   req.PaymentStatus,
		PaymentMode:     req.PaymentMode,
		ReferenceNumber: req.ReferenceNumber,
		DeliveryDate:    req.DeliveryDate,
		Feedback:        req.Feedback,
	}
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
	}

	if err := h.orderService.Create(ctx, order); err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Order created successfully",
		"order":   order,
	})
}

// ListOrders handles GET /orders with search and date-range filters
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 50
	offset := 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 {
			limit = l
		}
	}
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		if o, err := strconv.Atoi(offsetParam); err == nil && o >= 0 {
			offset = o
		}
	}
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	filter := &repositories.OrderSearchFilter{
		Query:  c.QueryParam("search"),
		Limit:  limit,
		Offset: offset,
	}

	if fromParam := c.QueryParam("from"); fromParam != "" {
		if err := common.ValidateDateFormat(fromParam, "from"); err != nil {
			return common.SendValidationError(c, "from", err.Error())
		}
		from, _ := time.Parse("2006-01-02", fromParam)
		filter.DateFrom = &from
	}
	if toParam := c.QueryParam("to"); toParam != "" {
		if err := common.ValidateDateFormat(toParam, "to"); err != nil {
			return common.SendValidationError(c, "to", err.Error())
		}
		to, _ := time.Parse("2006-01-02", toParam)
		filter.DateTo = &to
	}
	if filter.DateFrom != nil && filter.DateTo != nil {
		if err := common.ValidateDateRange(*filter.DateFrom, *filter.DateTo); err != nil {
			return common.SendValidationError(c, "to", err.Error())
		}
	}

	orders, err := h.orderService.List(ctx, filter)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"limit":  limit,
		"offset": offset,
	})
}

// GetOrderByID handles GET /orders/:id
func (h *OrderHandlers) GetOrderByID(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	order, err := h.orderService.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "order")
	}

	return c.JSON(http.StatusOK, order)
}

// UpdateOrder handles PUT /orders/:id with partial update semantics
func (h *OrderHandlers) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var update models.OrderUpdate
	if err := c.Bind(&update); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if update.Email != nil && *update.Email != "" {
		if err := common.ValidateEmail(*update.Email, "email"); err != nil {
			return common.SendValidationError(c, "email", err.Error())
		}
	}
	if update.PaymentStatus != nil {
		if err := common.ValidatePaymentStatus(*update.PaymentStatus); err != nil {
			return common.SendValidationError(c, "payment_status", err.Error())
		}
	}
	if update.PaymentMode != nil {
		if err := common.ValidatePaymentMode(*update.PaymentMode); err != nil {
			return common.SendValidationError(c, "payment_mode", err.Error())
		}
	}
	for _, item := range update.Items {
		if err := common.ValidatePositiveInteger(item.Quantity, "quantity", 1000000); err != nil {
			return common.SendValidationError(c, "items", err.Error())
		}
	}

	order, err := h.orderService.Update(ctx, id, &update)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}
	if order == nil {
		// The order disappeared mid-edit; nothing to report as broken.
		return c.JSON(http.StatusOK, map[string]string{
			"message": "Order no longer exists",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Order updated successfully",
		"order":   order,
	})
}

// DeleteOrder handles DELETE /orders/:id
func (h *OrderHandlers) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.orderService.Delete(ctx, id); err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Order deleted successfully",
	})
}
