package handlers

import (
	"net/http"

	"tovio-backoffice/internal/common"
	"tovio-backoffice/internal/services"

	"github.com/labstack/echo/v4"
)

// ReceiptHandlers handles HTTP requests for receipt emails
type ReceiptHandlers struct {
	receiptService services.ReceiptService
	orderService   services.OrderService
}

// NewReceiptHandlers creates a new receipt handlers instance
func NewReceiptHandlers(receiptService services.ReceiptService, orderService services.OrderService) *ReceiptHandlers {
	return &ReceiptHandlers{
		receiptService: receiptService,
		orderService:   orderService,
	}
}

// SendReceipt handles POST /orders/:id/receipt. The response is always 200
// with the structured send result; a failed send is reported, not raised.
func (h *ReceiptHandlers) SendReceipt(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		RecipientName  string `json:"recipient_name"`
		RecipientEmail string `json:"recipient_email"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.RecipientName, "recipient_name"); err != nil {
		return common.SendValidationError(c, "recipient_name", err.Error())
	}
	if err := common.ValidateEmail(req.RecipientEmail, "recipient_email"); err != nil {
		return common.SendValidationError(c, "recipient_email", err.Error())
	}

	order, err := h.orderService.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "order")
	}

	result := h.receiptService.SendOrderReceipt(ctx, order, req.RecipientEmail, req.RecipientName)
	return c.JSON(http.StatusOK, result)
}
