package handlers

import (
	"fmt"
	"net/http"

	"tovio-backoffice/internal/common"
	"tovio-backoffice/internal/services"

	"github.com/labstack/echo/v4"
)

// InvoiceHandlers handles HTTP requests for invoice documents
type InvoiceHandlers struct {
	invoiceService services.InvoiceService
	orderService   services.OrderService
}

// NewInvoiceHandlers creates a new invoice handlers instance
func NewInvoiceHandlers(invoiceService services.InvoiceService, orderService services.OrderService) *InvoiceHandlers {
	return &InvoiceHandlers{
		invoiceService: invoiceService,
		orderService:   orderService,
	}
}

// GetInvoice handles GET /orders/:id/invoice?mode=download|inline.
// Download returns the PDF as an attachment; inline returns a data URI the
// client can open directly.
func (h *InvoiceHandlers) GetInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	order, err := h.orderService.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "order")
	}

	mode := c.QueryParam("mode")
	switch mode {
	case "", "download":
		data, err := h.invoiceService.InvoiceBytes(order)
		if err != nil {
			return common.SendServerError(c, err.Error())
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename=%q`, services.InvoiceFileName(order)))
		return c.Blob(http.StatusOK, "application/pdf", data)
	case "inline":
		uri, err := h.invoiceService.InvoiceDataURI(order)
		if err != nil {
			return common.SendServerError(c, err.Error())
		}
		return c.JSON(http.StatusOK, map[string]string{
			"data_uri": uri,
		})
	default:
		return common.SendValidationError(c, "mode", "mode must be 'download' or 'inline'")
	}
}

// UploadInvoice handles POST /orders/:id/invoice/upload: renders the PDF,
// stores it in object storage and returns a presigned download URL.
func (h *InvoiceHandlers) UploadInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	order, err := h.orderService.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "order")
	}

	url, err := h.invoiceService.UploadInvoice(ctx, order)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Invoice uploaded successfully",
		"url":     url,
	})
}
