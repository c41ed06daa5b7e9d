package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tovio-backoffice/internal/config"
	"tovio-backoffice/internal/models"

	"github.com/rs/zerolog"
)

// SendResult is the outcome of a receipt send. A failed send is data, not an
// error: the order operation that triggered it must never fail because the
// email did.
type SendResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ReceiptService interface {
	SendOrderReceipt(ctx context.Context, order *models.Order, recipientEmail, recipientName string) SendResult
}

type receiptService struct {
	email      config.EmailConfig
	company    config.CompanyConfig
	configured bool
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewReceiptService(email config.EmailConfig, company config.CompanyConfig, logger zerolog.Logger) ReceiptService {
	endpoint := email.Endpoint
	if endpoint == "" {
		endpoint = "https://api.emailjs.com/api/v1.0/email/send"
	}
	email.Endpoint = endpoint
	return &receiptService{
		email:      email,
		company:    company,
		configured: email.Configured(),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// sendPayload is the provider's wire format: account identifiers plus the
// flat variable map the mail template interpolates.
type sendPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (s *receiptService) SendOrderReceipt(ctx context.Context, order *models.Order, recipientEmail, recipientName string) SendResult {
	if !s.configured {
		return SendResult{
			Success: false,
			Message: "Email provider not configured. Please update the configuration file.",
		}
	}

	payload := sendPayload{
		ServiceID:      s.email.ServiceID,
		TemplateID:     s.email.TemplateID,
		UserID:         s.email.UserID,
		TemplateParams: s.templateParams(order, recipientEmail, recipientName),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return SendResult{Success: false, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.email.Endpoint, bytes.NewReader(body))
	if err != nil {
		return SendResult{Success: false, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Str("order_code", order.OrderCode).Msg("receipt send failed")
		return SendResult{Success: false, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		s.logger.Warn().Int("status", resp.StatusCode).Str("order_code", order.OrderCode).Msg("receipt send rejected by provider")
		msg := strings.TrimSpace(string(respBody))
		if msg == "" {
			msg = "Failed to send email. Please try again."
		}
		return SendResult{Success: false, Message: msg}
	}

	s.logger.Info().Str("order_code", order.OrderCode).Str("recipient", recipientEmail).Msg("receipt sent")
	return SendResult{Success: true, Message: "Order receipt sent successfully!"}
}

func (s *receiptService) templateParams(order *models.Order, recipientEmail, recipientName string) map[string]string {
	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("%s x%d - ₹%.2f", item.ItemName, item.Quantity, item.TotalPrice))
	}

	return map[string]string{
		"to_email":         recipientEmail,
		"to_name":          recipientName,
		"order_id":         order.OrderCode,
		"order_date":       order.OrderDate.Format("02/01/2006"),
		"customer_name":    order.CustomerName,
		"total_amount":     fmt.Sprintf("₹%.2f", order.TotalCost),
		"payment_status":   capitalize(order.PaymentStatus),
		"payment_mode":     capitalize(order.PaymentMode),
		"delivery_address": fmt.Sprintf("%s, %s", order.City, order.Pincode),
		"order_items":      strings.Join(lines, "\n"),
		"company_name":     s.company.Name,
		"company_email":    s.company.Email,
		"company_phone":    s.company.Phone,
	}
}
