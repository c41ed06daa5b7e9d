package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tovio-backoffice/internal/config"
	"tovio-backoffice/internal/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
)

type InvoiceService interface {
	// InvoiceBytes renders the invoice PDF in memory.
	InvoiceBytes(order *models.Order) ([]byte, error)
	// WriteInvoiceFile renders the invoice into the configured output
	// directory and returns the written path.
	WriteInvoiceFile(order *models.Order) (string, error)
	// InvoiceDataURI renders the invoice as a data URI for inline viewing.
	InvoiceDataURI(order *models.Order) (string, error)
	// UploadInvoice stores the rendered PDF in object storage and returns a
	// presigned download URL.
	UploadInvoice(ctx context.Context, order *models.Order) (string, error)
}

type invoiceService struct {
	company   config.CompanyConfig
	outputDir string
	bucket    string
	minioSvc  MinioService
	logger    zerolog.Logger
}

func NewInvoiceService(company config.CompanyConfig, outputDir, bucket string, minioSvc MinioService, logger zerolog.Logger) InvoiceService {
	return &invoiceService{
		company:   company,
		outputDir: outputDir,
		bucket:    bucket,
		minioSvc:  minioSvc,
		logger:    logger,
	}
}

// InvoiceFileName is the download name for an order's invoice.
func InvoiceFileName(order *models.Order) string {
	return fmt.Sprintf("Invoice-%s-%s.pdf", order.OrderCode, order.OrderDate.Format("2006-01-02"))
}

func (s *invoiceService) InvoiceBytes(order *models.Order) ([]byte, error) {
	pdf := s.buildInvoice(order)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate invoice PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *invoiceService) WriteInvoiceFile(order *models.Order) (string, error) {
	data, err := s.InvoiceBytes(order)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to generate invoice PDF: %w", err)
	}
	path := filepath.Join(s.outputDir, InvoiceFileName(order))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to generate invoice PDF: %w", err)
	}
	return path, nil
}

func (s *invoiceService) InvoiceDataURI(order *models.Order) (string, error) {
	data, err := s.InvoiceBytes(order)
	if err != nil {
		return "", err
	}
	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (s *invoiceService) UploadInvoice(ctx context.Context, order *models.Order) (string, error) {
	data, err := s.InvoiceBytes(order)
	if err != nil {
		return "", err
	}

	if err := s.minioSvc.EnsureBucketExists(ctx, s.bucket); err != nil {
		return "", fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	objectName := fmt.Sprintf("%s/%s", order.ID.String(), InvoiceFileName(order))
	if err := s.minioSvc.UploadObject(ctx, s.bucket, objectName, "application/pdf", bytes.NewReader(data), int64(len(data))); err != nil {
		return "", fmt.Errorf("failed to upload invoice: %w", err)
	}

	url, err := s.minioSvc.GetPresignedURL(ctx, s.bucket, objectName, 24*time.Hour)
	if err != nil {
		return "", fmt.Errorf("failed to generate invoice URL: %w", err)
	}
	s.logger.Info().Str("order_code", order.OrderCode).Str("object", objectName).Msg("invoice uploaded")
	return url, nil
}

// Currency amounts use "Rs." because the core PDF fonts are cp1252 and have
// no rupee glyph.
func rupees(amount float64) string {
	return fmt.Sprintf("Rs.%.2f", amount)
}

// buildInvoice is the single layout every output mode renders from, so the
// downloaded, inline, and uploaded documents can never drift apart.
func (s *invoiceService) buildInvoice(order *models.Order) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetAutoPageBreak(false, 0)

	// Company header
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(59, 130, 246)
	pdf.Text(20, 30, s.company.Name)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(107, 114, 128)
	pdf.Text(20, 40, "Delicious Food, Delivered Fresh")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(31, 41, 55)
	pdf.Text(20, 60, "INVOICE")

	// Order information block
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(55, 65, 81)
	pdf.Text(20, 80, "Order Information")

	pdf.SetFont("Helvetica", "", 10)
	labelValue(pdf, 95, "Order ID:", order.OrderCode)
	labelValue(pdf, 105, "Order Date:", order.OrderDate.Format("02/01/2006"))
	labelValue(pdf, 115, "Payment Status:", capitalize(order.PaymentStatus))
	y := 125.0
	if order.PaymentMode != "" {
		labelValue(pdf, y, "Payment Mode:", capitalize(order.PaymentMode))
		y += 10
	}
	if order.ReferenceNumber != nil && *order.ReferenceNumber != "" {
		labelValue(pdf, y, "Reference No:", *order.ReferenceNumber)
	}

	// Customer block
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(55, 65, 81)
	pdf.Text(20, 140, "Customer Information")

	pdf.SetFont("Helvetica", "", 10)
	labelValue(pdf, 155, "Name:", order.CustomerName)
	labelValue(pdf, 165, "Mobile:", order.MobileNumber)
	labelValue(pdf, 175, "Address:", fmt.Sprintf("%s, %s", order.City, order.Pincode))
	if order.DeliveryDate != nil {
		labelValue(pdf, 185, "Delivery Date:", order.DeliveryDate.Format("02/01/2006"))
	}

	// Items table
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(55, 65, 81)
	pdf.Text(20, 200, "Order Items")

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(20, 215, "Item")
	pdf.Text(100, 215, "Qty")
	pdf.Text(130, 215, "Unit Price")
	pdf.Text(170, 215, "Total")

	yPos := 225.0
	pdf.SetTextColor(31, 41, 55)
	for _, item := range order.Items {
		// Past this point the row would collide with the totals block,
		// so spill to a fresh page. The header is not redrawn there.
		if yPos > 250 {
			pdf.AddPage()
			yPos = 20
		}
		pdf.Text(20, yPos, item.ItemName)
		pdf.Text(100, yPos, fmt.Sprintf("%d", item.Quantity))
		pdf.Text(130, yPos, rupees(item.UnitPrice))
		pdf.Text(170, yPos, rupees(item.TotalPrice))
		yPos += 10
	}

	// Totals
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(55, 65, 81)
	pdf.Text(130, yPos+10, "Subtotal:")
	pdf.Text(170, yPos+10, rupees(order.ItemsSubtotal()))
	pdf.Text(130, yPos+20, "Delivery Cost:")
	pdf.Text(170, yPos+20, rupees(order.DeliveryCost))

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(59, 130, 246)
	pdf.Text(130, yPos+35, "Total Amount:")
	pdf.Text(170, yPos+35, rupees(order.TotalCost))

	// Footer
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(107, 114, 128)
	pdf.Text(20, yPos+50, fmt.Sprintf("Thank you for choosing %s!", s.company.Name))
	pdf.Text(20, yPos+60, "For any queries, please contact us.")
	pdf.Text(20, yPos+70, fmt.Sprintf("Generated on: %s", time.Now().Format("02/01/2006")))

	return pdf
}

func labelValue(pdf *gofpdf.Fpdf, y float64, label, value string) {
	pdf.SetTextColor(107, 114, 128)
	pdf.Text(20, y, label)
	pdf.SetTextColor(31, 41, 55)
	pdf.Text(60, y, value)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
