package services

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tovio-backoffice/internal/config"
	"tovio-backoffice/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadObject(ctx context.Context, bucketName, objectName, contentType string, reader io.Reader, objectSize int64) error {
	args := m.Called(ctx, bucketName, objectName, contentType, reader, objectSize)
	return args.Error(0)
}

func (m *MockMinioService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockMinioService) DeleteObject(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

type InvoiceServiceTestSuite struct {
	suite.Suite
	minio   *MockMinioService
	service InvoiceService
	tempDir string
	ctx     context.Context
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.minio = new(MockMinioService)
	suite.tempDir = suite.T().TempDir()
	company := config.CompanyConfig{
		Name:  "THE HOUSE OF TOVIO",
		Email: "orders@houseoftovio.com",
		Phone: "+91 98765 43210",
	}
	suite.service = NewInvoiceService(company, suite.tempDir, "invoices", suite.minio, zerolog.Nop())
	suite.ctx = context.Background()
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}

func invoiceOrder(itemCount int) *models.Order {
	order := &models.Order{
		ID:            uuid.New(),
		OrderCode:     "ORD-3001",
		OrderDate:     time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		CustomerName:  "Asha Nair",
		MobileNumber:  "9876543210",
		City:          "Kochi",
		Pincode:       "682001",
		DeliveryCost:  50,
		PaymentStatus: models.PaymentStatusPaid,
		PaymentMode:   models.PaymentModeUPI,
	}
	for i := 0; i < itemCount; i++ {
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID: uuid.New(),
			ItemName:   "Plum Cake",
			Quantity:   1,
			UnitPrice:  120,
			TotalPrice: 120,
		})
	}
	order.RecalculateTotals()
	return order
}

func (suite *InvoiceServiceTestSuite) TestInvoiceBytes_ProducesPDF() {
	data, err := suite.service.InvoiceBytes(invoiceOrder(3))
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), bytes.HasPrefix(data, []byte("%PDF")))
}

func (suite *InvoiceServiceTestSuite) TestInvoiceFileName() {
	order := invoiceOrder(1)
	assert.Equal(suite.T(), "Invoice-ORD-3001-2025-04-02.pdf", InvoiceFileName(order))
}

func (suite *InvoiceServiceTestSuite) TestWriteInvoiceFile_WritesToOutputDir() {
	order := invoiceOrder(2)

	path, err := suite.service.WriteInvoiceFile(order)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), filepath.Join(suite.tempDir, "Invoice-ORD-3001-2025-04-02.pdf"), path)

	data, err := os.ReadFile(path)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), bytes.HasPrefix(data, []byte("%PDF")))
}

func (suite *InvoiceServiceTestSuite) TestInvoiceDataURI_InlineViewable() {
	uri, err := suite.service.InvoiceDataURI(invoiceOrder(1))
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), strings.HasPrefix(uri, "data:application/pdf;base64,"))
	assert.Greater(suite.T(), len(uri), len("data:application/pdf;base64,"))
}

func (suite *InvoiceServiceTestSuite) TestBuildInvoice_SinglePageForShortOrders() {
	svc := suite.service.(*invoiceService)
	pdf := svc.buildInvoice(invoiceOrder(3))
	assert.Equal(suite.T(), 1, pdf.PageCount())
}

func (suite *InvoiceServiceTestSuite) TestBuildInvoice_LongOrderSpillsToNewPage() {
	svc := suite.service.(*invoiceService)
	pdf := svc.buildInvoice(invoiceOrder(40))
	assert.GreaterOrEqual(suite.T(), pdf.PageCount(), 2)
}

func (suite *InvoiceServiceTestSuite) TestUploadInvoice_StoresAndPresigns() {
	order := invoiceOrder(1)
	objectName := order.ID.String() + "/Invoice-ORD-3001-2025-04-02.pdf"

	suite.minio.On("EnsureBucketExists", suite.ctx, "invoices").Return(nil)
	suite.minio.On("UploadObject", suite.ctx, "invoices", objectName, "application/pdf", mock.Anything, mock.AnythingOfType("int64")).Return(nil)
	suite.minio.On("GetPresignedURL", suite.ctx, "invoices", objectName, 24*time.Hour).Return("https://minio.local/presigned", nil)

	url, err := suite.service.UploadInvoice(suite.ctx, order)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "https://minio.local/presigned", url)
	suite.minio.AssertExpectations(suite.T())
}
