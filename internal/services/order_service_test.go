package services

import (
	"context"
	"testing"
	"time"

	"tovio-backoffice/internal/models"
	"tovio-backoffice/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context, filter *repositories.OrderSearchFilter) ([]*models.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

type OrderServiceTestSuite struct {
	suite.Suite
	orderRepo *MockOrderRepository
	service   OrderService
	ctx       context.Context
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.orderRepo = new(MockOrderRepository)
	suite.service = NewOrderService(suite.orderRepo, zerolog.Nop())
	suite.ctx = context.Background()
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (suite *OrderServiceTestSuite) TestCreate_DerivesLineAndOrderTotals() {
	order := &models.Order{
		OrderCode:    "ORD-2001",
		CustomerName: "Asha Nair",
		DeliveryCost: 50,
		TotalCost:    9999, // caller-supplied totals are discarded
		Items: []models.OrderItem{
			{MenuItemID: uuid.New(), ItemName: "Plum Cake", Quantity: 2, UnitPrice: 120, TotalPrice: 1},
			{MenuItemID: uuid.New(), ItemName: "Masala Chai", Quantity: 3, UnitPrice: 40},
		},
	}

	suite.orderRepo.On("Create", suite.ctx, order).Return(nil)

	err := suite.service.Create(suite.ctx, order)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 240.0, order.Items[0].TotalPrice)
	assert.Equal(suite.T(), 120.0, order.Items[1].TotalPrice)
	assert.Equal(suite.T(), 410.0, order.TotalCost)
	assert.NotEqual(suite.T(), uuid.Nil, order.ID)
	assert.Equal(suite.T(), models.PaymentStatusPending, order.PaymentStatus)
	assert.False(suite.T(), order.OrderDate.IsZero())
}

func (suite *OrderServiceTestSuite) TestCreate_RejectsNonPositiveQuantity() {
	order := &models.Order{
		CustomerName: "Asha Nair",
		Items:        []models.OrderItem{{ItemName: "Plum Cake", Quantity: 0, UnitPrice: 120}},
	}

	err := suite.service.Create(suite.ctx, order)
	assert.Error(suite.T(), err)
	suite.orderRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *OrderServiceTestSuite) TestUpdate_DeliveryCostOnlyRecomputesFromPersistedItems() {
	id := uuid.New()
	persisted := &models.Order{
		ID:           id,
		OrderCode:    "ORD-2001",
		CustomerName: "Asha Nair",
		DeliveryCost: 50,
		TotalCost:    290,
		Items: []models.OrderItem{
			{MenuItemID: uuid.New(), ItemName: "Plum Cake", Quantity: 2, UnitPrice: 120, TotalPrice: 240},
		},
	}
	newDelivery := 80.0
	update := &models.OrderUpdate{DeliveryCost: &newDelivery}

	suite.orderRepo.On("GetByID", suite.ctx, id).Return(persisted, nil)
	suite.orderRepo.On("Update", suite.ctx, mock.AnythingOfType("*models.Order")).Return(nil)

	result, err := suite.service.Update(suite.ctx, id, update)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 80.0, result.DeliveryCost)
	assert.Equal(suite.T(), 320.0, result.TotalCost)
	assert.Len(suite.T(), result.Items, 1) // persisted lines survive the merge
}

func (suite *OrderServiceTestSuite) TestUpdate_ItemsSuppliedReplaceAndRecompute() {
	id := uuid.New()
	persisted := &models.Order{
		ID:           id,
		CustomerName: "Asha Nair",
		DeliveryCost: 50,
		TotalCost:    290,
		Items: []models.OrderItem{
			{ItemName: "Plum Cake", Quantity: 2, UnitPrice: 120, TotalPrice: 240},
		},
	}
	update := &models.OrderUpdate{
		Items: []models.OrderItem{
			{ItemName: "Ginger Cookies", Quantity: 3, UnitPrice: 80},
		},
	}

	suite.orderRepo.On("GetByID", suite.ctx, id).Return(persisted, nil)
	suite.orderRepo.On("Update", suite.ctx, mock.AnythingOfType("*models.Order")).Return(nil)

	result, err := suite.service.Update(suite.ctx, id, update)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result.Items, 1)
	assert.Equal(suite.T(), 240.0, result.Items[0].TotalPrice)
	assert.Equal(suite.T(), 290.0, result.TotalCost)
}

func (suite *OrderServiceTestSuite) TestUpdate_UntouchedTotalsStayUntouched() {
	id := uuid.New()
	persisted := &models.Order{
		ID:            id,
		CustomerName:  "Asha Nair",
		PaymentStatus: models.PaymentStatusPending,
		DeliveryCost:  50,
		TotalCost:     290, // stale on purpose; a status edit must not fix it
		Items: []models.OrderItem{
			{ItemName: "Plum Cake", Quantity: 2, UnitPrice: 120, TotalPrice: 240},
		},
	}
	paid := models.PaymentStatusPaid
	update := &models.OrderUpdate{PaymentStatus: &paid}

	suite.orderRepo.On("GetByID", suite.ctx, id).Return(persisted, nil)
	suite.orderRepo.On("Update", suite.ctx, mock.AnythingOfType("*models.Order")).Return(nil)

	result, err := suite.service.Update(suite.ctx, id, update)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.PaymentStatusPaid, result.PaymentStatus)
	assert.Equal(suite.T(), 290.0, result.TotalCost)
}

func (suite *OrderServiceTestSuite) TestUpdate_VanishedOrderSkipsRecomputeSilently() {
	id := uuid.New()
	newDelivery := 80.0
	update := &models.OrderUpdate{DeliveryCost: &newDelivery}

	suite.orderRepo.On("GetByID", suite.ctx, id).Return(nil, pgx.ErrNoRows)

	result, err := suite.service.Update(suite.ctx, id, update)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), result)
	suite.orderRepo.AssertNotCalled(suite.T(), "Update")
}

func (suite *OrderServiceTestSuite) TestUpdate_VanishedOrderWithoutTotalsIsNotFound() {
	id := uuid.New()
	name := "New Name"
	update := &models.OrderUpdate{CustomerName: &name}

	suite.orderRepo.On("GetByID", suite.ctx, id).Return(nil, pgx.ErrNoRows)

	result, err := suite.service.Update(suite.ctx, id, update)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), result)
}

func (suite *OrderServiceTestSuite) TestUpdate_RejectsInvalidPaymentMode() {
	id := uuid.New()
	persisted := &models.Order{ID: id, CustomerName: "Asha Nair"}
	bad := "cheque"
	update := &models.OrderUpdate{PaymentMode: &bad}

	suite.orderRepo.On("GetByID", suite.ctx, id).Return(persisted, nil)

	result, err := suite.service.Update(suite.ctx, id, update)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), result)
	suite.orderRepo.AssertNotCalled(suite.T(), "Update")
}

func (suite *OrderServiceTestSuite) TestList_PassesFilterThrough() {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	filter := &repositories.OrderSearchFilter{Query: "asha", DateFrom: &from, Limit: 20}
	orders := []*models.Order{{ID: uuid.New(), CustomerName: "Asha Nair"}}

	suite.orderRepo.On("List", suite.ctx, filter).Return(orders, nil)

	result, err := suite.service.List(suite.ctx, filter)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), orders, result)
}
